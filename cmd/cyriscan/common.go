package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nao1215/cyriscan/internal/config"
	"github.com/nao1215/cyriscan/internal/database"
	"github.com/nao1215/cyriscan/internal/fetcher"
	cyrilog "github.com/nao1215/cyriscan/internal/log"
)

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// loadConfig builds a Config from defaults and the configuration file.
// Command specific flags are applied by the caller afterwards.
//
// An explicit --config path that does not exist is an error; a missing
// default file is not.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return nil, err
	}
	cfg.LogJSON = logJSON

	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = explicit

	path := config.FindConfigFile(explicit)
	switch {
	case path != "":
		file, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		file.Apply(cfg)
		cfg.ConfigFilePath = path
	case explicit != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, explicit)
	}

	return cfg, nil
}

// setupLogger creates the process logger and makes it the default.
func setupLogger(cfg *config.Config) *slog.Logger {
	logger := cyrilog.NewLogger(os.Stderr, cfg.Verbose)
	if cfg.LogJSON {
		logger = cyrilog.NewJSONLogger(os.Stderr, cfg.Verbose)
	}
	slog.SetDefault(logger)
	return logger
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
// Cancellation lets the crawler write its checkpoint before exiting.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, saving progress...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// newFetcher builds the HTTP fetcher shared by crawl and scrape.
func newFetcher(cfg *config.Config) *fetcher.HTTPFetcher {
	return fetcher.New(cfg.Timeout,
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithHeaders(cfg.Headers),
		fetcher.WithMaxBodySize(cfg.MaxBodySize),
	)
}

// openDB opens the database when saving is enabled. It returns nil, nil
// when SaveToDB is off.
func openDB(cfg *config.Config, logger *slog.Logger) (*database.DB, error) {
	if !cfg.SaveToDB {
		return nil, nil
	}
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Debug("database opened", "path", db.Path())
	return db, nil
}

// createOutputFile creates path and any missing parent directories.
func createOutputFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644) //nolint:gosec // output path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// Flag helpers: a flag only overrides the config when the user set it.

func overrideString(flags *pflag.FlagSet, name string, dst *string) error {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetString(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func overrideInt(flags *pflag.FlagSet, name string, dst *int) error {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetInt(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func overrideBool(flags *pflag.FlagSet, name string, dst *bool) error {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetBool(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func overrideStrings(flags *pflag.FlagSet, name string, dst *[]string) error {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetStringArray(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// isInterrupted reports whether err comes from a cancelled run.
func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

func overrideDuration(flags *pflag.FlagSet, name string, dst *time.Duration) error {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetDuration(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
