package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nao1215/cyriscan/internal/config"
)

// captureConfig runs root with args and returns the config loadConfig built
// for the history subcommand.
func captureConfig(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()

	root := NewRootCmd()
	history, _, err := root.Find([]string{"history"})
	if err != nil {
		t.Fatal(err)
	}
	var got *config.Config
	history.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		got = cfg
		return err
	}
	root.SetArgs(append([]string{"history"}, args...))
	err = root.Execute()
	return got, err
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("applies the explicit file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		content := `crawl:
  domain: example.com
  max_pages: 42
scrape:
  batch_size: 3
  max_failures: 0
headers:
  Accept-Language: ja
scoring:
  default_gpu: 250
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		cfg, err := captureConfig(t, "-c", path, "-v", "--log-json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Domain != "example.com" || cfg.MaxPages != 42 {
			t.Errorf("crawl section not applied: %+v", cfg)
		}
		if cfg.BatchSize != 3 || cfg.MaxConsecutiveFailures != 0 {
			t.Errorf("scrape section not applied: batch %d, failures %d", cfg.BatchSize, cfg.MaxConsecutiveFailures)
		}
		if cfg.Headers["Accept-Language"] != "ja" {
			t.Errorf("expected header, got %v", cfg.Headers)
		}
		if cfg.DefaultGPUScore != 250 || cfg.DefaultCPUScore != config.DefaultUnknownScore {
			t.Errorf("unexpected default scores %v and %v", cfg.DefaultCPUScore, cfg.DefaultGPUScore)
		}
		if cfg.ConfigFilePath != path {
			t.Errorf("expected config path %s, got %s", path, cfg.ConfigFilePath)
		}
		if !cfg.Verbose || !cfg.LogJSON {
			t.Error("expected verbose JSON logging")
		}
	})

	t.Run("explicit missing file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := captureConfig(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("crawl: [unterminated\n"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := captureConfig(t, "-c", path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestOverrideHelpers(t *testing.T) {
	t.Parallel()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("name", "flag-default", "")
	flags.Int("count", 1, "")
	flags.Bool("on", false, "")
	flags.StringArray("items", nil, "")
	flags.Duration("wait", time.Second, "")
	flags.String("untouched", "flag-default", "")
	if err := flags.Parse([]string{"--name", "x", "--count", "7", "--on", "--items", "a", "--items", "b", "--wait", "3s"}); err != nil {
		t.Fatal(err)
	}

	name, untouched := "file", "file"
	count := 0
	on := false
	var items []string
	var wait time.Duration

	err := errors.Join(
		overrideString(flags, "name", &name),
		overrideString(flags, "untouched", &untouched),
		overrideInt(flags, "count", &count),
		overrideBool(flags, "on", &on),
		overrideStrings(flags, "items", &items),
		overrideDuration(flags, "wait", &wait),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if name != "x" || count != 7 || !on || wait != 3*time.Second {
		t.Errorf("overrides not applied: %s %d %v %v", name, count, on, wait)
	}
	if len(items) != 2 || items[0] != "a" || items[1] != "b" {
		t.Errorf("expected [a b], got %v", items)
	}
	if untouched != "file" {
		t.Errorf("unset flag overwrote the config value: %q", untouched)
	}
}

func TestIsInterrupted(t *testing.T) {
	t.Parallel()

	if !isInterrupted(fmt.Errorf("crawl: %w", context.Canceled)) {
		t.Error("expected wrapped context.Canceled to count as interrupted")
	}
	if isInterrupted(context.DeadlineExceeded) || isInterrupted(nil) {
		t.Error("expected only cancellation to count as interrupted")
	}
}

func TestCreateOutputFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "out.txt")
	file, err := createOutputFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := file.WriteString("ok"); err != nil {
		t.Fatal(err)
	}
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil || string(content) != "ok" {
		t.Errorf("expected file content 'ok', got %q (%v)", content, err)
	}
}

func TestOpenDB_Disabled(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.SaveToDB = false
	db, err := openDB(cfg, quietLogger())
	if err != nil || db != nil {
		t.Errorf("expected nil, nil when disabled, got %v, %v", db, err)
	}
}
