package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/cyriscan/internal/config"
	"github.com/nao1215/cyriscan/internal/database"
	"github.com/nao1215/cyriscan/internal/model"
	"github.com/nao1215/cyriscan/internal/report"
	"github.com/nao1215/cyriscan/internal/scorer"
)

// NewScoreCmd creates the score command.
func NewScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Rank scraped games by hardware demand",
		Long: `Score normalizes the CPU, video card and memory of each game's minimum
requirements, looks the models up in the benchmark tables and ranks games by
a composite score (CPU 40%, GPU 50%, 150 points per GB of RAM).

Models missing from the tables get the default score and are marked in the
report. Extra benchmark entries can be added in the scoring section of the
configuration file.

Examples:
  # Rank the last scrape
  cyriscan score

  # Top 20 as Markdown
  cyriscan score --markdown --top 20 -o ranking.md

  # Rank everything stored in the database as JSON
  cyriscan score --from-db --json`,
		Args: cobra.NoArgs,
		RunE: runScoreCmd,
	}

	cmd.Flags().StringP("in", "i", config.DefaultDataFile, "Scrape results file to read")
	cmd.Flags().Bool("from-db", false, "Read records from the database instead of a file")
	cmd.Flags().BoolP("json", "j", false, "Output ranking in JSON format")
	cmd.Flags().Bool("markdown", false, "Output ranking in Markdown format")
	cmd.Flags().StringP("output", "o", "", "Write the ranking to a file")
	cmd.Flags().IntP("top", "n", 0, "Show only the N most demanding games (0 = all)")

	return cmd
}

// scoreOptions are the score command settings that have no config field.
type scoreOptions struct {
	input  string
	fromDB bool
	top    int
}

func runScoreCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	overrides := []error{
		overrideBool(flags, "json", &cfg.JSONReport),
		overrideBool(flags, "markdown", &cfg.MarkdownReport),
		overrideString(flags, "output", &cfg.ReportFile),
	}
	if err := errors.Join(overrides...); err != nil {
		return err
	}
	if cfg.JSONReport && cfg.MarkdownReport {
		return errors.New("--json and --markdown cannot be used together")
	}

	opts := scoreOptions{}
	if opts.input, err = flags.GetString("in"); err != nil {
		return err
	}
	if !flags.Changed("in") {
		opts.input = cfg.DataFile
	}
	if opts.fromDB, err = flags.GetBool("from-db"); err != nil {
		return err
	}
	if opts.top, err = flags.GetInt("top"); err != nil {
		return err
	}

	logger := setupLogger(cfg)

	out := cmd.OutOrStdout()
	if cfg.ReportFile != "" {
		file, err := createOutputFile(cfg.ReportFile)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	if err := runScore(cmd.Context(), cfg, opts, out, logger); err != nil {
		return err
	}
	if cfg.ReportFile != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Ranking written to %s\n", cfg.ReportFile)
	}
	return nil
}

// runScore loads records, ranks them and writes the report to out.
func runScore(ctx context.Context, cfg *config.Config, opts scoreOptions, out io.Writer, logger *slog.Logger) error {
	records, source, err := loadRecords(ctx, cfg, opts)
	if err != nil {
		return err
	}
	logger.Debug("records loaded", "source", source, "count", len(records))

	sc := scorer.New(
		scorer.WithCPUScores(cfg.CPUBenchmarks),
		scorer.WithGPUScores(cfg.GPUBenchmarks),
		scorer.WithDefaultScores(cfg.DefaultCPUScore, cfg.DefaultGPUScore),
	)
	ranking := report.NewRanking(sc.Rank(records), len(records))
	ranking.Version = getVersion()
	ranking.Source = source

	if _, err := newReportWriter(cfg, out).Write(ranking.Top(opts.top)); err != nil {
		return fmt.Errorf("failed to write ranking: %w", err)
	}
	return nil
}

func newReportWriter(cfg *config.Config, out io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(out, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose))
	}
}

// loadRecords reads records from the database or the scrape results file
// and returns them with a description of where they came from.
func loadRecords(ctx context.Context, cfg *config.Config, opts scoreOptions) ([]*model.RequirementRecord, string, error) {
	if opts.fromDB {
		db, err := database.Open(cfg.DBDir, database.Options{})
		if err != nil {
			return nil, "", fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		records, err := db.ListRequirements(ctx, database.ListOptions{IncludeFailed: true})
		if err != nil {
			return nil, "", err
		}
		return records, db.Path(), nil
	}

	file, err := os.Open(opts.input) //nolint:gosec // input path chosen by the user
	if err != nil {
		return nil, "", fmt.Errorf("failed to open results file: %w", err)
	}
	defer file.Close()

	records, err := report.ReadRecords(file)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", opts.input, err)
	}
	return records, opts.input, nil
}
