package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/cyriscan/internal/config"
	"github.com/nao1215/cyriscan/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past crawl runs and stored records",
		Long: `History lists recent crawl runs recorded in the database together with
the number of requirement records stored by scrape.

Examples:
  cyriscan history
  cyriscan history --limit 5`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", 10, "Number of runs to show (0 = all)")

	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	return runHistory(cmd.Context(), cfg, limit, cmd.OutOrStdout())
}

func runHistory(ctx context.Context, cfg *config.Config, limit int, out io.Writer) error {
	db, err := database.Open(cfg.DBDir, database.Options{})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	total, failed, err := db.CountRequirements(ctx)
	if err != nil {
		return err
	}
	runs, err := db.ListCrawlRuns(ctx, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Database: %s\n", db.Path())
	fmt.Fprintf(out, "Requirement records: %d (%d failed)\n\n", total, failed)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No crawl runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tDURATION\tDOMAIN\tVISITED\tFOUND\tQUEUED\tSTATUS")
	for _, run := range runs {
		status := "ok"
		if run.Error != "" {
			status = run.Error
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			run.Duration().Round(time.Second),
			run.Domain,
			run.Visited,
			run.Discovered,
			run.Queued,
			status,
		)
	}
	return tw.Flush()
}
