package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/cyriscan/internal/checkpoint"
	"github.com/nao1215/cyriscan/internal/config"
	"github.com/nao1215/cyriscan/internal/extractor"
	"github.com/nao1215/cyriscan/internal/fetcher"
	"github.com/nao1215/cyriscan/internal/model"
	"github.com/nao1215/cyriscan/internal/pipeline"
	"github.com/nao1215/cyriscan/internal/report"
)

// NewScrapeCmd creates the scrape command.
func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Extract minimum and recommended requirements from pages",
		Long: `Scrape fetches every requirement page URL and extracts the minimum and
recommended requirement blocks (CPU, video card, memory, OS, ...).

URLs come from --url, or from --file (default: the crawl results file).
Pages are fetched in batches with a delay between batches. Failed pages are
kept as records with an error so the results file has one entry per URL.

After --max-failures consecutive failed pages the scrape stops; the records
gathered so far are still written.

Examples:
  # Scrape everything the last crawl found
  cyriscan scrape

  # Scrape two pages, three at a time
  cyriscan scrape --url https://www.systemrequirementslab.com/cyri/requirements/hollow-knight/16225 \
    --url https://www.systemrequirementslab.com/cyri/requirements/celeste/15779 --batch 3`,
		Args: cobra.NoArgs,
		RunE: runScrapeCmd,
	}

	cmd.Flags().StringArray("url", nil, "Requirement page URL (repeatable)")
	cmd.Flags().StringP("file", "f", "", "File of URLs, one per line (default: crawl results file)")
	cmd.Flags().StringP("out", "o", config.DefaultDataFile, "Output JSON file")
	cmd.Flags().Duration("delay", config.DefaultScrapeDelay, "Delay between batches")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize, "Pages fetched concurrently per batch")
	cmd.Flags().Int("max-failures", config.DefaultMaxConsecutiveFailures, "Stop after this many consecutive failures (0 = never)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout, "Per-request timeout")
	cmd.Flags().Bool("no-db", false, "Do not store records in the database")

	return cmd
}

func runScrapeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildScrapeConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg)
	ctx, cancel := signalContext(logger)
	defer cancel()

	return runScrape(ctx, cfg, newFetcher(cfg), cmd.OutOrStdout(), logger)
}

// buildScrapeConfig layers scrape flags over the configuration file.
func buildScrapeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	overrides := []error{
		overrideStrings(flags, "url", &cfg.ScrapeURLs),
		overrideString(flags, "file", &cfg.ScrapeFile),
		overrideString(flags, "out", &cfg.DataFile),
		overrideDuration(flags, "delay", &cfg.ScrapeDelay),
		overrideInt(flags, "batch", &cfg.BatchSize),
		overrideInt(flags, "max-failures", &cfg.MaxConsecutiveFailures),
		overrideDuration(flags, "timeout", &cfg.Timeout),
	}
	if err := errors.Join(overrides...); err != nil {
		return nil, err
	}

	noDB, err := flags.GetBool("no-db")
	if err != nil {
		return nil, err
	}
	if noDB {
		cfg.SaveToDB = false
	}
	return cfg, nil
}

// scrapeURLs returns the URLs to scrape: --url values win, then the scrape
// file, then the crawl results file.
func scrapeURLs(cfg *config.Config) ([]string, error) {
	if len(cfg.ScrapeURLs) > 0 {
		return cfg.ScrapeURLs, nil
	}
	path := cfg.ScrapeFile
	if path == "" {
		path = cfg.URLsFile
	}
	urls, err := checkpoint.ReadURLList(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read URL file: %w", err)
	}
	return urls, nil
}

// runScrape scrapes every URL with f, writes the data file and prints a
// summary to out.
func runScrape(ctx context.Context, cfg *config.Config, f fetcher.Fetcher, out io.Writer, logger *slog.Logger) error {
	urls, err := scrapeURLs(cfg)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintln(out, "No URLs to scrape. Run 'cyriscan crawl' first or pass --url.")
		return nil
	}

	db, err := openDB(cfg, logger)
	if err != nil {
		return err
	}
	// A nil *database.DB must not reach the pipeline as a non-nil interface.
	var store pipeline.RecordStore
	if db != nil {
		defer db.Close()
		store = db
	}

	ext := extractor.New()
	processor := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.NewScrapePipeline(f, ext, store, logger)
		},
		pipeline.WithBatchLogger(logger),
		pipeline.WithBatchSize(cfg.BatchSize),
		pipeline.WithBatchDelay(cfg.ScrapeDelay),
		pipeline.WithMaxConsecutiveFailures(cfg.MaxConsecutiveFailures),
		pipeline.WithRecordCallback(func(rec *model.RequirementRecord, index, total int) {
			if rec.Failed() {
				fmt.Fprintf(out, "[%d/%d] FAILED %s: %s\n", index+1, total, rec.URL, rec.Error)
				storeFailure(ctx, store, rec, logger)
				return
			}
			fmt.Fprintf(out, "[%d/%d] %s\n", index+1, total, rec.Title())
		}),
	)

	records, processErr := processor.Process(ctx, urls)

	if err := writeDataFile(cfg.DataFile, records); err != nil {
		return errors.Join(processErr, err)
	}

	failed := 0
	for _, rec := range records {
		if rec.Failed() {
			failed++
		}
	}
	fmt.Fprintf(out, "Scraped %d of %d URLs (%d failed) -> %s\n", len(records), len(pipeline.DedupURLs(urls)), failed, cfg.DataFile)

	switch {
	case processErr == nil:
		return nil
	case isInterrupted(processErr):
		fmt.Fprintln(out, "Scrape interrupted; partial results written")
		return nil
	default:
		return processErr
	}
}

// storeFailure records a failed page. The pipeline stops before its store
// step when the fetch fails, and the upsert keeps any earlier good row.
func storeFailure(ctx context.Context, store pipeline.RecordStore, rec *model.RequirementRecord, logger *slog.Logger) {
	if store == nil {
		return
	}
	if err := store.UpsertRequirement(context.WithoutCancel(ctx), rec); err != nil {
		logger.Warn("failed to store error record", "url", rec.URL, "error", err)
	}
}

func writeDataFile(path string, records []*model.RequirementRecord) error {
	file, err := createOutputFile(path)
	if err != nil {
		return err
	}
	if err := report.WriteRecords(file, records); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
