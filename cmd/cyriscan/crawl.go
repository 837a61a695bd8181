package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/cyriscan/internal/checkpoint"
	"github.com/nao1215/cyriscan/internal/config"
	"github.com/nao1215/cyriscan/internal/crawler"
	"github.com/nao1215/cyriscan/internal/database"
	"github.com/nao1215/cyriscan/internal/fetcher"
	"github.com/nao1215/cyriscan/internal/model"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Discover requirement page URLs",
		Long: `Crawl walks the site breadth-first from the seeds and collects every
requirement page URL (/cyri/requirements/<slug>/<id>) it sees.

Progress is checkpointed to the state file every --save-every pages and on
interrupt. Running crawl again with the same state file resumes where the
previous run stopped; visited pages are never fetched twice.

Examples:
  # Crawl with the defaults (300 pages, depth 2)
  cyriscan crawl

  # Crawl from a custom seed with a bigger budget
  cyriscan crawl --seed https://www.systemrequirementslab.com/cyri/requirements --max 1000

  # Follow every path on the domain, not just /cyri
  cyriscan crawl --all-paths`,
		Args: cobra.NoArgs,
		RunE: runCrawlCmd,
	}

	cmd.Flags().StringArray("seed", nil, "Seed URL (repeatable)")
	cmd.Flags().String("seed-file", "", "File of seed URLs, one per line")
	cmd.Flags().StringP("out", "o", config.DefaultURLsFile, "Results file of requirement URLs")
	cmd.Flags().IntP("max", "m", config.DefaultMaxPages, "Maximum number of pages to visit")
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth, "Maximum hops from a seed")
	cmd.Flags().StringP("state", "s", config.DefaultStateFile, "Checkpoint file")
	cmd.Flags().Duration("delay", config.DefaultCrawlDelay, "Delay between requests")
	cmd.Flags().Int("save-every", config.DefaultSaveEvery, "Pages between checkpoints")
	cmd.Flags().Bool("all-paths", false, "Follow links outside the /cyri path prefix")
	cmd.Flags().String("domain", config.DefaultDomain, "Host to stay on")
	cmd.Flags().Bool("respect-robots", false, "Skip URLs disallowed by robots.txt")
	cmd.Flags().StringArray("ignore", nil, "Path glob to skip, e.g. /cyri/forum/* (repeatable)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout, "Per-request timeout")
	cmd.Flags().Bool("no-db", false, "Do not record the run in the database")

	return cmd
}

func runCrawlCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildCrawlConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg)
	ctx, cancel := signalContext(logger)
	defer cancel()

	httpFetcher := newFetcher(cfg)
	var robots *crawler.RobotsAgent
	if cfg.RespectRobots {
		robots = crawler.NewRobotsAgent(httpFetcher.Client(), httpFetcher.UserAgent())
	}

	return runCrawl(ctx, cfg, httpFetcher, robots, cmd.OutOrStdout(), logger)
}

// buildCrawlConfig layers crawl flags over the configuration file.
func buildCrawlConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	overrides := []error{
		overrideStrings(flags, "seed", &cfg.Seeds),
		overrideString(flags, "seed-file", &cfg.SeedFile),
		overrideString(flags, "out", &cfg.URLsFile),
		overrideInt(flags, "max", &cfg.MaxPages),
		overrideInt(flags, "depth", &cfg.MaxDepth),
		overrideString(flags, "state", &cfg.StateFile),
		overrideDuration(flags, "delay", &cfg.CrawlDelay),
		overrideInt(flags, "save-every", &cfg.SaveEvery),
		overrideBool(flags, "all-paths", &cfg.AllPaths),
		overrideString(flags, "domain", &cfg.Domain),
		overrideBool(flags, "respect-robots", &cfg.RespectRobots),
		overrideStrings(flags, "ignore", &cfg.IgnorePatterns),
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

// crawlSeeds merges --seed values and the seed file. The default seed is
// used when both are empty.
func crawlSeeds(cfg *config.Config) ([]string, error) {
	seeds := append([]string(nil), cfg.Seeds...)
	if cfg.SeedFile != "" {
		fromFile, err := checkpoint.ReadURLList(cfg.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		seeds = append(seeds, fromFile...)
	}
	if len(seeds) == 0 {
		seeds = []string{config.DefaultSeed}
	}
	return seeds, nil
}

// loadCrawlState returns the checkpoint to resume from, or nil for a fresh
// crawl. A corrupt checkpoint is reported and replaced.
func loadCrawlState(ctx context.Context, store *checkpoint.FileStore, logger *slog.Logger) (*model.CrawlState, error) {
	loaded, err := store.Load(ctx)
	switch {
	case err == nil:
		logger.Info("resuming crawl",
			"state", store.StatePath(),
			"visited", loaded.VisitedCount(),
			"queued", loaded.QueueLen(),
			"discovered", loaded.DiscoveredCount(),
		)
		return loaded, nil
	case errors.Is(err, checkpoint.ErrNoCheckpoint):
		return nil, nil
	case errors.Is(err, checkpoint.ErrCorruptCheckpoint):
		logger.Warn("ignoring unreadable checkpoint, starting fresh", "error", err)
		return nil, nil
	default:
		return nil, err
	}
}

// runCrawl runs one crawl with f and reports the outcome to out.
// robots may be nil.
func runCrawl(ctx context.Context, cfg *config.Config, f fetcher.Fetcher, robots *crawler.RobotsAgent, out io.Writer, logger *slog.Logger) error {
	seeds, err := crawlSeeds(cfg)
	if err != nil {
		return err
	}

	store := checkpoint.NewFileStore(cfg.StateFile, cfg.URLsFile)
	if err := store.Lock(); err != nil {
		return err
	}
	defer func() {
		if err := store.Unlock(); err != nil {
			logger.Warn("failed to release checkpoint lock", "error", err)
		}
	}()

	loaded, err := loadCrawlState(ctx, store, logger)
	if err != nil {
		return err
	}
	state := crawler.PrepareState(loaded, seeds)

	prefix := cfg.PathPrefix
	if cfg.AllPaths {
		prefix = ""
	}
	opts := []crawler.SpiderOption{
		crawler.WithMaxDepth(cfg.MaxDepth),
		crawler.WithMaxPages(cfg.MaxPages),
		crawler.WithDelay(cfg.CrawlDelay),
		crawler.WithPathPrefix(prefix),
		crawler.WithIgnorePatterns(cfg.IgnorePatterns),
		crawler.WithTargetPattern(crawler.TargetPattern(cfg.Domain, cfg.TargetPrefix)),
		crawler.WithCheckpointer(store, cfg.SaveEvery),
		crawler.WithSpiderLogger(logger),
	}
	if robots != nil {
		opts = append(opts, crawler.WithRobots(robots))
	}
	spider := crawler.NewSpider(f, cfg.Domain, opts...)

	logger.Info("starting crawl",
		"domain", cfg.Domain,
		"seeds", len(seeds),
		"maxPages", cfg.MaxPages,
		"maxDepth", cfg.MaxDepth,
	)
	started := time.Now()
	state, crawlErr := spider.Crawl(ctx, state)
	finished := time.Now()
	stats := spider.Stats()

	fmt.Fprintf(out, "Visited %d pages (%d fetched, %d failed this run) in %s\n",
		stats.Visited, stats.Fetched, stats.Failed, finished.Sub(started).Round(time.Millisecond))
	fmt.Fprintf(out, "Found %d requirement URLs -> %s\n", state.DiscoveredCount(), cfg.URLsFile)
	if stats.Queued > 0 {
		fmt.Fprintf(out, "%d URLs left in the queue; run crawl again to continue from %s\n", stats.Queued, cfg.StateFile)
	}

	recordCrawlRun(cfg, stats, started, finished, crawlErr, logger)

	if isInterrupted(crawlErr) {
		fmt.Fprintf(out, "Crawl interrupted; progress saved to %s\n", cfg.StateFile)
		return nil
	}
	return crawlErr
}

// recordCrawlRun stores a run summary for the history command.
// Failures are logged; the crawl results are already on disk.
func recordCrawlRun(cfg *config.Config, stats crawler.SpiderStats, started, finished time.Time, crawlErr error, logger *slog.Logger) {
	db, err := openDB(cfg, logger)
	if err != nil {
		logger.Warn("crawl run not recorded", "error", err)
		return
	}
	if db == nil {
		return
	}
	defer db.Close()

	run := &database.CrawlRun{
		StartedAt:  started,
		FinishedAt: finished,
		Domain:     cfg.Domain,
		StateFile:  cfg.StateFile,
		Visited:    stats.Visited,
		Fetched:    stats.Fetched,
		Failed:     stats.Failed,
		Discovered: stats.Discovered,
		Queued:     stats.Queued,
	}
	if crawlErr != nil {
		run.Error = crawlErr.Error()
	}
	// The run context may already be cancelled.
	if _, err := db.SaveCrawlRun(context.Background(), run); err != nil {
		logger.Warn("crawl run not recorded", "error", err)
	}
}
