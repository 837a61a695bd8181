package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/nao1215/cyriscan/internal/fetcher"
	"github.com/nao1215/cyriscan/internal/model"
)

// Checkpointer persists crawl progress.
// Save is called with the live state; implementations must not keep it.
type Checkpointer interface {
	Save(ctx context.Context, state *model.CrawlState) error
}

// Spider walks a domain breadth-first and collects requirement page URLs.
//
// Design decision: We call it "Spider" rather than "Crawler" because:
//  1. "Spider" is the traditional term for web crawlers
//  2. Distinguishes the component from the package name
//  3. Clearer in code: crawler.NewSpider() vs crawler.NewCrawler()
type Spider struct {
	// fetcher performs one GET at a time.
	fetcher fetcher.Fetcher

	// scope filters discovered links before they are enqueued.
	scope *Scope

	// target matches requirement page URLs.
	target *regexp.Regexp

	// robots is nil when robots.txt is not consulted.
	robots *RobotsAgent

	// checkpointer is nil when progress is not persisted.
	checkpointer Checkpointer

	// maxDepth limits how many hops from a seed are followed.
	// 0 means only the seeds are visited.
	maxDepth int

	// maxPages bounds the visited set, failed fetches included.
	maxPages int

	// saveEvery is the number of visited pages between checkpoints.
	saveEvery int

	// delay is the fixed politeness delay between fetches.
	delay time.Duration

	logger *slog.Logger

	// now is replaceable for deterministic checkpoints in tests.
	now func() time.Time

	mutex sync.Mutex
	stats SpiderStats
}

// SpiderStats contains statistics of the most recent Crawl call.
type SpiderStats struct {
	// Visited is the size of the visited set at the end of the run.
	Visited int

	// Fetched is the number of pages fetched successfully in this run.
	Fetched int

	// Failed is the number of fetches that failed in this run.
	Failed int

	// Queued is the number of entries left in the queue.
	Queued int

	// Discovered is the number of requirement URLs found so far.
	Discovered int

	// Checkpoints is the number of checkpoints written in this run.
	Checkpoints int
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithMaxDepth sets the maximum crawl depth.
func WithMaxDepth(depth int) SpiderOption {
	return func(s *Spider) {
		s.maxDepth = depth
	}
}

// WithMaxPages sets the maximum number of URLs to visit.
func WithMaxPages(maxPages int) SpiderOption {
	return func(s *Spider) {
		s.maxPages = maxPages
	}
}

// WithDelay sets the delay between requests.
func WithDelay(d time.Duration) SpiderOption {
	return func(s *Spider) {
		s.delay = d
	}
}

// WithPathPrefix restricts followed links to paths starting with prefix.
// An empty prefix allows every path on the domain.
func WithPathPrefix(prefix string) SpiderOption {
	return func(s *Spider) {
		s.scope.PathPrefix = prefix
	}
}

// WithIgnorePatterns sets URL path patterns to skip during crawling.
// Patterns use glob syntax (e.g., "/cyri/ajax/*", "*.pdf").
func WithIgnorePatterns(patterns []string) SpiderOption {
	return func(s *Spider) {
		s.scope.IgnorePatterns = patterns
	}
}

// WithTargetPattern replaces the requirement page matcher.
func WithTargetPattern(re *regexp.Regexp) SpiderOption {
	return func(s *Spider) {
		if re != nil {
			s.target = re
		}
	}
}

// WithRobots enables robots.txt checks before every fetch.
func WithRobots(agent *RobotsAgent) SpiderOption {
	return func(s *Spider) {
		s.robots = agent
	}
}

// WithCheckpointer sets where progress is saved.
// saveEvery is the number of visited pages between saves; values below 1 use 1.
func WithCheckpointer(cp Checkpointer, saveEvery int) SpiderOption {
	return func(s *Spider) {
		s.checkpointer = cp
		s.saveEvery = max(saveEvery, 1)
	}
}

// WithSpiderLogger sets the logger.
func WithSpiderLogger(logger *slog.Logger) SpiderOption {
	return func(s *Spider) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSpider creates a Spider that stays on domain.
// Defaults: depth 2, 300 pages, 700ms delay, path prefix "/cyri", and the
// requirement page pattern https://<domain>/cyri/requirements/<slug>/<id>.
func NewSpider(f fetcher.Fetcher, domain string, opts ...SpiderOption) *Spider {
	s := &Spider{
		fetcher:   f,
		scope:     &Scope{Domain: domain, PathPrefix: "/cyri"},
		target:    TargetPattern(domain, "/cyri/requirements"),
		maxDepth:  2,
		maxPages:  300,
		saveEvery: 20,
		delay:     700 * time.Millisecond,
		logger:    slog.Default(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Crawl continues the traversal held in state until the queue is empty,
// maxPages URLs are visited, or ctx is done. It mutates and returns state.
//
// A checkpoint is written every saveEvery visited pages, whenever the queue
// runs dry, and once more when the loop ends for any reason, so partial
// results survive an interrupted run. On cancellation the context error is
// returned together with the state.
func (s *Spider) Crawl(ctx context.Context, state *model.CrawlState) (*model.CrawlState, error) {
	if state == nil {
		state = model.NewCrawlState()
	}
	s.resetStats()

	dirty := false
	for state.QueueLen() > 0 && state.VisitedCount() < s.maxPages {
		if err := ctx.Err(); err != nil {
			return s.finish(state, dirty, err)
		}

		item, _ := state.Pop()
		dirty = true
		if state.IsVisited(item.URL) {
			// A resumed queue may drain through skips alone.
			if state.QueueLen() == 0 {
				s.checkpoint(ctx, state)
				dirty = false
			}
			continue
		}
		state.MarkVisited(item.URL)

		s.visit(ctx, state, item)

		if state.VisitedCount()%s.saveEvery == 0 || state.QueueLen() == 0 {
			s.checkpoint(ctx, state)
			dirty = false
		}

		if s.delay > 0 && state.QueueLen() > 0 && state.VisitedCount() < s.maxPages {
			select {
			case <-ctx.Done():
				return s.finish(state, dirty, ctx.Err())
			case <-time.After(s.delay):
			}
		}
	}

	return s.finish(state, dirty, nil)
}

// visit fetches one URL and folds its links into state.
func (s *Spider) visit(ctx context.Context, state *model.CrawlState, item model.QueueItem) {
	s.logger.Info("visiting",
		"n", state.VisitedCount(),
		"max", s.maxPages,
		"depth", item.Depth,
		"url", item.URL,
	)

	if s.robots != nil && !s.robots.Allowed(ctx, item.URL) {
		s.logger.Debug("disallowed by robots.txt", "url", item.URL)
		return
	}

	page, err := s.fetcher.Fetch(ctx, item.URL)
	if err != nil {
		s.mutex.Lock()
		s.stats.Failed++
		s.mutex.Unlock()
		s.logger.Warn("fetch failed", "url", item.URL, "error", err)
		return
	}
	s.mutex.Lock()
	s.stats.Fetched++
	s.mutex.Unlock()

	// Mislabelled pages still get scanned for targets; only HTML is followed.
	page.Links = ExtractLinks(page.Body, item.URL)

	before := state.DiscoveredCount()
	for _, link := range page.Links {
		if s.target.MatchString(link) {
			state.AddDiscovered(link)
		}
	}
	if found := state.DiscoveredCount(); found != before {
		s.logger.Info("found requirement URLs", "total", found, "new", found-before)
	}

	if item.Depth >= s.maxDepth || !page.IsHTML() {
		return
	}
	for _, link := range page.Links {
		if !state.IsVisited(link) && s.scope.Allows(link) {
			state.Enqueue(model.QueueItem{URL: link, Depth: item.Depth + 1})
		}
	}
}

// checkpoint saves state, logging failures instead of aborting the crawl.
func (s *Spider) checkpoint(ctx context.Context, state *model.CrawlState) {
	if err := s.save(ctx, state); err != nil {
		s.logger.Warn("checkpoint failed", "error", err)
	}
}

func (s *Spider) save(ctx context.Context, state *model.CrawlState) error {
	if s.checkpointer == nil {
		return nil
	}
	state.UpdatedAt = s.now()
	// A cancelled ctx must not prevent the final save.
	if err := s.checkpointer.Save(context.WithoutCancel(ctx), state); err != nil {
		return err
	}

	s.mutex.Lock()
	s.stats.Checkpoints++
	s.mutex.Unlock()

	s.logger.Info("checkpoint saved",
		"visited", state.VisitedCount(),
		"discovered", state.DiscoveredCount(),
		"queue", state.QueueLen(),
	)
	return nil
}

// finish writes the closing checkpoint and records final stats.
func (s *Spider) finish(state *model.CrawlState, dirty bool, cause error) (*model.CrawlState, error) {
	var saveErr error
	if dirty {
		if err := s.save(context.Background(), state); err != nil {
			saveErr = fmt.Errorf("final checkpoint: %w", err)
		}
	}

	s.mutex.Lock()
	s.stats.Visited = state.VisitedCount()
	s.stats.Queued = state.QueueLen()
	s.stats.Discovered = state.DiscoveredCount()
	s.mutex.Unlock()

	return state, errors.Join(cause, saveErr)
}

func (s *Spider) resetStats() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stats = SpiderStats{}
}

// Stats returns statistics of the most recent crawl.
func (s *Spider) Stats() SpiderStats {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.stats
}
