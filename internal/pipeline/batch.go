package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/cyriscan/internal/model"
)

// Batch defaults.
const (
	DefaultBatchSize   = 1
	DefaultBatchDelay  = 1200 * time.Millisecond
	DefaultMaxFailures = 5
)

// BatchProcessor scrapes URLs in fixed-size batches.
//
// Items within a batch run concurrently through fresh pipelines and the batch
// is a join barrier: the next batch starts only after every item finished
// and the delay elapsed. With a batch size of 1 this is a plain sequential
// scrape with a pause between requests.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each URL.
	pipelineFactory func() *Pipeline

	batchSize   int
	delay       time.Duration
	maxFailures int

	onRecord func(rec *model.RequirementRecord, index, total int)
	sleep    func(ctx context.Context, d time.Duration) error
	logger   *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithBatchSize sets how many URLs are scraped concurrently.
// Non-positive values keep the default of 1.
func WithBatchSize(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.batchSize = n
		}
	}
}

// WithBatchDelay sets the pause between batches. Negative values are ignored.
func WithBatchDelay(d time.Duration) BatchOption {
	return func(b *BatchProcessor) {
		if d >= 0 {
			b.delay = d
		}
	}
}

// WithMaxConsecutiveFailures sets how many failed items in a row stop the
// run. Zero disables the guard; negative values are ignored.
func WithMaxConsecutiveFailures(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n >= 0 {
			b.maxFailures = n
		}
	}
}

// WithRecordCallback registers fn to be called, in input order, for every
// record once its batch has finished.
func WithRecordCallback(fn func(rec *model.RequirementRecord, index, total int)) BatchOption {
	return func(b *BatchProcessor) {
		b.onRecord = fn
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		batchSize:       DefaultBatchSize,
		delay:           DefaultBatchDelay,
		maxFailures:     DefaultMaxFailures,
		sleep:           sleepContext,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// Process scrapes urls and returns one record per distinct URL, in input
// order. Failed fetches yield records with Error set.
//
// When the consecutive failure guard trips, the records of every finished
// batch are returned with ErrTooManyFailures. On cancellation the finished
// records are returned with the context error.
func (bp *BatchProcessor) Process(ctx context.Context, urls []string) ([]*model.RequirementRecord, error) {
	urls = DedupURLs(urls)
	total := len(urls)

	bp.logger.Info("starting scrape",
		"total_urls", total,
		"batch_size", bp.batchSize,
		"delay", bp.delay,
	)
	startTime := time.Now()

	records := make([]*model.RequirementRecord, 0, total)
	consecutive := 0
	failed := 0

	for start := 0; start < total; start += bp.batchSize {
		if start > 0 {
			if err := bp.sleep(ctx, bp.delay); err != nil {
				return records, err
			}
		}
		if err := ctx.Err(); err != nil {
			return records, err
		}

		end := min(start+bp.batchSize, total)
		batch := bp.runBatch(ctx, urls[start:end])

		for i, rec := range batch {
			records = append(records, rec)
			if bp.onRecord != nil {
				bp.onRecord(rec, start+i, total)
			}
			if rec.Failed() {
				failed++
				consecutive++
			} else {
				consecutive = 0
			}
		}

		if bp.maxFailures > 0 && consecutive >= bp.maxFailures {
			bp.logger.Error("stopping scrape after consecutive failures",
				"failures", consecutive,
				"done", len(records),
				"total_urls", total,
			)
			return records, ErrTooManyFailures
		}
	}

	bp.logger.Info("scrape complete",
		"total_urls", total,
		"failed", failed,
		"elapsed", time.Since(startTime),
	)
	return records, nil
}

// runBatch scrapes one batch concurrently and returns its records in order.
func (bp *BatchProcessor) runBatch(ctx context.Context, urls []string) []*model.RequirementRecord {
	results := make([]*model.RequirementRecord, len(urls))

	var g errgroup.Group
	g.SetLimit(len(urls))
	for i, u := range urls {
		g.Go(func() error {
			job := NewJob(u)
			if err := bp.pipelineFactory().Execute(ctx, job); err != nil {
				bp.logger.Warn("scrape failed", "url", u, "error", err)
			}
			// Each goroutine owns its slot.
			results[i] = job.Result()
			return nil
		})
	}
	// Items never return errors; failures live in the records.
	_ = g.Wait() //nolint:errcheck

	return results
}

// DedupURLs trims urls, drops blanks and repeats, and keeps first-seen order.
func DedupURLs(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
