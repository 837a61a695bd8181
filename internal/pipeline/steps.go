package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/cyriscan/internal/extractor"
	"github.com/nao1215/cyriscan/internal/fetcher"
	"github.com/nao1215/cyriscan/internal/model"
)

// FetchStep downloads the job's URL.
type FetchStep struct {
	fetcher fetcher.Fetcher
}

// NewFetchStep returns a step that fetches pages with f.
func NewFetchStep(f fetcher.Fetcher) *FetchStep {
	return &FetchStep{fetcher: f}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do fetches job.URL into job.Page.
func (s *FetchStep) Do(ctx context.Context, job *Job) error {
	page, err := s.fetcher.Fetch(ctx, job.URL)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", job.URL, err)
	}
	job.Page = page
	return nil
}

// ExtractStep turns the fetched page into a record.
type ExtractStep struct {
	extractor extractor.Extractor
	now       func() time.Time
}

// NewExtractStep returns a step that extracts records with e.
func NewExtractStep(e extractor.Extractor) *ExtractStep {
	return &ExtractStep{extractor: e, now: time.Now}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do parses job.Page into job.Record.
func (s *ExtractStep) Do(_ context.Context, job *Job) error {
	if job.Page == nil {
		return ErrNoPage
	}
	rec := s.extractor.Extract(job.Page)
	// Keep the URL that was asked for, not wherever redirects ended.
	rec.URL = job.URL
	if rec.FetchedAt.IsZero() {
		rec.FetchedAt = s.now().UTC()
	}
	job.Record = rec
	return nil
}

// RecordStore persists records. database.DB implements it.
type RecordStore interface {
	UpsertRequirement(ctx context.Context, rec *model.RequirementRecord) error
}

// StoreStep saves the record to a RecordStore.
type StoreStep struct {
	store  RecordStore
	logger *slog.Logger
}

// NewStoreStep returns a step that writes records to store.
func NewStoreStep(store RecordStore, logger *slog.Logger) *StoreStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreStep{store: store, logger: logger}
}

// Name returns the step name.
func (s *StoreStep) Name() string {
	return "store"
}

// Do upserts job.Record.
func (s *StoreStep) Do(ctx context.Context, job *Job) error {
	if job.Record == nil {
		return ErrNoRecord
	}
	if err := s.store.UpsertRequirement(ctx, job.Record); err != nil {
		return fmt.Errorf("store %s: %w", job.URL, err)
	}
	s.logger.Debug("record stored", "url", job.URL)
	return nil
}

// NewScrapePipeline builds the fetch and extract pipeline, plus a store
// step when store is non-nil.
func NewScrapePipeline(f fetcher.Fetcher, e extractor.Extractor, store RecordStore, logger *slog.Logger) *Pipeline {
	p := New(WithLogger(logger))
	p.AddSteps(NewFetchStep(f), NewExtractStep(e))
	if store != nil {
		p.AddStep(NewStoreStep(store, logger))
	}
	return p
}
