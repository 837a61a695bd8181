package database

import (
	"context"
	"fmt"
	"time"
)

// CrawlRun summarizes one crawl invocation.
type CrawlRun struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Domain     string
	StateFile  string
	Visited    int
	Fetched    int
	Failed     int
	Discovered int
	Queued     int

	// Error is the reason the crawl stopped early, empty on completion.
	Error string
}

// Duration returns how long the run took.
func (r CrawlRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// SaveCrawlRun stores run and returns its ID.
func (d *DB) SaveCrawlRun(ctx context.Context, run *CrawlRun) (int64, error) {
	query := `
	INSERT INTO crawl_runs (started_at, finished_at, domain, state_file, visited, fetched, failed, discovered, queued, error)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := d.db.ExecContext(ctx, query,
		formatTimestamp(run.StartedAt),
		formatTimestamp(run.FinishedAt),
		run.Domain,
		run.StateFile,
		run.Visited,
		run.Fetched,
		run.Failed,
		run.Discovered,
		run.Queued,
		run.Error,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save crawl run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read crawl run id: %w", err)
	}
	run.ID = id
	return id, nil
}

// ListCrawlRuns returns the most recent runs first. A non-positive limit
// returns every run.
func (d *DB) ListCrawlRuns(ctx context.Context, limit int) ([]CrawlRun, error) {
	query := `
	SELECT id, started_at, finished_at, domain, state_file, visited, fetched, failed, discovered, queued, error
	FROM crawl_runs
	ORDER BY started_at DESC, id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list crawl runs: %w", err)
	}
	defer rows.Close()

	var runs []CrawlRun
	for rows.Next() {
		var (
			run               CrawlRun
			started, finished string
		)
		err := rows.Scan(
			&run.ID,
			&started,
			&finished,
			&run.Domain,
			&run.StateFile,
			&run.Visited,
			&run.Fetched,
			&run.Failed,
			&run.Discovered,
			&run.Queued,
			&run.Error,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan crawl run: %w", err)
		}
		run.StartedAt = parseTimestamp(started)
		run.FinishedAt = parseTimestamp(finished)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
