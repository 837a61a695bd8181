package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/cyriscan/internal/database"
)

func TestRunHistory(t *testing.T) {
	t.Parallel()

	t.Run("lists runs and record counts", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		started := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
		runs := []*database.CrawlRun{
			{StartedAt: started, FinishedAt: started.Add(time.Minute), Domain: "older.example", Visited: 40, Discovered: 12},
			{StartedAt: started.Add(time.Hour), FinishedAt: started.Add(time.Hour + time.Minute), Domain: "newer.example", Visited: 10, Queued: 5, Error: "context canceled"},
		}
		for _, run := range runs {
			if _, err := db.SaveCrawlRun(context.Background(), run); err != nil {
				t.Fatal(err)
			}
		}
		for _, rec := range scoreRecords() {
			if err := db.UpsertRequirement(context.Background(), rec); err != nil {
				t.Fatal(err)
			}
		}
		db.Close()

		var out bytes.Buffer
		if err := runHistory(context.Background(), cfg, 10, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := out.String()
		if !strings.Contains(output, "Requirement records: 3 (1 failed)") {
			t.Errorf("expected record counts, got %q", output)
		}
		if !strings.Contains(output, "context canceled") {
			t.Errorf("expected failed run status, got %q", output)
		}
		if strings.Index(output, "newer.example") > strings.Index(output, "older.example") {
			t.Errorf("expected newest run first, got %q", output)
		}
	})

	t.Run("limit", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		now := time.Now()
		for i := range 3 {
			run := &database.CrawlRun{StartedAt: now.Add(time.Duration(i) * time.Minute), FinishedAt: now, Domain: "host-" + string(rune('a'+i))}
			if _, err := db.SaveCrawlRun(context.Background(), run); err != nil {
				t.Fatal(err)
			}
		}
		db.Close()

		var out bytes.Buffer
		if err := runHistory(context.Background(), cfg, 1, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "host-c") || strings.Contains(out.String(), "host-a") {
			t.Errorf("expected only the newest run, got %q", out.String())
		}
	})

	t.Run("empty database", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		db.Close()

		var out bytes.Buffer
		if err := runHistory(context.Background(), cfg, 0, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "No crawl runs recorded") {
			t.Errorf("unexpected output %q", out.String())
		}
	})

	t.Run("missing database", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		err := runHistory(context.Background(), cfg, 0, &bytes.Buffer{})
		if !errors.Is(err, database.ErrDatabaseNotFound) {
			t.Errorf("expected ErrDatabaseNotFound, got %v", err)
		}
	})
}
