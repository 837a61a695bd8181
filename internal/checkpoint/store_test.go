package checkpoint

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/nao1215/cyriscan/internal/model"
)

func sampleState() *model.CrawlState {
	s := model.NewCrawlState()
	s.MarkVisited("https://www.systemrequirementslab.com/cyri")
	s.MarkVisited("https://www.systemrequirementslab.com/cyri/game-lists")
	s.Enqueue(model.QueueItem{URL: "https://www.systemrequirementslab.com/cyri/a", Depth: 1})
	s.Enqueue(model.QueueItem{URL: "https://www.systemrequirementslab.com/cyri/b", Depth: 2})
	s.AddDiscovered("https://www.systemrequirementslab.com/cyri/requirements/zeta/2")
	s.AddDiscovered("https://www.systemrequirementslab.com/cyri/requirements/alpha/1")
	s.UpdatedAt = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return s
}

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "crawl-state.json"), filepath.Join(dir, "cyri-urls.txt"))

	want := sampleState()
	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !slices.Equal(got.VisitedURLs(), want.VisitedURLs()) {
		t.Errorf("visited mismatch: got %v, want %v", got.VisitedURLs(), want.VisitedURLs())
	}
	if !slices.Equal(got.Queue(), want.Queue()) {
		t.Errorf("queue mismatch: got %v, want %v", got.Queue(), want.Queue())
	}
	if !slices.Equal(got.DiscoveredURLs(), want.DiscoveredURLs()) {
		t.Errorf("discovered mismatch: got %v, want %v", got.DiscoveredURLs(), want.DiscoveredURLs())
	}
	if !got.UpdatedAt.Equal(want.UpdatedAt) {
		t.Errorf("expected updatedAt %v, got %v", want.UpdatedAt, got.UpdatedAt)
	}

	results, err := os.ReadFile(filepath.Join(dir, "cyri-urls.txt"))
	if err != nil {
		t.Fatalf("results file missing: %v", err)
	}
	wantResults := "https://www.systemrequirementslab.com/cyri/requirements/alpha/1\n" +
		"https://www.systemrequirementslab.com/cyri/requirements/zeta/2\n"
	if string(results) != wantResults {
		t.Errorf("unexpected results file:\n%s", results)
	}
}

func TestFileStore_Load(t *testing.T) {
	t.Parallel()

	t.Run("missing file returns ErrNoCheckpoint", func(t *testing.T) {
		t.Parallel()

		store := NewFileStore(filepath.Join(t.TempDir(), "state.json"), "")
		if _, err := store.Load(context.Background()); !errors.Is(err, ErrNoCheckpoint) {
			t.Errorf("expected ErrNoCheckpoint, got %v", err)
		}
	})

	t.Run("garbage returns ErrCorruptCheckpoint", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "state.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := NewFileStore(path, "").Load(context.Background()); !errors.Is(err, ErrCorruptCheckpoint) {
			t.Errorf("expected ErrCorruptCheckpoint, got %v", err)
		}
	})

	t.Run("document written by hand is accepted", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "state.json")
		doc := `{"visited":["https://h/cyri"],"queue":[{"url":"https://h/cyri/x","depth":1}],"discovered":[],"updatedAt":"2025-01-01T00:00:00Z"}`
		if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
			t.Fatal(err)
		}
		state, err := NewFileStore(path, "").Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !state.IsVisited("https://h/cyri") || state.QueueLen() != 1 {
			t.Errorf("unexpected state: visited=%v queue=%v", state.VisitedURLs(), state.Queue())
		}
	})
}

func TestFileStore_Lock(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	first := NewFileStore(path, "")
	second := NewFileStore(path, "")

	if err := first.Lock(); err != nil {
		t.Fatalf("first lock failed: %v", err)
	}

	if err := second.Lock(); !errors.Is(err, ErrLocked) {
		t.Errorf("expected ErrLocked, got %v", err)
	}
	if err := second.Save(context.Background(), model.NewCrawlState()); !errors.Is(err, ErrLocked) {
		t.Errorf("expected save to fail with ErrLocked, got %v", err)
	}

	// The owner can keep saving while it holds the lock.
	if err := first.Save(context.Background(), sampleState()); err != nil {
		t.Errorf("owner save failed: %v", err)
	}

	if err := first.Unlock(); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}
	if err := second.Lock(); err != nil {
		t.Errorf("expected lock after release, got %v", err)
	}
	_ = second.Unlock()
}
