package model

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

// TestCrawlStateQueue tests FIFO ordering of the queue.
func TestCrawlStateQueue(t *testing.T) {
	t.Parallel()

	s := NewCrawlState()
	s.Enqueue(QueueItem{URL: "https://h/a", Depth: 0})
	s.Enqueue(QueueItem{URL: "https://h/b", Depth: 1})

	first, ok := s.Pop()
	if !ok || first.URL != "https://h/a" {
		t.Fatalf("expected https://h/a first, got %+v (ok=%v)", first, ok)
	}
	second, ok := s.Pop()
	if !ok || second.URL != "https://h/b" || second.Depth != 1 {
		t.Fatalf("expected https://h/b at depth 1, got %+v", second)
	}
	if _, ok := s.Pop(); ok {
		t.Error("expected empty queue")
	}
}

// TestCrawlStateDiscovered tests deduplication of discovered URLs.
func TestCrawlStateDiscovered(t *testing.T) {
	t.Parallel()

	s := NewCrawlState()
	if !s.AddDiscovered("https://h/z") {
		t.Error("expected first add to report new URL")
	}
	if s.AddDiscovered("https://h/z") {
		t.Error("expected duplicate add to report existing URL")
	}
	s.AddDiscovered("https://h/a")

	want := []string{"https://h/a", "https://h/z"}
	if got := s.DiscoveredURLs(); !reflect.DeepEqual(got, want) {
		t.Errorf("DiscoveredURLs() = %v, want %v", got, want)
	}
}

// TestCheckpointRoundTrip tests that a snapshot restores an equivalent state.
func TestCheckpointRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewCrawlState()
	s.MarkVisited("https://h/cyri")
	s.Enqueue(QueueItem{URL: "https://h/cyri/a", Depth: 1})
	s.Enqueue(QueueItem{URL: "https://h/cyri/b", Depth: 1})
	s.AddDiscovered("https://h/cyri/requirements/game/1")

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	data, err := json.Marshal(s.Snapshot(now))
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	restored := cp.Restore()

	if !reflect.DeepEqual(restored.VisitedURLs(), s.VisitedURLs()) {
		t.Errorf("visited mismatch: %v vs %v", restored.VisitedURLs(), s.VisitedURLs())
	}
	if !reflect.DeepEqual(restored.Queue(), s.Queue()) {
		t.Errorf("queue mismatch: %v vs %v", restored.Queue(), s.Queue())
	}
	if !reflect.DeepEqual(restored.DiscoveredURLs(), s.DiscoveredURLs()) {
		t.Errorf("discovered mismatch: %v vs %v", restored.DiscoveredURLs(), s.DiscoveredURLs())
	}
	if !restored.UpdatedAt.Equal(now) {
		t.Errorf("expected UpdatedAt %v, got %v", now, restored.UpdatedAt)
	}
}

// TestCheckpointRestoreNilSlices tests restoring a sparse checkpoint.
func TestCheckpointRestoreNilSlices(t *testing.T) {
	t.Parallel()

	var cp Checkpoint
	if err := json.Unmarshal([]byte(`{"visited":null}`), &cp); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	s := cp.Restore()
	if s.VisitedCount() != 0 || s.QueueLen() != 0 || s.DiscoveredCount() != 0 {
		t.Errorf("expected empty state, got visited=%d queue=%d discovered=%d",
			s.VisitedCount(), s.QueueLen(), s.DiscoveredCount())
	}
}
