package model

import (
	"sort"
	"time"
)

// QueueItem is a pending visit in the breadth-first queue.
type QueueItem struct {
	// URL is the canonical URL to visit.
	URL string `json:"url"`

	// Depth is the number of hops from a seed. Seeds have depth 0.
	Depth int `json:"depth"`
}

// CrawlState holds the progress of a crawl so that it can be checkpointed
// and resumed later.
//
// Design decision: The state is an explicit value passed into and returned
// from the crawl rather than package-level variables because:
//  1. A resumed run and a fresh run go through the same code path
//  2. Tests can build any state directly without touching the filesystem
//  3. The checkpoint store stays a plain serializer with no hidden coupling
//
// CrawlState is not safe for concurrent use. The crawler is its only writer.
type CrawlState struct {
	visited    map[string]struct{}
	queue      []QueueItem
	discovered map[string]struct{}

	// UpdatedAt is the time the state was last snapshotted.
	UpdatedAt time.Time
}

// Checkpoint is the serialized form of a CrawlState.
type Checkpoint struct {
	Visited    []string    `json:"visited"`
	Queue      []QueueItem `json:"queue"`
	Discovered []string    `json:"discovered"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// NewCrawlState returns an empty state.
func NewCrawlState() *CrawlState {
	return &CrawlState{
		visited:    make(map[string]struct{}),
		queue:      make([]QueueItem, 0),
		discovered: make(map[string]struct{}),
	}
}

// IsVisited reports whether url was already visited.
func (s *CrawlState) IsVisited(url string) bool {
	_, ok := s.visited[url]
	return ok
}

// MarkVisited records url as visited. The visited set never shrinks.
func (s *CrawlState) MarkVisited(url string) {
	s.visited[url] = struct{}{}
}

// VisitedCount returns the number of visited URLs.
func (s *CrawlState) VisitedCount() int {
	return len(s.visited)
}

// Enqueue appends an item to the tail of the queue.
func (s *CrawlState) Enqueue(item QueueItem) {
	s.queue = append(s.queue, item)
}

// Pop removes and returns the head of the queue.
// The second return value is false when the queue is empty.
func (s *CrawlState) Pop() (QueueItem, bool) {
	if len(s.queue) == 0 {
		return QueueItem{}, false
	}
	item := s.queue[0]
	s.queue = s.queue[1:]
	return item, true
}

// QueueLen returns the number of pending items.
func (s *CrawlState) QueueLen() int {
	return len(s.queue)
}

// Queue returns a copy of the pending items in FIFO order.
func (s *CrawlState) Queue() []QueueItem {
	out := make([]QueueItem, len(s.queue))
	copy(out, s.queue)
	return out
}

// AddDiscovered records a target URL. It returns true if the URL was new.
func (s *CrawlState) AddDiscovered(url string) bool {
	if _, ok := s.discovered[url]; ok {
		return false
	}
	s.discovered[url] = struct{}{}
	return true
}

// DiscoveredCount returns the number of discovered target URLs.
func (s *CrawlState) DiscoveredCount() int {
	return len(s.discovered)
}

// DiscoveredURLs returns the discovered target URLs sorted ascending.
func (s *CrawlState) DiscoveredURLs() []string {
	return sortedKeys(s.discovered)
}

// VisitedURLs returns the visited URLs sorted ascending.
func (s *CrawlState) VisitedURLs() []string {
	return sortedKeys(s.visited)
}

// Snapshot converts the state into its serializable form and stamps UpdatedAt.
func (s *CrawlState) Snapshot(now time.Time) *Checkpoint {
	s.UpdatedAt = now
	return &Checkpoint{
		Visited:    s.VisitedURLs(),
		Queue:      s.Queue(),
		Discovered: s.DiscoveredURLs(),
		UpdatedAt:  now,
	}
}

// Restore rebuilds a CrawlState from a checkpoint.
// Nil slices in the checkpoint are treated as empty.
func (c *Checkpoint) Restore() *CrawlState {
	s := NewCrawlState()
	for _, u := range c.Visited {
		s.MarkVisited(u)
	}
	for _, item := range c.Queue {
		s.Enqueue(item)
	}
	for _, u := range c.Discovered {
		s.AddDiscovered(u)
	}
	s.UpdatedAt = c.UpdatedAt
	return s
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
