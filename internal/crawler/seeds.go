package crawler

import (
	"log/slog"

	"github.com/nao1215/cyriscan/internal/model"
)

// SeedState returns a fresh state with every valid seed enqueued at depth 0.
// Seeds that do not canonicalize are dropped.
func SeedState(seeds []string) *model.CrawlState {
	state := model.NewCrawlState()
	enqueueSeeds(state, seeds)
	return state
}

// PrepareState picks the state a crawl starts from.
// A loaded checkpoint wins over the seeds; the seeds are only enqueued when
// there is no checkpoint or the checkpoint's queue is empty.
func PrepareState(loaded *model.CrawlState, seeds []string) *model.CrawlState {
	if loaded == nil {
		return SeedState(seeds)
	}
	if loaded.QueueLen() == 0 {
		enqueueSeeds(loaded, seeds)
	}
	return loaded
}

func enqueueSeeds(state *model.CrawlState, seeds []string) {
	for _, seed := range seeds {
		canon, ok := Canonicalize(seed)
		if !ok {
			slog.Warn("ignoring invalid seed", "seed", seed)
			continue
		}
		state.Enqueue(model.QueueItem{URL: canon, Depth: 0})
	}
}
