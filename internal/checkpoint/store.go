package checkpoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"

	"github.com/nao1215/cyriscan/internal/model"
)

const lockFileSuffix = ".lock"

// FileStore persists a model.CrawlState as JSON.
// It satisfies crawler.Checkpointer.
type FileStore struct {
	statePath   string
	resultsPath string
	lock        *flock.Flock
}

// NewFileStore creates a store writing the checkpoint to statePath and the
// discovered URL list to resultsPath. An empty resultsPath disables the
// results file.
func NewFileStore(statePath, resultsPath string) *FileStore {
	return &FileStore{
		statePath:   statePath,
		resultsPath: resultsPath,
		lock:        flock.New(statePath + lockFileSuffix),
	}
}

// StatePath returns the checkpoint path.
func (s *FileStore) StatePath() string {
	return s.statePath
}

// Lock takes the advisory lock for the lifetime of a crawl.
// It does not wait: a held lock means another crawl owns the state file.
func (s *FileStore) Lock() error {
	locked, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock %s: %w", s.lock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("%s: %w", s.statePath, ErrLocked)
	}
	return nil
}

// Unlock releases the lock taken by Lock.
func (s *FileStore) Unlock() error {
	if err := s.lock.Unlock(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("unlock %s: %w", s.lock.Path(), err)
	}
	return nil
}

// Load reads the checkpoint. It returns ErrNoCheckpoint when the file does
// not exist and wraps ErrCorruptCheckpoint when it cannot be decoded.
func (s *FileStore) Load(_ context.Context) (*model.CrawlState, error) {
	data, err := os.ReadFile(s.statePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoCheckpoint
		}
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}

	var cp model.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptCheckpoint, s.statePath, err)
	}
	return cp.Restore(), nil
}

// Save writes the checkpoint and, if configured, the results file.
// When Lock was not called, Save takes the lock for the duration of the write.
func (s *FileStore) Save(_ context.Context, state *model.CrawlState) error {
	if !s.lock.Locked() {
		if err := s.Lock(); err != nil {
			return err
		}
		defer func() { _ = s.Unlock() }()
	}

	now := state.UpdatedAt
	if now.IsZero() {
		now = time.Now()
	}
	data, err := json.MarshalIndent(state.Snapshot(now.UTC()), "", "  ")
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}
	if err := writeFileAtomic(s.statePath, data); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}

	if s.resultsPath == "" {
		return nil
	}
	if err := WriteResults(s.resultsPath, state.DiscoveredURLs()); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
