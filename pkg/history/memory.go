package history

import (
	"context"
	"sync"
)

// defaultMemoryLimit bounds the in-memory backlog.
const defaultMemoryLimit = 100

// MemoryStore keeps recent runs in memory. It is the default backend when
// no database is configured; runs are lost on process exit.
type MemoryStore struct {
	mu   sync.RWMutex
	runs []Run
	max  int
}

// NewMemoryStore creates a memory store retaining at most max runs. A
// non-positive max selects the default limit.
func NewMemoryStore(max int) *MemoryStore {
	if max <= 0 {
		max = defaultMemoryLimit
	}
	return &MemoryStore{max: max}
}

func (s *MemoryStore) Save(_ context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	if len(s.runs) > s.max {
		s.runs = s.runs[len(s.runs)-s.max:]
	}
	return nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.runs)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Run, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.runs[i])
	}
	return out, nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }
