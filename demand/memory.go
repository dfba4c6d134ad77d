package demand

import (
	"context"
	"sync"
)

// MemoryReader serves demand sources from memory. It backs tests and
// single-node development deployments.
type MemoryReader struct {
	mu      sync.RWMutex
	sources []Source
}

func NewMemoryReader(sources []Source) *MemoryReader {
	return &MemoryReader{sources: sources}
}

// SetSources replaces the snapshot served to subsequent auctions.
func (r *MemoryReader) SetSources(sources []Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = sources
}

func (r *MemoryReader) ListActiveSources(ctx context.Context) ([]Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Source, 0, len(r.sources))
	for _, s := range r.sources {
		if s.Status == StatusActive && s.DailyBudget > 0 && s.MaxBid > 0 {
			out = append(out, s)
		}
	}
	return out, nil
}
