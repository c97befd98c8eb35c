package runs

import (
	"context"
	"sync"

	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/KirkDiggler/horde-survivor/internal/simulation"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu      sync.RWMutex
	results map[string]*simulation.Result
	order   []string
}

// NewInMemoryRepository creates a new in-memory run repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		results: make(map[string]*simulation.Result),
	}
}

func (r *inMemoryRepository) Save(ctx context.Context, result *simulation.Result) error {
	if result == nil {
		return gameerr.InvalidArgument("result cannot be nil")
	}
	if result.RunID == "" {
		return gameerr.InvalidArgument("run ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.results[result.RunID]; exists {
		r.order = removeID(r.order, result.RunID)
	}
	resultCopy := *result
	r.results[result.RunID] = &resultCopy
	r.order = append(r.order, result.RunID)

	return nil
}

func (r *inMemoryRepository) Get(ctx context.Context, runID string) (*simulation.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result, exists := r.results[runID]
	if !exists {
		return nil, gameerr.NotFoundf("run not found: %s", runID).WithMeta("run_id", runID)
	}

	resultCopy := *result
	return &resultCopy, nil
}

func (r *inMemoryRepository) ListRecent(ctx context.Context, limit int) ([]*simulation.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.order) {
		limit = len(r.order)
	}

	out := make([]*simulation.Result, 0, limit)
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		resultCopy := *r.results[r.order[i]]
		out = append(out, &resultCopy)
	}
	return out, nil
}

func removeID(ids []string, id string) []string {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
