package runs

//go:generate mockgen -destination=mock/mock_repository.go -package=mockruns -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/horde-survivor/internal/simulation"
)

// Repository stores finished run results
type Repository interface {
	// Save stores a result, replacing any result with the same run ID
	Save(ctx context.Context, result *simulation.Result) error

	// Get retrieves a result by run ID
	Get(ctx context.Context, runID string) (*simulation.Result, error)

	// ListRecent returns up to limit results, most recently saved first
	ListRecent(ctx context.Context, limit int) ([]*simulation.Result, error)
}
