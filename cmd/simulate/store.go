package main

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/horde-survivor/internal/repositories/runs"
	"github.com/KirkDiggler/horde-survivor/internal/simulation"
)

// saveResults stores every finished run and stops at the first failure
func saveResults(ctx context.Context, repo runs.Repository, results []*simulation.Result) (int, error) {
	saved := 0
	for _, result := range results {
		if result == nil {
			continue
		}
		if err := repo.Save(ctx, result); err != nil {
			return saved, fmt.Errorf("failed to save run %s: %w", result.RunID, err)
		}
		saved++
	}
	return saved, nil
}
