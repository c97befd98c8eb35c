package difficulty

import (
	"math"
	"time"

	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
)

// Settings is the spawn pacing that sits alongside the curve
type Settings struct {
	Stages []Stage

	// BossRespawnCooldown is the minimum gap between two bosses
	BossRespawnCooldown time.Duration

	// SpawnInterval is the initial time between spawn rolls
	SpawnInterval time.Duration

	// SpawnIntervalReductionRate multiplies the interval after every roll.
	// Zero or less disables the reduction.
	SpawnIntervalReductionRate float64

	// MinSpawnInterval floors the reduced interval
	MinSpawnInterval time.Duration
}

// DefaultSettings returns the shipped pacing
func DefaultSettings() Settings {
	return Settings{
		Stages:                     DefaultStages(),
		BossRespawnCooldown:        30 * time.Second,
		SpawnInterval:              3 * time.Second,
		SpawnIntervalReductionRate: 0.95,
		MinSpawnInterval:           500 * time.Millisecond,
	}
}

// Validate checks the pacing values and builds nothing
func (s Settings) Validate() error {
	if _, err := NewCurve(s.Stages); err != nil {
		return err
	}
	if s.SpawnInterval <= 0 {
		return gameerr.Validation("spawn interval must be positive")
	}
	if s.MinSpawnInterval <= 0 || s.MinSpawnInterval > s.SpawnInterval {
		return gameerr.Validationf("min spawn interval %s must be within (0, %s]", s.MinSpawnInterval, s.SpawnInterval)
	}
	if s.SpawnIntervalReductionRate > 1 {
		return gameerr.Validationf("spawn interval reduction rate %g would grow the interval", s.SpawnIntervalReductionRate)
	}
	if s.BossRespawnCooldown < 0 {
		return gameerr.Validation("boss respawn cooldown cannot be negative")
	}
	return nil
}

// NextInterval applies the reduction rate to current, floored at
// MinSpawnInterval. The result is never below one nanosecond, so a spawn
// loop draining its timer by the interval always terminates.
func (s Settings) NextInterval(current time.Duration) time.Duration {
	if s.SpawnIntervalReductionRate <= 0 {
		return max(current, time.Nanosecond)
	}
	next := time.Duration(math.Round(float64(current) * s.SpawnIntervalReductionRate))
	return max(next, s.MinSpawnInterval, time.Nanosecond)
}
