package difficulty

import (
	"time"

	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
)

// Curve evaluates difficulty as a function of elapsed run time. It is
// immutable after construction and safe for concurrent use.
type Curve struct {
	stages []Stage
}

// NewCurve validates stages. At least one stage is required and only the
// last one may be infinite. A curve whose last stage is finite keeps using
// the last stage's rates and weights once every stage has elapsed.
func NewCurve(stages []Stage) (*Curve, error) {
	if len(stages) == 0 {
		return nil, gameerr.Validation("difficulty curve needs at least one stage")
	}
	for i, s := range stages[:len(stages)-1] {
		if s.Infinite() {
			return nil, gameerr.Validationf("stage %d is infinite but is not the last stage", i).
				WithMeta("stage", i)
		}
	}

	owned := make([]Stage, len(stages))
	copy(owned, stages)
	return &Curve{stages: owned}, nil
}

// DefaultCurve builds a curve from DefaultStages
func DefaultCurve() *Curve {
	c, err := NewCurve(DefaultStages())
	if err != nil {
		panic(err)
	}
	return c
}

// Stages returns a copy of the stage list
func (c *Curve) Stages() []Stage {
	out := make([]Stage, len(c.stages))
	copy(out, c.stages)
	return out
}

func seconds(d time.Duration) float64 {
	return d.Seconds()
}

func clampElapsed(elapsed time.Duration) time.Duration {
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// EvaluateMultiplier returns 1 plus the rate selected by sel integrated
// over elapsed, stage by stage. Time past the last finite stage accrues at
// the last stage's rate.
func (c *Curve) EvaluateMultiplier(elapsed time.Duration, sel RateSelector) float64 {
	multiplier := 1.0
	remaining := clampElapsed(elapsed)

	for _, stage := range c.stages {
		rate := sel(stage)
		if stage.Infinite() {
			return multiplier + rate*seconds(remaining)
		}
		if remaining > stage.Duration {
			multiplier += rate * seconds(stage.Duration)
			remaining -= stage.Duration
			continue
		}
		return multiplier + rate*seconds(remaining)
	}

	last := c.stages[len(c.stages)-1]
	return multiplier + sel(last)*seconds(remaining)
}

// EvaluateHPMultiplier is EvaluateMultiplier with HPRate
func (c *Curve) EvaluateHPMultiplier(elapsed time.Duration) float64 {
	return c.EvaluateMultiplier(elapsed, HPRate)
}

// EvaluateDamageMultiplier is EvaluateMultiplier with DamageRate
func (c *Curve) EvaluateDamageMultiplier(elapsed time.Duration) float64 {
	return c.EvaluateMultiplier(elapsed, DamageRate)
}

// StageIndex returns the index of the stage whose window contains elapsed.
// A stage's window includes its end boundary.
func (c *Curve) StageIndex(elapsed time.Duration) int {
	remaining := clampElapsed(elapsed)

	for i, stage := range c.stages {
		if stage.Infinite() || remaining <= stage.Duration {
			return i
		}
		remaining -= stage.Duration
	}
	return len(c.stages) - 1
}

// StageAt returns the stage whose window contains elapsed
func (c *Curve) StageAt(elapsed time.Duration) Stage {
	return c.stages[c.StageIndex(elapsed)]
}

// EvaluateSpawnWeights returns the weights of the stage containing elapsed
func (c *Curve) EvaluateSpawnWeights(elapsed time.Duration) SpawnWeights {
	return c.StageAt(elapsed).Weights
}

// EvaluateBossChance is the current stage's boss weight clamped to [0,1]
func (c *Curve) EvaluateBossChance(elapsed time.Duration) float64 {
	return clamp01(c.EvaluateSpawnWeights(elapsed).Boss)
}

// EvaluateSkeletonWalkerChance is the current stage's skeleton walker
// weight clamped to [0,1]
func (c *Curve) EvaluateSkeletonWalkerChance(elapsed time.Duration) float64 {
	return clamp01(c.EvaluateSpawnWeights(elapsed).SkeletonWalker)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
