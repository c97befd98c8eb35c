package difficulty

import (
	"time"
)

// Archetype identifies an enemy type the spawner can create
type Archetype string

const (
	Walker         Archetype = "walker"
	Skeleton       Archetype = "skeleton"
	SkeletonWalker Archetype = "skeleton_walker"
	Boss           Archetype = "boss"
)

// SpawnWeights are the per-archetype chances for one stage, each in [0,1].
type SpawnWeights struct {
	Boss           float64
	Walker         float64
	Skeleton       float64
	SkeletonWalker float64
}

// Weight returns the weight for a given archetype
func (w SpawnWeights) Weight(a Archetype) float64 {
	switch a {
	case Boss:
		return w.Boss
	case Walker:
		return w.Walker
	case Skeleton:
		return w.Skeleton
	case SkeletonWalker:
		return w.SkeletonWalker
	}
	return 0
}

// Stage is one time window of the curve. A Duration of zero or less makes
// the stage infinite.
type Stage struct {
	Duration         time.Duration
	HPGrowthRate     float64
	DamageGrowthRate float64
	Weights          SpawnWeights
}

// Infinite reports whether the stage never ends
func (s Stage) Infinite() bool {
	return s.Duration <= 0
}

// RateSelector picks the growth rate a multiplier accrues from
type RateSelector func(Stage) float64

// HPRate selects the per-second HP growth rate
func HPRate(s Stage) float64 { return s.HPGrowthRate }

// DamageRate selects the per-second damage growth rate
func DamageRate(s Stage) float64 { return s.DamageGrowthRate }

// DefaultStages are the shipped difficulty stages
func DefaultStages() []Stage {
	return []Stage{
		{
			Duration:         60 * time.Second,
			HPGrowthRate:     0.01,
			DamageGrowthRate: 0.008,
			Weights:          SpawnWeights{Boss: 0.05, Walker: 0.8, Skeleton: 0.15, SkeletonWalker: 0.10},
		},
		{
			Duration:         120 * time.Second,
			HPGrowthRate:     0.02,
			DamageGrowthRate: 0.015,
			Weights:          SpawnWeights{Boss: 0.10, Walker: 0.6, Skeleton: 0.30, SkeletonWalker: 0.25},
		},
		{
			Duration:         0,
			HPGrowthRate:     0.05,
			DamageGrowthRate: 0.03,
			Weights:          SpawnWeights{Boss: 0.15, Walker: 0.4, Skeleton: 0.45, SkeletonWalker: 0.40},
		},
	}
}

// PickMinion chooses a non-boss archetype from the walker, skeleton and
// skeleton walker weights, treated as relative. roll is in [0,1). With all
// three weights at zero it falls back to Walker.
func (w SpawnWeights) PickMinion(roll float64) Archetype {
	options := [...]struct {
		archetype Archetype
		weight    float64
	}{
		{Walker, w.Walker},
		{Skeleton, w.Skeleton},
		{SkeletonWalker, w.SkeletonWalker},
	}

	total := 0.0
	for _, o := range options {
		if o.weight > 0 {
			total += o.weight
		}
	}
	if total <= 0 {
		return Walker
	}

	target := roll * total
	for _, o := range options {
		if o.weight <= 0 {
			continue
		}
		if target < o.weight {
			return o.archetype
		}
		target -= o.weight
	}
	return options[len(options)-1].archetype
}
