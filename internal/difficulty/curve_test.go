package difficulty_test

import (
	"testing"
	"time"

	"github.com/KirkDiggler/horde-survivor/internal/difficulty"
	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoStage(t *testing.T) *difficulty.Curve {
	t.Helper()
	c, err := difficulty.NewCurve([]difficulty.Stage{
		{Duration: 60 * time.Second, HPGrowthRate: 0.01, Weights: difficulty.SpawnWeights{Walker: 1}},
		{Duration: 0, HPGrowthRate: 0.05, Weights: difficulty.SpawnWeights{Skeleton: 1}},
	})
	require.NoError(t, err)
	return c
}

func TestEvaluateMultiplier(t *testing.T) {
	c := twoStage(t)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    float64
	}{
		{"start", 0, 1.0},
		{"inside first stage", 30 * time.Second, 1.3},
		{"first stage boundary", 60 * time.Second, 1.6},
		{"inside infinite stage", 90 * time.Second, 3.1},
		{"negative clamps to start", -5 * time.Second, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, c.EvaluateHPMultiplier(tt.elapsed), 1e-9)
		})
	}
}

func TestEvaluateMultiplierAtZeroForAnyCurve(t *testing.T) {
	curves := [][]difficulty.Stage{
		difficulty.DefaultStages(),
		{{Duration: 0, HPGrowthRate: 3}},
		{{Duration: time.Second, HPGrowthRate: -1}, {Duration: time.Second, HPGrowthRate: 9}},
	}
	for _, stages := range curves {
		c, err := difficulty.NewCurve(stages)
		require.NoError(t, err)
		assert.Equal(t, 1.0, c.EvaluateHPMultiplier(0))
		assert.Equal(t, 1.0, c.EvaluateDamageMultiplier(0))
	}
}

func TestEvaluateMultiplierExtendsLastFiniteStage(t *testing.T) {
	c, err := difficulty.NewCurve([]difficulty.Stage{
		{Duration: 60 * time.Second, DamageGrowthRate: 0.01},
		{Duration: 60 * time.Second, DamageGrowthRate: 0.02},
	})
	require.NoError(t, err)

	// 1 + 0.6 + 1.2 + 0.02*30
	assert.InDelta(t, 3.4, c.EvaluateDamageMultiplier(150*time.Second), 1e-9)
}

func TestNegativeRateMayDropBelowOne(t *testing.T) {
	c, err := difficulty.NewCurve([]difficulty.Stage{{Duration: 0, HPGrowthRate: -0.01}})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, c.EvaluateHPMultiplier(50*time.Second), 1e-9)
}

func TestDefaultCurveMultipliers(t *testing.T) {
	c := difficulty.DefaultCurve()

	// 1 + 0.01*60 + 0.02*120 + 0.05*20
	assert.InDelta(t, 5.0, c.EvaluateHPMultiplier(200*time.Second), 1e-9)
	// 1 + 0.008*60 + 0.015*120 + 0.03*20
	assert.InDelta(t, 3.88, c.EvaluateDamageMultiplier(200*time.Second), 1e-9)
}

func TestEvaluateSpawnWeights(t *testing.T) {
	c := difficulty.DefaultCurve()
	stages := difficulty.DefaultStages()

	tests := []struct {
		name    string
		elapsed time.Duration
		stage   int
	}{
		{"start", 0, 0},
		{"end boundary is inclusive", 60 * time.Second, 0},
		{"just past boundary", 60*time.Second + time.Millisecond, 1},
		{"second boundary", 180 * time.Second, 1},
		{"infinite stage", time.Hour, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.stage, c.StageIndex(tt.elapsed))
			assert.Equal(t, stages[tt.stage].Weights, c.EvaluateSpawnWeights(tt.elapsed))
		})
	}
}

func TestSpawnWeightsFallBackToLastFiniteStage(t *testing.T) {
	c, err := difficulty.NewCurve([]difficulty.Stage{
		{Duration: time.Second, Weights: difficulty.SpawnWeights{Walker: 1}},
		{Duration: time.Second, Weights: difficulty.SpawnWeights{Boss: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, difficulty.SpawnWeights{Boss: 1}, c.EvaluateSpawnWeights(time.Minute))
	assert.Equal(t, 1, c.StageIndex(time.Minute))
}

func TestChancesAreClamped(t *testing.T) {
	c, err := difficulty.NewCurve([]difficulty.Stage{
		{Duration: 0, Weights: difficulty.SpawnWeights{Boss: 1.5, SkeletonWalker: -0.2}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, c.EvaluateBossChance(0))
	assert.Equal(t, 0.0, c.EvaluateSkeletonWalkerChance(0))
}

func TestNewCurveValidation(t *testing.T) {
	_, err := difficulty.NewCurve(nil)
	assert.True(t, gameerr.IsValidation(err))

	_, err = difficulty.NewCurve([]difficulty.Stage{{Duration: 0}, {Duration: time.Second}})
	assert.True(t, gameerr.IsValidation(err))
}

func TestCurveOwnsItsStages(t *testing.T) {
	stages := difficulty.DefaultStages()
	c, err := difficulty.NewCurve(stages)
	require.NoError(t, err)

	stages[0].HPGrowthRate = 100
	assert.InDelta(t, 1.3, c.EvaluateHPMultiplier(30*time.Second), 1e-9)
}

func TestSpawnWeightsLookup(t *testing.T) {
	w := difficulty.SpawnWeights{Boss: 0.1, Walker: 0.2, Skeleton: 0.3, SkeletonWalker: 0.4}

	assert.Equal(t, 0.1, w.Weight(difficulty.Boss))
	assert.Equal(t, 0.2, w.Weight(difficulty.Walker))
	assert.Equal(t, 0.3, w.Weight(difficulty.Skeleton))
	assert.Equal(t, 0.4, w.Weight(difficulty.SkeletonWalker))
	assert.Equal(t, 0.0, w.Weight("dragon"))
}

func TestPickMinion(t *testing.T) {
	w := difficulty.SpawnWeights{Walker: 0.5, Skeleton: 0.25, SkeletonWalker: 0.25}

	assert.Equal(t, difficulty.Walker, w.PickMinion(0))
	assert.Equal(t, difficulty.Walker, w.PickMinion(0.49))
	assert.Equal(t, difficulty.Skeleton, w.PickMinion(0.5))
	assert.Equal(t, difficulty.SkeletonWalker, w.PickMinion(0.8))
	assert.Equal(t, difficulty.SkeletonWalker, w.PickMinion(0.999999))

	assert.Equal(t, difficulty.Walker, difficulty.SpawnWeights{}.PickMinion(0.7))
	assert.Equal(t, difficulty.Skeleton, difficulty.SpawnWeights{Skeleton: 2}.PickMinion(0.1))
}
