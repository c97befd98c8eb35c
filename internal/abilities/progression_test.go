package abilities_test

import (
	"testing"

	"github.com/KirkDiggler/horde-survivor/internal/abilities"
	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	mockrng "github.com/KirkDiggler/horde-survivor/internal/rng/mock"
	"github.com/KirkDiggler/horde-survivor/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGet(t *testing.T, kind abilities.Kind) abilities.Definition {
	t.Helper()
	def, ok := abilities.DefaultDatabase().Get(kind)
	require.True(t, ok, "missing %s", kind)
	return def
}

func TestCanApply(t *testing.T) {
	stackable := abilities.Definition{Kind: "a", Stackable: true, MaxStacks: 2}
	single := abilities.Definition{Kind: "b", Stackable: false, MaxStacks: 3}

	t.Run("fresh progress allows both", func(t *testing.T) {
		p := abilities.NewProgress()
		assert.True(t, abilities.CanApply(stackable, p))
		assert.True(t, abilities.CanApply(single, p))
	})

	t.Run("non stackable stops at one even with higher max", func(t *testing.T) {
		p := abilities.NewProgress()
		reg := stats.NewRegistry()
		res, err := abilities.Apply(single, reg, p)
		require.NoError(t, err)
		assert.True(t, res.Applied)

		assert.False(t, abilities.CanApply(single, p))
		res, err = abilities.Apply(single, reg, p)
		require.NoError(t, err)
		assert.False(t, res.Applied)
		assert.Equal(t, 1, p.StackCount("b"))
	})

	t.Run("nil progress cannot apply", func(t *testing.T) {
		assert.False(t, abilities.CanApply(stackable, nil))
	})
}

func TestApplyNeverExceedsMaxStacks(t *testing.T) {
	def := mustGet(t, abilities.DamageUp)
	p := abilities.NewProgress()
	reg := stats.NewRegistry()

	applied := 0
	for i := 0; i < def.MaxStacks+3; i++ {
		res, err := abilities.Apply(def, reg, p)
		require.NoError(t, err)
		if res.Applied {
			applied++
		}
		assert.LessOrEqual(t, p.StackCount(def.Kind), def.MaxStacks)
	}

	assert.Equal(t, def.MaxStacks, applied)
	assert.True(t, p.HasAbility(def.Kind))
}

func TestApplyStacksModifierNumerically(t *testing.T) {
	def := mustGet(t, abilities.HealthUp)
	p := abilities.NewProgress()
	reg := stats.NewRegistry()
	require.NoError(t, reg.SetBase(stats.StatMaxHealth, 100))

	for want := 1; want <= 3; want++ {
		res, err := abilities.Apply(def, reg, p)
		require.NoError(t, err)
		require.NotNil(t, res.Modifier)
		assert.Equal(t, want, res.Stacks)
		assert.InDelta(t, 100+25*float64(want), reg.MustGetFinal(stats.StatMaxHealth), 1e-9)
	}

	// one live instance for the ability, not one per stack
	assert.Len(t, reg.Modifiers(), 1)
}

func TestApplySameShapeAbilitiesStayIndependent(t *testing.T) {
	a := abilities.Definition{Kind: "a", Stackable: true, MaxStacks: 3,
		Effect: abilities.Effect{Modifier: ptr(stats.Add(stats.StatDamage, 10))}}
	b := abilities.Definition{Kind: "b", Stackable: true, MaxStacks: 3,
		Effect: abilities.Effect{Modifier: ptr(stats.Add(stats.StatDamage, 10))}}
	p := abilities.NewProgress()
	reg := stats.NewRegistry()
	require.NoError(t, reg.AddModifier(stats.Add(stats.StatDamage, 20)))

	_, err := abilities.Apply(a, reg, p)
	require.NoError(t, err)
	_, err = abilities.Apply(b, reg, p)
	require.NoError(t, err)
	assert.InDelta(t, 40, reg.MustGetFinal(stats.StatDamage), 1e-9)

	// a's second stack replaces a's 10 with 20; b's 10 and the outside
	// +20 are untouched even though a's old value matched b's
	res, err := abilities.Apply(a, reg, p)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stacks)
	assert.Equal(t, abilities.ModifierSource("a"), res.Modifier.Source)
	assert.InDelta(t, 50, reg.MustGetFinal(stats.StatDamage), 1e-9)
	assert.Equal(t, 2, p.StackCount("a"))
	assert.Equal(t, 1, p.StackCount("b"))
	assert.Len(t, reg.Modifiers(), 3)
}

func ptr(m stats.Modifier) *stats.Modifier {
	return &m
}

func TestApplyMultiplyCompounds(t *testing.T) {
	mod := stats.Multiply(stats.StatMovementSpeed, 1.1)
	def := abilities.Definition{Kind: "haste", Stackable: true, MaxStacks: 3, Effect: abilities.Effect{Modifier: &mod}}
	p := abilities.NewProgress()
	reg := stats.NewRegistry()
	require.NoError(t, reg.SetBase(stats.StatMovementSpeed, 10))

	for i := 0; i < 2; i++ {
		_, err := abilities.Apply(def, reg, p)
		require.NoError(t, err)
	}

	assert.InDelta(t, 10*1.1*1.1, reg.MustGetFinal(stats.StatMovementSpeed), 1e-9)
}

func TestApplySideEffect(t *testing.T) {
	def := mustGet(t, abilities.OrbitingProjectiles)
	p := abilities.NewProgress()
	reg := stats.NewRegistry()

	res, err := abilities.Apply(def, reg, p)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, abilities.SideEffectGrantOrbitingSystem, res.SideEffect)
	assert.Nil(t, res.Modifier)
	assert.Empty(t, reg.Modifiers())

	res, err = abilities.Apply(def, reg, p)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, abilities.SideEffectNone, res.SideEffect)
}

func TestApplyMissingCollaborators(t *testing.T) {
	def := mustGet(t, abilities.PiercingProjectiles)

	_, err := abilities.Apply(def, nil, abilities.NewProgress())
	assert.True(t, gameerr.IsUnresolvedDependency(err))

	_, err = abilities.Apply(def, stats.NewRegistry(), nil)
	assert.True(t, gameerr.IsUnresolvedDependency(err))
}

func TestDefinitionValidation(t *testing.T) {
	bad := stats.Add(stats.StatUnknown, 1)
	tests := []struct {
		name string
		def  abilities.Definition
	}{
		{"missing kind", abilities.Definition{MaxStacks: 1}},
		{"zero max stacks", abilities.Definition{Kind: "x"}},
		{"both effects", abilities.Definition{Kind: "x", MaxStacks: 1, Effect: abilities.Effect{
			Modifier: &bad, SideEffect: abilities.SideEffectGrantOrbitingSystem,
		}}},
		{"sentinel stat", abilities.Definition{Kind: "x", MaxStacks: 1, Effect: abilities.Effect{Modifier: &bad}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, gameerr.IsValidation(tt.def.Validate()))
		})
	}
}

func TestNewDatabaseRejectsDuplicates(t *testing.T) {
	d := abilities.Definition{Kind: "x", MaxStacks: 1}
	_, err := abilities.NewDatabase(d, d)
	assert.True(t, gameerr.IsAlreadyExists(err))
}

func TestDefaultDatabaseOrder(t *testing.T) {
	db := abilities.DefaultDatabase()
	kinds := make([]abilities.Kind, 0, db.Len())
	for _, d := range db.All() {
		kinds = append(kinds, d.Kind)
	}
	assert.Equal(t, []abilities.Kind{
		abilities.HealthUp,
		abilities.DamageUp,
		abilities.AgilityUp,
		abilities.PiercingProjectiles,
		abilities.BouncingProjectiles,
		abilities.HealthPotionsBoost,
		abilities.OrbitingProjectiles,
	}, kinds)
}

func TestOffer(t *testing.T) {
	db := abilities.DefaultDatabase()

	t.Run("picks distinct eligible abilities", func(t *testing.T) {
		roller := mockrng.NewManualRoller()
		roller.SetInts(0, 5, 4, 3, 2, 1)

		offer, ok := abilities.Offer(db, abilities.NewProgress(), 3, roller)
		require.True(t, ok)
		require.Len(t, offer, 3)
		assert.Equal(t, abilities.OrbitingProjectiles, offer[0].Kind)
		assert.Equal(t, abilities.DamageUp, offer[1].Kind)
		assert.Equal(t, abilities.AgilityUp, offer[2].Kind)
	})

	t.Run("skips maxed abilities", func(t *testing.T) {
		only, err := abilities.NewDatabase(abilities.Definition{Kind: "solo", MaxStacks: 1})
		require.NoError(t, err)
		p := abilities.NewProgress()
		def, _ := only.Get("solo")
		_, err = abilities.Apply(def, stats.NewRegistry(), p)
		require.NoError(t, err)

		offer, ok := abilities.Offer(only, p, 3, mockrng.NewManualRoller())
		assert.False(t, ok)
		assert.Empty(t, offer)
	})

	t.Run("count larger than pool", func(t *testing.T) {
		two, err := abilities.NewDatabase(
			abilities.Definition{Kind: "a", MaxStacks: 1},
			abilities.Definition{Kind: "b", MaxStacks: 1},
		)
		require.NoError(t, err)
		roller := mockrng.NewManualRoller()
		roller.SetInts(1)

		offer, ok := abilities.Offer(two, abilities.NewProgress(), 5, roller)
		require.True(t, ok)
		assert.Len(t, offer, 2)
	})
}
