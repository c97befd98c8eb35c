package spawner

import (
	"time"

	"github.com/KirkDiggler/horde-survivor/internal/difficulty"
	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/KirkDiggler/horde-survivor/internal/events"
	"github.com/KirkDiggler/horde-survivor/internal/health"
	"github.com/KirkDiggler/horde-survivor/internal/stats"
	"github.com/KirkDiggler/horde-survivor/internal/uuid"
)

// FactoryConfig holds configuration for the enemy factory
type FactoryConfig struct {
	Curve   *difficulty.Curve
	Enemies map[difficulty.Archetype]EnemyConfig
	IDs     uuid.Generator
	Events  events.Emitter
}

// Factory builds enemies with difficulty-scaled stats
type Factory struct {
	curve   *difficulty.Curve
	enemies map[difficulty.Archetype]EnemyConfig
	ids     uuid.Generator
	emitter events.Emitter
}

func NewFactory(cfg *FactoryConfig) (*Factory, error) {
	if cfg == nil || cfg.Curve == nil {
		return nil, gameerr.UnresolvedDependency("difficulty curve")
	}

	f := &Factory{
		curve:   cfg.Curve,
		enemies: cfg.Enemies,
		ids:     cfg.IDs,
		emitter: cfg.Events,
	}
	if f.enemies == nil {
		f.enemies = DefaultEnemyConfigs()
	}
	if f.ids == nil {
		f.ids = uuid.NewGoogleUUIDGenerator()
	}
	return f, nil
}

// Create builds an enemy of archetype with health and damage scaled by the
// curve at elapsed. Movement speed is not scaled.
func (f *Factory) Create(archetype difficulty.Archetype, elapsed time.Duration) (*Enemy, error) {
	cfg, ok := f.enemies[archetype]
	if !ok {
		return nil, gameerr.NotFoundf("no enemy config for archetype %s", archetype).
			WithMeta("archetype", string(archetype))
	}

	scaledHealth := cfg.Health * f.curve.EvaluateHPMultiplier(elapsed)
	scaledDamage := cfg.Damage * f.curve.EvaluateDamageMultiplier(elapsed)

	id := f.ids.New()
	registry := stats.NewRegistry()
	for _, b := range enemyBases(scaledHealth, cfg.MovementSpeed, scaledDamage) {
		if err := registry.SetBase(b.kind, b.value); err != nil {
			return nil, gameerr.Wrapf(err, "failed to set %s on %s", b.kind, id)
		}
	}

	hp, err := health.New(&health.Config{EntityID: id, Registry: registry, Events: f.emitter})
	if err != nil {
		return nil, gameerr.Wrapf(err, "failed to create health for %s", id)
	}
	hp.Setup(scaledHealth, scaledHealth)

	return &Enemy{
		id:        id,
		archetype: archetype,
		registry:  registry,
		health:    hp,
		xpReward:  cfg.XPReward,
		radius:    cfg.Radius,
	}, nil
}

type statBase struct {
	kind  stats.StatKind
	value float64
}

// enemyBases lists the stats a spawned enemy starts with, in the order they
// are set.
func enemyBases(maxHealth, movementSpeed, damage float64) []statBase {
	return []statBase{
		{kind: stats.StatMaxHealth, value: maxHealth},
		{kind: stats.StatMovementSpeed, value: movementSpeed},
		{kind: stats.StatDamage, value: damage},
	}
}
