package gamedata

import (
	"github.com/KirkDiggler/horde-survivor/internal/abilities"
	"github.com/KirkDiggler/horde-survivor/internal/difficulty"
	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/KirkDiggler/horde-survivor/internal/orbit"
	"github.com/KirkDiggler/horde-survivor/internal/projectiles"
	"github.com/KirkDiggler/horde-survivor/internal/spawner"
	"github.com/KirkDiggler/horde-survivor/internal/stats"
)

var archetypes = []difficulty.Archetype{
	difficulty.Walker,
	difficulty.Skeleton,
	difficulty.SkeletonWalker,
	difficulty.Boss,
}

// HeroStats parses the hero's base stat table
func (d *Document) HeroStats() (map[stats.StatKind]float64, error) {
	out := make(map[stats.StatKind]float64, len(d.Hero.Stats))
	for name, value := range d.Hero.Stats {
		kind, err := stats.ParseStatKind(name)
		if err != nil {
			return nil, gameerr.WrapWithCode(err, gameerr.CodeValidation, "hero stats")
		}
		out[kind] = value
	}
	if out[stats.StatMaxHealth] <= 0 {
		return nil, gameerr.Validation("hero max_health must be positive")
	}
	if out[stats.StatShootCooldown] <= 0 {
		return nil, gameerr.Validation("hero shoot_cooldown must be positive")
	}
	return out, nil
}

// EnemyConfigs returns one config per archetype. Every archetype the
// spawner can roll must be present.
func (d *Document) EnemyConfigs() (map[difficulty.Archetype]spawner.EnemyConfig, error) {
	out := make(map[difficulty.Archetype]spawner.EnemyConfig, len(archetypes))
	for name := range d.Enemies {
		if !knownArchetype(name) {
			return nil, gameerr.Validationf("unknown enemy archetype %q", name).WithMeta("archetype", name)
		}
	}

	for _, a := range archetypes {
		row, ok := d.Enemies[string(a)]
		if !ok {
			return nil, gameerr.Validationf("enemy archetype %s is missing", a).WithMeta("archetype", string(a))
		}
		if row.Health <= 0 {
			return nil, gameerr.Validationf("enemy %s: health must be positive", a).WithMeta("archetype", string(a))
		}
		if row.Damage < 0 || row.MovementSpeed < 0 || row.XPReward < 0 {
			return nil, gameerr.Validationf("enemy %s: damage, speed and xp cannot be negative", a).
				WithMeta("archetype", string(a))
		}
		out[a] = spawner.EnemyConfig{
			Health:        row.Health,
			Damage:        row.Damage,
			MovementSpeed: row.MovementSpeed,
			XPReward:      row.XPReward,
			Radius:        row.Radius,
		}
	}
	return out, nil
}

func knownArchetype(name string) bool {
	for _, a := range archetypes {
		if string(a) == name {
			return true
		}
	}
	return false
}

// AbilityDatabase builds the ability table in file order
func (d *Document) AbilityDatabase() (*abilities.Database, error) {
	defs := make([]abilities.Definition, 0, len(d.Abilities))
	for i, row := range d.Abilities {
		def := abilities.Definition{
			Kind:        abilities.Kind(row.Kind),
			Name:        row.Name,
			Description: row.Description,
			Stackable:   row.Stackable,
			MaxStacks:   row.MaxStacks,
			Effect:      abilities.Effect{SideEffect: abilities.SideEffect(row.SideEffect)},
		}

		switch def.Effect.SideEffect {
		case abilities.SideEffectNone, abilities.SideEffectGrantOrbitingSystem:
		default:
			return nil, gameerr.Validationf("ability %d (%s): unknown side effect %q", i, row.Kind, row.SideEffect)
		}

		if row.Modifier != nil {
			kind, err := stats.ParseStatKind(row.Modifier.Stat)
			if err != nil {
				return nil, gameerr.WrapWithCode(err, gameerr.CodeValidation, "ability "+row.Kind)
			}
			mode, err := stats.ParseModifierMode(row.Modifier.Mode)
			if err != nil {
				return nil, gameerr.WrapWithCode(err, gameerr.CodeValidation, "ability "+row.Kind)
			}
			m := stats.NewModifier(kind, row.Modifier.Value, mode)
			def.Effect.Modifier = &m
		}
		defs = append(defs, def)
	}

	if len(defs) == 0 {
		return nil, gameerr.Validation("at least one ability is required")
	}
	return abilities.NewDatabase(defs...)
}

// DifficultySettings returns validated spawn pacing and stages
func (d *Document) DifficultySettings() (difficulty.Settings, error) {
	src := d.Difficulty
	settings := difficulty.Settings{
		BossRespawnCooldown:        src.BossRespawnCooldown.Std(),
		SpawnInterval:              src.SpawnInterval.Std(),
		SpawnIntervalReductionRate: src.SpawnIntervalReductionRate,
		MinSpawnInterval:           src.MinSpawnInterval.Std(),
	}
	for _, stage := range src.Stages {
		settings.Stages = append(settings.Stages, difficulty.Stage{
			Duration:         stage.Duration.Std(),
			HPGrowthRate:     stage.HPGrowthRate,
			DamageGrowthRate: stage.DamageGrowthRate,
			Weights: difficulty.SpawnWeights{
				Boss:           stage.Weights.Boss,
				Walker:         stage.Weights.Walker,
				Skeleton:       stage.Weights.Skeleton,
				SkeletonWalker: stage.Weights.SkeletonWalker,
			},
		})
	}

	if err := settings.Validate(); err != nil {
		return difficulty.Settings{}, gameerr.WrapWithCode(err, gameerr.CodeValidation, "difficulty")
	}
	return settings, nil
}

// ProjectileTuning returns the projectile constants
func (d *Document) ProjectileTuning() (projectiles.Tuning, error) {
	t := projectiles.Tuning{
		BounceRadius: d.Projectiles.BounceRadius,
		Lifetime:     d.Projectiles.Lifetime.Std(),
		DestroyDelay: d.Projectiles.DestroyDelay.Std(),
	}
	if t.BounceRadius < 0 || t.Lifetime <= 0 || t.DestroyDelay < 0 {
		return projectiles.Tuning{}, gameerr.Validation("projectiles: lifetime must be positive and radius and delay non-negative")
	}
	return t, nil
}

// OrbitSettings returns the orbit tuning
func (d *Document) OrbitSettings() (orbit.Settings, error) {
	s := orbit.Settings{
		Radius:           d.Orbit.Radius,
		DegreesPerSecond: d.Orbit.DegreesPerSecond,
		RespawnDelay:     d.Orbit.RespawnDelay.Std(),
		HitRadius:        d.Orbit.HitRadius,
	}
	if s.Radius <= 0 || s.HitRadius <= 0 || s.RespawnDelay < 0 {
		return orbit.Settings{}, gameerr.Validation("orbit: radius and hit radius must be positive")
	}
	return s, nil
}

// Validate converts every table and reports the first problem
func (d *Document) Validate() error {
	if _, err := d.HeroStats(); err != nil {
		return err
	}
	if d.Hero.PotionHeal < 0 || d.Hero.PotionEvery < 0 {
		return gameerr.Validation("hero potion settings cannot be negative")
	}
	if d.Experience.XPPerLevel <= 0 {
		return gameerr.Validation("experience xp_per_level must be positive")
	}
	if d.Difficulty.SpawnDistance <= 0 {
		return gameerr.Validation("difficulty spawn_distance must be positive")
	}
	if _, err := d.EnemyConfigs(); err != nil {
		return err
	}
	if _, err := d.AbilityDatabase(); err != nil {
		return err
	}
	if _, err := d.DifficultySettings(); err != nil {
		return err
	}
	if _, err := d.ProjectileTuning(); err != nil {
		return err
	}
	if _, err := d.OrbitSettings(); err != nil {
		return err
	}
	return nil
}
