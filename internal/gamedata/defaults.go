package gamedata

import (
	"github.com/KirkDiggler/horde-survivor/internal/abilities"
	"github.com/KirkDiggler/horde-survivor/internal/difficulty"
	"github.com/KirkDiggler/horde-survivor/internal/experience"
	"github.com/KirkDiggler/horde-survivor/internal/orbit"
	"github.com/KirkDiggler/horde-survivor/internal/projectiles"
	"github.com/KirkDiggler/horde-survivor/internal/spawner"
	"github.com/KirkDiggler/horde-survivor/internal/stats"
)

// DefaultHeroStats are the hero's base stats before any ability
func DefaultHeroStats() map[stats.StatKind]float64 {
	return map[stats.StatKind]float64{
		stats.StatMaxHealth:       100,
		stats.StatMovementSpeed:   5,
		stats.StatDamage:          10,
		stats.StatVisionRange:     10,
		stats.StatRotationSpeed:   180,
		stats.StatProjectileSpeed: 15,
		stats.StatShootCooldown:   0.5,
	}
}

// Default returns the built-in game data
func Default() *Document {
	doc := &Document{
		Hero: HeroData{
			Stats:       make(map[string]float64),
			PotionHeal:  20,
			PotionEvery: 15,
		},
		Experience: ExperienceData{XPPerLevel: experience.DefaultXPPerLevel},
		Enemies:    make(map[string]EnemyData),
	}

	for kind, value := range DefaultHeroStats() {
		doc.Hero.Stats[kind.String()] = value
	}

	for archetype, cfg := range spawner.DefaultEnemyConfigs() {
		doc.Enemies[string(archetype)] = EnemyData{
			Health:        cfg.Health,
			Damage:        cfg.Damage,
			MovementSpeed: cfg.MovementSpeed,
			XPReward:      cfg.XPReward,
			Radius:        cfg.Radius,
		}
	}

	for _, def := range abilities.DefaultDefinitions() {
		doc.Abilities = append(doc.Abilities, abilityData(def))
	}

	settings := difficulty.DefaultSettings()
	doc.Difficulty = DifficultyData{
		BossRespawnCooldown:        Duration(settings.BossRespawnCooldown),
		SpawnInterval:              Duration(settings.SpawnInterval),
		SpawnIntervalReductionRate: settings.SpawnIntervalReductionRate,
		MinSpawnInterval:           Duration(settings.MinSpawnInterval),
		SpawnDistance:              spawner.DefaultSpawnDistance,
	}
	for _, stage := range settings.Stages {
		doc.Difficulty.Stages = append(doc.Difficulty.Stages, StageData{
			Duration:         Duration(stage.Duration),
			HPGrowthRate:     stage.HPGrowthRate,
			DamageGrowthRate: stage.DamageGrowthRate,
			Weights: WeightsData{
				Boss:           stage.Weights.Boss,
				Walker:         stage.Weights.Walker,
				Skeleton:       stage.Weights.Skeleton,
				SkeletonWalker: stage.Weights.SkeletonWalker,
			},
		})
	}

	tuning := projectiles.DefaultTuning()
	doc.Projectiles = ProjectileData{
		BounceRadius: tuning.BounceRadius,
		Lifetime:     Duration(tuning.Lifetime),
		DestroyDelay: Duration(tuning.DestroyDelay),
	}

	orb := orbit.DefaultSettings()
	doc.Orbit = OrbitData{
		Radius:           orb.Radius,
		DegreesPerSecond: orb.DegreesPerSecond,
		RespawnDelay:     Duration(orb.RespawnDelay),
		HitRadius:        orb.HitRadius,
	}

	return doc
}

func abilityData(def abilities.Definition) AbilityData {
	row := AbilityData{
		Kind:        string(def.Kind),
		Name:        def.Name,
		Description: def.Description,
		Stackable:   def.Stackable,
		MaxStacks:   def.MaxStacks,
		SideEffect:  string(def.Effect.SideEffect),
	}
	if m := def.Effect.Modifier; m != nil {
		row.Modifier = &ModifierData{Stat: m.Stat.String(), Mode: m.Mode.String(), Value: m.Value}
	}
	return row
}
