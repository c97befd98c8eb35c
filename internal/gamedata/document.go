// Package gamedata loads the tunable tables (hero, enemies, abilities,
// difficulty and projectile settings) from YAML.
package gamedata

// Document is the root of a game data file
type Document struct {
	Hero        HeroData             `yaml:"hero"`
	Experience  ExperienceData       `yaml:"experience"`
	Enemies     map[string]EnemyData `yaml:"enemies"`
	Abilities   []AbilityData        `yaml:"abilities"`
	Difficulty  DifficultyData       `yaml:"difficulty"`
	Projectiles ProjectileData       `yaml:"projectiles"`
	Orbit       OrbitData            `yaml:"orbit"`
}

// HeroData holds the hero's base stats keyed by stat name, plus combat
// tuning that is not a stat.
type HeroData struct {
	Stats       map[string]float64 `yaml:"stats"`
	PotionHeal  float64            `yaml:"potion_heal"`
	PotionEvery int                `yaml:"potion_every_kills"`
}

type ExperienceData struct {
	XPPerLevel float64 `yaml:"xp_per_level"`
}

type EnemyData struct {
	Health        float64 `yaml:"health"`
	Damage        float64 `yaml:"damage"`
	MovementSpeed float64 `yaml:"movement_speed"`
	XPReward      float64 `yaml:"xp_reward"`
	Radius        float64 `yaml:"radius"`
}

// AbilityData is one ability row. Modifier and SideEffect are exclusive.
type AbilityData struct {
	Kind        string        `yaml:"kind"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Stackable   bool          `yaml:"stackable"`
	MaxStacks   int           `yaml:"max_stacks"`
	Modifier    *ModifierData `yaml:"modifier,omitempty"`
	SideEffect  string        `yaml:"side_effect,omitempty"`
}

type ModifierData struct {
	Stat  string  `yaml:"stat"`
	Mode  string  `yaml:"mode"`
	Value float64 `yaml:"value"`
}

type DifficultyData struct {
	Stages                     []StageData `yaml:"stages"`
	BossRespawnCooldown        Duration    `yaml:"boss_respawn_cooldown"`
	SpawnInterval              Duration    `yaml:"spawn_interval"`
	SpawnIntervalReductionRate float64     `yaml:"spawn_interval_reduction_rate"`
	MinSpawnInterval           Duration    `yaml:"min_spawn_interval"`
	SpawnDistance              float64     `yaml:"spawn_distance"`
}

// StageData is one difficulty stage. A zero duration marks the open-ended
// final stage.
type StageData struct {
	Duration         Duration    `yaml:"duration"`
	HPGrowthRate     float64     `yaml:"hp_growth_rate"`
	DamageGrowthRate float64     `yaml:"damage_growth_rate"`
	Weights          WeightsData `yaml:"weights"`
}

type WeightsData struct {
	Boss           float64 `yaml:"boss"`
	Walker         float64 `yaml:"walker"`
	Skeleton       float64 `yaml:"skeleton"`
	SkeletonWalker float64 `yaml:"skeleton_walker"`
}

type ProjectileData struct {
	BounceRadius float64  `yaml:"bounce_radius"`
	Lifetime     Duration `yaml:"lifetime"`
	DestroyDelay Duration `yaml:"destroy_delay"`
}

type OrbitData struct {
	Radius           float64  `yaml:"radius"`
	DegreesPerSecond float64  `yaml:"degrees_per_second"`
	RespawnDelay     Duration `yaml:"respawn_delay"`
	HitRadius        float64  `yaml:"hit_radius"`
}
