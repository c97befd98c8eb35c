// Package spawner creates enemies around the hero on a shrinking interval,
// using the difficulty curve for stats and archetype weights.
package spawner

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/KirkDiggler/horde-survivor/internal/difficulty"
	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/KirkDiggler/horde-survivor/internal/events"
	"github.com/KirkDiggler/horde-survivor/internal/geom"
	"github.com/KirkDiggler/horde-survivor/internal/rng"
	"github.com/KirkDiggler/horde-survivor/internal/schedule"
	"github.com/KirkDiggler/horde-survivor/internal/stats"
)

//go:generate mockgen -destination=mock/mock_world.go -package=mockspawner github.com/KirkDiggler/horde-survivor/internal/spawner World

// World is the part of the simulation the spawner writes into
type World interface {
	AddEnemy(enemy *Enemy)
	HeroPosition() geom.Vec2
}

// DefaultSpawnDistance is how far from the hero enemies appear
const DefaultSpawnDistance = 12.0

// initialTimerFraction makes the first roll come early
const initialTimerFraction = 0.9

// Config holds configuration for the spawner
type Config struct {
	Settings      difficulty.Settings
	Factory       *Factory
	World         World
	Scheduler     *schedule.Scheduler
	Roller        rng.Roller
	Events        events.Emitter
	SpawnDistance float64
}

// Spawner rolls one enemy per interval
type Spawner struct {
	settings  difficulty.Settings
	curve     *difficulty.Curve
	factory   *Factory
	world     World
	scheduler *schedule.Scheduler
	roller    rng.Roller
	emitter   events.Emitter
	distance  float64

	interval     time.Duration
	timer        time.Duration
	bossCooldown *schedule.Timer
	spawned      map[difficulty.Archetype]int
}

func NewSpawner(cfg *Config) (*Spawner, error) {
	if cfg == nil {
		return nil, gameerr.UnresolvedDependency("spawner config")
	}
	switch {
	case cfg.Factory == nil:
		return nil, gameerr.UnresolvedDependency("enemy factory")
	case cfg.World == nil:
		return nil, gameerr.UnresolvedDependency("world")
	case cfg.Scheduler == nil:
		return nil, gameerr.UnresolvedDependency("scheduler")
	case cfg.Roller == nil:
		return nil, gameerr.UnresolvedDependency("roller")
	}
	if err := cfg.Settings.Validate(); err != nil {
		return nil, gameerr.Wrap(err, "invalid spawn settings")
	}

	curve, err := difficulty.NewCurve(cfg.Settings.Stages)
	if err != nil {
		return nil, err
	}

	distance := cfg.SpawnDistance
	if distance <= 0 {
		distance = DefaultSpawnDistance
	}

	interval := cfg.Settings.SpawnInterval
	return &Spawner{
		settings:  cfg.Settings,
		curve:     curve,
		factory:   cfg.Factory,
		world:     cfg.World,
		scheduler: cfg.Scheduler,
		roller:    cfg.Roller,
		emitter:   cfg.Events,
		distance:  distance,
		interval:  interval,
		timer:     time.Duration(math.Round(float64(interval) * initialTimerFraction)),
		spawned:   make(map[difficulty.Archetype]int),
	}, nil
}

// Interval is the current time between spawn rolls
func (s *Spawner) Interval() time.Duration {
	return s.interval
}

// BossOnCooldown reports whether a boss spawned within the respawn cooldown
func (s *Spawner) BossOnCooldown() bool {
	return s.bossCooldown != nil && s.bossCooldown.Active()
}

// Spawned returns how many enemies of each archetype were created
func (s *Spawner) Spawned() map[difficulty.Archetype]int {
	out := make(map[difficulty.Archetype]int, len(s.spawned))
	for k, v := range s.spawned {
		out[k] = v
	}
	return out
}

// Tick advances the spawn timer by dt and spawns at most one enemy per
// elapsed interval. elapsed is the run time used for curve lookups.
func (s *Spawner) Tick(ctx context.Context, elapsed, dt time.Duration) ([]*Enemy, error) {
	if dt <= 0 {
		return nil, nil
	}

	var out []*Enemy
	s.timer += dt
	for s.timer >= s.interval {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		s.timer -= s.interval

		enemy, err := s.spawnOne(elapsed)
		if err != nil {
			return out, err
		}
		out = append(out, enemy)
		s.interval = s.settings.NextInterval(s.interval)
	}
	return out, nil
}

// Choose picks the archetype for one spawn roll. It consumes one roll for
// the boss gate and, when no boss is chosen, one for the minion pick.
func (s *Spawner) Choose(elapsed time.Duration) difficulty.Archetype {
	bossRoll := s.roller.Float64()
	if !s.BossOnCooldown() && bossRoll < s.curve.EvaluateBossChance(elapsed) {
		return difficulty.Boss
	}
	return s.curve.EvaluateSpawnWeights(elapsed).PickMinion(s.roller.Float64())
}

func (s *Spawner) spawnOne(elapsed time.Duration) (*Enemy, error) {
	archetype := s.Choose(elapsed)
	if archetype == difficulty.Boss {
		s.bossCooldown = s.scheduler.After(s.settings.BossRespawnCooldown, func() {})
	}

	enemy, err := s.factory.Create(archetype, elapsed)
	if err != nil {
		return nil, gameerr.Wrapf(err, "failed to spawn %s", archetype)
	}

	angle := s.roller.Float64() * 360
	enemy.Place(s.world.HeroPosition().Add(geom.Polar(angle, s.distance)))
	s.world.AddEnemy(enemy)
	s.spawned[archetype]++

	if s.emitter != nil {
		event := events.NewGameEvent(events.EnemySpawned).
			WithEntity(enemy.ID()).
			WithContext(events.ContextArchetype, string(archetype)).
			WithContext(events.ContextHealth, enemy.Health().Current()).
			WithContext(events.ContextDamage, roundTo(enemy.Stats().MustGetFinal(stats.StatDamage), 2)).
			WithContext(events.ContextElapsed, elapsed.Seconds())
		if err := s.emitter.Emit(event); err != nil {
			log.Printf("Spawner: failed to emit spawn of %s: %v", enemy.ID(), err)
		}
	}
	return enemy, nil
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
