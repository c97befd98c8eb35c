// Package simulation plays a headless run: the hero shoots the nearest
// enemy, levels up from kills and takes the first offered ability.
package simulation

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/KirkDiggler/horde-survivor/internal/abilities"
	"github.com/KirkDiggler/horde-survivor/internal/difficulty"
	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/KirkDiggler/horde-survivor/internal/events"
	"github.com/KirkDiggler/horde-survivor/internal/experience"
	"github.com/KirkDiggler/horde-survivor/internal/gamedata"
	"github.com/KirkDiggler/horde-survivor/internal/geom"
	"github.com/KirkDiggler/horde-survivor/internal/health"
	"github.com/KirkDiggler/horde-survivor/internal/orbit"
	"github.com/KirkDiggler/horde-survivor/internal/projectiles"
	"github.com/KirkDiggler/horde-survivor/internal/publisher"
	"github.com/KirkDiggler/horde-survivor/internal/rng"
	"github.com/KirkDiggler/horde-survivor/internal/schedule"
	"github.com/KirkDiggler/horde-survivor/internal/spawner"
	"github.com/KirkDiggler/horde-survivor/internal/stats"
	"github.com/KirkDiggler/horde-survivor/internal/uuid"
)

// Reasons reported on RunEnded
const (
	ReasonCompleted = "completed"
	ReasonDied      = "died"
	ReasonCancelled = "cancelled"
)

const (
	offerSize     = 3
	contactPeriod = time.Second

	// abilitySeedSalt keeps the ability roller on a different stream than
	// the spawner for the same seed
	abilitySeedSalt = 0x5eed
)

// Config holds configuration for one run
type Config struct {
	RunID     string
	Seed      int64
	Duration  time.Duration
	Tick      time.Duration
	Data      *gamedata.Document
	Publisher publisher.Publisher
	IDs       uuid.Generator
}

// Simulation owns every collaborator of one run. It is not safe for
// concurrent use; run several simulations in parallel instead.
type Simulation struct {
	runID    string
	seed     int64
	duration time.Duration
	tick     time.Duration
	data     *gamedata.Document

	bus       *events.EventBus
	scheduler *schedule.Scheduler
	hero      *hero
	xp        *experience.Tracker
	abilities abilities.Service
	spawner   *spawner.Spawner
	resolver  *projectiles.Resolver
	orbit     *orbit.System
	orbitCfg  orbit.Settings
	publisher publisher.Publisher

	enemies     []*spawner.Enemy
	enemyByID   map[string]*spawner.Enemy
	shots       []*projectiles.Projectile
	nextContact map[string]time.Duration

	elapsed    time.Duration
	shootTimer time.Duration
	heroDied   bool

	// filled by bus listeners and drained once per step
	deaths      []string
	levelUps    int
	sideEffects []abilities.SideEffect

	result *Result
}

// New wires a run from game data. Nothing happens until Run or Step.
func New(cfg *Config) (*Simulation, error) {
	if cfg == nil {
		return nil, gameerr.UnresolvedDependency("simulation config")
	}
	if cfg.Duration <= 0 || cfg.Tick <= 0 {
		return nil, gameerr.InvalidArgumentf("duration and tick must be positive, got %s and %s", cfg.Duration, cfg.Tick)
	}

	data := cfg.Data
	if data == nil {
		data = gamedata.Default()
	}
	runID := cfg.RunID
	if runID == "" {
		runID = uuid.NewGoogleUUIDGenerator().New()
	}
	ids := cfg.IDs
	if ids == nil {
		ids = uuid.NewSequentialGenerator(runID)
	}

	heroStats, err := data.HeroStats()
	if err != nil {
		return nil, err
	}
	enemyConfigs, err := data.EnemyConfigs()
	if err != nil {
		return nil, err
	}
	db, err := data.AbilityDatabase()
	if err != nil {
		return nil, err
	}
	settings, err := data.DifficultySettings()
	if err != nil {
		return nil, err
	}
	tuning, err := data.ProjectileTuning()
	if err != nil {
		return nil, err
	}
	orbitCfg, err := data.OrbitSettings()
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		runID:       runID,
		seed:        cfg.Seed,
		duration:    cfg.Duration,
		tick:        cfg.Tick,
		data:        data,
		bus:         events.NewEventBus(),
		scheduler:   schedule.NewScheduler(),
		orbitCfg:    orbitCfg,
		publisher:   cfg.Publisher,
		enemyByID:   make(map[string]*spawner.Enemy),
		nextContact: make(map[string]time.Duration),
		result: &Result{
			RunID:            runID,
			Seed:             cfg.Seed,
			KillsByArchetype: make(map[string]int),
		},
	}

	if err := s.setupHero(heroStats, db); err != nil {
		return nil, err
	}

	s.resolver, err = projectiles.NewResolver(&projectiles.ResolverConfig{
		Finder:    s,
		Scheduler: s.scheduler,
		IDs:       ids,
		Events:    s.bus,
		Tuning:    tuning,
	})
	if err != nil {
		return nil, err
	}

	curve, err := difficulty.NewCurve(settings.Stages)
	if err != nil {
		return nil, err
	}
	factory, err := spawner.NewFactory(&spawner.FactoryConfig{
		Curve:   curve,
		Enemies: enemyConfigs,
		IDs:     ids,
		Events:  s.bus,
	})
	if err != nil {
		return nil, err
	}
	s.spawner, err = spawner.NewSpawner(&spawner.Config{
		Settings:      settings,
		Factory:       factory,
		World:         s,
		Scheduler:     s.scheduler,
		Roller:        rng.NewRandomRoller(cfg.Seed),
		Events:        s.bus,
		SpawnDistance: data.Difficulty.SpawnDistance,
	})
	if err != nil {
		return nil, err
	}

	s.subscribe()
	return s, nil
}

func (s *Simulation) setupHero(base map[stats.StatKind]float64, db *abilities.Database) error {
	registry := stats.NewRegistry()
	for _, kind := range stats.AllStatKinds() {
		if value, ok := base[kind]; ok {
			if err := registry.SetBase(kind, value); err != nil {
				return err
			}
		}
	}

	hp, err := health.New(&health.Config{EntityID: HeroID, Registry: registry, Events: s.bus})
	if err != nil {
		return err
	}
	s.hero = &hero{registry: registry, health: hp}

	s.xp, err = experience.NewTracker(&experience.TrackerConfig{
		EntityID:   HeroID,
		Registry:   registry,
		Events:     s.bus,
		XPPerLevel: s.data.Experience.XPPerLevel,
	})
	if err != nil {
		return err
	}
	if err := s.xp.Setup(1); err != nil {
		return err
	}

	s.abilities, err = abilities.NewService(&abilities.ServiceConfig{
		Database: db,
		Events:   s.bus,
		Roller:   rng.NewRandomRoller(s.seed ^ abilitySeedSalt),
	})
	if err != nil {
		return err
	}
	return s.abilities.Track(HeroID, registry)
}

func (s *Simulation) subscribe() {
	s.bus.Subscribe(events.EntityDied, &events.FuncListener{Fn: func(e *events.GameEvent) error {
		if e.EntityID == HeroID {
			s.heroDied = true
			return nil
		}
		s.deaths = append(s.deaths, e.EntityID)
		return nil
	}})
	s.bus.Subscribe(events.LevelUp, &events.FuncListener{Fn: func(e *events.GameEvent) error {
		if e.EntityID == HeroID {
			s.levelUps++
		}
		return nil
	}})
	s.bus.Subscribe(events.SideEffectRequested, &events.FuncListener{Fn: func(e *events.GameEvent) error {
		effect, _ := e.GetStringContext(events.ContextSideEffect)
		s.sideEffects = append(s.sideEffects, abilities.SideEffect(effect))
		return nil
	}})
	s.bus.Subscribe(events.ProjectileFired, &events.FuncListener{Fn: func(*events.GameEvent) error {
		s.result.ProjectilesFired++
		return nil
	}})
}

// Bus exposes the run's event bus so callers can observe it
func (s *Simulation) Bus() *events.EventBus {
	return s.bus
}

func (s *Simulation) Elapsed() time.Duration {
	return s.elapsed
}

func (s *Simulation) HeroDied() bool {
	return s.heroDied
}

// Run steps the simulation until the duration passes, the hero dies or ctx
// is cancelled. A cancelled run still returns its partial result.
func (s *Simulation) Run(ctx context.Context) (*Result, error) {
	if s.publisher != nil {
		listener := publisher.NewListener(ctx, s.runID, s.publisher)
		s.bus.SubscribeAll(listener)
		defer s.bus.UnsubscribeAll(listener)
	}

	if err := s.bus.Emit(events.NewGameEvent(events.RunStarted).
		WithContext(events.ContextRunID, s.runID).
		WithContext(events.ContextSeed, s.seed)); err != nil {
		return nil, gameerr.Wrap(err, "failed to start run")
	}

	reason := ReasonCompleted
	var runErr error
	for s.elapsed < s.duration && !s.heroDied {
		if err := ctx.Err(); err != nil {
			reason, runErr = ReasonCancelled, err
			break
		}
		if err := s.Step(ctx); err != nil {
			return nil, gameerr.Wrapf(err, "run %s failed at %s", s.runID, s.elapsed)
		}
	}
	if s.heroDied {
		reason = ReasonDied
	}

	result := s.finish()
	if err := s.bus.Emit(events.NewGameEvent(events.RunEnded).
		WithContext(events.ContextRunID, s.runID).
		WithContext(events.ContextElapsed, s.elapsed.Seconds()).
		WithContext(events.ContextKills, result.Kills).
		WithContext(events.ContextLevel, result.Level).
		WithContext(events.ContextReason, reason)); err != nil {
		log.Printf("Simulation: failed to emit end of run %s: %v", s.runID, err)
	}

	return result, runErr
}

// Step advances the run by one tick
func (s *Simulation) Step(ctx context.Context) error {
	dt := s.tick
	s.elapsed += dt
	s.scheduler.Advance(dt)

	if _, err := s.spawner.Tick(ctx, s.elapsed, dt); err != nil {
		return err
	}

	s.moveHero(dt)
	if err := s.shoot(ctx, dt); err != nil {
		return err
	}
	if err := s.moveShots(ctx, dt); err != nil {
		return err
	}
	if s.orbit != nil {
		s.orbit.Update(dt)
		s.result.OrbitHits += s.orbit.Collide(s.hero.position, s.alive())
	}
	s.moveEnemies(dt)

	if err := s.drain(ctx); err != nil {
		return err
	}
	s.sweep()
	return nil
}

// AddEnemy implements spawner.World
func (s *Simulation) AddEnemy(enemy *spawner.Enemy) {
	s.enemies = append(s.enemies, enemy)
	s.enemyByID[enemy.ID()] = enemy
}

// HeroPosition implements spawner.World
func (s *Simulation) HeroPosition() geom.Vec2 {
	return s.hero.position
}

// Within implements projectiles.TargetFinder over living enemies
func (s *Simulation) Within(center geom.Vec2, radius float64) []projectiles.Entity {
	var out []projectiles.Entity
	for _, e := range s.enemies {
		if !e.IsDead() && e.Position().Dist(center) <= radius {
			out = append(out, e)
		}
	}
	return out
}

func (s *Simulation) alive() []projectiles.Entity {
	out := make([]projectiles.Entity, 0, len(s.enemies))
	for _, e := range s.enemies {
		if !e.IsDead() {
			out = append(out, e)
		}
	}
	return out
}

func (s *Simulation) nearestEnemy(within float64) (*spawner.Enemy, bool) {
	var (
		best     *spawner.Enemy
		bestDist = math.MaxFloat64
	)
	for _, e := range s.enemies {
		if e.IsDead() {
			continue
		}
		if d := e.Position().Dist(s.hero.position); d <= within && d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, best != nil
}

// moveHero backs away from the nearest enemy once it gets close
func (s *Simulation) moveHero(dt time.Duration) {
	threat, ok := s.nearestEnemy(kiteDistance)
	if !ok {
		return
	}
	away := s.hero.position.Sub(threat.Position()).Normalize()
	if away == (geom.Vec2{}) {
		away = geom.V(1, 0)
	}
	step := s.hero.registry.MustGetFinal(stats.StatMovementSpeed) * dt.Seconds()
	s.hero.position = s.hero.position.Add(away.Scale(step))
}

func (s *Simulation) shoot(ctx context.Context, dt time.Duration) error {
	s.shootTimer -= dt
	if s.shootTimer > 0 {
		return nil
	}

	target, ok := s.nearestEnemy(s.hero.registry.MustGetFinal(stats.StatVisionRange))
	if !ok {
		s.shootTimer = 0
		return nil
	}

	shot, err := s.resolver.Spawn(ctx, &projectiles.SpawnInput{
		Owner:     s.hero.registry,
		OwnerID:   HeroID,
		Team:      projectiles.TeamHero,
		Origin:    s.hero.position,
		Direction: target.Position().Sub(s.hero.position),
	})
	if err != nil {
		return err
	}
	s.shots = append(s.shots, shot)

	cooldown := s.hero.registry.MustGetFinal(stats.StatShootCooldown)
	s.shootTimer = time.Duration(cooldown * float64(time.Second))
	return nil
}

// moveShots advances projectiles and resolves every enemy the swept path
// touched this tick, in spawn order.
func (s *Simulation) moveShots(ctx context.Context, dt time.Duration) error {
	for _, shot := range s.shots {
		if shot.Destroyed() {
			continue
		}
		from := shot.Position()
		shot.Move(dt.Seconds())
		to := shot.Position()

		for _, e := range s.enemies {
			if e.IsDead() || geom.SegmentDist(from, to, e.Position()) > e.Radius()+projectileRadius {
				continue
			}
			outcome, err := shot.HandleCollision(ctx, projectiles.Collision{Other: e, Point: e.Position()})
			if err != nil {
				return err
			}
			// a bounce turns the shot; the rest of this path is stale
			if outcome == projectiles.OutcomeBounced || shot.Destroyed() {
				break
			}
		}
	}
	return nil
}

func (s *Simulation) moveEnemies(dt time.Duration) {
	for _, e := range s.enemies {
		if e.IsDead() {
			continue
		}
		e.MoveToward(s.hero.position, dt.Seconds())

		if e.Position().Dist(s.hero.position) > e.Radius()+heroRadius {
			continue
		}
		if s.elapsed < s.nextContact[e.ID()] {
			continue
		}
		s.hero.ApplyDamage(e.Stats().MustGetFinal(stats.StatDamage))
		s.nextContact[e.ID()] = s.elapsed + contactPeriod
	}
}

// drain handles what listeners queued during the step. Handling one item
// can queue more, so it loops until every queue is empty.
func (s *Simulation) drain(ctx context.Context) error {
	for len(s.deaths) > 0 || s.levelUps > 0 || len(s.sideEffects) > 0 {
		switch {
		case len(s.deaths) > 0:
			id := s.deaths[0]
			s.deaths = s.deaths[1:]
			if err := s.handleKill(id); err != nil {
				return err
			}
		case s.levelUps > 0:
			s.levelUps--
			if err := s.handleLevelUp(ctx); err != nil {
				return err
			}
		default:
			effect := s.sideEffects[0]
			s.sideEffects = s.sideEffects[1:]
			if err := s.handleSideEffect(effect); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Simulation) handleKill(id string) error {
	enemy, ok := s.enemyByID[id]
	if !ok {
		return nil
	}
	s.result.Kills++
	s.result.KillsByArchetype[string(enemy.Archetype())]++

	if every := s.data.Hero.PotionEvery; every > 0 && s.result.Kills%every == 0 && !s.heroDied {
		if s.hero.health.Heal(s.data.Hero.PotionHeal) > 0 {
			s.result.PotionsUsed++
		}
	}

	if _, err := s.xp.AddExperience(enemy.XPReward()); err != nil {
		return gameerr.Wrapf(err, "failed to award xp for %s", id)
	}
	return nil
}

func (s *Simulation) handleLevelUp(ctx context.Context) error {
	offer, ok, err := s.abilities.Offer(HeroID, offerSize)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	result, err := s.abilities.Apply(ctx, HeroID, offer[0].Kind)
	if err != nil {
		return err
	}
	if result.Applied {
		s.result.AbilitiesTaken = append(s.result.AbilitiesTaken, string(result.Kind))
	}
	return nil
}

func (s *Simulation) handleSideEffect(effect abilities.SideEffect) error {
	if effect != abilities.SideEffectGrantOrbitingSystem || s.orbit != nil {
		return nil
	}

	if s.hero.registry.MustGetFinal(stats.StatOrbitingProjectileCount) <= 0 {
		if err := s.hero.registry.SetBase(stats.StatOrbitingProjectileCount, orbit.DefaultCount); err != nil {
			return err
		}
	}

	sys, err := orbit.NewSystem(&orbit.Config{
		Owner:     s.hero.registry,
		Team:      projectiles.TeamHero,
		Scheduler: s.scheduler,
		Settings:  s.orbitCfg,
	})
	if err != nil {
		return err
	}
	s.orbit = sys
	return nil
}

func (s *Simulation) sweep() {
	enemies := s.enemies[:0]
	for _, e := range s.enemies {
		if e.IsDead() {
			e.Health().Close()
			delete(s.enemyByID, e.ID())
			delete(s.nextContact, e.ID())
			continue
		}
		enemies = append(enemies, e)
	}
	s.enemies = enemies

	shots := s.shots[:0]
	for _, shot := range s.shots {
		if !shot.Removed() {
			shots = append(shots, shot)
		}
	}
	s.shots = shots
}

func (s *Simulation) finish() *Result {
	r := s.result
	r.SurvivedFor = s.elapsed
	r.HeroDied = s.heroDied
	r.Level = s.xp.Level()

	r.Spawned = make(map[string]int)
	for archetype, n := range s.spawner.Spawned() {
		r.Spawned[string(archetype)] = n
	}

	r.FinalStats = make(map[string]float64)
	for kind, value := range s.hero.registry.Snapshot() {
		r.FinalStats[kind.String()] = value
	}
	return r
}
