package projectiles

import (
	"context"
	"log"

	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/KirkDiggler/horde-survivor/internal/events"
	"github.com/KirkDiggler/horde-survivor/internal/geom"
	"github.com/KirkDiggler/horde-survivor/internal/schedule"
	"github.com/KirkDiggler/horde-survivor/internal/stats"
	"github.com/KirkDiggler/horde-survivor/internal/uuid"
)

// inheritedStats are copied from the shooter into every new projectile
var inheritedStats = []stats.StatKind{
	stats.StatDamage,
	stats.StatPiercing,
	stats.StatBounces,
	stats.StatProjectileSpeed,
}

// ResolverConfig holds the collaborators shared by every projectile
type ResolverConfig struct {
	Finder    TargetFinder
	Scheduler *schedule.Scheduler
	IDs       uuid.Generator
	Events    events.Emitter
	Tuning    Tuning
}

// Resolver creates projectiles and owns the collaborators they resolve
// hits against.
type Resolver struct {
	finder    TargetFinder
	scheduler *schedule.Scheduler
	ids       uuid.Generator
	emitter   events.Emitter
	tuning    Tuning
}

// NewResolver fails with an unresolved dependency error when the finder or
// scheduler is missing. A zero Tuning means DefaultTuning.
func NewResolver(cfg *ResolverConfig) (*Resolver, error) {
	if cfg == nil {
		return nil, gameerr.UnresolvedDependency("resolver config")
	}
	if cfg.Finder == nil {
		return nil, gameerr.UnresolvedDependency("target finder")
	}
	if cfg.Scheduler == nil {
		return nil, gameerr.UnresolvedDependency("scheduler")
	}

	r := &Resolver{
		finder:    cfg.Finder,
		scheduler: cfg.Scheduler,
		ids:       cfg.IDs,
		emitter:   cfg.Events,
		tuning:    cfg.Tuning,
	}
	if r.ids == nil {
		r.ids = uuid.NewGoogleUUIDGenerator()
	}
	if r.tuning == (Tuning{}) {
		r.tuning = DefaultTuning()
	}
	return r, nil
}

// SpawnInput describes a new shot
type SpawnInput struct {
	// Owner is the shooter's registry; its damage, piercing, bounces and
	// projectile speed become the projectile's base stats.
	Owner     *stats.Registry
	OwnerID   string
	Team      Team
	Origin    geom.Vec2
	Direction geom.Vec2
}

// Spawn creates a projectile and starts its lifetime deadline
func (r *Resolver) Spawn(ctx context.Context, input *SpawnInput) (*Projectile, error) {
	if input == nil {
		return nil, gameerr.InvalidArgument("spawn input cannot be nil")
	}
	if input.Owner == nil {
		return nil, gameerr.UnresolvedDependency("owner stat registry").WithMeta("owner_id", input.OwnerID)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	registry := stats.NewRegistry()
	for _, kind := range inheritedStats {
		if err := registry.SetBase(kind, input.Owner.MustGetFinal(kind)); err != nil {
			return nil, gameerr.Wrapf(err, "failed to copy %s", kind)
		}
	}

	p := newProjectile(r, r.ids.New(), input.Team, registry, input.Origin, input.Direction)
	p.lifetime = r.scheduler.After(r.tuning.Lifetime, p.expire)

	r.emit(events.NewGameEvent(events.ProjectileFired).
		WithEntity(p.id).
		WithContext(events.ContextSourceID, input.OwnerID))

	return p, nil
}

// Tuning returns the constants projectiles resolve with
func (r *Resolver) Tuning() Tuning {
	return r.tuning
}

// emit is best effort: a failing listener must not change hit resolution.
func (r *Resolver) emit(event *events.GameEvent) {
	if r.emitter == nil {
		return
	}
	if err := r.emitter.Emit(event); err != nil {
		log.Printf("Projectile: failed to emit %s: %v", event.Type, err)
	}
}
