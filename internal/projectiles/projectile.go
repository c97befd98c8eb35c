package projectiles

import (
	"context"
	"errors"
	"log"
	"math"

	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/KirkDiggler/horde-survivor/internal/events"
	"github.com/KirkDiggler/horde-survivor/internal/geom"
	"github.com/KirkDiggler/horde-survivor/internal/schedule"
	"github.com/KirkDiggler/horde-survivor/internal/stats"
	"github.com/looplab/fsm"
)

// Projectile states
const (
	StateFlying    = "flying"
	StatePiercing  = "piercing"
	StateBouncing  = "bouncing"
	StateDestroyed = "destroyed"
)

const (
	eventPierce  = "pierce"
	eventBounce  = "bounce"
	eventDestroy = "destroy"
)

// Removal reasons reported on ProjectileDestroyed
const (
	ReasonSpent   = "spent"
	ReasonExpired = "expired"
)

// Collision is one overlap reported by the physics source. The source does
// not deduplicate; the projectile does.
type Collision struct {
	Other Entity
	Point geom.Vec2
}

// Projectile is one in-flight shot and its hit-resolution state machine
type Projectile struct {
	id        string
	team      Team
	stats     *stats.Registry
	position  geom.Vec2
	direction geom.Vec2
	state     CombatState
	machine   *fsm.FSM

	resolver *Resolver
	lifetime *schedule.Timer
	reason   string
	removed  bool
}

func newProjectile(r *Resolver, id string, team Team, registry *stats.Registry, origin, direction geom.Vec2) *Projectile {
	p := &Projectile{
		id:        id,
		team:      team,
		stats:     registry,
		position:  origin,
		direction: direction.Normalize(),
		state:     newCombatState(),
		resolver:  r,
	}

	live := []string{StateFlying, StatePiercing, StateBouncing}
	p.machine = fsm.NewFSM(
		StateFlying,
		fsm.Events{
			{Name: eventPierce, Src: live, Dst: StatePiercing},
			{Name: eventBounce, Src: live, Dst: StateBouncing},
			{Name: eventDestroy, Src: live, Dst: StateDestroyed},
		},
		fsm.Callbacks{
			"enter_" + StateDestroyed: func(_ context.Context, _ *fsm.Event) {
				p.scheduleRemoval()
			},
		},
	)

	return p
}

func (p *Projectile) ID() string               { return p.id }
func (p *Projectile) Team() Team               { return p.team }
func (p *Projectile) Position() geom.Vec2      { return p.position }
func (p *Projectile) Direction() geom.Vec2     { return p.direction }
func (p *Projectile) Stats() *stats.Registry   { return p.stats }
func (p *Projectile) State() string            { return p.machine.Current() }
func (p *Projectile) CombatState() CombatState { return p.state }

// Destroyed reports whether the projectile stopped resolving hits. It may
// still be waiting for its delayed removal.
func (p *Projectile) Destroyed() bool {
	return p.machine.Is(StateDestroyed)
}

// Removed reports whether the delayed removal has run. Hosts drop the
// projectile from the world once this is true.
func (p *Projectile) Removed() bool {
	return p.removed
}

// Move advances the projectile along its direction by ProjectileSpeed × dt
func (p *Projectile) Move(dtSeconds float64) {
	if p.Destroyed() {
		return
	}
	speed := p.stats.MustGetFinal(stats.StatProjectileSpeed)
	p.position = p.position.Add(p.direction.Scale(speed * dtSeconds))
}

// HandleCollision resolves one overlap. Collisions with entities that have
// no team or no health, allies, and entities already struck are ignored.
func (p *Projectile) HandleCollision(ctx context.Context, c Collision) (Outcome, error) {
	if p.Destroyed() || c.Other == nil {
		return OutcomeIgnored, nil
	}

	member, ok := c.Other.(TeamMember)
	if !ok || !p.team.Hostile(member.Team()) {
		return OutcomeIgnored, nil
	}
	target, ok := c.Other.(Damageable)
	if !ok {
		return OutcomeIgnored, nil
	}

	otherID := c.Other.ID()
	if p.state.HasHit(otherID) {
		return OutcomeIgnored, nil
	}
	p.state.markHit(otherID)

	target.ApplyDamage(p.stats.MustGetFinal(stats.StatDamage))

	piercing := p.stats.MustGetFinal(stats.StatPiercing)
	bounces := p.stats.MustGetFinal(stats.StatBounces)

	if bounces >= 1 && float64(p.state.BounceCount) < bounces {
		if next, found := p.findBounceTarget(c.Point); found {
			p.state.BounceCount++
			p.state.HasBounced = true
			p.direction = next.Position().Sub(p.position).Normalize()
			if err := p.transition(ctx, eventBounce); err != nil {
				return OutcomeBounced, err
			}
			return OutcomeBounced, nil
		}
	}

	p.state.PiercedCount++
	effective := piercing
	if effective <= 0 && bounces >= 1 {
		effective = 1
	}

	if effective <= 0 || float64(p.state.PiercedCount) > effective {
		if err := p.destroy(ctx, ReasonSpent); err != nil {
			return OutcomeDestroyed, err
		}
		return OutcomeDestroyed, nil
	}

	if err := p.transition(ctx, eventPierce); err != nil {
		return OutcomePierced, err
	}
	return OutcomePierced, nil
}

// Destroy ends the projectile early. Repeated calls are no-ops.
func (p *Projectile) Destroy(ctx context.Context) error {
	return p.destroy(ctx, ReasonSpent)
}

func (p *Projectile) destroy(ctx context.Context, reason string) error {
	if p.Destroyed() {
		return nil
	}
	p.reason = reason
	return p.transition(ctx, eventDestroy)
}

func (p *Projectile) transition(ctx context.Context, event string) error {
	err := p.machine.Event(ctx, event)
	if err == nil {
		return nil
	}
	// piercing -> piercing and bouncing -> bouncing are expected
	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return nil
	}
	return gameerr.WrapWithCode(err, gameerr.CodeInternal, "projectile "+event).
		WithMeta("projectile_id", p.id).
		WithMeta("state", p.machine.Current())
}

// findBounceTarget returns the nearest hostile, damageable entity within
// the bounce radius of point that this projectile has not struck yet.
func (p *Projectile) findBounceTarget(point geom.Vec2) (Entity, bool) {
	var (
		best     Entity
		bestDist = math.MaxFloat64
	)

	for _, candidate := range p.resolver.finder.Within(point, p.resolver.tuning.BounceRadius) {
		if candidate == nil || p.state.HasHit(candidate.ID()) {
			continue
		}
		member, ok := candidate.(TeamMember)
		if !ok || !p.team.Hostile(member.Team()) {
			continue
		}
		if _, ok := candidate.(Damageable); !ok {
			continue
		}
		if d := candidate.Position().DistSq(point); d < bestDist {
			best, bestDist = candidate, d
		}
	}

	return best, best != nil
}

// scheduleRemoval runs once, from the enter_destroyed callback
func (p *Projectile) scheduleRemoval() {
	r := p.resolver
	r.scheduler.Cancel(p.lifetime)
	r.scheduler.After(r.tuning.DestroyDelay, p.remove)
}

func (p *Projectile) remove() {
	p.removed = true
	p.resolver.emit(events.NewGameEvent(events.ProjectileDestroyed).
		WithEntity(p.id).
		WithContext(events.ContextOutcome, p.reason).
		WithContext(events.ContextHits, p.state.HitCount()))
}

func (p *Projectile) expire() {
	if err := p.destroy(context.Background(), ReasonExpired); err != nil {
		log.Printf("Projectile: failed to expire %s: %v", p.id, err)
	}
}
