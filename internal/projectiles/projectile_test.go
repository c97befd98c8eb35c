package projectiles_test

import (
	"context"
	"testing"
	"time"

	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/KirkDiggler/horde-survivor/internal/events"
	"github.com/KirkDiggler/horde-survivor/internal/geom"
	"github.com/KirkDiggler/horde-survivor/internal/projectiles"
	mockprojectiles "github.com/KirkDiggler/horde-survivor/internal/projectiles/mock"
	"github.com/KirkDiggler/horde-survivor/internal/schedule"
	"github.com/KirkDiggler/horde-survivor/internal/stats"
	"github.com/KirkDiggler/horde-survivor/internal/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// dummy is a hostile entity with health
type dummy struct {
	id     string
	pos    geom.Vec2
	team   projectiles.Team
	damage float64
	hits   int
}

func (d *dummy) ID() string                 { return d.id }
func (d *dummy) Position() geom.Vec2        { return d.pos }
func (d *dummy) Team() projectiles.Team     { return d.team }
func (d *dummy) ApplyDamage(amount float64) { d.damage += amount; d.hits++ }

// wall has a team but no health
type wall struct{ id string }

func (w *wall) ID() string             { return w.id }
func (w *wall) Position() geom.Vec2    { return geom.Vec2{} }
func (w *wall) Team() projectiles.Team { return projectiles.TeamEnemy }

// crate has health but no team
type crate struct{ hits int }

func (c *crate) ID() string          { return "crate" }
func (c *crate) Position() geom.Vec2 { return geom.Vec2{} }
func (c *crate) ApplyDamage(float64) { c.hits++ }

type ProjectileSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	finder    *mockprojectiles.MockTargetFinder
	scheduler *schedule.Scheduler
	bus       *events.EventBus
	resolver  *projectiles.Resolver
	owner     *stats.Registry
	destroyed []*events.GameEvent
	ctx       context.Context
}

func TestProjectileSuite(t *testing.T) {
	suite.Run(t, new(ProjectileSuite))
}

func (s *ProjectileSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.finder = mockprojectiles.NewMockTargetFinder(s.ctrl)
	s.scheduler = schedule.NewScheduler()
	s.bus = events.NewEventBus()
	s.ctx = context.Background()
	s.destroyed = nil

	s.bus.Subscribe(events.ProjectileDestroyed, &events.FuncListener{Fn: func(e *events.GameEvent) error {
		s.destroyed = append(s.destroyed, e)
		return nil
	}})

	var err error
	s.resolver, err = projectiles.NewResolver(&projectiles.ResolverConfig{
		Finder:    s.finder,
		Scheduler: s.scheduler,
		IDs:       uuid.NewSequentialGenerator("shot"),
		Events:    s.bus,
	})
	s.Require().NoError(err)

	s.owner = stats.NewRegistry()
	s.Require().NoError(s.owner.SetBase(stats.StatDamage, 10))
	s.Require().NoError(s.owner.SetBase(stats.StatProjectileSpeed, 10))
}

func (s *ProjectileSuite) spawn(piercing, bounces float64) *projectiles.Projectile {
	s.Require().NoError(s.owner.SetBase(stats.StatPiercing, piercing))
	s.Require().NoError(s.owner.SetBase(stats.StatBounces, bounces))

	p, err := s.resolver.Spawn(s.ctx, &projectiles.SpawnInput{
		Owner:     s.owner,
		OwnerID:   "hero",
		Team:      projectiles.TeamHero,
		Direction: geom.V(1, 0),
	})
	s.Require().NoError(err)
	return p
}

func enemy(id string, x, y float64) *dummy {
	return &dummy{id: id, pos: geom.V(x, y), team: projectiles.TeamEnemy}
}

func (s *ProjectileSuite) hit(p *projectiles.Projectile, target projectiles.Entity) projectiles.Outcome {
	outcome, err := p.HandleCollision(s.ctx, projectiles.Collision{Other: target, Point: target.Position()})
	s.Require().NoError(err)
	return outcome
}

func (s *ProjectileSuite) TestSpawnCopiesOwnerStats() {
	s.Require().NoError(s.owner.AddModifier(stats.Add(stats.StatDamage, 5)))
	p := s.spawn(2, 1)

	s.Equal("shot-1", p.ID())
	s.Equal(projectiles.StateFlying, p.State())
	s.Equal(15.0, p.Stats().MustGetFinal(stats.StatDamage))
	s.Equal(2.0, p.Stats().MustGetFinal(stats.StatPiercing))
	s.Equal(1.0, p.Stats().MustGetFinal(stats.StatBounces))
	s.Equal(10.0, p.Stats().MustGetFinal(stats.StatProjectileSpeed))

	// later owner changes do not reach shots already in flight
	s.Require().NoError(s.owner.SetBase(stats.StatDamage, 100))
	s.Equal(15.0, p.Stats().MustGetFinal(stats.StatDamage))
}

func (s *ProjectileSuite) TestNoPiercingNoBounceDestroyedOnFirstHit() {
	p := s.spawn(0, 0)
	e := enemy("e1", 1, 0)

	s.Equal(projectiles.OutcomeDestroyed, s.hit(p, e))
	s.Equal(10.0, e.damage)
	s.Equal(1, p.CombatState().PiercedCount)
	s.True(p.Destroyed())
	s.Equal(projectiles.StateDestroyed, p.State())

	// removal is delayed
	s.False(p.Removed())
	s.scheduler.Advance(s.resolver.Tuning().DestroyDelay)
	s.True(p.Removed())
	s.Require().Len(s.destroyed, 1)
	reason, _ := s.destroyed[0].GetStringContext(events.ContextOutcome)
	s.Equal(projectiles.ReasonSpent, reason)
}

func (s *ProjectileSuite) TestPiercingTwoSurvivesTwoHits() {
	p := s.spawn(2, 0)

	s.Equal(projectiles.OutcomePierced, s.hit(p, enemy("e1", 1, 0)))
	s.Equal(projectiles.StatePiercing, p.State())
	s.Equal(projectiles.OutcomePierced, s.hit(p, enemy("e2", 2, 0)))
	s.Equal(projectiles.StatePiercing, p.State())
	s.Equal(projectiles.OutcomeDestroyed, s.hit(p, enemy("e3", 3, 0)))
	s.Equal(3, p.CombatState().PiercedCount)
}

func (s *ProjectileSuite) TestBounceOnceThenPierceWithFloor() {
	p := s.spawn(0, 1)
	first := enemy("e1", 0, 0)
	second := enemy("e2", 0, 4)
	third := enemy("e3", 0, 8)

	s.finder.EXPECT().
		Within(first.Position(), 5.0).
		Return([]projectiles.Entity{first, &wall{id: "w"}, &dummy{id: "ally", team: projectiles.TeamHero}, second})

	s.Equal(projectiles.OutcomeBounced, s.hit(p, first))
	state := p.CombatState()
	s.Equal(1, state.BounceCount)
	s.True(state.HasBounced)
	s.Equal(0, state.PiercedCount)
	s.Equal(projectiles.StateBouncing, p.State())
	s.Equal(geom.V(0, 1), p.Direction())

	// no bounce capacity left: piercing floor of 1 keeps it alive once
	s.Equal(projectiles.OutcomePierced, s.hit(p, second))
	s.Equal(1, p.CombatState().PiercedCount)

	s.Equal(projectiles.OutcomeDestroyed, s.hit(p, third))
	s.Equal(10.0, first.damage)
	s.Equal(10.0, second.damage)
	s.Equal(10.0, third.damage)
}

func (s *ProjectileSuite) TestBounceWithoutTargetFallsThroughToPiercing() {
	p := s.spawn(0, 1)
	s.finder.EXPECT().Within(gomock.Any(), gomock.Any()).Return(nil)

	s.Equal(projectiles.OutcomePierced, s.hit(p, enemy("e1", 0, 0)))
	s.False(p.CombatState().HasBounced)
	s.Equal(1, p.CombatState().PiercedCount)
}

func (s *ProjectileSuite) TestBouncePicksNearest() {
	p := s.spawn(0, 2)
	far := enemy("far", 4, 0)
	near := enemy("near", 1, 0)
	s.finder.EXPECT().Within(gomock.Any(), gomock.Any()).Return([]projectiles.Entity{far, near})

	s.Equal(projectiles.OutcomeBounced, s.hit(p, enemy("e1", 0, 0)))
	s.Equal(geom.V(1, 0), p.Direction())

	// second bounce capacity is used on the next hit
	s.finder.EXPECT().Within(near.Position(), 5.0).Return([]projectiles.Entity{near, far})
	s.Equal(projectiles.OutcomeBounced, s.hit(p, near))
	s.Equal(2, p.CombatState().BounceCount)
}

func (s *ProjectileSuite) TestSameTargetOnlyHitOnce() {
	p := s.spawn(3, 0)
	e := enemy("e1", 1, 0)

	s.Equal(projectiles.OutcomePierced, s.hit(p, e))
	s.Equal(projectiles.OutcomeIgnored, s.hit(p, e))
	s.Equal(1, e.hits)
	s.Equal(1, p.CombatState().PiercedCount)
}

func (s *ProjectileSuite) TestInvalidHitsAreIgnored() {
	p := s.spawn(0, 0)
	ally := &dummy{id: "ally", team: projectiles.TeamHero}
	box := &crate{}

	s.Equal(projectiles.OutcomeIgnored, s.hit(p, ally))
	s.Equal(projectiles.OutcomeIgnored, s.hit(p, &wall{id: "w"}))
	s.Equal(projectiles.OutcomeIgnored, s.hit(p, box))

	outcome, err := p.HandleCollision(s.ctx, projectiles.Collision{})
	s.NoError(err)
	s.Equal(projectiles.OutcomeIgnored, outcome)

	s.Zero(ally.hits)
	s.Zero(box.hits)
	combat := p.CombatState()
	s.Zero(combat.HitCount())
	s.Equal(projectiles.StateFlying, p.State())
}

func (s *ProjectileSuite) TestCollisionsAfterDestroyIgnored() {
	p := s.spawn(0, 0)
	s.hit(p, enemy("e1", 0, 0))

	late := enemy("e2", 0, 0)
	s.Equal(projectiles.OutcomeIgnored, s.hit(p, late))
	s.Zero(late.hits)
}

func (s *ProjectileSuite) TestLifetimeExpiry() {
	p := s.spawn(5, 0)

	s.scheduler.Advance(4*time.Second - time.Millisecond)
	s.False(p.Destroyed())

	s.scheduler.Advance(time.Millisecond)
	s.True(p.Destroyed())
	s.False(p.Removed())

	s.scheduler.Advance(s.resolver.Tuning().DestroyDelay)
	s.True(p.Removed())
	s.Require().Len(s.destroyed, 1)
	reason, _ := s.destroyed[0].GetStringContext(events.ContextOutcome)
	s.Equal(projectiles.ReasonExpired, reason)
}

func (s *ProjectileSuite) TestDestroyIsIdempotentAndCancelsLifetime() {
	p := s.spawn(0, 0)
	s.Equal(1, s.scheduler.Pending())

	s.Require().NoError(p.Destroy(s.ctx))
	s.Require().NoError(p.Destroy(s.ctx))
	s.Equal(1, s.scheduler.Pending())

	s.scheduler.Advance(10 * time.Second)
	s.Len(s.destroyed, 1)
	s.Equal(0, s.scheduler.Pending())
}

func (s *ProjectileSuite) TestMove() {
	p := s.spawn(0, 0)
	p.Move(0.5)
	s.Equal(geom.V(5, 0), p.Position())

	s.Require().NoError(p.Destroy(s.ctx))
	p.Move(0.5)
	s.Equal(geom.V(5, 0), p.Position())
}

func (s *ProjectileSuite) TestSpawnValidation() {
	_, err := s.resolver.Spawn(s.ctx, &projectiles.SpawnInput{Team: projectiles.TeamHero})
	s.True(gameerr.IsUnresolvedDependency(err))

	_, err = s.resolver.Spawn(s.ctx, nil)
	s.True(gameerr.IsInvalidArgument(err))
}

func (s *ProjectileSuite) TestNewResolverRequiresCollaborators() {
	_, err := projectiles.NewResolver(&projectiles.ResolverConfig{Scheduler: s.scheduler})
	s.True(gameerr.IsUnresolvedDependency(err))

	_, err = projectiles.NewResolver(&projectiles.ResolverConfig{Finder: s.finder})
	s.True(gameerr.IsUnresolvedDependency(err))

	r, err := projectiles.NewResolver(&projectiles.ResolverConfig{Finder: s.finder, Scheduler: s.scheduler})
	s.Require().NoError(err)
	s.Equal(projectiles.DefaultTuning(), r.Tuning())
}

func (s *ProjectileSuite) TestTeamHostility() {
	s.True(projectiles.TeamHero.Hostile(projectiles.TeamEnemy))
	s.False(projectiles.TeamHero.Hostile(projectiles.TeamHero))
	s.False(projectiles.TeamHero.Hostile(projectiles.TeamUnknown))
	s.False(projectiles.TeamUnknown.Hostile(projectiles.TeamEnemy))
}
