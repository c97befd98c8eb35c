package abilities

import (
	"context"
	"sync"

	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/KirkDiggler/horde-survivor/internal/events"
	"github.com/KirkDiggler/horde-survivor/internal/rng"
	"github.com/KirkDiggler/horde-survivor/internal/stats"
)

// Service tracks ability progress for every entity in play
type Service interface {
	// Track starts progress for an entity entering play
	Track(entityID string, registry *stats.Registry) error

	// Progress returns the entity's progress
	Progress(entityID string) (*Progress, error)

	// CanApply reports whether the entity may take one more stack of kind
	CanApply(entityID string, kind Kind) (bool, error)

	// Apply adds one stack of kind to the entity
	Apply(ctx context.Context, entityID string, kind Kind) (*ApplyResult, error)

	// Offer returns a random level-up choice. ok is false when the pool is empty.
	Offer(entityID string, count int) (offer []Definition, ok bool, err error)
}

type tracked struct {
	registry *stats.Registry
	progress *Progress
}

type service struct {
	db       *Database
	emitter  events.Emitter
	roller   rng.Roller
	entities map[string]*tracked
	mu       sync.RWMutex
}

// ServiceConfig holds configuration for the ability service
type ServiceConfig struct {
	Database *Database
	Events   events.Emitter
	Roller   rng.Roller
}

// NewService creates the ability service. Database and Roller are required.
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil || cfg.Database == nil {
		return nil, gameerr.UnresolvedDependency("ability database")
	}
	if cfg.Roller == nil {
		return nil, gameerr.UnresolvedDependency("roller")
	}

	return &service{
		db:       cfg.Database,
		emitter:  cfg.Events,
		roller:   cfg.Roller,
		entities: make(map[string]*tracked),
	}, nil
}

func (s *service) Track(entityID string, registry *stats.Registry) error {
	if entityID == "" {
		return gameerr.InvalidArgument("entity ID is required")
	}
	if registry == nil {
		return gameerr.UnresolvedDependency("stat registry").WithMeta("entity_id", entityID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entities[entityID]; exists {
		return gameerr.AlreadyExistsf("entity %s already tracked", entityID).WithMeta("entity_id", entityID)
	}
	s.entities[entityID] = &tracked{registry: registry, progress: NewProgress()}
	return nil
}

func (s *service) get(entityID string) (*tracked, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.entities[entityID]
	if !ok {
		return nil, gameerr.UnresolvedDependency("ability progress").WithMeta("entity_id", entityID)
	}
	return t, nil
}

func (s *service) definition(kind Kind) (Definition, error) {
	def, ok := s.db.Get(kind)
	if !ok {
		return Definition{}, gameerr.NotFoundf("ability %s not found", kind).WithMeta("ability", string(kind))
	}
	return def, nil
}

func (s *service) Progress(entityID string) (*Progress, error) {
	t, err := s.get(entityID)
	if err != nil {
		return nil, err
	}
	return t.progress, nil
}

func (s *service) CanApply(entityID string, kind Kind) (bool, error) {
	t, err := s.get(entityID)
	if err != nil {
		return false, err
	}
	def, err := s.definition(kind)
	if err != nil {
		return false, err
	}
	return CanApply(def, t.progress), nil
}

func (s *service) Apply(ctx context.Context, entityID string, kind Kind) (*ApplyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := s.get(entityID)
	if err != nil {
		return nil, err
	}
	def, err := s.definition(kind)
	if err != nil {
		return nil, err
	}

	result, err := Apply(def, t.registry, t.progress)
	if err != nil {
		return nil, gameerr.Wrapf(err, "failed to apply %s to %s", kind, entityID)
	}
	if !result.Applied {
		return &result, nil
	}

	if err := s.emit(events.NewGameEvent(events.AbilityApplied).
		WithEntity(entityID).
		WithContext(events.ContextAbility, string(kind)).
		WithContext(events.ContextStacks, result.Stacks)); err != nil {
		return &result, err
	}

	if result.SideEffect != SideEffectNone {
		if err := s.emit(events.NewGameEvent(events.SideEffectRequested).
			WithEntity(entityID).
			WithContext(events.ContextAbility, string(kind)).
			WithContext(events.ContextSideEffect, string(result.SideEffect))); err != nil {
			return &result, err
		}
	}

	return &result, nil
}

func (s *service) Offer(entityID string, count int) ([]Definition, bool, error) {
	t, err := s.get(entityID)
	if err != nil {
		return nil, false, err
	}
	offer, ok := Offer(s.db, t.progress, count, s.roller)
	return offer, ok, nil
}

func (s *service) emit(event *events.GameEvent) error {
	if s.emitter == nil {
		return nil
	}
	if err := s.emitter.Emit(event); err != nil {
		return gameerr.Wrapf(err, "failed to emit %s", event.Type)
	}
	return nil
}
