// Package health tracks hit points for one entity and keeps its maximum in
// step with the entity's MaxHealth stat.
package health

import (
	"log"
	"sync"

	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/KirkDiggler/horde-survivor/internal/events"
	"github.com/KirkDiggler/horde-survivor/internal/stats"
)

// Config wires a Health to its entity
type Config struct {
	EntityID string
	Registry *stats.Registry
	Events   events.Emitter
}

// Health is the hit point pool of one entity
type Health struct {
	entityID    string
	registry    *stats.Registry
	emitter     events.Emitter
	unsubscribe func()

	mu      sync.Mutex
	current float64
	max     float64
	dead    bool
}

// New creates a Health bound to the registry's MaxHealth stat. The pool
// starts full at the current MaxHealth.
func New(cfg *Config) (*Health, error) {
	if cfg == nil || cfg.Registry == nil {
		return nil, gameerr.UnresolvedDependency("stat registry")
	}

	h := &Health{
		entityID: cfg.EntityID,
		registry: cfg.Registry,
		emitter:  cfg.Events,
	}
	full := cfg.Registry.MustGetFinal(stats.StatMaxHealth)
	h.current, h.max = full, full
	h.unsubscribe = cfg.Registry.OnChange(h.handleStatChanged)
	return h, nil
}

// Setup overrides both values, for example after difficulty scaling
func (h *Health) Setup(current, maximum float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.max = maximum
	h.current = clamp(current, 0, maximum)
	h.dead = h.current <= 0
}

// Close stops following the MaxHealth stat
func (h *Health) Close() {
	if h.unsubscribe != nil {
		h.unsubscribe()
		h.unsubscribe = nil
	}
}

func (h *Health) Current() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

func (h *Health) Max() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.max
}

func (h *Health) IsDead() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current <= 0
}

// ApplyDamage removes up to amount hit points. EntityDied is emitted once,
// on the hit that empties the pool.
func (h *Health) ApplyDamage(amount float64) {
	h.mu.Lock()
	change := clamp(amount, 0, h.current)
	h.current -= change
	current, maximum := h.current, h.max
	died := !h.dead && h.current <= 0
	if died {
		h.dead = true
	}
	h.mu.Unlock()

	if change > 0 {
		h.emit(events.NewGameEvent(events.EntityDamaged).
			WithEntity(h.entityID).
			WithContext(events.ContextDamage, change).
			WithContext(events.ContextHealth, current).
			WithContext(events.ContextMaxHealth, maximum))
	}
	if died {
		h.emit(events.NewGameEvent(events.EntityDied).WithEntity(h.entityID))
	}
}

// Heal restores hit points, scaled by 1 + HealthPotionEffectiveness when
// that stat is positive, and capped at the maximum. It returns the amount
// restored.
func (h *Health) Heal(amount float64) float64 {
	if effectiveness := h.registry.MustGetFinal(stats.StatHealthPotionEffectiveness); effectiveness > 0 {
		amount *= 1 + effectiveness
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.dead {
		return 0
	}
	change := clamp(amount, 0, h.max-h.current)
	h.current += change
	return change
}

func (h *Health) handleStatChanged(kind stats.StatKind, final float64) {
	if kind != stats.StatMaxHealth {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.max = final
	if h.current > h.max {
		h.current = h.max
	}
}

func (h *Health) emit(event *events.GameEvent) {
	if h.emitter == nil {
		return
	}
	if err := h.emitter.Emit(event); err != nil {
		log.Printf("Health: failed to emit %s for %s: %v", event.Type, h.entityID, err)
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
