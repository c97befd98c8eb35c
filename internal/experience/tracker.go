// Package experience turns collected XP into hero levels.
package experience

import (
	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/KirkDiggler/horde-survivor/internal/events"
	"github.com/KirkDiggler/horde-survivor/internal/stats"
)

// DefaultXPPerLevel is the XP needed for every level
const DefaultXPPerLevel = 10

// TrackerConfig holds configuration for the tracker
type TrackerConfig struct {
	EntityID   string
	Registry   *stats.Registry
	Events     events.Emitter
	XPPerLevel float64
}

// Tracker stores level and XP in the hero's stat registry (Level,
// CurrentXP, RequiredXP) so UI listeners see every change.
type Tracker struct {
	entityID   string
	registry   *stats.Registry
	emitter    events.Emitter
	xpPerLevel float64
}

// NewTracker creates a tracker. It does not touch the registry until Setup.
func NewTracker(cfg *TrackerConfig) (*Tracker, error) {
	if cfg == nil || cfg.Registry == nil {
		return nil, gameerr.UnresolvedDependency("stat registry")
	}

	t := &Tracker{
		entityID:   cfg.EntityID,
		registry:   cfg.Registry,
		emitter:    cfg.Events,
		xpPerLevel: cfg.XPPerLevel,
	}
	if t.xpPerLevel <= 0 {
		t.xpPerLevel = DefaultXPPerLevel
	}
	return t, nil
}

// Setup puts the hero at startLevel (at least 1) with no XP
func (t *Tracker) Setup(startLevel int) error {
	if startLevel < 1 {
		startLevel = 1
	}
	if err := t.registry.SetBase(stats.StatLevel, float64(startLevel)); err != nil {
		return err
	}
	if err := t.registry.SetBase(stats.StatRequiredXP, t.xpPerLevel); err != nil {
		return err
	}
	return t.registry.SetBase(stats.StatCurrentXP, 0)
}

func (t *Tracker) Level() int {
	return int(t.registry.MustGetFinal(stats.StatLevel))
}

func (t *Tracker) CurrentXP() float64 {
	return t.registry.MustGetFinal(stats.StatCurrentXP)
}

func (t *Tracker) RequiredXP() float64 {
	return t.xpPerLevel
}

// AddExperience adds amount and processes every level-up it pays for.
// LevelUp is emitted once per level gained, before the final XPChanged.
func (t *Tracker) AddExperience(amount float64) (levelsGained int, err error) {
	if amount < 0 {
		return 0, gameerr.InvalidArgumentf("experience cannot be negative: %g", amount)
	}

	xp := t.CurrentXP() + amount
	for xp >= t.xpPerLevel {
		xp -= t.xpPerLevel
		next := t.Level() + 1
		if err := t.registry.SetBase(stats.StatLevel, float64(next)); err != nil {
			return levelsGained, err
		}
		levelsGained++

		if err := t.emit(events.NewGameEvent(events.LevelUp).
			WithEntity(t.entityID).
			WithContext(events.ContextLevel, next)); err != nil {
			return levelsGained, err
		}
	}

	if err := t.registry.SetBase(stats.StatCurrentXP, xp); err != nil {
		return levelsGained, err
	}
	return levelsGained, t.emitXP(xp)
}

// Reset returns the hero to level 1 with no XP
func (t *Tracker) Reset() error {
	if err := t.Setup(1); err != nil {
		return err
	}
	return t.emitXP(0)
}

func (t *Tracker) emitXP(xp float64) error {
	return t.emit(events.NewGameEvent(events.XPChanged).
		WithEntity(t.entityID).
		WithContext(events.ContextCurrentXP, xp).
		WithContext(events.ContextRequiredXP, t.xpPerLevel))
}

func (t *Tracker) emit(event *events.GameEvent) error {
	if t.emitter == nil {
		return nil
	}
	if err := t.emitter.Emit(event); err != nil {
		return gameerr.Wrapf(err, "failed to emit %s", event.Type)
	}
	return nil
}
