package stats

import (
	"sync"

	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
)

// Listener receives the recomputed final value of a stat after it changes.
type Listener func(kind StatKind, final float64)

type listenerEntry struct {
	id int
	fn Listener
}

// Registry holds one entity's base stats and active modifiers.
//
// Final values are computed on demand:
//
//	final = Set ? lastSet : (base + ΣAdd) × ΠMultiply
//
// When several Set modifiers target the same stat the most recently added
// one wins. Listeners run synchronously after every successful mutation, in
// registration order, outside the registry lock so they may read it back.
type Registry struct {
	base      [statKindCount]float64
	modifiers []Modifier
	listeners []listenerEntry
	nextID    int
	mu        sync.RWMutex
}

// NewRegistry creates a registry with every stat seeded to 0
func NewRegistry() *Registry {
	return &Registry{
		modifiers: make([]Modifier, 0),
	}
}

// SetBase overwrites the base value of kind and notifies listeners with the
// new final value.
func (r *Registry) SetBase(kind StatKind, value float64) error {
	if !kind.Valid() {
		return gameerr.InvalidStatKind(kind)
	}

	r.mu.Lock()
	r.base[kind] = value
	final := r.finalLocked(kind)
	r.mu.Unlock()

	r.notify(kind, final)
	return nil
}

// GetBase returns the unmodified base value
func (r *Registry) GetBase(kind StatKind) (float64, error) {
	if !kind.Valid() {
		return 0, gameerr.InvalidStatKind(kind)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.base[kind], nil
}

// GetFinal returns the base value with all modifiers applied
func (r *Registry) GetFinal(kind StatKind) (float64, error) {
	if !kind.Valid() {
		return 0, gameerr.InvalidStatKind(kind)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.finalLocked(kind), nil
}

// MustGetFinal is GetFinal for callers holding a compile-time stat kind.
// It panics on the sentinel kind.
func (r *Registry) MustGetFinal(kind StatKind) float64 {
	v, err := r.GetFinal(kind)
	if err != nil {
		panic(err)
	}
	return v
}

// GetModifiersValue returns the net contribution of the active modifiers,
// that is final minus base.
func (r *Registry) GetModifiersValue(kind StatKind) (float64, error) {
	if !kind.Valid() {
		return 0, gameerr.InvalidStatKind(kind)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.finalLocked(kind) - r.base[kind], nil
}

// AddModifier activates mod. Adding a modifier equal to an active one is a
// no-op and does not notify.
func (r *Registry) AddModifier(mod Modifier) error {
	if !mod.Stat.Valid() {
		return gameerr.InvalidStatKind(mod.Stat)
	}

	r.mu.Lock()
	if r.indexLocked(mod) >= 0 {
		r.mu.Unlock()
		return nil
	}
	r.modifiers = append(r.modifiers, mod)
	final := r.finalLocked(mod.Stat)
	r.mu.Unlock()

	r.notify(mod.Stat, final)
	return nil
}

// RemoveModifier deactivates one modifier equal to mod, if present.
func (r *Registry) RemoveModifier(mod Modifier) error {
	if !mod.Stat.Valid() {
		return gameerr.InvalidStatKind(mod.Stat)
	}

	r.mu.Lock()
	idx := r.indexLocked(mod)
	if idx < 0 {
		r.mu.Unlock()
		return nil
	}
	// Keep insertion order; Set tie-breaks depend on it.
	r.modifiers = append(r.modifiers[:idx], r.modifiers[idx+1:]...)
	final := r.finalLocked(mod.Stat)
	r.mu.Unlock()

	r.notify(mod.Stat, final)
	return nil
}

// HasModifier reports whether a modifier equal to mod is active
func (r *Registry) HasModifier(mod Modifier) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.indexLocked(mod) >= 0
}

// Modifiers returns a copy of the active modifiers in insertion order
func (r *Registry) Modifiers() []Modifier {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Modifier, len(r.modifiers))
	copy(out, r.modifiers)
	return out
}

// Snapshot returns the final value of every valid stat
func (r *Registry) Snapshot() map[StatKind]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[StatKind]float64, statKindCount-1)
	for k := StatUnknown + 1; k < statKindCount; k++ {
		out[k] = r.finalLocked(k)
	}
	return out
}

// OnChange registers fn and returns a function that unregisters it.
func (r *Registry) OnChange(fn Listener) (unsubscribe func()) {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.listeners = append(r.listeners, listenerEntry{id: id, fn: fn})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, l := range r.listeners {
			if l.id == id {
				r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

func (r *Registry) notify(kind StatKind, final float64) {
	r.mu.RLock()
	listeners := make([]listenerEntry, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.RUnlock()

	for _, l := range listeners {
		l.fn(kind, final)
	}
}

func (r *Registry) indexLocked(mod Modifier) int {
	for i, m := range r.modifiers {
		if m.Equal(mod) {
			return i
		}
	}
	return -1
}

func (r *Registry) finalLocked(kind StatKind) float64 {
	add := 0.0
	mul := 1.0
	set, hasSet := 0.0, false

	for _, m := range r.modifiers {
		if m.Stat != kind {
			continue
		}
		switch m.Mode {
		case ModeAdd:
			add += m.Value
		case ModeMultiply:
			mul *= m.Value
		case ModeSet:
			set, hasSet = m.Value, true
		}
	}

	if hasSet {
		return set
	}
	return (r.base[kind] + add) * mul
}
