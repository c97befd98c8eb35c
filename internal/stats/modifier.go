package stats

import (
	"fmt"
	"math"

	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
)

// ModifierMode selects how a modifier combines with the base value.
type ModifierMode uint8

const (
	ModeAdd ModifierMode = iota
	ModeMultiply
	ModeSet
)

func (m ModifierMode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeMultiply:
		return "multiply"
	case ModeSet:
		return "set"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseModifierMode is the inverse of String.
func ParseModifierMode(name string) (ModifierMode, error) {
	switch name {
	case "add":
		return ModeAdd, nil
	case "multiply":
		return ModeMultiply, nil
	case "set":
		return ModeSet, nil
	}
	return 0, gameerr.InvalidArgumentf("unknown modifier mode %q", name).WithMeta("mode", name)
}

const valueEpsilon = 1e-6

// Modifier is an immutable adjustment layered on top of a base stat.
// Source names the owner of the modifier; two owners granting the same
// value keep separate entries in a registry.
type Modifier struct {
	Stat   StatKind
	Value  float64
	Mode   ModifierMode
	Source string
}

// NewModifier is a convenience constructor.
func NewModifier(stat StatKind, value float64, mode ModifierMode) Modifier {
	return Modifier{Stat: stat, Value: value, Mode: mode}
}

// Add, Multiply and Set build modifiers of the matching mode.
func Add(stat StatKind, value float64) Modifier      { return NewModifier(stat, value, ModeAdd) }
func Multiply(stat StatKind, value float64) Modifier { return NewModifier(stat, value, ModeMultiply) }
func Set(stat StatKind, value float64) Modifier      { return NewModifier(stat, value, ModeSet) }

// WithSource returns a copy of m owned by source
func (m Modifier) WithSource(source string) Modifier {
	m.Source = source
	return m
}

// Equal compares source, target, mode and value (within a small epsilon).
func (m Modifier) Equal(other Modifier) bool {
	return m.Source == other.Source &&
		m.Stat == other.Stat &&
		m.Mode == other.Mode &&
		math.Abs(m.Value-other.Value) <= valueEpsilon
}

func (m Modifier) String() string {
	if m.Source == "" {
		return fmt.Sprintf("%s %s %g", m.Stat, m.Mode, m.Value)
	}
	return fmt.Sprintf("%s %s %g (%s)", m.Stat, m.Mode, m.Value, m.Source)
}
