package abilities

import (
	"math"

	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/KirkDiggler/horde-survivor/internal/stats"
)

// Kind identifies an ability. New abilities are new table rows, so Kind is
// an open string rather than a closed enum.
type Kind string

const (
	HealthPotionsBoost  Kind = "health_potions_boost"
	PiercingProjectiles Kind = "piercing_projectiles"
	BouncingProjectiles Kind = "bouncing_projectiles"
	OrbitingProjectiles Kind = "orbiting_projectiles"
	AgilityUp           Kind = "agility_up"
	HealthUp            Kind = "health_up"
	DamageUp            Kind = "damage_up"
)

// SideEffect tags a structural change the host world must perform.
type SideEffect string

const (
	SideEffectNone                SideEffect = ""
	SideEffectGrantOrbitingSystem SideEffect = "grant_orbiting_system"
)

// Effect is what one stack of an ability grants: a modifier template, a
// side effect, or nothing.
type Effect struct {
	Modifier   *stats.Modifier
	SideEffect SideEffect
}

// instance returns the modifier that represents stacks applications of the
// template. Add scales linearly, Multiply compounds, Set stays fixed. The
// instance is sourced to the ability so equal templates never collide.
func (e Effect) instance(kind Kind, stacks int) (stats.Modifier, bool) {
	if e.Modifier == nil || stacks <= 0 {
		return stats.Modifier{}, false
	}

	m := e.Modifier.WithSource(ModifierSource(kind))
	switch m.Mode {
	case stats.ModeAdd:
		m.Value *= float64(stacks)
	case stats.ModeMultiply:
		m.Value = math.Pow(m.Value, float64(stacks))
	}
	return m, true
}

// ModifierSource is the Source carried by modifiers granted by kind
func ModifierSource(kind Kind) string {
	return "ability:" + string(kind)
}

// Definition describes one ability row
type Definition struct {
	Kind        Kind
	Name        string
	Description string
	Stackable   bool
	MaxStacks   int
	Effect      Effect
}

// Validate checks a definition before it enters a Database
func (d Definition) Validate() error {
	if d.Kind == "" {
		return gameerr.Validation("ability kind is required")
	}
	if d.MaxStacks < 1 {
		return gameerr.Validationf("ability %s: max stacks must be at least 1, got %d", d.Kind, d.MaxStacks).
			WithMeta("ability", string(d.Kind))
	}
	if d.Effect.Modifier != nil && d.Effect.SideEffect != SideEffectNone {
		return gameerr.Validationf("ability %s: effect cannot have both a modifier and a side effect", d.Kind).
			WithMeta("ability", string(d.Kind))
	}
	if d.Effect.Modifier != nil && !d.Effect.Modifier.Stat.Valid() {
		return gameerr.WrapWithCode(gameerr.InvalidStatKind(d.Effect.Modifier.Stat), gameerr.CodeValidation,
			"ability "+string(d.Kind))
	}
	return nil
}

// Database is the ability table keyed by Kind. It keeps declaration order
// so offers are reproducible for a given seed.
type Database struct {
	defs  map[Kind]Definition
	order []Kind
}

// NewDatabase validates defs and rejects duplicate kinds
func NewDatabase(defs ...Definition) (*Database, error) {
	db := &Database{defs: make(map[Kind]Definition, len(defs))}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, exists := db.defs[d.Kind]; exists {
			return nil, gameerr.AlreadyExistsf("ability %s defined twice", d.Kind).WithMeta("ability", string(d.Kind))
		}
		db.defs[d.Kind] = d
		db.order = append(db.order, d.Kind)
	}
	return db, nil
}

// Get looks up a definition
func (db *Database) Get(kind Kind) (Definition, bool) {
	d, ok := db.defs[kind]
	return d, ok
}

// All returns every definition in declaration order
func (db *Database) All() []Definition {
	out := make([]Definition, 0, len(db.order))
	for _, k := range db.order {
		out = append(out, db.defs[k])
	}
	return out
}

func (db *Database) Len() int {
	return len(db.order)
}

func modifier(m stats.Modifier) *stats.Modifier {
	return &m
}

// DefaultDefinitions is the shipped ability table
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Kind:        HealthUp,
			Name:        "Vitality",
			Description: "+25 max health",
			Stackable:   true,
			MaxStacks:   5,
			Effect:      Effect{Modifier: modifier(stats.Add(stats.StatMaxHealth, 25))},
		},
		{
			Kind:        DamageUp,
			Name:        "Sharpened Rounds",
			Description: "+10 damage",
			Stackable:   true,
			MaxStacks:   5,
			Effect:      Effect{Modifier: modifier(stats.Add(stats.StatDamage, 10))},
		},
		{
			Kind:        AgilityUp,
			Name:        "Quick Hands",
			Description: "+30 gun rotation speed",
			Stackable:   true,
			MaxStacks:   3,
			Effect:      Effect{Modifier: modifier(stats.Add(stats.StatRotationSpeed, 30))},
		},
		{
			Kind:        PiercingProjectiles,
			Name:        "Piercing Shot",
			Description: "Projectiles pass through one more enemy",
			Stackable:   true,
			MaxStacks:   3,
			Effect:      Effect{Modifier: modifier(stats.Add(stats.StatPiercing, 1))},
		},
		{
			Kind:        BouncingProjectiles,
			Name:        "Ricochet",
			Description: "Projectiles bounce to a nearby enemy",
			Stackable:   true,
			MaxStacks:   2,
			Effect:      Effect{Modifier: modifier(stats.Add(stats.StatBounces, 1))},
		},
		{
			Kind:        HealthPotionsBoost,
			Name:        "Potent Brew",
			Description: "Health potions heal 50% more",
			Stackable:   true,
			MaxStacks:   3,
			Effect:      Effect{Modifier: modifier(stats.Add(stats.StatHealthPotionEffectiveness, 0.5))},
		},
		{
			Kind:        OrbitingProjectiles,
			Name:        "Guardian Orbs",
			Description: "Projectiles circle the hero",
			Stackable:   false,
			MaxStacks:   1,
			Effect:      Effect{SideEffect: SideEffectGrantOrbitingSystem},
		},
	}
}

// DefaultDatabase returns the shipped table. It panics only if the shipped
// table itself is invalid.
func DefaultDatabase() *Database {
	db, err := NewDatabase(DefaultDefinitions()...)
	if err != nil {
		panic(err)
	}
	return db
}
