package abilities

import (
	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/KirkDiggler/horde-survivor/internal/rng"
	"github.com/KirkDiggler/horde-survivor/internal/stats"
)

// ApplyResult describes what one Apply call did
type ApplyResult struct {
	Applied bool
	Kind    Kind
	Stacks  int

	// Modifier is the instance now active on the registry, if any
	Modifier *stats.Modifier

	// SideEffect is for the caller to perform; Apply never does it
	SideEffect SideEffect
}

// CanApply reports whether def may be applied once more
func CanApply(def Definition, progress *Progress) bool {
	if progress == nil {
		return false
	}
	stacks := progress.StackCount(def.Kind)
	return stacks < def.MaxStacks && (def.Stackable || stacks == 0)
}

// Apply adds one stack of def. When CanApply is false it returns a result
// with Applied=false and no error.
//
// A modifier template is materialized per stack count: the registry holds a
// single instance for the ability, replaced on every new stack.
func Apply(def Definition, registry *stats.Registry, progress *Progress) (ApplyResult, error) {
	if registry == nil {
		return ApplyResult{}, gameerr.UnresolvedDependency("stat registry")
	}
	if progress == nil {
		return ApplyResult{}, gameerr.UnresolvedDependency("ability progress")
	}

	result := ApplyResult{Kind: def.Kind, Stacks: progress.StackCount(def.Kind)}
	if !CanApply(def, progress) {
		return result, nil
	}

	previous, hadPrevious := def.Effect.instance(def.Kind, result.Stacks)
	next, hasNext := def.Effect.instance(def.Kind, result.Stacks+1)

	if hadPrevious {
		if err := registry.RemoveModifier(previous); err != nil {
			return result, gameerr.Wrapf(err, "removing stack %d of %s", result.Stacks, def.Kind)
		}
	}
	if hasNext {
		if err := registry.AddModifier(next); err != nil {
			return result, gameerr.Wrapf(err, "adding stack %d of %s", result.Stacks+1, def.Kind)
		}
		result.Modifier = &next
	}

	result.Stacks = progress.increment(def.Kind)
	result.Applied = true
	result.SideEffect = def.Effect.SideEffect
	return result, nil
}

// Eligible returns the definitions in db that can still be applied
func Eligible(db *Database, progress *Progress) []Definition {
	var out []Definition
	for _, d := range db.All() {
		if CanApply(d, progress) {
			out = append(out, d)
		}
	}
	return out
}

// Offer picks up to count distinct eligible abilities at random for a
// level-up choice. ok is false when nothing is eligible, in which case the
// prompt should not be shown.
func Offer(db *Database, progress *Progress, count int, roller rng.Roller) (offer []Definition, ok bool) {
	eligible := Eligible(db, progress)
	if len(eligible) == 0 || count <= 0 {
		return nil, false
	}

	order := rng.Shuffle(roller, len(eligible))
	if count > len(eligible) {
		count = len(eligible)
	}

	offer = make([]Definition, 0, count)
	for _, i := range order[:count] {
		offer = append(offer, eligible[i])
	}
	return offer, true
}
