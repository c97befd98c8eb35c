package projectiles

import "time"

// Outcome is how a collision was resolved
type Outcome uint8

const (
	// OutcomeIgnored means the collision was not a valid hit
	OutcomeIgnored Outcome = iota
	OutcomePierced
	OutcomeBounced
	OutcomeDestroyed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomePierced:
		return "pierced"
	case OutcomeBounced:
		return "bounced"
	case OutcomeDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Tuning holds the fixed projectile constants
type Tuning struct {
	// BounceRadius bounds the search for the next bounce target
	BounceRadius float64

	// Lifetime is the unconditional self-destruct deadline
	Lifetime time.Duration

	// DestroyDelay lets same-tick damage handlers finish before removal
	DestroyDelay time.Duration
}

// DefaultTuning returns the shipped constants
func DefaultTuning() Tuning {
	return Tuning{
		BounceRadius: 5,
		Lifetime:     4 * time.Second,
		DestroyDelay: 50 * time.Millisecond,
	}
}
