package events

// EventType identifies a game event
type EventType int

const (
	// Run lifecycle
	RunStarted EventType = iota
	RunEnded

	// Progression
	XPChanged
	LevelUp
	AbilityApplied
	SideEffectRequested

	// Combat
	EnemySpawned
	EntityDamaged
	EntityDied
	ProjectileFired
	ProjectileDestroyed
)

var eventTypeNames = [...]string{
	"RunStarted",
	"RunEnded",
	"XPChanged",
	"LevelUp",
	"AbilityApplied",
	"SideEffectRequested",
	"EnemySpawned",
	"EntityDamaged",
	"EntityDied",
	"ProjectileFired",
	"ProjectileDestroyed",
}

// String returns the string representation of the event type
func (e EventType) String() string {
	if e < 0 || int(e) >= len(eventTypeNames) {
		return "Unknown"
	}
	return eventTypeNames[e]
}

// MarshalText lets event types serialize by name
func (e EventType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// AllEventTypes lists every event type in declaration order
func AllEventTypes() []EventType {
	all := make([]EventType, len(eventTypeNames))
	for i := range all {
		all[i] = EventType(i)
	}
	return all
}
