package projectiles

import (
	"github.com/KirkDiggler/horde-survivor/internal/geom"
)

//go:generate mockgen -destination=mock/mock_target_finder.go -package=mockprojectiles -source=interfaces.go TargetFinder

// Team separates friend from foe
type Team uint8

const (
	TeamUnknown Team = iota
	TeamHero
	TeamEnemy
)

func (t Team) String() string {
	switch t {
	case TeamHero:
		return "hero"
	case TeamEnemy:
		return "enemy"
	}
	return "unknown"
}

// Hostile reports whether other is a valid target for a projectile of team t
func (t Team) Hostile(other Team) bool {
	return t != TeamUnknown && other != TeamUnknown && t != other
}

// Entity is anything a projectile can overlap with
type Entity interface {
	ID() string
	Position() geom.Vec2
}

// TeamMember is implemented by entities that belong to a team
type TeamMember interface {
	Team() Team
}

// Damageable is implemented by entities with health
type Damageable interface {
	ApplyDamage(amount float64)
}

// TargetFinder answers spatial queries for bounce targets
type TargetFinder interface {
	// Within returns entities whose position is within radius of center
	Within(center geom.Vec2, radius float64) []Entity
}
