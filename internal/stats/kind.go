package stats

import (
	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
)

// StatKind identifies a combat-relevant numeric attribute.
type StatKind uint8

const (
	StatUnknown StatKind = iota
	StatMaxHealth
	StatMovementSpeed
	StatDamage
	StatVisionRange
	StatRotationSpeed
	StatProjectileSpeed
	StatShootCooldown
	StatCurrentXP
	StatRequiredXP
	StatLevel
	StatHealthPotionEffectiveness
	StatPiercing
	StatBounces
	StatOrbitingProjectileCount

	statKindCount
)

var statNames = [statKindCount]string{
	StatUnknown:                   "unknown",
	StatMaxHealth:                 "max_health",
	StatMovementSpeed:             "movement_speed",
	StatDamage:                    "damage",
	StatVisionRange:               "vision_range",
	StatRotationSpeed:             "rotation_speed",
	StatProjectileSpeed:           "projectile_speed",
	StatShootCooldown:             "shoot_cooldown",
	StatCurrentXP:                 "current_xp",
	StatRequiredXP:                "required_xp",
	StatLevel:                     "level",
	StatHealthPotionEffectiveness: "health_potion_effectiveness",
	StatPiercing:                  "piercing",
	StatBounces:                   "bounces",
	StatOrbitingProjectileCount:   "orbiting_projectile_count",
}

// Valid reports whether k can be used as a registry key.
func (k StatKind) Valid() bool {
	return k > StatUnknown && k < statKindCount
}

func (k StatKind) String() string {
	if k >= statKindCount {
		return "unknown"
	}
	return statNames[k]
}

// ParseStatKind maps a snake_case name (as used in game data) to a StatKind.
func ParseStatKind(name string) (StatKind, error) {
	for k := StatUnknown + 1; k < statKindCount; k++ {
		if statNames[k] == name {
			return k, nil
		}
	}
	return StatUnknown, gameerr.InvalidStatKind(name)
}

// AllStatKinds returns every valid kind in declaration order.
func AllStatKinds() []StatKind {
	kinds := make([]StatKind, 0, statKindCount-1)
	for k := StatUnknown + 1; k < statKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
