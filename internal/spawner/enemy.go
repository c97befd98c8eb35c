package spawner

import (
	"github.com/KirkDiggler/horde-survivor/internal/difficulty"
	"github.com/KirkDiggler/horde-survivor/internal/geom"
	"github.com/KirkDiggler/horde-survivor/internal/health"
	"github.com/KirkDiggler/horde-survivor/internal/projectiles"
	"github.com/KirkDiggler/horde-survivor/internal/stats"
)

// EnemyConfig is the unscaled template for one archetype
type EnemyConfig struct {
	Health        float64
	Damage        float64
	MovementSpeed float64
	XPReward      float64
	Radius        float64
}

// DefaultEnemyConfigs is the shipped enemy table
func DefaultEnemyConfigs() map[difficulty.Archetype]EnemyConfig {
	return map[difficulty.Archetype]EnemyConfig{
		difficulty.Walker:         {Health: 20, Damage: 5, MovementSpeed: 1.5, XPReward: 2, Radius: 0.5},
		difficulty.Skeleton:       {Health: 30, Damage: 8, MovementSpeed: 2, XPReward: 3, Radius: 0.5},
		difficulty.SkeletonWalker: {Health: 25, Damage: 6, MovementSpeed: 2.5, XPReward: 3, Radius: 0.5},
		difficulty.Boss:           {Health: 200, Damage: 20, MovementSpeed: 1.2, XPReward: 25, Radius: 1.5},
	}
}

// Enemy is a spawned hostile. It satisfies the projectile collision
// interfaces so shots can resolve hits against it directly.
type Enemy struct {
	id        string
	archetype difficulty.Archetype
	registry  *stats.Registry
	health    *health.Health
	position  geom.Vec2
	xpReward  float64
	radius    float64
}

func (e *Enemy) ID() string                      { return e.id }
func (e *Enemy) Archetype() difficulty.Archetype { return e.archetype }
func (e *Enemy) Stats() *stats.Registry          { return e.registry }
func (e *Enemy) Health() *health.Health          { return e.health }
func (e *Enemy) Position() geom.Vec2             { return e.position }
func (e *Enemy) Team() projectiles.Team          { return projectiles.TeamEnemy }
func (e *Enemy) XPReward() float64               { return e.xpReward }
func (e *Enemy) Radius() float64                 { return e.radius }
func (e *Enemy) ApplyDamage(amount float64)      { e.health.ApplyDamage(amount) }
func (e *Enemy) IsDead() bool                    { return e.health.IsDead() }

// MoveToward steps the enemy toward target at its MovementSpeed
func (e *Enemy) MoveToward(target geom.Vec2, dtSeconds float64) {
	step := e.registry.MustGetFinal(stats.StatMovementSpeed) * dtSeconds
	delta := target.Sub(e.position)
	if delta.Len() <= step {
		e.position = target
		return
	}
	e.position = e.position.Add(delta.Normalize().Scale(step))
}

// Place sets the enemy position
func (e *Enemy) Place(p geom.Vec2) {
	e.position = p
}
