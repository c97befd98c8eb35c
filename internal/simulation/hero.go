package simulation

import (
	"github.com/KirkDiggler/horde-survivor/internal/geom"
	"github.com/KirkDiggler/horde-survivor/internal/health"
	"github.com/KirkDiggler/horde-survivor/internal/projectiles"
	"github.com/KirkDiggler/horde-survivor/internal/stats"
)

// HeroID is the entity ID of the player character in every run
const HeroID = "hero"

const (
	heroRadius       = 0.5
	projectileRadius = 0.2
	kiteDistance     = 3.0
)

type hero struct {
	registry *stats.Registry
	health   *health.Health
	position geom.Vec2
}

func (h *hero) ID() string                 { return HeroID }
func (h *hero) Position() geom.Vec2        { return h.position }
func (h *hero) Team() projectiles.Team     { return projectiles.TeamHero }
func (h *hero) ApplyDamage(amount float64) { h.health.ApplyDamage(amount) }
