// Package orbit runs the projectiles that circle their owner once the
// orbiting ability is granted.
package orbit

import (
	"math"
	"time"

	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/KirkDiggler/horde-survivor/internal/geom"
	"github.com/KirkDiggler/horde-survivor/internal/projectiles"
	"github.com/KirkDiggler/horde-survivor/internal/schedule"
	"github.com/KirkDiggler/horde-survivor/internal/stats"
)

// DefaultCount is used when the owner's OrbitingProjectileCount is not set
const DefaultCount = 3

// Settings tune the orbit
type Settings struct {
	Radius           float64
	DegreesPerSecond float64
	RespawnDelay     time.Duration
	HitRadius        float64
}

// DefaultSettings returns the shipped orbit tuning
func DefaultSettings() Settings {
	return Settings{
		Radius:           2,
		DegreesPerSecond: 90,
		RespawnDelay:     3 * time.Second,
		HitRadius:        0.75,
	}
}

// Config holds configuration for an orbit system
type Config struct {
	Owner     *stats.Registry
	Team      projectiles.Team
	Scheduler *schedule.Scheduler
	Settings  Settings
}

// Slot is one orbiting projectile position
type Slot struct {
	Index    int
	Position geom.Vec2
}

type slot struct {
	active  bool
	respawn *schedule.Timer
}

// System owns a fixed ring of slots spaced evenly around the owner
type System struct {
	owner     *stats.Registry
	team      projectiles.Team
	scheduler *schedule.Scheduler
	settings  Settings
	angle     float64
	enabled   bool
	slots     []slot
}

func NewSystem(cfg *Config) (*System, error) {
	if cfg == nil || cfg.Owner == nil {
		return nil, gameerr.UnresolvedDependency("owner stats")
	}
	if cfg.Scheduler == nil {
		return nil, gameerr.UnresolvedDependency("scheduler")
	}

	settings := cfg.Settings
	if settings == (Settings{}) {
		settings = DefaultSettings()
	}

	count := int(cfg.Owner.MustGetFinal(stats.StatOrbitingProjectileCount))
	if count <= 0 {
		count = DefaultCount
	}

	sys := &System{
		owner:     cfg.Owner,
		team:      cfg.Team,
		scheduler: cfg.Scheduler,
		settings:  settings,
		enabled:   true,
		slots:     make([]slot, count),
	}
	for i := range sys.slots {
		sys.slots[i].active = true
	}
	return sys, nil
}

// Count is the number of slots, active or not
func (s *System) Count() int {
	return len(s.slots)
}

// Angle is the current rotation of slot 0 in degrees, in [0,360)
func (s *System) Angle() float64 {
	return s.angle
}

// Update rotates the ring by DegreesPerSecond × dt
func (s *System) Update(dt time.Duration) {
	if !s.enabled || dt <= 0 {
		return
	}
	s.angle = math.Mod(s.angle+s.settings.DegreesPerSecond*dt.Seconds(), 360)
}

// Active reports whether slot i is currently out
func (s *System) Active(i int) bool {
	return s.enabled && i >= 0 && i < len(s.slots) && s.slots[i].active
}

// Positions returns the world position of every active slot around center
func (s *System) Positions(center geom.Vec2) []Slot {
	spacing := 360 / float64(len(s.slots))
	out := make([]Slot, 0, len(s.slots))
	for i := range s.slots {
		if !s.Active(i) {
			continue
		}
		offset := geom.Polar(s.angle+float64(i)*spacing, s.settings.Radius)
		out = append(out, Slot{Index: i, Position: center.Add(offset)})
	}
	return out
}

// Hit resolves slot i touching target. Hostile damageable targets take the
// owner's Damage; the slot then hides until its respawn delay passes. It
// returns false when nothing happened.
func (s *System) Hit(i int, target projectiles.Entity) bool {
	if !s.Active(i) || target == nil {
		return false
	}
	member, ok := target.(projectiles.TeamMember)
	if !ok || !s.team.Hostile(member.Team()) {
		return false
	}

	if d, ok := target.(projectiles.Damageable); ok {
		d.ApplyDamage(s.owner.MustGetFinal(stats.StatDamage))
	}

	s.slots[i].active = false
	s.slots[i].respawn = s.scheduler.After(s.settings.RespawnDelay, func() {
		s.slots[i].active = true
		s.slots[i].respawn = nil
	})
	return true
}

// Collide checks every active slot against candidates and hits the first
// one inside HitRadius. It returns the number of hits.
func (s *System) Collide(center geom.Vec2, candidates []projectiles.Entity) int {
	hits := 0
	for _, sl := range s.Positions(center) {
		for _, c := range candidates {
			if c == nil || c.Position().Dist(sl.Position) > s.settings.HitRadius {
				continue
			}
			if s.Hit(sl.Index, c) {
				hits++
				break
			}
		}
	}
	return hits
}

// SetEnabled shows or hides the whole ring. Re-enabling restores every
// slot and drops pending respawns.
func (s *System) SetEnabled(enabled bool) {
	s.enabled = enabled
	if !enabled {
		return
	}
	for i := range s.slots {
		s.scheduler.Cancel(s.slots[i].respawn)
		s.slots[i] = slot{active: true}
	}
}
