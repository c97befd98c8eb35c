package projectiles

// CombatState is the per-projectile hit bookkeeping
type CombatState struct {
	PiercedCount int
	BounceCount  int
	HasBounced   bool

	hit map[string]struct{}
}

func newCombatState() CombatState {
	return CombatState{hit: make(map[string]struct{})}
}

// HasHit reports whether the entity was already struck by this projectile
func (s *CombatState) HasHit(id string) bool {
	_, ok := s.hit[id]
	return ok
}

func (s *CombatState) markHit(id string) {
	s.hit[id] = struct{}{}
}

// HitCount is the number of distinct entities struck
func (s *CombatState) HitCount() int {
	return len(s.hit)
}
