package events

// Context keys for event data
const (
	// Run
	ContextRunID   = "run_id"   // string: run identifier
	ContextSeed    = "seed"     // int64: run seed
	ContextElapsed = "elapsed"  // float64: seconds since run start
	ContextKills   = "kills"    // int: enemies killed so far
	ContextReason  = "reason"   // string: why the run ended

	// Progression
	ContextLevel       = "level"       // int: new level
	ContextCurrentXP   = "current_xp"  // float64: xp toward next level
	ContextRequiredXP  = "required_xp" // float64: xp needed for next level
	ContextAbility     = "ability"     // string: ability kind
	ContextStacks      = "stacks"      // int: stack count after apply
	ContextSideEffect  = "side_effect" // string: side effect tag

	// Combat
	ContextArchetype    = "archetype"     // string: enemy archetype
	ContextHealth       = "health"        // float64: health after the change
	ContextMaxHealth    = "max_health"    // float64
	ContextDamage       = "damage"        // float64: damage dealt
	ContextSourceID     = "source_id"     // string: projectile or orbit that dealt damage
	ContextProjectileID = "projectile_id" // string
	ContextOutcome      = "outcome"       // string: spent or expired
	ContextHits         = "hits"          // int: distinct entities a projectile struck
)
