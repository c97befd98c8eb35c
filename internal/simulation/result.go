package simulation

import (
	"time"
)

// Result summarizes one finished run
type Result struct {
	RunID            string             `json:"run_id"`
	Seed             int64              `json:"seed"`
	SurvivedFor      time.Duration      `json:"survived_for"`
	HeroDied         bool               `json:"hero_died"`
	Level            int                `json:"level"`
	Kills            int                `json:"kills"`
	KillsByArchetype map[string]int     `json:"kills_by_archetype"`
	Spawned          map[string]int     `json:"spawned"`
	ProjectilesFired int                `json:"projectiles_fired"`
	OrbitHits        int                `json:"orbit_hits"`
	PotionsUsed      int                `json:"potions_used"`
	AbilitiesTaken   []string           `json:"abilities_taken"`
	FinalStats       map[string]float64 `json:"final_stats"`
}
