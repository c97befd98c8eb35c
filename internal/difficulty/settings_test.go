package difficulty_test

import (
	"testing"
	"time"

	"github.com/KirkDiggler/horde-survivor/internal/difficulty"
	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestDefaultSettingsValid(t *testing.T) {
	assert.NoError(t, difficulty.DefaultSettings().Validate())
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*difficulty.Settings)
	}{
		{"no stages", func(s *difficulty.Settings) { s.Stages = nil }},
		{"zero interval", func(s *difficulty.Settings) { s.SpawnInterval = 0 }},
		{"zero floor", func(s *difficulty.Settings) { s.MinSpawnInterval = 0 }},
		{"floor above interval", func(s *difficulty.Settings) { s.MinSpawnInterval = time.Minute }},
		{"growing interval", func(s *difficulty.Settings) { s.SpawnIntervalReductionRate = 1.2 }},
		{"negative cooldown", func(s *difficulty.Settings) { s.BossRespawnCooldown = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := difficulty.DefaultSettings()
			tt.mutate(&s)
			assert.True(t, gameerr.IsValidation(s.Validate()))
		})
	}
}

func TestNextInterval(t *testing.T) {
	s := difficulty.DefaultSettings()

	assert.Equal(t, 2850*time.Millisecond, s.NextInterval(3*time.Second))
	assert.Equal(t, s.MinSpawnInterval, s.NextInterval(510*time.Millisecond))

	s.SpawnIntervalReductionRate = 0
	assert.Equal(t, 3*time.Second, s.NextInterval(3*time.Second))
}

func TestNextIntervalNeverReachesZero(t *testing.T) {
	s := difficulty.DefaultSettings()
	s.MinSpawnInterval = 0
	s.SpawnIntervalReductionRate = 0.4

	interval := s.SpawnInterval
	for i := 0; i < 60; i++ {
		interval = s.NextInterval(interval)
	}
	assert.Equal(t, time.Nanosecond, interval)
	assert.Equal(t, time.Nanosecond, s.NextInterval(0))
}
