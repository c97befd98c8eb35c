package config

import (
	"os"
	"strconv"
	"time"

	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
)

// Config holds all configuration for the application
type Config struct {
	Simulation SimulationConfig
	GameData   GameDataConfig
	Redis      RedisConfig
}

// SimulationConfig controls how many runs execute and how they are stepped
type SimulationConfig struct {
	Runs        int
	Duration    time.Duration
	Tick        time.Duration
	Seed        int64
	Parallelism int
}

// GameDataConfig points at the YAML tuning file. Empty means built-in data.
type GameDataConfig struct {
	File string
}

// RedisConfig holds Redis-specific configuration. Publishing is disabled
// when URL is empty.
type RedisConfig struct {
	URL           string
	ChannelPrefix string
}

// Enabled reports whether events should be published
func (r RedisConfig) Enabled() bool {
	return r.URL != ""
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Simulation: SimulationConfig{
			Runs:        getEnvAsIntOrDefault("SIM_RUNS", 4),
			Duration:    time.Duration(getEnvAsIntOrDefault("SIM_DURATION", 300)) * time.Second,
			Tick:        time.Duration(getEnvAsIntOrDefault("SIM_TICK_MS", 50)) * time.Millisecond,
			Seed:        int64(getEnvAsIntOrDefault("SIM_SEED", 1)),
			Parallelism: getEnvAsIntOrDefault("SIM_PARALLELISM", 2),
		},
		GameData: GameDataConfig{
			File: os.Getenv("GAME_DATA_FILE"),
		},
		Redis: RedisConfig{
			URL:           os.Getenv("REDIS_URL"),
			ChannelPrefix: getEnvOrDefault("EVENT_CHANNEL_PREFIX", "horde"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the simulation bounds
func (c *Config) Validate() error {
	sim := c.Simulation
	if sim.Runs < 1 {
		return gameerr.Validationf("SIM_RUNS must be at least 1, got %d", sim.Runs)
	}
	if sim.Duration <= 0 {
		return gameerr.Validationf("SIM_DURATION must be positive, got %s", sim.Duration)
	}
	if sim.Tick <= 0 {
		return gameerr.Validationf("SIM_TICK_MS must be positive, got %s", sim.Tick)
	}
	if sim.Parallelism < 1 {
		return gameerr.Validationf("SIM_PARALLELISM must be at least 1, got %d", sim.Parallelism)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
