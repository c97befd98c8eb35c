package simulation_test

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/horde-survivor/internal/abilities"
	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/KirkDiggler/horde-survivor/internal/events"
	"github.com/KirkDiggler/horde-survivor/internal/gamedata"
	mockpublisher "github.com/KirkDiggler/horde-survivor/internal/publisher/mock"
	"github.com/KirkDiggler/horde-survivor/internal/simulation"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SimulationSuite struct {
	suite.Suite
	ctx context.Context
}

func TestSimulationSuite(t *testing.T) {
	suite.Run(t, new(SimulationSuite))
}

func (s *SimulationSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *SimulationSuite) run(cfg *simulation.Config) *simulation.Result {
	if cfg.Tick == 0 {
		cfg.Tick = 50 * time.Millisecond
	}
	sim, err := simulation.New(cfg)
	s.Require().NoError(err)

	result, err := sim.Run(s.ctx)
	s.Require().NoError(err)
	return result
}

func (s *SimulationSuite) TestSameSeedSameResult() {
	first := s.run(&simulation.Config{RunID: "r", Seed: 7, Duration: 90 * time.Second})
	second := s.run(&simulation.Config{RunID: "r", Seed: 7, Duration: 90 * time.Second})

	s.Equal(first, second)
	s.Positive(first.ProjectilesFired)
	s.NotEmpty(first.Spawned)
}

func (s *SimulationSuite) TestLevelsUpFromKills() {
	data := gamedata.Default()
	data.Experience.XPPerLevel = 1

	result := s.run(&simulation.Config{RunID: "lvl", Seed: 3, Duration: 120 * time.Second, Data: data})

	s.Positive(result.Kills)
	s.Greater(result.Level, 1)
	s.NotEmpty(result.AbilitiesTaken)
	s.LessOrEqual(len(result.AbilitiesTaken), result.Level-1)
	s.Equal(float64(result.Level), result.FinalStats["level"])
}

func (s *SimulationSuite) TestHelplessHeroDies() {
	data := gamedata.Default()
	data.Hero.Stats["damage"] = 0
	data.Hero.Stats["movement_speed"] = 0
	data.Hero.PotionEvery = 0

	result := s.run(&simulation.Config{RunID: "dead", Seed: 1, Duration: 60 * time.Second, Data: data})

	s.True(result.HeroDied)
	s.Less(result.SurvivedFor, 60*time.Second)
	s.Zero(result.Kills)
	s.Equal(1, result.Level)
}

func (s *SimulationSuite) TestOrbitGrantedOnLevelUp() {
	data := gamedata.Default()
	data.Experience.XPPerLevel = 1
	data.Abilities = []gamedata.AbilityData{{
		Kind:       string(abilities.OrbitingProjectiles),
		Name:       "Guardian Orbs",
		MaxStacks:  1,
		SideEffect: string(abilities.SideEffectGrantOrbitingSystem),
	}}

	result := s.run(&simulation.Config{RunID: "orb", Seed: 5, Duration: 120 * time.Second, Data: data})

	s.Equal([]string{string(abilities.OrbitingProjectiles)}, result.AbilitiesTaken)
	s.Equal(3.0, result.FinalStats["orbiting_projectile_count"])
}

func (s *SimulationSuite) TestCancelledRunReturnsPartialResult() {
	sim, err := simulation.New(&simulation.Config{Seed: 1, Duration: time.Minute, Tick: 50 * time.Millisecond})
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	result, err := sim.Run(ctx)
	s.ErrorIs(err, context.Canceled)
	s.Require().NotNil(result)
	s.Zero(result.SurvivedFor)
	s.NotEmpty(result.RunID)
}

func (s *SimulationSuite) TestPublishesEveryEvent() {
	ctrl := gomock.NewController(s.T())
	pub := mockpublisher.NewMockPublisher(ctrl)

	var seen []events.EventType
	pub.EXPECT().Publish(gomock.Any(), "pub", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, e *events.GameEvent) error {
			seen = append(seen, e.Type)
			return nil
		}).AnyTimes()

	result := s.run(&simulation.Config{RunID: "pub", Seed: 2, Duration: 10 * time.Second, Publisher: pub})

	s.Require().NotEmpty(seen)
	s.Equal(events.RunStarted, seen[0])
	s.Equal(events.RunEnded, seen[len(seen)-1])
	s.Contains(seen, events.EnemySpawned)
	s.Equal(10*time.Second, result.SurvivedFor)
}

func (s *SimulationSuite) TestNewValidatesConfig() {
	_, err := simulation.New(nil)
	s.True(gameerr.IsUnresolvedDependency(err))

	_, err = simulation.New(&simulation.Config{Duration: time.Second})
	s.True(gameerr.IsInvalidArgument(err))

	bad := gamedata.Default()
	bad.Hero.Stats["max_health"] = 0
	_, err = simulation.New(&simulation.Config{Duration: time.Second, Tick: time.Millisecond, Data: bad})
	s.True(gameerr.IsValidation(err))
}
