package runs_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mockclock "github.com/KirkDiggler/horde-survivor/internal/clock/mock"
	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/KirkDiggler/horde-survivor/internal/repositories/runs"
	"github.com/KirkDiggler/horde-survivor/internal/simulation"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mockClient   *redis.Client
	mock         redismock.ClientMock
	mockCtrl     *gomock.Controller
	timeProvider *mockclock.MockTimeProvider
	repo         runs.Repository
	now          time.Time
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.mockClient, s.mock = redismock.NewClientMock()
	s.mockCtrl = gomock.NewController(s.T())
	s.timeProvider = mockclock.NewMockTimeProvider(s.mockCtrl)
	s.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.repo = runs.NewRedisRepository(&runs.RedisRepoConfig{
		Client:       s.mockClient,
		TimeProvider: s.timeProvider,
		TTL:          time.Hour,
	})
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.NoError(s.mock.ExpectationsWereMet())
}

func sampleResult(id string) *simulation.Result {
	return &simulation.Result{
		RunID:            id,
		Seed:             7,
		SurvivedFor:      90 * time.Second,
		Level:            4,
		Kills:            31,
		KillsByArchetype: map[string]int{"walker": 20, "skeleton": 11},
		AbilitiesTaken:   []string{"damage_up", "piercing"},
		FinalStats:       map[string]float64{"damage": 14},
	}
}

func (s *RedisRepoTestSuite) marshal(result *simulation.Result) string {
	data, err := json.Marshal(result)
	s.Require().NoError(err)
	return string(data)
}

func (s *RedisRepoTestSuite) TestSave() {
	ctx := context.Background()
	result := sampleResult("run-1")
	data := s.marshal(result)

	// Happy path
	s.timeProvider.EXPECT().Now().Return(s.now)
	s.mock.ExpectSet("run:run-1", data, time.Hour).SetVal("OK")
	s.mock.ExpectZAdd("runs:recent", redis.Z{Score: float64(s.now.UnixNano()), Member: "run-1"}).SetVal(1)

	s.NoError(s.repo.Save(ctx, result))

	// Dependency error
	s.timeProvider.EXPECT().Now().Return(s.now)
	s.mock.ExpectSet("run:run-1", data, time.Hour).SetErr(errors.New("redis error"))

	err := s.repo.Save(ctx, result)
	s.Error(err)
	s.True(gameerr.IsInternal(err))

	// Input validation
	s.True(gameerr.IsInvalidArgument(s.repo.Save(ctx, nil)))
	s.True(gameerr.IsInvalidArgument(s.repo.Save(ctx, &simulation.Result{})))
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	result := sampleResult("run-1")

	// Happy path
	s.mock.ExpectGet("run:run-1").SetVal(s.marshal(result))

	got, err := s.repo.Get(ctx, "run-1")
	s.Require().NoError(err)
	s.Equal(result, got)

	// Not found
	s.mock.ExpectGet("run:missing").RedisNil()

	_, err = s.repo.Get(ctx, "missing")
	s.True(gameerr.IsNotFound(err))

	// Dependency error
	s.mock.ExpectGet("run:run-1").SetErr(errors.New("redis error"))

	_, err = s.repo.Get(ctx, "run-1")
	s.True(gameerr.IsInternal(err))
}

func (s *RedisRepoTestSuite) TestListRecent() {
	ctx := context.Background()
	first := sampleResult("run-1")
	second := sampleResult("run-2")

	s.mock.MatchExpectationsInOrder(false)
	s.mock.ExpectZRevRange("runs:recent", 0, 2).SetVal([]string{"run-2", "run-1", "run-gone"})
	s.mock.ExpectGet("run:run-2").SetVal(s.marshal(second))
	s.mock.ExpectGet("run:run-1").SetVal(s.marshal(first))
	s.mock.ExpectGet("run:run-gone").RedisNil()

	results, err := s.repo.ListRecent(ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal("run-2", results[0].RunID)
	s.Equal("run-1", results[1].RunID)
}

func (s *RedisRepoTestSuite) TestListRecentIndexError() {
	s.mock.ExpectZRevRange("runs:recent", 0, -1).SetErr(errors.New("redis error"))

	_, err := s.repo.ListRecent(context.Background(), 0)
	s.True(gameerr.IsInternal(err))
}
