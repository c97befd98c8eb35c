package runs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/horde-survivor/internal/clock"
	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/KirkDiggler/horde-survivor/internal/simulation"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	runKeyPrefix = "run:"
	runIndexKey  = "runs:recent"
	defaultTTL   = 7 * 24 * time.Hour
)

// RedisRepoConfig holds configuration for the Redis run repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider clock.TimeProvider
	TTL          time.Duration
}

type redisRepo struct {
	client       redis.UniversalClient
	timeProvider clock.TimeProvider
	ttl          time.Duration
}

// NewRedis creates a Redis-backed run repository with default configuration
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{
		Client:       client,
		TimeProvider: &clock.RealTimeProvider{},
		TTL:          defaultTTL,
	})
}

// NewRedisRepository creates a Redis-backed run repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.TimeProvider == nil {
		cfg.TimeProvider = &clock.RealTimeProvider{}
	}
	return &redisRepo{
		client:       cfg.Client,
		timeProvider: cfg.TimeProvider,
		ttl:          cfg.TTL,
	}
}

func runKey(runID string) string {
	return runKeyPrefix + runID
}

func (r *redisRepo) Save(ctx context.Context, result *simulation.Result) error {
	if result == nil {
		return gameerr.InvalidArgument("result cannot be nil")
	}
	if result.RunID == "" {
		return gameerr.InvalidArgument("run ID cannot be empty")
	}

	data, err := json.Marshal(result)
	if err != nil {
		return gameerr.Wrap(err, "failed to marshal run result")
	}

	score := float64(r.timeProvider.Now().UnixNano())
	pipe := r.client.Pipeline()
	pipe.Set(ctx, runKey(result.RunID), string(data), r.ttl)
	pipe.ZAdd(ctx, runIndexKey, redis.Z{Score: score, Member: result.RunID})
	if _, err := pipe.Exec(ctx); err != nil {
		return gameerr.WrapWithCode(err, gameerr.CodeInternal, "failed to save run in Redis").
			WithMeta("run_id", result.RunID)
	}

	return nil
}

func (r *redisRepo) Get(ctx context.Context, runID string) (*simulation.Result, error) {
	data, err := r.client.Get(ctx, runKey(runID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gameerr.NotFoundf("run not found: %s", runID).WithMeta("run_id", runID)
		}
		return nil, gameerr.WrapWithCode(err, gameerr.CodeInternal, "failed to get run from Redis").
			WithMeta("run_id", runID)
	}

	var result simulation.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, gameerr.Wrap(err, "failed to unmarshal run result")
	}
	return &result, nil
}

// ListRecent skips index entries whose result already expired
func (r *redisRepo) ListRecent(ctx context.Context, limit int) ([]*simulation.Result, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	runIDs, err := r.client.ZRevRange(ctx, runIndexKey, 0, stop).Result()
	if err != nil {
		return nil, gameerr.WrapWithCode(err, gameerr.CodeInternal, "failed to list runs from Redis")
	}

	results := make([]*simulation.Result, len(runIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range runIDs {
		g.Go(func() error {
			result, err := r.Get(gctx, id)
			if gameerr.IsNotFound(err) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get run %s: %w", id, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*simulation.Result, 0, len(results))
	for _, result := range results {
		if result != nil {
			out = append(out, result)
		}
	}
	return out, nil
}
