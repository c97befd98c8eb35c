package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/horde-survivor/internal/clock"
	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"github.com/KirkDiggler/horde-survivor/internal/events"
	"github.com/redis/go-redis/v9"
)

// DefaultRecentLimit caps the per-run recent events list
const DefaultRecentLimit = 100

// RedisConfig holds configuration for the Redis publisher
type RedisConfig struct {
	Client        redis.UniversalClient
	TimeProvider  clock.TimeProvider
	ChannelPrefix string
	RecentLimit   int64
}

// RedisPublisher implements Publisher on go-redis
type RedisPublisher struct {
	client       redis.UniversalClient
	timeProvider clock.TimeProvider
	prefix       string
	recentLimit  int64
}

// NewRedis creates a publisher that PUBLISHes each event on the run
// channel and keeps the most recent ones in a capped list.
func NewRedis(cfg *RedisConfig) (*RedisPublisher, error) {
	if cfg == nil || cfg.Client == nil {
		return nil, gameerr.UnresolvedDependency("redis client")
	}

	p := &RedisPublisher{
		client:       cfg.Client,
		timeProvider: cfg.TimeProvider,
		prefix:       cfg.ChannelPrefix,
		recentLimit:  cfg.RecentLimit,
	}
	if p.timeProvider == nil {
		p.timeProvider = &clock.RealTimeProvider{}
	}
	if p.prefix == "" {
		p.prefix = "horde"
	}
	if p.recentLimit <= 0 {
		p.recentLimit = DefaultRecentLimit
	}
	return p, nil
}

// Channel is the pub/sub channel for a run
func (p *RedisPublisher) Channel(runID string) string {
	return fmt.Sprintf("%s:run:%s:events", p.prefix, runID)
}

// RecentKey is the list holding the latest events of a run
func (p *RedisPublisher) RecentKey(runID string) string {
	return fmt.Sprintf("%s:run:%s:recent", p.prefix, runID)
}

func (p *RedisPublisher) Publish(ctx context.Context, runID string, event *events.GameEvent) error {
	if event == nil {
		return gameerr.InvalidArgument("event cannot be nil")
	}
	if runID == "" {
		return gameerr.InvalidArgument("run id is required")
	}

	payload, err := json.Marshal(newEnvelope(runID, p.timeProvider.Now(), event))
	if err != nil {
		return gameerr.Wrapf(err, "failed to marshal %s event", event.Type)
	}

	key := p.RecentKey(runID)
	pipe := p.client.Pipeline()
	pipe.Publish(ctx, p.Channel(runID), string(payload))
	pipe.LPush(ctx, key, string(payload))
	pipe.LTrim(ctx, key, 0, p.recentLimit-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return gameerr.WrapWithCode(err, gameerr.CodeInternal, "failed to publish event to Redis").
			WithMeta("run_id", runID)
	}

	return nil
}

// Recent returns up to limit of the latest events of a run, newest first
func (p *RedisPublisher) Recent(ctx context.Context, runID string, limit int64) ([]Envelope, error) {
	if limit <= 0 {
		limit = p.recentLimit
	}

	raw, err := p.client.LRange(ctx, p.RecentKey(runID), 0, limit-1).Result()
	if err != nil {
		return nil, gameerr.WrapWithCode(err, gameerr.CodeInternal, "failed to read recent events from Redis").
			WithMeta("run_id", runID)
	}

	out := make([]Envelope, 0, len(raw))
	for _, item := range raw {
		var env Envelope
		if err := json.Unmarshal([]byte(item), &env); err != nil {
			return nil, gameerr.Wrap(err, "failed to unmarshal recent event")
		}
		out = append(out, env)
	}
	return out, nil
}
