package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/call-assistant/pkg/config"
)

const rateLimitKeyPrefix = "call-assistant:ratelimit:"

// NewRedisClient connects to Redis and waits until it answers PING
func NewRedisClient(ctx context.Context, cfg config.RateLimitConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Retry logic with exponential backoff
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = 20 * time.Second

	ping := func() error {
		return client.Ping(ctx).Err()
	}
	if err := backoff.Retry(ping, backoff.WithContext(bo, ctx)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", cfg.RedisAddr, err)
	}
	return client, nil
}

// RedisWindowStore keeps one sorted set of hit timestamps per identifier,
// so every replica behind a load balancer shares the same window.
type RedisWindowStore struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisWindowStore creates a Redis-backed window store
func NewRedisWindowStore(client *redis.Client, limit int, window time.Duration) *RedisWindowStore {
	return &RedisWindowStore{
		client: client,
		limit:  limit,
		window: window,
		prefix: rateLimitKeyPrefix,
		now:    time.Now,
	}
}

// Allow records a hit and reports whether identifier is within the limit.
// Rejected hits are removed again so they do not extend the window.
func (s *RedisWindowStore) Allow(ctx context.Context, identifier string) (bool, error) {
	key := s.prefix + identifier
	now := s.now()
	cutoff := now.Add(-s.window).UnixMicro()
	member := strconv.FormatInt(now.UnixMicro(), 10) + "-" + uuid.NewString()

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(cutoff, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixMicro()), Member: member})
	count := pipe.ZCard(ctx, key)
	pipe.PExpire(ctx, key, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit window update failed: %w", err)
	}

	if count.Val() > int64(s.limit) {
		if err := s.client.ZRem(ctx, key, member).Err(); err != nil {
			return false, fmt.Errorf("rate limit window rollback failed: %w", err)
		}
		return false, nil
	}
	return true, nil
}
