package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/zendesk-dashboard/internal/config"
)

// RedisStore is the Redis-backed cache backend. Redis evicts keys at TTL, so
// GetStale cannot serve expired payloads and reports absent; stale fallback
// only applies to the memory backend.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisStore connects to Redis using the provided configuration.
func NewRedisStore(cfg config.RedisConfig, logger *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &RedisStore{client: client, logger: logger}
}

// Get returns the payload when present; Redis enforces TTL expiry itself.
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Error("redis get failed", zap.String("key", key), zap.Error(err))
		}
		r.misses.Add(1)
		return nil, false
	}
	r.hits.Add(1)
	return data, true
}

// GetStale reports absent; expired keys are already gone from Redis.
func (r *RedisStore) GetStale(context.Context, string) ([]byte, bool) {
	return nil, false
}

// Put stores the payload with a server-side TTL.
func (r *RedisStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate removes an entry regardless of TTL.
func (r *RedisStore) Invalidate(ctx context.Context, key string) {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("redis del failed", zap.String("key", key), zap.Error(err))
	}
}

// Stats reports client-side hit/miss counts; entry count comes from DBSIZE.
func (r *RedisStore) Stats() Stats {
	entries, err := r.client.DBSize(context.Background()).Result()
	if err != nil {
		entries = 0
	}
	return Stats{Entries: entries, Hits: r.hits.Load(), Misses: r.misses.Load()}
}

// Ping verifies Redis connectivity.
func (r *RedisStore) Ping(ctx context.Context) error {
	if r == nil || r.client == nil {
		return errors.New("redis client not configured")
	}
	return r.client.Ping(ctx).Err()
}

// Close closes the client.
func (r *RedisStore) Close() {
	if r != nil && r.client != nil {
		_ = r.client.Close()
	}
}
