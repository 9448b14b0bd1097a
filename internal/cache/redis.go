// Package cache holds the optional Redis request guard.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CheckInGuardTTL is how long a check-in attempt holds its key.
const CheckInGuardTTL = 10 * time.Second

// Guard sheds duplicate requests before they reach the database.
type Guard interface {
	// Acquire reports whether the caller is first for key.
	Acquire(ctx context.Context, key string, ttl time.Duration) bool
	// Release frees key early so a retry after a failed attempt is not shed.
	Release(ctx context.Context, key string)
}

func CheckInKey(userID uuid.UUID, date string) string {
	return fmt.Sprintf("checkin:%s:%s", userID, date)
}

// NewClient parses a redis:// URL. Returns nil, nil when url is empty.
func NewClient(url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 3 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second
	return redis.NewClient(opts), nil
}

type RedisGuard struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisGuard(client *redis.Client, log *zap.Logger) *RedisGuard {
	return &RedisGuard{client: client, log: log}
}

// Acquire fails open: if Redis is unreachable the request proceeds and the
// database constraint decides.
func (g *RedisGuard) Acquire(ctx context.Context, key string, ttl time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	ok, err := g.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		g.log.Warn("redis guard unavailable", zap.String("key", key), zap.Error(err))
		return true
	}
	return ok
}

func (g *RedisGuard) Release(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	if err := g.client.Del(ctx, key).Err(); err != nil {
		g.log.Warn("redis guard release failed", zap.String("key", key), zap.Error(err))
	}
}

// NopGuard always lets the request through.
type NopGuard struct{}

func (NopGuard) Acquire(context.Context, string, time.Duration) bool { return true }
func (NopGuard) Release(context.Context, string)                      {}
