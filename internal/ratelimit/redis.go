package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mohi-devhub/genie/internal/config"
)

// RedisWindow is a fixed-window limiter backed by a shared Redis counter,
// for deployments running more than one API instance. The first hit in a
// window creates the key with a TTL equal to the window; the key expiring
// resets the budget.
type RedisWindow struct {
	client *redis.Client
	prefix string
	window time.Duration
	max    int
}

func NewRedisWindow(client *redis.Client, prefix string, cfg config.WindowConfig) *RedisWindow {
	return &RedisWindow{
		client: client,
		prefix: prefix,
		window: cfg.Window,
		max:    cfg.Max,
	}
}

func (rw *RedisWindow) key(identity string) string {
	return fmt.Sprintf("ratelimit:%s:%s", rw.prefix, identity)
}

func (rw *RedisWindow) Check(ctx context.Context, identity string) (Result, error) {
	key := rw.key(identity)

	count, err := rw.client.Incr(ctx, key).Result()
	if err != nil {
		return Result{}, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		if err := rw.client.PExpire(ctx, key, rw.window).Err(); err != nil {
			return Result{}, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	ttl, err := rw.client.PTTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = rw.window
	}
	resetTime := time.Now().Add(ttl)

	if count > int64(rw.max) {
		return Result{Allowed: false, Remaining: 0, ResetTime: resetTime}, nil
	}
	return Result{Allowed: true, Remaining: rw.max - int(count), ResetTime: resetTime}, nil
}

// NewRedisSet builds Redis-backed limiters for each configured budget.
func NewRedisSet(cfg *config.Config, client *redis.Client) *Set {
	return &Set{
		API:    NewRedisWindow(client, "api", cfg.RateLimit.API),
		Auth:   NewRedisWindow(client, "auth", cfg.RateLimit.Auth),
		Submit: NewRedisWindow(client, "submit", cfg.RateLimit.Submit),
		Vote:   NewRedisWindow(client, "vote", cfg.RateLimit.Vote),
	}
}
