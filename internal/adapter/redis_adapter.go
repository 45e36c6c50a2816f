package adapter

import (
	"AfrilanceWeb/internal/config"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisClientName = "afrilance-web"

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(cfg *config.AppConfig) (*RedisAdapter, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", "error", err, "addr", opts.Addr)
		_ = client.Close()
		return nil, err
	}

	slog.Info("Connected to Redis", "addr", opts.Addr, "db", opts.DB)

	return &RedisAdapter{
		client: client,
	}, nil
}

// redisOptions prefers REDIS_URL and falls back to the discrete host/port
// settings.
func redisOptions(cfg *config.AppConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		opts.ClientName = redisClientName
		return opts, nil
	}

	return &redis.Options{
		Addr:       fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password:   cfg.RedisPassword,
		DB:         cfg.RedisDB,
		ClientName: redisClientName,
	}, nil
}

func (r *RedisAdapter) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *RedisAdapter) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *RedisAdapter) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisAdapter) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return r.client.Expire(ctx, key, expiration).Err()
}

// IncrWindow bumps a fixed-window counter and returns the new count and the
// time left in the window. The expiry is only set when the window opens, so
// later hits never extend it. Needs Redis 7 for EXPIRE NX.
func (r *RedisAdapter) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	left := ttl.Val()
	if left <= 0 {
		left = window
	}
	return incr.Val(), left, nil
}

func (r *RedisAdapter) Close() error {
	return r.client.Close()
}
