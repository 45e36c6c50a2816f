package repository

import (
	"AfrilanceWeb/internal/adapter"
	"AfrilanceWeb/internal/model"
	"context"
	"time"
)

// RateLimitRepository counts hits per key in fixed windows shared by every
// replica through Redis.
type RateLimitRepository struct {
	redisAdapter *adapter.RedisAdapter
}

func NewRateLimitRepository(redisAdapter *adapter.RedisAdapter) *RateLimitRepository {
	return &RateLimitRepository{
		redisAdapter: redisAdapter,
	}
}

func (r *RateLimitRepository) Allow(ctx context.Context, key string, limit int, window time.Duration) (model.RateLimitDecision, error) {
	count, left, err := r.redisAdapter.IncrWindow(ctx, key, window)
	if err != nil {
		return model.RateLimitDecision{}, err
	}

	return decide(count, limit, left), nil
}

func decide(count int64, limit int, left time.Duration) model.RateLimitDecision {
	remaining := int64(limit) - count
	if remaining < 0 {
		remaining = 0
	}

	return model.RateLimitDecision{
		Allowed:   count <= int64(limit),
		Limit:     limit,
		Remaining: int(remaining),
		Reset:     left,
	}
}
