package repository

import (
	"AfrilanceWeb/internal/adapter"
	"AfrilanceWeb/internal/config"
)

type Repository struct {
	Session   *SessionRepository
	RateLimit *RateLimitRepository
}

func NewRepository(redisAdapter *adapter.RedisAdapter, cfg *config.AppConfig) *Repository {
	return &Repository{
		Session:   NewSessionRepository(redisAdapter, cfg),
		RateLimit: NewRateLimitRepository(redisAdapter),
	}
}
