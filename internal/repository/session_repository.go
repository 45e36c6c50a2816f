package repository

import (
	"AfrilanceWeb/internal/adapter"
	"AfrilanceWeb/internal/config"
	"AfrilanceWeb/internal/helper"
	"AfrilanceWeb/internal/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

type sessionRecord struct {
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	SealedToken string    `json:"sealed_token"`
	CreatedAt   time.Time `json:"created_at"`
}

type SessionRepository struct {
	redisAdapter *adapter.RedisAdapter
	cfg          *config.AppConfig
}

func NewSessionRepository(redisAdapter *adapter.RedisAdapter, cfg *config.AppConfig) *SessionRepository {
	return &SessionRepository{
		redisAdapter: redisAdapter,
		cfg:          cfg,
	}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Create assigns a fresh id to session and stores it with the configured TTL.
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	sealed, err := helper.Seal(session.Token, r.cfg.SessionSecret)
	if err != nil {
		slog.Error("Failed to seal session token", "error", err)
		return helper.NewInternalServerError("")
	}

	session.ID = uuid.NewString()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(sessionRecord{
		UserID:      session.UserID,
		Role:        session.Role,
		SealedToken: sealed,
		CreatedAt:   session.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.redisAdapter.Set(ctx, sessionKey(session.ID), data, r.cfg.SessionTTL()); err != nil {
		slog.Error("Failed to store session", "error", err, "sessionID", session.ID)
		return helper.NewInternalServerError("Failed to create session")
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*model.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	raw, err := r.redisAdapter.Get(ctx, sessionKey(id))
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		slog.Warn("Discarding unreadable session", "error", err, "sessionID", id)
		return nil, ErrSessionNotFound
	}

	token, err := helper.Open(record.SealedToken, r.cfg.SessionSecret)
	if err != nil {
		slog.Warn("Discarding session with invalid token seal", "sessionID", id)
		return nil, ErrSessionNotFound
	}

	return &model.Session{
		ID:        id,
		UserID:    record.UserID,
		Role:      record.Role,
		Token:     token,
		CreatedAt: record.CreatedAt,
	}, nil
}

// Touch extends the session's lifetime by the configured TTL.
func (r *SessionRepository) Touch(ctx context.Context, id string) error {
	return r.redisAdapter.Expire(ctx, sessionKey(id), r.cfg.SessionTTL())
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.redisAdapter.Del(ctx, sessionKey(id))
}
