package service

import (
	"AfrilanceWeb/internal/constant"
	"AfrilanceWeb/internal/helper"
	"AfrilanceWeb/internal/metrics"
	"AfrilanceWeb/internal/model"
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
)

type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Touch(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type SessionEnder interface {
	DisconnectSession(sessionID string)
}

type SessionService struct {
	store     SessionStore
	validator *validator.Validate
	messaging *MessagingService
	ender     SessionEnder
	tokens    helper.TokenVerifier
}

func NewSessionService(store SessionStore, validator *validator.Validate, messaging *MessagingService, ender SessionEnder, tokens helper.TokenVerifier) *SessionService {
	if tokens == nil {
		tokens = helper.UnverifiedTokens
	}
	return &SessionService{
		store:     store,
		validator: validator,
		messaging: messaging,
		ender:     ender,
		tokens:    tokens,
	}
}

// CreateFromToken registers a marketplace access token obtained by the
// browser and returns the session that now owns it.
func (s *SessionService) CreateFromToken(ctx context.Context, req model.CreateSessionRequest) (*model.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewBadRequestError("")
	}

	claims, err := s.tokens.Verify(req.Token)
	if err != nil {
		slog.Warn("Rejected unreadable access token", "error", err)
		return nil, helper.NewUnauthorizedError("Invalid access token")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, helper.NewUnauthorizedError("Access token has expired")
	}

	userID := claims.Subject()
	if userID == "" {
		return nil, helper.NewUnauthorizedError("Access token carries no user")
	}

	role := claims.Role
	if role == "" {
		role = constant.RoleUser
	}

	return s.create(ctx, req.Token, userID, role)
}

func (s *SessionService) create(ctx context.Context, token, userID, role string) (*model.Session, error) {
	session := &model.Session{
		UserID: userID,
		Role:   role,
		Token:  token,
	}
	if err := s.store.Create(ctx, session); err != nil {
		slog.Error("Failed to store session", "error", err, "userID", userID)
		return nil, helper.NewInternalServerError("")
	}

	metrics.RecordSessionCreated(role)
	slog.Info("Session created", "sessionID", session.ID, "userID", userID, "role", role)
	return session, nil
}

func (s *SessionService) Resolve(ctx context.Context, id string) (*model.Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.Touch(ctx, id); err != nil {
		slog.Warn("Failed to extend session", "error", err, "sessionID", id)
	}
	return session, nil
}

func (s *SessionService) End(ctx context.Context, session *model.Session) error {
	if err := s.store.Delete(ctx, session.ID); err != nil {
		slog.Error("Failed to delete session", "error", err, "sessionID", session.ID)
		return helper.NewInternalServerError("")
	}

	s.messaging.Remove(session.ID)
	if s.ender != nil {
		s.ender.DisconnectSession(session.ID)
	}
	return nil
}

func ToSessionResponse(session *model.Session) *model.SessionResponse {
	return &model.SessionResponse{
		ID:        session.ID,
		UserID:    session.UserID,
		Role:      session.Role,
		CreatedAt: session.CreatedAt.Format(time.RFC3339),
	}
}
