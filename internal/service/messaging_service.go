package service

import (
	"AfrilanceWeb/internal/config"
	"AfrilanceWeb/internal/helper"
	"AfrilanceWeb/internal/messenger"
	"AfrilanceWeb/internal/metrics"
	"AfrilanceWeb/internal/model"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// MessagingService owns one Messenger per browser session.
type MessagingService struct {
	api         messenger.API
	sink        messenger.EventSink
	validator   *validator.Validate
	rateLimiter *config.RateLimiter
	opts        messenger.Options

	mu         sync.Mutex
	messengers map[string]*messenger.Messenger
}

func NewMessagingService(cfg *config.AppConfig, api messenger.API, sink messenger.EventSink, validator *validator.Validate, rateLimiter *config.RateLimiter) *MessagingService {
	return &MessagingService{
		api:         api,
		sink:        sink,
		validator:   validator,
		rateLimiter: rateLimiter,
		opts: messenger.Options{
			SearchDebounce: cfg.SearchDebounce(),
			ScrollDelay:    cfg.ScrollDelay(),
			SearchTimeout:  cfg.APITimeout(),
		},
		messengers: make(map[string]*messenger.Messenger),
	}
}

func (s *MessagingService) forSession(session *model.Session) (*messenger.Messenger, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.messengers[session.ID]; ok {
		return m, false
	}

	m := messenger.New(s.api, session, s.sink, s.opts)
	s.messengers[session.ID] = m
	metrics.ActiveMessengers.Inc()
	return m, true
}

// GetState returns the widget snapshot, loading the conversation list the
// first time a session opens its messenger.
func (s *MessagingService) GetState(ctx context.Context, session *model.Session) (*model.MessengerState, error) {
	m, created := s.forSession(session)
	if created {
		m.LoadConversations(ctx)
	}

	state := m.Snapshot()
	return &state, nil
}

func (s *MessagingService) RefreshConversations(ctx context.Context, session *model.Session) (*model.MessengerState, error) {
	m, _ := s.forSession(session)
	if err := m.LoadConversations(ctx); errors.Is(err, messenger.ErrClosed) {
		return nil, helper.NewConflictError("Session has ended")
	}

	state := m.Snapshot()
	return &state, nil
}

func (s *MessagingService) SelectConversation(ctx context.Context, session *model.Session, conversationID string) (*model.MessengerState, error) {
	if conversationID == "" {
		return nil, helper.NewBadRequestError("Invalid Conversation ID")
	}

	m, _ := s.forSession(session)
	if err := m.SelectConversation(ctx, conversationID); err != nil {
		if errors.Is(err, messenger.ErrClosed) {
			return nil, helper.NewConflictError("Session has ended")
		}
		return nil, apiFailure(err)
	}

	state := m.Snapshot()
	return &state, nil
}

func (s *MessagingService) Search(ctx context.Context, session *model.Session, req model.SearchUsersRequest) error {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err, "sessionID", session.ID)
		return helper.NewBadRequestError("")
	}

	m, _ := s.forSession(session)
	m.Search(req.Query)
	return nil
}

func (s *MessagingService) StartConversation(ctx context.Context, session *model.Session, req model.StartConversationRequest) (*model.MessengerState, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err, "sessionID", session.ID)
		return nil, helper.NewBadRequestError("")
	}
	if req.UserID == session.UserID {
		return nil, helper.NewBadRequestError("Cannot start a conversation with yourself")
	}
	if err := s.allow(session); err != nil {
		return nil, err
	}

	m, _ := s.forSession(session)
	if _, err := m.StartConversation(ctx, req.UserID); err != nil {
		return nil, s.messengerFailure(err)
	}

	state := m.Snapshot()
	return &state, nil
}

func (s *MessagingService) UpdateDraft(ctx context.Context, session *model.Session, req model.UpdateDraftRequest) error {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err, "sessionID", session.ID)
		return helper.NewBadRequestError("")
	}

	m, _ := s.forSession(session)
	m.SetDraft(req.Content)
	return nil
}

// Send sends req.Content, or the current draft when no content is given.
func (s *MessagingService) Send(ctx context.Context, session *model.Session, req model.SendDraftRequest) (*model.MessengerState, error) {
	if req.Content != nil && len(*req.Content) > 4000 {
		return nil, helper.NewBadRequestError("Message is too long")
	}
	if err := s.allow(session); err != nil {
		return nil, err
	}

	m, _ := s.forSession(session)

	var err error
	if req.Content != nil {
		err = m.Send(ctx, *req.Content)
	} else {
		err = m.SendDraft(ctx)
	}
	if err != nil {
		return nil, s.messengerFailure(err)
	}

	state := m.Snapshot()
	return &state, nil
}

func (s *MessagingService) KeyPress(ctx context.Context, session *model.Session, req model.KeyPressRequest) (*model.MessengerState, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err, "sessionID", session.ID)
		return nil, helper.NewBadRequestError("")
	}

	m, _ := s.forSession(session)
	if req.Key == "Enter" && !req.Shift {
		if err := s.allow(session); err != nil {
			return nil, err
		}
	}

	if _, err := m.SubmitKey(ctx, req.Key, req.Shift); err != nil && !errors.Is(err, messenger.ErrNothingToSend) {
		return nil, s.messengerFailure(err)
	}

	state := m.Snapshot()
	return &state, nil
}

func (s *MessagingService) allow(session *model.Session) error {
	if s.rateLimiter == nil {
		return nil
	}
	if ok, wait := s.rateLimiter.Allow(session.ID); !ok {
		return helper.NewTooManyRequestsError(fmt.Sprintf("You are sending messages too quickly, try again in %ds", int(math.Ceil(wait.Seconds()))))
	}
	return nil
}

func (s *MessagingService) forgetLimit(sessionID string) {
	if s.rateLimiter != nil {
		s.rateLimiter.Forget(sessionID)
	}
}

func (s *MessagingService) messengerFailure(err error) error {
	switch {
	case errors.Is(err, messenger.ErrNothingToSend):
		return helper.NewBadRequestError("Nothing to send")
	case errors.Is(err, messenger.ErrSendInFlight):
		return helper.NewConflictError("A message is already being sent")
	case errors.Is(err, messenger.ErrClosed):
		return helper.NewConflictError("Session has ended")
	default:
		return apiFailure(err)
	}
}

func (s *MessagingService) Remove(sessionID string) {
	s.mu.Lock()
	m, ok := s.messengers[sessionID]
	delete(s.messengers, sessionID)
	s.mu.Unlock()

	if ok {
		metrics.ActiveMessengers.Dec()
		m.Close()
		s.forgetLimit(sessionID)
	}
}

// RemoveIdle closes messengers untouched since before cutoff and returns how
// many were removed.
func (s *MessagingService) RemoveIdle(cutoff time.Time) int {
	s.mu.Lock()
	var idle []*messenger.Messenger
	for id, m := range s.messengers {
		if m.LastActive().Before(cutoff) {
			idle = append(idle, m)
			delete(s.messengers, id)
			s.forgetLimit(id)
		}
	}
	s.mu.Unlock()

	metrics.ActiveMessengers.Sub(float64(len(idle)))
	for _, m := range idle {
		m.Close()
	}
	return len(idle)
}

func (s *MessagingService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messengers)
}
