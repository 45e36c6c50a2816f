package service

import (
	"AfrilanceWeb/internal/adapter"
	"AfrilanceWeb/internal/config"
	"AfrilanceWeb/internal/helper"
	"AfrilanceWeb/internal/model"
	"AfrilanceWeb/internal/websocket"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("not found")

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
	next     int
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: map[string]*model.Session{}}
}

func (s *memorySessionStore) Create(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	session.ID = fmt.Sprintf("session-%d", s.next)
	session.CreatedAt = time.Now().UTC()
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *memorySessionStore) Get(ctx context.Context, id string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, errNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *memorySessionStore) Touch(ctx context.Context, id string) error { return nil }

func (s *memorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

type fakeAdminAPI struct {
	loginCalls    int
	registerCalls int
	loginResp     *model.AdminLoginAPIResponse
	err           error
}

func (f *fakeAdminAPI) AdminLogin(ctx context.Context, req model.AdminLoginRequest) (*model.AdminLoginAPIResponse, error) {
	f.loginCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.loginResp, nil
}

func (f *fakeAdminAPI) RequestAdminRegistration(ctx context.Context, req model.AdminRegistrationRequest) (*model.AdminRegistrationResponse, error) {
	f.registerCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &model.AdminRegistrationResponse{}, nil
}

type stubMessagingAPI struct {
	mu   sync.Mutex
	sent int
}

func (s *stubMessagingAPI) ListConversations(ctx context.Context, token string) ([]model.ConversationResponse, error) {
	return []model.ConversationResponse{{ConversationID: "c1", Other: model.ParticipantDTO{ID: "u2"}}}, nil
}

func (s *stubMessagingAPI) ListMessages(ctx context.Context, token string, conversationID string) ([]model.MessageResponse, error) {
	return nil, nil
}

func (s *stubMessagingAPI) SendMessage(ctx context.Context, token string, req model.SendMessageRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent++
	return nil
}

func (s *stubMessagingAPI) SearchUsers(ctx context.Context, token string, query string) ([]model.UserSearchResult, error) {
	return nil, nil
}

type recordingEnder struct {
	ended []string
}

func (r *recordingEnder) DisconnectSession(sessionID string) {
	r.ended = append(r.ended, sessionID)
}

type nopSink struct{}

func (nopSink) BroadcastToSession(string, websocket.Event) {}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		AdminEmailDomain:     "afrilance.co.za",
		APITimeoutSeconds:    5,
		SearchDebounceMs:     20,
		ScrollDelayMs:        5,
		SendRateLimitPerSec:  100,
		SendRateBurst:        10,
		MessengerIdleMinutes: 30,
	}
}

func newServices(t *testing.T) (*SessionService, *MessagingService, *memorySessionStore, *recordingEnder, *stubMessagingAPI) {
	t.Helper()
	cfg := testConfig()
	v := config.NewValidator(cfg)
	limiter := config.NewRateLimiter(cfg)

	api := &stubMessagingAPI{}
	messaging := NewMessagingService(cfg, api, nopSink{}, v, limiter)
	store := newMemorySessionStore()
	ender := &recordingEnder{}
	return NewSessionService(store, v, messaging, ender, helper.UnverifiedTokens), messaging, store, ender, api
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend"))
	require.NoError(t, err)
	return token
}

func appErrorCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *helper.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestAdminLogin(t *testing.T) {
	sessions, _, store, _, _ := newServices(t)
	v := config.NewValidator(testConfig())

	t.Run("Non staff email is rejected before any network call", func(t *testing.T) {
		api := &fakeAdminAPI{}
		svc := NewAdminService(api, sessions, v)

		for _, email := range []string{"jane@gmail.com", "jane@afrilance.co.za.evil.com", "jane@afrilance.com", "@afrilance.co.za"} {
			_, _, err := svc.Login(context.Background(), model.AdminLoginRequest{Email: email, Password: "password123"})
			require.Error(t, err, email)
			assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
		}
		assert.Equal(t, 0, api.loginCalls)
	})

	t.Run("Domain message is specific", func(t *testing.T) {
		svc := NewAdminService(&fakeAdminAPI{}, sessions, v)
		_, _, err := svc.Login(context.Background(), model.AdminLoginRequest{Email: "jane@gmail.com", Password: "password123"})
		assert.EqualError(t, err, "Only Afrilance staff emails can sign in")
	})

	t.Run("Success opens an admin session", func(t *testing.T) {
		api := &fakeAdminAPI{loginResp: &model.AdminLoginAPIResponse{
			AccessToken: "admin-token",
			User:        model.AdminUserDTO{ID: "a1", Email: "ops@afrilance.co.za", Role: "admin"},
		}}
		svc := NewAdminService(api, sessions, v)

		session, resp, err := svc.Login(context.Background(), model.AdminLoginRequest{Email: " Ops@Afrilance.co.za ", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, 1, api.loginCalls)
		assert.Equal(t, session.ID, resp.SessionID)

		stored, err := store.Get(context.Background(), session.ID)
		require.NoError(t, err)
		assert.Equal(t, "admin-token", stored.Token)
		assert.Equal(t, "a1", stored.UserID)
		assert.Equal(t, "admin", stored.Role)
	})

	t.Run("Backend detail is surfaced", func(t *testing.T) {
		api := &fakeAdminAPI{err: &adapter.APIError{Status: http.StatusUnauthorized, Detail: "Invalid email or password"}}
		svc := NewAdminService(api, sessions, v)

		_, _, err := svc.Login(context.Background(), model.AdminLoginRequest{Email: "ops@afrilance.co.za", Password: "password123"})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, appErrorCode(t, err))
		assert.EqualError(t, err, "Invalid email or password")
	})

	t.Run("Backend outage is a bad gateway with the generic message", func(t *testing.T) {
		api := &fakeAdminAPI{err: &adapter.APIError{Status: http.StatusServiceUnavailable}}
		svc := NewAdminService(api, sessions, v)

		_, _, err := svc.Login(context.Background(), model.AdminLoginRequest{Email: "ops@afrilance.co.za", Password: "password123"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadGateway, appErrorCode(t, err))
	})
}

func TestAdminRegistration(t *testing.T) {
	sessions, _, _, _, _ := newServices(t)
	v := config.NewValidator(testConfig())

	t.Run("Domain rule", func(t *testing.T) {
		api := &fakeAdminAPI{}
		svc := NewAdminService(api, sessions, v)

		_, err := svc.RequestRegistration(context.Background(), model.AdminRegistrationRequest{
			FullName: "Jane Doe", Email: "jane@yahoo.com", Reason: "Support team",
		})
		require.Error(t, err)
		assert.EqualError(t, err, "Registration requests require an Afrilance staff email")
		assert.Equal(t, 0, api.registerCalls)
	})

	t.Run("Blank reason", func(t *testing.T) {
		api := &fakeAdminAPI{}
		svc := NewAdminService(api, sessions, v)

		_, err := svc.RequestRegistration(context.Background(), model.AdminRegistrationRequest{
			FullName: "Jane Doe", Email: "jane@afrilance.co.za", Reason: "   ",
		})
		require.Error(t, err)
		assert.Equal(t, 0, api.registerCalls)
	})

	t.Run("Success", func(t *testing.T) {
		api := &fakeAdminAPI{}
		svc := NewAdminService(api, sessions, v)

		resp, err := svc.RequestRegistration(context.Background(), model.AdminRegistrationRequest{
			FullName: "Jane Doe", Email: "jane@afrilance.co.za", Reason: "Support team",
		})
		require.NoError(t, err)
		assert.Equal(t, "Registration request submitted", resp.Message)
		assert.Equal(t, 1, api.registerCalls)
	})
}

func TestSessionFromToken(t *testing.T) {
	sessions, _, _, _, _ := newServices(t)

	t.Run("Valid token", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(time.Hour).Unix()})
		session, err := sessions.CreateFromToken(context.Background(), model.CreateSessionRequest{Token: token})
		require.NoError(t, err)
		assert.Equal(t, "u1", session.UserID)
		assert.Equal(t, "user", session.Role)
		assert.NotEmpty(t, session.ID)
	})

	t.Run("Expired token", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(-time.Hour).Unix()})
		_, err := sessions.CreateFromToken(context.Background(), model.CreateSessionRequest{Token: token})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, appErrorCode(t, err))
	})

	t.Run("Token without user", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"role": "client"})
		_, err := sessions.CreateFromToken(context.Background(), model.CreateSessionRequest{Token: token})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, appErrorCode(t, err))
	})

	t.Run("Missing token", func(t *testing.T) {
		_, err := sessions.CreateFromToken(context.Background(), model.CreateSessionRequest{})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
	})
}

type rejectingVerifier struct{}

func (rejectingVerifier) Verify(string) (*helper.TokenClaims, error) {
	return nil, errors.New("signature is invalid")
}

func TestSessionFromTokenWithVerifier(t *testing.T) {
	cfg := testConfig()
	v := config.NewValidator(cfg)
	store := newMemorySessionStore()
	sessions := NewSessionService(store, v, nil, &recordingEnder{}, rejectingVerifier{})

	token := signedToken(t, jwt.MapClaims{"sub": "u1"})
	_, err := sessions.CreateFromToken(context.Background(), model.CreateSessionRequest{Token: token})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, appErrorCode(t, err))
	assert.Empty(t, store.sessions)
}

func TestEndSessionDropsMessenger(t *testing.T) {
	sessions, messaging, store, ender, _ := newServices(t)

	token := signedToken(t, jwt.MapClaims{"sub": "u1"})
	session, err := sessions.CreateFromToken(context.Background(), model.CreateSessionRequest{Token: token})
	require.NoError(t, err)

	_, err = messaging.GetState(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, 1, messaging.Count())

	require.NoError(t, sessions.End(context.Background(), session))
	assert.Equal(t, 0, messaging.Count())
	assert.Equal(t, []string{session.ID}, ender.ended)

	_, err = store.Get(context.Background(), session.ID)
	assert.ErrorIs(t, err, errNotFound)
}

func TestMessagingService(t *testing.T) {
	session := &model.Session{ID: "s1", UserID: "u1", Token: "tok"}

	t.Run("First state load fetches conversations", func(t *testing.T) {
		_, messaging, _, _, _ := newServices(t)

		state, err := messaging.GetState(context.Background(), session)
		require.NoError(t, err)
		require.Len(t, state.Conversations, 1)
		assert.Equal(t, "idle", state.Status)
	})

	t.Run("Sending without a selection is a bad request", func(t *testing.T) {
		_, messaging, _, _, api := newServices(t)

		content := "hello"
		_, err := messaging.Send(context.Background(), session, model.SendDraftRequest{Content: &content})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
		assert.Equal(t, 0, api.sent)
	})

	t.Run("Send after selecting", func(t *testing.T) {
		_, messaging, _, _, api := newServices(t)

		_, err := messaging.SelectConversation(context.Background(), session, "c1")
		require.NoError(t, err)

		content := "hello"
		state, err := messaging.Send(context.Background(), session, model.SendDraftRequest{Content: &content})
		require.NoError(t, err)
		assert.Equal(t, 1, api.sent)
		assert.Empty(t, state.Draft)
	})

	t.Run("Shift+Enter does not send", func(t *testing.T) {
		_, messaging, _, _, api := newServices(t)

		_, err := messaging.SelectConversation(context.Background(), session, "c1")
		require.NoError(t, err)
		require.NoError(t, messaging.UpdateDraft(context.Background(), session, model.UpdateDraftRequest{Content: "multi"}))

		state, err := messaging.KeyPress(context.Background(), session, model.KeyPressRequest{Key: "Enter", Shift: true})
		require.NoError(t, err)
		assert.Equal(t, "multi", state.Draft)
		assert.Equal(t, 0, api.sent)
	})

	t.Run("Enter on an empty draft is not an error", func(t *testing.T) {
		_, messaging, _, _, api := newServices(t)

		_, err := messaging.SelectConversation(context.Background(), session, "c1")
		require.NoError(t, err)

		_, err = messaging.KeyPress(context.Background(), session, model.KeyPressRequest{Key: "Enter"})
		require.NoError(t, err)
		assert.Equal(t, 0, api.sent)
	})

	t.Run("Cannot start a conversation with yourself", func(t *testing.T) {
		_, messaging, _, _, _ := newServices(t)

		_, err := messaging.StartConversation(context.Background(), session, model.StartConversationRequest{UserID: "u1"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
	})

	t.Run("Send is rate limited per session", func(t *testing.T) {
		cfg := testConfig()
		cfg.SendRateLimitPerSec = 0.001
		cfg.SendRateBurst = 2
		v := config.NewValidator(cfg)
		limiter := config.NewRateLimiter(cfg)
			api := &stubMessagingAPI{}
		messaging := NewMessagingService(cfg, api, nopSink{}, v, limiter)

		_, err := messaging.SelectConversation(context.Background(), session, "c1")
		require.NoError(t, err)

		content := "spam"
		var limited error
		for i := 0; i < 5; i++ {
			if _, err := messaging.Send(context.Background(), session, model.SendDraftRequest{Content: &content}); err != nil {
				limited = err
				break
			}
		}
		require.Error(t, limited)
		assert.Equal(t, http.StatusTooManyRequests, appErrorCode(t, limited))
	})

	t.Run("Idle messengers are removed", func(t *testing.T) {
		_, messaging, _, _, _ := newServices(t)

		_, err := messaging.GetState(context.Background(), session)
		require.NoError(t, err)

		assert.Equal(t, 0, messaging.RemoveIdle(time.Now().Add(-time.Hour)))
		assert.Equal(t, 1, messaging.RemoveIdle(time.Now().Add(time.Minute)))
		assert.Equal(t, 0, messaging.Count())
	})
}
