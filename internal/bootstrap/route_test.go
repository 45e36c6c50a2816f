package bootstrap

import (
	"AfrilanceWeb/internal/config"
	"AfrilanceWeb/internal/controller"
	"AfrilanceWeb/internal/helper"
	"AfrilanceWeb/internal/middleware"
	"AfrilanceWeb/internal/model"
	"AfrilanceWeb/internal/service"
	"AfrilanceWeb/internal/websocket"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]model.Session
	next     int
}

func (s *memoryStore) Create(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	session.ID = fmt.Sprintf("session-%d", s.next)
	session.CreatedAt = time.Now().UTC()
	s.sessions[session.ID] = *session
	return nil
}

func (s *memoryStore) Get(ctx context.Context, id string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, errors.New("session not found")
	}
	return &session, nil
}

func (s *memoryStore) Touch(ctx context.Context, id string) error { return nil }

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

type openLimiter struct{}

func (openLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (model.RateLimitDecision, error) {
	return model.RateLimitDecision{Allowed: true, Limit: limit, Remaining: limit, Reset: window}, nil
}

type marketplaceAPI struct {
	mu         sync.Mutex
	sent       []model.SendMessageRequest
	loginCalls int
}

func (m *marketplaceAPI) ListConversations(ctx context.Context, token string) ([]model.ConversationResponse, error) {
	return []model.ConversationResponse{
		{ConversationID: "c1", Other: model.ParticipantDTO{ID: "u2", Name: "Thandi"}},
	}, nil
}

func (m *marketplaceAPI) ListMessages(ctx context.Context, token string, conversationID string) ([]model.MessageResponse, error) {
	return []model.MessageResponse{
		{ID: "m1", SenderID: "u2", Content: "Hello", CreatedAt: time.Now().UTC().Format(time.RFC3339)},
	}, nil
}

func (m *marketplaceAPI) SendMessage(ctx context.Context, token string, req model.SendMessageRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, req)
	return nil
}

func (m *marketplaceAPI) SearchUsers(ctx context.Context, token string, query string) ([]model.UserSearchResult, error) {
	return nil, nil
}

func (m *marketplaceAPI) AdminLogin(ctx context.Context, req model.AdminLoginRequest) (*model.AdminLoginAPIResponse, error) {
	m.mu.Lock()
	m.loginCalls++
	m.mu.Unlock()
	return &model.AdminLoginAPIResponse{
		AccessToken: "admin-token",
		User:        model.AdminUserDTO{ID: "a1", Email: req.Email, Role: "admin"},
	}, nil
}

func (m *marketplaceAPI) RequestAdminRegistration(ctx context.Context, req model.AdminRegistrationRequest) (*model.AdminRegistrationResponse, error) {
	return &model.AdminRegistrationResponse{}, nil
}

func (m *marketplaceAPI) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *marketplaceAPI) lastSent() model.SendMessageRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

func (m *marketplaceAPI) logins() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loginCalls
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

type testServer struct {
	t   *testing.T
	srv *httptest.Server
	api *marketplaceAPI
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.AppConfig{
		AppEnv:               "test",
		SessionCookieName:    "afrilance_session",
		SessionTTLHours:      1,
		AdminEmailDomain:     "afrilance.co.za",
		AdminLoginRateLimit:  5,
		AdminLoginWindowSecs: 60,
		APITimeoutSeconds:    5,
		SearchDebounceMs:     20,
		ScrollDelayMs:        5,
		SendRateLimitPerSec:  100,
		SendRateBurst:        10,
		MessengerIdleMinutes: 30,
	}

	v := config.NewValidator(cfg)
	limiter := config.NewRateLimiter(cfg)

	api := &marketplaceAPI{}
	hub := websocket.NewHub()
	store := &memoryStore{sessions: map[string]model.Session{}}

	messaging := service.NewMessagingService(cfg, api, hub, v, limiter)
	sessions := service.NewSessionService(store, v, messaging, hub, helper.UnverifiedTokens)
	admin := service.NewAdminService(api, sessions, v)

	mux := config.NewChi(cfg)
	route := NewRoute(cfg, mux,
		middleware.NewSessionMiddleware(sessions, cfg),
		middleware.NewRateLimitMiddleware(openLimiter{}, cfg),
		controller.NewSessionController(sessions, cfg),
		controller.NewMessagingController(messaging),
		controller.NewAdminController(admin, cfg),
		controller.NewWebSocketController(hub, cfg),
	)
	route.Register()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &testServer{t: t, srv: srv, api: api}
}

func (ts *testServer) do(method, path, sessionID string, body interface{}) (*http.Response, envelope) {
	ts.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.srv.URL+path, reader)
	require.NoError(ts.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeader, sessionID)
	}

	resp, err := ts.srv.Client().Do(req)
	require.NoError(ts.t, err)
	defer resp.Body.Close()

	var env envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp, env
}

func (ts *testServer) signIn() string {
	ts.t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("backend"))
	require.NoError(ts.t, err)

	resp, env := ts.do(http.MethodPost, "/api/session", "", model.CreateSessionRequest{Token: token})
	require.Equal(ts.t, http.StatusOK, resp.StatusCode, env.Error)

	var session model.SessionResponse
	require.NoError(ts.t, json.Unmarshal(env.Data, &session))
	return session.ID
}

func decodeState(t *testing.T, env envelope) model.MessengerState {
	t.Helper()
	var state model.MessengerState
	require.NoError(t, json.Unmarshal(env.Data, &state))
	return state
}

func TestSessionLifecycle(t *testing.T) {
	ts := newTestServer(t)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "u1"}).SignedString([]byte("backend"))
	require.NoError(t, err)

	resp, env := ts.do(http.MethodPost, "/api/session", "", model.CreateSessionRequest{Token: token})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "afrilance_session" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	var created model.SessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, created.ID, cookie.Value)
	assert.Equal(t, "u1", created.UserID)

	resp, _ = ts.do(http.MethodGet, "/api/session", created.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = ts.do(http.MethodDelete, "/api/session", created.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = ts.do(http.MethodGet, "/api/session", created.ID, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMessagingRequiresSession(t *testing.T) {
	ts := newTestServer(t)

	resp, env := ts.do(http.MethodGet, "/api/messaging/state", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NotEmpty(t, env.Error)
}

func TestMessagingFlow(t *testing.T) {
	ts := newTestServer(t)
	sessionID := ts.signIn()

	resp, env := ts.do(http.MethodGet, "/api/messaging/state", sessionID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state := decodeState(t, env)
	require.Len(t, state.Conversations, 1)

	resp, _ = ts.do(http.MethodPost, "/api/messaging/send", sessionID, model.UpdateDraftRequest{Content: "hi"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "no conversation selected")

	resp, env = ts.do(http.MethodPost, "/api/messaging/conversations/c1/select", sessionID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state = decodeState(t, env)
	assert.Equal(t, "c1", state.SelectedConversation)
	require.Len(t, state.Messages, 1)
	assert.False(t, state.Messages[0].IsMine)

	resp, _ = ts.do(http.MethodPut, "/api/messaging/draft", sessionID, model.UpdateDraftRequest{Content: "line one"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = ts.do(http.MethodPost, "/api/messaging/keypress", sessionID, model.KeyPressRequest{Key: "Enter", Shift: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "line one", decodeState(t, env).Draft)
	assert.Equal(t, 0, ts.api.sentCount())

	resp, env = ts.do(http.MethodPost, "/api/messaging/keypress", sessionID, model.KeyPressRequest{Key: "Enter"})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Error)
	assert.Empty(t, decodeState(t, env).Draft)
	require.Equal(t, 1, ts.api.sentCount())
	assert.Equal(t, "line one", ts.api.lastSent().Content)
	assert.Equal(t, "c1", ts.api.lastSent().ConversationID)
	assert.Equal(t, "u2", ts.api.lastSent().RecipientID)

	resp, _ = ts.do(http.MethodPost, "/api/messaging/send", sessionID, model.UpdateDraftRequest{Content: "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "blank content")
	assert.Equal(t, 1, ts.api.sentCount())

	resp, _ = ts.do(http.MethodPost, "/api/messaging/search", sessionID, model.SearchUsersRequest{Query: "a"})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
}

func TestAdminRoutes(t *testing.T) {
	ts := newTestServer(t)

	resp, env := ts.do(http.MethodPost, "/api/admin/login", "", model.AdminLoginRequest{Email: "jane@gmail.com", Password: "password123"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Only Afrilance staff emails can sign in", env.Error)
	assert.Equal(t, 0, ts.api.logins())

	userSession := ts.signIn()
	resp, _ = ts.do(http.MethodGet, "/api/admin/me", userSession, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env = ts.do(http.MethodPost, "/api/admin/login", "", model.AdminLoginRequest{Email: "ops@afrilance.co.za", Password: "password123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Error)
	var login model.AdminLoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, 1, ts.api.logins())

	resp, _ = ts.do(http.MethodGet, "/api/admin/me", login.SessionID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOperationalRoutes(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := ts.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := ts.srv.Client().Get(ts.srv.URL + "/swagger/doc.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var doc map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	paths, ok := doc["paths"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, paths, "/api/messaging/send")

	resp, err = ts.srv.Client().Get(ts.srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = ts.do(http.MethodGet, "/api/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json"))
}
