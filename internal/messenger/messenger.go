// Package messenger holds the per-session messaging widget: the conversation
// list, the selected thread, the draft, and the debounced user search.
// State changes are published as websocket events; nothing here renders.
package messenger

import (
	"AfrilanceWeb/internal/adapter"
	"AfrilanceWeb/internal/constant"
	"AfrilanceWeb/internal/helper"
	"AfrilanceWeb/internal/metrics"
	"AfrilanceWeb/internal/model"
	"AfrilanceWeb/internal/websocket"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

var (
	ErrNothingToSend = errors.New("nothing to send")
	ErrSendInFlight  = errors.New("a message is already being sent")
	ErrClosed        = errors.New("messenger is closed")
)

type API interface {
	ListConversations(ctx context.Context, token string) ([]model.ConversationResponse, error)
	ListMessages(ctx context.Context, token string, conversationID string) ([]model.MessageResponse, error)
	SendMessage(ctx context.Context, token string, req model.SendMessageRequest) error
	SearchUsers(ctx context.Context, token string, query string) ([]model.UserSearchResult, error)
}

type EventSink interface {
	BroadcastToSession(sessionID string, event websocket.Event)
}

type Options struct {
	SearchDebounce time.Duration
	ScrollDelay    time.Duration
	// SearchTimeout bounds a debounced search, which has no caller context.
	SearchTimeout time.Duration
	Now           func() time.Time
}

func (o Options) withDefaults() Options {
	if o.SearchDebounce <= 0 {
		o.SearchDebounce = 300 * time.Millisecond
	}
	if o.ScrollDelay <= 0 {
		o.ScrollDelay = 100 * time.Millisecond
	}
	if o.SearchTimeout <= 0 {
		o.SearchTimeout = 15 * time.Second
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type Messenger struct {
	api       API
	session   *model.Session
	sink      EventSink
	opts      Options
	debouncer *helper.Debouncer

	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex
	status        constant.MessengerStatus
	conversations []model.ConversationResponse
	selected      string
	messages      []model.MessageResponse
	searchQuery   string
	searchResults []model.UserSearchResult
	draft         string
	sending       bool
	closed        bool
	lastActive    time.Time
	scrollTimer   *time.Timer

	// Request generations. A response is applied only while its generation
	// is still the latest one issued for that kind of request.
	conversationGen uint64
	messageGen      uint64
	searchGen       uint64
}

func New(api API, session *model.Session, sink EventSink, opts Options) *Messenger {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	return &Messenger{
		api:        api,
		session:    session,
		sink:       sink,
		opts:       opts,
		debouncer:  helper.NewDebouncer(opts.SearchDebounce),
		ctx:        ctx,
		cancel:     cancel,
		status:     constant.StatusIdle,
		lastActive: opts.Now(),
	}
}

func (m *Messenger) SessionID() string {
	return m.session.ID
}

func (m *Messenger) token() string {
	return m.session.Token
}

func (m *Messenger) LastActive() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastActive
}

// Close cancels pending timers and in-flight debounced searches.
func (m *Messenger) Close() {
	m.debouncer.Cancel()

	m.mu.Lock()
	m.closed = true
	if m.scrollTimer != nil {
		m.scrollTimer.Stop()
		m.scrollTimer = nil
	}
	m.mu.Unlock()

	m.cancel()
}

func (m *Messenger) touchLocked() error {
	if m.closed {
		return ErrClosed
	}
	m.lastActive = m.opts.Now()
	return nil
}

// LoadConversations refreshes the conversation list. Failures are logged and
// leave the current list in place.
func (m *Messenger) LoadConversations(ctx context.Context) error {
	m.mu.Lock()
	if err := m.touchLocked(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.conversationGen++
	gen := m.conversationGen
	m.mu.Unlock()

	conversations, err := m.api.ListConversations(ctx, m.token())
	if err != nil {
		slog.Error("Failed to load conversations", "error", err, "sessionID", m.SessionID())
		return err
	}

	m.mu.Lock()
	if gen != m.conversationGen || m.closed {
		m.mu.Unlock()
		metrics.RecordStaleResponse("conversations")
		return nil
	}
	if conversations == nil {
		conversations = []model.ConversationResponse{}
	}
	m.conversations = conversations
	m.mu.Unlock()

	m.publish(websocket.EventConversationsUpdated, conversations, "")
	return nil
}

// SelectConversation switches the thread to conversationID and loads its
// messages.
func (m *Messenger) SelectConversation(ctx context.Context, conversationID string) error {
	m.mu.Lock()
	if err := m.touchLocked(); err != nil {
		m.mu.Unlock()
		return err
	}
	if m.selected != conversationID {
		m.messages = nil
	}
	m.mu.Unlock()

	return m.LoadMessages(ctx, conversationID)
}

// LoadMessages replaces the thread with the messages of conversationID and
// schedules a scroll to the latest message. Responses overtaken by a newer
// load are dropped.
func (m *Messenger) LoadMessages(ctx context.Context, conversationID string) error {
	m.mu.Lock()
	if err := m.touchLocked(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.selected = conversationID
	m.status = constant.StatusLoading
	m.messageGen++
	gen := m.messageGen
	m.mu.Unlock()

	m.publishState()

	messages, err := m.api.ListMessages(ctx, m.token(), conversationID)

	m.mu.Lock()
	if gen != m.messageGen || m.closed {
		m.mu.Unlock()
		slog.Debug("Discarding stale messages response", "conversationID", conversationID, "sessionID", m.SessionID())
		metrics.RecordStaleResponse("messages")
		return nil
	}
	m.status = constant.StatusReady
	if err != nil {
		m.mu.Unlock()
		slog.Error("Failed to load messages", "error", err, "conversationID", conversationID, "sessionID", m.SessionID())
		m.publishState()
		return err
	}
	m.messages = messages
	views := m.messageViewsLocked()
	m.mu.Unlock()

	m.publish(websocket.EventMessagesUpdated, views, conversationID)
	m.publishState()
	m.scheduleScroll(conversationID)
	return nil
}

// Search schedules a user search for query once input has been idle for the
// debounce interval. Queries shorter than the minimum clear the results
// without calling the API.
func (m *Messenger) Search(query string) {
	trimmed := strings.TrimSpace(query)

	m.mu.Lock()
	if m.touchLocked() != nil {
		m.mu.Unlock()
		return
	}
	m.searchQuery = query
	m.searchGen++
	gen := m.searchGen

	if utf8.RuneCountInString(trimmed) < constant.MinSearchQueryLength {
		m.searchResults = nil
		m.mu.Unlock()

		m.debouncer.Cancel()
		metrics.RecordUserSearch("skipped")
		m.publishSearch(query, nil)
		return
	}
	m.mu.Unlock()

	m.debouncer.Schedule(func() {
		m.runSearch(gen, query, trimmed)
	})
}

func (m *Messenger) runSearch(gen uint64, query, trimmed string) {
	ctx, cancel := context.WithTimeout(m.ctx, m.opts.SearchTimeout)
	defer cancel()

	metrics.RecordUserSearch("sent")
	results, err := m.api.SearchUsers(ctx, m.token(), trimmed)
	if err != nil {
		slog.Error("Failed to search users", "error", err, "sessionID", m.SessionID())
		results = nil
	}

	m.mu.Lock()
	if gen != m.searchGen || m.closed {
		m.mu.Unlock()
		metrics.RecordStaleResponse("search")
		return
	}
	m.searchResults = results
	m.mu.Unlock()

	m.publishSearch(query, results)
}

// StartConversation greets userID, which creates the conversation on the
// marketplace side, then clears the search and reloads the list.
func (m *Messenger) StartConversation(ctx context.Context, userID string) (*model.ConversationResponse, error) {
	m.mu.Lock()
	if err := m.touchLocked(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.mu.Unlock()

	err := m.api.SendMessage(ctx, m.token(), model.SendMessageRequest{
		RecipientID: userID,
		Content:     constant.GreetingMessage,
	})
	if err != nil {
		slog.Warn("Failed to start conversation", "error", err, "userID", userID, "sessionID", m.SessionID())
		m.alert(err)
		return nil, err
	}

	m.debouncer.Cancel()
	m.mu.Lock()
	m.searchGen++
	m.searchQuery = ""
	m.searchResults = nil
	m.mu.Unlock()
	m.publishSearch("", nil)

	if err := m.LoadConversations(ctx); err != nil {
		// The greeting went out; the refresh failure is already logged.
		return nil, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.conversations {
		if m.conversations[i].Other.ID == userID {
			conversation := m.conversations[i]
			return &conversation, nil
		}
	}
	return nil, nil
}

func (m *Messenger) SetDraft(content string) {
	m.mu.Lock()
	if m.touchLocked() != nil {
		m.mu.Unlock()
		return
	}
	m.draft = content
	m.mu.Unlock()

	m.publish(websocket.EventDraftUpdated, map[string]string{"draft": content}, "")
}

func (m *Messenger) SendDraft(ctx context.Context) error {
	m.mu.Lock()
	draft := m.draft
	m.mu.Unlock()

	return m.Send(ctx, draft)
}

// SubmitKey sends the draft on Enter. Shift+Enter and other keys are left to
// the input.
func (m *Messenger) SubmitKey(ctx context.Context, key string, shift bool) (bool, error) {
	if key != "Enter" || shift {
		return false, nil
	}
	return true, m.SendDraft(ctx)
}

// Send posts content to the selected conversation. Blank content, no
// selection, or a send already in flight make it a no-op. On failure the
// draft keeps content for a retry.
func (m *Messenger) Send(ctx context.Context, content string) error {
	m.mu.Lock()
	if err := m.touchLocked(); err != nil {
		m.mu.Unlock()
		return err
	}
	if strings.TrimSpace(content) == "" || m.selected == "" {
		m.mu.Unlock()
		return ErrNothingToSend
	}
	if m.sending {
		m.mu.Unlock()
		return ErrSendInFlight
	}
	m.sending = true
	m.draft = content
	conversationID := m.selected
	req := model.SendMessageRequest{
		ConversationID: conversationID,
		RecipientID:    m.recipientLocked(conversationID),
		Content:        content,
	}
	m.mu.Unlock()

	m.publishState()

	err := m.api.SendMessage(ctx, m.token(), req)

	m.mu.Lock()
	m.sending = false
	if err != nil {
		m.mu.Unlock()
		slog.Warn("Failed to send message", "error", err, "conversationID", conversationID, "sessionID", m.SessionID())
		metrics.RecordMessageSent("failed")
		m.publishState()
		m.alert(err)
		return err
	}
	metrics.RecordMessageSent("sent")
	if m.draft == content {
		m.draft = ""
	}
	draft := m.draft
	stillSelected := m.selected == conversationID
	m.mu.Unlock()

	m.publish(websocket.EventDraftUpdated, map[string]string{"draft": draft}, "")

	if stillSelected {
		m.LoadMessages(ctx, conversationID)
	} else {
		m.publishState()
	}
	m.LoadConversations(ctx)
	return nil
}

func (m *Messenger) recipientLocked(conversationID string) string {
	for _, c := range m.conversations {
		if c.ConversationID == conversationID {
			return c.Other.ID
		}
	}
	return ""
}

// Snapshot returns a copy of the widget state.
func (m *Messenger) Snapshot() model.MessengerState {
	m.mu.Lock()
	defer m.mu.Unlock()

	conversations := make([]model.ConversationResponse, len(m.conversations))
	copy(conversations, m.conversations)

	results := make([]model.UserSearchResult, len(m.searchResults))
	copy(results, m.searchResults)

	return model.MessengerState{
		Status:               string(m.status),
		Conversations:        conversations,
		SelectedConversation: m.selected,
		Messages:             m.messageViewsLocked(),
		SearchQuery:          m.searchQuery,
		SearchResults:        results,
		Draft:                m.draft,
		Sending:              m.sending,
	}
}

// messageViewsLocked keeps the order returned by the API.
func (m *Messenger) messageViewsLocked() []model.MessageView {
	now := m.opts.Now()
	views := make([]model.MessageView, 0, len(m.messages))
	for _, msg := range m.messages {
		views = append(views, model.MessageView{
			MessageResponse: msg,
			IsMine:          msg.SenderID != "" && msg.SenderID == m.session.UserID,
			DisplayTime:     helper.FormatAPITime(msg.CreatedAt, now),
		})
	}
	return views
}

func (m *Messenger) scheduleScroll(conversationID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	if m.scrollTimer != nil {
		m.scrollTimer.Stop()
	}
	m.scrollTimer = time.AfterFunc(m.opts.ScrollDelay, func() {
		m.mu.Lock()
		current := m.selected == conversationID && !m.closed
		m.mu.Unlock()

		if current {
			m.publish(websocket.EventScroll, map[string]string{"target": "latest"}, conversationID)
		}
	})
}

func (m *Messenger) alert(err error) {
	m.publish(websocket.EventAlert, map[string]string{"message": adapter.UserMessage(err)}, "")
}

func (m *Messenger) publishState() {
	m.mu.Lock()
	payload := map[string]interface{}{
		"status":                   string(m.status),
		"selected_conversation_id": m.selected,
		"sending":                  m.sending,
	}
	conversationID := m.selected
	m.mu.Unlock()

	m.publish(websocket.EventStateChanged, payload, conversationID)
}

func (m *Messenger) publishSearch(query string, results []model.UserSearchResult) {
	if results == nil {
		results = []model.UserSearchResult{}
	}
	m.publish(websocket.EventSearchUpdated, map[string]interface{}{
		"query":   query,
		"results": results,
	}, "")
}

func (m *Messenger) publish(eventType websocket.EventType, payload interface{}, conversationID string) {
	if m.sink == nil {
		return
	}
	m.sink.BroadcastToSession(m.session.ID, websocket.Event{
		Type:    eventType,
		Payload: payload,
		Meta: &websocket.EventMeta{
			Timestamp:      m.opts.Now().UnixMilli(),
			ConversationID: conversationID,
		},
	})
}
