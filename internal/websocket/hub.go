package websocket

import (
	"AfrilanceWeb/internal/metrics"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

type Hub struct {
	clients        map[*Client]bool
	sessionClients map[string]map[*Client]bool
	Register       chan *Client
	Unregister     chan *Client
	quit           chan struct{}

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Register:       make(chan *Client),
		Unregister:     make(chan *Client),
		quit:           make(chan struct{}),
		clients:        make(map[*Client]bool),
		sessionClients: make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			if _, ok := h.sessionClients[client.SessionID]; !ok {
				h.sessionClients[client.SessionID] = make(map[*Client]bool)
			}
			h.sessionClients[client.SessionID][client] = true
			h.mu.Unlock()
			metrics.WebsocketConnections.Inc()

		case client := <-h.Unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				h.removeLocked(client)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.quit)
}

func (h *Hub) removeLocked(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)
	metrics.WebsocketConnections.Dec()

	if set, ok := h.sessionClients[client.SessionID]; ok {
		delete(set, client)
		if len(set) == 0 {
			delete(h.sessionClients, client.SessionID)
		}
	}
}

// BroadcastToSession delivers event to every socket opened by the session.
// A client whose buffer is full is dropped.
func (h *Hub) BroadcastToSession(sessionID string, event Event) {
	if event.Meta == nil {
		event.Meta = &EventMeta{}
	}
	if event.Meta.Timestamp == 0 {
		event.Meta.Timestamp = time.Now().UnixMilli()
	}

	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal event", "error", err, "type", event.Type)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.sessionClients[sessionID] {
		select {
		case client.Send <- data:
		default:
			slog.Warn("Dropping slow websocket client", "sessionID", sessionID)
			go h.unregister(client)
		}
	}
}

// DisconnectSession closes every socket of a signed-out session.
func (h *Hub) DisconnectSession(sessionID string) {
	h.BroadcastToSession(sessionID, Event{Type: EventSessionEnded})

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.sessionClients[sessionID]))
	for client := range h.sessionClients[sessionID] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		go h.unregister(client)
	}
}

func (h *Hub) SessionClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessionClients[sessionID])
}

func (h *Hub) unregister(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.quit:
	}
}
