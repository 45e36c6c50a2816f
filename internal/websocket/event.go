package websocket

type EventType string

const (
	EventConversationsUpdated EventType = "conversations.updated"
	EventMessagesUpdated      EventType = "messages.updated"
	EventSearchUpdated        EventType = "search.updated"
	EventStateChanged         EventType = "state.changed"
	EventDraftUpdated         EventType = "draft.updated"
	EventScroll               EventType = "scroll"
	EventAlert                EventType = "alert"

	EventSessionEnded EventType = "session.ended"
)

type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
	Meta    *EventMeta  `json:"meta,omitempty"`
}

type EventMeta struct {
	Timestamp      int64  `json:"timestamp"`
	ConversationID string `json:"conversation_id,omitempty"`
}
