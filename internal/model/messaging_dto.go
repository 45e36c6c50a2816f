package model

// MessengerState is a snapshot of one session's messaging widget.
type MessengerState struct {
	Status               string                 `json:"status"`
	Conversations        []ConversationResponse `json:"conversations"`
	SelectedConversation string                 `json:"selected_conversation_id,omitempty"`
	Messages             []MessageView          `json:"messages"`
	SearchQuery          string                 `json:"search_query"`
	SearchResults        []UserSearchResult     `json:"search_results"`
	Draft                string                 `json:"draft"`
	Sending              bool                   `json:"sending"`
}
