package model

type ParticipantDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
	AvatarURL  string `json:"avatar_url,omitempty"`
}

type ConversationResponse struct {
	ConversationID string         `json:"conversation_id"`
	Other          ParticipantDTO `json:"other_participant"`

	// Preview of the last message in the conversation
	LastMessageContent string `json:"last_message_content"`

	// RFC3339 timestamp of the last message, empty for a conversation without messages
	LastMessageAt string `json:"last_message_at,omitempty"`

	UnreadCount int `json:"unread_count"`
}

type StartConversationRequest struct {
	UserID string `json:"user_id" validate:"required"`
}
