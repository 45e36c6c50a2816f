package model

type MessageResponse struct {
	ID        string `json:"id"`
	SenderID  string `json:"sender_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	Read      bool   `json:"read"`
}

// SendMessageRequest is the body of the marketplace's direct-message endpoint.
// A first message to a user carries only RecipientID.
type SendMessageRequest struct {
	RecipientID    string `json:"recipient_id,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	Content        string `json:"content" validate:"not_blank,max=4000"`
}

type SendDraftRequest struct {
	Content *string `json:"content"`
}

type UpdateDraftRequest struct {
	Content string `json:"content" validate:"max=4000"`
}

type KeyPressRequest struct {
	Key   string `json:"key" validate:"required"`
	Shift bool   `json:"shift"`
}

// MessageView is a message as rendered in the thread.
type MessageView struct {
	MessageResponse
	IsMine      bool   `json:"is_mine"`
	DisplayTime string `json:"display_time"`
}
