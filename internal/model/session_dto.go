package model

import "time"

// Session is the signed-in browser's view of the marketplace. Token is the
// backend bearer token and never leaves the server.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateSessionRequest struct {
	Token string `json:"token" validate:"required"`
}

type SessionResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}
