package model

type UserSearchResult struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
	AvatarURL  string `json:"avatar_url,omitempty"`
}

type SearchUsersRequest struct {
	Query string `json:"query" validate:"max=100"`
}
