package model

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email,afrilance_email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type AdminLoginAPIResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        AdminUserDTO `json:"user"`
}

type AdminUserDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type AdminLoginResponse struct {
	SessionID string       `json:"session_id"`
	User      AdminUserDTO `json:"user"`
}

type AdminRegistrationRequest struct {
	FullName string `json:"full_name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email,afrilance_email"`
	Reason   string `json:"reason" validate:"required,not_blank,max=1000"`
}

type AdminRegistrationResponse struct {
	Message string `json:"message"`
}
