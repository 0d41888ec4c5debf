package response

import "github.com/bigbull/event-ticket-api/internal/domain"

type AdminLoginResponse struct {
	Token string `json:"token"`
}

type AdminCheckResponse struct {
	Exists   bool   `json:"exists"`
	Username string `json:"username,omitempty"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type UserResponse struct {
	Success bool        `json:"success"`
	User    domain.User `json:"user"`
}

type UserListResponse struct {
	Success bool          `json:"success"`
	Users   []domain.User `json:"users"`
}
