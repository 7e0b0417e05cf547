package auth

import "github.com/centung-app/auth-api/internal/types"

// RegisterRequest represents the register request body
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body. The identifier matches
// either username or email; "email" is accepted as an alias for clients
// that only send an email address.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// LoginResponse represents the login response body
type LoginResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    types.UserSummary `json:"user"`
}
