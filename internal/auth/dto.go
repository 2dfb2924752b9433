package auth

import (
	"github.com/marocvoyages/marocvoyages-backend/internal/users"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the token and user produced by a successful login.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}

// SessionInfo describes the authenticated user behind a live token.
type SessionInfo struct {
	User *users.UserDTO `json:"user"`
}
