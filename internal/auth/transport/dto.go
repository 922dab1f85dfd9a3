// Package transport defines request and response DTOs for the auth API.
package transport

import "agentportal_backend/internal/auth/repository"

// RegisterRequest creates a new agent account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest signs an agent in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse returns the account with its access token.
type AuthResponse struct {
	Agent       repository.Agent `json:"agent"`
	AccessToken string           `json:"accessToken"`
}
