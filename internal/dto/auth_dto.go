package dto

import (
	"time"

	"github.com/gradepro/gradepro-web/internal/models"
)

// LoginRequest carries the credentials forwarded to the backend.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse describes the signed-in user. SessionID is only set on login.
type SessionResponse struct {
	SessionID string    `json:"session_id,omitempty"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewSessionResponse converts a session without exposing the backend token.
func NewSessionResponse(sess models.Session, includeID bool) SessionResponse {
	response := SessionResponse{
		UserID:    sess.UserID,
		Name:      sess.Name,
		Email:     sess.Email,
		Role:      sess.Role,
		ExpiresAt: sess.ExpiresAt,
	}
	if includeID {
		response.SessionID = sess.ID
	}
	return response
}
