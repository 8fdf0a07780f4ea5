package service

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gradepro/gradepro-web/internal/backend"
	"github.com/gradepro/gradepro-web/internal/dto"
	"github.com/gradepro/gradepro-web/internal/models"
)

// SessionManager is implemented by session.Manager.
type SessionManager interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Logout(ctx context.Context, id string) error
}

// AuthService opens and closes gateway sessions.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (models.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	sessions  SessionManager
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuthService constructs the auth service.
func NewAuthService(sessions SessionManager, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		sessions:  sessions,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (models.Session, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Session{}, err
	}

	sess, err := s.sessions.Login(ctx, payload.Email, payload.Password)
	if err != nil {
		switch backend.StatusOf(err) {
		case http.StatusUnauthorized, http.StatusNotFound:
			s.logger.Info().Str("email", payload.Email).Msg("login rejected by backend")
			return models.Session{}, ErrInvalidCredentials
		}
		return models.Session{}, err
	}

	return sess, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Logout(ctx, sessionID)
}
