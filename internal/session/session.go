package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gradepro/gradepro-web/internal/models"
)

var (
	// ErrNotFound indicates the session does not exist or has expired.
	ErrNotFound = errors.New("session not found")
	// ErrInvalidToken indicates the backend token failed signature or claim checks.
	ErrInvalidToken = errors.New("invalid backend token")
	// ErrUnsupportedRole indicates the backend issued a role the gateway does not serve.
	ErrUnsupportedRole = errors.New("unsupported role")
)

// Store persists sessions.
type Store interface {
	Save(ctx context.Context, sess models.Session) error
	Get(ctx context.Context, id string) (models.Session, error)
	Delete(ctx context.Context, id string) error
}

// Authenticator exchanges credentials for a backend token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (models.LoginResult, error)
}

// Config tunes session lifetimes and token checks.
type Config struct {
	TTL time.Duration
	// TokenSecret verifies backend tokens when set; otherwise claims are read unverified.
	TokenSecret string
}

// Manager owns the login/logout lifecycle.
type Manager struct {
	auth   Authenticator
	store  Store
	ttl    time.Duration
	secret string
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

// NewManager wires a session manager.
func NewManager(auth Authenticator, store Store, cfg Config, logger zerolog.Logger) *Manager {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &Manager{
		auth:   auth,
		store:  store,
		ttl:    ttl,
		secret: cfg.TokenSecret,
		logger: logger.With().Str("component", "session_manager").Logger(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Login authenticates against the backend and opens a session.
func (m *Manager) Login(ctx context.Context, email, password string) (models.Session, error) {
	result, err := m.auth.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return models.Session{}, err
	}

	claims, err := ParseClaims(result.Token, m.secret)
	if err != nil {
		if m.secret != "" {
			return models.Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		m.logger.Debug().Err(err).Msg("backend token is not a readable jwt, using login payload")
	}

	now := m.now()
	sess := models.Session{
		ID:        m.newID(),
		UserID:    firstNonEmpty(claims.Subject, result.User.ID),
		Name:      result.User.Name,
		Email:     result.User.Email,
		Role:      strings.ToLower(firstNonEmpty(claims.Role, result.User.Role)),
		Token:     result.Token,
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
	}
	if !claims.ExpiresAt.IsZero() && claims.ExpiresAt.Before(sess.ExpiresAt) {
		sess.ExpiresAt = claims.ExpiresAt
	}

	switch sess.Role {
	case models.RoleFaculty, models.RoleTA, models.RoleStudent:
	default:
		return models.Session{}, fmt.Errorf("%w: %q", ErrUnsupportedRole, sess.Role)
	}

	if sess.UserID == "" {
		return models.Session{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	if !sess.ExpiresAt.After(now) {
		return models.Session{}, fmt.Errorf("%w: token already expired", ErrInvalidToken)
	}

	if err := m.store.Save(ctx, sess); err != nil {
		return models.Session{}, fmt.Errorf("failed to store session: %w", err)
	}

	m.logger.Info().Str("user_id", sess.UserID).Str("role", sess.Role).Msg("session opened")

	return sess, nil
}

// Resolve returns a live session. Expired sessions are removed and reported as ErrNotFound.
func (m *Manager) Resolve(ctx context.Context, id string) (models.Session, error) {
	if strings.TrimSpace(id) == "" {
		return models.Session{}, ErrNotFound
	}

	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return models.Session{}, err
	}

	if sess.IsExpired(m.now()) {
		if err := m.store.Delete(ctx, id); err != nil {
			m.logger.Warn().Err(err).Msg("failed to delete expired session")
		}
		return models.Session{}, ErrNotFound
	}

	return sess, nil
}

// Logout closes a session. Closing an unknown session is not an error.
func (m *Manager) Logout(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
