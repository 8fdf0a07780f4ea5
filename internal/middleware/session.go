package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gradepro/gradepro-web/internal/models"
	"github.com/gradepro/gradepro-web/internal/session"
	"github.com/gradepro/gradepro-web/internal/utils"
)

// SessionCookie is the cookie carrying the session id for browser clients.
const SessionCookie = "gradepro_session"

const sessionLocal = "session"

// SessionResolver loads a live session by id.
type SessionResolver interface {
	Resolve(ctx context.Context, id string) (models.Session, error)
}

// SessionAuth resolves the session named by the bearer header or cookie and
// exposes it to downstream handlers.
func SessionAuth(resolver SessionResolver, logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := SessionIDFromRequest(c)
		if id == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}

		sess, err := resolver.Resolve(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return utils.SendError(c, fiber.StatusUnauthorized, "session expired, please sign in again")
			}
			logger.Error().Err(err).Str("correlation_id", GetCorrelationID(c)).Msg("failed to resolve session")
			return utils.SendError(c, fiber.StatusServiceUnavailable, "session store unavailable")
		}

		c.Locals(sessionLocal, sess)
		c.Locals("user_id", sess.UserID)

		return c.Next()
	}
}

// SessionIDFromRequest reads the session id from "Authorization: Bearer" or the session cookie.
func SessionIDFromRequest(c *fiber.Ctx) string {
	authorization := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	const bearer = "bearer "
	if len(authorization) > len(bearer) && strings.EqualFold(authorization[:len(bearer)], bearer) {
		return strings.TrimSpace(authorization[len(bearer):])
	}
	return strings.TrimSpace(c.Cookies(SessionCookie))
}

// SessionFromContext returns the session attached by SessionAuth.
func SessionFromContext(c *fiber.Ctx) (models.Session, bool) {
	sess, ok := c.Locals(sessionLocal).(models.Session)
	return sess, ok
}
