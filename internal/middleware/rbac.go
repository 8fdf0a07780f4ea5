package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gradepro/gradepro-web/internal/utils"
)

// RequireRole lets the request through only when the resolved session holds one
// of roles. It must run after SessionAuth.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		if normalized := normalizeRole(role); normalized != "" {
			allowed[normalized] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		sess, ok := SessionFromContext(c)
		if !ok || normalizeRole(sess.Role) == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}
		if _, ok := allowed[normalizeRole(sess.Role)]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "your role cannot access this page")
		}
		return c.Next()
	}
}

func normalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}
