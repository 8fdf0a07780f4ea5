package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gradepro/gradepro-web/internal/dto"
	"github.com/gradepro/gradepro-web/internal/middleware"
	"github.com/gradepro/gradepro-web/internal/service"
	"github.com/gradepro/gradepro-web/internal/utils"
)

// AuthHandler manages the login lifecycle.
type AuthHandler struct {
	service      service.AuthService
	secureCookie bool
	logger       zerolog.Logger
}

// NewAuthHandler builds an auth handler. secureCookie marks the session cookie HTTPS-only.
func NewAuthHandler(service service.AuthService, secureCookie bool, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:      service,
		secureCookie: secureCookie,
		logger:       logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches the routes. sessionAuth guards logout and me; limiter guards login.
func (h *AuthHandler) Register(router fiber.Router, sessionAuth, limiter fiber.Handler) {
	if limiter == nil {
		limiter = func(c *fiber.Ctx) error { return c.Next() }
	}
	router.Post("/login", limiter, h.login)
	router.Post("/logout", sessionAuth, h.logout)
	router.Get("/me", sessionAuth, h.me)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	sess, err := h.service.Login(c.UserContext(), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return utils.SendSuccess(c, "signed in", dto.NewSessionResponse(sess, true))
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	sess, ok := currentSession(c)
	if !ok {
		return nil
	}

	if err := h.service.Logout(c.UserContext(), sess.ID); err != nil {
		return respondError(c, h.logger, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return utils.SendSuccess(c, "signed out", nil)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	sess, ok := currentSession(c)
	if !ok {
		return nil
	}
	return utils.SendSuccess(c, "session retrieved", dto.NewSessionResponse(sess, false))
}
