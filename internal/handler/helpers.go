package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gradepro/gradepro-web/internal/backend"
	"github.com/gradepro/gradepro-web/internal/grading"
	"github.com/gradepro/gradepro-web/internal/middleware"
	"github.com/gradepro/gradepro-web/internal/models"
	"github.com/gradepro/gradepro-web/internal/service"
	"github.com/gradepro/gradepro-web/internal/session"
	"github.com/gradepro/gradepro-web/internal/utils"
)

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// currentSession returns the session attached by the session middleware, or
// writes a 401 and returns ok=false.
func currentSession(c *fiber.Ctx) (models.Session, bool) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		_ = utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}
	return sess, ok
}

func validationDetails(validationErrors validator.ValidationErrors) []FieldError {
	details := make([]FieldError, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details = append(details, FieldError{
			Field: fieldErr.Field(),
			Rule:  fieldErr.Tag(),
			Param: fieldErr.Param(),
		})
	}
	return details
}

// respondError maps service, grading and backend errors onto HTTP responses.
func respondError(c *fiber.Ctx, base zerolog.Logger, err error) error {
	var (
		validationErrors validator.ValidationErrors
		backendErr       *backend.Error
	)

	switch {
	case errors.As(err, &validationErrors):
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", validationDetails(validationErrors))
	case errors.Is(err, grading.ErrGradingIDRequired), errors.Is(err, grading.ErrReasonRequired):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, grading.ErrRevaluationNotEligible):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, grading.ErrInvalidArgument):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, "assignment has no valid max marks")
	case errors.Is(err, service.ErrScoreExceedsMax),
		errors.Is(err, service.ErrInvalidGradeLetter),
		errors.Is(err, service.ErrInvalidDueDate),
		errors.Is(err, service.ErrUnsupportedFileType):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAttachmentTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, service.ErrUploadsDisabled):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrSubmissionNotFound),
		errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrCourseNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, session.ErrUnsupportedRole):
		return utils.SendError(c, fiber.StatusForbidden, "this account role cannot use GradePro web")
	case errors.As(err, &backendErr):
		return respondBackendError(c, base, backendErr)
	case errors.Is(err, context.DeadlineExceeded):
		return utils.SendError(c, fiber.StatusGatewayTimeout, "grading service timed out")
	case errors.Is(err, backend.ErrUnavailable),
		errors.Is(err, backend.ErrInvalidResponse),
		errors.Is(err, session.ErrInvalidToken):
		requestLogger(base, c).Warn().Err(err).Msg("backend call failed")
		return utils.SendError(c, fiber.StatusBadGateway, "grading service unavailable")
	default:
		requestLogger(base, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

func respondBackendError(c *fiber.Ctx, base zerolog.Logger, err *backend.Error) error {
	message := err.Message
	if message == "" {
		message = http.StatusText(err.Status)
	}

	switch err.Status {
	case fiber.StatusUnauthorized:
		return utils.SendError(c, fiber.StatusUnauthorized, "session expired, please sign in again")
	case fiber.StatusBadRequest, fiber.StatusForbidden, fiber.StatusNotFound, fiber.StatusConflict, fiber.StatusUnprocessableEntity:
		return utils.SendError(c, err.Status, message)
	default:
		requestLogger(base, c).Warn().Int("backend_status", err.Status).Str("path", err.Path).Msg("backend returned an error")
		return utils.SendError(c, fiber.StatusBadGateway, "grading service error")
	}
}
