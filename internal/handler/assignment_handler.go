package handler

import (
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gradepro/gradepro-web/internal/dto"
	"github.com/gradepro/gradepro-web/internal/service"
	"github.com/gradepro/gradepro-web/internal/utils"
)

const attachmentField = "attachment"

// AssignmentHandler exposes assignment routes.
type AssignmentHandler struct {
	service service.AssignmentService
	logger  zerolog.Logger
}

// NewAssignmentHandler builds an assignment handler instance.
func NewAssignmentHandler(service service.AssignmentService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: service,
		logger:  logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches the faculty CRUD routes.
func (h *AssignmentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

// RegisterReadOnly attaches the listing route only.
func (h *AssignmentHandler) RegisterReadOnly(router fiber.Router) {
	router.Get("", h.list)
}

func (h *AssignmentHandler) list(c *fiber.Ctx) error {
	sess, ok := currentSession(c)
	if !ok {
		return nil
	}

	assignments, err := h.service.List(c.UserContext(), sess)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *AssignmentHandler) create(c *fiber.Ctx) error {
	sess, ok := currentSession(c)
	if !ok {
		return nil
	}

	var payload dto.AssignmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.service.Create(c.UserContext(), sess, payload, attachment(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment created", assignment)
}

func (h *AssignmentHandler) update(c *fiber.Ctx) error {
	sess, ok := currentSession(c)
	if !ok {
		return nil
	}

	var payload dto.AssignmentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.service.Update(c.UserContext(), sess, c.Params("id"), payload, attachment(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assignment updated", assignment)
}

func (h *AssignmentHandler) delete(c *fiber.Ctx) error {
	sess, ok := currentSession(c)
	if !ok {
		return nil
	}

	if err := h.service.Delete(c.UserContext(), sess, c.Params("id")); err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assignment deleted", nil)
}

// attachment returns the optional uploaded file of a multipart request.
func attachment(c *fiber.Ctx) *multipart.FileHeader {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil
	}
	file, err := c.FormFile(attachmentField)
	if err != nil {
		return nil
	}
	return file
}
