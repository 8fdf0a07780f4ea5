package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gradepro/gradepro-web/internal/dto"
	"github.com/gradepro/gradepro-web/internal/service"
	"github.com/gradepro/gradepro-web/internal/utils"
)

// StudentHandler serves the student dashboard, grades and revaluations.
type StudentHandler struct {
	students     service.StudentService
	revaluations service.RevaluationService
	logger       zerolog.Logger
}

// NewStudentHandler builds a student handler.
func NewStudentHandler(students service.StudentService, revaluations service.RevaluationService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		students:     students,
		revaluations: revaluations,
		logger:       logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches the student routes. limiter guards revaluation submission.
func (h *StudentHandler) Register(router fiber.Router, limiter fiber.Handler) {
	if limiter == nil {
		limiter = func(c *fiber.Ctx) error { return c.Next() }
	}
	router.Get("/dashboard", h.dashboard)
	router.Get("/grades", h.grades)
	router.Get("/revaluations", h.listRevaluations)
	router.Post("/revaluations", limiter, h.createRevaluation)
}

func (h *StudentHandler) dashboard(c *fiber.Ctx) error {
	sess, ok := currentSession(c)
	if !ok {
		return nil
	}

	dashboard, err := h.students.Dashboard(c.UserContext(), sess)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}

func (h *StudentHandler) grades(c *fiber.Ctx) error {
	sess, ok := currentSession(c)
	if !ok {
		return nil
	}

	grades, err := h.students.Grades(c.UserContext(), sess)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "grades retrieved", grades)
}

func (h *StudentHandler) listRevaluations(c *fiber.Ctx) error {
	sess, ok := currentSession(c)
	if !ok {
		return nil
	}

	requests, err := h.revaluations.List(c.UserContext(), sess)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "revaluation requests retrieved", requests)
}

func (h *StudentHandler) createRevaluation(c *fiber.Ctx) error {
	sess, ok := currentSession(c)
	if !ok {
		return nil
	}

	var payload dto.RevaluationCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	request, err := h.revaluations.Create(c.UserContext(), sess, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "revaluation requested", request)
}
