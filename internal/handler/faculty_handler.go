package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gradepro/gradepro-web/internal/dto"
	"github.com/gradepro/gradepro-web/internal/service"
	"github.com/gradepro/gradepro-web/internal/utils"
)

// FacultyInsightsHandler serves analytics and plagiarism reports.
type FacultyInsightsHandler struct {
	analytics  service.AnalyticsService
	plagiarism service.PlagiarismService
	logger     zerolog.Logger
}

// NewFacultyInsightsHandler builds the handler.
func NewFacultyInsightsHandler(analytics service.AnalyticsService, plagiarism service.PlagiarismService, logger zerolog.Logger) *FacultyInsightsHandler {
	return &FacultyInsightsHandler{
		analytics:  analytics,
		plagiarism: plagiarism,
		logger:     logger.With().Str("component", "faculty_insights_handler").Logger(),
	}
}

// Register attaches /analytics and /plagiarism to the faculty group.
func (h *FacultyInsightsHandler) Register(router fiber.Router) {
	router.Get("/analytics", h.analyticsSummary)
	router.Get("/plagiarism", h.plagiarismReports)
}

func (h *FacultyInsightsHandler) analyticsSummary(c *fiber.Ctx) error {
	sess, ok := currentSession(c)
	if !ok {
		return nil
	}

	summary, err := h.analytics.Summary(c.UserContext(), sess)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "analytics retrieved", summary)
}

func (h *FacultyInsightsHandler) plagiarismReports(c *fiber.Ctx) error {
	sess, ok := currentSession(c)
	if !ok {
		return nil
	}

	var query dto.PlagiarismQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	reports, err := h.plagiarism.List(c.UserContext(), sess, query)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccessWithMeta(c, "plagiarism reports retrieved", reports, fiber.Map{"count": len(reports)})
}
