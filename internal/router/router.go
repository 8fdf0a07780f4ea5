package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gradepro/gradepro-web/internal/config"
	"github.com/gradepro/gradepro-web/internal/handler"
	"github.com/gradepro/gradepro-web/internal/middleware"
	"github.com/gradepro/gradepro-web/internal/models"
	"github.com/gradepro/gradepro-web/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler            *handler.AuthHandler
	SubmissionHandler      *handler.SubmissionHandler
	AssignmentHandler      *handler.AssignmentHandler
	CourseHandler          *handler.CourseHandler
	FacultyInsightsHandler *handler.FacultyInsightsHandler
	StudentHandler         *handler.StudentHandler
	SessionMiddleware      fiber.Handler
	LoginLimiter           fiber.Handler
	RevaluationLimiter     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	sessionAuth := deps.SessionMiddleware
	if sessionAuth == nil {
		sessionAuth = func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"), sessionAuth, deps.LoginLimiter)
	}

	// Teaching assistants grade; faculty may use the same pages.
	ta := api.Group("/ta", sessionAuth, middleware.RequireRole(models.RoleTA, models.RoleFaculty))
	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(ta.Group("/submissions"))
	}

	faculty := api.Group("/faculty", sessionAuth, middleware.RequireRole(models.RoleFaculty))
	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.RegisterFaculty(faculty.Group("/submissions"))
	}
	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.Register(faculty.Group("/assignments"))
	}
	if deps.CourseHandler != nil {
		deps.CourseHandler.Register(faculty.Group("/courses"))
	}
	if deps.FacultyInsightsHandler != nil {
		deps.FacultyInsightsHandler.Register(faculty)
	}

	student := api.Group("/student", sessionAuth, middleware.RequireRole(models.RoleStudent))
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(student, deps.RevaluationLimiter)
	}
	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.RegisterReadOnly(student.Group("/assignments"))
	}
}
