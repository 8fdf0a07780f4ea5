package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/gradepro/gradepro-web/internal/dto"
	"github.com/gradepro/gradepro-web/internal/grading"
	"github.com/gradepro/gradepro-web/internal/models"
)

// AnalyticsService builds the faculty analytics page.
type AnalyticsService interface {
	Summary(ctx context.Context, sess models.Session) (dto.AnalyticsResponse, error)
}

type analyticsService struct {
	backend SubmissionBackend
	logger  zerolog.Logger
	now     func() time.Time
}

// NewAnalyticsService constructs the analytics service.
func NewAnalyticsService(backend SubmissionBackend, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		backend: backend,
		logger:  logger.With().Str("component", "analytics_service").Logger(),
		now:     time.Now,
	}
}

func (s *analyticsService) Summary(ctx context.Context, sess models.Session) (dto.AnalyticsResponse, error) {
	tracer := otel.Tracer("github.com/gradepro/gradepro-web/internal/service/analytics")
	ctx, span := tracer.Start(ctx, "analytics.summary")
	defer span.End()

	submissions, err := s.backend.ListFacultySubmissions(ctx, sess.Token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submissions_fetch_failed")
		return dto.AnalyticsResponse{}, err
	}

	perAssignment := groupByAssignment(submissions)
	span.SetAttributes(
		attribute.Int("analytics.submissions", len(submissions)),
		attribute.Int("analytics.assignments", len(perAssignment)),
	)

	return dto.AnalyticsResponse{
		Summary:      grading.Aggregate(submissions),
		Distribution: grading.Distribution(submissions),
		Assignments:  perAssignment,
		GeneratedAt:  s.now().UTC(),
	}, nil
}

// groupByAssignment summarizes submissions per assignment in first-seen order.
func groupByAssignment(submissions []models.Submission) []dto.AssignmentAnalytics {
	order := make([]string, 0)
	groups := make(map[string][]models.Submission)
	refs := make(map[string]models.AssignmentRef)

	for _, submission := range submissions {
		id := submission.Assignment.ID
		if _, ok := groups[id]; !ok {
			order = append(order, id)
			refs[id] = submission.Assignment
		}
		groups[id] = append(groups[id], submission)
	}

	result := make([]dto.AssignmentAnalytics, 0, len(order))
	for _, id := range order {
		ref := refs[id]
		result = append(result, dto.AssignmentAnalytics{
			AssignmentID: id,
			Title:        ref.Title,
			MaxMarks:     ref.MaxMarks,
			Summary:      grading.Aggregate(groups[id]),
		})
	}
	return result
}
