package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/gradepro/gradepro-web/internal/dto"
	"github.com/gradepro/gradepro-web/internal/grading"
	"github.com/gradepro/gradepro-web/internal/models"
)

const (
	dashboardUpcomingLimit = 5
	dashboardRecentLimit   = 5
)

// StudentService backs the student dashboard and grade pages.
type StudentService interface {
	Grades(ctx context.Context, sess models.Session) (dto.StudentGradesResponse, error)
	Dashboard(ctx context.Context, sess models.Session) (dto.StudentDashboardResponse, error)
}

type studentService struct {
	backend StudentBackend
	logger  zerolog.Logger
	now     func() time.Time
}

// NewStudentService constructs the student service.
func NewStudentService(backend StudentBackend, logger zerolog.Logger) StudentService {
	return &studentService{
		backend: backend,
		logger:  logger.With().Str("component", "student_service").Logger(),
		now:     time.Now,
	}
}

func (s *studentService) Grades(ctx context.Context, sess models.Session) (dto.StudentGradesResponse, error) {
	tracer := otel.Tracer("github.com/gradepro/gradepro-web/internal/service/student")
	ctx, span := tracer.Start(ctx, "student.grades")
	span.SetAttributes(attribute.String("student.id", sess.UserID))
	defer span.End()

	grades, err := s.backend.ListStudentGrades(ctx, sess.Token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "grades_fetch_failed")
		return dto.StudentGradesResponse{}, err
	}

	return dto.StudentGradesResponse{
		Grades:  dto.NewGradeResponseSlice(grades),
		Summary: grading.AggregateGrades(grades),
	}, nil
}

func (s *studentService) Dashboard(ctx context.Context, sess models.Session) (dto.StudentDashboardResponse, error) {
	tracer := otel.Tracer("github.com/gradepro/gradepro-web/internal/service/student")
	ctx, span := tracer.Start(ctx, "student.dashboard")
	span.SetAttributes(attribute.String("student.id", sess.UserID))
	defer span.End()

	assignments, err := s.backend.ListStudentAssignments(ctx, sess.Token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "assignments_fetch_failed")
		return dto.StudentDashboardResponse{}, err
	}

	grades, err := s.backend.ListStudentGrades(ctx, sess.Token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "grades_fetch_failed")
		return dto.StudentDashboardResponse{}, err
	}

	openRevaluations, err := s.countOpenRevaluations(ctx, sess)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "revaluations_fetch_failed")
		return dto.StudentDashboardResponse{}, err
	}

	now := s.now()

	return dto.StudentDashboardResponse{
		Summary:          grading.AggregateGrades(grades),
		Upcoming:         dto.NewAssignmentResponseSlice(upcomingAssignments(assignments, now, dashboardUpcomingLimit), now),
		RecentGrades:     dto.NewGradeResponseSlice(recentGrades(grades, dashboardRecentLimit)),
		OpenRevaluations: openRevaluations,
	}, nil
}

func (s *studentService) countOpenRevaluations(ctx context.Context, sess models.Session) (int, error) {
	requests, err := s.backend.ListRevaluations(ctx, sess.Token)
	if err != nil {
		return 0, err
	}

	open := 0
	for _, request := range requests {
		status, err := grading.ParseRevaluationStatus(request.Status)
		if err != nil {
			s.logger.Warn().Str("revaluation_id", request.ID).Str("status", request.Status).Msg("skipping revaluation with unknown status")
			continue
		}
		if !status.IsTerminal() {
			open++
		}
	}

	return open, nil
}

// upcomingAssignments keeps assignments not yet past due, soonest first.
func upcomingAssignments(assignments []models.Assignment, now time.Time, limit int) []models.Assignment {
	upcoming := make([]models.Assignment, 0, len(assignments))
	for _, assignment := range assignments {
		if !assignment.IsPastDue(now) {
			upcoming = append(upcoming, assignment)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(upcoming[j].DueDate)
	})

	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// recentGrades returns the latest graded entries first. Entries without a
// grading time sort last.
func recentGrades(grades []models.Grade, limit int) []models.Grade {
	recent := append([]models.Grade(nil), grades...)
	sort.SliceStable(recent, func(i, j int) bool {
		a, b := recent[i].GradedAt, recent[j].GradedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}
