package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/gradepro/gradepro-web/internal/dto"
	"github.com/gradepro/gradepro-web/internal/events"
	"github.com/gradepro/gradepro-web/internal/grading"
	"github.com/gradepro/gradepro-web/internal/models"
)

// SubmissionReviewService backs the TA and faculty review pages.
type SubmissionReviewService interface {
	List(ctx context.Context, sess models.Session, query dto.SubmissionQuery) (dto.SubmissionListResponse, error)
	Grade(ctx context.Context, sess models.Session, submissionID string, payload dto.GradeSubmissionRequest) (dto.SubmissionResponse, error)
	Export(ctx context.Context, sess models.Session, query dto.SubmissionQuery) (GradeSheet, error)
}

type submissionReviewService struct {
	backend   SubmissionBackend
	validator *validator.Validate
	events    EventPublisher
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewSubmissionReviewService constructs the review service.
func NewSubmissionReviewService(backend SubmissionBackend, validate *validator.Validate, events EventPublisher, logger zerolog.Logger) SubmissionReviewService {
	return &submissionReviewService{
		backend:   backend,
		validator: validate,
		events:    events,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "submission_review_service").Logger(),
		now:       time.Now,
	}
}

func (s *submissionReviewService) List(ctx context.Context, sess models.Session, query dto.SubmissionQuery) (dto.SubmissionListResponse, error) {
	tracer := otel.Tracer("github.com/gradepro/gradepro-web/internal/service/submission_review")
	ctx, span := tracer.Start(ctx, "submissions.list")
	span.SetAttributes(attribute.String("session.role", sess.Role))
	defer span.End()

	all, matched, err := s.filtered(ctx, sess, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submissions_list_failed")
		return dto.SubmissionListResponse{}, err
	}

	span.SetAttributes(
		attribute.Int("submissions.total", len(all)),
		attribute.Int("submissions.matched", len(matched)),
	)

	return dto.SubmissionListResponse{
		Submissions: dto.NewSubmissionResponseSlice(matched),
		Matched:     len(matched),
		Summary:     grading.Aggregate(all),
	}, nil
}

// filtered returns every visible submission alongside the ones matching query.
func (s *submissionReviewService) filtered(ctx context.Context, sess models.Session, query dto.SubmissionQuery) ([]models.Submission, []models.Submission, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, nil, err
	}

	criteria, err := criteriaFromQuery(query)
	if err != nil {
		return nil, nil, err
	}

	all, err := s.fetch(ctx, sess)
	if err != nil {
		return nil, nil, err
	}

	return all, grading.Filter(all, criteria), nil
}

func (s *submissionReviewService) fetch(ctx context.Context, sess models.Session) ([]models.Submission, error) {
	if sess.Role == models.RoleFaculty {
		return s.backend.ListFacultySubmissions(ctx, sess.Token)
	}
	return s.backend.ListTASubmissions(ctx, sess.Token)
}

func (s *submissionReviewService) Grade(ctx context.Context, sess models.Session, submissionID string, payload dto.GradeSubmissionRequest) (dto.SubmissionResponse, error) {
	tracer := otel.Tracer("github.com/gradepro/gradepro-web/internal/service/submission_review")
	ctx, span := tracer.Start(ctx, "submissions.grade")
	span.SetAttributes(
		attribute.String("grading.submission_id", submissionID),
		attribute.String("grading.actor_id", sess.UserID),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.SubmissionResponse{}, err
	}

	submissions, err := s.fetch(ctx, sess)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission_lookup_failed")
		return dto.SubmissionResponse{}, err
	}

	submission, ok := findSubmission(submissions, submissionID)
	if !ok {
		span.SetStatus(codes.Error, "submission_not_found")
		return dto.SubmissionResponse{}, ErrSubmissionNotFound
	}

	maxMarks := submission.Assignment.MaxMarks
	score := *payload.Grade
	if _, err := grading.Percentage(score, maxMarks); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid_grade")
		return dto.SubmissionResponse{}, err
	}
	if score > maxMarks+1e-9 {
		span.SetStatus(codes.Error, "score_exceeds_max")
		return dto.SubmissionResponse{}, ErrScoreExceedsMax
	}

	feedback := strings.TrimSpace(s.sanitizer.Sanitize(payload.Feedback))

	currentFeedback := ""
	if submission.Feedback != nil {
		currentFeedback = strings.TrimSpace(*submission.Feedback)
	}
	isIdempotent := submission.Grade != nil && math.Abs(*submission.Grade-score) < 1e-6 && currentFeedback == feedback
	if isIdempotent && submission.GradedBy != nil && *submission.GradedBy == sess.UserID {
		span.SetAttributes(attribute.Bool("grading.idempotent", true))
		return dto.NewSubmissionResponse(submission), nil
	}

	updated, err := s.backend.GradeSubmission(ctx, sess.Token, submission.ID, models.GradeInput{Grade: score, Feedback: feedback})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "grade_update_failed")
		return dto.SubmissionResponse{}, err
	}

	if updated.ID == "" {
		updated = submission
		gradedAt := s.now()
		gradedBy := sess.UserID
		updated.Grade = &score
		updated.Feedback = &feedback
		updated.GradedAt = &gradedAt
		updated.GradedBy = &gradedBy
	}

	response := dto.NewSubmissionResponse(updated)
	s.publishGrade(ctx, sess, updated, response)

	span.SetAttributes(
		attribute.Float64("grading.score", score),
		attribute.String("grading.letter", string(response.Letter)),
	)

	s.logger.Info().
		Str("submission_id", updated.ID).
		Str("graded_by", sess.UserID).
		Str("letter", string(response.Letter)).
		Msg("submission graded")

	return response, nil
}

func (s *submissionReviewService) publishGrade(ctx context.Context, sess models.Session, submission models.Submission, response dto.SubmissionResponse) {
	if s.events == nil {
		return
	}

	gradedAt := s.now()
	if submission.GradedAt != nil {
		gradedAt = *submission.GradedAt
	}

	payload := events.GradeEnteredPayload{
		SubmissionID: submission.ID,
		StudentID:    submission.Student.ID,
		AssignmentID: submission.Assignment.ID,
		MaxMarks:     submission.Assignment.MaxMarks,
		Letter:       string(response.Letter),
		GradedBy:     sess.UserID,
		GradedAt:     gradedAt.UTC(),
	}
	if submission.Grade != nil {
		payload.Grade = *submission.Grade
	}

	if err := s.events.Publish(ctx, events.GradeEntered, payload); err != nil {
		s.logger.Warn().Err(err).Str("submission_id", submission.ID).Msg("failed to publish grade event")
	}
}

func criteriaFromQuery(query dto.SubmissionQuery) (grading.Criteria, error) {
	criteria := grading.Criteria{
		CourseToken: strings.TrimSpace(query.Course),
		SearchText:  strings.TrimSpace(query.Search),
	}

	if value := strings.TrimSpace(query.Grade); value != "" {
		letter, ok := grading.ParseLetter(value)
		if !ok {
			return grading.Criteria{}, fmt.Errorf("%w: %q", ErrInvalidGradeLetter, value)
		}
		criteria.GradeLetter = letter
	}

	return criteria, nil
}

func findSubmission(submissions []models.Submission, id string) (models.Submission, bool) {
	for _, submission := range submissions {
		if submission.ID == id {
			return submission, true
		}
	}
	return models.Submission{}, false
}
