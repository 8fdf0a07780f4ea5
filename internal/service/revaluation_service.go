package service

import (
	"context"
	"errors"
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

// RevaluationService lists and files revaluation requests for a student.
type RevaluationService interface {
	List(ctx context.Context, sess models.Session) ([]dto.RevaluationResponse, error)
	Create(ctx context.Context, sess models.Session, payload dto.RevaluationCreateRequest) (dto.RevaluationResponse, error)
}

type revaluationService struct {
	backend   RevaluationBackend
	validator *validator.Validate
	events    EventPublisher
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewRevaluationService constructs the revaluation service.
func NewRevaluationService(backend RevaluationBackend, validate *validator.Validate, events EventPublisher, logger zerolog.Logger) RevaluationService {
	return &revaluationService{
		backend:   backend,
		validator: validate,
		events:    events,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "revaluation_service").Logger(),
		now:       time.Now,
	}
}

func (s *revaluationService) List(ctx context.Context, sess models.Session) ([]dto.RevaluationResponse, error) {
	tracer := otel.Tracer("github.com/gradepro/gradepro-web/internal/service/revaluation")
	ctx, span := tracer.Start(ctx, "revaluation.list")
	defer span.End()

	requests, err := s.backend.ListRevaluations(ctx, sess.Token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "revaluation_list_failed")
		return nil, err
	}

	responses := make([]dto.RevaluationResponse, 0, len(requests))
	for _, request := range requests {
		status, err := grading.ParseRevaluationStatus(request.Status)
		if err != nil {
			s.logger.Warn().Str("revaluation_id", request.ID).Str("status", request.Status).Msg("skipping revaluation with unknown status")
			continue
		}
		responses = append(responses, dto.NewRevaluationResponse(request, status))
	}

	return responses, nil
}

// Create checks the request against the student's eligible grades before
// anything is sent upstream.
func (s *revaluationService) Create(ctx context.Context, sess models.Session, payload dto.RevaluationCreateRequest) (dto.RevaluationResponse, error) {
	tracer := otel.Tracer("github.com/gradepro/gradepro-web/internal/service/revaluation")
	ctx, span := tracer.Start(ctx, "revaluation.create")
	span.SetAttributes(attribute.String("revaluation.grading_id", payload.GradingID))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.RevaluationResponse{}, err
	}

	input := models.RevaluationInput{
		GradingID: strings.TrimSpace(payload.GradingID),
		Reason:    strings.TrimSpace(s.sanitizer.Sanitize(payload.Reason)),
	}

	// Presence checks need no network round trip.
	if err := grading.ValidateRevaluation(input, nil); err != nil && !errors.Is(err, grading.ErrRevaluationNotEligible) {
		span.SetStatus(codes.Error, "validation_failed")
		return dto.RevaluationResponse{}, err
	}

	grades, err := s.backend.ListStudentGrades(ctx, sess.Token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "grades_fetch_failed")
		return dto.RevaluationResponse{}, err
	}

	if err := grading.ValidateRevaluation(input, grading.EligibleForRevaluation(grades)); err != nil {
		span.SetStatus(codes.Error, "not_eligible")
		return dto.RevaluationResponse{}, err
	}

	created, err := s.backend.CreateRevaluation(ctx, sess.Token, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "revaluation_create_failed")
		return dto.RevaluationResponse{}, err
	}

	if created.GradingID == "" {
		created.GradingID = input.GradingID
	}
	if created.Reason == "" {
		created.Reason = input.Reason
	}
	if created.RequestedAt.IsZero() {
		created.RequestedAt = s.now()
	}

	status := grading.RevaluationPending
	if parsed, err := grading.ParseRevaluationStatus(created.Status); err == nil {
		status = parsed
	}

	if s.events != nil {
		err := s.events.Publish(ctx, events.RevaluationRequested, events.RevaluationRequestedPayload{
			RevaluationID: created.ID,
			GradingID:     created.GradingID,
			StudentID:     sess.UserID,
			RequestedAt:   created.RequestedAt.UTC(),
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("grading_id", created.GradingID).Msg("failed to publish revaluation event")
		}
	}

	s.logger.Info().Str("grading_id", created.GradingID).Str("student_id", sess.UserID).Msg("revaluation requested")

	return dto.NewRevaluationResponse(created, status), nil
}
