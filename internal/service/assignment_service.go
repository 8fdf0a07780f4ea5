package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/gradepro/gradepro-web/internal/dto"
	"github.com/gradepro/gradepro-web/internal/models"
)

// MaxAttachmentSize bounds assignment attachments.
const MaxAttachmentSize = 10 << 20

var allowedAttachmentTypes = []string{
	"application/pdf",
	"application/zip",
	"application/x-zip-compressed",
	"text/plain",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

// AssignmentService exposes assignment use cases.
type AssignmentService interface {
	List(ctx context.Context, sess models.Session) ([]dto.AssignmentResponse, error)
	Create(ctx context.Context, sess models.Session, payload dto.AssignmentCreateRequest, file *multipart.FileHeader) (dto.AssignmentResponse, error)
	Update(ctx context.Context, sess models.Session, id string, payload dto.AssignmentUpdateRequest, file *multipart.FileHeader) (dto.AssignmentResponse, error)
	Delete(ctx context.Context, sess models.Session, id string) error
}

type assignmentService struct {
	backend   AssignmentBackend
	validator *validator.Validate
	uploader  FileUploader
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAssignmentService builds a new assignment service. uploader may be nil,
// in which case attachments are rejected.
func NewAssignmentService(backend AssignmentBackend, validate *validator.Validate, uploader FileUploader, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		backend:   backend,
		validator: validate,
		uploader:  uploader,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "assignment_service").Logger(),
		now:       time.Now,
	}
}

func (s *assignmentService) List(ctx context.Context, sess models.Session) ([]dto.AssignmentResponse, error) {
	var (
		assignments []models.Assignment
		err         error
	)
	if sess.Role == models.RoleStudent {
		assignments, err = s.backend.ListStudentAssignments(ctx, sess.Token)
	} else {
		assignments, err = s.backend.ListAssignments(ctx, sess.Token)
	}
	if err != nil {
		return nil, err
	}

	return dto.NewAssignmentResponseSlice(assignments, s.now()), nil
}

func (s *assignmentService) Create(ctx context.Context, sess models.Session, payload dto.AssignmentCreateRequest, file *multipart.FileHeader) (dto.AssignmentResponse, error) {
	tracer := otel.Tracer("github.com/gradepro/gradepro-web/internal/service/assignment")
	ctx, span := tracer.Start(ctx, "assignment.create")
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.AssignmentResponse{}, err
	}

	dueDate, err := parseDueDate(payload.DueDate)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	input := models.AssignmentInput{
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(s.sanitizer.Sanitize(payload.Description)),
		DueDate:     dueDate,
		MaxMarks:    payload.MaxMarks,
		CourseID:    strings.TrimSpace(payload.CourseID),
	}

	if file != nil {
		url, err := s.uploadAttachment(ctx, file)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "attachment_failed")
			return dto.AssignmentResponse{}, err
		}
		input.AttachmentURL = url
	}

	created, err := s.backend.CreateAssignment(ctx, sess.Token, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "assignment_create_failed")
		return dto.AssignmentResponse{}, err
	}

	span.SetAttributes(attribute.String("assignment.id", created.ID))
	s.logger.Info().Str("assignment_id", created.ID).Str("course_id", input.CourseID).Msg("assignment created")

	return dto.NewAssignmentResponse(created, s.now()), nil
}

func (s *assignmentService) Update(ctx context.Context, sess models.Session, id string, payload dto.AssignmentUpdateRequest, file *multipart.FileHeader) (dto.AssignmentResponse, error) {
	tracer := otel.Tracer("github.com/gradepro/gradepro-web/internal/service/assignment")
	ctx, span := tracer.Start(ctx, "assignment.update")
	span.SetAttributes(attribute.String("assignment.id", id))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.AssignmentResponse{}, err
	}

	assignments, err := s.backend.ListAssignments(ctx, sess.Token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "assignment_lookup_failed")
		return dto.AssignmentResponse{}, err
	}

	current, ok := findAssignment(assignments, id)
	if !ok {
		span.SetStatus(codes.Error, "assignment_not_found")
		return dto.AssignmentResponse{}, ErrAssignmentNotFound
	}

	input := models.AssignmentInput{
		Title:         current.Title,
		Description:   current.Description,
		DueDate:       current.DueDate,
		MaxMarks:      current.MaxMarks,
		AttachmentURL: current.AttachmentURL,
	}
	if current.Course != nil {
		input.CourseID = current.Course.ID
	}

	if payload.Title != nil {
		input.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Description != nil {
		input.Description = strings.TrimSpace(s.sanitizer.Sanitize(*payload.Description))
	}
	if payload.DueDate != nil {
		dueDate, err := parseDueDate(*payload.DueDate)
		if err != nil {
			return dto.AssignmentResponse{}, err
		}
		input.DueDate = dueDate
	}
	if payload.MaxMarks != nil {
		input.MaxMarks = *payload.MaxMarks
	}
	if payload.CourseID != nil {
		input.CourseID = strings.TrimSpace(*payload.CourseID)
	}

	if file != nil {
		url, err := s.uploadAttachment(ctx, file)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "attachment_failed")
			return dto.AssignmentResponse{}, err
		}
		input.AttachmentURL = url
	}

	updated, err := s.backend.UpdateAssignment(ctx, sess.Token, current.ID, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "assignment_update_failed")
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Str("assignment_id", current.ID).Msg("assignment updated")

	return dto.NewAssignmentResponse(updated, s.now()), nil
}

func (s *assignmentService) Delete(ctx context.Context, sess models.Session, id string) error {
	if err := s.backend.DeleteAssignment(ctx, sess.Token, id); err != nil {
		return err
	}

	s.logger.Info().Str("assignment_id", id).Msg("assignment deleted")
	return nil
}

func (s *assignmentService) uploadAttachment(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if s.uploader == nil {
		return "", ErrUploadsDisabled
	}

	if file.Size > MaxAttachmentSize {
		return "", ErrAttachmentTooLarge
	}

	if err := validateAttachmentType(file); err != nil {
		return "", err
	}

	reader, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	url, err := s.uploader.Upload(ctx, file.Filename, reader)
	if err != nil {
		return "", fmt.Errorf("failed to upload attachment: %w", err)
	}

	return url, nil
}

func validateAttachmentType(file *multipart.FileHeader) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("failed to detect file type: %w", err)
	}

	for _, allowed := range allowedAttachmentTypes {
		if mime.Is(allowed) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedFileType, mime.String())
}

func parseDueDate(value string) (time.Time, error) {
	dueDate, err := time.Parse(dto.IsoLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDueDate, err)
	}
	return dueDate, nil
}

func findAssignment(assignments []models.Assignment, id string) (models.Assignment, bool) {
	for _, assignment := range assignments {
		if assignment.ID == id {
			return assignment, true
		}
	}
	return models.Assignment{}, false
}
