package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gradepro/gradepro-web/internal/dto"
	"github.com/gradepro/gradepro-web/internal/models"
)

// CourseService exposes course CRUD for faculty.
type CourseService interface {
	List(ctx context.Context, sess models.Session) ([]dto.CourseResponse, error)
	Create(ctx context.Context, sess models.Session, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	Update(ctx context.Context, sess models.Session, id string, payload dto.CourseUpdateRequest) (dto.CourseResponse, error)
	Delete(ctx context.Context, sess models.Session, id string) error
}

type courseService struct {
	backend   CourseBackend
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(backend CourseBackend, validate *validator.Validate, logger zerolog.Logger) CourseService {
	return &courseService{
		backend:   backend,
		validator: validate,
		logger:    logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) List(ctx context.Context, sess models.Session) ([]dto.CourseResponse, error) {
	courses, err := s.backend.ListCourses(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	return dto.NewCourseResponseSlice(courses), nil
}

func (s *courseService) Create(ctx context.Context, sess models.Session, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	input := models.CourseInput{
		Name:     strings.TrimSpace(payload.Name),
		Code:     strings.ToUpper(strings.TrimSpace(payload.Code)),
		Semester: strings.TrimSpace(payload.Semester),
		Year:     payload.Year,
		IsActive: true,
		Students: normalizeStudents(payload.Students),
	}
	if payload.IsActive != nil {
		input.IsActive = *payload.IsActive
	}

	created, err := s.backend.CreateCourse(ctx, sess.Token, input)
	if err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Str("course_id", created.ID).Str("code", input.Code).Msg("course created")

	return dto.NewCourseResponse(created), nil
}

func (s *courseService) Update(ctx context.Context, sess models.Session, id string, payload dto.CourseUpdateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	courses, err := s.backend.ListCourses(ctx, sess.Token)
	if err != nil {
		return dto.CourseResponse{}, err
	}

	var (
		current models.Course
		found   bool
	)
	for _, course := range courses {
		if course.ID == id {
			current, found = course, true
			break
		}
	}
	if !found {
		return dto.CourseResponse{}, ErrCourseNotFound
	}

	input := models.CourseInput{
		Name:     current.Name,
		Code:     current.Code,
		Semester: current.Semester,
		Year:     current.Year,
		IsActive: current.IsActive,
		Students: current.Students,
	}
	if payload.Name != nil {
		input.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Code != nil {
		input.Code = strings.ToUpper(strings.TrimSpace(*payload.Code))
	}
	if payload.Semester != nil {
		input.Semester = strings.TrimSpace(*payload.Semester)
	}
	if payload.Year != nil {
		input.Year = *payload.Year
	}
	if payload.IsActive != nil {
		input.IsActive = *payload.IsActive
	}
	if payload.Students != nil {
		input.Students = normalizeStudents(*payload.Students)
	}

	updated, err := s.backend.UpdateCourse(ctx, sess.Token, current.ID, input)
	if err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Str("course_id", current.ID).Msg("course updated")

	return dto.NewCourseResponse(updated), nil
}

func (s *courseService) Delete(ctx context.Context, sess models.Session, id string) error {
	if err := s.backend.DeleteCourse(ctx, sess.Token, id); err != nil {
		return err
	}

	s.logger.Info().Str("course_id", id).Msg("course deleted")
	return nil
}

// normalizeStudents trims ids and drops duplicates, keeping first occurrences.
func normalizeStudents(students []string) []string {
	seen := make(map[string]struct{}, len(students))
	result := make([]string, 0, len(students))
	for _, student := range students {
		trimmed := strings.TrimSpace(student)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
