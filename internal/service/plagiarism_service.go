package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gradepro/gradepro-web/internal/dto"
	"github.com/gradepro/gradepro-web/internal/grading"
	"github.com/gradepro/gradepro-web/internal/models"
)

// PlagiarismService lists similarity reports with their severity band.
type PlagiarismService interface {
	List(ctx context.Context, sess models.Session, query dto.PlagiarismQuery) ([]dto.PlagiarismReportResponse, error)
}

type plagiarismService struct {
	backend   PlagiarismBackend
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewPlagiarismService constructs the plagiarism service.
func NewPlagiarismService(backend PlagiarismBackend, validate *validator.Validate, logger zerolog.Logger) PlagiarismService {
	return &plagiarismService{
		backend:   backend,
		validator: validate,
		logger:    logger.With().Str("component", "plagiarism_service").Logger(),
	}
}

// List returns reports ordered by similarity, highest first.
func (s *plagiarismService) List(ctx context.Context, sess models.Session, query dto.PlagiarismQuery) ([]dto.PlagiarismReportResponse, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, err
	}

	var severity grading.Severity
	if query.Severity != "" {
		parsed, ok := grading.ParseSeverity(query.Severity)
		if !ok {
			return nil, fmt.Errorf("unknown severity %q", query.Severity)
		}
		severity = parsed
	}

	reports, err := s.backend.ListPlagiarismReports(ctx, sess.Token)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PlagiarismReportResponse, 0, len(reports))
	for _, report := range reports {
		response := dto.NewPlagiarismReportResponse(report)
		if severity != "" && response.Severity.Level != severity {
			continue
		}
		responses = append(responses, response)
	}

	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].Similarity > responses[j].Similarity
	})

	return responses, nil
}
