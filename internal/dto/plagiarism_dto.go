package dto

import (
	"time"

	"github.com/gradepro/gradepro-web/internal/grading"
	"github.com/gradepro/gradepro-web/internal/models"
)

// PlagiarismQuery filters reports by severity.
type PlagiarismQuery struct {
	Severity string `query:"severity" validate:"omitempty,oneof=high medium low"`
}

// PlagiarismMatchResponse is one matched source.
type PlagiarismMatchResponse struct {
	Source     string  `json:"source"`
	Similarity float64 `json:"similarity"`
}

// PlagiarismReportResponse is a report with its severity band.
type PlagiarismReportResponse struct {
	ID           string                    `json:"id"`
	SubmissionID string                    `json:"submission_id"`
	Student      StudentLite               `json:"student"`
	Assignment   AssignmentLite            `json:"assignment"`
	Similarity   float64                   `json:"similarity"`
	Severity     grading.SeverityBand      `json:"severity"`
	Matches      []PlagiarismMatchResponse `json:"matches"`
	CheckedAt    time.Time                 `json:"checked_at"`
}

// NewPlagiarismReportResponse converts a backend report.
func NewPlagiarismReportResponse(model models.PlagiarismReport) PlagiarismReportResponse {
	matches := make([]PlagiarismMatchResponse, 0, len(model.Matches))
	for _, match := range model.Matches {
		matches = append(matches, PlagiarismMatchResponse{Source: match.Source, Similarity: match.Similarity})
	}

	return PlagiarismReportResponse{
		ID:           model.ID,
		SubmissionID: model.SubmissionID,
		Student:      StudentLite{ID: model.Student.ID, Name: model.Student.Name, Email: model.Student.Email},
		Assignment:   NewAssignmentLite(model.Assignment),
		Similarity:   model.Similarity,
		Severity:     grading.ClassifySimilarity(model.Similarity),
		Matches:      matches,
		CheckedAt:    model.CheckedAt,
	}
}
