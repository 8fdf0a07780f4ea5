package dto

import (
	"time"

	"github.com/gradepro/gradepro-web/internal/grading"
	"github.com/gradepro/gradepro-web/internal/models"
)

// GradeResponse is a student's grade with its derived letter.
type GradeResponse struct {
	ID                     string         `json:"id"`
	SubmissionID           string         `json:"submission_id,omitempty"`
	Assignment             AssignmentLite `json:"assignment"`
	Marks                  float64        `json:"marks"`
	MaxMarks               float64        `json:"max_marks"`
	Percentage             *float64       `json:"percentage,omitempty"`
	Letter                 grading.Letter `json:"letter,omitempty"`
	Feedback               string         `json:"feedback,omitempty"`
	GradedAt               *time.Time     `json:"graded_at,omitempty"`
	RevaluationRequested   bool           `json:"revaluation_requested"`
	EligibleForRevaluation bool           `json:"eligible_for_revaluation"`
}

// StudentGradesResponse lists grades with their summary.
type StudentGradesResponse struct {
	Grades  []GradeResponse `json:"grades"`
	Summary grading.Summary `json:"summary"`
}

// StudentDashboardResponse aggregates the student's landing page.
type StudentDashboardResponse struct {
	Summary          grading.Summary      `json:"summary"`
	Upcoming         []AssignmentResponse `json:"upcoming"`
	RecentGrades     []GradeResponse      `json:"recent_grades"`
	OpenRevaluations int                  `json:"open_revaluations"`
}

// NewGradeResponse converts a backend grade.
func NewGradeResponse(model models.Grade) GradeResponse {
	maxMarks := model.EffectiveMaxMarks()
	response := GradeResponse{
		ID:                     model.ID,
		SubmissionID:           model.SubmissionID,
		Assignment:             NewAssignmentLite(model.Assignment),
		Marks:                  model.Marks,
		MaxMarks:               maxMarks,
		Feedback:               model.Feedback,
		GradedAt:               model.GradedAt,
		RevaluationRequested:   model.RevaluationRequested,
		EligibleForRevaluation: !model.RevaluationRequested,
	}

	if percentage, err := grading.Percentage(model.Marks, maxMarks); err == nil {
		response.Percentage = &percentage
	}
	if letter, err := grading.Classify(model.Marks, maxMarks); err == nil {
		response.Letter = letter
	}

	return response
}

// NewGradeResponseSlice converts backend grades.
func NewGradeResponseSlice(grades []models.Grade) []GradeResponse {
	responses := make([]GradeResponse, 0, len(grades))
	for _, grade := range grades {
		responses = append(responses, NewGradeResponse(grade))
	}
	return responses
}
