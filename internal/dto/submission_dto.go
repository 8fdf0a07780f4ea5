package dto

import (
	"time"

	"github.com/gradepro/gradepro-web/internal/grading"
	"github.com/gradepro/gradepro-web/internal/models"
)

// SubmissionQuery carries the review page filters.
type SubmissionQuery struct {
	Course string `query:"course" validate:"max=100"`
	Grade  string `query:"grade" validate:"omitempty,max=2"`
	Search string `query:"search" validate:"max=100"`
}

// GradeSubmissionRequest is the grade-entry payload.
type GradeSubmissionRequest struct {
	Grade    *float64 `json:"grade" validate:"required,gte=0"`
	Feedback string   `json:"feedback" validate:"max=2000"`
}

// StudentLite summarizes a student without exposing full profile data.
type StudentLite struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// AssignmentLite summarizes an assignment in submission and grade responses.
type AssignmentLite struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	MaxMarks float64   `json:"max_marks"`
	DueDate  time.Time `json:"due_date"`
}

// SubmissionResponse is returned to the browser when reviewing submissions.
type SubmissionResponse struct {
	ID                   string         `json:"id"`
	Student              StudentLite    `json:"student"`
	Assignment           AssignmentLite `json:"assignment"`
	FileURL              string         `json:"file_url,omitempty"`
	SubmittedAt          time.Time      `json:"submitted_at"`
	Grade                *float64       `json:"grade"`
	Percentage           *float64       `json:"percentage,omitempty"`
	Letter               grading.Letter `json:"letter,omitempty"`
	Feedback             string         `json:"feedback,omitempty"`
	GradedAt             *time.Time     `json:"graded_at,omitempty"`
	GradedBy             *string        `json:"graded_by,omitempty"`
	RevaluationRequested bool           `json:"revaluation_requested"`
}

// SubmissionListResponse pairs the filtered submissions with page counters.
type SubmissionListResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
	Matched     int                  `json:"matched"`
	Summary     grading.Summary      `json:"summary"`
}

// NewAssignmentLite converts an embedded assignment reference.
func NewAssignmentLite(ref models.AssignmentRef) AssignmentLite {
	return AssignmentLite{
		ID:       ref.ID,
		Title:    ref.Title,
		MaxMarks: ref.MaxMarks,
		DueDate:  ref.DueDate,
	}
}

// NewSubmissionResponse converts a backend submission, deriving its letter when graded.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	response := SubmissionResponse{
		ID: model.ID,
		Student: StudentLite{
			ID:    model.Student.ID,
			Name:  model.Student.Name,
			Email: model.Student.Email,
		},
		Assignment:           NewAssignmentLite(model.Assignment),
		FileURL:              model.FileURL,
		SubmittedAt:          model.SubmittedAt,
		Grade:                model.Grade,
		GradedAt:             model.GradedAt,
		GradedBy:             model.GradedBy,
		RevaluationRequested: model.RevaluationRequested,
	}

	if model.Feedback != nil {
		response.Feedback = *model.Feedback
	}

	if model.Grade != nil {
		if percentage, err := grading.Percentage(*model.Grade, model.Assignment.MaxMarks); err == nil {
			response.Percentage = &percentage
		}
		if letter, err := grading.Classify(*model.Grade, model.Assignment.MaxMarks); err == nil {
			response.Letter = letter
		}
	}

	return response
}

// NewSubmissionResponseSlice converts submissions into DTOs.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}
	return responses
}
