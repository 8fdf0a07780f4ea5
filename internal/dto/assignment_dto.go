package dto

import (
	"time"

	"github.com/gradepro/gradepro-web/internal/grading"
	"github.com/gradepro/gradepro-web/internal/models"
)

// IsoLayout is the due date format accepted from forms.
const IsoLayout = time.RFC3339

// AssignmentCreateRequest describes the payload for creating a new assignment.
type AssignmentCreateRequest struct {
	Title       string  `form:"title" json:"title" validate:"required,min=3,max=200"`
	Description string  `form:"description" json:"description" validate:"max=5000"`
	DueDate     string  `form:"due_date" json:"due_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	MaxMarks    float64 `form:"max_marks" json:"max_marks" validate:"required,gt=0"`
	CourseID    string  `form:"course_id" json:"course_id" validate:"required"`
}

// AssignmentUpdateRequest describes the payload for updating an assignment.
type AssignmentUpdateRequest struct {
	Title       *string  `form:"title" json:"title" validate:"omitempty,min=3,max=200"`
	Description *string  `form:"description" json:"description" validate:"omitempty,max=5000"`
	DueDate     *string  `form:"due_date" json:"due_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	MaxMarks    *float64 `form:"max_marks" json:"max_marks" validate:"omitempty,gt=0"`
	CourseID    *string  `form:"course_id" json:"course_id" validate:"omitempty,min=1"`
}

// CourseLite summarizes the owning course.
type CourseLite struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// AssignmentResponse is the serialized representation returned to the browser.
type AssignmentResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	DueDate       time.Time         `json:"due_date"`
	DueStatus     grading.DueStatus `json:"due_status"`
	MaxMarks      float64           `json:"max_marks"`
	Course        *CourseLite       `json:"course,omitempty"`
	CreatedBy     string            `json:"created_by,omitempty"`
	AttachmentURL string            `json:"attachment_url,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// NewAssignmentResponse converts a backend assignment, labelling its deadline relative to now.
func NewAssignmentResponse(model models.Assignment, now time.Time) AssignmentResponse {
	response := AssignmentResponse{
		ID:            model.ID,
		Title:         model.Title,
		Description:   model.Description,
		DueDate:       model.DueDate,
		DueStatus:     grading.DueStatusAt(model.DueDate, now),
		MaxMarks:      model.MaxMarks,
		CreatedBy:     model.CreatedBy,
		AttachmentURL: model.AttachmentURL,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}

	if model.Course != nil {
		response.Course = &CourseLite{ID: model.Course.ID, Name: model.Course.Name, Code: model.Course.Code}
	}

	return response
}

// NewAssignmentResponseSlice converts a slice of assignments into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment, now time.Time) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment, now))
	}
	return responses
}
