package models

import "time"

// CourseRef is the owning course of an assignment.
type CourseRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Assignment is an assignment definition owned by the backend.
type Assignment struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	DueDate       time.Time  `json:"dueDate"`
	MaxMarks      float64    `json:"maxMarks"`
	Course        *CourseRef `json:"course,omitempty"`
	CreatedBy     string     `json:"createdBy,omitempty"`
	AttachmentURL string     `json:"attachmentUrl,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// IsPastDue returns true when the assignment deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}

// AssignmentInput is sent to the backend when creating or updating an assignment.
type AssignmentInput struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	DueDate       time.Time `json:"dueDate"`
	MaxMarks      float64   `json:"maxMarks"`
	CourseID      string    `json:"courseId"`
	AttachmentURL string    `json:"attachmentUrl,omitempty"`
}
