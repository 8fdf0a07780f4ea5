package models

import "time"

// StudentRef identifies the student who owns a submission or grade.
type StudentRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AssignmentRef is the assignment summary embedded in submissions and grades.
type AssignmentRef struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	MaxMarks float64   `json:"maxMarks"`
	DueDate  time.Time `json:"dueDate"`
}

// Submission is a student's piece of work for one assignment as returned by the backend.
type Submission struct {
	ID                   string        `json:"id"`
	Student              StudentRef    `json:"student"`
	Assignment           AssignmentRef `json:"assignment"`
	FileURL              string        `json:"fileUrl,omitempty"`
	SubmittedAt          time.Time     `json:"submittedAt"`
	Grade                *float64      `json:"grade"`
	Feedback             *string       `json:"feedback,omitempty"`
	GradedAt             *time.Time    `json:"gradedAt,omitempty"`
	GradedBy             *string       `json:"gradedBy,omitempty"`
	RevaluationRequested bool          `json:"revaluationRequested"`
}

// IsGraded reports whether the submission carries a grade.
func (s Submission) IsGraded() bool {
	return s.Grade != nil
}

// GradeInput is the body of the grade-entry PUT.
type GradeInput struct {
	Grade    float64 `json:"grade"`
	Feedback string  `json:"feedback"`
}
