package service

import (
	"context"
	"errors"
	"io"

	"github.com/gradepro/gradepro-web/internal/models"
)

var (
	// ErrSubmissionNotFound indicates the submission is not visible to the caller.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrAssignmentNotFound indicates the assignment is not visible to the caller.
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrCourseNotFound indicates the course is not visible to the caller.
	ErrCourseNotFound = errors.New("course not found")
	// ErrScoreExceedsMax indicates a grade above the assignment maximum.
	ErrScoreExceedsMax = errors.New("grade exceeds assignment max marks")
	// ErrInvalidGradeLetter indicates an unknown letter in a filter.
	ErrInvalidGradeLetter = errors.New("unknown grade letter")
	// ErrInvalidDueDate indicates a due date that cannot be parsed.
	ErrInvalidDueDate = errors.New("invalid due date")
	// ErrUnsupportedFileType indicates an attachment type outside the allow list.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrAttachmentTooLarge indicates an attachment above the upload limit.
	ErrAttachmentTooLarge = errors.New("attachment too large")
	// ErrUploadsDisabled indicates an attachment was sent without an uploader configured.
	ErrUploadsDisabled = errors.New("attachments are not enabled")
	// ErrInvalidCredentials indicates the backend rejected the login.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// SubmissionBackend is the slice of the backend client used for reviewing and grading.
type SubmissionBackend interface {
	ListTASubmissions(ctx context.Context, token string) ([]models.Submission, error)
	ListFacultySubmissions(ctx context.Context, token string) ([]models.Submission, error)
	GradeSubmission(ctx context.Context, token, submissionID string, input models.GradeInput) (models.Submission, error)
}

// AssignmentBackend is the slice of the backend client used for assignments.
type AssignmentBackend interface {
	ListAssignments(ctx context.Context, token string) ([]models.Assignment, error)
	ListStudentAssignments(ctx context.Context, token string) ([]models.Assignment, error)
	CreateAssignment(ctx context.Context, token string, input models.AssignmentInput) (models.Assignment, error)
	UpdateAssignment(ctx context.Context, token, id string, input models.AssignmentInput) (models.Assignment, error)
	DeleteAssignment(ctx context.Context, token, id string) error
}

// CourseBackend is the slice of the backend client used for courses.
type CourseBackend interface {
	ListCourses(ctx context.Context, token string) ([]models.Course, error)
	CreateCourse(ctx context.Context, token string, input models.CourseInput) (models.Course, error)
	UpdateCourse(ctx context.Context, token, id string, input models.CourseInput) (models.Course, error)
	DeleteCourse(ctx context.Context, token, id string) error
}

// StudentBackend is the slice of the backend client used by student pages.
type StudentBackend interface {
	ListStudentAssignments(ctx context.Context, token string) ([]models.Assignment, error)
	ListStudentGrades(ctx context.Context, token string) ([]models.Grade, error)
	ListRevaluations(ctx context.Context, token string) ([]models.RevaluationRequest, error)
}

// RevaluationBackend is the slice of the backend client used for revaluation requests.
type RevaluationBackend interface {
	ListStudentGrades(ctx context.Context, token string) ([]models.Grade, error)
	ListRevaluations(ctx context.Context, token string) ([]models.RevaluationRequest, error)
	CreateRevaluation(ctx context.Context, token string, input models.RevaluationInput) (models.RevaluationRequest, error)
}

// PlagiarismBackend is the slice of the backend client used for similarity reports.
type PlagiarismBackend interface {
	ListPlagiarismReports(ctx context.Context, token string) ([]models.PlagiarismReport, error)
}

// EventPublisher emits domain events after a backend write succeeds.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload interface{}) error
}

// FileUploader abstracts uploading binary data and returning a URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}
