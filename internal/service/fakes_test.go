package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gradepro/gradepro-web/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

type fakeBackend struct {
	taSubmissions      []models.Submission
	facultySubmissions []models.Submission
	assignments        []models.Assignment
	studentAssignments []models.Assignment
	courses            []models.Course
	grades             []models.Grade
	revaluations       []models.RevaluationRequest
	reports            []models.PlagiarismReport
	err                error

	gradeResult models.Submission
	gradeCalls  int
	lastGrade   models.GradeInput
	lastToken   string

	lastAssignmentInput models.AssignmentInput
	lastCourseInput     models.CourseInput
	deleted             []string

	createdRevaluation models.RevaluationRequest
	revaluationCalls   int
	gradeListCalls     int
}

func (f *fakeBackend) ListTASubmissions(ctx context.Context, token string) ([]models.Submission, error) {
	f.lastToken = token
	return f.taSubmissions, f.err
}

func (f *fakeBackend) ListFacultySubmissions(ctx context.Context, token string) ([]models.Submission, error) {
	f.lastToken = token
	return f.facultySubmissions, f.err
}

func (f *fakeBackend) GradeSubmission(ctx context.Context, token, submissionID string, input models.GradeInput) (models.Submission, error) {
	f.gradeCalls++
	f.lastGrade = input
	return f.gradeResult, f.err
}

func (f *fakeBackend) ListAssignments(ctx context.Context, token string) ([]models.Assignment, error) {
	return f.assignments, f.err
}

func (f *fakeBackend) ListStudentAssignments(ctx context.Context, token string) ([]models.Assignment, error) {
	return f.studentAssignments, f.err
}

func (f *fakeBackend) CreateAssignment(ctx context.Context, token string, input models.AssignmentInput) (models.Assignment, error) {
	f.lastAssignmentInput = input
	return models.Assignment{
		ID:            "new-assignment",
		Title:         input.Title,
		Description:   input.Description,
		DueDate:       input.DueDate,
		MaxMarks:      input.MaxMarks,
		AttachmentURL: input.AttachmentURL,
	}, f.err
}

func (f *fakeBackend) UpdateAssignment(ctx context.Context, token, id string, input models.AssignmentInput) (models.Assignment, error) {
	f.lastAssignmentInput = input
	return models.Assignment{ID: id, Title: input.Title, DueDate: input.DueDate, MaxMarks: input.MaxMarks}, f.err
}

func (f *fakeBackend) DeleteAssignment(ctx context.Context, token, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeBackend) ListCourses(ctx context.Context, token string) ([]models.Course, error) {
	return f.courses, f.err
}

func (f *fakeBackend) CreateCourse(ctx context.Context, token string, input models.CourseInput) (models.Course, error) {
	f.lastCourseInput = input
	return models.Course{ID: "new-course", Name: input.Name, Code: input.Code, Students: input.Students, IsActive: input.IsActive}, f.err
}

func (f *fakeBackend) UpdateCourse(ctx context.Context, token, id string, input models.CourseInput) (models.Course, error) {
	f.lastCourseInput = input
	return models.Course{ID: id, Name: input.Name, Code: input.Code, Year: input.Year, Students: input.Students}, f.err
}

func (f *fakeBackend) DeleteCourse(ctx context.Context, token, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeBackend) ListStudentGrades(ctx context.Context, token string) ([]models.Grade, error) {
	f.gradeListCalls++
	return f.grades, f.err
}

func (f *fakeBackend) ListRevaluations(ctx context.Context, token string) ([]models.RevaluationRequest, error) {
	return f.revaluations, f.err
}

func (f *fakeBackend) CreateRevaluation(ctx context.Context, token string, input models.RevaluationInput) (models.RevaluationRequest, error) {
	f.revaluationCalls++
	created := f.createdRevaluation
	if created.ID == "" {
		created = models.RevaluationRequest{ID: "rv-1", GradingID: input.GradingID, Reason: input.Reason, Status: "pending"}
	}
	return created, f.err
}

func (f *fakeBackend) ListPlagiarismReports(ctx context.Context, token string) ([]models.PlagiarismReport, error) {
	return f.reports, f.err
}

type publishedEvent struct {
	name    string
	payload interface{}
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, event string, payload interface{}) error {
	f.events = append(f.events, publishedEvent{name: event, payload: payload})
	return f.err
}

type fakeUploader struct {
	calls int
	name  string
	body  []byte
}

func (f *fakeUploader) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	f.calls++
	f.name = name
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.body = data
	return "https://cdn.example.com/" + name, nil
}

// formFile builds a multipart file header the way fiber hands one to handlers.
func formFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func bytesReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}
