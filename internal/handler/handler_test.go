package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gradepro/gradepro-web/internal/config"
	"github.com/gradepro/gradepro-web/internal/dto"
	"github.com/gradepro/gradepro-web/internal/handler"
	"github.com/gradepro/gradepro-web/internal/middleware"
	"github.com/gradepro/gradepro-web/internal/models"
	"github.com/gradepro/gradepro-web/internal/router"
	"github.com/gradepro/gradepro-web/internal/service"
	"github.com/gradepro/gradepro-web/internal/session"
)

var testSessions = map[string]models.Session{
	"ta-session":      {ID: "ta-session", UserID: "ta-1", Name: "Tara", Email: "tara@uni.edu", Role: models.RoleTA, Token: "t1"},
	"faculty-session": {ID: "faculty-session", UserID: "fac-1", Role: models.RoleFaculty, Token: "t2"},
	"student-session": {ID: "student-session", UserID: "S1", Role: models.RoleStudent, Token: "t3"},
}

type stubResolver struct{}

func (stubResolver) Resolve(ctx context.Context, id string) (models.Session, error) {
	sess, ok := testSessions[id]
	if !ok {
		return models.Session{}, session.ErrNotFound
	}
	return sess, nil
}

type stubReview struct {
	lastQuery dto.SubmissionQuery
	listErr   error
	gradeErr  error
	lastGrade dto.GradeSubmissionRequest
}

func (s *stubReview) List(ctx context.Context, sess models.Session, query dto.SubmissionQuery) (dto.SubmissionListResponse, error) {
	s.lastQuery = query
	return dto.SubmissionListResponse{Submissions: []dto.SubmissionResponse{{ID: "sub-1"}}, Matched: 1}, s.listErr
}

func (s *stubReview) Grade(ctx context.Context, sess models.Session, submissionID string, payload dto.GradeSubmissionRequest) (dto.SubmissionResponse, error) {
	s.lastGrade = payload
	if s.gradeErr != nil {
		return dto.SubmissionResponse{}, s.gradeErr
	}
	return dto.SubmissionResponse{ID: submissionID, Grade: payload.Grade, Letter: "A"}, nil
}

func (s *stubReview) Export(ctx context.Context, sess models.Session, query dto.SubmissionQuery) (service.GradeSheet, error) {
	return service.GradeSheet{FileName: "grades_20260302_100000.xlsx", Content: []byte("PK-sheet"), Rows: 1}, nil
}

type stubAuth struct {
	err       error
	loggedOut []string
}

func (s *stubAuth) Login(ctx context.Context, payload dto.LoginRequest) (models.Session, error) {
	if s.err != nil {
		return models.Session{}, s.err
	}
	return models.Session{ID: "new-session", UserID: "ta-1", Email: payload.Email, Role: models.RoleTA, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (s *stubAuth) Logout(ctx context.Context, id string) error {
	s.loggedOut = append(s.loggedOut, id)
	return nil
}

type stubAssignments struct {
	lastCreate dto.AssignmentCreateRequest
	lastFile   *multipart.FileHeader
}

func (s *stubAssignments) List(ctx context.Context, sess models.Session) ([]dto.AssignmentResponse, error) {
	return []dto.AssignmentResponse{{ID: "a1", Title: "for " + sess.Role}}, nil
}

func (s *stubAssignments) Create(ctx context.Context, sess models.Session, payload dto.AssignmentCreateRequest, file *multipart.FileHeader) (dto.AssignmentResponse, error) {
	s.lastCreate = payload
	s.lastFile = file
	return dto.AssignmentResponse{ID: "a-new", Title: payload.Title}, nil
}

func (s *stubAssignments) Update(ctx context.Context, sess models.Session, id string, payload dto.AssignmentUpdateRequest, file *multipart.FileHeader) (dto.AssignmentResponse, error) {
	return dto.AssignmentResponse{}, service.ErrAssignmentNotFound
}

func (s *stubAssignments) Delete(ctx context.Context, sess models.Session, id string) error {
	return nil
}

type stubCourses struct{}

func (stubCourses) List(ctx context.Context, sess models.Session) ([]dto.CourseResponse, error) {
	return []dto.CourseResponse{{ID: "c1"}}, nil
}

func (stubCourses) Create(ctx context.Context, sess models.Session, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	return dto.CourseResponse{ID: "c-new", Name: payload.Name}, nil
}

func (stubCourses) Update(ctx context.Context, sess models.Session, id string, payload dto.CourseUpdateRequest) (dto.CourseResponse, error) {
	return dto.CourseResponse{ID: id}, nil
}

func (stubCourses) Delete(ctx context.Context, sess models.Session, id string) error {
	return nil
}

type stubAnalytics struct{}

func (stubAnalytics) Summary(ctx context.Context, sess models.Session) (dto.AnalyticsResponse, error) {
	return dto.AnalyticsResponse{}, nil
}

type stubPlagiarism struct{}

func (stubPlagiarism) List(ctx context.Context, sess models.Session, query dto.PlagiarismQuery) ([]dto.PlagiarismReportResponse, error) {
	return []dto.PlagiarismReportResponse{{ID: "p1"}, {ID: "p2"}}, nil
}

type stubStudents struct{}

func (stubStudents) Grades(ctx context.Context, sess models.Session) (dto.StudentGradesResponse, error) {
	return dto.StudentGradesResponse{Grades: []dto.GradeResponse{{ID: "g1"}}}, nil
}

func (stubStudents) Dashboard(ctx context.Context, sess models.Session) (dto.StudentDashboardResponse, error) {
	return dto.StudentDashboardResponse{OpenRevaluations: 1}, nil
}

type stubRevaluations struct {
	err error
}

func (s *stubRevaluations) List(ctx context.Context, sess models.Session) ([]dto.RevaluationResponse, error) {
	return []dto.RevaluationResponse{}, nil
}

func (s *stubRevaluations) Create(ctx context.Context, sess models.Session, payload dto.RevaluationCreateRequest) (dto.RevaluationResponse, error) {
	if s.err != nil {
		return dto.RevaluationResponse{}, s.err
	}
	return dto.RevaluationResponse{ID: "rv-1", GradingID: payload.GradingID, Status: "pending"}, nil
}

type testApp struct {
	app          *fiber.App
	review       *stubReview
	auth         *stubAuth
	assignments  *stubAssignments
	revaluations *stubRevaluations
}

func setupApp(t *testing.T) testApp {
	t.Helper()

	logger := zerolog.New(io.Discard)
	deps := testApp{
		review:       &stubReview{},
		auth:         &stubAuth{},
		assignments:  &stubAssignments{},
		revaluations: &stubRevaluations{},
	}

	app := fiber.New()
	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, config.Config{AppName: "GradePro Test", AppEnv: "test", SessionStore: config.SessionStoreRedis}, router.Dependencies{
		AuthHandler:            handler.NewAuthHandler(deps.auth, false, logger),
		SubmissionHandler:      handler.NewSubmissionHandler(deps.review, logger),
		AssignmentHandler:      handler.NewAssignmentHandler(deps.assignments, logger),
		CourseHandler:          handler.NewCourseHandler(stubCourses{}, logger),
		FacultyInsightsHandler: handler.NewFacultyInsightsHandler(stubAnalytics{}, stubPlagiarism{}, logger),
		StudentHandler:         handler.NewStudentHandler(stubStudents{}, deps.revaluations, logger),
		SessionMiddleware:      middleware.SessionAuth(stubResolver{}, logger),
	})

	deps.app = app
	return deps
}

type envelope struct {
	Success bool                   `json:"success"`
	Data    json.RawMessage        `json:"data"`
	Meta    map[string]interface{} `json:"meta"`
	Details []handler.FieldError   `json:"details"`
	Message string                 `json:"message"`
}

func decodeResponse(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var body envelope
	require.NoError(t, json.Unmarshal(data, &body), string(data))
	return body
}
