package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/gradepro/gradepro-web/internal/backend"
	"github.com/gradepro/gradepro-web/internal/dto"
	"github.com/gradepro/gradepro-web/internal/grading"
	"github.com/gradepro/gradepro-web/internal/handler"
	"github.com/gradepro/gradepro-web/internal/middleware"
	"github.com/gradepro/gradepro-web/internal/service"
)

func authorized(method, target, sessionID string, body *strings.Reader) *httptestRequest {
	return &httptestRequest{method: method, target: target, session: sessionID, body: body}
}

type httptestRequest struct {
	method  string
	target  string
	session string
	body    *strings.Reader
}

func (r *httptestRequest) send(t *testing.T, app *fiber.App) envelopeResponse {
	t.Helper()

	var req = httptest.NewRequest(r.method, r.target, nil)
	if r.body != nil {
		req = httptest.NewRequest(r.method, r.target, r.body)
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if r.session != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+r.session)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return envelopeResponse{status: resp.StatusCode, body: decodeResponse(t, resp)}
}

type envelopeResponse struct {
	status int
	body   envelope
}

func TestHealthCheck(t *testing.T) {
	app := setupApp(t).app

	res := authorized("GET", "/api/v1/health", "", nil).send(t, app)
	require.Equal(t, fiber.StatusOK, res.status)
	require.True(t, res.body.Success)

	var health handler.HealthResponse
	require.NoError(t, json.Unmarshal(res.body.Data, &health))
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "GradePro Test", health.Service)
	require.Equal(t, "redis", health.SessionStore)
	require.WithinDuration(t, time.Now().UTC(), health.Timestamp, 2*time.Second)
}

func TestRoutesRequireSession(t *testing.T) {
	app := setupApp(t).app

	res := authorized("GET", "/api/v1/ta/submissions", "", nil).send(t, app)
	require.Equal(t, fiber.StatusUnauthorized, res.status)

	res = authorized("GET", "/api/v1/ta/submissions", "expired", nil).send(t, app)
	require.Equal(t, fiber.StatusUnauthorized, res.status)
	require.Contains(t, res.body.Message, "sign in again")
}

func TestRoutesEnforceRoles(t *testing.T) {
	app := setupApp(t).app

	cases := []struct {
		target  string
		session string
		status  int
	}{
		{"/api/v1/ta/submissions", "student-session", fiber.StatusForbidden},
		{"/api/v1/ta/submissions", "ta-session", fiber.StatusOK},
		{"/api/v1/ta/submissions", "faculty-session", fiber.StatusOK},
		{"/api/v1/faculty/submissions", "ta-session", fiber.StatusForbidden},
		{"/api/v1/faculty/courses", "faculty-session", fiber.StatusOK},
		{"/api/v1/student/grades", "faculty-session", fiber.StatusForbidden},
		{"/api/v1/student/dashboard", "student-session", fiber.StatusOK},
		{"/api/v1/student/assignments", "student-session", fiber.StatusOK},
	}

	for _, tc := range cases {
		res := authorized("GET", tc.target, tc.session, nil).send(t, app)
		require.Equal(t, tc.status, res.status, "%s as %s", tc.target, tc.session)
	}
}

func TestSubmissionListParsesQuery(t *testing.T) {
	deps := setupApp(t)

	res := authorized("GET", "/api/v1/ta/submissions?course=CS101&grade=ex&search=jane", "ta-session", nil).send(t, deps.app)
	require.Equal(t, fiber.StatusOK, res.status)
	require.Equal(t, dto.SubmissionQuery{Course: "CS101", Grade: "ex", Search: "jane"}, deps.review.lastQuery)

	var list dto.SubmissionListResponse
	require.NoError(t, json.Unmarshal(res.body.Data, &list))
	require.Equal(t, 1, list.Matched)
}

func TestGradeSubmissionErrorMapping(t *testing.T) {
	validationErr := validator.New(validator.WithRequiredStructEnabled()).Struct(dto.GradeSubmissionRequest{})
	require.Error(t, validationErr)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", validationErr, fiber.StatusBadRequest},
		{"above max", service.ErrScoreExceedsMax, fiber.StatusBadRequest},
		{"invalid max", grading.ErrInvalidMaxScore, fiber.StatusUnprocessableEntity},
		{"missing", service.ErrSubmissionNotFound, fiber.StatusNotFound},
		{"backend forbidden", &backend.Error{Status: 403, Message: "not your course"}, fiber.StatusForbidden},
		{"backend token expired", &backend.Error{Status: 401}, fiber.StatusUnauthorized},
		{"backend crash", &backend.Error{Status: 500, Message: "boom"}, fiber.StatusBadGateway},
		{"unreachable", backend.ErrUnavailable, fiber.StatusBadGateway},
		{"unexpected", errors.New("disk on fire"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			deps := setupApp(t)
			deps.review.gradeErr = tc.err

			res := authorized("PUT", "/api/v1/ta/submissions/sub-1/grade", "ta-session", strings.NewReader(`{"grade":12,"feedback":"ok"}`)).send(t, deps.app)
			require.Equal(t, tc.status, res.status)
			require.False(t, res.body.Success)
		})
	}
}

func TestGradeSubmissionValidationDetails(t *testing.T) {
	deps := setupApp(t)
	deps.review.gradeErr = validator.New(validator.WithRequiredStructEnabled()).Struct(dto.GradeSubmissionRequest{})

	res := authorized("PUT", "/api/v1/ta/submissions/sub-1/grade", "ta-session", strings.NewReader(`{}`)).send(t, deps.app)
	require.Equal(t, fiber.StatusBadRequest, res.status)
	require.Equal(t, []handler.FieldError{{Field: "Grade", Rule: "required"}}, res.body.Details)
}

func TestGradeSubmission(t *testing.T) {
	deps := setupApp(t)

	res := authorized("PUT", "/api/v1/ta/submissions/sub-9/grade", "ta-session", strings.NewReader(`{"grade":18.5,"feedback":"nice"}`)).send(t, deps.app)
	require.Equal(t, fiber.StatusOK, res.status)
	require.Equal(t, 18.5, *deps.review.lastGrade.Grade)

	var submission dto.SubmissionResponse
	require.NoError(t, json.Unmarshal(res.body.Data, &submission))
	require.Equal(t, "sub-9", submission.ID)
}

func TestExportGradeSheet(t *testing.T) {
	app := setupApp(t).app

	req := httptest.NewRequest("GET", "/api/v1/faculty/submissions/export?course=CS101", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer faculty-session")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, service.SpreadsheetContentType, resp.Header.Get(fiber.HeaderContentType))
	require.Equal(t, `attachment; filename="grades_20260302_100000.xlsx"`, resp.Header.Get(fiber.HeaderContentDisposition))
}

func TestRevaluationErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{grading.ErrReasonRequired, fiber.StatusBadRequest},
		{grading.ErrGradingIDRequired, fiber.StatusBadRequest},
		{grading.ErrRevaluationNotEligible, fiber.StatusConflict},
		{nil, fiber.StatusCreated},
	}

	for _, tc := range cases {
		deps := setupApp(t)
		deps.revaluations.err = tc.err

		res := authorized("POST", "/api/v1/student/revaluations", "student-session", strings.NewReader(`{"grading_id":"g1","reason":"recount"}`)).send(t, deps.app)
		require.Equal(t, tc.status, res.status, "%v", tc.err)
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	app := setupApp(t).app

	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(`{"email":"ta@uni.edu","password":"secret"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var cookie string
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			cookie = c.Value
			require.True(t, c.HttpOnly)
		}
	}
	require.Equal(t, "new-session", cookie)

	body := decodeResponse(t, resp)
	var sess dto.SessionResponse
	require.NoError(t, json.Unmarshal(body.Data, &sess))
	require.Equal(t, "new-session", sess.SessionID)
	require.Equal(t, "ta", sess.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	deps := setupApp(t)
	deps.auth.err = service.ErrInvalidCredentials

	res := authorized("POST", "/api/v1/auth/login", "", strings.NewReader(`{"email":"ta@uni.edu","password":"x"}`)).send(t, deps.app)
	require.Equal(t, fiber.StatusUnauthorized, res.status)
}

func TestMeAndLogoutWithCookie(t *testing.T) {
	deps := setupApp(t)

	req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "ta-session"})
	resp, err := deps.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var sess dto.SessionResponse
	require.NoError(t, json.Unmarshal(decodeResponse(t, resp).Data, &sess))
	require.Equal(t, "ta-1", sess.UserID)
	require.Empty(t, sess.SessionID)

	res := authorized("POST", "/api/v1/auth/logout", "ta-session", nil).send(t, deps.app)
	require.Equal(t, fiber.StatusOK, res.status)
	require.Equal(t, []string{"ta-session"}, deps.auth.loggedOut)
}

func TestAssignmentCreateMultipart(t *testing.T) {
	deps := setupApp(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("title", "Lab 4"))
	require.NoError(t, writer.WriteField("due_date", "2026-04-01T23:59:00Z"))
	require.NoError(t, writer.WriteField("max_marks", "25"))
	require.NoError(t, writer.WriteField("course_id", "c1"))
	part, err := writer.CreateFormFile("attachment", "brief.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/v1/faculty/assignments", body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer faculty-session")
	resp, err := deps.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	require.Equal(t, "Lab 4", deps.assignments.lastCreate.Title)
	require.Equal(t, 25.0, deps.assignments.lastCreate.MaxMarks)
	require.NotNil(t, deps.assignments.lastFile)
	require.Equal(t, "brief.pdf", deps.assignments.lastFile.Filename)
}

func TestAssignmentUpdateNotFound(t *testing.T) {
	app := setupApp(t).app

	res := authorized("PUT", "/api/v1/faculty/assignments/missing", "faculty-session", strings.NewReader(`{"title":"New title"}`)).send(t, app)
	require.Equal(t, fiber.StatusNotFound, res.status)
}

func TestPlagiarismMeta(t *testing.T) {
	app := setupApp(t).app

	res := authorized("GET", "/api/v1/faculty/plagiarism?severity=high", "faculty-session", nil).send(t, app)
	require.Equal(t, fiber.StatusOK, res.status)
	require.Equal(t, float64(2), res.body.Meta["count"])
}

func TestMetricsEndpoint(t *testing.T) {
	app := setupApp(t).app

	req := httptest.NewRequest("GET", "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
