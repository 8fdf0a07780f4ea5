package backend

import (
	"context"
	"net/http"

	"github.com/gradepro/gradepro-web/internal/models"
)

var (
	epLogin              = endpoint{method: http.MethodPost, route: "/auth/login", schema: "login.json"}
	epTASubmissions      = endpoint{method: http.MethodGet, route: "/ta/submissions", schema: "submission.json", list: true}
	epGradeSubmission    = endpoint{method: http.MethodPut, route: "/ta/submissions/:id/grade", schema: "submission.json", optional: true}
	epFacultySubmissions = endpoint{method: http.MethodGet, route: "/faculty/submissions", schema: "submission.json", list: true}
	epListAssignments    = endpoint{method: http.MethodGet, route: "/faculty/assignments", schema: "assignment.json", list: true}
	epCreateAssignment   = endpoint{method: http.MethodPost, route: "/faculty/assignments", schema: "assignment.json"}
	epUpdateAssignment   = endpoint{method: http.MethodPut, route: "/faculty/assignments/:id", schema: "assignment.json"}
	epDeleteAssignment   = endpoint{method: http.MethodDelete, route: "/faculty/assignments/:id"}
	epListCourses        = endpoint{method: http.MethodGet, route: "/faculty/courses", schema: "course.json", list: true}
	epCreateCourse       = endpoint{method: http.MethodPost, route: "/faculty/courses", schema: "course.json"}
	epUpdateCourse       = endpoint{method: http.MethodPut, route: "/faculty/courses/:id", schema: "course.json"}
	epDeleteCourse       = endpoint{method: http.MethodDelete, route: "/faculty/courses/:id"}
	epPlagiarismReports  = endpoint{method: http.MethodGet, route: "/faculty/plagiarism", schema: "plagiarism_report.json", list: true}
	epStudentAssignments = endpoint{method: http.MethodGet, route: "/students/assignments", schema: "assignment.json", list: true}
	epStudentGrades      = endpoint{method: http.MethodGet, route: "/students/grades", schema: "grade.json", list: true}
	epListRevaluations   = endpoint{method: http.MethodGet, route: "/students/revaluation", schema: "revaluation.json", list: true}
	epCreateRevaluation  = endpoint{method: http.MethodPost, route: "/students/revaluation", schema: "revaluation.json", optional: true}
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a backend bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (models.LoginResult, error) {
	req := c.request(ctx, "").SetBody(credentials{Email: email, Password: password})
	return receive[models.LoginResult](ctx, c, req, epLogin, "")
}

// ListTASubmissions returns the submissions visible to a teaching assistant.
func (c *Client) ListTASubmissions(ctx context.Context, token string) ([]models.Submission, error) {
	return receive[[]models.Submission](ctx, c, c.request(ctx, token), epTASubmissions, "")
}

// ListFacultySubmissions returns the submissions across the faculty member's courses.
func (c *Client) ListFacultySubmissions(ctx context.Context, token string) ([]models.Submission, error) {
	return receive[[]models.Submission](ctx, c, c.request(ctx, token), epFacultySubmissions, "")
}

// GradeSubmission stores a grade and feedback for a submission.
func (c *Client) GradeSubmission(ctx context.Context, token, submissionID string, input models.GradeInput) (models.Submission, error) {
	req := c.request(ctx, token).SetBody(input)
	return receive[models.Submission](ctx, c, req, epGradeSubmission, submissionID)
}

// ListAssignments returns the faculty member's assignments.
func (c *Client) ListAssignments(ctx context.Context, token string) ([]models.Assignment, error) {
	return receive[[]models.Assignment](ctx, c, c.request(ctx, token), epListAssignments, "")
}

// CreateAssignment creates an assignment.
func (c *Client) CreateAssignment(ctx context.Context, token string, input models.AssignmentInput) (models.Assignment, error) {
	req := c.request(ctx, token).SetBody(input)
	return receive[models.Assignment](ctx, c, req, epCreateAssignment, "")
}

// UpdateAssignment replaces an assignment's editable fields.
func (c *Client) UpdateAssignment(ctx context.Context, token, id string, input models.AssignmentInput) (models.Assignment, error) {
	req := c.request(ctx, token).SetBody(input)
	return receive[models.Assignment](ctx, c, req, epUpdateAssignment, id)
}

// DeleteAssignment removes an assignment.
func (c *Client) DeleteAssignment(ctx context.Context, token, id string) error {
	_, err := receive[struct{}](ctx, c, c.request(ctx, token), epDeleteAssignment, id)
	return err
}

// ListCourses returns the faculty member's courses.
func (c *Client) ListCourses(ctx context.Context, token string) ([]models.Course, error) {
	return receive[[]models.Course](ctx, c, c.request(ctx, token), epListCourses, "")
}

// CreateCourse creates a course.
func (c *Client) CreateCourse(ctx context.Context, token string, input models.CourseInput) (models.Course, error) {
	req := c.request(ctx, token).SetBody(input)
	return receive[models.Course](ctx, c, req, epCreateCourse, "")
}

// UpdateCourse replaces a course's editable fields.
func (c *Client) UpdateCourse(ctx context.Context, token, id string, input models.CourseInput) (models.Course, error) {
	req := c.request(ctx, token).SetBody(input)
	return receive[models.Course](ctx, c, req, epUpdateCourse, id)
}

// DeleteCourse removes a course.
func (c *Client) DeleteCourse(ctx context.Context, token, id string) error {
	_, err := receive[struct{}](ctx, c, c.request(ctx, token), epDeleteCourse, id)
	return err
}

// ListPlagiarismReports returns similarity reports for the faculty member's submissions.
func (c *Client) ListPlagiarismReports(ctx context.Context, token string) ([]models.PlagiarismReport, error) {
	return receive[[]models.PlagiarismReport](ctx, c, c.request(ctx, token), epPlagiarismReports, "")
}

// ListStudentAssignments returns the assignments of the student's courses.
func (c *Client) ListStudentAssignments(ctx context.Context, token string) ([]models.Assignment, error) {
	return receive[[]models.Assignment](ctx, c, c.request(ctx, token), epStudentAssignments, "")
}

// ListStudentGrades returns the student's graded submissions.
func (c *Client) ListStudentGrades(ctx context.Context, token string) ([]models.Grade, error) {
	return receive[[]models.Grade](ctx, c, c.request(ctx, token), epStudentGrades, "")
}

// ListRevaluations returns the student's revaluation requests.
func (c *Client) ListRevaluations(ctx context.Context, token string) ([]models.RevaluationRequest, error) {
	return receive[[]models.RevaluationRequest](ctx, c, c.request(ctx, token), epListRevaluations, "")
}

// CreateRevaluation files a revaluation request.
func (c *Client) CreateRevaluation(ctx context.Context, token string, input models.RevaluationInput) (models.RevaluationRequest, error) {
	req := c.request(ctx, token).SetBody(input)
	return receive[models.RevaluationRequest](ctx, c, req, epCreateRevaluation, "")
}
