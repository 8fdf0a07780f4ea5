package grading

import (
	"strings"

	"github.com/gradepro/gradepro-web/internal/models"
)

// Criteria narrows a submission list. Empty fields match everything.
type Criteria struct {
	// CourseToken is matched against the assignment title, not the course code.
	// Pages pass the selected course name here and rely on titles carrying it.
	CourseToken string
	GradeLetter Letter
	SearchText  string
}

// IsEmpty reports whether no criterion is set.
func (c Criteria) IsEmpty() bool {
	return c.CourseToken == "" && c.GradeLetter == "" && c.SearchText == ""
}

// Matches reports whether a single submission satisfies every criterion.
func (c Criteria) Matches(submission models.Submission) bool {
	if c.CourseToken != "" && !containsFold(submission.Assignment.Title, c.CourseToken) {
		return false
	}

	if c.GradeLetter != "" {
		if submission.Grade == nil {
			return false
		}
		letter, err := Classify(*submission.Grade, submission.Assignment.MaxMarks)
		if err != nil || letter != c.GradeLetter {
			return false
		}
	}

	if c.SearchText != "" {
		if !containsFold(submission.Student.Name, c.SearchText) &&
			!containsFold(submission.Student.ID, c.SearchText) &&
			!containsFold(submission.Assignment.Title, c.SearchText) {
			return false
		}
	}

	return true
}

// Filter returns the submissions matching all criteria in their original order.
// The input slice is never modified.
func Filter(submissions []models.Submission, criteria Criteria) []models.Submission {
	result := make([]models.Submission, 0, len(submissions))
	for _, submission := range submissions {
		if criteria.Matches(submission) {
			result = append(result, submission)
		}
	}
	return result
}

func containsFold(value, token string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(token))
}
