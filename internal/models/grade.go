package models

import "time"

// Grade is a graded submission as seen by the student who owns it.
type Grade struct {
	ID                   string        `json:"id"`
	SubmissionID         string        `json:"submissionId"`
	Assignment           AssignmentRef `json:"assignment"`
	Marks                float64       `json:"marks"`
	MaxMarks             float64       `json:"maxMarks"`
	Feedback             string        `json:"feedback,omitempty"`
	GradedAt             *time.Time    `json:"gradedAt,omitempty"`
	RevaluationRequested bool          `json:"revaluationRequested"`
}

// EffectiveMaxMarks prefers the grade's own bound and falls back to the assignment's.
func (g Grade) EffectiveMaxMarks() float64 {
	if g.MaxMarks > 0 {
		return g.MaxMarks
	}
	return g.Assignment.MaxMarks
}
