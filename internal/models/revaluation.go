package models

import "time"

// RevaluationRequest asks for a graded submission to be reviewed again.
type RevaluationRequest struct {
	ID          string     `json:"id"`
	GradingID   string     `json:"gradingId"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requestedAt"`
	Response    string     `json:"response,omitempty"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
}

// RevaluationInput is the only revaluation write the gateway performs.
type RevaluationInput struct {
	GradingID string `json:"gradingId"`
	Reason    string `json:"reason"`
}
