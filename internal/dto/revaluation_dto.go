package dto

import (
	"time"

	"github.com/gradepro/gradepro-web/internal/grading"
	"github.com/gradepro/gradepro-web/internal/models"
)

// RevaluationCreateRequest is submitted by a student. Presence checks live in
// grading.ValidateRevaluation so they run before any backend call.
type RevaluationCreateRequest struct {
	GradingID string `json:"grading_id" validate:"max=64"`
	Reason    string `json:"reason" validate:"max=2000"`
}

// RevaluationResponse is a revaluation request as shown to the student.
type RevaluationResponse struct {
	ID          string                    `json:"id"`
	GradingID   string                    `json:"grading_id"`
	Reason      string                    `json:"reason"`
	Status      grading.RevaluationStatus `json:"status"`
	Terminal    bool                      `json:"terminal"`
	RequestedAt time.Time                 `json:"requested_at"`
	Response    string                    `json:"response,omitempty"`
	ResolvedAt  *time.Time                `json:"resolved_at,omitempty"`
}

// NewRevaluationResponse converts a backend request whose status was already validated.
func NewRevaluationResponse(model models.RevaluationRequest, status grading.RevaluationStatus) RevaluationResponse {
	return RevaluationResponse{
		ID:          model.ID,
		GradingID:   model.GradingID,
		Reason:      model.Reason,
		Status:      status,
		Terminal:    status.IsTerminal(),
		RequestedAt: model.RequestedAt,
		Response:    model.Response,
		ResolvedAt:  model.ResolvedAt,
	}
}
