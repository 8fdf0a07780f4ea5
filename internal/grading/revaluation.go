package grading

import (
	"errors"
	"strings"

	"github.com/gradepro/gradepro-web/internal/models"
)

// RevaluationStatus is the lifecycle state of a revaluation request.
type RevaluationStatus string

const (
	RevaluationPending  RevaluationStatus = "pending"
	RevaluationInReview RevaluationStatus = "in-review"
	RevaluationApproved RevaluationStatus = "approved"
	RevaluationRejected RevaluationStatus = "rejected"
)

var (
	// ErrGradingIDRequired is returned when no grade was selected.
	ErrGradingIDRequired = errors.New("grading id is required")
	// ErrReasonRequired is returned when the reason is empty.
	ErrReasonRequired = errors.New("reason is required")
	// ErrRevaluationNotEligible is returned for grades already under revaluation or unknown to the student.
	ErrRevaluationNotEligible = errors.New("grade is not eligible for revaluation")
	// ErrUnknownRevaluationStatus is returned for statuses outside the lifecycle.
	ErrUnknownRevaluationStatus = errors.New("unknown revaluation status")
)

var revaluationTransitions = map[RevaluationStatus][]RevaluationStatus{
	RevaluationPending:  {RevaluationInReview},
	RevaluationInReview: {RevaluationApproved, RevaluationRejected},
}

// ParseRevaluationStatus validates a status observed from the backend.
func ParseRevaluationStatus(value string) (RevaluationStatus, error) {
	status := RevaluationStatus(strings.ToLower(strings.TrimSpace(value)))
	switch status {
	case RevaluationPending, RevaluationInReview, RevaluationApproved, RevaluationRejected:
		return status, nil
	default:
		return "", ErrUnknownRevaluationStatus
	}
}

// IsTerminal reports whether no further transition can happen.
func (s RevaluationStatus) IsTerminal() bool {
	return s == RevaluationApproved || s == RevaluationRejected
}

// CanTransition reports whether the backend may move a request from one status to another.
func CanTransition(from, to RevaluationStatus) bool {
	for _, next := range revaluationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// EligibleForRevaluation returns the grades a new request may target, keeping order.
func EligibleForRevaluation(grades []models.Grade) []models.Grade {
	eligible := make([]models.Grade, 0, len(grades))
	for _, grade := range grades {
		if !grade.RevaluationRequested {
			eligible = append(eligible, grade)
		}
	}
	return eligible
}

// ValidateRevaluation checks a request before it is sent. Only grades in the
// eligible list may be targeted, so at most one request exists per grade.
func ValidateRevaluation(input models.RevaluationInput, eligible []models.Grade) error {
	if strings.TrimSpace(input.GradingID) == "" {
		return ErrGradingIDRequired
	}
	if strings.TrimSpace(input.Reason) == "" {
		return ErrReasonRequired
	}

	for _, grade := range eligible {
		if grade.ID == input.GradingID && !grade.RevaluationRequested {
			return nil
		}
	}

	return ErrRevaluationNotEligible
}
