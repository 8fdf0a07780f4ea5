package grading

import (
	"fmt"
	"math"
	"time"
)

const day = 24 * time.Hour

// DueStatus describes how far away an assignment deadline is.
type DueStatus struct {
	DaysLeft int    `json:"days_left"`
	Label    string `json:"label"`
}

// DueStatusAt computes ceil((due - now) / 1 day) and its label.
func DueStatusAt(due, now time.Time) DueStatus {
	days := int(math.Ceil(float64(due.Sub(now)) / float64(day)))

	switch {
	case days < 0:
		return DueStatus{DaysLeft: days, Label: "Overdue"}
	case days == 0:
		return DueStatus{DaysLeft: 0, Label: "Due Today"}
	default:
		return DueStatus{DaysLeft: days, Label: fmt.Sprintf("%d days left", days)}
	}
}
