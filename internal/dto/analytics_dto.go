package dto

import (
	"time"

	"github.com/gradepro/gradepro-web/internal/grading"
)

// AssignmentAnalytics summarizes grading progress for one assignment.
type AssignmentAnalytics struct {
	AssignmentID string          `json:"assignment_id"`
	Title        string          `json:"title"`
	MaxMarks     float64         `json:"max_marks"`
	Summary      grading.Summary `json:"summary"`
}

// AnalyticsResponse is the faculty analytics page.
type AnalyticsResponse struct {
	Summary      grading.Summary        `json:"summary"`
	Distribution map[grading.Letter]int `json:"distribution"`
	Assignments  []AssignmentAnalytics  `json:"assignments"`
	GeneratedAt  time.Time              `json:"generated_at"`
}
