package models

import "time"

// PlagiarismMatch is one source the checker found similar content in.
type PlagiarismMatch struct {
	Source     string  `json:"source"`
	Similarity float64 `json:"similarity"`
}

// PlagiarismReport is the similarity check result for a submission.
type PlagiarismReport struct {
	ID           string            `json:"id"`
	SubmissionID string            `json:"submissionId"`
	Student      StudentRef        `json:"student"`
	Assignment   AssignmentRef     `json:"assignment"`
	Similarity   float64           `json:"similarity"`
	Matches      []PlagiarismMatch `json:"matches"`
	CheckedAt    time.Time         `json:"checkedAt"`
}
