package grading

import (
	"strconv"

	"github.com/gradepro/gradepro-web/internal/models"
)

// NotAvailable is the average reported when nothing has been graded.
const NotAvailable = "N/A"

// Summary holds dashboard counters. AverageGrade is either a one-decimal number
// or NotAvailable, so callers must check HasAverage before parsing it.
type Summary struct {
	Total        int    `json:"total"`
	Graded       int    `json:"graded"`
	Pending      int    `json:"pending"`
	AverageGrade string `json:"average_grade"`
}

// HasAverage reports whether AverageGrade holds a number.
func (s Summary) HasAverage() bool {
	return s.AverageGrade != NotAvailable
}

// Aggregate derives dashboard counters from submissions.
func Aggregate(submissions []models.Submission) Summary {
	grades := make([]float64, 0, len(submissions))
	for _, submission := range submissions {
		if submission.Grade != nil {
			grades = append(grades, *submission.Grade)
		}
	}
	return summarize(len(submissions), grades)
}

// AggregateGrades derives the same counters from a student's grade list, where
// every entry is graded.
func AggregateGrades(grades []models.Grade) Summary {
	marks := make([]float64, 0, len(grades))
	for _, grade := range grades {
		marks = append(marks, grade.Marks)
	}
	return summarize(len(grades), marks)
}

func summarize(total int, grades []float64) Summary {
	summary := Summary{
		Total:        total,
		Graded:       len(grades),
		Pending:      total - len(grades),
		AverageGrade: NotAvailable,
	}

	if len(grades) == 0 {
		return summary
	}

	var sum float64
	for _, grade := range grades {
		sum += grade
	}
	summary.AverageGrade = strconv.FormatFloat(sum/float64(len(grades)), 'f', 1, 64)

	return summary
}

// Distribution counts graded submissions per letter. Ungraded submissions and
// those whose assignment has no usable max score are skipped.
func Distribution(submissions []models.Submission) map[Letter]int {
	distribution := make(map[Letter]int, len(letterBands))
	for _, letter := range Letters() {
		distribution[letter] = 0
	}

	for _, submission := range submissions {
		if submission.Grade == nil {
			continue
		}
		letter, err := Classify(*submission.Grade, submission.Assignment.MaxMarks)
		if err != nil {
			continue
		}
		distribution[letter]++
	}

	return distribution
}
