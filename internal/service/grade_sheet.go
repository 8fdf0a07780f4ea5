package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/gradepro/gradepro-web/internal/dto"
	"github.com/gradepro/gradepro-web/internal/grading"
	"github.com/gradepro/gradepro-web/internal/models"
)

// SpreadsheetContentType is the MIME type of exported grade sheets.
const SpreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	gradesSheet  = "Grades"
	summarySheet = "Summary"
)

// GradeSheet is an exported workbook ready to be streamed.
type GradeSheet struct {
	FileName string
	Content  []byte
	Rows     int
}

var gradeSheetHeaders = []string{
	"Student ID", "Student", "Email", "Assignment", "Max Marks",
	"Grade", "Percentage", "Letter", "Submitted At", "Graded At", "Feedback",
}

func (s *submissionReviewService) Export(ctx context.Context, sess models.Session, query dto.SubmissionQuery) (GradeSheet, error) {
	tracer := otel.Tracer("github.com/gradepro/gradepro-web/internal/service/submission_review")
	ctx, span := tracer.Start(ctx, "submissions.export")
	defer span.End()

	_, matched, err := s.filtered(ctx, sess, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submissions_export_failed")
		return GradeSheet{}, err
	}

	content, err := buildGradeSheet(matched)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "workbook_failed")
		return GradeSheet{}, err
	}

	span.SetAttributes(attribute.Int("export.rows", len(matched)))

	return GradeSheet{
		FileName: fmt.Sprintf("grades_%s.xlsx", s.now().Format("20060102_150405")),
		Content:  content,
		Rows:     len(matched),
	}, nil
}

func buildGradeSheet(submissions []models.Submission) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", gradesSheet); err != nil {
		return nil, fmt.Errorf("failed to name grade sheet: %w", err)
	}

	for i, header := range gradeSheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(gradesSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, submission := range submissions {
		row := i + 2
		view := dto.NewSubmissionResponse(submission)
		values := []interface{}{
			submission.Student.ID,
			submission.Student.Name,
			submission.Student.Email,
			submission.Assignment.Title,
			submission.Assignment.MaxMarks,
			nil,
			nil,
			string(view.Letter),
			formatSheetTime(&submission.SubmittedAt),
			formatSheetTime(submission.GradedAt),
			view.Feedback,
		}
		if view.Grade != nil {
			values[5] = *view.Grade
		}
		if view.Percentage != nil {
			values[6] = *view.Percentage
		}

		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(gradesSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	if err := writeSummarySheet(f, submissions); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, submissions []models.Submission) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}

	summary := grading.Aggregate(submissions)
	rows := [][]interface{}{
		{"Total", summary.Total},
		{"Graded", summary.Graded},
		{"Pending", summary.Pending},
		{"Average Grade", summary.AverageGrade},
		{},
		{"Letter", "Count"},
	}

	distribution := grading.Distribution(submissions)
	for _, letter := range grading.Letters() {
		rows = append(rows, []interface{}{string(letter), distribution[letter]})
	}

	for i, values := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		row := values
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	return nil
}

func formatSheetTime(value *time.Time) string {
	if value == nil || value.IsZero() {
		return ""
	}
	return value.UTC().Format("2006-01-02 15:04")
}
