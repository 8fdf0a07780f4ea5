package grading

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xorcare/pointer"

	"github.com/gradepro/gradepro-web/internal/models"
)

func submission(id, studentID, name, title string, grade *float64, max float64) models.Submission {
	return models.Submission{
		ID:         id,
		Student:    models.StudentRef{ID: studentID, Name: name},
		Assignment: models.AssignmentRef{ID: "a-" + id, Title: title, MaxMarks: max},
		Grade:      grade,
	}
}

func sampleSubmissions() []models.Submission {
	return []models.Submission{
		submission("1", "S1", "John Doe", "CS101 Lab 1", pointer.Float64(92), 100),
		submission("2", "S2", "Jane Roe", "CS101 Lab 2", nil, 100),
		submission("3", "S3", "Ravi Kumar", "MA201 Quiz", pointer.Float64(45), 100),
		submission("4", "S4", "Mei Lin", "CS101 Essay", pointer.Float64(36), 40),
		submission("5", "S5", "Jon Smith", "MA201 Midterm", pointer.Float64(10), 0),
	}
}

func ids(submissions []models.Submission) []string {
	result := make([]string, 0, len(submissions))
	for _, s := range submissions {
		result = append(result, s.ID)
	}
	return result
}

func TestFilterSearchScenario(t *testing.T) {
	input := []models.Submission{
		submission("1", "S1", "John Doe", "Lab", pointer.Float64(92), 100),
		submission("2", "S2", "Jane Roe", "Lab", nil, 100),
	}

	result := Filter(input, Criteria{SearchText: "jane"})
	require.Equal(t, []string{"2"}, ids(result))
}

func TestFilterEmptyCriteriaIsIdentity(t *testing.T) {
	input := sampleSubmissions()
	require.Equal(t, input, Filter(input, Criteria{}))
	require.True(t, Criteria{}.IsEmpty())
}

func TestFilterGradeLetter(t *testing.T) {
	input := []models.Submission{submission("1", "S1", "A", "Quiz", pointer.Float64(45), 100)}

	require.Len(t, Filter(input, Criteria{GradeLetter: LetterP}), 1)
	require.Empty(t, Filter(input, Criteria{GradeLetter: LetterF}))
}

func TestFilterGradeLetterSkipsUngradedAndInvalidMax(t *testing.T) {
	result := Filter(sampleSubmissions(), Criteria{GradeLetter: LetterF})
	require.Empty(t, result)

	result = Filter(sampleSubmissions(), Criteria{GradeLetter: LetterEx})
	require.Equal(t, []string{"1", "4"}, ids(result))
}

func TestFilterCourseTokenMatchesTitle(t *testing.T) {
	result := Filter(sampleSubmissions(), Criteria{CourseToken: "cs101"})
	require.Equal(t, []string{"1", "2", "4"}, ids(result))
}

func TestFilterSearchMatchesIDAndTitle(t *testing.T) {
	require.Equal(t, []string{"3"}, ids(Filter(sampleSubmissions(), Criteria{SearchText: "s3"})))
	require.Equal(t, []string{"5"}, ids(Filter(sampleSubmissions(), Criteria{SearchText: "MIDTERM"})))
	require.Equal(t, []string{"1", "5"}, ids(Filter(sampleSubmissions(), Criteria{SearchText: "jo"})))
}

func TestFilterIsOrderedSubsequenceAndPure(t *testing.T) {
	input := sampleSubmissions()
	snapshot := sampleSubmissions()

	criteria := []Criteria{
		{CourseToken: "cs"},
		{GradeLetter: LetterEx},
		{SearchText: "o"},
		{CourseToken: "ma", SearchText: "r"},
	}

	for _, c := range criteria {
		result := Filter(input, c)
		position := 0
		for _, item := range result {
			for position < len(input) && input[position].ID != item.ID {
				position++
			}
			require.Less(t, position, len(input), "result is not a subsequence for %+v", c)
			position++
		}
		require.Equal(t, result, Filter(input, c))
	}

	require.Equal(t, snapshot, input)
}

func TestFilterComposes(t *testing.T) {
	input := sampleSubmissions()
	first := Criteria{CourseToken: "cs101"}
	second := Criteria{GradeLetter: LetterEx}
	third := Criteria{SearchText: "mei"}

	combined := Criteria{CourseToken: "cs101", GradeLetter: LetterEx}
	require.Equal(t, Filter(input, combined), Filter(Filter(input, first), second))

	combined = Criteria{CourseToken: "cs101", SearchText: "mei"}
	require.Equal(t, Filter(input, combined), Filter(Filter(input, first), third))
}
