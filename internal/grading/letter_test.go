package grading

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Letter
	}{
		{100, LetterEx},
		{90, LetterEx},
		{89.999, LetterA},
		{80, LetterA},
		{79.999, LetterB},
		{70, LetterB},
		{69.999, LetterC},
		{60, LetterC},
		{59.999, LetterD},
		{50, LetterD},
		{49.999, LetterP},
		{40, LetterP},
		{39.999, LetterF},
		{0, LetterF},
	}

	for _, tc := range cases {
		letter, err := Classify(tc.score, 100)
		require.NoError(t, err)
		require.Equal(t, tc.want, letter, "score %v", tc.score)
	}
}

func TestClassifyScaleInvariance(t *testing.T) {
	maxScores := []float64{1, 7, 20, 50, 100, 250}
	for _, max := range maxScores {
		for step := 0; step <= 40; step++ {
			score := max * float64(step) / 40
			single, err := Classify(score, max)
			require.NoError(t, err)
			doubled, err := Classify(score*2, max*2)
			require.NoError(t, err)
			require.Equal(t, single, doubled, "score %v of %v", score, max)
		}
	}
}

func TestClassifyRejectsInvalidMaxScore(t *testing.T) {
	for _, max := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		_, err := Classify(10, max)
		require.ErrorIs(t, err, ErrInvalidMaxScore)
		require.ErrorIs(t, err, ErrInvalidArgument)
	}

	_, err := Classify(math.NaN(), 100)
	require.ErrorIs(t, err, ErrInvalidScore)
}

func TestClassifyAboveMaxStaysTopBand(t *testing.T) {
	letter, err := Classify(120, 100)
	require.NoError(t, err)
	require.Equal(t, LetterEx, letter)
}

func TestParseLetter(t *testing.T) {
	letter, ok := ParseLetter(" ex ")
	require.True(t, ok)
	require.Equal(t, LetterEx, letter)

	_, ok = ParseLetter("E")
	require.False(t, ok)
}

func TestBandsClassifyNoMatch(t *testing.T) {
	bands := Bands[string]{{Min: 10, Label: "ten"}}
	_, ok := bands.Classify(5)
	require.False(t, ok)

	_, ok = bands.Classify(math.NaN())
	require.False(t, ok)

	label, ok := bands.Classify(10)
	require.True(t, ok)
	require.Equal(t, "ten", label)
}

func TestClassifySimilarity(t *testing.T) {
	require.Equal(t, SeverityBand{Level: SeverityHigh, Color: "red"}, ClassifySimilarity(75))
	require.Equal(t, SeverityHigh, ClassifySimilarity(100).Level)
	require.Equal(t, SeverityBand{Level: SeverityMedium, Color: "orange"}, ClassifySimilarity(74.9))
	require.Equal(t, SeverityMedium, ClassifySimilarity(50).Level)
	require.Equal(t, SeverityBand{Level: SeverityLow, Color: "green"}, ClassifySimilarity(49.9))
	require.Equal(t, SeverityLow, ClassifySimilarity(math.NaN()).Level)
}
