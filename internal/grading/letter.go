package grading

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Letter is a grade letter derived from a percentage score.
type Letter string

const (
	LetterEx Letter = "Ex"
	LetterA  Letter = "A"
	LetterB  Letter = "B"
	LetterC  Letter = "C"
	LetterD  Letter = "D"
	LetterP  Letter = "P"
	LetterF  Letter = "F"
)

var (
	// ErrInvalidArgument is the kind shared by every classifier input error.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidMaxScore is returned when the maximum score is zero, negative or not finite.
	ErrInvalidMaxScore = fmt.Errorf("%w: max score must be a positive number", ErrInvalidArgument)
	// ErrInvalidScore is returned when the score is NaN or infinite.
	ErrInvalidScore = fmt.Errorf("%w: score must be a finite number", ErrInvalidArgument)
)

var letterBands = Bands[Letter]{
	{Min: 90, Label: LetterEx},
	{Min: 80, Label: LetterA},
	{Min: 70, Label: LetterB},
	{Min: 60, Label: LetterC},
	{Min: 50, Label: LetterD},
	{Min: 40, Label: LetterP},
	{Min: math.Inf(-1), Label: LetterF},
}

// Letters lists every grade letter from best to worst.
func Letters() []Letter {
	letters := make([]Letter, 0, len(letterBands))
	for _, band := range letterBands {
		letters = append(letters, band.Label)
	}
	return letters
}

// ParseLetter matches a letter case-insensitively ("ex", "EX" and "Ex" are equal).
func ParseLetter(value string) (Letter, bool) {
	trimmed := strings.TrimSpace(value)
	for _, letter := range Letters() {
		if strings.EqualFold(string(letter), trimmed) {
			return letter, true
		}
	}
	return "", false
}

// Percentage converts a score into a percentage of maxScore.
func Percentage(score, maxScore float64) (float64, error) {
	if math.IsNaN(maxScore) || math.IsInf(maxScore, 0) || maxScore <= 0 {
		return 0, ErrInvalidMaxScore
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, ErrInvalidScore
	}

	// score*100 first keeps integral inputs exact at the band edges.
	return score * 100 / maxScore, nil
}

// Classify maps a score out of maxScore to its grade letter. Band bounds are
// inclusive and no rounding is applied.
func Classify(score, maxScore float64) (Letter, error) {
	percentage, err := Percentage(score, maxScore)
	if err != nil {
		return "", err
	}

	letter, _ := letterBands.Classify(percentage)
	return letter, nil
}
