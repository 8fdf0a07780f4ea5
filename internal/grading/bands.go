package grading

// Band is one row of an ordered threshold table.
type Band[T any] struct {
	Min   float64
	Label T
}

// Bands is a threshold table sorted by Min, highest first.
type Bands[T any] []Band[T]

// Classify returns the label of the first band whose lower bound the value meets.
// The boolean is false when no band matches, which includes NaN input.
func (b Bands[T]) Classify(value float64) (T, bool) {
	for _, band := range b {
		if value >= band.Min {
			return band.Label, true
		}
	}

	var zero T
	return zero, false
}
