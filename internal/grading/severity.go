package grading

// Severity is the band assigned to a similarity score.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// SeverityBand pairs a severity with the color used to render it.
type SeverityBand struct {
	Level Severity `json:"level"`
	Color string   `json:"color"`
}

var severityBands = Bands[SeverityBand]{
	{Min: 75, Label: SeverityBand{Level: SeverityHigh, Color: "red"}},
	{Min: 50, Label: SeverityBand{Level: SeverityMedium, Color: "orange"}},
}

var lowSeverity = SeverityBand{Level: SeverityLow, Color: "green"}

// ClassifySimilarity bands a 0-100 similarity score. Anything below the medium
// bound, NaN included, is low.
func ClassifySimilarity(score float64) SeverityBand {
	if band, ok := severityBands.Classify(score); ok {
		return band
	}
	return lowSeverity
}

// ParseSeverity accepts one of high, medium or low.
func ParseSeverity(value string) (Severity, bool) {
	switch Severity(value) {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return Severity(value), true
	default:
		return "", false
	}
}
