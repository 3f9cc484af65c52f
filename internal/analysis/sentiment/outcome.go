package sentiment

import "strings"

// Label 表示情感分类结果。
type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

// ParseLabel normalizes a backend label. Anything outside the three known
// labels is rejected.
func ParseLabel(raw string) (Label, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "positive":
		return Positive, true
	case "neutral":
		return Neutral, true
	case "negative":
		return Negative, true
	default:
		return "", false
	}
}

// Status tags an Outcome.
type Status string

const (
	StatusOK          Status = "ok"
	StatusUnavailable Status = "unavailable"
	StatusFailed      Status = "failed"
)

// Outcome is the result of one classification attempt. Label is only set
// when Status is StatusOK; Reason is only set when Status is StatusFailed.
type Outcome struct {
	Status Status
	Label  Label
	Reason string
}

// OK wraps a successful classification.
func OK(label Label) Outcome {
	return Outcome{Status: StatusOK, Label: label}
}

// Unavailable reports that no backend is configured.
func Unavailable() Outcome {
	return Outcome{Status: StatusUnavailable}
}

// Failed reports a backend failure.
func Failed(reason string) Outcome {
	return Outcome{Status: StatusFailed, Reason: reason}
}

// IsNegative reports whether the outcome is a successful negative label.
func (o Outcome) IsNegative() bool {
	return o.Status == StatusOK && o.Label == Negative
}
