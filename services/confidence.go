package services

import "fmt"

const (
	DefaultConfidenceThreshold = 99.0

	acceptedMessage = "Model is predicted successfully."
)

// Verdict is advisory: a rejected prediction still carries its label and meals.
type Verdict struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message"`
}

type ConfidencePolicy struct {
	threshold float64
}

func NewConfidencePolicy(threshold float64) ConfidencePolicy {
	return ConfidencePolicy{threshold: threshold}
}

// Evaluate accepts scores strictly above the threshold.
func (p ConfidencePolicy) Evaluate(score float64) Verdict {
	if score > p.threshold {
		return Verdict{Accepted: true, Message: acceptedMessage}
	}
	return Verdict{
		Message: fmt.Sprintf("Prediction confidence is below threshold (Score: %.2f%%). Please try a clearer picture.", score),
	}
}
