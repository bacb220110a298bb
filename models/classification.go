package models

import "time"

// ClassLabel names one ingredient class of the classifier.
type ClassLabel string

// ClassificationResult is the top class of one inference, ConfidenceScore in [0,100].
type ClassificationResult struct {
	Label           ClassLabel `json:"label"`
	ConfidenceScore float64    `json:"confidenceScore"`
}

// Prediction is what a classify call returns to the client.
type Prediction struct {
	ID              string     `json:"id"`
	Result          ClassLabel `json:"result"`
	ConfidenceScore float64    `json:"confidenceScore"`
	Accepted        bool       `json:"accepted"`
	DietType        DietType   `json:"dietType"`
	CreatedAt       time.Time  `json:"createdAt"`
	Meals           []Meal     `json:"meals"`
}

// Labels converts plain names into ClassLabels keeping order.
func Labels(names []string) []ClassLabel {
	out := make([]ClassLabel, len(names))
	for i, n := range names {
		out[i] = ClassLabel(n)
	}
	return out
}
