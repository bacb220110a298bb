package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sunfrisky19/model-meals-workouts/metrics"
	"github.com/sunfrisky19/model-meals-workouts/models"
)

// Model is a loaded classifier handle supplied by the model host.
// Predict returns one probability-like value per class.
type Model interface {
	Name() string
	InputShape() []int
	Predict(ctx context.Context, t Tensor) ([]float32, error)
}

type Classifier struct {
	model  Model
	labels []models.ClassLabel
}

func NewClassifier(model Model, labels []models.ClassLabel) *Classifier {
	return &Classifier{model: model, labels: labels}
}

func (c *Classifier) ModelName() string {
	return c.model.Name()
}

// Predict runs one forward pass and picks the arg-max class, lowest index winning ties.
func (c *Classifier) Predict(ctx context.Context, t Tensor) (models.ClassificationResult, error) {
	if want := c.model.InputShape(); !SameShape(t.Shape, want) {
		return models.ClassificationResult{}, &InferenceError{
			Reason: fmt.Sprintf("tensor shape %v does not match model input %v", t.Shape, want),
		}
	}

	start := time.Now()
	scores, err := c.model.Predict(ctx, t)
	metrics.InferenceDuration.WithLabelValues(c.model.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, ErrBadInput) {
			return models.ClassificationResult{}, &InferenceError{Reason: "model rejected the image", Err: err}
		}
		return models.ClassificationResult{}, internal("model predict", err)
	}
	if len(scores) != len(c.labels) {
		return models.ClassificationResult{}, internal("model predict",
			fmt.Errorf("model returned %d scores for %d labels", len(scores), len(c.labels)))
	}

	best := argMax(scores)
	return models.ClassificationResult{
		Label:           c.labels[best],
		ConfidenceScore: toPercent(scores[best]),
	}, nil
}

func argMax(scores []float32) int {
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] || (isNaN(scores[best]) && !isNaN(scores[i])) {
			best = i
		}
	}
	return best
}

func isNaN(v float32) bool {
	return v != v
}

// toPercent scales a [0,1] probability to a percentage clamped to [0,100].
func toPercent(v float32) float64 {
	p := float64(v) * 100
	switch {
	case math.IsNaN(p) || p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
