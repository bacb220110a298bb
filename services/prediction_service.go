package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sunfrisky19/model-meals-workouts/logging"
	"github.com/sunfrisky19/model-meals-workouts/metrics"
	"github.com/sunfrisky19/model-meals-workouts/models"
)

type sessionKey struct{}

// WithSessionID tags ctx with the diet session that issued the request.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// PredictionOutcome is a finished classification with the confidence verdict attached.
type PredictionOutcome struct {
	Prediction *models.Prediction
	Verdict    Verdict
}

// PredictionService turns an uploaded picture into an ingredient label plus matching meals.
type PredictionService struct {
	pre    *ImagePreprocessor
	clf    *Classifier
	policy ConfidencePolicy
	recs   *RecService
	hub    *PredictionHub
	now    func() time.Time
}

func NewPredictionService(pre *ImagePreprocessor, clf *Classifier, policy ConfidencePolicy, recs *RecService, hub *PredictionHub) *PredictionService {
	return &PredictionService{pre: pre, clf: clf, policy: policy, recs: recs, hub: hub, now: time.Now}
}

// ClassifyImage requires a diet; without one nothing is decoded or inferred.
// A low-confidence result is still returned, with Verdict.Accepted false.
func (s *PredictionService) ClassifyImage(ctx context.Context, diet models.DietType, image []byte) (*PredictionOutcome, error) {
	log := logging.Ctx(ctx)
	if diet.IsZero() {
		metrics.PredictionFailures.WithLabelValues("no_diet").Inc()
		return nil, ErrNoActiveDiet
	}

	outcome, err := s.classify(ctx, diet, image)
	if err != nil {
		if errors.Is(err, ErrInput) {
			metrics.PredictionFailures.WithLabelValues("input").Inc()
		} else {
			metrics.PredictionFailures.WithLabelValues("internal").Inc()
		}
		return nil, err
	}

	p := outcome.Prediction
	metrics.PredictionsTotal.WithLabelValues(string(p.Result)).Inc()
	if !outcome.Verdict.Accepted {
		metrics.LowConfidencePredictions.Inc()
	}
	log.Info().
		Str("label", string(p.Result)).
		Float64("confidence", p.ConfidenceScore).
		Str("diet_type", diet.String()).
		Int("meals", len(p.Meals)).
		Msg("image classified")

	if s.hub != nil {
		s.hub.PublishPrediction(SessionIDFromContext(ctx), p)
	}
	return outcome, nil
}

func (s *PredictionService) classify(ctx context.Context, diet models.DietType, image []byte) (*PredictionOutcome, error) {
	tensor, err := s.pre.Preprocess(image)
	if err != nil {
		return nil, err
	}
	result, err := s.clf.Predict(ctx, tensor)
	if err != nil {
		return nil, err
	}
	verdict := s.policy.Evaluate(result.ConfidenceScore)

	meals, err := s.recs.GetMeals(ctx, diet, []string{string(result.Label)})
	if err != nil {
		return nil, err
	}

	return &PredictionOutcome{
		Prediction: &models.Prediction{
			ID:              uuid.NewString(),
			Result:          result.Label,
			ConfidenceScore: result.ConfidenceScore,
			Accepted:        verdict.Accepted,
			DietType:        diet,
			CreatedAt:       s.now().UTC(),
			Meals:           meals,
		},
		Verdict: verdict,
	}, nil
}

func (s *PredictionService) ModelName() string {
	return s.clf.ModelName()
}
