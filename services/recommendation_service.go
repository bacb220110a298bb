package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sunfrisky19/model-meals-workouts/logging"
	"github.com/sunfrisky19/model-meals-workouts/metrics"
	"github.com/sunfrisky19/model-meals-workouts/models"
)

// DietPlan is the combined recommendation for one diet type.
type DietPlan struct {
	Meals    []models.Meal    `json:"meals"`
	Workouts []models.Workout `json:"workouts"`
}

// RecService filters the corpus by diet type and ingredients.
type RecService struct {
	store CorpusStore
}

func NewRecommendationService(store CorpusStore) *RecService {
	return &RecService{store: store}
}

// GetMeals returns meals for diet whose ingredients include every entry of ingredients,
// in corpus order. An unset diet yields an empty list without touching the store.
func (r *RecService) GetMeals(ctx context.Context, diet models.DietType, ingredients []string) ([]models.Meal, error) {
	log := logging.Ctx(ctx)
	if diet.IsZero() {
		log.Warn().Msg("dietType is empty, returning no meals")
		return []models.Meal{}, nil
	}

	start := time.Now()
	all, err := r.store.Meals(ctx)
	metrics.CorpusQueryDuration.WithLabelValues(mealsCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, internal("fetch meals", err)
	}

	out := []models.Meal{}
	for _, m := range all {
		if !m.DietType.Equal(diet) {
			continue
		}
		if !m.IngredientSet().ContainsAll(ingredients) {
			continue
		}
		out = append(out, m)
	}
	log.Debug().Str("diet_type", diet.String()).Strs("ingredients", ingredients).Int("meals", len(out)).Msg("meals matched")
	return out, nil
}

// GetWorkouts returns workouts for diet in corpus order. No match is an empty list.
func (r *RecService) GetWorkouts(ctx context.Context, diet models.DietType) ([]models.Workout, error) {
	if diet.IsZero() {
		logging.Ctx(ctx).Warn().Msg("dietType is empty, returning no workouts")
		return []models.Workout{}, nil
	}

	start := time.Now()
	all, err := r.store.Workouts(ctx)
	metrics.CorpusQueryDuration.WithLabelValues(workoutsCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, internal("fetch workouts", err)
	}

	out := []models.Workout{}
	for _, w := range all {
		if w.DietType.Equal(diet) {
			out = append(out, w)
		}
	}
	return out, nil
}

// GetDietPlan fetches meals and workouts concurrently. ErrNotFound when both are empty.
func (r *RecService) GetDietPlan(ctx context.Context, diet models.DietType) (DietPlan, error) {
	var plan DietPlan
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		meals, err := r.GetMeals(gctx, diet, nil)
		plan.Meals = meals
		return err
	})
	g.Go(func() error {
		workouts, err := r.GetWorkouts(gctx, diet)
		plan.Workouts = workouts
		return err
	})
	if err := g.Wait(); err != nil {
		return DietPlan{}, err
	}

	if len(plan.Meals) == 0 && len(plan.Workouts) == 0 {
		return plan, ErrNotFound
	}
	return plan, nil
}
