package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunfrisky19/model-meals-workouts/models"
)

func mealKeys(meals []models.Meal) []string {
	keys := make([]string, len(meals))
	for i, m := range meals {
		keys[i] = m.Key
	}
	return keys
}

func TestGetMealsFilters(t *testing.T) {
	tests := []struct {
		name        string
		diet        models.DietType
		ingredients []string
		want        []string
	}{
		{"diet only", "Cutting", nil, []string{"m1", "m2", "m4"}},
		{"diet is case insensitive", "CUTTING", nil, []string{"m1", "m2", "m4"}},
		{"single ingredient", "Cutting", []string{"Telur"}, []string{"m1", "m4"}},
		{"conjunction", "Cutting", []string{"Telur", "Tomat"}, []string{"m1", "m4"}},
		{"conjunction narrows", "Cutting", []string{"Telur", "Bawang Bombai"}, []string{"m4"}},
		{"ingredient is case insensitive", "cutting", []string{" daging SAPI "}, []string{"m2"}},
		{"no partial token match", "Cutting", []string{"Daging"}, []string{}},
		{"other diet", "Bulking", []string{"Telur"}, []string{"m3"}},
		{"unknown diet", "Keto", nil, []string{}},
	}

	recs := NewRecommendationService(testCorpus())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meals, err := recs.GetMeals(context.Background(), tt.diet, tt.ingredients)
			require.NoError(t, err)
			assert.Equal(t, tt.want, mealKeys(meals))
		})
	}
}

func TestGetMealsEmptyDietSkipsStore(t *testing.T) {
	store := testCorpus()
	recs := NewRecommendationService(store)

	meals, err := recs.GetMeals(context.Background(), "", []string{"Telur"})
	require.NoError(t, err)
	assert.NotNil(t, meals)
	assert.Empty(t, meals)

	workouts, err := recs.GetWorkouts(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, workouts)

	assert.Zero(t, store.calls.Load())
}

func TestGetWorkouts(t *testing.T) {
	recs := NewRecommendationService(testCorpus())

	workouts, err := recs.GetWorkouts(context.Background(), "bulking")
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.Equal(t, "Deadlift", workouts[0].Name)

	none, err := recs.GetWorkouts(context.Background(), "Maintaining")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGetDietPlan(t *testing.T) {
	store := testCorpus()
	store.meals = append(store.meals, models.Meal{Key: "m5", Name: "Salad", DietType: "Maintaining"})
	recs := NewRecommendationService(store)

	plan, err := recs.GetDietPlan(context.Background(), "Cutting")
	require.NoError(t, err)
	assert.Len(t, plan.Meals, 3)
	assert.Len(t, plan.Workouts, 1)

	// meals without workouts is still a plan
	plan, err = recs.GetDietPlan(context.Background(), "Maintaining")
	require.NoError(t, err)
	assert.Len(t, plan.Meals, 1)
	assert.Empty(t, plan.Workouts)

	_, err = recs.GetDietPlan(context.Background(), "Keto")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreErrorsAreInternal(t *testing.T) {
	store := &fakeStore{err: errors.New("connection reset")}
	recs := NewRecommendationService(store)

	_, err := recs.GetMeals(context.Background(), "Cutting", nil)
	var ie *InternalError
	require.True(t, errors.As(err, &ie))
	assert.ErrorContains(t, err, "connection reset")

	_, err = recs.GetDietPlan(context.Background(), "Cutting")
	assert.True(t, errors.As(err, &ie))
	assert.NotErrorIs(t, err, ErrNotFound)
}
