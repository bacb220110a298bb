package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunfrisky19/model-meals-workouts/models"
)

var testLabels = models.Labels([]string{
	"Bawang Bombai", "Daging Ayam", "Daging Sapi", "Daun Bawang", "Kubis Merah",
	"Telur", "Terong", "Timun", "Tomat", "Wortel",
})

// fakeModel returns fixed scores and counts calls.
type fakeModel struct {
	shape  []int
	scores []float32
	err    error
	calls  atomic.Int32
}

func newFakeModel(scores ...float32) *fakeModel {
	return &fakeModel{shape: ImageShape(150, 150), scores: scores}
}

func (m *fakeModel) Name() string      { return "fake" }
func (m *fakeModel) InputShape() []int { return m.shape }

func (m *fakeModel) Predict(ctx context.Context, t Tensor) ([]float32, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.scores, nil
}

// oneHot puts score at index i of a ten-class vector and spreads the rest evenly.
func oneHot(i int, score float32) []float32 {
	out := make([]float32, len(testLabels))
	rest := (1 - score) / float32(len(out)-1)
	for j := range out {
		out[j] = rest
	}
	out[i] = score
	return out
}

type fakeStore struct {
	meals    []models.Meal
	workouts []models.Workout
	err      error
	calls    atomic.Int32
}

func (s *fakeStore) Meals(ctx context.Context) ([]models.Meal, error) {
	s.calls.Add(1)
	return s.meals, s.err
}

func (s *fakeStore) Workouts(ctx context.Context) ([]models.Workout, error) {
	s.calls.Add(1)
	return s.workouts, s.err
}

func testCorpus() *fakeStore {
	return &fakeStore{
		meals: []models.Meal{
			{Key: "m1", Name: "Omelette", DietType: "Cutting", Ingredients: "Telur, Tomat"},
			{Key: "m2", Name: "Beef Stir Fry", DietType: "Cutting", Ingredients: "Daging Sapi"},
			{Key: "m3", Name: "Egg Fried Rice", DietType: "Bulking", Ingredients: "Telur, Wortel"},
			{Key: "m4", Name: "Shakshuka", DietType: "cutting", Ingredients: "telur,  tomat , Bawang Bombai"},
		},
		workouts: []models.Workout{
			{Key: "w1", Name: "Running", DietType: "Cutting"},
			{Key: "w2", Name: "Deadlift", DietType: "Bulking"},
		},
	}
}

func jpegBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func solidRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
