package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tfservingStub(t *testing.T, state string, predict http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/models/ingredients", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"model_version_status":[{"version":"1","state":"`+state+`","status":{"error_code":"OK","error_message":""}}]}`)
	})
	if predict != nil {
		mux.HandleFunc("POST /v1/models/ingredients:predict", predict)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadTFServingModelRequiresAvailable(t *testing.T) {
	srv := tfservingStub(t, "LOADING", nil)
	_, err := LoadTFServingModel(context.Background(), srv.URL, "ingredients", ImageShape(150, 150), time.Second)
	assert.ErrorContains(t, err, "no AVAILABLE version")

	_, err = LoadTFServingModel(context.Background(), srv.URL, "missing", ImageShape(150, 150), time.Second)
	assert.Error(t, err)
}

func TestTFServingPredict(t *testing.T) {
	var got predictRequest
	srv := tfservingStub(t, "AVAILABLE", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"predictions":[[0.1,0.9]]}`)
	})

	m, err := LoadTFServingModel(context.Background(), srv.URL+"/", "ingredients", ImageShape(2, 3), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "tfserving/ingredients", m.Name())

	data := make([]float32, 2*3*3)
	for i := range data {
		data[i] = float32(i)
	}
	tensor, err := NewTensor(ImageShape(2, 3), data)
	require.NoError(t, err)

	scores, err := m.Predict(context.Background(), tensor)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.9}, scores)

	require.Len(t, got.Instances, 1)
	require.Len(t, got.Instances[0], 2)
	require.Len(t, got.Instances[0][0], 3)
	assert.Equal(t, []float32{15, 16, 17}, got.Instances[0][1][2])
}

func TestTFServingPredictErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		badInput bool
	}{
		{"rejected tensor", http.StatusBadRequest, `{"error":"Input to reshape is a tensor with 10 values"}`, true},
		{"server error", http.StatusInternalServerError, `oops`, false},
		{"empty predictions", http.StatusOK, `{"predictions":[]}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := tfservingStub(t, "AVAILABLE", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})
			m, err := LoadTFServingModel(context.Background(), srv.URL, "ingredients", ImageShape(1, 1), time.Second)
			require.NoError(t, err)

			tensor, err := NewTensor(ImageShape(1, 1), []float32{1, 2, 3})
			require.NoError(t, err)
			_, err = m.Predict(context.Background(), tensor)
			require.Error(t, err)
			assert.Equal(t, tt.badInput, errors.Is(err, ErrBadInput))
		})
	}
}
