package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunfrisky19/model-meals-workouts/models"
	"github.com/sunfrisky19/model-meals-workouts/services"
	"github.com/sunfrisky19/model-meals-workouts/utils"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		code    int
		status  string
		message string
	}{
		{
			name:    "decode error",
			err:     &services.DecodeError{Reason: "empty image"},
			code:    http.StatusBadRequest,
			status:  utils.StatusFail,
			message: "Terjadi kesalahan input: decode image: empty image Silakan gunakan foto lain.",
		},
		{
			name:    "inference error",
			err:     &services.InferenceError{Reason: "model rejected the image"},
			code:    http.StatusBadRequest,
			status:  utils.StatusFail,
			message: "Terjadi kesalahan input: inference: model rejected the image Silakan gunakan foto lain.",
		},
		{
			name:    "no diet",
			err:     services.ErrNoActiveDiet,
			code:    http.StatusBadRequest,
			status:  utils.StatusFail,
			message: noActiveDietMsg,
		},
		{
			name:    "unknown diet",
			err:     models.ErrUnknownDietType,
			code:    http.StatusBadRequest,
			status:  utils.StatusFail,
			message: unknownDietTypeMsg,
		},
		{
			name:   "too large",
			err:    fmt.Errorf("read form: %w", &http.MaxBytesError{Limit: 10}),
			code:   http.StatusRequestEntityTooLarge,
			status: utils.StatusFail,
		},
		{
			name:   "not found",
			err:    services.ErrNotFound,
			code:   http.StatusNotFound,
			status: utils.StatusFail,
		},
		{
			name:    "internal detail hidden",
			err:     &services.InternalError{Op: "fetch meals", Err: errors.New("pq: password authentication failed")},
			code:    http.StatusInternalServerError,
			status:  utils.StatusError,
			message: "Failed to process prediction.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/predict", nil)

			respondError(c, tt.err, "Failed to process prediction.")

			assert.Equal(t, tt.code, w.Code)
			var env utils.Envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, tt.status, env.Status)
			if tt.message != "" {
				assert.Equal(t, tt.message, env.Message)
			}
			assert.NotContains(t, w.Body.String(), "password")
		})
	}
}
