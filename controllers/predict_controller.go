package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sunfrisky19/model-meals-workouts/logging"
	"github.com/sunfrisky19/model-meals-workouts/middlewares"
	"github.com/sunfrisky19/model-meals-workouts/models"
	"github.com/sunfrisky19/model-meals-workouts/services"
	"github.com/sunfrisky19/model-meals-workouts/utils"
)

const predictFailedMsg = "Failed to process prediction."

type PredictController struct {
	Predictions    *services.PredictionService
	Sessions       *services.DietSessions
	MaxUploadBytes int64
}

func NewPredictController(p *services.PredictionService, sessions *services.DietSessions, maxUploadBytes int64) *PredictController {
	return &PredictController{Predictions: p, Sessions: sessions, MaxUploadBytes: maxUploadBytes}
}

// POST /predict  multipart: image=<jpeg>, optional diet_type
func (pc *PredictController) Predict(c *gin.Context) {
	if c.Request.ContentLength > pc.MaxUploadBytes {
		respondError(c, &http.MaxBytesError{Limit: pc.MaxUploadBytes}, predictFailedMsg)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, pc.MaxUploadBytes)

	fh, err := c.FormFile("image")
	if err != nil {
		var maxBytes *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytes):
			respondError(c, err, predictFailedMsg)
		case errors.Is(err, http.ErrMissingFile):
			utils.Fail(c, http.StatusBadRequest, "Image is required for prediction.")
		default:
			utils.Fail(c, http.StatusBadRequest, "Request must be multipart/form-data with an image field.")
		}
		return
	}

	diet, err := pc.resolveDiet(c)
	if err != nil {
		respondError(c, err, predictFailedMsg)
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, err, predictFailedMsg)
		return
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		respondError(c, err, predictFailedMsg)
		return
	}

	out, err := pc.Predictions.ClassifyImage(c.Request.Context(), diet, raw)
	if err != nil {
		if !errors.Is(err, services.ErrInput) && !errors.Is(err, services.ErrNoActiveDiet) {
			logging.Ctx(c.Request.Context()).Error().Err(err).Msg("prediction failed")
		}
		respondError(c, err, predictFailedMsg)
		return
	}
	utils.Success(c, http.StatusCreated, out.Verdict.Message, out.Prediction)
}

// resolveDiet prefers an explicit diet_type field over the caller's session.
// An empty result is passed on and rejected by the service.
func (pc *PredictController) resolveDiet(c *gin.Context) (models.DietType, error) {
	if raw := strings.TrimSpace(c.PostForm("diet_type")); raw != "" {
		return models.ParseDietType(raw)
	}
	diet, _ := pc.Sessions.Diet(middlewares.SessionID(c))
	return diet, nil
}
