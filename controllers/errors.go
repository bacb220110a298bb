package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sunfrisky19/model-meals-workouts/logging"
	"github.com/sunfrisky19/model-meals-workouts/models"
	"github.com/sunfrisky19/model-meals-workouts/services"
	"github.com/sunfrisky19/model-meals-workouts/utils"
)

const (
	inputErrorPrefix   = "Terjadi kesalahan input: "
	retryHint          = " Silakan gunakan foto lain."
	noActiveDietMsg    = "No active diet type found. Please call one of the diet APIs first."
	unknownDietTypeMsg = "Unknown diet type. Use one of: Cutting, Bulking, Maintaining."
)

// respondError maps service errors onto the response envelope. Internal detail is
// logged and replaced by fallback.
func respondError(c *gin.Context, err error, fallback string) {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, services.ErrInput):
		utils.Fail(c, http.StatusBadRequest, inputErrorPrefix+err.Error()+retryHint)
	case errors.Is(err, services.ErrNoActiveDiet):
		utils.Fail(c, http.StatusBadRequest, noActiveDietMsg)
	case errors.Is(err, models.ErrUnknownDietType):
		utils.Fail(c, http.StatusBadRequest, unknownDietTypeMsg)
	case errors.As(err, &maxBytes):
		utils.Fail(c, http.StatusRequestEntityTooLarge, "Payload content length greater than maximum allowed.")
	case errors.Is(err, services.ErrNotFound):
		utils.Fail(c, http.StatusNotFound, err.Error())
	default:
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg(fallback)
		utils.Error(c, fallback)
	}
}
