package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sunfrisky19/model-meals-workouts/logging"
	"github.com/sunfrisky19/model-meals-workouts/models"
	"github.com/sunfrisky19/model-meals-workouts/services"
	"github.com/sunfrisky19/model-meals-workouts/utils"
)

// GET /api/:dietType/meals?ingredients=Telur,Tomat
func (dc *DietController) ListMeals(c *gin.Context) {
	diet := models.DietType(c.Param("dietType"))
	ingredients := models.ParseIngredients(c.Query("ingredients")).Tokens()
	logging.Ctx(c.Request.Context()).Info().Str("diet_type", diet.String()).Msg("fetching meals")

	meals, err := dc.Recs.GetMeals(c.Request.Context(), diet, ingredients)
	if err != nil {
		respondError(c, err, fmt.Sprintf("Failed to fetch meals for %s.", diet))
		return
	}
	if len(meals) == 0 {
		utils.Fail(c, http.StatusNotFound, fmt.Sprintf("No meals found for diet type: %s", diet))
		return
	}
	utils.Success(c, http.StatusOK, "", gin.H{"meals": meals})
}

// GET /api/:dietType/workouts
func (dc *DietController) ListWorkouts(c *gin.Context) {
	diet := models.DietType(c.Param("dietType"))
	logging.Ctx(c.Request.Context()).Info().Str("diet_type", diet.String()).Msg("fetching workouts")

	workouts, err := dc.Recs.GetWorkouts(c.Request.Context(), diet)
	if err != nil {
		respondError(c, err, fmt.Sprintf("Failed to fetch workouts for %s.", diet))
		return
	}
	if len(workouts) == 0 {
		utils.Fail(c, http.StatusNotFound, fmt.Sprintf("No workouts found for diet type: %s", diet))
		return
	}
	utils.Success(c, http.StatusOK, "", gin.H{"workouts": workouts})
}

// GET /api/:dietType/plan
func (dc *DietController) Plan(c *gin.Context) {
	diet := models.DietType(c.Param("dietType"))

	plan, err := dc.Recs.GetDietPlan(c.Request.Context(), diet)
	if errors.Is(err, services.ErrNotFound) {
		utils.Fail(c, http.StatusNotFound, fmt.Sprintf("No meals or workouts found for diet type: %s", diet))
		return
	}
	if err != nil {
		respondError(c, err, fmt.Sprintf("Failed to process %s Diet.", diet))
		return
	}
	utils.Success(c, http.StatusOK, "", plan)
}
