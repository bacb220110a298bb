package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sunfrisky19/model-meals-workouts/logging"
	"github.com/sunfrisky19/model-meals-workouts/middlewares"
	"github.com/sunfrisky19/model-meals-workouts/models"
	"github.com/sunfrisky19/model-meals-workouts/services"
	"github.com/sunfrisky19/model-meals-workouts/utils"
)

type DietController struct {
	Sessions *services.DietSessions
	Recs     *services.RecService
}

func NewDietController(sessions *services.DietSessions, recs *services.RecService) *DietController {
	return &DietController{Sessions: sessions, Recs: recs}
}

type dietSelection struct {
	Status       string           `json:"status"`
	DietType     models.DietType  `json:"dietType"`
	SessionToken string           `json:"session_token"`
	Meals        []models.Meal    `json:"meals"`
	Workouts     []models.Workout `json:"workouts"`
}

// GET /api/cutting, /api/bulking, /api/maintaining
func (dc *DietController) Select(diet models.DietType) gin.HandlerFunc {
	return func(c *gin.Context) {
		dc.selectDiet(c, diet)
	}
}

// POST /api/diet  { "diet_type": "Cutting" }
func (dc *DietController) SelectFromBody(c *gin.Context) {
	var req struct {
		DietType string `json:"diet_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "diet_type is required.")
		return
	}
	diet, err := models.ParseDietType(req.DietType)
	if err != nil {
		respondError(c, err, "")
		return
	}
	dc.selectDiet(c, diet)
}

func (dc *DietController) selectDiet(c *gin.Context, diet models.DietType) {
	ctx := c.Request.Context()
	failMsg := fmt.Sprintf("Failed to process %s Diet.", diet)

	plan, err := dc.Recs.GetDietPlan(ctx, diet)
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		respondError(c, err, failMsg)
		return
	}

	token, err := dc.Sessions.Select(middlewares.SessionID(c), diet)
	if err != nil {
		respondError(c, err, failMsg)
		return
	}
	logging.Ctx(ctx).Info().Str("diet_type", diet.String()).Msg("current diet type set")

	maxAge := int(dc.Sessions.TTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.SessionCookie, token, maxAge, "/", "", false, true)
	c.Header(middlewares.SessionHeader, token)

	c.JSON(http.StatusOK, dietSelection{
		Status:       utils.StatusSuccess,
		DietType:     diet,
		SessionToken: token,
		Meals:        plan.Meals,
		Workouts:     plan.Workouts,
	})
}
