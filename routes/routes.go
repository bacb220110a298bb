package routes

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sunfrisky19/model-meals-workouts/controllers"
	"github.com/sunfrisky19/model-meals-workouts/middlewares"
	"github.com/sunfrisky19/model-meals-workouts/models"
	"github.com/sunfrisky19/model-meals-workouts/services"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Sessions       *services.DietSessions
	Recs           *services.RecService
	Predictions    *services.PredictionService
	Hub            *services.PredictionHub
	Store          services.CorpusStore
	CORSOrigins    []string
	MaxUploadBytes int64
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = d.MaxUploadBytes
	r.Use(middlewares.Recovery(), middlewares.RequestLogger(), corsMiddleware(d.CORSOrigins))

	health := controllers.NewHealthController(d.Predictions.ModelName(), d.Store)
	r.GET("/health", health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	diet := controllers.NewDietController(d.Sessions, d.Recs)
	predict := controllers.NewPredictController(d.Predictions, d.Sessions, d.MaxUploadBytes)
	realtime := controllers.NewRealtimeController(d.Hub, d.Sessions)

	session := r.Group("/")
	session.Use(middlewares.DietSession(d.Sessions))
	{
		session.GET("/api/cutting", diet.Select(models.DietCutting))
		session.GET("/api/bulking", diet.Select(models.DietBulking))
		session.GET("/api/maintaining", diet.Select(models.DietMaintaining))
		session.POST("/api/diet", diet.SelectFromBody)

		session.GET("/api/:dietType/meals", diet.ListMeals)
		session.GET("/api/:dietType/workouts", diet.ListWorkouts)
		session.GET("/api/:dietType/plan", diet.Plan)

		session.POST("/predict", predict.Predict)
		session.GET("/ws/predictions", realtime.PredictionsWS)
	}

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middlewares.SessionHeader, middlewares.RequestIDHeader},
		ExposeHeaders: []string{middlewares.SessionHeader, middlewares.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
