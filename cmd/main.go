package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sunfrisky19/model-meals-workouts/config"
	"github.com/sunfrisky19/model-meals-workouts/logging"
	"github.com/sunfrisky19/model-meals-workouts/models"
	"github.com/sunfrisky19/model-meals-workouts/routes"
	"github.com/sunfrisky19/model-meals-workouts/services"
	"github.com/sunfrisky19/model-meals-workouts/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	model, err := services.LoadModel(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("backend", cfg.Model.Backend).Msg("error loading model")
	}
	logging.Info().Str("model", model.Name()).Msg("model loaded")

	store, err := services.OpenCorpusStore(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("driver", cfg.Corpus.Driver).Msg("failed to open corpus store")
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	sessions := services.NewDietSessions(cfg.Session.Secret, cfg.Session.TTL)
	utils.SafeGo("diet-session-janitor", func() { sessions.Run(ctx) })

	recs := services.NewRecommendationService(store)
	hub := services.NewPredictionHub()
	predictions := services.NewPredictionService(
		services.NewImagePreprocessor(cfg.Model.InputHeight, cfg.Model.InputWidth),
		services.NewClassifier(model, models.Labels(cfg.Model.LabelList())),
		services.NewConfidencePolicy(cfg.Model.ConfidenceThreshold),
		recs,
		hub,
	)

	r := routes.SetupRouter(routes.Deps{
		Sessions:       sessions,
		Recs:           recs,
		Predictions:    predictions,
		Hub:            hub,
		Store:          store,
		CORSOrigins:    cfg.Server.CORSOrigins,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	utils.SafeGo("http-server", func() {
		logging.Info().Str("addr", srv.Addr).Msg("server running")
		serveErr <- serve(srv)
	})

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			logging.Fatal().Err(err).Str("addr", srv.Addr).Msg("server failed")
		}
	}
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// serve blocks until srv stops. A graceful shutdown is not an error.
func serve(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
