package services

import (
	"context"
	"fmt"

	"github.com/sunfrisky19/model-meals-workouts/config"
	"github.com/sunfrisky19/model-meals-workouts/models"
)

// LoadModel connects to the configured model host. Callers treat an error as fatal.
func LoadModel(ctx context.Context, cfg *config.Config) (Model, error) {
	shape := ImageShape(cfg.Model.InputHeight, cfg.Model.InputWidth)
	switch cfg.Model.Backend {
	case "tfserving":
		return LoadTFServingModel(ctx, cfg.Model.URL, cfg.Model.Name, shape, cfg.Model.Timeout)
	case "rekognition":
		return NewRekognitionModel(ctx, cfg.AWS.Region, cfg.Model.ProjectArn, cfg.Model.ProjectVersionArn,
			shape, models.Labels(cfg.Model.LabelList()))
	default:
		return nil, fmt.Errorf("unknown model backend %q", cfg.Model.Backend)
	}
}
