package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sunfrisky19/model-meals-workouts/config"
	"github.com/sunfrisky19/model-meals-workouts/models"
)

// CorpusStore is the read-only source of meal and workout recommendations.
// A missing collection yields an empty slice, not an error.
type CorpusStore interface {
	Meals(ctx context.Context) ([]models.Meal, error)
	Workouts(ctx context.Context) ([]models.Workout, error)
}

// CorpusImporter is implemented by stores that can be loaded by the import tool.
type CorpusImporter interface {
	ImportMeals(ctx context.Context, meals []models.Meal) error
	ImportWorkouts(ctx context.Context, workouts []models.Workout) error
}

const (
	mealsCollection    = "meals"
	workoutsCollection = "workouts"
)

// OpenCorpusStore builds the store selected by corpus.driver. Stores that hold
// a connection also implement io.Closer.
func OpenCorpusStore(ctx context.Context, cfg *config.Config) (CorpusStore, error) {
	switch cfg.Corpus.Driver {
	case "file":
		return NewFileCorpus(cfg.Corpus.Dir), nil
	case "sqlite":
		return NewSQLiteCorpus(cfg.Corpus.SQLitePath)
	case "postgres":
		db, err := config.InitDB(cfg.Database)
		if err != nil {
			return nil, err
		}
		return NewGormCorpus(db), nil
	case "s3":
		getter, err := NewS3ObjectGetter(ctx, cfg.AWS.S3RegionOrDefault())
		if err != nil {
			return nil, err
		}
		return NewS3Corpus(getter, cfg.Corpus.S3Bucket, cfg.Corpus.S3Prefix), nil
	default:
		return nil, fmt.Errorf("unknown corpus driver %q", cfg.Corpus.Driver)
	}
}

func snapshotFile(dir, collection string) string {
	return filepath.Join(dir, collection+".json")
}
