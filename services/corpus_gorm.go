package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sunfrisky19/model-meals-workouts/models"
)

// GormCorpus reads the meals and workouts tables of the postgres corpus.
type GormCorpus struct {
	db *gorm.DB
}

func NewGormCorpus(db *gorm.DB) *GormCorpus {
	return &GormCorpus{db: db}
}

func (c *GormCorpus) Meals(ctx context.Context) ([]models.Meal, error) {
	var meals []models.Meal
	if err := c.db.WithContext(ctx).Order("id").Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("query meals: %w", err)
	}
	return meals, nil
}

func (c *GormCorpus) Workouts(ctx context.Context) ([]models.Workout, error) {
	var workouts []models.Workout
	if err := c.db.WithContext(ctx).Order("id").Find(&workouts).Error; err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}
	return workouts, nil
}

func (c *GormCorpus) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// MigrateCorpus creates or updates the corpus tables.
func MigrateCorpus(db *gorm.DB) error {
	return db.AutoMigrate(&models.Meal{}, &models.Workout{})
}

// ImportMeals upserts meals by key.
func (c *GormCorpus) ImportMeals(ctx context.Context, meals []models.Meal) error {
	if len(meals) == 0 {
		return nil
	}
	return c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&meals).Error
}

// ImportWorkouts upserts workouts by key.
func (c *GormCorpus) ImportWorkouts(ctx context.Context, workouts []models.Workout) error {
	if len(workouts) == 0 {
		return nil
	}
	return c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&workouts).Error
}
