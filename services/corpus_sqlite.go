package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sunfrisky19/model-meals-workouts/models"
)

// SQLiteCorpus is a single-file corpus for local and edge deployments.
type SQLiteCorpus struct {
	db *sql.DB
}

func NewSQLiteCorpus(dbPath string) (*SQLiteCorpus, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	c := &SQLiteCorpus{db: db}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return c, nil
}

func (c *SQLiteCorpus) Close() error {
	return c.db.Close()
}

func (c *SQLiteCorpus) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS meals (
        record_key TEXT NOT NULL UNIQUE,
        name TEXT NOT NULL DEFAULT '',
        description TEXT NOT NULL DEFAULT '',
        diet_type TEXT NOT NULL,
        bahan_resep_pilihan TEXT NOT NULL DEFAULT '',
        calories REAL NOT NULL DEFAULT 0,
        protein REAL NOT NULL DEFAULT 0,
        carbs REAL NOT NULL DEFAULT 0,
        fat REAL NOT NULL DEFAULT 0,
        recipe TEXT NOT NULL DEFAULT '',
        image_url TEXT NOT NULL DEFAULT ''
    );

    CREATE TABLE IF NOT EXISTS workouts (
        record_key TEXT NOT NULL UNIQUE,
        name TEXT NOT NULL DEFAULT '',
        description TEXT NOT NULL DEFAULT '',
        diet_type TEXT NOT NULL,
        duration_minutes INTEGER NOT NULL DEFAULT 0,
        sets INTEGER NOT NULL DEFAULT 0,
        reps INTEGER NOT NULL DEFAULT 0,
        image_url TEXT NOT NULL DEFAULT ''
    );

    CREATE INDEX IF NOT EXISTS idx_meals_diet_type ON meals(diet_type);
    CREATE INDEX IF NOT EXISTS idx_workouts_diet_type ON workouts(diet_type);
    `

	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (c *SQLiteCorpus) Meals(ctx context.Context) ([]models.Meal, error) {
	rows, err := c.db.QueryContext(ctx, `
        SELECT rowid, record_key, name, description, diet_type, bahan_resep_pilihan,
               calories, protein, carbs, fat, recipe, image_url
        FROM meals
        ORDER BY rowid
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query meals: %w", err)
	}
	defer rows.Close()

	meals := []models.Meal{}
	for rows.Next() {
		var m models.Meal
		var id int64
		if err := rows.Scan(&id, &m.Key, &m.Name, &m.Description, &m.DietType, &m.Ingredients,
			&m.Calories, &m.Protein, &m.Carbs, &m.Fat, &m.Recipe, &m.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		m.ID = uint(id)
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

func (c *SQLiteCorpus) Workouts(ctx context.Context) ([]models.Workout, error) {
	rows, err := c.db.QueryContext(ctx, `
        SELECT rowid, record_key, name, description, diet_type, duration_minutes, sets, reps, image_url
        FROM workouts
        ORDER BY rowid
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query workouts: %w", err)
	}
	defer rows.Close()

	workouts := []models.Workout{}
	for rows.Next() {
		var w models.Workout
		var id int64
		if err := rows.Scan(&id, &w.Key, &w.Name, &w.Description, &w.DietType,
			&w.DurationMinutes, &w.Sets, &w.Reps, &w.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan workout: %w", err)
		}
		w.ID = uint(id)
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// ImportMeals upserts meals by key inside one transaction.
func (c *SQLiteCorpus) ImportMeals(ctx context.Context, meals []models.Meal) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
        INSERT INTO meals (record_key, name, description, diet_type, bahan_resep_pilihan,
                           calories, protein, carbs, fat, recipe, image_url)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(record_key) DO UPDATE SET
            name = excluded.name,
            description = excluded.description,
            diet_type = excluded.diet_type,
            bahan_resep_pilihan = excluded.bahan_resep_pilihan,
            calories = excluded.calories,
            protein = excluded.protein,
            carbs = excluded.carbs,
            fat = excluded.fat,
            recipe = excluded.recipe,
            image_url = excluded.image_url
    `
	for _, m := range meals {
		if _, err := tx.ExecContext(ctx, query,
			m.Key, m.Name, m.Description, string(m.DietType), m.Ingredients,
			m.Calories, m.Protein, m.Carbs, m.Fat, m.Recipe, m.ImageURL); err != nil {
			return fmt.Errorf("failed to insert meal %s: %w", m.Key, err)
		}
	}
	return tx.Commit()
}

// ImportWorkouts upserts workouts by key inside one transaction.
func (c *SQLiteCorpus) ImportWorkouts(ctx context.Context, workouts []models.Workout) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
        INSERT INTO workouts (record_key, name, description, diet_type, duration_minutes, sets, reps, image_url)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(record_key) DO UPDATE SET
            name = excluded.name,
            description = excluded.description,
            diet_type = excluded.diet_type,
            duration_minutes = excluded.duration_minutes,
            sets = excluded.sets,
            reps = excluded.reps,
            image_url = excluded.image_url
    `
	for _, w := range workouts {
		if _, err := tx.ExecContext(ctx, query,
			w.Key, w.Name, w.Description, string(w.DietType),
			w.DurationMinutes, w.Sets, w.Reps, w.ImageURL); err != nil {
			return fmt.Errorf("failed to insert workout %s: %w", w.Key, err)
		}
	}
	return tx.Commit()
}

// Ping checks the database file is reachable.
func (c *SQLiteCorpus) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.db.PingContext(ctx)
}
