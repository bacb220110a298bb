package models

import json "github.com/goccy/go-json"

// Meal is a recipe recommendation from the corpus. Field names follow the corpus records.
type Meal struct {
	ID          uint     `gorm:"primaryKey" json:"-"`
	Key         string   `gorm:"size:64;uniqueIndex" json:"key,omitempty"`
	Name        string   `json:"name"`
	Description string   `gorm:"type:text" json:"description,omitempty"`
	DietType    DietType `gorm:"size:32;index;not null" json:"diet_type"`
	// Ingredients is the raw comma separated ingredient list.
	Ingredients string  `gorm:"column:bahan_resep_pilihan;type:text" json:"bahan_resep_pilihan"`
	Calories    float64 `json:"calories,omitempty"`
	Protein     float64 `json:"protein,omitempty"`
	Carbs       float64 `json:"carbs,omitempty"`
	Fat         float64 `json:"fat,omitempty"`
	Recipe      string  `gorm:"type:text" json:"recipe,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	// Extra holds record fields without a column. Only the snapshot stores keep them.
	Extra map[string]json.RawMessage `gorm:"-" json:"-"`
}

func (m Meal) IngredientSet() IngredientSet {
	return ParseIngredients(m.Ingredients)
}

// Workout is an exercise recommendation from the corpus.
type Workout struct {
	ID              uint     `gorm:"primaryKey" json:"-"`
	Key             string   `gorm:"size:64;uniqueIndex" json:"key,omitempty"`
	Name            string   `json:"name"`
	Description     string   `gorm:"type:text" json:"description,omitempty"`
	DietType        DietType `gorm:"size:32;index;not null" json:"diet_type"`
	DurationMinutes int      `json:"duration_minutes,omitempty"`
	Sets            int      `json:"sets,omitempty"`
	Reps            int      `json:"reps,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	Extra           map[string]json.RawMessage `gorm:"-" json:"-"`
}
