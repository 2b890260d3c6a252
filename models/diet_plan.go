package models

import (
	"time"

	"gorm.io/gorm"
)

// DietPlan is the stored outcome of one generation run. Meals and the
// checklist are kept as JSON documents; the checklist is fully derived and
// can always be rebuilt from Meals.
type DietPlan struct {
	gorm.Model
	PlanID    string    `gorm:"type:varchar(36);uniqueIndex;not null"`
	UserID    uint      `gorm:"index;not null"`
	StartDate time.Time `gorm:"not null"`
	PlanMode  string    `gorm:"type:varchar(20);not null"` // "flat" | "templated"

	Meals               []MealSelection `gorm:"serializer:json"`
	IngredientChecklist []ChecklistItem `gorm:"serializer:json"`
}

// MealSelection is one chosen-and-scaled recipe for a date/slot.
type MealSelection struct {
	Date     string `json:"date"` // YYYY-MM-DD
	MealType string `json:"meal_type"`
	Option   int    `json:"option"`

	MenuNames string `json:"menu_names"`
	DietType  string `json:"diet_type"`
	Region    string `json:"region"`

	Calories float64 `json:"total_calories"`
	Protein  float64 `json:"total_protein"`
	Carbs    float64 `json:"total_carbs"`
	Fiber    float64 `json:"total_fiber"`
	Fat      float64 `json:"total_fat"`

	ScaleFactor float64            `json:"scale_factor"`
	Ingredients map[string]float64 `json:"ingredients_scaled"` // normalized name -> grams

	SourceID uint `json:"source_id"`
}

type ChecklistItem struct {
	Ingredient string  `json:"ingredient"`
	TotalGrams float64 `json:"total_grams"`
}
