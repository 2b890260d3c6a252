package models

import "gorm.io/gorm"

// A catalog recipe with its nutrition profile at base serving size.
type FoodItem struct {
	gorm.Model
	RecipeName string `gorm:"type:varchar(255);not null"`
	SlotType   string `gorm:"type:varchar(50);index;not null"` // sub-slot role: grain, dal_protein, sabzi, ...

	CalPerServing     float64 `gorm:"not null"`
	ProteinPerServing float64
	CarbsPerServing   float64
	FatPerServing     float64
	FiberPerServing   float64
	SodiumPerServing  float64
	ServingWeightG    float64

	DietType     string   `gorm:"type:varchar(30);index;not null"`
	RegionTags   []string `gorm:"serializer:json"` // empty means all regions
	MealTimeTags []string `gorm:"serializer:json"`
	PlanTypeTags []string `gorm:"serializer:json"`

	Ingredients  []IngredientEntry `gorm:"serializer:json"`
	Instructions string            `gorm:"type:text"`

	Source     string `gorm:"type:varchar(20);not null;default:manual"`
	IsVerified bool   `gorm:"index"`
}

type IngredientEntry struct {
	Name    string  `json:"name"`
	AmountG float64 `json:"amount_g"`
}
