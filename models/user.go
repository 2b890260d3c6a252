package models

import (
	"gorm.io/gorm"
)

// User carries the profile fields the plan engine consumes. Numeric fields
// are validated at the edge; the engine treats them as trusted input.
type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	FullName string

	HeightCm float64 // e.g. 175
	WeightKg float64 // e.g. 70
	Age      int
	Gender   string // "male" | "female"

	ActivityLevel string // "S" | "LA" | "MA" | "VA" | "SA"
	DietType      string // "Vegetarian" | "Non-Vegetarian" | "Eggetarian"
	PlanType      string // "Healthy" | "Diabetic-Friendly" | "Gym-Friendly"
	HealthStatus  string // plan sub-status: diabetes control level or gym goal
	Region        string // "North" | "South" | "East" | "West" | ""
}
