// services/profile.go
package services

import (
	"time"

	"dietcraft/models"
)

const (
	defaultTolerance     = 100.0 // kcal
	defaultCarbTolerance = 0.20  // fraction of the carb target
)

// Profile is the immutable input to one plan-generation run.
type Profile struct {
	HeightCm float64
	WeightKg float64
	Age      int
	Gender   string

	ActivityLevel string
	DietType      string
	PlanType      string
	HealthStatus  string
	Region        string

	StartDate time.Time

	// TargetCalories overrides the computed TDEE when > 0 (calorie-reduction
	// flow). Macro targets are derived from the overridden value.
	TargetCalories float64

	// Zero values mean "use the defaults".
	Tolerance     float64
	CarbTolerance float64
}

func ProfileFromUser(u *models.User, start time.Time) Profile {
	return Profile{
		HeightCm:      u.HeightCm,
		WeightKg:      u.WeightKg,
		Age:           u.Age,
		Gender:        u.Gender,
		ActivityLevel: u.ActivityLevel,
		DietType:      u.DietType,
		PlanType:      u.PlanType,
		HealthStatus:  u.HealthStatus,
		Region:        u.Region,
		StartDate:     start,
	}
}

func (p Profile) tolerance() float64 {
	if p.Tolerance > 0 {
		return p.Tolerance
	}
	return defaultTolerance
}

func (p Profile) carbTolerance() float64 {
	if p.CarbTolerance > 0 {
		return p.CarbTolerance
	}
	return defaultCarbTolerance
}
