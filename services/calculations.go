// services/calculations.go
package services

import "strings"

const (
	PlanHealthy          = "Healthy"
	PlanDiabeticFriendly = "Diabetic-Friendly"
	PlanGymFriendly      = "Gym-Friendly"
)

const (
	DietVegetarian    = "Vegetarian"
	DietNonVegetarian = "Non-Vegetarian"
	DietEggetarian    = "Eggetarian"
)

// activityMultipliers maps activity level codes to their TDEE multiplier.
var activityMultipliers = map[string]float64{
	"S":  1.2,   // sedentary
	"LA": 1.375, // lightly active
	"MA": 1.55,  // moderately active
	"VA": 1.725, // very active
	"SA": 1.9,   // super active
}

// CalculateBMI expects height in centimeters and weight in kilograms.
// Inputs are trusted; callers validate ranges upstream.
func CalculateBMI(heightCm, weightKg float64) float64 {
	h := heightCm / 100.0
	return weightKg / (h * h)
}

// CalculateBMR uses the Harris-Benedict coefficients. An unrecognized gender
// yields 0.0 rather than an error; gender is validated upstream.
func CalculateBMR(gender string, weightKg, heightCm float64, age int) float64 {
	switch strings.ToLower(gender) {
	case "male":
		return 66.5 + 13.75*weightKg + 5.003*heightCm - 6.75*float64(age)
	case "female":
		return 655.1 + 9.563*weightKg + 1.850*heightCm - 4.676*float64(age)
	}
	return 0.0
}

// CalculateTDEE multiplies BMR by the activity multiplier. Unknown activity
// levels fall back to the sedentary multiplier.
func CalculateTDEE(bmr float64, activityLevel string) float64 {
	m, ok := activityMultipliers[activityLevel]
	if !ok {
		m = activityMultipliers["S"]
	}
	return bmr * m
}

// Macros holds daily macronutrient targets in grams.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fiber   float64 `json:"fiber"`
	Fat     float64 `json:"fat"`
}

// CalculateMacros splits the daily calorie budget into macro gram targets.
// The default split is 20% protein / 55% carbs / 25% fat by calories; the
// Gym-Friendly and Diabetic-Friendly plans override the split per their
// sub-status. An unrecognized sub-status keeps the default split instead of
// failing. Fiber is fixed at 14 g per 1000 kcal for every plan.
func CalculateMacros(tdee float64, planType, healthStatus string) Macros {
	proteinPct, carbsPct, fatPct := 0.20, 0.55, 0.25

	switch planType {
	case PlanGymFriendly:
		switch healthStatus {
		case "weight_loss":
			proteinPct, carbsPct, fatPct = 0.45, 0.35, 0.20
		case "muscle_gain":
			proteinPct, carbsPct, fatPct = 0.40, 0.40, 0.20
		case "maintenance":
			proteinPct, carbsPct, fatPct = 0.35, 0.40, 0.25
		}
	case PlanDiabeticFriendly:
		switch healthStatus {
		case "controlled":
			proteinPct, carbsPct, fatPct = 0.25, 0.45, 0.25
		case "uncontrolled":
			proteinPct, carbsPct, fatPct = 0.30, 0.40, 0.25
		}
	}

	return Macros{
		Protein: (tdee * proteinPct) / 4,
		Carbs:   (tdee * carbsPct) / 4,
		Fiber:   (tdee * 14) / 1000,
		Fat:     (tdee * fatPct) / 9,
	}
}
