package services

import (
	"errors"

	"dietcraft/config"
	"dietcraft/models"
)

type ProfileInput struct {
	FullName      string   `json:"full_name"`
	HeightCm      *float64 `json:"height_cm"`
	WeightKg      *float64 `json:"weight_kg"`
	Age           *int     `json:"age"`
	Gender        string   `json:"gender"`
	ActivityLevel string   `json:"activity_level"`
	DietType      string   `json:"diet_type"`
	PlanType      string   `json:"plan_type"`
	HealthStatus  string   `json:"health_status"`
	Region        string   `json:"region"`
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	return map[string]interface{}{
		"id":             user.ID,
		"email":          user.Email,
		"full_name":      user.FullName,
		"height_cm":      user.HeightCm,
		"weight_kg":      user.WeightKg,
		"age":            user.Age,
		"gender":         user.Gender,
		"activity_level": user.ActivityLevel,
		"diet_type":      user.DietType,
		"plan_type":      user.PlanType,
		"health_status":  user.HealthStatus,
		"region":         user.Region,
	}, nil
}

func UpdateUserProfile(userID uint, input ProfileInput) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return errors.New("user not found")
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.HeightCm != nil {
		user.HeightCm = *input.HeightCm
	}
	if input.WeightKg != nil {
		user.WeightKg = *input.WeightKg
	}
	if input.Age != nil {
		user.Age = *input.Age
	}
	if input.Gender != "" {
		user.Gender = input.Gender
	}
	if input.ActivityLevel != "" {
		user.ActivityLevel = input.ActivityLevel
	}
	if input.DietType != "" {
		user.DietType = input.DietType
	}
	if input.PlanType != "" {
		user.PlanType = input.PlanType
	}
	if input.HealthStatus != "" {
		user.HealthStatus = input.HealthStatus
	}
	if input.Region != "" {
		user.Region = input.Region
	}

	return config.DB.Save(&user).Error
}
