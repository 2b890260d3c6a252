package controllers

import (
	"net/http"

	"dietcraft/config"
	"dietcraft/models"
	"dietcraft/services"
	"dietcraft/utils"

	"github.com/gin-gonic/gin"
)

// GetCalculations returns the user's derived daily numbers: BMI with its
// category, BMR, TDEE and the macro targets for their plan.
func GetCalculations(c *gin.Context) {
	uid := c.GetUint("userID")
	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	bmi := services.CalculateBMI(user.HeightCm, user.WeightKg)
	bmr := services.CalculateBMR(user.Gender, user.WeightKg, user.HeightCm, user.Age)
	tdee := services.CalculateTDEE(bmr, user.ActivityLevel)
	macros := services.CalculateMacros(tdee, user.PlanType, user.HealthStatus)

	c.JSON(http.StatusOK, gin.H{
		"bmi":          bmi,
		"bmi_category": utils.BMICategory(bmi),
		"bmr":          bmr,
		"tdee":         tdee,
		"macros":       macros,
	})
}
