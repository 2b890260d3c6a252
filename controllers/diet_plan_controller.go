package controllers

import (
	"errors"
	"net/http"
	"time"

	"dietcraft/config"
	"dietcraft/models"
	"dietcraft/services"
	"dietcraft/utils"

	"github.com/gin-gonic/gin"
)

func currentUser(c *gin.Context) (*models.User, bool) {
	uid := c.GetUint("userID")
	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return nil, false
	}
	return &user, true
}

// GeneratePlan builds and stores a weekly plan. An optional
// reduce_calories_by lowers the daily budget below the computed TDEE.
func GeneratePlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var body struct {
		StartDate        string  `json:"start_date"` // YYYY-MM-DD, default today
		ReduceCaloriesBy float64 `json:"reduce_calories_by"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	if body.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
			return
		}
		start = parsed
	}

	var target float64
	if body.ReduceCaloriesBy > 0 {
		bmr := services.CalculateBMR(user.Gender, user.WeightKg, user.HeightCm, user.Age)
		tdee := services.CalculateTDEE(bmr, user.ActivityLevel)
		target = tdee - body.ReduceCaloriesBy
		if target <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reduction exceeds daily energy needs"})
			return
		}
	}

	svc := services.NewDietPlanService(config.DB)
	plan, err := svc.GeneratePlan(user, start, target)
	switch {
	case errors.Is(err, services.ErrPlanExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "a diet plan already exists; delete it before regenerating"})
		return
	case errors.Is(err, services.ErrPlanUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not assemble a valid plan, try again later"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// PreviewPlan generates a plan without persisting it, so the user can see
// what a reduced-calorie week looks like before committing.
func PreviewPlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var body struct {
		StartDate        string  `json:"start_date"`
		ReduceCaloriesBy float64 `json:"reduce_calories_by"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	if body.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
			return
		}
		start = parsed
	}

	var target float64
	if body.ReduceCaloriesBy > 0 {
		bmr := services.CalculateBMR(user.Gender, user.WeightKg, user.HeightCm, user.Age)
		tdee := services.CalculateTDEE(bmr, user.ActivityLevel)
		target = tdee - body.ReduceCaloriesBy
		if target <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reduction exceeds daily energy needs"})
			return
		}
	}

	svc := services.NewDietPlanService(config.DB)
	plan, err := svc.PreviewPlan(user, start, target)
	if errors.Is(err, services.ErrPlanUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not assemble a valid plan, try again later"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plan)
}

func MyPlan(c *gin.Context) {
	uid := c.GetUint("userID")
	svc := services.NewDietPlanService(config.DB)

	plan, err := svc.GetPlan(uid)
	if errors.Is(err, services.ErrPlanNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no diet plan found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plan)
}

func DeletePlan(c *gin.Context) {
	uid := c.GetUint("userID")
	svc := services.NewDietPlanService(config.DB)

	err := svc.DeletePlan(uid)
	if errors.Is(err, services.ErrPlanNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no diet plan found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "diet plan deleted"})
}

// WeeklyIngredients returns the consolidated shopping list, rebuilding it
// from the stored meals when necessary.
func WeeklyIngredients(c *gin.Context) {
	uid := c.GetUint("userID")
	svc := services.NewDietPlanService(config.DB)

	items, err := svc.WeeklyIngredients(uid)
	if errors.Is(err, services.ErrPlanNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no diet plan found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": items})
}

// AdjustTargets returns the slot targets compensated for yesterday's extra
// intake, spread over the requested number of days.
func AdjustTargets(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var body struct {
		ExtraIntake    services.ExtraIntake `json:"extra_intake"`
		AdjustmentDays int                  `json:"adjustment_days"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewDietPlanService(config.DB)
	c.JSON(http.StatusOK, svc.AdjustTargets(user, body.ExtraIntake, body.AdjustmentDays))
}

// EmailChecklist mails the weekly ingredient list to the user.
func EmailChecklist(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	svc := services.NewDietPlanService(config.DB)
	plan, err := svc.GetPlan(user.ID)
	if errors.Is(err, services.ErrPlanNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no diet plan found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items, err := svc.WeeklyIngredients(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	start := plan.StartDate.Format("2006-01-02")
	if err := utils.SendChecklistEmail(user.Email, start, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "checklist sent to " + user.Email})
}
