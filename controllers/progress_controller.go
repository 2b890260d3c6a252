package controllers

import (
	"net/http"
	"time"

	"dietcraft/config"
	"dietcraft/services"

	"github.com/gin-gonic/gin"
)

// LogMeal records a consumed meal's nutrition against today.
func LogMeal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var body struct {
		Date string `json:"date"` // YYYY-MM-DD, default today
		services.MealIntake
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	at := time.Now()
	if body.Date != "" {
		parsed, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		at = parsed
	}

	row, err := services.LogMeal(user.ID, at, body.MealIntake)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, row)
}

func LogWater(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var body struct {
		Glasses int `json:"glasses"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Glasses <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "glasses must be a positive integer"})
		return
	}
	row, err := services.LogWater(user.ID, body.Glasses)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, row)
}

func LogSteps(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var body struct {
		Steps int `json:"steps"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Steps <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "steps must be a positive integer"})
		return
	}
	row, err := services.LogSteps(user.ID, body.Steps)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, row)
}

func LogWeight(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var body struct {
		WeightKg float64 `json:"weight_kg"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.WeightKg <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weight_kg must be positive"})
		return
	}
	row, err := services.LogWeight(user.ID, body.WeightKg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, row)
}

// TodayProgress reports consumed vs target for calories, macros, water and
// steps for the current day.
func TodayProgress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	summary, err := services.DailySummary(user, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func WeeklyProgress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	summary, err := services.WeeklySummary(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func WeightProgress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	summary, err := services.WeightProgress(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// CompensateOverage takes a logged day's overshoot and spreads it across the
// coming days' slot targets.
func CompensateOverage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var body struct {
		Date           string `json:"date"` // YYYY-MM-DD, default yesterday
		AdjustmentDays int    `json:"adjustment_days"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	day := time.Now().AddDate(0, 0, -1)
	if body.Date != "" {
		parsed, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	row, err := services.GetDailyLog(user.ID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	targets := services.NewPlanTargets(services.ProfileFromUser(user, day))
	extra := services.DailyOverage(row, targets.Daily)

	svc := services.NewDietPlanService(config.DB)
	c.JSON(http.StatusOK, gin.H{
		"overage":  extra,
		"adjusted": svc.AdjustTargets(user, extra, body.AdjustmentDays),
	})
}
