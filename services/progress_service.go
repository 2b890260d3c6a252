package services

import (
	"errors"
	"math"
	"time"

	"dietcraft/config"
	"dietcraft/models"

	"gorm.io/gorm"
)

const (
	waterTargetGlasses = 8
	stepsTargetDaily   = 10000
)

// MealIntake is the nutrition of one consumed meal as the client reports it.
type MealIntake struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
	Fat      float64 `json:"fat"`
}

func dayStartLocal(t time.Time) time.Time {
	lt := t.In(time.Local)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.Local)
}

// progressRow loads the user's row for the given day, creating a zero row
// when none exists yet.
func progressRow(userID uint, day time.Time) (*models.ProgressLog, error) {
	var row models.ProgressLog
	err := config.DB.Where("user_id = ? AND date = ?", userID, day).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.ProgressLog{UserID: userID, Date: day}
		if err := config.DB.Create(&row).Error; err != nil {
			return nil, err
		}
		return &row, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// LogMeal accumulates a consumed meal into today's record.
func LogMeal(userID uint, at time.Time, intake MealIntake) (*models.ProgressLog, error) {
	row, err := progressRow(userID, dayStartLocal(at))
	if err != nil {
		return nil, err
	}
	row.Calories += intake.Calories
	row.Protein += intake.Protein
	row.Carbs += intake.Carbs
	row.Fiber += intake.Fiber
	row.Fat += intake.Fat
	return row, config.DB.Save(row).Error
}

func LogWater(userID uint, glasses int) (*models.ProgressLog, error) {
	row, err := progressRow(userID, dayStartLocal(time.Now()))
	if err != nil {
		return nil, err
	}
	row.WaterGlasses += glasses
	return row, config.DB.Save(row).Error
}

func LogSteps(userID uint, steps int) (*models.ProgressLog, error) {
	row, err := progressRow(userID, dayStartLocal(time.Now()))
	if err != nil {
		return nil, err
	}
	row.Steps += steps
	return row, config.DB.Save(row).Error
}

// LogWeight records the latest weigh-in for today and keeps the profile's
// current weight in step, so subsequent target calculations use it.
func LogWeight(userID uint, weightKg float64) (*models.ProgressLog, error) {
	row, err := progressRow(userID, dayStartLocal(time.Now()))
	if err != nil {
		return nil, err
	}
	row.WeightKg = weightKg
	if err := config.DB.Save(row).Error; err != nil {
		return nil, err
	}
	err = config.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("weight_kg", weightKg).Error
	return row, err
}

// GetDailyLog returns the day's record; a day with nothing logged yet comes
// back as an all-zero row rather than an error.
func GetDailyLog(userID uint, date time.Time) (models.ProgressLog, error) {
	day := dayStartLocal(date)
	var row models.ProgressLog
	err := config.DB.Where("user_id = ? AND date = ?", userID, day).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ProgressLog{UserID: userID, Date: day}, nil
	}
	return row, err
}

// DailySummary compares a day's logged intake with the user's daily targets.
func DailySummary(u *models.User, date time.Time) (map[string]interface{}, error) {
	row, err := GetDailyLog(u.ID, date)
	if err != nil {
		return nil, err
	}
	targets := NewPlanTargets(ProfileFromUser(u, date))
	return buildDailySummary(row, targets.Daily), nil
}

func buildDailySummary(row models.ProgressLog, daily Targets) map[string]interface{} {
	macro := func(consumed, target float64) map[string]interface{} {
		return map[string]interface{}{
			"consumed": round2(consumed),
			"target":   round2(target),
		}
	}
	return map[string]interface{}{
		"date": row.Date.Format("2006-01-02"),
		"calories": map[string]interface{}{
			"consumed":  round2(row.Calories),
			"target":    round2(daily.TDEE),
			"remaining": round2(math.Max(0, daily.TDEE-row.Calories)),
		},
		"macros": map[string]interface{}{
			"protein": macro(row.Protein, daily.Protein),
			"carbs":   macro(row.Carbs, daily.Carbs),
			"fiber":   macro(row.Fiber, daily.Fiber),
			"fat":     macro(row.Fat, daily.Fat),
		},
		"water": map[string]interface{}{
			"glasses": row.WaterGlasses,
			"target":  waterTargetGlasses,
		},
		"activity": map[string]interface{}{
			"steps":  row.Steps,
			"target": stepsTargetDaily,
		},
	}
}

// WeeklySummary aggregates the trailing seven days ending today.
func WeeklySummary(u *models.User) (map[string]interface{}, error) {
	end := dayStartLocal(time.Now())
	start := end.AddDate(0, 0, -6)

	var rows []models.ProgressLog
	err := config.DB.
		Where("user_id = ? AND date BETWEEN ? AND ?", u.ID, start, end).
		Order("date asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return summarizeWeek(rows), nil
}

func summarizeWeek(rows []models.ProgressLog) map[string]interface{} {
	days := make([]map[string]interface{}, 0, len(rows))
	var cal, prot, carb, fat float64
	var steps, water int
	for _, r := range rows {
		days = append(days, map[string]interface{}{
			"date":     r.Date.Format("2006-01-02"),
			"calories": round2(r.Calories),
			"protein":  round2(r.Protein),
			"carbs":    round2(r.Carbs),
			"fat":      round2(r.Fat),
			"steps":    r.Steps,
			"water":    r.WaterGlasses,
		})
		cal += r.Calories
		prot += r.Protein
		carb += r.Carbs
		fat += r.Fat
		steps += r.Steps
		water += r.WaterGlasses
	}

	n := float64(len(rows))
	avg := func(total float64) float64 {
		if n == 0 {
			return 0
		}
		return round2(total / n)
	}
	return map[string]interface{}{
		"days": days,
		"averages": map[string]interface{}{
			"calories": avg(cal),
			"protein":  avg(prot),
			"carbs":    avg(carb),
			"fat":      avg(fat),
		},
		"total_steps":      steps,
		"water_completion": pct(float64(water), float64(waterTargetGlasses*len(rows))),
	}
}

// pct is completion as a fraction in [0, 1].
func pct(done, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	p := done / goal
	if p > 1 {
		p = 1
	}
	return round2(p)
}

// WeightProgress returns the current weight plus the logged weigh-in history
// for the trailing month and the net change across it.
func WeightProgress(u *models.User) (map[string]interface{}, error) {
	end := dayStartLocal(time.Now())
	start := end.AddDate(0, -1, 0)

	var rows []models.ProgressLog
	err := config.DB.
		Where("user_id = ? AND weight_kg > 0 AND date BETWEEN ? AND ?", u.ID, start, end).
		Order("date asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	history := make([]map[string]interface{}, 0, len(rows))
	for _, r := range rows {
		history = append(history, map[string]interface{}{
			"date":   r.Date.Format("2006-01-02"),
			"weight": r.WeightKg,
		})
	}
	return map[string]interface{}{
		"current_weight": u.WeightKg,
		"history":        history,
		"monthly_change": weightChange(rows),
	}, nil
}

func weightChange(rows []models.ProgressLog) float64 {
	if len(rows) < 2 {
		return 0
	}
	return round2(rows[len(rows)-1].WeightKg - rows[0].WeightKg)
}

// DailyOverage is how far a day's logged intake ran past the daily targets,
// floored at zero per axis. The result feeds target compensation.
func DailyOverage(row models.ProgressLog, daily Targets) ExtraIntake {
	over := func(consumed, target float64) float64 {
		return round2(math.Max(0, consumed-target))
	}
	return ExtraIntake{
		Calories: over(row.Calories, daily.TDEE),
		Protein:  over(row.Protein, daily.Protein),
		Carbs:    over(row.Carbs, daily.Carbs),
		Fiber:    over(row.Fiber, daily.Fiber),
		Fat:      over(row.Fat, daily.Fat),
	}
}
