package models

import (
	"time"

	"gorm.io/gorm"
)

// ProgressLog is one user's consumption record for one day. Date is local
// midnight; meal logging accumulates into the row, water and steps add,
// weight overwrites with the latest reading.
type ProgressLog struct {
	gorm.Model
	UserID uint      `gorm:"not null;uniqueIndex:uniq_user_day" json:"user_id"`
	Date   time.Time `gorm:"not null;uniqueIndex:uniq_user_day" json:"date"`

	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
	Fat      float64 `json:"fat"`

	WaterGlasses int     `json:"water_glasses"`
	Steps        int     `json:"steps"`
	WeightKg     float64 `json:"weight_kg"`
}
