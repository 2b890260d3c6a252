package models

import "gorm.io/gorm"

// MealTemplate describes how a meal for one slot is composed from sub-slots
// for a given region/diet/plan combination.
type MealTemplate struct {
	gorm.Model
	MealTime string `gorm:"type:varchar(20);not null;uniqueIndex:uq_template"`
	Region   string `gorm:"type:varchar(10);not null;uniqueIndex:uq_template"`
	DietType string `gorm:"type:varchar(30);not null;uniqueIndex:uq_template"`
	PlanType string `gorm:"type:varchar(30);not null;uniqueIndex:uq_template"`

	Slots []TemplateSlot `gorm:"serializer:json"`
}

// TemplateSlot is one component role within a templated meal. CaloriePct is
// the share of the slot's calorie target given to this component.
type TemplateSlot struct {
	SlotType   string  `json:"slot_type"`
	CaloriePct float64 `json:"calorie_pct"`
	Required   bool    `json:"required"`
}
