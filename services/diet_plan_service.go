// services/diet_plan_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"dietcraft/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPlanExists   = errors.New("diet plan already exists for this user")
	ErrPlanNotFound = errors.New("diet plan not found")
)

// DietPlanService is the persistence collaborator around the engine. It
// enforces one active plan per user and never stores a plan that failed
// validation.
type DietPlanService struct {
	db   *gorm.DB
	orch *Orchestrator
}

func NewDietPlanService(db *gorm.DB) *DietPlanService {
	return &DietPlanService{db: db, orch: NewOrchestrator(nil)}
}

// GeneratePlan runs the full pipeline for a user and stores the outcome.
// targetCalories > 0 overrides the computed TDEE (calorie-reduction flow).
func (s *DietPlanService) GeneratePlan(u *models.User, start time.Time, targetCalories float64) (*models.DietPlan, error) {
	var existing models.DietPlan
	err := s.db.Where("user_id = ?", u.ID).First(&existing).Error
	if err == nil {
		return nil, ErrPlanExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	catalog, err := LoadCatalog(s.db, u.PlanType)
	if err != nil {
		return nil, err
	}

	profile := ProfileFromUser(u, start)
	profile.TargetCalories = targetCalories

	plan, err := s.orch.Generate(profile, catalog)
	if err != nil {
		return nil, err // ErrPlanUnavailable; nothing persisted
	}

	dp := &models.DietPlan{
		PlanID:              uuid.NewString(),
		UserID:              u.ID,
		StartDate:           start,
		PlanMode:            string(catalog.Mode()),
		Meals:               plan.Meals,
		IngredientChecklist: plan.IngredientChecklist,
	}
	if err := s.db.Create(dp).Error; err != nil {
		return nil, fmt.Errorf("store diet plan: %w", err)
	}

	EmitPlanEvent(u.ID, EventPlanGenerated, map[string]any{
		"plan_id":    dp.PlanID,
		"start_date": start.Format("2006-01-02"),
		"meal_count": len(dp.Meals),
	})
	return dp, nil
}

// PreviewPlan generates without persisting; used by the calorie-reduction
// endpoint to show the regenerated plan before the user commits.
func (s *DietPlanService) PreviewPlan(u *models.User, start time.Time, targetCalories float64) (*MealPlan, error) {
	catalog, err := LoadCatalog(s.db, u.PlanType)
	if err != nil {
		return nil, err
	}
	profile := ProfileFromUser(u, start)
	profile.TargetCalories = targetCalories
	return s.orch.Generate(profile, catalog)
}

func (s *DietPlanService) GetPlan(userID uint) (*models.DietPlan, error) {
	var dp models.DietPlan
	err := s.db.Where("user_id = ?", userID).First(&dp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dp, nil
}

func (s *DietPlanService) DeletePlan(userID uint) error {
	res := s.db.Where("user_id = ?", userID).Delete(&models.DietPlan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	EmitPlanEvent(userID, EventPlanDeleted, nil)
	return nil
}

// WeeklyIngredients returns the stored checklist, rebuilding and persisting
// it from the stored meals when empty. Rebuilding is idempotent.
func (s *DietPlanService) WeeklyIngredients(userID uint) ([]models.ChecklistItem, error) {
	dp, err := s.GetPlan(userID)
	if err != nil {
		return nil, err
	}
	if len(dp.IngredientChecklist) == 0 {
		dp.IngredientChecklist = BuildIngredientChecklist(dp.Meals)
		if err := s.db.Save(dp).Error; err != nil {
			return nil, fmt.Errorf("store rebuilt checklist: %w", err)
		}
	}
	return dp.IngredientChecklist, nil
}

// AdjustedTargets is the five adjusted target tables the caller feeds back
// into a fresh generation pass.
type AdjustedTargets struct {
	MealTargets    SlotTable `json:"meal_targets"`
	ProteinTargets SlotTable `json:"protein_targets"`
	CarbTargets    SlotTable `json:"carb_targets"`
	FiberTargets   SlotTable `json:"fiber_targets"`
	FatTargets     SlotTable `json:"fat_targets"`
	AdjustmentDays int       `json:"adjustment_days"`
}

// AdjustTargets recomputes the user's slot targets and applies the
// extra-intake compensation. The stored plan is untouched.
func (s *DietPlanService) AdjustTargets(u *models.User, extra ExtraIntake, adjustmentDays int) AdjustedTargets {
	if adjustmentDays <= 0 {
		adjustmentDays = 7
	}
	targets := NewPlanTargets(ProfileFromUser(u, time.Now()))
	targets.AdjustForExtraIntake(extra, adjustmentDays)
	return AdjustedTargets{
		MealTargets:    targets.Calories,
		ProteinTargets: targets.Protein,
		CarbTargets:    targets.Carbs,
		FiberTargets:   targets.Fiber,
		FatTargets:     targets.Fat,
		AdjustmentDays: adjustmentDays,
	}
}
