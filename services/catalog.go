// services/catalog.go
package services

import (
	"fmt"
	"strings"

	"dietcraft/models"

	"gorm.io/gorm"
)

// Catalog is the read-only snapshot one generation attempt works from.
type Catalog struct {
	Items     []FoodCandidate
	Templates []models.MealTemplate
}

// LoadCatalog takes a snapshot of the verified food items (and any meal
// templates) applicable to the given plan type.
func LoadCatalog(db *gorm.DB, planType string) (Catalog, error) {
	var items []models.FoodItem
	if err := db.Where("is_verified = ?", true).Find(&items).Error; err != nil {
		return Catalog{}, fmt.Errorf("load food items: %w", err)
	}

	candidates := make([]FoodCandidate, 0, len(items))
	for _, it := range items {
		if !planTypeApplies(it.PlanTypeTags, planType) {
			continue
		}
		candidates = append(candidates, CandidateFromFoodItem(it))
	}

	var templates []models.MealTemplate
	if err := db.Find(&templates).Error; err != nil {
		return Catalog{}, fmt.Errorf("load meal templates: %w", err)
	}

	return Catalog{Items: candidates, Templates: templates}, nil
}

// CandidateFromFoodItem converts a stored recipe into the engine's view.
func CandidateFromFoodItem(it models.FoodItem) FoodCandidate {
	specs := make([]IngredientSpec, 0, len(it.Ingredients))
	for _, e := range it.Ingredients {
		specs = append(specs, IngredientSpec{Names: e.Name, Amount: e.AmountG})
	}
	return FoodCandidate{
		ID:          it.ID,
		Name:        it.RecipeName,
		SlotType:    it.SlotType,
		DietType:    it.DietType,
		Regions:     it.RegionTags,
		MealTimes:   it.MealTimeTags,
		Calories:    it.CalPerServing,
		Protein:     it.ProteinPerServing,
		Carbs:       it.CarbsPerServing,
		Fiber:       it.FiberPerServing,
		Fat:         it.FatPerServing,
		Ingredients: specs,
	}
}

// planTypeApplies treats an untagged item as suitable for every plan.
func planTypeApplies(tags []string, planType string) bool {
	if len(tags) == 0 || planType == "" {
		return true
	}
	for _, t := range tags {
		if strings.EqualFold(t, planType) {
			return true
		}
	}
	return false
}
