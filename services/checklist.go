// services/checklist.go
package services

import (
	"sort"

	"dietcraft/models"
)

// BuildIngredientChecklist sums the scaled ingredient maps of every meal
// into a consolidated shopping list, largest totals first. Fully derived:
// rebuilding from the same meals always reproduces the same totals.
func BuildIngredientChecklist(meals []models.MealSelection) []models.ChecklistItem {
	totals := make(map[string]float64)
	for _, m := range meals {
		for ing, grams := range m.Ingredients {
			totals[ing] += grams
		}
	}

	out := make([]models.ChecklistItem, 0, len(totals))
	for ing, grams := range totals {
		out = append(out, models.ChecklistItem{Ingredient: ing, TotalGrams: round2(grams)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalGrams != out[j].TotalGrams {
			return out[i].TotalGrams > out[j].TotalGrams
		}
		return out[i].Ingredient < out[j].Ingredient
	})
	return out
}
