package services

import (
	"reflect"
	"testing"

	"dietcraft/models"
)

func TestBuildIngredientChecklist_SumsAcrossMeals(t *testing.T) {
	meals := []models.MealSelection{
		{Ingredients: map[string]float64{"Rice": 100, "Dal": 50}},
		{Ingredients: map[string]float64{"Rice": 25.5, "Paneer": 80}},
		{Ingredients: nil},
	}

	got := BuildIngredientChecklist(meals)
	want := []models.ChecklistItem{
		{Ingredient: "Rice", TotalGrams: 125.5},
		{Ingredient: "Paneer", TotalGrams: 80},
		{Ingredient: "Dal", TotalGrams: 50},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("checklist = %+v, want %+v", got, want)
	}
}

func TestBuildIngredientChecklist_TiesBreakByName(t *testing.T) {
	meals := []models.MealSelection{
		{Ingredients: map[string]float64{"Tomato": 60, "Onion": 60, "Ginger": 60}},
	}
	got := BuildIngredientChecklist(meals)
	wantOrder := []string{"Ginger", "Onion", "Tomato"}
	for i, name := range wantOrder {
		if got[i].Ingredient != name {
			t.Fatalf("position %d = %q, want %q", i, got[i].Ingredient, name)
		}
	}
}

// Rebuilding from unchanged meals reproduces the checklist exactly, so a
// lost checklist can always be regenerated.
func TestBuildIngredientChecklist_Idempotent(t *testing.T) {
	meals := []models.MealSelection{
		{Ingredients: map[string]float64{"Rice": 100.25, "Dal": 50}},
		{Ingredients: map[string]float64{"Rice": 30, "Paneer": 80.5}},
	}
	first := BuildIngredientChecklist(meals)
	second := BuildIngredientChecklist(meals)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("rebuild diverged: %+v != %+v", first, second)
	}
}

func TestBuildIngredientChecklist_Empty(t *testing.T) {
	if got := BuildIngredientChecklist(nil); len(got) != 0 {
		t.Fatalf("expected empty checklist, got %+v", got)
	}
}
