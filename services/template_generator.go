// services/template_generator.go
package services

import (
	"math/rand"
	"strings"
	"time"

	"dietcraft/models"
)

// TemplateMealGenerator assembles a plan from a templated catalog: each slot
// on each day is composed from the template's required/optional sub-slots,
// every sub-slot filled independently against its calorie share of the slot
// target. 7 days × 5 slots.
type TemplateMealGenerator struct {
	profile  Profile
	targets  *PlanTargets
	selector *Selector
	history  SelectionHistory
}

func NewTemplateMealGenerator(p Profile, rng *rand.Rand) *TemplateMealGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &TemplateMealGenerator{
		profile: p,
		targets: NewPlanTargets(p),
		selector: &Selector{
			DietType:      p.DietType,
			Region:        p.Region,
			Tolerance:     p.tolerance(),
			CarbTolerance: p.carbTolerance(),
			MaxScale:      templatedMaxScale,
			Rand:          rng,
		},
		history: NewSelectionHistory(),
	}
}

func (g *TemplateMealGenerator) Targets() *PlanTargets {
	return g.targets
}

// GeneratePlan composes one meal per slot per day over the horizon. A slot
// with no matching template, or whose required sub-slots cannot all be
// filled, is left as a gap for that day.
func (g *TemplateMealGenerator) GeneratePlan(items []FoodCandidate, templates []models.MealTemplate) MealPlan {
	var meals []models.MealSelection
	for day := 0; day < horizonDays; day++ {
		date := g.profile.StartDate.AddDate(0, 0, day).Format("2006-01-02")
		for _, slot := range AllSlots {
			tpl, ok := g.findTemplate(templates, slot)
			if !ok {
				continue
			}
			if meal, ok := g.composeMeal(items, slot, tpl, date); ok {
				meals = append(meals, meal)
			}
			if g.history.Count(slot) > int(historySaturation*float64(len(slotPool(items, slot)))) {
				g.history.Clear(slot)
			}
		}
	}
	sortMeals(meals)
	return MealPlan{
		Meals:               meals,
		IngredientChecklist: BuildIngredientChecklist(meals),
	}
}

// composeMeal fills each sub-slot of the template. A failed required
// sub-slot discards the whole meal; never return a partial required set.
func (g *TemplateMealGenerator) composeMeal(items []FoodCandidate, slot MealSlot, tpl models.MealTemplate, date string) (models.MealSelection, bool) {
	slotTarget := g.targets.SlotTarget(slot)

	meal := models.MealSelection{
		Date:        date,
		MealType:    string(slot),
		Option:      1,
		DietType:    DietVegetarian, // upgraded below if any component is not
		Region:      tpl.Region,
		Ingredients: make(map[string]float64),
	}

	var names []string
	var factorSum float64
	var parts int

	for _, sub := range tpl.Slots {
		subTarget := scaleTarget(slotTarget, sub.CaloriePct)
		pool := subSlotPool(items, slot, sub.SlotType)

		sel, ok := g.searchWithFallbacks(pool, slot, subTarget)
		if !ok {
			if sub.Required {
				return models.MealSelection{}, false
			}
			continue
		}

		g.history.Add(slot, sel.SourceID)
		names = append(names, sel.MenuNames)
		// the strictest component tags the whole meal
		if strings.EqualFold(sel.DietType, DietNonVegetarian) {
			meal.DietType = DietNonVegetarian
		} else if strings.EqualFold(sel.DietType, DietEggetarian) && meal.DietType == DietVegetarian {
			meal.DietType = DietEggetarian
		}
		meal.Calories = round2(meal.Calories + sel.Calories)
		meal.Protein = round2(meal.Protein + sel.Protein)
		meal.Carbs = round2(meal.Carbs + sel.Carbs)
		meal.Fiber = round2(meal.Fiber + sel.Fiber)
		meal.Fat = round2(meal.Fat + sel.Fat)
		for ing, grams := range sel.Ingredients {
			meal.Ingredients[ing] = round2(meal.Ingredients[ing] + grams)
		}
		factorSum += sel.ScaleFactor
		parts++
		if meal.SourceID == 0 {
			meal.SourceID = sel.SourceID // main component id
		}
	}

	if parts == 0 {
		return models.MealSelection{}, false
	}
	meal.MenuNames = strings.Join(names, " + ")
	meal.ScaleFactor = round2(factorSum / float64(parts))
	return meal, true
}

func (g *TemplateMealGenerator) searchWithFallbacks(pool []FoodCandidate, slot MealSlot, target SlotTarget) (models.MealSelection, bool) {
	if sel, ok := g.selector.FindSuitable(pool, slot, target, g.history, SearchOptions{UseRegion: true}); ok {
		return sel, true
	}
	if sel, ok := g.selector.FindSuitable(pool, slot, target, g.history, SearchOptions{Relaxed: true}); ok {
		return sel, true
	}
	g.history.Clear(slot)
	return g.selector.FindSuitable(pool, slot, target, g.history, SearchOptions{Relaxed: true})
}

// findTemplate picks the template for a slot matching the profile's region,
// diet and plan type. Profiles without a region accept any region's template.
func (g *TemplateMealGenerator) findTemplate(templates []models.MealTemplate, slot MealSlot) (models.MealTemplate, bool) {
	for _, tpl := range templates {
		if !strings.EqualFold(tpl.MealTime, string(slot)) {
			continue
		}
		if !strings.EqualFold(tpl.DietType, g.profile.DietType) {
			continue
		}
		if !strings.EqualFold(tpl.PlanType, g.profile.PlanType) {
			continue
		}
		if g.profile.Region != "" && !strings.EqualFold(tpl.Region, g.profile.Region) {
			continue
		}
		return tpl, true
	}
	return models.MealTemplate{}, false
}

func scaleTarget(t SlotTarget, pct float64) SlotTarget {
	return SlotTarget{
		Calories: t.Calories * pct,
		Protein:  t.Protein * pct,
		Carbs:    t.Carbs * pct,
		Fiber:    t.Fiber * pct,
		Fat:      t.Fat * pct,
	}
}

func subSlotPool(items []FoodCandidate, slot MealSlot, slotType string) []FoodCandidate {
	out := make([]FoodCandidate, 0, len(items))
	for _, c := range items {
		if !strings.EqualFold(c.SlotType, slotType) {
			continue
		}
		if !c.matchesSlot(slot) {
			continue
		}
		out = append(out, c)
	}
	return out
}
