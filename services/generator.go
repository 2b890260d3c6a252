// services/generator.go
package services

import (
	"math/rand"
	"sort"
	"time"

	"dietcraft/models"
)

const (
	horizonDays = 7

	flatMaxScale      = 2.0
	templatedMaxScale = 3.0
)

// MealPlan is the engine's output for one generation run.
type MealPlan struct {
	Meals               []models.MealSelection `json:"meals"`
	IngredientChecklist []models.ChecklistItem `json:"ingredient_checklist"`
}

// MealGenerator assembles a plan from a flat food catalog: 7 days, three
// slots, up to two options per slot per day. Construct one per run; it holds
// no state between runs.
type MealGenerator struct {
	profile  Profile
	targets  *PlanTargets
	selector *Selector
	history  SelectionHistory
}

func NewMealGenerator(p Profile, rng *rand.Rand) *MealGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &MealGenerator{
		profile: p,
		targets: NewPlanTargets(p),
		selector: &Selector{
			DietType:      p.DietType,
			Region:        p.Region,
			Tolerance:     p.tolerance(),
			CarbTolerance: p.carbTolerance(),
			MaxScale:      flatMaxScale,
			Rand:          rng,
		},
		history: NewSelectionHistory(),
	}
}

// Targets exposes the run's slot target tables.
func (g *MealGenerator) Targets() *PlanTargets {
	return g.targets
}

// GeneratePlan fills every flat slot over the horizon and derives the
// ingredient checklist. Unfillable slots are left as gaps, never errors.
func (g *MealGenerator) GeneratePlan(catalog []FoodCandidate) MealPlan {
	var meals []models.MealSelection
	for _, slot := range FlatSlots {
		meals = append(meals, g.GenerateSlot(catalog, slot)...)
	}
	sortMeals(meals)
	return MealPlan{
		Meals:               meals,
		IngredientChecklist: BuildIngredientChecklist(meals),
	}
}

// GenerateSlot picks up to two options per day for one slot across the
// horizon. Option 1 runs the full fallback ladder; option 2 searches the
// day's remaining pool relaxed and region-free. A selected candidate leaves
// the pool for that day only, so the second option can never repeat the
// first; cross-day variety is the history's job.
func (g *MealGenerator) GenerateSlot(catalog []FoodCandidate, slot MealSlot) []models.MealSelection {
	pool := slotPool(catalog, slot)
	target := g.targets.SlotTarget(slot)

	var out []models.MealSelection
	for day := 0; day < horizonDays; day++ {
		date := g.profile.StartDate.AddDate(0, 0, day).Format("2006-01-02")
		dayPool := pool

		if sel, ok := g.searchWithFallbacks(dayPool, slot, target); ok {
			sel.Date = date
			sel.Option = 1
			g.history.Add(slot, sel.SourceID)
			dayPool = removeCandidate(dayPool, sel.SourceID)
			out = append(out, sel)
		}

		if sel, ok := g.selector.FindSuitable(dayPool, slot, target, g.history, SearchOptions{Relaxed: true}); ok {
			sel.Date = date
			sel.Option = 2
			g.history.Add(slot, sel.SourceID)
			out = append(out, sel)
		}

		if g.history.Count(slot) > int(historySaturation*float64(len(pool))) {
			g.history.Clear(slot)
		}
	}
	return out
}

// searchWithFallbacks walks the relaxation ladder for one slot/day: the
// region pool unrelaxed, then the full pool relaxed, then once more with the
// slot's history cleared. A false return leaves the slot empty for the day.
func (g *MealGenerator) searchWithFallbacks(pool []FoodCandidate, slot MealSlot, target SlotTarget) (models.MealSelection, bool) {
	if sel, ok := g.selector.FindSuitable(pool, slot, target, g.history, SearchOptions{UseRegion: true}); ok {
		return sel, true
	}
	if sel, ok := g.selector.FindSuitable(pool, slot, target, g.history, SearchOptions{Relaxed: true}); ok {
		return sel, true
	}
	g.history.Clear(slot)
	return g.selector.FindSuitable(pool, slot, target, g.history, SearchOptions{Relaxed: true})
}

func slotPool(catalog []FoodCandidate, slot MealSlot) []FoodCandidate {
	out := make([]FoodCandidate, 0, len(catalog))
	for _, c := range catalog {
		if c.matchesSlot(slot) {
			out = append(out, c)
		}
	}
	return out
}

func removeCandidate(pool []FoodCandidate, id uint) []FoodCandidate {
	out := make([]FoodCandidate, 0, len(pool))
	for _, c := range pool {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

var slotOrder = map[string]int{
	string(SlotBreakfast):    0,
	string(SlotMorningSnack): 1,
	string(SlotLunch):        2,
	string(SlotEveningSnack): 3,
	string(SlotDinner):       4,
}

func sortMeals(meals []models.MealSelection) {
	sort.SliceStable(meals, func(i, j int) bool {
		if meals[i].Date != meals[j].Date {
			return meals[i].Date < meals[j].Date
		}
		if slotOrder[meals[i].MealType] != slotOrder[meals[j].MealType] {
			return slotOrder[meals[i].MealType] < slotOrder[meals[j].MealType]
		}
		return meals[i].Option < meals[j].Option
	})
}
