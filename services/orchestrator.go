// services/orchestrator.go
package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"
)

// ErrPlanUnavailable reports that every generation attempt failed structural
// validation. The caller may retry later; nothing was persisted.
var ErrPlanUnavailable = errors.New("meal plan temporarily unavailable")

type GenerationMode string

const (
	ModeFlat      GenerationMode = "flat"
	ModeTemplated GenerationMode = "templated"
)

const (
	maxGenerationAttempts = 3
	// toleranceWidenStep grows both tolerances linearly per failed attempt:
	// 1.0, then 1.3, then 1.6.
	toleranceWidenStep = 0.3
)

// ExpectedMealCount is the structural invariant per catalog mode:
// templated = 7 days × 5 slots, flat = 7 days × 3 slots × 2 options.
func ExpectedMealCount(mode GenerationMode) int {
	if mode == ModeTemplated {
		return horizonDays * len(AllSlots)
	}
	return horizonDays * len(FlatSlots) * 2
}

// Mode is templated when templates exist, flat otherwise. The two modes'
// validation rules are never mixed.
func (c Catalog) Mode() GenerationMode {
	if len(c.Templates) > 0 {
		return ModeTemplated
	}
	return ModeFlat
}

// Orchestrator wraps full generation attempts with validation and bounded
// retries.
type Orchestrator struct {
	rng *rand.Rand

	// observed by tests to count attempts
	onAttempt func(attempt int)
}

func NewOrchestrator(rng *rand.Rand) *Orchestrator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Orchestrator{rng: rng}
}

// Generate runs the assembler up to maxGenerationAttempts times, widening
// tolerance on each retry, and returns the first plan that passes
// validation. Exhausting the attempts yields ErrPlanUnavailable.
func (o *Orchestrator) Generate(profile Profile, catalog Catalog) (*MealPlan, error) {
	mode := catalog.Mode()

	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		if o.onAttempt != nil {
			o.onAttempt(attempt + 1)
		}
		widen := 1.0 + toleranceWidenStep*float64(attempt)
		p := profile
		p.Tolerance = profile.tolerance() * widen
		p.CarbTolerance = profile.carbTolerance() * widen

		var plan MealPlan
		if mode == ModeTemplated {
			plan = NewTemplateMealGenerator(p, o.rng).GeneratePlan(catalog.Items, catalog.Templates)
		} else {
			plan = NewMealGenerator(p, o.rng).GeneratePlan(catalog.Items)
		}

		if err := ValidatePlan(&plan, p, mode); err != nil {
			log.Printf("plan attempt %d/%d failed validation: %v", attempt+1, maxGenerationAttempts, err)
			continue
		}
		return &plan, nil
	}
	return nil, ErrPlanUnavailable
}

// ValidatePlan checks structural completeness and diet compliance before a
// plan may be persisted.
func ValidatePlan(plan *MealPlan, profile Profile, mode GenerationMode) error {
	want := ExpectedMealCount(mode)
	if len(plan.Meals) != want {
		return fmt.Errorf("expected %d meals, got %d", want, len(plan.Meals))
	}

	start := profile.StartDate
	end := start.AddDate(0, 0, horizonDays-1)
	for _, m := range plan.Meals {
		if m.Date == "" {
			return fmt.Errorf("meal %q has no date", m.MenuNames)
		}
		d, err := time.Parse("2006-01-02", m.Date)
		if err != nil {
			return fmt.Errorf("meal %q has malformed date %q", m.MenuNames, m.Date)
		}
		if d.Before(truncateDay(start)) || d.After(truncateDay(end)) {
			return fmt.Errorf("meal date %s outside plan horizon", m.Date)
		}
	}

	if len(plan.IngredientChecklist) == 0 {
		return errors.New("ingredient checklist is empty")
	}

	if strings.EqualFold(profile.DietType, DietVegetarian) {
		for _, m := range plan.Meals {
			if strings.EqualFold(m.DietType, DietNonVegetarian) {
				return fmt.Errorf("non-vegetarian meal %q in vegetarian plan", m.MenuNames)
			}
		}
	}
	if strings.EqualFold(profile.DietType, DietNonVegetarian) {
		found := false
		for _, m := range plan.Meals {
			if strings.EqualFold(m.DietType, DietNonVegetarian) {
				found = true
				break
			}
		}
		if !found {
			return errors.New("no non-vegetarian meal in non-vegetarian plan")
		}
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
