// services/selector.go
package services

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"dietcraft/models"
)

const (
	minScaleFactor = 0.5
	// historySaturation is the fraction of a slot's catalog after which the
	// slot's history is cleared. Availability beats strict non-repetition.
	historySaturation = 0.7
)

// FoodCandidate is one read-only catalog entry as the engine sees it.
type FoodCandidate struct {
	ID       uint
	Name     string
	SlotType string // sub-slot role for templated catalogs; empty for flat ones

	DietType  string
	Regions   []string // empty or containing "all" means region-agnostic
	MealTimes []string

	Calories float64
	Protein  float64
	Carbs    float64
	Fiber    float64
	Fat      float64

	Ingredients []IngredientSpec
}

// IngredientSpec is a raw ingredient group at base serving: a comma-separated
// name list paired with an amount field of whatever shape the source record
// carried (number, "10, 20" string, or list).
type IngredientSpec struct {
	Names  string
	Amount any
}

// RegionLabel names the candidate's region for plan records.
func (c FoodCandidate) RegionLabel() string {
	if len(c.Regions) == 0 {
		return "All"
	}
	return strings.Join(c.Regions, ", ")
}

func (c FoodCandidate) matchesRegion(region string) bool {
	if region == "" || len(c.Regions) == 0 {
		return true
	}
	for _, r := range c.Regions {
		if strings.EqualFold(r, region) || strings.EqualFold(r, "all") {
			return true
		}
	}
	return false
}

func (c FoodCandidate) matchesSlot(slot MealSlot) bool {
	for _, mt := range c.MealTimes {
		if strings.EqualFold(mt, string(slot)) {
			return true
		}
	}
	return false
}

// matchesDiet applies the profile's diet constraint. Vegetarian profiles only
// accept vegetarian-tagged candidates; everyone else eats anything.
func (c FoodCandidate) matchesDiet(dietType string) bool {
	if strings.EqualFold(dietType, DietVegetarian) {
		return strings.EqualFold(c.DietType, DietVegetarian)
	}
	return true
}

// SelectionHistory tracks candidate ids already used per slot within one
// generation run. Grows monotonically until a saturation reset.
type SelectionHistory map[MealSlot]map[uint]struct{}

func NewSelectionHistory() SelectionHistory {
	return make(SelectionHistory)
}

func (h SelectionHistory) Add(slot MealSlot, id uint) {
	if h[slot] == nil {
		h[slot] = make(map[uint]struct{})
	}
	h[slot][id] = struct{}{}
}

func (h SelectionHistory) Has(slot MealSlot, id uint) bool {
	_, ok := h[slot][id]
	return ok
}

func (h SelectionHistory) Count(slot MealSlot) int {
	return len(h[slot])
}

func (h SelectionHistory) Clear(slot MealSlot) {
	delete(h, slot)
}

// SearchOptions steer one FindSuitable call. UseRegion applies the profile's
// region filter; Relaxed widens both tolerances by 1.5.
type SearchOptions struct {
	UseRegion bool
	Relaxed   bool
}

// Selector filters and scores catalog candidates against slot targets.
type Selector struct {
	DietType      string
	Region        string
	Tolerance     float64
	CarbTolerance float64
	MaxScale      float64
	Rand          *rand.Rand
}

// FindSuitable filters pool by diet/region/slot/history, shuffles it, and
// returns the first candidate whose scaled nutrition lands within tolerance
// of target on all five axes. Greedy first-fit; a false return means the
// caller decides the fallback policy.
func (s *Selector) FindSuitable(pool []FoodCandidate, slot MealSlot, target SlotTarget, history SelectionHistory, opts SearchOptions) (models.MealSelection, bool) {
	filtered := s.filter(pool, slot, history, opts.UseRegion)
	s.Rand.Shuffle(len(filtered), func(i, j int) {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	})

	tol := s.Tolerance
	carbTol := s.CarbTolerance
	if opts.Relaxed {
		tol *= 1.5
		carbTol *= 1.5
	}

	for _, c := range filtered {
		factor := scaleFactor(target, c, s.MaxScale)
		scaled := SlotTarget{
			Calories: c.Calories * factor,
			Protein:  c.Protein * factor,
			Carbs:    c.Carbs * factor,
			Fiber:    c.Fiber * factor,
			Fat:      c.Fat * factor,
		}
		if !withinTolerance(scaled, target, tol, carbTol) {
			continue
		}
		return models.MealSelection{
			MealType:    string(slot),
			MenuNames:   c.Name,
			DietType:    c.DietType,
			Region:      c.RegionLabel(),
			Calories:    round2(scaled.Calories),
			Protein:     round2(scaled.Protein),
			Carbs:       round2(scaled.Carbs),
			Fiber:       round2(scaled.Fiber),
			Fat:         round2(scaled.Fat),
			ScaleFactor: factor,
			Ingredients: scaledIngredients(c.Ingredients, factor),
			SourceID:    c.ID,
		}, true
	}
	return models.MealSelection{}, false
}

func (s *Selector) filter(pool []FoodCandidate, slot MealSlot, history SelectionHistory, useRegion bool) []FoodCandidate {
	out := make([]FoodCandidate, 0, len(pool))
	for _, c := range pool {
		if history.Has(slot, c.ID) {
			continue
		}
		if !c.matchesDiet(s.DietType) {
			continue
		}
		if useRegion && !c.matchesRegion(s.Region) {
			continue
		}
		if !c.matchesSlot(slot) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// scaleFactor is the ratio of target calories to base calories, falling back
// to the protein ratio when base calories is zero, clamped to
// [minScaleFactor, maxScale] to avoid absurd serving multipliers.
func scaleFactor(target SlotTarget, c FoodCandidate, maxScale float64) float64 {
	var f float64
	switch {
	case c.Calories > 0:
		f = target.Calories / c.Calories
	case c.Protein > 0:
		f = target.Protein / c.Protein
	default:
		return 1.0
	}
	if f < minScaleFactor {
		return minScaleFactor
	}
	if f > maxScale {
		return maxScale
	}
	return f
}

func withinTolerance(scaled, target SlotTarget, tol, carbTol float64) bool {
	return math.Abs(scaled.Calories-target.Calories) <= tol &&
		math.Abs(scaled.Protein-target.Protein) <= tol*0.5 &&
		math.Abs(scaled.Carbs-target.Carbs) <= target.Carbs*carbTol &&
		math.Abs(scaled.Fiber-target.Fiber) <= tol*0.5 &&
		math.Abs(scaled.Fat-target.Fat) <= tol*0.5
}

// scaledIngredients multiplies each base amount by factor and merges
// case-normalized names by summation. Amount lists shorter than their name
// lists are padded with zeros.
func scaledIngredients(specs []IngredientSpec, factor float64) map[string]float64 {
	out := make(map[string]float64)
	for _, spec := range specs {
		names := splitNames(spec.Names)
		amounts := parseAmounts(spec.Amount)
		for len(amounts) < len(names) {
			amounts = append(amounts, 0.0)
		}
		for i, name := range names {
			if len(name) <= 1 {
				continue
			}
			key := capitalize(name)
			out[key] = round2(out[key] + amounts[i]*factor)
		}
	}
	return out
}

func splitNames(names string) []string {
	parts := strings.Split(names, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseAmounts coerces a raw amount field to a numeric list. Unparsable
// entries become 0.0 instead of failing the candidate.
func parseAmounts(v any) []float64 {
	switch a := v.(type) {
	case string:
		parts := strings.Split(a, ",")
		out := make([]float64, len(parts))
		for i, p := range parts {
			if f, err := strconv.ParseFloat(strings.TrimSpace(p), 64); err == nil {
				out[i] = f
			}
		}
		return out
	case float64:
		return []float64{a}
	case int:
		return []float64{float64(a)}
	case []float64:
		return append([]float64(nil), a...)
	case []any:
		out := make([]float64, len(a))
		for i, e := range a {
			switch n := e.(type) {
			case float64:
				out[i] = n
			case int:
				out[i] = float64(n)
			case string:
				if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
					out[i] = f
				}
			}
		}
		return out
	}
	return []float64{0.0}
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
