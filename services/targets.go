// services/targets.go
package services

import "math"

type MealSlot string

const (
	SlotBreakfast    MealSlot = "Breakfast"
	SlotMorningSnack MealSlot = "MorningSnack"
	SlotLunch        MealSlot = "Lunch"
	SlotEveningSnack MealSlot = "EveningSnack"
	SlotDinner       MealSlot = "Dinner"
)

// AllSlots lists every meal slot in day order.
var AllSlots = []MealSlot{SlotBreakfast, SlotMorningSnack, SlotLunch, SlotEveningSnack, SlotDinner}

// FlatSlots are the slots the flat-catalog generator fills.
var FlatSlots = []MealSlot{SlotBreakfast, SlotLunch, SlotDinner}

// adjustSlots are the two main meals that absorb extra-intake adjustments.
var adjustSlots = []MealSlot{SlotBreakfast, SlotLunch}

type SlotTable map[MealSlot]float64

// SlotTarget is the per-slot nutrition target tuple.
type SlotTarget struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
	Fat      float64 `json:"fat"`
}

// Targets is the derived daily aggregate. Computed once per run and never
// mutated; re-derive when profile inputs change.
type Targets struct {
	BMI  float64 `json:"bmi"`
	BMR  float64 `json:"bmr"`
	TDEE float64 `json:"tdee"`
	Macros
}

// Percentage split tables per plan type. Every row sums to 1.0. The
// Diabetic-Friendly rows intentionally mirror Gym-Friendly for calories,
// protein, carbs and fiber, and mirror Healthy for fat; keep that
// correspondence as-is.
var (
	calorieSplits = map[string]SlotTable{
		PlanHealthy:          {SlotBreakfast: 0.25, SlotMorningSnack: 0.10, SlotLunch: 0.30, SlotEveningSnack: 0.10, SlotDinner: 0.25},
		PlanGymFriendly:      {SlotBreakfast: 0.25, SlotMorningSnack: 0.05, SlotLunch: 0.35, SlotEveningSnack: 0.05, SlotDinner: 0.30},
		PlanDiabeticFriendly: {SlotBreakfast: 0.25, SlotMorningSnack: 0.05, SlotLunch: 0.35, SlotEveningSnack: 0.05, SlotDinner: 0.30},
	}
	proteinSplits = map[string]SlotTable{
		PlanHealthy:          {SlotBreakfast: 0.25, SlotMorningSnack: 0.10, SlotLunch: 0.30, SlotEveningSnack: 0.10, SlotDinner: 0.25},
		PlanGymFriendly:      {SlotBreakfast: 0.30, SlotMorningSnack: 0.10, SlotLunch: 0.25, SlotEveningSnack: 0.10, SlotDinner: 0.25},
		PlanDiabeticFriendly: {SlotBreakfast: 0.30, SlotMorningSnack: 0.10, SlotLunch: 0.25, SlotEveningSnack: 0.10, SlotDinner: 0.25},
	}
	carbSplits = map[string]SlotTable{
		PlanHealthy:          {SlotBreakfast: 0.25, SlotMorningSnack: 0.10, SlotLunch: 0.30, SlotEveningSnack: 0.10, SlotDinner: 0.25},
		PlanGymFriendly:      {SlotBreakfast: 0.30, SlotMorningSnack: 0.10, SlotLunch: 0.25, SlotEveningSnack: 0.10, SlotDinner: 0.25},
		PlanDiabeticFriendly: {SlotBreakfast: 0.30, SlotMorningSnack: 0.10, SlotLunch: 0.25, SlotEveningSnack: 0.10, SlotDinner: 0.25},
	}
	fiberSplits = map[string]SlotTable{
		PlanHealthy:          {SlotBreakfast: 0.25, SlotMorningSnack: 0.10, SlotLunch: 0.30, SlotEveningSnack: 0.10, SlotDinner: 0.25},
		PlanGymFriendly:      {SlotBreakfast: 0.30, SlotMorningSnack: 0.10, SlotLunch: 0.25, SlotEveningSnack: 0.10, SlotDinner: 0.25},
		PlanDiabeticFriendly: {SlotBreakfast: 0.30, SlotMorningSnack: 0.10, SlotLunch: 0.25, SlotEveningSnack: 0.10, SlotDinner: 0.25},
	}
	fatSplits = map[string]SlotTable{
		PlanHealthy:          {SlotBreakfast: 0.25, SlotMorningSnack: 0.10, SlotLunch: 0.30, SlotEveningSnack: 0.10, SlotDinner: 0.25},
		PlanGymFriendly:      {SlotBreakfast: 0.30, SlotMorningSnack: 0.10, SlotLunch: 0.25, SlotEveningSnack: 0.10, SlotDinner: 0.25},
		PlanDiabeticFriendly: {SlotBreakfast: 0.25, SlotMorningSnack: 0.10, SlotLunch: 0.30, SlotEveningSnack: 0.10, SlotDinner: 0.25},
	}
)

// PlanTargets expands a daily budget into five independent per-slot tables.
// The tables stay adjustable without re-deriving from the daily targets.
type PlanTargets struct {
	Daily Targets

	Calories SlotTable `json:"meal_targets"`
	Protein  SlotTable `json:"protein_targets"`
	Carbs    SlotTable `json:"carb_targets"`
	Fiber    SlotTable `json:"fiber_targets"`
	Fat      SlotTable `json:"fat_targets"`

	snapshot *targetsSnapshot
}

type targetsSnapshot struct {
	calories, protein, carbs, fiber, fat SlotTable
}

// ExtraIntake is yesterday's overage to spread over the coming days.
type ExtraIntake struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
	Fat      float64 `json:"fat"`
}

func NewPlanTargets(p Profile) *PlanTargets {
	bmi := CalculateBMI(p.HeightCm, p.WeightKg)
	bmr := CalculateBMR(p.Gender, p.WeightKg, p.HeightCm, p.Age)
	tdee := CalculateTDEE(bmr, p.ActivityLevel)

	budget := tdee
	if p.TargetCalories > 0 {
		budget = p.TargetCalories
	}
	m := CalculateMacros(budget, p.PlanType, p.HealthStatus)

	return &PlanTargets{
		Daily:    Targets{BMI: bmi, BMR: bmr, TDEE: tdee, Macros: m},
		Calories: applySplit(budget, calorieSplits, p.PlanType),
		Protein:  applySplit(m.Protein, proteinSplits, p.PlanType),
		Carbs:    applySplit(m.Carbs, carbSplits, p.PlanType),
		Fiber:    applySplit(m.Fiber, fiberSplits, p.PlanType),
		Fat:      applySplit(m.Fat, fatSplits, p.PlanType),
	}
}

// applySplit distributes a daily amount across slots. Plan types without
// their own table use the Diabetic-Friendly row, matching the generator's
// historical else-branch.
func applySplit(daily float64, tables map[string]SlotTable, planType string) SlotTable {
	split, ok := tables[planType]
	if !ok {
		split = tables[PlanDiabeticFriendly]
	}
	out := make(SlotTable, len(split))
	for slot, pct := range split {
		out[slot] = daily * pct
	}
	return out
}

// SlotTarget returns the five-axis target tuple for one slot.
func (t *PlanTargets) SlotTarget(slot MealSlot) SlotTarget {
	return SlotTarget{
		Calories: t.Calories[slot],
		Protein:  t.Protein[slot],
		Carbs:    t.Carbs[slot],
		Fiber:    t.Fiber[slot],
		Fat:      t.Fat[slot],
	}
}

// AdjustForExtraIntake spreads extra/adjustmentDays evenly over the two main
// meals and subtracts it from their targets in all five tables, floored at
// zero. The pre-adjustment tables are snapshotted for Restore.
func (t *PlanTargets) AdjustForExtraIntake(extra ExtraIntake, adjustmentDays int) {
	if adjustmentDays <= 0 {
		adjustmentDays = 7
	}
	t.snapshot = &targetsSnapshot{
		calories: cloneTable(t.Calories),
		protein:  cloneTable(t.Protein),
		carbs:    cloneTable(t.Carbs),
		fiber:    cloneTable(t.Fiber),
		fat:      cloneTable(t.Fat),
	}

	n := float64(adjustmentDays) * float64(len(adjustSlots))
	for _, slot := range adjustSlots {
		t.Calories[slot] = math.Max(0, t.Calories[slot]-extra.Calories/n)
		t.Protein[slot] = math.Max(0, t.Protein[slot]-extra.Protein/n)
		t.Carbs[slot] = math.Max(0, t.Carbs[slot]-extra.Carbs/n)
		t.Fiber[slot] = math.Max(0, t.Fiber[slot]-extra.Fiber/n)
		t.Fat[slot] = math.Max(0, t.Fat[slot]-extra.Fat/n)
	}
}

// Restore returns all five tables to their snapshotted pre-adjustment
// values. No-op when no adjustment was applied.
func (t *PlanTargets) Restore() {
	if t.snapshot == nil {
		return
	}
	t.Calories = cloneTable(t.snapshot.calories)
	t.Protein = cloneTable(t.snapshot.protein)
	t.Carbs = cloneTable(t.snapshot.carbs)
	t.Fiber = cloneTable(t.snapshot.fiber)
	t.Fat = cloneTable(t.snapshot.fat)
}

func cloneTable(in SlotTable) SlotTable {
	out := make(SlotTable, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
