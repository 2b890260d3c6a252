package services

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
)

// matchingCandidate builds a candidate whose base nutrition equals target,
// so an unclamped scale factor of 1.0 reproduces the target exactly.
func matchingCandidate(id uint, slot MealSlot, target SlotTarget) FoodCandidate {
	return FoodCandidate{
		ID:        id,
		Name:      "Test Recipe",
		DietType:  DietVegetarian,
		MealTimes: []string{string(slot)},
		Calories:  target.Calories,
		Protein:   target.Protein,
		Carbs:     target.Carbs,
		Fiber:     target.Fiber,
		Fat:       target.Fat,
		Ingredients: []IngredientSpec{
			{Names: "rice", Amount: 100.0},
		},
	}
}

func testSelector() *Selector {
	return &Selector{
		DietType:      DietVegetarian,
		Region:        "",
		Tolerance:     100,
		CarbTolerance: 0.20,
		MaxScale:      flatMaxScale,
		Rand:          rand.New(rand.NewSource(1)),
	}
}

var stdTarget = SlotTarget{Calories: 600, Protein: 30, Carbs: 75, Fiber: 9, Fat: 18}

func TestScaleFactor(t *testing.T) {
	cases := []struct {
		name     string
		cand     FoodCandidate
		target   SlotTarget
		maxScale float64
		want     float64
	}{
		{"exact", FoodCandidate{Calories: 600}, stdTarget, 2.0, 1.0},
		{"half portion", FoodCandidate{Calories: 1200}, stdTarget, 2.0, 0.5},
		{"clamped high", FoodCandidate{Calories: 100}, stdTarget, 2.0, 2.0},
		{"clamped high db", FoodCandidate{Calories: 100}, stdTarget, 3.0, 3.0},
		{"clamped low", FoodCandidate{Calories: 10000}, stdTarget, 2.0, 0.5},
		{"protein fallback", FoodCandidate{Calories: 0, Protein: 20}, stdTarget, 2.0, 1.5},
		{"no basis", FoodCandidate{}, stdTarget, 2.0, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := scaleFactor(tc.target, tc.cand, tc.maxScale)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("scaleFactor = %.4f, want %.4f", got, tc.want)
			}
		})
	}
}

// A candidate is accepted iff all five axis checks pass; each axis can
// individually reject it.
func TestWithinTolerance_PerAxis(t *testing.T) {
	tol, carbTol := 100.0, 0.20
	base := stdTarget

	if !withinTolerance(base, base, tol, carbTol) {
		t.Fatal("identical values must pass")
	}

	cases := []struct {
		name   string
		mutate func(s *SlotTarget)
	}{
		{"calories", func(s *SlotTarget) { s.Calories += 101 }},
		{"protein", func(s *SlotTarget) { s.Protein += 51 }},
		{"carbs", func(s *SlotTarget) { s.Carbs += base.Carbs*0.20 + 1 }},
		{"fiber", func(s *SlotTarget) { s.Fiber += 51 }},
		{"fat", func(s *SlotTarget) { s.Fat += 51 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scaled := base
			tc.mutate(&scaled)
			if withinTolerance(scaled, base, tol, carbTol) {
				t.Errorf("expected %s deviation to reject", tc.name)
			}
		})
	}
}

// Relaxed mode is exactly 1.5x wider on the same inputs.
func TestFindSuitable_RelaxedWidensTolerance(t *testing.T) {
	s := testSelector()

	// Base calories 0 forces the protein-ratio fallback (factor 1.0), so the
	// scaled calories stay 120 below target: beyond tol=100, within 150.
	target := stdTarget
	target.Calories = 120
	cand := FoodCandidate{
		ID:          1,
		Name:        "Off By 120",
		DietType:    DietVegetarian,
		MealTimes:   []string{string(SlotBreakfast)},
		Calories:    0,
		Protein:     target.Protein,
		Carbs:       target.Carbs,
		Fiber:       target.Fiber,
		Fat:         target.Fat,
		Ingredients: []IngredientSpec{{Names: "rice", Amount: 100.0}},
	}

	history := NewSelectionHistory()
	if _, ok := s.FindSuitable([]FoodCandidate{cand}, SlotBreakfast, target, history, SearchOptions{}); ok {
		t.Error("unrelaxed search should reject a 120 kcal deviation at tol=100")
	}
	if _, ok := s.FindSuitable([]FoodCandidate{cand}, SlotBreakfast, target, history, SearchOptions{Relaxed: true}); !ok {
		t.Error("relaxed search should accept a 120 kcal deviation at tol=150")
	}
}

func TestFindSuitable_Filters(t *testing.T) {
	target := stdTarget
	veg := matchingCandidate(1, SlotLunch, target)
	nonVeg := matchingCandidate(2, SlotLunch, target)
	nonVeg.DietType = DietNonVegetarian
	wrongSlot := matchingCandidate(3, SlotDinner, target)
	southOnly := matchingCandidate(4, SlotLunch, target)
	southOnly.Regions = []string{"South"}

	pool := []FoodCandidate{veg, nonVeg, wrongSlot, southOnly}
	history := NewSelectionHistory()

	t.Run("vegetarian excludes non-veg", func(t *testing.T) {
		s := testSelector()
		for i := 0; i < 10; i++ {
			sel, ok := s.FindSuitable(pool, SlotLunch, target, history, SearchOptions{})
			if !ok {
				t.Fatal("expected a selection")
			}
			if sel.DietType == DietNonVegetarian {
				t.Fatal("vegetarian selector returned a non-veg candidate")
			}
		}
	})

	t.Run("region filter", func(t *testing.T) {
		s := testSelector()
		s.Region = "North"
		for i := 0; i < 10; i++ {
			sel, ok := s.FindSuitable(pool, SlotLunch, target, history, SearchOptions{UseRegion: true})
			if !ok {
				t.Fatal("expected a selection")
			}
			if sel.SourceID == 4 {
				t.Fatal("south-only candidate matched a north search")
			}
		}
		// dropping the region constraint readmits it
		s.Region = "South"
		sel, ok := s.FindSuitable([]FoodCandidate{southOnly}, SlotLunch, target, history, SearchOptions{UseRegion: true})
		if !ok || sel.SourceID != 4 {
			t.Fatal("south candidate should match a south search")
		}
	})

	t.Run("history exclusion", func(t *testing.T) {
		s := testSelector()
		h := NewSelectionHistory()
		h.Add(SlotLunch, 1)
		h.Add(SlotLunch, 4)
		sel, ok := s.FindSuitable(pool, SlotLunch, target, h, SearchOptions{})
		if ok && (sel.SourceID == 1 || sel.SourceID == 4) {
			t.Fatal("history-excluded candidate was selected")
		}
	})

	t.Run("non-vegetarian profile accepts both", func(t *testing.T) {
		s := testSelector()
		s.DietType = DietNonVegetarian
		if _, ok := s.FindSuitable([]FoodCandidate{nonVeg}, SlotLunch, target, NewSelectionHistory(), SearchOptions{}); !ok {
			t.Fatal("non-veg profile should accept a non-veg candidate")
		}
	})
}

// Scaled nutrition and ingredient amounts follow the scale factor, and
// duplicate ingredient names merge case-normalized.
func TestFindSuitable_ScalesSelection(t *testing.T) {
	s := testSelector()
	target := stdTarget
	c := FoodCandidate{
		ID:        7,
		Name:      "Dal Chawal",
		DietType:  DietVegetarian,
		MealTimes: []string{string(SlotLunch)},
		// base is a double serving: factor 0.5
		Calories: target.Calories * 2,
		Protein:  target.Protein * 2,
		Carbs:    target.Carbs * 2,
		Fiber:    target.Fiber * 2,
		Fat:      target.Fat * 2,
		Ingredients: []IngredientSpec{
			{Names: "rice, dal", Amount: "200, 100"},
			{Names: "RICE", Amount: 50.0},
		},
	}

	sel, ok := s.FindSuitable([]FoodCandidate{c}, SlotLunch, target, NewSelectionHistory(), SearchOptions{})
	if !ok {
		t.Fatal("expected a selection")
	}
	if sel.ScaleFactor != 0.5 {
		t.Fatalf("scale factor = %.4f, want 0.5", sel.ScaleFactor)
	}
	if math.Abs(sel.Calories-target.Calories) > 0.01 {
		t.Errorf("scaled calories = %.2f, want %.2f", sel.Calories, target.Calories)
	}
	want := map[string]float64{"Rice": 125, "Dal": 50}
	if !reflect.DeepEqual(sel.Ingredients, want) {
		t.Errorf("ingredients = %v, want %v", sel.Ingredients, want)
	}
}

func TestParseAmounts(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want []float64
	}{
		{"comma string", "10, 20.5", []float64{10, 20.5}},
		{"garbage in string", "10, abc, 5", []float64{10, 0, 5}},
		{"single float", 42.0, []float64{42}},
		{"single int", 42, []float64{42}},
		{"mixed list", []any{1.0, "2", "x", 3}, []float64{1, 2, 0, 3}},
		{"float list", []float64{5, 6}, []float64{5, 6}},
		{"nil", nil, []float64{0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseAmounts(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("parseAmounts(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestScaledIngredients_PadsShortAmounts(t *testing.T) {
	specs := []IngredientSpec{
		{Names: "rice, dal, ghee", Amount: "100"},
		{Names: "a", Amount: 10.0}, // single-char names are dropped
	}
	got := scaledIngredients(specs, 2)
	want := map[string]float64{"Rice": 200, "Dal": 0, "Ghee": 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("scaledIngredients = %v, want %v", got, want)
	}
}

// Scaled nutrition can never go negative: base values are non-negative and
// the factor is clamped positive.
func TestScaledValuesNonNegative(t *testing.T) {
	s := testSelector()
	c := matchingCandidate(1, SlotBreakfast, stdTarget)
	sel, ok := s.FindSuitable([]FoodCandidate{c}, SlotBreakfast, stdTarget, NewSelectionHistory(), SearchOptions{})
	if !ok {
		t.Fatal("expected a selection")
	}
	for name, v := range map[string]float64{
		"calories": sel.Calories, "protein": sel.Protein, "carbs": sel.Carbs,
		"fiber": sel.Fiber, "fat": sel.Fat,
	} {
		if v < 0 {
			t.Errorf("scaled %s is negative: %.2f", name, v)
		}
	}
}

// With a seeded source the shuffle order, and therefore the selection, is
// reproducible.
func TestFindSuitable_DeterministicWithSeed(t *testing.T) {
	target := stdTarget
	pool := []FoodCandidate{
		matchingCandidate(1, SlotLunch, target),
		matchingCandidate(2, SlotLunch, target),
		matchingCandidate(3, SlotLunch, target),
		matchingCandidate(4, SlotLunch, target),
	}

	pick := func() uint {
		s := testSelector()
		s.Rand = rand.New(rand.NewSource(99))
		sel, ok := s.FindSuitable(pool, SlotLunch, target, NewSelectionHistory(), SearchOptions{})
		if !ok {
			t.Fatal("expected a selection")
		}
		return sel.SourceID
	}
	first := pick()
	for i := 0; i < 5; i++ {
		if got := pick(); got != first {
			t.Fatalf("seeded selection not reproducible: %d != %d", got, first)
		}
	}
}

func TestCapitalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"rice", "Rice"},
		{"RICE", "Rice"},
		{"  basmati rice ", "Basmati rice"},
		{"épinard", "Épinard"},
		{"œufs", "Œufs"},
		{"", ""},
	}
	for _, c := range cases {
		if got := capitalize(c.in); got != c.want {
			t.Errorf("capitalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
