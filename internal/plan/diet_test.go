package plan

import (
	"reflect"
	"testing"
)

// headings collects heading titles from a block sequence.
func headings(blocks []Block) []string {
	var out []string
	for _, b := range blocks {
		if b.Kind == BlockHeading {
			out = append(out, b.Title)
		}
	}
	return out
}

func keyValue(t *testing.T, blocks []Block, key string) string {
	t.Helper()
	for _, b := range blocks {
		if b.Kind == BlockKeyValue && b.Title == key {
			return b.Value
		}
	}
	t.Fatalf("no %q key-value block in %v", key, blocks)
	return ""
}

func hasKeyValue(blocks []Block, key string) bool {
	for _, b := range blocks {
		if b.Kind == BlockKeyValue && b.Title == key {
			return true
		}
	}
	return false
}

func TestRenderDietNutritionSummary(t *testing.T) {
	rec := mustRecord(t, `{
		"Calories": 2200,
		"Macros": {"Protein (g)": 150, "Carbs (g)": 200, "Fats (g)": 60},
		"Diet Plan": {"Breakfast": "Oats + Milk", "Snacks": ["Fruits", "Nuts"]}
	}`)

	blocks := RenderDiet(rec)

	if got := keyValue(t, blocks, "Calories"); got != "2200 kcal" {
		t.Errorf("Calories = %q, want %q", got, "2200 kcal")
	}
	if got := keyValue(t, blocks, "Protein"); got != "150 g" {
		t.Errorf("Protein = %q, want %q", got, "150 g")
	}
	if got := keyValue(t, blocks, "Breakfast"); got != "Oats + Milk" {
		t.Errorf("Breakfast = %q", got)
	}
	if got := keyValue(t, blocks, "Snacks"); got != "Fruits, Nuts" {
		t.Errorf("Snacks = %q, want array joined with comma", got)
	}
}

func TestRenderDietMacrosIndividuallyOptional(t *testing.T) {
	rec := mustRecord(t, `{"macros": {"protein": 150}, "Breakfast": "Oats"}`)

	blocks := RenderDiet(rec)
	if !hasKeyValue(blocks, "Protein") {
		t.Error("present macro should render")
	}
	if hasKeyValue(blocks, "Carbs") || hasKeyValue(blocks, "Fats") {
		t.Error("absent macros should be omitted")
	}
}

// When day-labelled keys exist alongside flat meal keys, only day keys
// become cards; without any day key the whole body is one daily card.
func TestRenderDietDayPrecedence(t *testing.T) {
	withDay := mustRecord(t, `{
		"calories": 2200,
		"macros": {"protein": 150, "carbs": 200, "fats": 60},
		"Breakfast": "Oats",
		"Day 2": {"Lunch": "Rice"}
	}`)

	blocks := RenderDiet(withDay)
	if got := headings(blocks); !reflect.DeepEqual(got, []string{"Nutrition Summary", "Day 2"}) {
		t.Errorf("headings = %v, want [Nutrition Summary, Day 2]", got)
	}
	if hasKeyValue(blocks, "Breakfast") {
		t.Error("flat meal key should be dropped when day cards exist")
	}
	if got := keyValue(t, blocks, "Lunch"); got != "Rice" {
		t.Errorf("Lunch = %q, want Rice", got)
	}

	flat := mustRecord(t, `{"Breakfast": "Oats", "Lunch": "Rice"}`)
	blocks = RenderDiet(flat)
	if got := headings(blocks); !reflect.DeepEqual(got, []string{"Daily Plan"}) {
		t.Errorf("headings = %v, want single Daily Plan card", got)
	}
	if !hasKeyValue(blocks, "Breakfast") || !hasKeyValue(blocks, "Lunch") {
		t.Error("flat meals should render in the daily card")
	}
}

func TestRenderDietDaySort(t *testing.T) {
	rec := mustRecord(t, `{
		"Day 10": {"Lunch": "A"},
		"Day 2": {"Lunch": "B"},
		"Day1": {"Lunch": "C"}
	}`)

	blocks := RenderDiet(rec)
	want := []string{"Day1", "Day 2", "Day 10"}
	if got := headings(blocks); !reflect.DeepEqual(got, want) {
		t.Errorf("day order = %v, want %v (numeric ascending)", got, want)
	}
}

func TestRenderDietNoDigitSortsFirst(t *testing.T) {
	rec := mustRecord(t, `{
		"Day 3": {"Lunch": "A"},
		"Rest Day": {"Lunch": "B"},
		"Day 1": {"Lunch": "C"}
	}`)

	blocks := RenderDiet(rec)
	want := []string{"Rest Day", "Day 1", "Day 3"}
	if got := headings(blocks); !reflect.DeepEqual(got, want) {
		t.Errorf("day order = %v, want %v (no digit sorts as 0, stable)", got, want)
	}
}

func TestRenderDietCanonicalMealOrder(t *testing.T) {
	rec := mustRecord(t, `{
		"Dinner": "Khichdi",
		"breakfast": "Oats",
		"Post-Workout": "Shake",
		"Herbal Tea": "Chamomile",
		"Lunch": "Rice"
	}`)

	blocks := RenderDiet(rec)
	var keys []string
	for _, b := range blocks {
		if b.Kind == BlockKeyValue {
			keys = append(keys, b.Title)
		}
	}
	// Canonical order first, unrecognized keys appended in encounter order.
	want := []string{"Breakfast", "Lunch", "Dinner", "Post-Workout", "Herbal Tea"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("meal order = %v, want %v", keys, want)
	}
}

func TestRenderDietSkipsNonMealValues(t *testing.T) {
	rec := mustRecord(t, `{
		"Breakfast": "Oats",
		"Maintenance Calories": 2500,
		"Hydration": {"litres": 3},
		"Supplements": ["Creatine", 5]
	}`)

	blocks := RenderDiet(rec)
	if !hasKeyValue(blocks, "Breakfast") {
		t.Error("string meal should render")
	}
	for _, key := range []string{"Maintenance Calories", "Hydration", "Supplements"} {
		if hasKeyValue(blocks, key) {
			t.Errorf("%q is not a string/list value and should not render as a meal", key)
		}
	}
}

func TestRenderDietInvalidInput(t *testing.T) {
	blocks := RenderDiet(nil)
	if len(blocks) != 1 || blocks[0].Kind != BlockInvalid {
		t.Errorf("RenderDiet(nil) = %v, want single invalid block", blocks)
	}
}
