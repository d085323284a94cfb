package plan

import (
	"sort"
	"strings"
	"unicode"
)

// canonicalMeals fixes the order meals are shown in within a day card.
// Each entry carries the spellings the backend has been seen to use.
var canonicalMeals = []struct {
	label      string
	candidates []string
}{
	{"Breakfast", []string{"breakfast"}},
	{"Mid-Morning", []string{"mid-morning", "mid morning", "mid-morning snack"}},
	{"Lunch", []string{"lunch"}},
	{"Evening Snack", []string{"evening snack", "evening-snack"}},
	{"Snacks", []string{"snacks", "snack"}},
	{"Dinner", []string{"dinner"}},
	{"Pre-Workout", []string{"pre-workout", "pre workout"}},
	{"Post-Workout", []string{"post-workout", "post workout"}},
}

var weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday",
	"friday", "saturday", "sunday",
}

// RenderDiet turns a diet plan record of any of the shapes the backend
// produces into display blocks: an optional nutrition summary, then one
// card per detected day, or a single daily card when the plan isn't
// split into days.
func RenderDiet(rec *Record) []Block {
	if rec == nil {
		return []Block{Invalid("Diet plan has an unrecognized format")}
	}

	var blocks []Block
	blocks = append(blocks, nutritionSummary(rec)...)

	body := Body(rec, "diet plan", "diet_plan", "meals", "plan")

	// Precedence rule: if any day-labelled key exists, only day keys
	// become cards; otherwise the whole body is one daily card.
	type dayKey struct {
		key   string
		order int
	}
	var days []dayKey
	for i, key := range body.Keys() {
		if isDayLabel(key) {
			days = append(days, dayKey{key: key, order: i})
		}
	}

	if len(days) == 0 {
		blocks = append(blocks, Heading(2, "Daily Plan"))
		blocks = append(blocks, mealBlocks(body)...)
		return blocks
	}

	sort.SliceStable(days, func(i, j int) bool {
		return dayNumber(days[i].key) < dayNumber(days[j].key)
	})

	for _, d := range days {
		blocks = append(blocks, Heading(2, sanitize(d.key)))
		v, _ := body.Get(d.key)
		switch val := v.(type) {
		case *Record:
			blocks = append(blocks, mealBlocks(val)...)
		default:
			if text, ok := mealText(val); ok {
				blocks = append(blocks, TextLine(text))
			}
		}
	}

	return blocks
}

// nutritionSummary emits the calorie target and macro breakdown, each
// piece omitted individually when absent.
func nutritionSummary(rec *Record) []Block {
	var blocks []Block

	if v, ok := Lookup(rec, "calories", "target calories", "daily calories"); ok {
		if cal, ok := Number(v); ok {
			blocks = append(blocks, KeyValue("Calories", formatNumber(cal)+" kcal"))
		}
	}

	if v, ok := Lookup(rec, "macros"); ok {
		if macros, ok := v.(*Record); ok {
			macroRows := []struct {
				label      string
				candidates []string
			}{
				{"Protein", []string{"protein", "protein (g)", "protein_g"}},
				{"Carbs", []string{"carbs", "carbs (g)", "carbohydrates"}},
				{"Fats", []string{"fats", "fats (g)", "fat"}},
			}
			for _, row := range macroRows {
				if mv, ok := Lookup(macros, row.candidates...); ok {
					if n, ok := Number(mv); ok {
						blocks = append(blocks, KeyValue(row.label, formatNumber(n)+" g"))
					}
				}
			}
		}
	}

	if len(blocks) > 0 {
		blocks = append([]Block{Heading(1, "Nutrition Summary")}, blocks...)
	}
	return blocks
}

// mealBlocks renders one day's meals: canonical meals first in fixed
// order, then any leftover string/list-valued keys in encounter order.
// Values of any other type are not meals and are skipped.
func mealBlocks(day *Record) []Block {
	var blocks []Block
	consumed := make(map[string]bool)

	for _, meal := range canonicalMeals {
		key, v, ok := lookupKey(day, meal.candidates...)
		if !ok {
			continue
		}
		consumed[key] = true
		if text, ok := mealText(v); ok {
			blocks = append(blocks, KeyValue(meal.label, text))
		}
	}

	for _, key := range day.Keys() {
		if consumed[key] {
			continue
		}
		lower := strings.ToLower(key)
		if lower == "calories" || lower == "macros" {
			continue
		}
		v, _ := day.Get(key)
		if text, ok := mealText(v); ok {
			blocks = append(blocks, KeyValue(sanitize(key), text))
		}
	}

	return blocks
}

// isDayLabel reports whether a key names a single day of a multi-day
// plan: it contains "day" ("Day 1", "Day 3 - Legs") or a weekday name.
func isDayLabel(key string) bool {
	lower := strings.ToLower(key)
	if strings.Contains(lower, "day") {
		return true
	}
	for _, wd := range weekdays {
		if strings.Contains(lower, wd) {
			return true
		}
	}
	return false
}

// dayNumber extracts the first integer in a day label for sorting.
// Labels without a digit sort as 0.
func dayNumber(key string) int {
	n := 0
	found := false
	for _, r := range key {
		if unicode.IsDigit(r) {
			n = n*10 + int(r-'0')
			found = true
		} else if found {
			break
		}
	}
	return n
}
