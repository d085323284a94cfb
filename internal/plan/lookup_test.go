package plan

import (
	"testing"
)

func mustRecord(t *testing.T, data string) *Record {
	t.Helper()
	rec, err := DecodeRecord([]byte(data))
	if err != nil {
		t.Fatalf("DecodeRecord(%q): %v", data, err)
	}
	return rec
}

func TestLookupCaseInsensitive(t *testing.T) {
	variants := []string{
		`{"Calories": 2200}`,
		`{"calories": 2200}`,
		`{"CALORIES": 2200}`,
	}

	for _, data := range variants {
		rec := mustRecord(t, data)
		v, ok := Lookup(rec, "calories")
		if !ok {
			t.Errorf("Lookup(%s, calories) absent, want present", data)
			continue
		}
		if n, _ := Number(v); n != 2200 {
			t.Errorf("Lookup(%s, calories) = %v, want 2200", data, v)
		}
	}
}

func TestLookupAbsent(t *testing.T) {
	if _, ok := Lookup(nil, "calories"); ok {
		t.Error("Lookup(nil, calories) should be absent")
	}
	if _, ok := Lookup(NewRecord(), "calories"); ok {
		t.Error("Lookup on empty record should be absent")
	}
}

func TestLookupCandidateOrder(t *testing.T) {
	rec := mustRecord(t, `{"plan": "second", "diet_plan": "first"}`)

	v, ok := Lookup(rec, "diet plan", "diet_plan", "plan")
	if !ok {
		t.Fatal("Lookup should find a candidate")
	}
	if v != "first" {
		t.Errorf("Lookup = %v, want first candidate to win", v)
	}
}

func TestBodyFallsBackToRoot(t *testing.T) {
	nested := mustRecord(t, `{"diet_plan": {"Breakfast": "Oats"}}`)
	flat := mustRecord(t, `{"Breakfast": "Oats"}`)

	if body := Body(nested, "diet plan", "diet_plan"); body == nested {
		t.Error("Body should return the nested plan, not the wrapper")
	}
	if body := Body(flat, "diet plan", "diet_plan"); body != flat {
		t.Error("Body should fall back to the record itself")
	}
	// A non-record value under the candidate key also falls back.
	scalar := mustRecord(t, `{"diet_plan": "just text"}`)
	if body := Body(scalar, "diet_plan"); body != scalar {
		t.Error("Body should fall back when the candidate isn't an object")
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
		ok   bool
	}{
		{"string", "Oats", "Oats", true},
		{"whole number", 4.0, "4", true},
		{"fraction", 2.5, "2.5", true},
		{"string list", []any{"Fruits", "Nuts"}, "Fruits, Nuts", true},
		{"mixed list", []any{"Fruits", 3.0}, "", false},
		{"record", NewRecord(), "", false},
		{"nil", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Text(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Text(%v) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSanitizeStripsControlChars(t *testing.T) {
	got, ok := Text("Oats\x1b[31m + Milk\x07")
	if !ok {
		t.Fatal("Text should accept a string")
	}
	if got != "Oats[31m + Milk" {
		t.Errorf("sanitized = %q, want control characters stripped", got)
	}
}
