package plan

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestDecodeRecordPreservesKeyOrder(t *testing.T) {
	rec := mustRecord(t, `{"Day 1": 1, "Day 2": 2, "Day 3": 3, "Aardvark": 4}`)

	want := []string{"Day 1", "Day 2", "Day 3", "Aardvark"}
	if !reflect.DeepEqual(rec.Keys(), want) {
		t.Errorf("Keys() = %v, want %v", rec.Keys(), want)
	}
}

func TestDecodeRecordNested(t *testing.T) {
	rec := mustRecord(t, `{"macros": {"protein": 150, "carbs": 200}, "meals": ["Oats", {"name": "Rice"}]}`)

	v, ok := rec.Get("macros")
	if !ok {
		t.Fatal("macros missing")
	}
	macros, ok := v.(*Record)
	if !ok {
		t.Fatalf("macros is %T, want *Record", v)
	}
	if p, _ := macros.Get("protein"); p != 150.0 {
		t.Errorf("protein = %v, want 150", p)
	}

	v, _ = rec.Get("meals")
	arr, ok := v.([]any)
	if !ok || len(arr) != 2 {
		t.Fatalf("meals = %v, want 2-element array", v)
	}
	if _, ok := arr[1].(*Record); !ok {
		t.Errorf("nested array object is %T, want *Record", arr[1])
	}
}

func TestDecodeRecordNotObject(t *testing.T) {
	for _, data := range []string{`[1, 2]`, `"text"`, `42`, `null`} {
		if _, err := DecodeRecord([]byte(data)); !errors.Is(err, ErrNotObject) {
			t.Errorf("DecodeRecord(%s) err = %v, want ErrNotObject", data, err)
		}
	}
}

func TestRecordMarshalRoundTrip(t *testing.T) {
	src := `{"Day 2":{"Lunch":"Rice"},"Day 1":{"Breakfast":"Oats"},"calories":2200}`
	rec := mustRecord(t, src)

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != src {
		t.Errorf("Marshal = %s, want key order preserved: %s", data, src)
	}

	var back Record
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back.Keys(), rec.Keys()) {
		t.Errorf("round-trip keys = %v, want %v", back.Keys(), rec.Keys())
	}
}
