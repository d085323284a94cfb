package plan

// RenderWorkout turns a workout plan record into display blocks: an
// optional overview, then one block per day in the order the backend
// emitted them. Day order is not re-sorted; the backend lists days in
// sequence and the Record preserves that.
func RenderWorkout(rec *Record) []Block {
	if rec == nil {
		return []Block{Invalid("Workout plan has an unrecognized format")}
	}

	var blocks []Block

	overview, hasOverview := Lookup(rec, "workout overview", "overview")
	if hasOverview {
		if ov, ok := overview.(*Record); ok {
			blocks = append(blocks, overviewBlocks(ov)...)
		}
	}

	body := Body(rec, "workout plan", "workout_plan", "plan")
	fallthroughBody := body == rec

	for _, key := range body.Keys() {
		v, _ := body.Get(key)
		day, isRecord := v.(*Record)

		if fallthroughBody {
			// On root fallback the overview and notes keys sit beside
			// the days; only record-valued or day-labelled keys are days.
			if consumedByWorkoutChrome(key) {
				continue
			}
			if !isRecord && !isDayLabel(key) {
				continue
			}
		}

		blocks = append(blocks, Heading(2, sanitize(key)))
		if !isRecord {
			if text, ok := Text(v); ok {
				blocks = append(blocks, TextLine(text))
			}
			continue
		}
		blocks = append(blocks, dayBlocks(day)...)
	}

	if v, ok := Lookup(rec, "workout notes", "notes"); ok {
		if text, ok := Text(v); ok {
			blocks = append(blocks, KeyValue("Notes", text))
		}
	}

	return blocks
}

func overviewBlocks(ov *Record) []Block {
	rows := []struct {
		label      string
		candidates []string
	}{
		{"Goal", []string{"goal"}},
		{"Days/Week", []string{"days_per_week", "days per week", "days"}},
		{"Location", []string{"location"}},
		{"Experience", []string{"experience", "level"}},
	}

	blocks := []Block{Heading(1, "Overview")}
	found := false
	for _, row := range rows {
		if v, ok := Lookup(ov, row.candidates...); ok {
			if text, ok := Text(v); ok {
				blocks = append(blocks, KeyValue(row.label, text))
				found = true
			}
		}
	}
	if !found {
		return nil
	}
	return blocks
}

// dayBlocks renders one day's detail. Warm-up, exercises and cooldown
// are each optional; a day with none of them still rendered its header.
func dayBlocks(day *Record) []Block {
	var blocks []Block

	if v, ok := Lookup(day, "warm-up", "warmup", "warm up"); ok {
		if text, ok := Text(v); ok {
			blocks = append(blocks, KeyValue("Warm-up", text))
		}
	}

	if v, ok := Lookup(day, "exercises"); ok {
		if list, ok := v.([]any); ok {
			items := make([]string, 0, len(list))
			for _, item := range list {
				if line, ok := exerciseLine(item); ok {
					items = append(items, line)
				}
			}
			if len(items) > 0 {
				blocks = append(blocks, Block{Kind: BlockList, Items: items})
			}
		}
	}

	if v, ok := Lookup(day, "cooldown", "cool-down", "cool down"); ok {
		if text, ok := Text(v); ok {
			blocks = append(blocks, KeyValue("Cooldown", text))
		}
	}

	return blocks
}

// exerciseLine formats a single exercise. Plain strings pass through
// verbatim; structured entries render as "name — sets × reps", with
// sets and reps independently optional.
func exerciseLine(v any) (string, bool) {
	switch ex := v.(type) {
	case string:
		return sanitize(ex), true
	case *Record:
		name, ok := Text(firstOf(Lookup(ex, "name", "exercise")))
		if !ok || name == "" {
			return "", false
		}
		sets, hasSets := Text(firstOf(Lookup(ex, "sets")))
		reps, hasReps := Text(firstOf(Lookup(ex, "reps")))
		switch {
		case hasSets && hasReps:
			return name + " — " + sets + " × " + reps, true
		case hasSets:
			return name + " — " + sets + " sets", true
		case hasReps:
			return name + " — " + reps + " reps", true
		}
		return name, true
	}
	return "", false
}

// firstOf adapts a (value, ok) lookup so absent values coerce to nothing.
func firstOf(v any, ok bool) any {
	if !ok {
		return nil
	}
	return v
}

func consumedByWorkoutChrome(key string) bool {
	switch {
	case equalFoldAny(key, "workout overview", "overview"):
		return true
	case equalFoldAny(key, "workout notes", "notes"):
		return true
	case equalFoldAny(key, "workout plan", "workout_plan", "plan"):
		return true
	}
	return false
}
