package models

import "testing"

// TestBuiltinExercisesStableIDs verifies the starter catalog is fixed and
// carries unique IDs.
func TestBuiltinExercisesStableIDs(t *testing.T) {
	exercises := BuiltinExercises()
	if len(exercises) != 10 {
		t.Fatalf("catalog size = %d, want 10", len(exercises))
	}
	seen := make(map[string]bool)
	for _, ex := range exercises {
		if ex.ID == "" || seen[ex.ID] {
			t.Errorf("bad or duplicate ID %q for %q", ex.ID, ex.Name)
		}
		seen[ex.ID] = true
		if ex.IsCustom {
			t.Errorf("built-in %q flagged custom", ex.Name)
		}
	}
}

// TestFilterExercisesByCategory verifies exact category matching.
func TestFilterExercisesByCategory(t *testing.T) {
	legs := FilterExercisesByCategory(BuiltinExercises(), CategoryLegs)
	if len(legs) == 0 {
		t.Fatal("no leg exercises found")
	}
	for _, ex := range legs {
		if ex.Category != CategoryLegs {
			t.Errorf("%q has category %q", ex.Name, ex.Category)
		}
	}
	if got := FilterExercisesByCategory(BuiltinExercises(), "cardio"); len(got) != 0 {
		t.Errorf("unknown category matched %d entries", len(got))
	}
}

// TestSearchExercises verifies case-insensitive substring search and the
// empty-term passthrough.
func TestSearchExercises(t *testing.T) {
	all := BuiltinExercises()

	got := SearchExercises(all, "BARBELL")
	if len(got) != 3 {
		t.Errorf("uppercase search matched %d entries, want 3", len(got))
	}

	if got := SearchExercises(all, "  "); len(got) != len(all) {
		t.Errorf("whitespace term matched %d of %d", len(got), len(all))
	}
	if got := SearchExercises(all, "zzz"); len(got) != 0 {
		t.Errorf("nonsense term matched %d entries", len(got))
	}
}

// TestSetEntryVolume verifies weight times reps, zero for malformed sets.
func TestSetEntryVolume(t *testing.T) {
	tests := []struct {
		set  SetEntry
		want float64
	}{
		{SetEntry{Weight: 100, Reps: 5}, 500},
		{SetEntry{Weight: 0, Reps: 5}, 0},
		{SetEntry{Weight: 100, Reps: 0}, 0},
		{SetEntry{}, 0},
	}
	for _, tt := range tests {
		if got := tt.set.Volume(); got != tt.want {
			t.Errorf("Volume(%+v) = %v, want %v", tt.set, got, tt.want)
		}
	}
}
