package models

import "testing"

// TestResolveRotationIndexCycle verifies the standard three-slot cycle for
// days other than the third.
func TestResolveRotationIndexCycle(t *testing.T) {
	tests := []struct {
		week, dayOrdinal, want int
	}{
		{1, 1, 0},
		{2, 1, 1},
		{3, 1, 2},
		{4, 1, 0},
		{7, 2, 0},
		{12, 4, 2},
	}
	for _, tt := range tests {
		if got := ResolveRotationIndex(tt.week, tt.dayOrdinal); got != tt.want {
			t.Errorf("ResolveRotationIndex(%d, %d) = %d, want %d", tt.week, tt.dayOrdinal, got, tt.want)
		}
	}
}

// TestResolveRotationIndexDayThree verifies the third day alternates between
// slots 0 and 1 by week parity, never hitting slot 2.
func TestResolveRotationIndexDayThree(t *testing.T) {
	for week := 1; week <= MaxWeek; week++ {
		got := ResolveRotationIndex(week, 3)
		want := 1
		if week%2 == 1 {
			want = 0
		}
		if got != want {
			t.Errorf("week %d: slot = %d, want %d", week, got, want)
		}
		if got == 2 {
			t.Errorf("week %d: day 3 reached slot 2", week)
		}
	}
}

// TestSessionTypeMainVsAccessory verifies prescription rendering for both
// exercise kinds, including short-rotation wrapping.
func TestSessionTypeMainVsAccessory(t *testing.T) {
	main := ExercisePrescription{
		Name: "Back Squat", IsMain: true,
		Rotation: []string{"heavy", "volume", "speed"},
	}
	for slot, want := range []string{"heavy", "volume", "speed"} {
		if got := main.SessionType(slot); got != want {
			t.Errorf("slot %d = %q, want %q", slot, got, want)
		}
	}

	twoSlot := ExercisePrescription{Name: "Deadlift", IsMain: true, Rotation: []string{"heavy", "speed"}}
	if got := twoSlot.SessionType(2); got != "heavy" {
		t.Errorf("wrapped slot 2 = %q, want heavy", got)
	}

	accessory := ExercisePrescription{Name: "Leg Press", Sets: "3x12-15", RPE: "RPE 7-8"}
	for slot := 0; slot < 3; slot++ {
		if got := accessory.SessionType(slot); got != "3x12-15 @ RPE 7-8" {
			t.Errorf("accessory slot %d = %q", slot, got)
		}
	}
}

// TestNormalizeProgramAssignsIDs verifies days without IDs get fresh unique
// ones while existing IDs survive.
func TestNormalizeProgramAssignsIDs(t *testing.T) {
	data := ProgramData{
		Name: "Test",
		Days: []ProgramDay{
			{Name: "A"},
			{ID: "keep-me", Name: "B"},
			{Name: "C"},
		},
	}
	p := NormalizeProgram(data)

	if p.Days[1].ID != "keep-me" {
		t.Errorf("existing ID replaced: %q", p.Days[1].ID)
	}
	if p.Days[0].ID == "" || p.Days[2].ID == "" {
		t.Error("missing IDs were not assigned")
	}
	if p.Days[0].ID == p.Days[2].ID {
		t.Error("assigned IDs are not unique")
	}
}

// TestProgramDataRoundTrip verifies NormalizeProgram and Data invert each
// other once days carry IDs.
func TestProgramDataRoundTrip(t *testing.T) {
	original := DefaultProgram()
	again := NormalizeProgram(original.Data())

	if again.Name != original.Name || len(again.Days) != len(original.Days) {
		t.Fatalf("round trip changed shape: %q with %d days", again.Name, len(again.Days))
	}
	for i := range original.Days {
		if again.Days[i].ID != original.Days[i].ID {
			t.Errorf("day %d ID changed: %q -> %q", i, original.Days[i].ID, again.Days[i].ID)
		}
		if len(again.Days[i].Exercises) != len(original.Days[i].Exercises) {
			t.Errorf("day %d exercise count changed", i)
		}
	}
}

// TestDayLookupAndOrdinal verifies ID-based lookup and 1-based ordinals.
func TestDayLookupAndOrdinal(t *testing.T) {
	p := DefaultProgram()

	day := p.Day("default-day-3")
	if day == nil || day.Name != "Lower (Deadlift)" {
		t.Fatalf("Day(default-day-3) = %+v", day)
	}
	if got := p.DayOrdinal("default-day-3"); got != 3 {
		t.Errorf("ordinal = %d, want 3", got)
	}

	if p.Day("missing") != nil {
		t.Error("unknown ID returned a day")
	}
	if got := p.DayOrdinal("missing"); got != 0 {
		t.Errorf("unknown ordinal = %d, want 0", got)
	}
}

// TestDefaultProgramShape verifies the built-in template: four days, one
// main lift each, and the two-slot deadlift rotation.
func TestDefaultProgramShape(t *testing.T) {
	p := DefaultProgram()
	if len(p.Days) != 4 {
		t.Fatalf("day count = %d, want 4", len(p.Days))
	}
	for i, day := range p.Days {
		mains := 0
		for _, ex := range day.Exercises {
			if ex.IsMain {
				mains++
				if i == 2 {
					if len(ex.Rotation) != 2 {
						t.Errorf("deadlift rotation length = %d, want 2", len(ex.Rotation))
					}
				} else if len(ex.Rotation) != RotationLength {
					t.Errorf("day %d rotation length = %d, want %d", i+1, len(ex.Rotation), RotationLength)
				}
			}
		}
		if mains != 1 {
			t.Errorf("day %d has %d main lifts, want 1", i+1, mains)
		}
	}
}
