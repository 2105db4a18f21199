package models

import "strings"

// Exercise categories. Stored as plain strings so custom entries survive
// round-trips through JSON and both storage backends.
const (
	CategoryChest     = "chest"
	CategoryBack      = "back"
	CategoryLegs      = "legs"
	CategoryShoulders = "shoulders"
	CategoryArms      = "arms"
	CategoryCore      = "core"
	CategoryOther     = "other"
)

// Equipment kinds.
const (
	EquipmentBarbell    = "barbell"
	EquipmentDumbbell   = "dumbbell"
	EquipmentMachine    = "machine"
	EquipmentCable      = "cable"
	EquipmentBodyweight = "bodyweight"
	EquipmentOther      = "other"
)

// Exercise is a catalog entry. Built-ins are fixed at process start; custom
// entries are created and deleted by the user and persisted independently.
type Exercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Equipment   string `json:"equipment"`
	IsCompound  bool   `json:"is_compound"`
	IsCustom    bool   `json:"is_custom"`
	Description string `json:"description,omitempty"`
}

// BuiltinExercises returns the fixed starter catalog.
func BuiltinExercises() []Exercise {
	return []Exercise{
		{ID: "default-1", Name: "Barbell Bench Press", Category: CategoryChest, Equipment: EquipmentBarbell, IsCompound: true},
		{ID: "default-2", Name: "Back Squat", Category: CategoryLegs, Equipment: EquipmentBarbell, IsCompound: true},
		{ID: "default-3", Name: "Conventional Deadlift", Category: CategoryLegs, Equipment: EquipmentBarbell, IsCompound: true},
		{ID: "default-4", Name: "Overhead Press", Category: CategoryShoulders, Equipment: EquipmentBarbell, IsCompound: true},
		{ID: "default-5", Name: "Barbell Row", Category: CategoryBack, Equipment: EquipmentBarbell, IsCompound: true},
		{ID: "default-6", Name: "Lat Pulldown", Category: CategoryBack, Equipment: EquipmentMachine},
		{ID: "default-7", Name: "Leg Press", Category: CategoryLegs, Equipment: EquipmentMachine, IsCompound: true},
		{ID: "default-8", Name: "Cable Fly", Category: CategoryChest, Equipment: EquipmentCable},
		{ID: "default-9", Name: "Hanging Leg Raise", Category: CategoryCore, Equipment: EquipmentBodyweight},
		{ID: "default-10", Name: "Barbell Curl", Category: CategoryArms, Equipment: EquipmentBarbell},
	}
}

// FilterExercisesByCategory returns the entries matching the category.
func FilterExercisesByCategory(exercises []Exercise, category string) []Exercise {
	var out []Exercise
	for _, ex := range exercises {
		if ex.Category == category {
			out = append(out, ex)
		}
	}
	return out
}

// SearchExercises returns entries whose name contains the term,
// case-insensitively. An empty or whitespace term matches everything.
func SearchExercises(exercises []Exercise, term string) []Exercise {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return exercises
	}
	var out []Exercise
	for _, ex := range exercises {
		if strings.Contains(strings.ToLower(ex.Name), term) {
			out = append(out, ex)
		}
	}
	return out
}
