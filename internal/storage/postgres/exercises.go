package postgres

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// CustomExercises returns the user's custom catalog entries, ordered by
// category then name.
func (g *Gateway) CustomExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := g.Pool.Query(ctx,
		`SELECT id, name, category, equipment, is_compound, description
		 FROM exercise_library
		 WHERE user_id = $1 AND is_custom = TRUE
		 ORDER BY category ASC, name ASC`,
		g.userID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise library: %w", err)
	}
	defer rows.Close()

	var out []models.Exercise
	for rows.Next() {
		var ex models.Exercise
		var id uuid.UUID
		if err := rows.Scan(&id, &ex.Name, &ex.Category, &ex.Equipment, &ex.IsCompound, &ex.Description); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		ex.ID = id.String()
		ex.IsCustom = true
		out = append(out, ex)
	}
	return out, rows.Err()
}

// AddCustomExercise inserts a custom catalog entry and returns it with its
// assigned ID.
func (g *Gateway) AddCustomExercise(ctx context.Context, ex models.Exercise) (models.Exercise, error) {
	id := uuid.New()
	_, err := g.Pool.Exec(ctx,
		`INSERT INTO exercise_library (id, user_id, name, category, equipment, is_compound, is_custom, description)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7)`,
		id, g.userID, ex.Name, ex.Category, ex.Equipment, ex.IsCompound, ex.Description)
	if err != nil {
		return models.Exercise{}, fmt.Errorf("inserting exercise: %w", err)
	}
	ex.ID = id.String()
	ex.IsCustom = true
	return ex, nil
}

// DeleteCustomExercise removes a custom catalog entry. Built-ins never reach
// this path; they exist only in code.
func (g *Gateway) DeleteCustomExercise(ctx context.Context, id string) error {
	exerciseID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("parsing exercise id: %w", err)
	}
	if _, err := g.Pool.Exec(ctx,
		`DELETE FROM exercise_library WHERE id = $1 AND user_id = $2 AND is_custom = TRUE`,
		exerciseID, g.userID); err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	return nil
}
