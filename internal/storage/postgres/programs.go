package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ActiveProgram returns the user's active program, or storage.ErrNotFound.
func (g *Gateway) ActiveProgram(ctx context.Context) (*models.Program, error) {
	var id uuid.UUID
	var raw []byte
	err := g.Pool.QueryRow(ctx,
		`SELECT id, program_data FROM programs
		 WHERE user_id = $1 AND is_active = TRUE`,
		g.userID).Scan(&id, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying active program: %w", err)
	}

	var data models.ProgramData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decoding program: %w", err)
	}
	p := models.NormalizeProgram(data)
	p.ID = id.String()
	return p, nil
}

// SaveProgram deactivates the current active program and inserts the new one
// as active, mirroring the hosted backend's replace-on-save behavior.
func (g *Gateway) SaveProgram(ctx context.Context, data models.ProgramData) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encoding program: %w", err)
	}

	tx, err := g.Pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("starting tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE programs SET is_active = FALSE WHERE user_id = $1 AND is_active = TRUE`,
		g.userID); err != nil {
		return "", fmt.Errorf("deactivating program: %w", err)
	}

	id := uuid.New()
	if _, err := tx.Exec(ctx,
		`INSERT INTO programs (id, user_id, name, program_data, is_active)
		 VALUES ($1, $2, $3, $4, TRUE)`,
		id, g.userID, data.Name, raw); err != nil {
		return "", fmt.Errorf("inserting program: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("committing program: %w", err)
	}
	return id.String(), nil
}

// UpdateProgram rewrites an existing program in place, preserving identity.
func (g *Gateway) UpdateProgram(ctx context.Context, id string, data models.ProgramData) error {
	programID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("parsing program id: %w", err)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding program: %w", err)
	}

	tag, err := g.Pool.Exec(ctx,
		`UPDATE programs SET name = $1, program_data = $2
		 WHERE id = $3 AND user_id = $4`,
		data.Name, raw, programID, g.userID)
	if err != nil {
		return fmt.Errorf("updating program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
