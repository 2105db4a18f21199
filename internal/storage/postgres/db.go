// Package postgres is the remote-mode persistence gateway, backed by a
// PostgreSQL pool. Record shapes mirror the hosted backend: programs and
// workouts are stored as JSONB documents with a few indexed columns pulled
// out for querying.
package postgres

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/storage"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
)

// defaultUserID scopes all rows until multi-user support exists.
const defaultUserID = 1

// Gateway wraps a pgxpool.Pool and implements storage.Gateway.
type Gateway struct {
	Pool   *pgxpool.Pool
	userID int
}

var _ storage.Gateway = (*Gateway)(nil)

// New creates a Gateway with a connection pool.
func New(ctx context.Context, dsn string) (*Gateway, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Gateway{Pool: pool, userID: defaultUserID}, nil
}

// Close closes the connection pool.
func (g *Gateway) Close() error {
	g.Pool.Close()
	return nil
}

// RunMigrations applies all pending migrations from the given directory.
func RunMigrations(dsn, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
