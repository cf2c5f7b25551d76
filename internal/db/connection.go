package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baonguyen-lq/ecommerce-faker-data-generator/internal/config"
)

// Connect opens a pgx pool against the configured database and verifies
// it with a ping. The pool is held for the whole run; the tool is a
// single sequential writer.
func Connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
