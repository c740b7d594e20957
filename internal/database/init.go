package database

import (
	"context"
	"fmt"

	"github.com/yourusername/courtline/internal/config"
)

const createPicksTable = `
CREATE TABLE IF NOT EXISTS model_picks (
	id               UUID PRIMARY KEY,
	date             DATE NOT NULL,
	game_id          INTEGER NOT NULL,
	game_description TEXT NOT NULL,
	home_team        TEXT NOT NULL,
	away_team        TEXT NOT NULL,
	game_start       TIMESTAMPTZ,
	bet_type         TEXT NOT NULL,
	selection        TEXT NOT NULL,
	line             DOUBLE PRECISION NOT NULL,
	pick             TEXT NOT NULL,
	odds             INTEGER NOT NULL,
	value_rating     DOUBLE PRECISION NOT NULL,
	confidence       DOUBLE PRECISION NOT NULL,
	edge             DOUBLE PRECISION NOT NULL,
	score            DOUBLE PRECISION NOT NULL DEFAULT 0,
	reasoning        TEXT NOT NULL DEFAULT '',
	is_best_bet      BOOLEAN NOT NULL DEFAULT FALSE,
	best_bet_rank    INTEGER,
	is_locked        BOOLEAN NOT NULL DEFAULT FALSE,
	home_score       INTEGER,
	away_score       INTEGER,
	result           BOOLEAN,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (date, game_id, bet_type)
)`

var createPicksIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_model_picks_date ON model_picks (date)`,
	`CREATE INDEX IF NOT EXISTS idx_model_picks_date_best ON model_picks (date, is_best_bet)`,
	`CREATE INDEX IF NOT EXISTS idx_model_picks_ungraded ON model_picks (date) WHERE result IS NULL`,
}

// Initialize creates a database connection pool and ensures the picks schema
// exists. The schema is idempotent, so running it on every start is safe.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the model_picks table and its indexes if missing.
func EnsureSchema(ctx context.Context, db *DB) error {
	if _, err := db.pool.Exec(ctx, createPicksTable); err != nil {
		return fmt.Errorf("failed to create model_picks table: %w", err)
	}
	for _, idx := range createPicksIndexes {
		if _, err := db.pool.Exec(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
