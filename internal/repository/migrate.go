package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS game_results (
		id UUID PRIMARY KEY,
		finished_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		rounds INTEGER NOT NULL,
		winner_name VARCHAR(255) NOT NULL,
		winner_distance INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS game_standings (
		game_id UUID NOT NULL REFERENCES game_results(id) ON DELETE CASCADE,
		seat INTEGER NOT NULL,
		name VARCHAR(255) NOT NULL,
		character_image VARCHAR(255) NOT NULL,
		total_distance INTEGER NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (game_id, seat)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_game_results_finished_at ON game_results (finished_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_game_standings_distance ON game_standings (total_distance DESC)`,
}

// Migrate applies the results schema. It is safe to run on every boot.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	log.Info().Msg("Running database migrations...")
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema step %d: %w", i+1, err)
		}
	}
	log.Info().Int("steps", len(schema)).Msg("All migrations completed successfully")
	return nil
}
