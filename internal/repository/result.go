// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sugoroku/internal/model"
)

// Common errors for repository operations.
var (
	ErrResultNotFound = errors.New("game result not found")
)

// ResultRepository persists finished games.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository instance.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// Save inserts a result and its standings in one transaction.
func (r *ResultRepository) Save(ctx context.Context, res *model.GameResult) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const insertResult = `
		INSERT INTO game_results (id, finished_at, rounds, winner_name, winner_distance)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.Exec(ctx, insertResult,
		res.ID, res.FinishedAt, res.Rounds, res.WinnerName, res.WinnerDistance,
	); err != nil {
		return fmt.Errorf("failed to insert game result: %w", err)
	}

	const insertStanding = `
		INSERT INTO game_standings (game_id, seat, name, character_image, total_distance, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	batch := &pgx.Batch{}
	for _, s := range res.Standings {
		batch.Queue(insertStanding, res.ID, s.Seat, s.Name, s.Character, s.TotalDistance, s.Position)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert standings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit game result: %w", err)
	}
	return nil
}

// GetByID retrieves a result with its standings in seat order.
// Returns ErrResultNotFound if the game was never recorded.
func (r *ResultRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.GameResult, error) {
	const query = `
		SELECT id, finished_at, rounds, winner_name, winner_distance
		FROM game_results
		WHERE id = $1
	`

	var res model.GameResult
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&res.ID,
		&res.FinishedAt,
		&res.Rounds,
		&res.WinnerName,
		&res.WinnerDistance,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get game result: %w", err)
	}

	standings, err := r.standings(ctx, id)
	if err != nil {
		return nil, err
	}
	res.Standings = standings
	return &res, nil
}

// Recent retrieves the latest finished games, newest first, without standings.
func (r *ResultRepository) Recent(ctx context.Context, limit int) ([]*model.GameResult, error) {
	const query = `
		SELECT id, finished_at, rounds, winner_name, winner_distance
		FROM game_results
		ORDER BY finished_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent results: %w", err)
	}
	defer rows.Close()

	var results []*model.GameResult
	for rows.Next() {
		var res model.GameResult
		if err := rows.Scan(
			&res.ID,
			&res.FinishedAt,
			&res.Rounds,
			&res.WinnerName,
			&res.WinnerDistance,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game result: %w", err)
		}
		results = append(results, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}

	return results, nil
}

// Best retrieves the longest single-player distances across all games.
func (r *ResultRepository) Best(ctx context.Context, limit int) ([]*model.BestRun, error) {
	const query = `
		SELECT s.game_id, s.name, s.character_image, s.total_distance,
		       s.name = g.winner_name AND s.total_distance = g.winner_distance AS won,
		       g.finished_at
		FROM game_standings s
		JOIN game_results g ON g.id = s.game_id
		ORDER BY s.total_distance DESC, g.finished_at ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get best runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.BestRun
	for rows.Next() {
		var run model.BestRun
		if err := rows.Scan(
			&run.GameID,
			&run.Name,
			&run.Character,
			&run.TotalDistance,
			&run.Won,
			&run.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan best run: %w", err)
		}
		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating best runs: %w", err)
	}

	return runs, nil
}

func (r *ResultRepository) standings(ctx context.Context, id uuid.UUID) ([]model.Standing, error) {
	const query = `
		SELECT game_id, seat, name, character_image, total_distance, position
		FROM game_standings
		WHERE game_id = $1
		ORDER BY seat
	`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}
	defer rows.Close()

	var out []model.Standing
	for rows.Next() {
		var s model.Standing
		if err := rows.Scan(&s.GameID, &s.Seat, &s.Name, &s.Character, &s.TotalDistance, &s.Position); err != nil {
			return nil, fmt.Errorf("failed to scan standing: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating standings: %w", err)
	}
	return out, nil
}
