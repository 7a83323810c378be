package service

import (
	"context"
	"fmt"

	"sugoroku/internal/model"
)

// DefaultLeaderboardSize is used when a caller asks for a non-positive limit.
const DefaultLeaderboardSize = 10

// MaxLeaderboardSize caps a single leaderboard query.
const MaxLeaderboardSize = 100

// ResultReader reads finished games.
type ResultReader interface {
	Recent(ctx context.Context, limit int) ([]*model.GameResult, error)
	Best(ctx context.Context, limit int) ([]*model.BestRun, error)
}

// RankingService handles leaderboard queries over finished games.
type RankingService struct {
	results ResultReader
}

// NewRankingService creates a new RankingService instance.
func NewRankingService(results ResultReader) *RankingService {
	return &RankingService{results: results}
}

// Leaderboard is the combined view served to clients.
type Leaderboard struct {
	Recent []*model.GameResult `json:"recent"`
	Best   []*model.BestRun    `json:"best"`
}

// Recent retrieves the latest finished games, newest first.
func (s *RankingService) Recent(ctx context.Context, limit int) ([]*model.GameResult, error) {
	res, err := s.results.Recent(ctx, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to get recent games: %w", err)
	}
	return res, nil
}

// Best retrieves the longest distances travelled in any finished game.
func (s *RankingService) Best(ctx context.Context, limit int) ([]*model.BestRun, error) {
	runs, err := s.results.Best(ctx, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to get best runs: %w", err)
	}
	return runs, nil
}

// Leaderboard retrieves both lists with the same limit.
func (s *RankingService) Leaderboard(ctx context.Context, limit int) (*Leaderboard, error) {
	recent, err := s.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	best, err := s.Best(ctx, limit)
	if err != nil {
		return nil, err
	}
	return &Leaderboard{Recent: recent, Best: best}, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLeaderboardSize
	}
	return min(limit, MaxLeaderboardSize)
}
