// Package model defines the persisted records of finished games.
package model

import (
	"time"

	"github.com/google/uuid"
)

// GameResult is one finished game.
// Stored in game_results; Standings come from game_standings.
type GameResult struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	FinishedAt     time.Time  `db:"finished_at" json:"finished_at"`
	Rounds         int        `db:"rounds" json:"rounds"`
	WinnerName     string     `db:"winner_name" json:"winner_name"`
	WinnerDistance int        `db:"winner_distance" json:"winner_distance"`
	Standings      []Standing `json:"standings,omitempty"`
}

// Standing is one player's final line in a finished game.
type Standing struct {
	GameID        uuid.UUID `db:"game_id" json:"game_id"`
	Seat          int       `db:"seat" json:"seat"`
	Name          string    `db:"name" json:"name"`
	Character     string    `db:"character_image" json:"character_image"`
	TotalDistance int       `db:"total_distance" json:"total_distance"`
	Position      int       `db:"position" json:"position"`
}

// BestRun is a single player's distance in a finished game, used for the
// all-time leaderboard.
type BestRun struct {
	GameID        uuid.UUID `db:"game_id" json:"game_id"`
	Name          string    `db:"name" json:"name"`
	Character     string    `db:"character_image" json:"character_image"`
	TotalDistance int       `db:"total_distance" json:"total_distance"`
	Won           bool      `db:"won" json:"won"`
	FinishedAt    time.Time `db:"finished_at" json:"finished_at"`
}
