package service

import (
	"context"
	"time"

	"sugoroku/internal/game/sugoroku"
	"sugoroku/internal/model"
)

// ResultRecorder is called once when a game ends.
type ResultRecorder func(ctx context.Context, res *model.GameResult) error

// ResultSaver persists finished games.
type ResultSaver interface {
	Save(ctx context.Context, res *model.GameResult) error
}

// RecordTo returns a ResultRecorder that saves results to s.
func RecordTo(s ResultSaver) ResultRecorder {
	return func(ctx context.Context, res *model.GameResult) error {
		return s.Save(ctx, res)
	}
}

// resultOf converts a finished game into its persisted form.
func resultOf(g *sugoroku.Game, finishedAt time.Time) *model.GameResult {
	snap := g.Snapshot()
	res := &model.GameResult{
		ID:         g.ID(),
		FinishedAt: finishedAt,
		Rounds:     min(snap.Round, snap.MaxTurns),
	}
	if w, ok := g.Winner(); ok {
		res.WinnerName = w.Name
		res.WinnerDistance = w.TotalDistance
	}
	for _, p := range snap.Players {
		res.Standings = append(res.Standings, model.Standing{
			GameID:        g.ID(),
			Seat:          p.Seat,
			Name:          p.Name,
			Character:     p.Character,
			TotalDistance: p.TotalDistance,
			Position:      p.Position,
		})
	}
	return res
}
