package sugoroku

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// PlayerState is a read-only view of a player.
type PlayerState struct {
	Seat               int
	Name               string
	Character          string
	Position           int
	TotalDistance      int
	Die                string
	IsInMaze           bool
	IsInMontyHall      bool
	NeedsDiceSelection bool
}

// Snapshot is a read-only projection of the game.
type Snapshot struct {
	ID                 uuid.UUID
	Players            []PlayerState
	CurrentPlayerIndex int
	Round              int
	MaxTurns           int
	BoardSize          int
	IsOver             bool
	// Winner is the winning seat, or -1.
	Winner            int
	IsSlotEventActive bool
	SlotQueue         []int
}

// Snapshot captures the current state of g.
func (g *Game) Snapshot() Snapshot {
	players := make([]PlayerState, len(g.players))
	for i, p := range g.players {
		die := g.dice.Name()
		if p.die != nil {
			die = p.die.Name()
		}
		players[i] = PlayerState{
			Seat:               i,
			Name:               p.Name,
			Character:          p.Character,
			Position:           p.Position,
			TotalDistance:      p.TotalDistance,
			Die:                die,
			IsInMaze:           p.InMaze(),
			IsInMontyHall:      p.InMontyHall(),
			NeedsDiceSelection: p.NeedsDiceSelection(),
		}
	}

	winner := -1
	if g.over {
		winner = g.winner
	}
	var queue []int
	if g.slotRound.Active() {
		queue = g.slotRound.Queue()
	}
	return Snapshot{
		ID:                 g.id,
		Players:            players,
		CurrentPlayerIndex: g.current,
		Round:              g.round,
		MaxTurns:           g.maxTurns,
		BoardSize:          g.board.Size(),
		IsOver:             g.over,
		Winner:             winner,
		IsSlotEventActive:  g.slotRound.Active(),
		SlotQueue:          queue,
	}
}

// Standings returns players ordered by TotalDistance, highest first; ties
// keep seat order.
func (g *Game) Standings() []PlayerState {
	out := g.Snapshot().Players
	slices.SortStableFunc(out, func(a, b PlayerState) int {
		return cmp.Compare(b.TotalDistance, a.TotalDistance)
	})
	return out
}
