package sugoroku

import "errors"

// Errors returned by board and game operations. Wrong-phase calls return one
// of these; none of them leave the game in a partially updated state.
var (
	ErrOutOfRange         = errors.New("position out of range")
	ErrInvalidBoard       = errors.New("board needs at least two cells")
	ErrNoPlayers          = errors.New("game needs at least one player")
	ErrInvalidChoice      = errors.New("invalid choice")
	ErrNoSelectionPending = errors.New("no dice selection pending")
	ErrNoMazeSession      = errors.New("not in a maze")
	ErrNoMontyHallSession = errors.New("not in a monty hall game")
	ErrGameOver           = errors.New("game is over")
	ErrUnknownLayout      = errors.New("unknown board layout")
)
