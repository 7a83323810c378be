package sugoroku

import (
	"sugoroku/internal/game/dice"
	"sugoroku/internal/game/maze"
	"sugoroku/internal/game/montyhall"
)

// DefaultCharacter is the avatar used when none is assigned.
const DefaultCharacter = "default.png"

// SessionKind is the sub-game a player is currently inside.
type SessionKind int

const (
	SessionNone SessionKind = iota
	SessionDiceChoice
	SessionMaze
	SessionMontyHall
)

func (k SessionKind) String() string {
	switch k {
	case SessionDiceChoice:
		return "dice selection"
	case SessionMaze:
		return "maze"
	case SessionMontyHall:
		return "monty hall game"
	default:
		return "none"
	}
}

// Player is one participant. A player is inside at most one session.
type Player struct {
	Name      string
	Character string
	// Position is always in [0, board size).
	Position int
	// TotalDistance is the signed sum of every move, used to rank players.
	TotalDistance int

	die     *dice.Dice
	session SessionKind
	maze    *maze.Session
	monty   *montyhall.Session
}

// NewPlayer creates a player at the start cell.
func NewPlayer(name, character string) *Player {
	if character == "" {
		character = DefaultCharacter
	}
	return &Player{Name: name, Character: character}
}

// Die returns the player's personal die, or nil when they use the shared one.
func (p *Player) Die() *dice.Dice { return p.die }

// Session returns the kind of session the player is in.
func (p *Player) Session() SessionKind { return p.session }

// InSession reports whether the player must resolve a session before rolling.
func (p *Player) InSession() bool { return p.session != SessionNone }

// NeedsDiceSelection reports whether a dice choice is pending.
func (p *Player) NeedsDiceSelection() bool { return p.session == SessionDiceChoice }

// InMaze reports whether the player is walking a maze.
func (p *Player) InMaze() bool { return p.session == SessionMaze }

// InMontyHall reports whether the player is facing the three doors.
func (p *Player) InMontyHall() bool { return p.session == SessionMontyHall }

// Maze returns the active maze session, or nil.
func (p *Player) Maze() *maze.Session { return p.maze }

// MontyHall returns the active Monty Hall session, or nil.
func (p *Player) MontyHall() *montyhall.Session { return p.monty }

func (p *Player) offerDice() {
	p.clearSession()
	p.session = SessionDiceChoice
}

func (p *Player) enterMaze(s *maze.Session) {
	p.clearSession()
	p.session = SessionMaze
	p.maze = s
}

func (p *Player) enterMontyHall(s *montyhall.Session) {
	p.clearSession()
	p.session = SessionMontyHall
	p.monty = s
}

func (p *Player) clearSession() {
	p.session = SessionNone
	p.maze = nil
	p.monty = nil
}

// wrap moves by steps around a looped track of size cells.
func (p *Player) wrap(steps, size int) {
	p.Position = ((p.Position+steps)%size + size) % size
	p.TotalDistance += steps
}

// clamp moves by steps within [0, size-1] and returns the distance moved.
func (p *Player) clamp(steps, size int) int {
	target := min(max(p.Position+steps, 0), size-1)
	moved := target - p.Position
	p.Position = target
	p.TotalDistance += moved
	return moved
}
