// Package montyhall implements the three-door gamble: pick a door, watch an
// empty door open, then stay or switch.
package montyhall

import (
	"errors"
	"fmt"

	"sugoroku/internal/game/prob"
)

// Doors is the number of doors; doors are numbered 1..Doors.
const Doors = 3

// Default rewards for a Monty Hall cell.
const (
	DefaultRewardSteps  = 5
	DefaultPenaltySteps = 3
)

// Phase is the state of a Session.
type Phase int

const (
	AwaitingFirstChoice Phase = iota
	AwaitingSwitchDecision
	Resolved
)

func (p Phase) String() string {
	switch p {
	case AwaitingFirstChoice:
		return "awaiting_first_choice"
	case AwaitingSwitchDecision:
		return "awaiting_switch_decision"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Errors for Monty Hall sessions
var (
	ErrInvalidChoice = errors.New("door must be 1, 2 or 3")
	ErrWrongPhase    = errors.New("monty hall session is in a different phase")
)

// Session is a single Monty Hall game.
type Session struct {
	phase        Phase
	prizeDoor    int
	choice       int
	openedDoor   int
	won          bool
	RewardSteps  int
	PenaltySteps int
}

// NewSession hides the prize behind a uniformly random door.
func NewSession(src prob.Source, reward, penalty int) *Session {
	return &Session{
		prizeDoor:    src.IntN(Doors) + 1,
		RewardSteps:  reward,
		PenaltySteps: penalty,
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// PrizeDoor returns the door hiding the prize.
func (s *Session) PrizeDoor() int { return s.prizeDoor }

// Choice returns the player's current door, or 0 before the first choice.
func (s *Session) Choice() int { return s.choice }

// OpenedDoor returns the revealed empty door, or 0 before it is opened.
func (s *Session) OpenedDoor() int { return s.openedDoor }

// Won reports whether the resolved session ended on the prize door.
func (s *Session) Won() bool { return s.won }

// Choose records the player's first door and opens a door that neither hides
// the prize nor is the player's choice.
func (s *Session) Choose(door int, src prob.Source) (int, error) {
	if s.phase != AwaitingFirstChoice {
		return 0, ErrWrongPhase
	}
	if door < 1 || door > Doors {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidChoice, door)
	}
	s.choice = door

	candidates := make([]int, 0, Doors-1)
	for d := 1; d <= Doors; d++ {
		if d != s.prizeDoor && d != s.choice {
			candidates = append(candidates, d)
		}
	}
	s.openedDoor = candidates[src.IntN(len(candidates))]
	s.phase = AwaitingSwitchDecision
	return s.openedDoor, nil
}

// Decide stays with or switches away from the first choice and resolves the
// session. It returns true when the final door hides the prize.
func (s *Session) Decide(switchDoor bool) (bool, error) {
	if s.phase != AwaitingSwitchDecision {
		return false, ErrWrongPhase
	}
	if switchDoor {
		// Doors sum to 6, so the remaining door is what is left over.
		s.choice = 6 - s.choice - s.openedDoor
	}
	s.won = s.choice == s.prizeDoor
	s.phase = Resolved
	return s.won, nil
}
