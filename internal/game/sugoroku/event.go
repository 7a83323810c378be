package sugoroku

import (
	"fmt"

	"sugoroku/internal/game/dice"
	"sugoroku/internal/game/maze"
	"sugoroku/internal/game/montyhall"
	"sugoroku/internal/game/prob"
	"sugoroku/internal/game/slot"
)

// Kind identifies an event variant.
type Kind string

const (
	KindStepShift          Kind = "step_shift"
	KindDiceReassign       Kind = "dice_reassign"
	KindDiceSelectionOffer Kind = "dice_selection"
	KindProbabilityMaze    Kind = "maze"
	KindMontyHall          Kind = "monty_hall"
	KindSlotRound          Kind = "slot_machine"
)

// Event is the effect of landing on a cell. Events are stateless and can be
// bound to any number of cells; Apply mutates the player and game and
// returns a message for the players. The set of variants is closed.
type Event interface {
	Kind() Kind
	Name() string
	Description() string
	Apply(p *Player, g *Game) string
	sealed()
}

// StepShift moves the player forward (positive) or backward (negative).
type StepShift struct {
	Steps int
}

// Forward returns a StepShift of +steps.
func Forward(steps int) StepShift { return StepShift{Steps: steps} }

// Backward returns a StepShift of -steps.
func Backward(steps int) StepShift { return StepShift{Steps: -steps} }

func (StepShift) Kind() Kind { return KindStepShift }

func (e StepShift) Name() string {
	if e.Steps < 0 {
		return fmt.Sprintf("Back %d", -e.Steps)
	}
	return fmt.Sprintf("Forward %d", e.Steps)
}

func (e StepShift) Description() string {
	if e.Steps < 0 {
		return fmt.Sprintf("Land here and move back %d cells.", -e.Steps)
	}
	return fmt.Sprintf("Land here and move forward %d cells.", e.Steps)
}

func (e StepShift) Apply(p *Player, g *Game) string {
	g.shift(p, e.Steps)
	if e.Steps < 0 {
		return fmt.Sprintf("Move back %d cells!", -e.Steps)
	}
	return fmt.Sprintf("Move forward %d cells!", e.Steps)
}

func (StepShift) sealed() {}

// Target selects whose die a DiceReassign changes.
type Target int

const (
	TargetPlayer Target = iota
	TargetShared
)

// DiceReassign swaps a die's distribution for Duration rolls. A Duration of
// zero or less makes the swap permanent.
type DiceReassign struct {
	Label    string
	Dist     prob.Distribution[int]
	Duration int
	Target   Target
}

func (DiceReassign) Kind() Kind { return KindDiceReassign }

func (e DiceReassign) Name() string { return e.Label }

func (e DiceReassign) Description() string {
	whose := "your die"
	if e.Target == TargetShared {
		whose = "the shared die"
	}
	if e.Duration > 0 {
		return fmt.Sprintf("Land here and %s is swapped for the %s for %d rolls.", whose, e.Label, e.Duration)
	}
	return fmt.Sprintf("Land here and %s is swapped for the %s.", whose, e.Label)
}

func (e DiceReassign) Apply(p *Player, g *Game) string {
	if e.Target == TargetShared {
		g.dice.Override(e.Label, e.Dist, e.Duration)
		return fmt.Sprintf("Everyone sharing the common die now rolls the %s!", e.Label)
	}
	if e.Duration > 0 {
		p.die = dice.NewLimited(e.Label, e.Dist, e.Duration)
		return fmt.Sprintf("%s rolls the %s for the next %d turns!", p.Name, e.Label, e.Duration)
	}
	p.die = dice.New(e.Label, e.Dist)
	return fmt.Sprintf("%s now rolls the %s!", p.Name, e.Label)
}

func (DiceReassign) sealed() {}

// DiceSelectionOffer lets the player pick a new personal die from the
// catalogue before playing on.
type DiceSelectionOffer struct{}

func (DiceSelectionOffer) Kind() Kind { return KindDiceSelectionOffer }

func (DiceSelectionOffer) Name() string { return "Dice selection" }

func (DiceSelectionOffer) Description() string {
	return "Land here and choose a new die. Some dice hide their odds."
}

func (DiceSelectionOffer) Apply(p *Player, _ *Game) string {
	p.offerDice()
	return fmt.Sprintf("%s may choose a new die!", p.Name)
}

func (DiceSelectionOffer) sealed() {}

// ProbabilityMaze sends the player into a maze session.
type ProbabilityMaze struct {
	Graph        *maze.Graph
	RewardSteps  int
	PenaltySteps int
}

// NewProbabilityMaze returns a maze event over the default graph.
func NewProbabilityMaze() ProbabilityMaze {
	return ProbabilityMaze{Graph: maze.Default, RewardSteps: maze.DefaultRewardSteps, PenaltySteps: maze.DefaultPenaltySteps}
}

func (ProbabilityMaze) Kind() Kind { return KindProbabilityMaze }

func (ProbabilityMaze) Name() string { return "Probability maze" }

func (e ProbabilityMaze) Description() string {
	return fmt.Sprintf("Find your way through a branching maze. Escape to move forward %d, get lost and move back %d.",
		e.RewardSteps, e.PenaltySteps)
}

func (e ProbabilityMaze) Apply(p *Player, _ *Game) string {
	p.enterMaze(maze.NewSession(e.Graph, e.RewardSteps, e.PenaltySteps))
	return fmt.Sprintf("%s wandered into the maze!", p.Name)
}

func (ProbabilityMaze) sealed() {}

// MontyHall starts a three-door gamble for the player.
type MontyHall struct {
	RewardSteps  int
	PenaltySteps int
}

// NewMontyHall returns a Monty Hall event with the default stakes.
func NewMontyHall() MontyHall {
	return MontyHall{RewardSteps: montyhall.DefaultRewardSteps, PenaltySteps: montyhall.DefaultPenaltySteps}
}

func (MontyHall) Kind() Kind { return KindMontyHall }

func (MontyHall) Name() string { return "Monty Hall" }

func (e MontyHall) Description() string {
	return fmt.Sprintf("Pick one of three doors. Find the prize to move forward %d, miss and move back %d.",
		e.RewardSteps, e.PenaltySteps)
}

func (e MontyHall) Apply(p *Player, g *Game) string {
	p.enterMontyHall(montyhall.NewSession(g.src, e.RewardSteps, e.PenaltySteps))
	return fmt.Sprintf("%s faces three doors. Choose one of 1, 2 or 3.", p.Name)
}

func (MontyHall) sealed() {}

// SlotRound makes every player spin a slot machine before play continues.
type SlotRound struct{}

func (SlotRound) Kind() Kind { return KindSlotRound }

func (SlotRound) Name() string { return "Slot machine" }

func (SlotRound) Description() string {
	return "Everyone picks a slot machine and spins once, starting with the next player."
}

func (SlotRound) Apply(p *Player, g *Game) string {
	if g.slotRound.Active() {
		return "The slot machines are already spinning."
	}
	g.slotRound = slot.Open(g.current, len(g.players))
	return fmt.Sprintf("%s started a slot round! Everyone spins once.", p.Name)
}

func (SlotRound) sealed() {}
