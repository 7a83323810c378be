// Package sugoroku implements the board game: the board and its events, the
// players, and the turn loop that ties them to the dice and sub-games.
package sugoroku

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"sugoroku/internal/game/dice"
	"sugoroku/internal/game/maze"
	"sugoroku/internal/game/montyhall"
	"sugoroku/internal/game/prob"
	"sugoroku/internal/game/slot"
)

const (
	// DefaultMaxTurns is the number of rounds played when none is configured.
	DefaultMaxTurns = 20
)

// Config holds everything needed to create a Game.
type Config struct {
	Players []*Player
	Board   *Board
	// Dice is the shared die. Defaults to a fair die.
	Dice *dice.Dice
	// Source drives every random decision. Defaults to a crypto-seeded source.
	Source prob.Source
	// MaxTurns is the number of full rounds before the game ends.
	MaxTurns int
	// FinishAtGoal ends the game as soon as a player reaches the last cell
	// instead of looping the track.
	FinishAtGoal bool
}

// Game is one play-through. It is not safe for concurrent use.
type Game struct {
	id           uuid.UUID
	players      []*Player
	board        *Board
	dice         *dice.Dice
	src          prob.Source
	current      int
	round        int
	maxTurns     int
	finishAtGoal bool
	over         bool
	winner       int
	slotRound    *slot.Round
}

// New creates a game at round 1 with the first player to act.
func New(cfg Config) (*Game, error) {
	if len(cfg.Players) == 0 {
		return nil, ErrNoPlayers
	}
	if cfg.Board == nil {
		return nil, ErrInvalidBoard
	}
	d := cfg.Dice
	if d == nil {
		d = dice.Standard.Die()
	}
	src := cfg.Source
	if src == nil {
		src = prob.NewRandomSource()
	}
	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	return &Game{
		id:           uuid.New(),
		players:      cfg.Players,
		board:        cfg.Board,
		dice:         d,
		src:          src,
		round:        1,
		maxTurns:     maxTurns,
		finishAtGoal: cfg.FinishAtGoal,
		winner:       -1,
	}, nil
}

// ID identifies the game.
func (g *Game) ID() uuid.UUID { return g.id }

// Players returns the players in seat order.
func (g *Game) Players() []*Player { return g.players }

// Board returns the board.
func (g *Game) Board() *Board { return g.board }

// Dice returns the shared die.
func (g *Game) Dice() *dice.Dice { return g.dice }

// CurrentIndex returns the seat whose turn it is.
func (g *Game) CurrentIndex() int { return g.current }

// Current returns the player whose turn it is.
func (g *Game) Current() *Player { return g.players[g.current] }

// Round returns the current round, starting at 1.
func (g *Game) Round() int { return g.round }

// MaxTurns returns the configured round limit.
func (g *Game) MaxTurns() int { return g.maxTurns }

// Over reports whether the game has ended.
func (g *Game) Over() bool { return g.over }

// Winner returns the winning player once the game is over.
func (g *Game) Winner() (*Player, bool) {
	if !g.over || g.winner < 0 {
		return nil, false
	}
	return g.players[g.winner], true
}

// SlotRound returns the most recent slot round, or nil.
func (g *Game) SlotRound() *slot.Round { return g.slotRound }

// SlotRoundActive reports whether ordinary turns are suspended for a slot round.
func (g *Game) SlotRoundActive() bool { return g.slotRound.Active() }

// Turn is the outcome of NextTurn.
type Turn struct {
	Seat     int
	Player   string
	Roll     int
	Position int
	// Event is the kind of event triggered on the landed cell, if any.
	Event   Kind
	Message string
	// Blocked is set when no roll happened because a session is pending.
	Blocked bool
}

// NextTurn rolls for the current player, moves them and applies the landed
// cell's event. The seat passes to the next player unless the roller entered
// a session; a pending session or slot round blocks the roll entirely.
func (g *Game) NextTurn() (Turn, error) {
	if g.over {
		return Turn{}, ErrGameOver
	}
	p := g.players[g.current]
	turn := Turn{Seat: g.current, Player: p.Name, Position: p.Position}

	if g.slotRound.Active() {
		turn.Blocked = true
		turn.Message = "A slot round is in progress. Every player must spin before the game continues."
		return turn, nil
	}
	if p.InSession() {
		turn.Blocked = true
		turn.Message = fmt.Sprintf("%s must finish the %s before rolling.", p.Name, p.session)
		return turn, nil
	}

	var msg strings.Builder
	die := g.dieFor(p)
	turn.Roll = die.Roll(g.src)
	fmt.Fprintf(&msg, "%s rolled a %d.\n", p.Name, turn.Roll)
	if p.die != nil && p.die.Spent() {
		fmt.Fprintf(&msg, "The %s crumbles; %s is back to the shared die.\n", p.die.Name(), p.Name)
		p.die = nil
	}

	g.shift(p, turn.Roll)
	if g.over {
		fmt.Fprintf(&msg, "%s reached the goal! Congratulations!", p.Name)
		turn.Position = p.Position
		turn.Message = msg.String()
		return turn, nil
	}

	if ev := g.board.EventAt(p.Position); ev != nil {
		turn.Event = ev.Kind()
		fmt.Fprintf(&msg, "Event: %s\n", ev.Name())
		if out := ev.Apply(p, g); out != "" {
			msg.WriteString(out)
			msg.WriteString("\n")
		}
	}
	turn.Position = p.Position
	if g.over {
		fmt.Fprintf(&msg, "%s reached the goal! Congratulations!\n", p.Name)
	}

	if !g.over && !p.InSession() {
		g.endTurn(&msg)
	}
	turn.Message = strings.TrimRight(msg.String(), "\n")
	return turn, nil
}

func (g *Game) dieFor(p *Player) *dice.Dice {
	if p.die != nil {
		return p.die
	}
	return g.dice
}

// shift moves p by steps according to the track rules.
func (g *Game) shift(p *Player, steps int) {
	size := g.board.Size()
	if !g.finishAtGoal {
		p.wrap(steps, size)
		return
	}
	p.clamp(steps, size)
	if p.Position == size-1 && !g.over {
		g.over = true
		g.winner = g.seatOf(p)
	}
}

// penalize moves p back by steps without passing the start cell and
// returns the distance actually lost.
func (g *Game) penalize(p *Player, steps int) int {
	return -p.clamp(-steps, g.board.Size())
}

func (g *Game) seatOf(p *Player) int {
	for i, q := range g.players {
		if q == p {
			return i
		}
	}
	return -1
}

// endTurn passes the seat on, counting a round each time it wraps to 0.
// While a slot round is open the round limit is checked by SlotSpin once
// the last player has spun.
func (g *Game) endTurn(msg *strings.Builder) {
	g.current = (g.current + 1) % len(g.players)
	if g.current != 0 {
		return
	}
	g.round++
	if !g.slotRound.Active() {
		g.checkRoundLimit(msg)
	}
}

// checkRoundLimit ends the game once every round has been played.
func (g *Game) checkRoundLimit(msg *strings.Builder) {
	if g.over || g.round <= g.maxTurns {
		return
	}
	g.finishByDistance()
	if w, ok := g.Winner(); ok {
		fmt.Fprintf(msg, "\nAll %d rounds are done! %s wins with %d cells travelled.", g.maxTurns, w.Name, w.TotalDistance)
	}
}

// finishByDistance ends the game; the first player with the greatest
// TotalDistance wins.
func (g *Game) finishByDistance() {
	g.over = true
	g.winner = 0
	for i, p := range g.players {
		if p.TotalDistance > g.players[g.winner].TotalDistance {
			g.winner = i
		}
	}
}

func (g *Game) checkPlayable() error {
	if g.over {
		return ErrGameOver
	}
	return nil
}

// ChooseDice resolves the current player's pending dice selection with the
// catalogue option at index and completes their turn.
func (g *Game) ChooseDice(index int) (string, error) {
	if err := g.checkPlayable(); err != nil {
		return "", err
	}
	p := g.players[g.current]
	if !p.NeedsDiceSelection() {
		return "", ErrNoSelectionPending
	}
	opt, ok := dice.Lookup(index)
	if !ok {
		return "", fmt.Errorf("%w: dice %d (choose 0-%d)", ErrInvalidChoice, index, len(dice.Catalogue())-1)
	}

	p.die = opt.Die()
	p.clearSession()
	var msg strings.Builder
	fmt.Fprintf(&msg, "%s chose the %s.", p.Name, opt.Name)
	g.endTurn(&msg)
	return msg.String(), nil
}

// SetCustomDice validates weights and makes them the shared die.
func (g *Game) SetCustomDice(weights map[int]float64) error {
	if err := g.checkPlayable(); err != nil {
		return err
	}
	return g.dice.Replace("Custom die", weights)
}

// MazeView is what the current player sees inside a maze.
type MazeView struct {
	Player             string
	Node               string
	Path               []string
	Choices            []maze.Edge
	SuccessProbability float64
}

// MazeChoices returns the current player's position and options in the maze.
func (g *Game) MazeChoices() (MazeView, error) {
	p := g.players[g.current]
	if !p.InMaze() {
		return MazeView{}, ErrNoMazeSession
	}
	s := p.maze
	return MazeView{
		Player:             p.Name,
		Node:               s.Current(),
		Path:               s.Path(),
		Choices:            s.Choices(),
		SuccessProbability: s.SuccessProbability(),
	}, nil
}

// MazeChoose advances the current player's maze. When the maze finishes the
// reward or penalty is applied and the player's turn completes.
func (g *Game) MazeChoose(index int) (string, error) {
	if err := g.checkPlayable(); err != nil {
		return "", err
	}
	p := g.players[g.current]
	if !p.InMaze() {
		return "", ErrNoMazeSession
	}
	s := p.maze
	out, err := s.Choose(index)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidChoice, err)
	}
	if !s.Finished() {
		return out, nil
	}

	var msg strings.Builder
	msg.WriteString(out)
	if s.Success() {
		g.shift(p, s.RewardSteps)
		fmt.Fprintf(&msg, "\n%s escaped the maze and moves forward %d cells!", p.Name, s.RewardSteps)
	} else {
		lost := g.penalize(p, s.PenaltySteps)
		fmt.Fprintf(&msg, "\n%s got lost in the maze and moves back %d cells.", p.Name, lost)
	}
	p.clearSession()
	if !g.over {
		g.endTurn(&msg)
	}
	return msg.String(), nil
}

// MontyHallInput is a player's move in a Monty Hall game: a door in the first
// phase, a stay/switch decision in the second.
type MontyHallInput struct {
	Door   int
	Switch bool
}

// MontyHallResult describes the effect of a Monty Hall move.
type MontyHallResult struct {
	Phase      montyhall.Phase
	OpenedDoor int
	FinalDoor  int
	PrizeDoor  int
	Won        bool
	Message    string
}

// MontyHallChoose advances the current player's Monty Hall game by one phase.
// After the stay/switch decision the reward or penalty is applied and the
// player's turn completes.
func (g *Game) MontyHallChoose(in MontyHallInput) (MontyHallResult, error) {
	if err := g.checkPlayable(); err != nil {
		return MontyHallResult{}, err
	}
	p := g.players[g.current]
	if !p.InMontyHall() {
		return MontyHallResult{}, ErrNoMontyHallSession
	}
	s := p.monty

	if s.Phase() == montyhall.AwaitingFirstChoice {
		opened, err := s.Choose(in.Door, g.src)
		if err != nil {
			return MontyHallResult{}, fmt.Errorf("%w: %w", ErrInvalidChoice, err)
		}
		return MontyHallResult{
			Phase:      s.Phase(),
			OpenedDoor: opened,
			Message:    fmt.Sprintf("Door %d was empty. Do you want to switch?", opened),
		}, nil
	}

	won, err := s.Decide(in.Switch)
	if err != nil {
		return MontyHallResult{}, err
	}
	res := MontyHallResult{
		Phase:      s.Phase(),
		OpenedDoor: s.OpenedDoor(),
		FinalDoor:  s.Choice(),
		PrizeDoor:  s.PrizeDoor(),
		Won:        won,
	}
	var msg strings.Builder
	if won {
		g.shift(p, s.RewardSteps)
		fmt.Fprintf(&msg, "Congratulations! Door %d hid the prize. Move forward %d cells.", s.Choice(), s.RewardSteps)
	} else {
		lost := g.penalize(p, s.PenaltySteps)
		fmt.Fprintf(&msg, "Too bad! The prize was behind door %d. Move back %d cells.", s.PrizeDoor(), lost)
	}
	p.clearSession()
	if !g.over {
		g.endTurn(&msg)
	}
	res.Message = msg.String()
	return res, nil
}

// SlotResult describes one spin of a slot round.
type SlotResult struct {
	Seat    int
	Player  string
	Reel    string
	Outcome slot.Outcome
	Message string
	// Done is set on the spin that completes the round.
	Done bool
}

// SlotSpin spins reelIndex for the next queued player of the active slot
// round and moves them by the outcome.
func (g *Game) SlotSpin(reelIndex int) (SlotResult, error) {
	if err := g.checkPlayable(); err != nil {
		return SlotResult{}, err
	}
	spin, err := g.slotRound.Spin(reelIndex, g.src)
	if err != nil {
		return SlotResult{}, err
	}

	p := g.players[spin.Seat]
	g.shift(p, spin.Outcome.Steps)
	var msg strings.Builder
	fmt.Fprintf(&msg, "%s spun the %s! Result: %s (%+d cells)", p.Name, spin.Reel.Name, spin.Outcome.Name, spin.Outcome.Steps)
	g.slotRound.Record(p.Name, msg.String())
	if g.over {
		// Reaching the goal ends the game mid-round.
		g.slotRound.Close()
		fmt.Fprintf(&msg, "\n%s reached the goal! Congratulations!", p.Name)
	}

	res := SlotResult{
		Seat:    spin.Seat,
		Player:  p.Name,
		Reel:    spin.Reel.Name,
		Outcome: spin.Outcome,
		Done:    !g.slotRound.Active(),
	}
	if res.Done && !g.over {
		msg.WriteString("\n" + g.slotRound.Summary())
		g.checkRoundLimit(&msg)
	}
	res.Message = msg.String()
	return res, nil
}
