// Package service provides business logic implementations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"sugoroku/internal/config"
	"sugoroku/internal/game/dice"
	"sugoroku/internal/game/prob"
	"sugoroku/internal/game/slot"
	"sugoroku/internal/game/sugoroku"
	"sugoroku/internal/pkg/lock"
)

// StartParams configures a new game. Zero values fall back to the store's
// configured defaults.
type StartParams struct {
	PlayerCount int
	// Names and Characters are matched to seats by index; missing entries
	// get "Player N" and the default character.
	Names        []string
	Characters   []string
	MaxTurns     int
	Layout       string
	FinishAtGoal *bool
}

// TurnResult is the outcome of a roll together with the resulting state.
type TurnResult struct {
	Turn  sugoroku.Turn
	State sugoroku.Snapshot
}

// ActionResult is the message produced by a session move and the resulting state.
type ActionResult struct {
	Message string
	State   sugoroku.Snapshot
}

// MontyHallResult is a Monty Hall move and the resulting state.
type MontyHallResult struct {
	sugoroku.MontyHallResult
	State sugoroku.Snapshot
}

// SlotResult is a slot spin and the resulting state.
type SlotResult struct {
	sugoroku.SlotResult
	State sugoroku.Snapshot
}

// DiceView describes a die and its face probabilities.
type DiceView struct {
	Name          string
	Probabilities map[int]float64
	// Remaining is the number of rolls left on a temporary die, or 0.
	Remaining int
}

// EventPosition is one event cell of the board.
type EventPosition struct {
	Position int
	Kind     sugoroku.Kind
	Name     string
}

// DiceOption is one entry of the dice catalogue. Probabilities is nil for
// mystery dice.
type DiceOption struct {
	Index         int
	Name          string
	Description   string
	Mystery       bool
	Probabilities map[int]float64
}

// SlotOption is one slot machine a player may spin.
type SlotOption struct {
	Index       int
	Name        string
	Description string
}

// Option configures a GameStore.
type Option func(*GameStore)

// WithRecorder sets the hook called when a game ends.
func WithRecorder(r ResultRecorder) Option {
	return func(s *GameStore) { s.recorder = r }
}

// WithSourceFactory sets how each new game gets its random source.
func WithSourceFactory(f func() prob.Source) Option {
	return func(s *GameStore) { s.newSource = f }
}

// WithClock sets the time source used to stamp finished games.
func WithClock(now func() time.Time) Option {
	return func(s *GameStore) { s.now = now }
}

// GameStore owns the single active game and serializes every operation on it.
type GameStore struct {
	cfg       config.GameConfig
	lock      *lock.GameLock
	layouts   *sugoroku.LayoutRegistry
	recorder  ResultRecorder
	newSource func() prob.Source
	now       func() time.Time

	game     *sugoroku.Game
	recorded bool
}

// NewGameStore creates a store with no active game.
func NewGameStore(cfg config.GameConfig, gameLock *lock.GameLock, layouts *sugoroku.LayoutRegistry, opts ...Option) *GameStore {
	s := &GameStore{
		cfg:     cfg,
		lock:    gameLock,
		layouts: layouts,
		now:     time.Now,
	}
	s.newSource = func() prob.Source {
		if cfg.Seed != 0 {
			return prob.NewSource(cfg.Seed)
		}
		return prob.NewRandomSource()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start replaces the active game with a new one.
func (s *GameStore) Start(ctx context.Context, p StartParams) (sugoroku.Snapshot, error) {
	count := p.PlayerCount
	if count == 0 {
		count = s.cfg.DefaultPlayers
	}
	if count < 1 || count > s.cfg.MaxPlayers {
		return sugoroku.Snapshot{}, fmt.Errorf("%w: %d (allowed 1-%d)", ErrInvalidPlayerCount, count, s.cfg.MaxPlayers)
	}

	layoutName := p.Layout
	if layoutName == "" {
		layoutName = s.cfg.Layout
	}
	layout, err := s.layouts.Get(layoutName)
	if err != nil {
		return sugoroku.Snapshot{}, err
	}
	board, err := layout.BuildSized(s.cfg.BoardSize)
	if err != nil {
		return sugoroku.Snapshot{}, err
	}

	players := make([]*sugoroku.Player, count)
	for i := range players {
		name := fmt.Sprintf("Player %d", i+1)
		if i < len(p.Names) && p.Names[i] != "" {
			name = p.Names[i]
		}
		character := ""
		if i < len(p.Characters) {
			character = p.Characters[i]
		}
		players[i] = sugoroku.NewPlayer(name, character)
	}

	maxTurns := p.MaxTurns
	if maxTurns <= 0 {
		maxTurns = s.cfg.DefaultMaxTurns
	}
	finish := s.cfg.FinishAtGoal
	if p.FinishAtGoal != nil {
		finish = *p.FinishAtGoal
	}

	g, err := sugoroku.New(sugoroku.Config{
		Players:      players,
		Board:        board,
		Source:       s.newSource(),
		MaxTurns:     maxTurns,
		FinishAtGoal: finish,
	})
	if err != nil {
		return sugoroku.Snapshot{}, err
	}

	if err := s.lock.Lock(ctx); err != nil {
		return sugoroku.Snapshot{}, err
	}
	defer s.lock.Unlock()

	s.game = g
	s.recorded = false

	log.Info().
		Str("game_id", g.ID().String()).
		Int("players", count).
		Int("max_turns", maxTurns).
		Str("layout", layout.Name).
		Int("board_size", board.Size()).
		Bool("finish_at_goal", finish).
		Msg("Game started")

	return g.Snapshot(), nil
}

// withGame runs fn on the active game under the lock and records the result
// if fn ended the game.
func (s *GameStore) withGame(ctx context.Context, fn func(g *sugoroku.Game) error) error {
	return s.lock.WithLock(ctx, func() error {
		if s.game == nil {
			return ErrNoActiveGame
		}
		err := fn(s.game)
		s.recordIfOver(ctx)
		return err
	})
}

func (s *GameStore) recordIfOver(ctx context.Context) {
	g := s.game
	if !g.Over() || s.recorded {
		return
	}
	s.recorded = true

	res := resultOf(g, s.now())
	log.Info().
		Str("game_id", g.ID().String()).
		Str("winner", res.WinnerName).
		Int("distance", res.WinnerDistance).
		Int("rounds", res.Rounds).
		Msg("Game finished")

	if s.recorder == nil {
		return
	}
	if err := s.recorder(context.WithoutCancel(ctx), res); err != nil {
		log.Error().Err(err).Str("game_id", g.ID().String()).Msg("Failed to record game result")
	}
}

// State returns a snapshot of the active game.
func (s *GameStore) State(ctx context.Context) (sugoroku.Snapshot, error) {
	var snap sugoroku.Snapshot
	err := s.withGame(ctx, func(g *sugoroku.Game) error {
		snap = g.Snapshot()
		return nil
	})
	return snap, err
}

// Roll plays the current player's turn.
func (s *GameStore) Roll(ctx context.Context) (TurnResult, error) {
	var res TurnResult
	err := s.withGame(ctx, func(g *sugoroku.Game) error {
		turn, err := g.NextTurn()
		if err != nil {
			return err
		}
		res = TurnResult{Turn: turn, State: g.Snapshot()}

		ev := log.Debug().
			Str("game_id", g.ID().String()).
			Str("player", turn.Player).
			Int("round", g.Round())
		if turn.Blocked {
			ev.Bool("blocked", true).Msg("Turn blocked")
			return nil
		}
		ev.Int("roll", turn.Roll).
			Int("position", turn.Position).
			Str("event", string(turn.Event)).
			Msg("Turn played")
		if roller := g.Players()[turn.Seat]; roller.InSession() {
			log.Info().
				Str("game_id", g.ID().String()).
				Str("player", turn.Player).
				Str("session", roller.Session().String()).
				Msg("Session opened")
		}
		if turn.Event == sugoroku.KindSlotRound && g.SlotRoundActive() {
			log.Info().
				Str("game_id", g.ID().String()).
				Ints("queue", g.SlotRound().Queue()).
				Msg("Slot round opened")
		}
		return nil
	})
	return res, err
}

// DiceDistribution returns the die the current player will roll next.
func (s *GameStore) DiceDistribution(ctx context.Context) (DiceView, error) {
	var view DiceView
	err := s.withGame(ctx, func(g *sugoroku.Game) error {
		d := g.Dice()
		if own := g.Current().Die(); own != nil {
			d = own
		}
		view = DiceView{Name: d.Name(), Probabilities: d.Probabilities(), Remaining: d.Remaining()}
		return nil
	})
	return view, err
}

// EventLayout returns the event cells of the active board.
func (s *GameStore) EventLayout(ctx context.Context) ([]EventPosition, error) {
	var out []EventPosition
	err := s.withGame(ctx, func(g *sugoroku.Game) error {
		for _, c := range g.Board().EventCells() {
			out = append(out, EventPosition{Position: c.Position, Kind: c.Event.Kind(), Name: c.Event.Name()})
		}
		return nil
	})
	return out, err
}

// EventDescriptions describes each distinct event on the active board.
func (s *GameStore) EventDescriptions(ctx context.Context) ([]sugoroku.EventDescription, error) {
	var out []sugoroku.EventDescription
	err := s.withGame(ctx, func(g *sugoroku.Game) error {
		out = g.Board().Descriptions()
		return nil
	})
	return out, err
}

// ChooseDice resolves the current player's pending dice selection.
func (s *GameStore) ChooseDice(ctx context.Context, index int) (ActionResult, error) {
	return s.action(ctx, "dice_choice", func(g *sugoroku.Game) (string, error) {
		return g.ChooseDice(index)
	})
}

// MazeChoices returns the current player's options in the maze.
func (s *GameStore) MazeChoices(ctx context.Context) (sugoroku.MazeView, error) {
	var view sugoroku.MazeView
	err := s.withGame(ctx, func(g *sugoroku.Game) error {
		var err error
		view, err = g.MazeChoices()
		return err
	})
	return view, err
}

// MazeChoose follows edge index from the current player's maze node.
func (s *GameStore) MazeChoose(ctx context.Context, index int) (ActionResult, error) {
	return s.action(ctx, "maze", func(g *sugoroku.Game) (string, error) {
		return g.MazeChoose(index)
	})
}

func (s *GameStore) action(ctx context.Context, session string, fn func(g *sugoroku.Game) (string, error)) (ActionResult, error) {
	var res ActionResult
	err := s.withGame(ctx, func(g *sugoroku.Game) error {
		p := g.Current()
		msg, err := fn(g)
		if err != nil {
			return err
		}
		if !p.InSession() {
			log.Info().
				Str("game_id", g.ID().String()).
				Str("player", p.Name).
				Str("session", session).
				Int("position", p.Position).
				Msg("Session resolved")
		}
		res = ActionResult{Message: msg, State: g.Snapshot()}
		return nil
	})
	return res, err
}

// MontyHallChoose advances the current player's Monty Hall game.
func (s *GameStore) MontyHallChoose(ctx context.Context, in sugoroku.MontyHallInput) (MontyHallResult, error) {
	var res MontyHallResult
	err := s.withGame(ctx, func(g *sugoroku.Game) error {
		p := g.Current()
		r, err := g.MontyHallChoose(in)
		if err != nil {
			return err
		}
		if !p.InSession() {
			log.Info().
				Str("game_id", g.ID().String()).
				Str("player", p.Name).
				Str("session", "monty_hall").
				Bool("won", r.Won).
				Int("position", p.Position).
				Msg("Session resolved")
		}
		res = MontyHallResult{MontyHallResult: r, State: g.Snapshot()}
		return nil
	})
	return res, err
}

// SlotSpin spins a reel for the next player in the active slot round.
func (s *GameStore) SlotSpin(ctx context.Context, reel int) (SlotResult, error) {
	var res SlotResult
	err := s.withGame(ctx, func(g *sugoroku.Game) error {
		r, err := g.SlotSpin(reel)
		if err != nil {
			return err
		}
		log.Debug().
			Str("game_id", g.ID().String()).
			Str("player", r.Player).
			Str("reel", r.Reel).
			Int("steps", r.Outcome.Steps).
			Msg("Slot spun")
		if r.Done {
			log.Info().Str("game_id", g.ID().String()).Msg("Slot round closed")
		}
		res = SlotResult{SlotResult: r, State: g.Snapshot()}
		return nil
	})
	return res, err
}

// SetCustomDice validates weights and makes them the shared die.
func (s *GameStore) SetCustomDice(ctx context.Context, weights map[int]float64) (DiceView, error) {
	var view DiceView
	err := s.withGame(ctx, func(g *sugoroku.Game) error {
		if err := g.SetCustomDice(weights); err != nil {
			return err
		}
		d := g.Dice()
		view = DiceView{Name: d.Name(), Probabilities: d.Probabilities()}
		log.Info().Str("game_id", g.ID().String()).Interface("weights", weights).Msg("Custom dice set")
		return nil
	})
	return view, err
}

// DiceOptions lists the dice catalogue offered on a dice selection cell.
func (s *GameStore) DiceOptions() []DiceOption {
	cat := dice.Catalogue()
	out := make([]DiceOption, len(cat))
	for i, o := range cat {
		out[i] = DiceOption{Index: i, Name: o.Name, Description: o.Description, Mystery: o.Mystery}
		if !o.Mystery {
			out[i].Probabilities = dice.Weights(o.Dist)
		}
	}
	return out
}

// SlotOptions lists the slot machines offered during a slot round.
func (s *GameStore) SlotOptions() []SlotOption {
	out := make([]SlotOption, len(slot.Reels))
	for i, r := range slot.Reels {
		out[i] = SlotOption{Index: i, Name: r.Name, Description: r.Description}
	}
	return out
}

// Layouts lists the registered board layouts.
func (s *GameStore) Layouts() []string {
	return s.layouts.Names()
}
