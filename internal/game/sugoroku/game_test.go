package sugoroku

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"sugoroku/internal/game/dice"
	"sugoroku/internal/game/maze"
	"sugoroku/internal/game/montyhall"
	"sugoroku/internal/game/prob"
	"sugoroku/internal/game/slot"
)

func fixedDie(face int) *dice.Dice {
	return dice.New(fmt.Sprintf("always %d", face), prob.Trusted(prob.Weighted[int]{Outcome: face, Weight: 1}))
}

type gameOpts struct {
	size     int
	players  int
	maxTurns int
	die      *dice.Dice
	src      prob.Source
	finish   bool
	binds    []Binding
}

func newTestGame(t *testing.T, o gameOpts) *Game {
	t.Helper()
	board, err := Layout{Name: "test", Size: o.size, Bindings: o.binds}.Build()
	require.NoError(t, err)

	players := make([]*Player, o.players)
	for i := range players {
		players[i] = NewPlayer(fmt.Sprintf("Player %d", i+1), "")
	}
	g, err := New(Config{
		Players:      players,
		Board:        board,
		Dice:         o.die,
		Source:       o.src,
		MaxTurns:     o.maxTurns,
		FinishAtGoal: o.finish,
	})
	require.NoError(t, err)
	return g
}

func TestNew_Validation(t *testing.T) {
	b, err := NewBoard(10)
	require.NoError(t, err)

	_, err = New(Config{Board: b})
	assert.ErrorIs(t, err, ErrNoPlayers)
	_, err = New(Config{Players: []*Player{NewPlayer("a", "")}})
	assert.ErrorIs(t, err, ErrInvalidBoard)

	g, err := New(Config{Players: []*Player{NewPlayer("a", "")}, Board: b})
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxTurns, g.MaxTurns())
	assert.Equal(t, 1, g.Round())
	assert.Equal(t, dice.Standard.Name, g.Dice().Name())
	assert.Equal(t, DefaultCharacter, g.Current().Character)
}

// TestScenarioRoundLimit plays five full rounds with a fixed roll sequence:
// the first player always rolls 6, the second always 1.
func TestScenarioRoundLimit(t *testing.T) {
	g := newTestGame(t, gameOpts{
		size:     40,
		players:  2,
		maxTurns: 5,
		die:      dice.Standard.Die(),
		src:      prob.NewSequence(0.95, 0.05),
	})

	for i := 0; i < 10; i++ {
		require.False(t, g.Over(), "over after %d turns", i)
		turn, err := g.NextTurn()
		require.NoError(t, err)
		assert.False(t, turn.Blocked)
		if i%2 == 0 {
			assert.Equal(t, 6, turn.Roll)
		} else {
			assert.Equal(t, 1, turn.Roll)
		}
	}

	assert.True(t, g.Over())
	w, ok := g.Winner()
	require.True(t, ok)
	assert.Equal(t, "Player 1", w.Name)
	assert.Equal(t, 30, g.Players()[0].TotalDistance)
	assert.Equal(t, 5, g.Players()[1].TotalDistance)
	assert.Equal(t, 0, g.Snapshot().Winner)

	_, err := g.NextTurn()
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestNextTurn_RoundCounting(t *testing.T) {
	g := newTestGame(t, gameOpts{size: 10, players: 3, maxTurns: 10, die: fixedDie(1), src: prob.NewSequence(0)})

	for i := 0; i < 3; i++ {
		assert.Equal(t, 1, g.Round())
		assert.Equal(t, i, g.CurrentIndex())
		_, err := g.NextTurn()
		require.NoError(t, err)
	}
	assert.Equal(t, 2, g.Round())
	assert.Equal(t, 0, g.CurrentIndex())
}

func TestNextTurn_WrapsAroundTrack(t *testing.T) {
	g := newTestGame(t, gameOpts{size: 10, players: 1, maxTurns: 10, die: fixedDie(6), src: prob.NewSequence(0)})

	_, err := g.NextTurn()
	require.NoError(t, err)
	turn, err := g.NextTurn()
	require.NoError(t, err)

	p := g.Players()[0]
	assert.Equal(t, 2, p.Position)
	assert.Equal(t, 2, turn.Position)
	assert.Equal(t, 12, p.TotalDistance)
}

func TestNextTurn_NegativeFaceWrapsBackwards(t *testing.T) {
	g := newTestGame(t, gameOpts{size: 10, players: 1, maxTurns: 10, die: fixedDie(-1), src: prob.NewSequence(0)})

	_, err := g.NextTurn()
	require.NoError(t, err)
	p := g.Players()[0]
	assert.Equal(t, 9, p.Position)
	assert.Equal(t, -1, p.TotalDistance)
}

func TestFinishByDistance_TieGoesToFirstSeat(t *testing.T) {
	g := newTestGame(t, gameOpts{size: 10, players: 3, maxTurns: 1, die: fixedDie(2), src: prob.NewSequence(0)})
	for i := 0; i < 3; i++ {
		_, err := g.NextTurn()
		require.NoError(t, err)
	}
	w, ok := g.Winner()
	require.True(t, ok)
	assert.Equal(t, "Player 1", w.Name)
}

func TestFinishAtGoal(t *testing.T) {
	g := newTestGame(t, gameOpts{size: 10, players: 2, maxTurns: 20, die: fixedDie(6), src: prob.NewSequence(0), finish: true})

	for i := 0; i < 2; i++ {
		_, err := g.NextTurn()
		require.NoError(t, err)
	}
	turn, err := g.NextTurn()
	require.NoError(t, err)

	assert.True(t, g.Over())
	assert.Equal(t, 9, turn.Position)
	assert.Contains(t, turn.Message, "reached the goal")
	w, ok := g.Winner()
	require.True(t, ok)
	assert.Equal(t, "Player 1", w.Name)
	assert.Equal(t, 9, w.TotalDistance)
}

func TestStepShiftEvent(t *testing.T) {
	g := newTestGame(t, gameOpts{
		size: 10, players: 1, maxTurns: 5, die: fixedDie(2), src: prob.NewSequence(0),
		binds: []Binding{{2, Backward(5)}},
	})

	turn, err := g.NextTurn()
	require.NoError(t, err)
	assert.Equal(t, KindStepShift, turn.Event)
	p := g.Players()[0]
	assert.Equal(t, 7, p.Position, "2 - 5 wraps to 7")
	assert.Equal(t, -3, p.TotalDistance)
}

// TestScenarioMontyHallSwitchWins lands on a Monty Hall cell, picks door 1,
// switches and wins.
func TestScenarioMontyHallSwitchWins(t *testing.T) {
	// roll, prize door (0.9 -> door 3), opened door (only door 2 is possible)
	g := newTestGame(t, gameOpts{
		size: 10, players: 2, maxTurns: 5, die: fixedDie(4), src: prob.NewSequence(0.1, 0.9, 0.0),
		binds: []Binding{{4, MontyHall{RewardSteps: 5, PenaltySteps: 3}}},
	})

	turn, err := g.NextTurn()
	require.NoError(t, err)
	assert.Equal(t, KindMontyHall, turn.Event)
	p := g.Players()[0]
	require.True(t, p.InMontyHall())
	assert.Equal(t, 0, g.CurrentIndex(), "seat stays with the player in the session")

	blocked, err := g.NextTurn()
	require.NoError(t, err)
	assert.True(t, blocked.Blocked)
	assert.Equal(t, 4, p.Position)

	res, err := g.MontyHallChoose(MontyHallInput{Door: 1})
	require.NoError(t, err)
	prize := p.MontyHall().PrizeDoor()
	assert.Equal(t, 3, prize)
	assert.NotEqual(t, 1, res.OpenedDoor)
	assert.NotEqual(t, prize, res.OpenedDoor)
	assert.Equal(t, montyhall.AwaitingSwitchDecision, res.Phase)

	res, err = g.MontyHallChoose(MontyHallInput{Switch: true})
	require.NoError(t, err)
	assert.Equal(t, 6-1-res.OpenedDoor, res.FinalDoor)
	assert.True(t, res.Won)
	assert.Equal(t, 9, p.Position)
	assert.Equal(t, 4+5, p.TotalDistance)
	assert.False(t, p.InSession())
	assert.Nil(t, p.MontyHall())
	assert.Equal(t, 1, g.CurrentIndex())
}

func TestScenarioMontyHallSwitchLoses(t *testing.T) {
	// roll, prize door (0.0 -> door 1), opened door (0.6 -> second of {2,3})
	g := newTestGame(t, gameOpts{
		size: 10, players: 2, maxTurns: 5, die: fixedDie(4), src: prob.NewSequence(0.1, 0.0, 0.6),
		binds: []Binding{{4, MontyHall{RewardSteps: 5, PenaltySteps: 3}}},
	})
	_, err := g.NextTurn()
	require.NoError(t, err)

	res, err := g.MontyHallChoose(MontyHallInput{Door: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, res.OpenedDoor)

	res, err = g.MontyHallChoose(MontyHallInput{Switch: true})
	require.NoError(t, err)
	assert.Equal(t, 2, res.FinalDoor)
	assert.False(t, res.Won)

	p := g.Players()[0]
	assert.Equal(t, 1, p.Position)
	assert.Equal(t, 4-3, p.TotalDistance)
}

func TestMontyHall_PenaltyClampsAtStart(t *testing.T) {
	g := newTestGame(t, gameOpts{
		size: 10, players: 1, maxTurns: 5, die: fixedDie(1), src: prob.NewSequence(0.1, 0.0, 0.6),
		binds: []Binding{{1, MontyHall{RewardSteps: 5, PenaltySteps: 3}}},
	})
	_, err := g.NextTurn()
	require.NoError(t, err)
	_, err = g.MontyHallChoose(MontyHallInput{Door: 1})
	require.NoError(t, err)
	_, err = g.MontyHallChoose(MontyHallInput{Switch: true})
	require.NoError(t, err)

	p := g.Players()[0]
	assert.Equal(t, 0, p.Position)
	assert.Equal(t, 0, p.TotalDistance)
}

func TestMontyHall_InvalidDoor(t *testing.T) {
	g := newTestGame(t, gameOpts{
		size: 10, players: 1, maxTurns: 5, die: fixedDie(4), src: prob.NewSequence(0.5),
		binds: []Binding{{4, NewMontyHall()}},
	})
	_, err := g.NextTurn()
	require.NoError(t, err)

	_, err = g.MontyHallChoose(MontyHallInput{Door: 4})
	assert.ErrorIs(t, err, ErrInvalidChoice)
	assert.ErrorIs(t, err, montyhall.ErrInvalidChoice)
	assert.Equal(t, montyhall.AwaitingFirstChoice, g.Players()[0].MontyHall().Phase())
}

// TestScenarioSlotRound triggers a slot round with three players and spins
// every queued seat.
func TestScenarioSlotRound(t *testing.T) {
	g := newTestGame(t, gameOpts{
		size: 10, players: 3, maxTurns: 5, die: fixedDie(4), src: prob.NewSequence(0.5),
		binds: []Binding{{4, SlotRound{}}},
	})

	turn, err := g.NextTurn()
	require.NoError(t, err)
	assert.Equal(t, KindSlotRound, turn.Event)
	require.True(t, g.SlotRoundActive())
	assert.Equal(t, []int{1, 2, 0}, g.Snapshot().SlotQueue)
	assert.Equal(t, 1, g.CurrentIndex())

	blocked, err := g.NextTurn()
	require.NoError(t, err)
	assert.True(t, blocked.Blocked)
	assert.Equal(t, 0, g.Players()[1].Position)

	wantSeats := []int{1, 2, 0}
	for i, seat := range wantSeats {
		before := len(g.SlotRound().Queue())
		res, err := g.SlotSpin(0)
		require.NoError(t, err)
		assert.Equal(t, seat, res.Seat)
		assert.Equal(t, before-1, len(g.SlotRound().Queue()))
		assert.Equal(t, i == len(wantSeats)-1, res.Done)
		if res.Done {
			assert.Contains(t, res.Message, "Everyone has spun")
		}
	}
	assert.False(t, g.SlotRoundActive())
	assert.Len(t, g.SlotRound().Results(), 3)

	_, err = g.SlotSpin(0)
	assert.ErrorIs(t, err, slot.ErrSlotRoundExhausted)

	// Play resumes with the seat after the trigger, who lands on the slot
	// cell and opens a new round.
	turn, err = g.NextTurn()
	require.NoError(t, err)
	assert.False(t, turn.Blocked)
	assert.Equal(t, 1, turn.Seat)
	assert.Equal(t, []int{2, 0, 1}, g.Snapshot().SlotQueue)
}

func TestSlotSpin_MovesPlayer(t *testing.T) {
	// roll, then the classic reel jackpot (0.01 -> +10)
	g := newTestGame(t, gameOpts{
		size: 40, players: 2, maxTurns: 5, die: fixedDie(4), src: prob.NewSequence(0.5, 0.01),
		binds: []Binding{{4, SlotRound{}}},
	})
	_, err := g.NextTurn()
	require.NoError(t, err)

	_, err = g.SlotSpin(99)
	assert.ErrorIs(t, err, slot.ErrInvalidSlotChoice)

	res, err := g.SlotSpin(0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Seat)
	assert.Equal(t, 10, res.Outcome.Steps)
	assert.Equal(t, 10, g.Players()[1].Position)
	assert.Equal(t, 10, g.Players()[1].TotalDistance)
}

func TestSlotRound_OnFinalTurnDefersGameEnd(t *testing.T) {
	g := newTestGame(t, gameOpts{
		size: 10, players: 1, maxTurns: 1, die: fixedDie(4), src: prob.NewSequence(0.5),
		binds: []Binding{{4, SlotRound{}}},
	})

	turn, err := g.NextTurn()
	require.NoError(t, err)
	assert.Equal(t, KindSlotRound, turn.Event)
	assert.NotContains(t, turn.Message, "rounds are done")

	snap := g.Snapshot()
	assert.False(t, snap.IsOver)
	assert.True(t, snap.IsSlotEventActive)
	assert.Equal(t, -1, snap.Winner)

	res, err := g.SlotSpin(0)
	require.NoError(t, err)
	assert.True(t, res.Done)
	assert.Contains(t, res.Message, "Everyone has spun")
	assert.Contains(t, res.Message, "All 1 rounds are done")

	snap = g.Snapshot()
	assert.True(t, snap.IsOver)
	assert.False(t, snap.IsSlotEventActive)
	assert.Equal(t, 0, snap.Winner)

	_, err = g.SlotSpin(0)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestSlotRound_GoalClosesRound(t *testing.T) {
	// roll 4 onto the slot cell, then the classic jackpot carries seat 1 to the goal
	g := newTestGame(t, gameOpts{
		size: 10, players: 2, maxTurns: 5, die: fixedDie(4), src: prob.NewSequence(0.5, 0.01),
		finish: true,
		binds:  []Binding{{4, SlotRound{}}},
	})
	_, err := g.NextTurn()
	require.NoError(t, err)
	require.True(t, g.SlotRoundActive())

	res, err := g.SlotSpin(0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Seat)
	assert.True(t, res.Done)
	assert.Contains(t, res.Message, "reached the goal")

	snap := g.Snapshot()
	assert.True(t, snap.IsOver)
	assert.False(t, snap.IsSlotEventActive)
	assert.Empty(t, snap.SlotQueue)
	assert.Equal(t, 1, snap.Winner)

	_, err = g.SlotSpin(0)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestSlotSpin_NoRound(t *testing.T) {
	g := newTestGame(t, gameOpts{size: 10, players: 2, maxTurns: 5, die: fixedDie(1), src: prob.NewSequence(0)})
	_, err := g.SlotSpin(0)
	assert.ErrorIs(t, err, slot.ErrNoActiveSlotRound)
}

func TestMaze_EscapeRewards(t *testing.T) {
	g := newTestGame(t, gameOpts{
		size: 20, players: 2, maxTurns: 5, die: fixedDie(4), src: prob.NewSequence(0),
		binds: []Binding{{4, NewProbabilityMaze()}},
	})
	turn, err := g.NextTurn()
	require.NoError(t, err)
	assert.Equal(t, KindProbabilityMaze, turn.Event)

	view, err := g.MazeChoices()
	require.NoError(t, err)
	assert.Equal(t, maze.Start, view.Node)
	assert.Len(t, view.Choices, 2)
	assert.InDelta(t, 0.4, view.SuccessProbability, 1e-9)

	_, err = g.MazeChoose(5)
	assert.ErrorIs(t, err, ErrInvalidChoice)

	for _, idx := range []int{1, 1} {
		_, err := g.MazeChoose(idx)
		require.NoError(t, err)
		assert.Equal(t, 0, g.CurrentIndex())
	}
	msg, err := g.MazeChoose(0)
	require.NoError(t, err)
	assert.Contains(t, msg, "escaped")

	p := g.Players()[0]
	assert.Equal(t, 9, p.Position)
	assert.Equal(t, 9, p.TotalDistance)
	assert.False(t, p.InMaze())
	assert.Equal(t, 1, g.CurrentIndex())

	_, err = g.MazeChoices()
	assert.ErrorIs(t, err, ErrNoMazeSession)
}

func TestMaze_LostPenalizes(t *testing.T) {
	g := newTestGame(t, gameOpts{
		size: 20, players: 1, maxTurns: 5, die: fixedDie(4), src: prob.NewSequence(0),
		binds: []Binding{{4, NewProbabilityMaze()}},
	})
	_, err := g.NextTurn()
	require.NoError(t, err)

	_, err = g.MazeChoose(0)
	require.NoError(t, err)
	msg, err := g.MazeChoose(1)
	require.NoError(t, err)
	assert.Contains(t, msg, "lost")

	p := g.Players()[0]
	assert.Equal(t, 1, p.Position)
	assert.Equal(t, 1, p.TotalDistance)
}

func TestDiceSelection(t *testing.T) {
	g := newTestGame(t, gameOpts{
		size: 10, players: 2, maxTurns: 5, die: fixedDie(4), src: prob.NewSequence(0.5),
		binds: []Binding{{4, DiceSelectionOffer{}}},
	})

	_, err := g.ChooseDice(0)
	assert.ErrorIs(t, err, ErrNoSelectionPending)

	_, err = g.NextTurn()
	require.NoError(t, err)
	p := g.Players()[0]
	require.True(t, p.NeedsDiceSelection())
	assert.Equal(t, 4, p.Position, "the offer itself does not move the player")

	blocked, err := g.NextTurn()
	require.NoError(t, err)
	assert.True(t, blocked.Blocked)

	_, err = g.ChooseDice(len(dice.Catalogue()))
	assert.ErrorIs(t, err, ErrInvalidChoice)
	assert.True(t, p.NeedsDiceSelection())

	msg, err := g.ChooseDice(3)
	require.NoError(t, err)
	assert.Contains(t, msg, "Steady die")
	assert.False(t, p.NeedsDiceSelection())
	require.NotNil(t, p.Die())
	assert.Equal(t, "Steady die", p.Die().Name())
	assert.Equal(t, 1, g.CurrentIndex())
	assert.Equal(t, "Steady die", g.Snapshot().Players[0].Die)
}

func TestDiceReassign_PlayerRevertsToShared(t *testing.T) {
	six := prob.Trusted(prob.Weighted[int]{Outcome: 6, Weight: 1})
	g := newTestGame(t, gameOpts{
		size: 50, players: 1, maxTurns: 10, die: fixedDie(2), src: prob.NewSequence(0.5),
		binds: []Binding{{2, DiceReassign{Label: "six", Dist: six, Duration: 2, Target: TargetPlayer}}},
	})
	p := g.Players()[0]

	rolls := []int{}
	for i := 0; i < 4; i++ {
		turn, err := g.NextTurn()
		require.NoError(t, err)
		rolls = append(rolls, turn.Roll)
		if i == 0 {
			require.NotNil(t, p.Die())
			assert.Equal(t, 2, p.Die().Remaining())
		}
	}

	assert.Equal(t, []int{2, 6, 6, 2}, rolls)
	assert.Nil(t, p.Die())
	assert.Equal(t, 16, p.Position)
}

func TestDiceReassign_SharedRevertsToBase(t *testing.T) {
	six := prob.Trusted(prob.Weighted[int]{Outcome: 6, Weight: 1})
	g := newTestGame(t, gameOpts{
		size: 50, players: 1, maxTurns: 10, die: fixedDie(2), src: prob.NewSequence(0.5),
		binds: []Binding{{2, DiceReassign{Label: "six", Dist: six, Duration: 2, Target: TargetShared}}},
	})

	rolls := []int{}
	for i := 0; i < 4; i++ {
		turn, err := g.NextTurn()
		require.NoError(t, err)
		rolls = append(rolls, turn.Roll)
	}
	assert.Equal(t, []int{2, 6, 6, 2}, rolls)
	assert.Equal(t, "always 2", g.Dice().Name())
}

func TestSetCustomDice(t *testing.T) {
	g := newTestGame(t, gameOpts{size: 10, players: 1, maxTurns: 5, src: prob.NewSequence(0.5)})

	err := g.SetCustomDice(map[int]float64{1: 0.5, 2: 0.4})
	assert.ErrorIs(t, err, prob.ErrInvalidDistribution)
	assert.Equal(t, dice.Standard.Name, g.Dice().Name())

	require.NoError(t, g.SetCustomDice(map[int]float64{3: 1}))
	turn, err := g.NextTurn()
	require.NoError(t, err)
	assert.Equal(t, 3, turn.Roll)
}

func TestSessionOperationsWithoutSession(t *testing.T) {
	g := newTestGame(t, gameOpts{size: 10, players: 2, maxTurns: 5, die: fixedDie(1), src: prob.NewSequence(0)})

	_, err := g.ChooseDice(0)
	assert.ErrorIs(t, err, ErrNoSelectionPending)
	_, err = g.MazeChoices()
	assert.ErrorIs(t, err, ErrNoMazeSession)
	_, err = g.MazeChoose(0)
	assert.ErrorIs(t, err, ErrNoMazeSession)
	_, err = g.MontyHallChoose(MontyHallInput{Door: 1})
	assert.ErrorIs(t, err, ErrNoMontyHallSession)
}

func TestStandings(t *testing.T) {
	g := newTestGame(t, gameOpts{size: 40, players: 3, maxTurns: 5, die: dice.Standard.Die(), src: prob.NewSequence(0.05, 0.95, 0.45)})
	for i := 0; i < 3; i++ {
		_, err := g.NextTurn()
		require.NoError(t, err)
	}
	st := g.Standings()
	assert.Equal(t, []string{"Player 2", "Player 3", "Player 1"}, []string{st[0].Name, st[1].Name, st[2].Name})
	assert.Equal(t, 1, st[0].Seat)
}

// TestPositionInvariantProperty plays the classic board with arbitrary
// inputs and checks that every player stays on the board, sessions are
// exclusive, and the slot round is active iff its queue is non-empty.
func TestPositionInvariantProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		board, err := Classic.Build()
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		n := rapid.IntRange(1, 4).Draw(t, "players")
		players := make([]*Player, n)
		for i := range players {
			players[i] = NewPlayer(fmt.Sprintf("P%d", i), "")
		}
		g, err := New(Config{
			Players:  players,
			Board:    board,
			Source:   prob.NewSource(rapid.Uint64().Draw(t, "seed")),
			MaxTurns: rapid.IntRange(1, 6).Draw(t, "maxTurns"),
		})
		if err != nil {
			t.Fatalf("new: %v", err)
		}

		for step := 0; step < 200 && !g.Over(); step++ {
			p := g.Current()
			switch {
			case g.SlotRoundActive():
				_, err = g.SlotSpin(rapid.IntRange(0, len(slot.Reels)-1).Draw(t, "reel"))
			case p.NeedsDiceSelection():
				_, err = g.ChooseDice(rapid.IntRange(0, len(dice.Catalogue())-1).Draw(t, "dice"))
			case p.InMaze():
				_, err = g.MazeChoose(rapid.IntRange(0, len(p.Maze().Choices())-1).Draw(t, "edge"))
			case p.InMontyHall():
				if p.MontyHall().Phase() == montyhall.AwaitingFirstChoice {
					_, err = g.MontyHallChoose(MontyHallInput{Door: rapid.IntRange(1, 3).Draw(t, "door")})
				} else {
					_, err = g.MontyHallChoose(MontyHallInput{Switch: rapid.Bool().Draw(t, "switch")})
				}
			default:
				_, err = g.NextTurn()
			}
			if err != nil {
				t.Fatalf("step %d: %v", step, err)
			}

			snap := g.Snapshot()
			for _, ps := range snap.Players {
				if ps.Position < 0 || ps.Position >= board.Size() {
					t.Fatalf("%s at %d", ps.Name, ps.Position)
				}
				sessions := 0
				for _, b := range []bool{ps.IsInMaze, ps.IsInMontyHall, ps.NeedsDiceSelection} {
					if b {
						sessions++
					}
				}
				if sessions > 1 {
					t.Fatalf("%s in %d sessions", ps.Name, sessions)
				}
			}
			if snap.IsSlotEventActive != (len(snap.SlotQueue) > 0) {
				t.Fatalf("slot active=%v with queue %v", snap.IsSlotEventActive, snap.SlotQueue)
			}
		}
	})
}
