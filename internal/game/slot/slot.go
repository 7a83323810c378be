// Package slot implements the slot machines of the sugoroku board and the
// synchronized round in which every player spins once.
package slot

import (
	"errors"
	"fmt"
	"strings"

	"sugoroku/internal/game/prob"
)

// Errors for slot rounds
var (
	ErrNoActiveSlotRound  = errors.New("no slot round in progress")
	ErrSlotRoundExhausted = errors.New("every player has already spun this round")
	ErrInvalidSlotChoice  = errors.New("invalid slot machine")
)

// Outcome is one symbol line a reel can stop on.
type Outcome struct {
	Name  string
	Steps int
}

// Reel is a slot machine with a weighted outcome table.
// Weights are kept server-side; clients only see Name and Description.
type Reel struct {
	Name        string
	Description string
	Outcomes    prob.Distribution[Outcome]
}

// Reels are the machines offered during a slot round.
var Reels = []Reel{
	{
		Name:        "Classic slot",
		Description: "A balanced machine. Small wins are common, jackpots are rare.",
		Outcomes: prob.Trusted(
			prob.Weighted[Outcome]{Outcome: Outcome{Name: "7️⃣ 7️⃣ 7️⃣ JACKPOT", Steps: 10}, Weight: 0.05},
			prob.Weighted[Outcome]{Outcome: Outcome{Name: "🍇 🍇 🍇", Steps: 3}, Weight: 0.25},
			prob.Weighted[Outcome]{Outcome: Outcome{Name: "No match", Steps: 0}, Weight: 0.5},
			prob.Weighted[Outcome]{Outcome: Outcome{Name: "BAR BUST", Steps: -3}, Weight: 0.2},
		),
	},
	{
		Name:        "High-risk slot",
		Description: "Huge payouts, but it bites back more often than not.",
		Outcomes: prob.Trusted(
			prob.Weighted[Outcome]{Outcome: Outcome{Name: "7️⃣ 7️⃣ 7️⃣ MEGA JACKPOT", Steps: 15}, Weight: 0.1},
			prob.Weighted[Outcome]{Outcome: Outcome{Name: "No match", Steps: 0}, Weight: 0.4},
			prob.Weighted[Outcome]{Outcome: Outcome{Name: "💀 💀 💀", Steps: -8}, Weight: 0.5},
		),
	},
	{
		Name:        "Safe slot",
		Description: "Rarely loses, rarely wins big.",
		Outcomes: prob.Trusted(
			prob.Weighted[Outcome]{Outcome: Outcome{Name: "🍋 🍋", Steps: 1}, Weight: 0.6},
			prob.Weighted[Outcome]{Outcome: Outcome{Name: "🍋 🍋 🍋", Steps: 2}, Weight: 0.3},
			prob.Weighted[Outcome]{Outcome: Outcome{Name: "BAR", Steps: -1}, Weight: 0.1},
		),
	},
}

// ExpectedSteps returns the mean step change of a reel.
func (r Reel) ExpectedSteps() float64 {
	var ev float64
	for _, e := range r.Outcomes.Entries() {
		ev += float64(e.Outcome.Steps) * e.Weight
	}
	return ev
}

// LookupReel returns the reel at index or ErrInvalidSlotChoice.
func LookupReel(index int) (Reel, error) {
	if index < 0 || index >= len(Reels) {
		return Reel{}, fmt.Errorf("%w: %d (choose 0-%d)", ErrInvalidSlotChoice, index, len(Reels)-1)
	}
	return Reels[index], nil
}

// Spin is the outcome of one player's turn at a reel.
type Spin struct {
	Seat    int
	Reel    Reel
	Outcome Outcome
}

type result struct {
	name    string
	message string
}

// Round is a game-wide barrier: every player spins once, starting with the
// seat after the trigger and ending with the trigger. While a Round is active
// ordinary rolling is suspended.
type Round struct {
	active  bool
	trigger int
	queue   []int
	results []result
}

// Open starts a round triggered by seat in a game of players seats.
func Open(trigger, players int) *Round {
	queue := make([]int, 0, players)
	for i := 1; i < players; i++ {
		queue = append(queue, (trigger+i)%players)
	}
	queue = append(queue, trigger)
	return &Round{active: true, trigger: trigger, queue: queue}
}

// Active reports whether players are still waiting to spin.
func (r *Round) Active() bool {
	return r != nil && r.active
}

// Trigger returns the seat that opened the round.
func (r *Round) Trigger() int {
	return r.trigger
}

// Queue returns the seats still to spin, in order.
func (r *Round) Queue() []int {
	if r == nil {
		return nil
	}
	cp := make([]int, len(r.queue))
	copy(cp, r.queue)
	return cp
}

// Next returns the seat whose spin is due.
func (r *Round) Next() (int, error) {
	if r == nil {
		return 0, ErrNoActiveSlotRound
	}
	if len(r.queue) == 0 {
		return 0, ErrSlotRoundExhausted
	}
	return r.queue[0], nil
}

// Spin pops the head of the queue and samples reelIndex for that seat. The
// round deactivates once the queue is empty.
func (r *Round) Spin(reelIndex int, src prob.Source) (Spin, error) {
	seat, err := r.Next()
	if err != nil {
		return Spin{}, err
	}
	reel, err := LookupReel(reelIndex)
	if err != nil {
		return Spin{}, err
	}

	r.queue = r.queue[1:]
	if len(r.queue) == 0 {
		r.active = false
	}
	return Spin{Seat: seat, Reel: reel, Outcome: reel.Outcomes.Sample(src)}, nil
}

// Close ends the round early, dropping any seats still queued.
func (r *Round) Close() {
	if r == nil {
		return
	}
	r.active = false
	r.queue = nil
}

// Record stores the message for a player's spin. A player spins once per
// round, so a repeated name overwrites the earlier entry.
func (r *Round) Record(name, message string) {
	for i := range r.results {
		if r.results[i].name == name {
			r.results[i].message = message
			return
		}
	}
	r.results = append(r.results, result{name: name, message: message})
}

// Results returns player name -> result message.
func (r *Round) Results() map[string]string {
	out := make(map[string]string, len(r.results))
	for _, res := range r.results {
		out[res.name] = res.message
	}
	return out
}

// Summary joins every recorded result in spin order.
func (r *Round) Summary() string {
	lines := make([]string, len(r.results))
	for i, res := range r.results {
		lines[i] = res.message
	}
	return "Everyone has spun! Results:\n" + strings.Join(lines, "\n")
}
