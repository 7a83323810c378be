package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"sugoroku/internal/game/prob"
)

func TestOpen_QueueOrder(t *testing.T) {
	tests := []struct {
		name    string
		trigger int
		players int
		want    []int
	}{
		{"single player", 0, 1, []int{0}},
		{"first seat triggers", 0, 3, []int{1, 2, 0}},
		{"middle seat triggers", 1, 3, []int{2, 0, 1}},
		{"last seat triggers", 3, 4, []int{0, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Open(tt.trigger, tt.players)
			assert.True(t, r.Active())
			assert.Equal(t, tt.want, r.Queue())
			assert.Equal(t, tt.trigger, r.Trigger())
		})
	}
}

func TestRound_SpinUntilExhausted(t *testing.T) {
	r := Open(0, 3)
	src := prob.NewSequence(0.5)

	seats := []int{}
	for i := 0; i < 3; i++ {
		spin, err := r.Spin(0, src)
		require.NoError(t, err)
		seats = append(seats, spin.Seat)
		r.Record(string(rune('A'+spin.Seat)), spin.Outcome.Name)
	}

	assert.Equal(t, []int{1, 2, 0}, seats)
	assert.False(t, r.Active())
	assert.Len(t, r.Results(), 3)
	assert.Contains(t, r.Summary(), "Everyone has spun")

	_, err := r.Spin(0, src)
	assert.ErrorIs(t, err, ErrSlotRoundExhausted)
}

func TestRound_InvalidReelDoesNotConsume(t *testing.T) {
	r := Open(1, 2)

	_, err := r.Spin(len(Reels), prob.NewSequence(0))
	assert.ErrorIs(t, err, ErrInvalidSlotChoice)
	_, err = r.Spin(-1, prob.NewSequence(0))
	assert.ErrorIs(t, err, ErrInvalidSlotChoice)

	assert.Equal(t, []int{0, 1}, r.Queue())
}

func TestRound_Close(t *testing.T) {
	r := Open(0, 3)
	r.Close()

	assert.False(t, r.Active())
	assert.Empty(t, r.Queue())
	_, err := r.Spin(0, prob.NewSequence(0))
	assert.ErrorIs(t, err, ErrSlotRoundExhausted)
}

func TestRound_Nil(t *testing.T) {
	var r *Round
	assert.False(t, r.Active())
	r.Close()
	_, err := r.Spin(0, prob.NewSequence(0))
	assert.ErrorIs(t, err, ErrNoActiveSlotRound)
}

func TestReel_SampleByWeight(t *testing.T) {
	reel, err := LookupReel(0)
	require.NoError(t, err)

	assert.Equal(t, 10, reel.Outcomes.Sample(prob.NewSequence(0.01)).Steps)
	assert.Equal(t, 3, reel.Outcomes.Sample(prob.NewSequence(0.2)).Steps)
	assert.Equal(t, 0, reel.Outcomes.Sample(prob.NewSequence(0.6)).Steps)
	assert.Equal(t, -3, reel.Outcomes.Sample(prob.NewSequence(0.95)).Steps)
}

func TestReels_Normalized(t *testing.T) {
	for _, reel := range Reels {
		var sum float64
		for _, e := range reel.Outcomes.Entries() {
			sum += e.Weight
		}
		assert.InDelta(t, 1.0, sum, prob.Tolerance, reel.Name)
	}
	assert.InDelta(t, 0.65, Reels[0].ExpectedSteps(), 1e-9)
}

// TestRoundQueueProperty checks that each successful spin shrinks the queue
// by exactly one and that the round is active iff the queue is non-empty.
func TestRoundQueueProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		players := rapid.IntRange(1, 8).Draw(t, "players")
		trigger := rapid.IntRange(0, players-1).Draw(t, "trigger")
		r := Open(trigger, players)
		src := prob.NewSource(rapid.Uint64().Draw(t, "seed"))

		seen := map[int]bool{}
		for len(r.Queue()) > 0 {
			before := len(r.Queue())
			if !r.Active() {
				t.Fatalf("round inactive with %d queued", before)
			}
			reel := rapid.IntRange(0, len(Reels)-1).Draw(t, "reel")
			spin, err := r.Spin(reel, src)
			if err != nil {
				t.Fatalf("spin failed: %v", err)
			}
			if seen[spin.Seat] {
				t.Fatalf("seat %d spun twice", spin.Seat)
			}
			seen[spin.Seat] = true
			if len(r.Queue()) != before-1 {
				t.Fatalf("queue went from %d to %d", before, len(r.Queue()))
			}
		}

		if r.Active() {
			t.Fatalf("round still active with empty queue")
		}
		if len(seen) != players {
			t.Fatalf("%d of %d seats spun", len(seen), players)
		}
	})
}
