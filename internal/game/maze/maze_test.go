package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewGraph_Validation(t *testing.T) {
	tests := []struct {
		name  string
		nodes map[string][]Edge
	}{
		{"missing start", map[string][]Edge{"a": {{To: Goal, Probability: 1}}}},
		{"dead end", map[string][]Edge{Start: {{To: "a", Probability: 1}}, "a": {}}},
		{"unknown node", map[string][]Edge{Start: {{To: "nowhere", Probability: 1}}}},
		{"bad sum", map[string][]Edge{Start: {{To: Goal, Probability: 0.5}, {To: Fail, Probability: 0.2}}}},
		{"negative", map[string][]Edge{Start: {{To: Goal, Probability: 1.5}, {To: Fail, Probability: -0.5}}}},
		{"cycle", map[string][]Edge{
			Start: {{To: "a", Probability: 1}},
			"a":   {{To: Start, Probability: 0.5}, {To: Goal, Probability: 0.5}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGraph(tt.nodes)
			assert.ErrorIs(t, err, ErrInvalidGraph)
		})
	}
}

func TestNewGraph_ToleranceBoundary(t *testing.T) {
	for _, p := range []float64{0.49, 0.51} {
		_, err := NewGraph(map[string][]Edge{Start: {{To: Goal, Probability: p}, {To: Fail, Probability: 0.5}}})
		assert.NoError(t, err, "goal probability %v", p)
	}
}

func TestGraph_SuccessProbability(t *testing.T) {
	assert.InDelta(t, 0.4, Default.SuccessProbability(Start), 1e-9)
	assert.InDelta(t, 0.5, Default.SuccessProbability("rope bridge"), 1e-9)
	assert.Equal(t, 1.0, Default.SuccessProbability(Goal))
	assert.Equal(t, 0.0, Default.SuccessProbability(Fail))
}

func TestSession_ReachGoal(t *testing.T) {
	s := NewSession(Default, 5, 3)
	assert.Equal(t, Start, s.Current())
	require.Len(t, s.Choices(), 2)

	_, err := s.Choose(1) // right tunnel
	require.NoError(t, err)
	_, err = s.Choose(1) // crystal hall
	require.NoError(t, err)
	msg, err := s.Choose(0) // stairs of light
	require.NoError(t, err)

	assert.True(t, s.Finished())
	assert.True(t, s.Success())
	assert.Contains(t, msg, "escaped")
	assert.Equal(t, []string{Start, "right tunnel", "crystal hall", Goal}, s.Path())
	assert.Empty(t, s.Choices())

	_, err = s.Choose(0)
	assert.ErrorIs(t, err, ErrFinished)
}

func TestSession_Fail(t *testing.T) {
	s := NewSession(Default, 5, 3)
	_, err := s.Choose(0)
	require.NoError(t, err)
	_, err = s.Choose(1)
	require.NoError(t, err)

	assert.True(t, s.Finished())
	assert.False(t, s.Success())
	assert.Equal(t, Fail, s.Current())
}

func TestSession_InvalidChoice(t *testing.T) {
	s := NewSession(Default, 5, 3)
	for _, idx := range []int{-1, 2, 99} {
		_, err := s.Choose(idx)
		assert.ErrorIs(t, err, ErrInvalidChoice)
	}
	assert.Equal(t, []string{Start}, s.Path())
}

// TestSessionInvariantsProperty walks the default maze with arbitrary
// choices and checks the path and terminal-state invariants.
func TestSessionInvariantsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewSession(Default, 5, 3)
		steps := rapid.IntRange(0, 10).Draw(t, "steps")
		for i := 0; i < steps && !s.Finished(); i++ {
			idx := rapid.IntRange(-1, 3).Draw(t, "choice")
			_, _ = s.Choose(idx)
		}

		path := s.Path()
		if path[0] != Start {
			t.Fatalf("path starts at %q", path[0])
		}
		for i := 1; i < len(path); i++ {
			if !Default.Reachable(path[i]) {
				t.Fatalf("unreachable node %q in path", path[i])
			}
			linked := false
			for _, e := range Default.Edges(path[i-1]) {
				if e.To == path[i] {
					linked = true
				}
			}
			if !linked {
				t.Fatalf("no edge %q -> %q", path[i-1], path[i])
			}
		}
		if path[len(path)-1] != s.Current() {
			t.Fatalf("path ends at %q but current is %q", path[len(path)-1], s.Current())
		}
		terminal := s.Current() == Goal || s.Current() == Fail
		if s.Finished() != terminal {
			t.Fatalf("finished=%v at %q", s.Finished(), s.Current())
		}
		if s.Success() != (s.Current() == Goal) {
			t.Fatalf("success=%v at %q", s.Success(), s.Current())
		}
	})
}
