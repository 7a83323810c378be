package maze

import "fmt"

// Default rewards for a maze cell.
const (
	DefaultRewardSteps  = 5
	DefaultPenaltySteps = 3
)

// Session is one player's walk through a Graph.
type Session struct {
	graph        *Graph
	current      string
	path         []string
	finished     bool
	success      bool
	RewardSteps  int
	PenaltySteps int
}

// NewSession starts a walk at Start.
func NewSession(g *Graph, reward, penalty int) *Session {
	return &Session{
		graph:        g,
		current:      Start,
		path:         []string{Start},
		RewardSteps:  reward,
		PenaltySteps: penalty,
	}
}

// Current returns the node the player is standing on.
func (s *Session) Current() string { return s.current }

// Finished reports whether the walk reached Goal or Fail.
func (s *Session) Finished() bool { return s.finished }

// Success reports whether the walk reached Goal.
func (s *Session) Success() bool { return s.success }

// Path returns the visited nodes in order, starting with Start.
func (s *Session) Path() []string {
	cp := make([]string, len(s.path))
	copy(cp, s.path)
	return cp
}

// Choices returns the edges leaving the current node.
func (s *Session) Choices() []Edge {
	if s.finished {
		return nil
	}
	return s.graph.Edges(s.current)
}

// SuccessProbability is the chance of reaching Goal from the current node.
func (s *Session) SuccessProbability() float64 {
	return s.graph.SuccessProbability(s.current)
}

// Choose follows edge index out of the current node.
func (s *Session) Choose(index int) (string, error) {
	if s.finished {
		return "", ErrFinished
	}
	edges := s.graph.nodes[s.current]
	if index < 0 || index >= len(edges) {
		return "", fmt.Errorf("%w: %d (choose 0-%d)", ErrInvalidChoice, index, len(edges)-1)
	}

	edge := edges[index]
	s.current = edge.To
	s.path = append(s.path, edge.To)

	switch edge.To {
	case Goal:
		s.finished, s.success = true, true
		return fmt.Sprintf("%s... and you see daylight! You escaped the maze.", edge.Description), nil
	case Fail:
		s.finished = true
		return fmt.Sprintf("%s... and you are hopelessly lost.", edge.Description), nil
	default:
		return fmt.Sprintf("%s. You arrive at the %s.", edge.Description, edge.To), nil
	}
}
