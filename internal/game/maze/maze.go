// Package maze implements the probability maze: a branching graph a player
// walks one choice at a time until reaching the goal or falling into a trap.
package maze

import (
	"errors"
	"fmt"

	"sugoroku/internal/game/prob"
)

// Terminal nodes.
const (
	Start = "start"
	Goal  = "goal"
	Fail  = "fail"
)

// Errors for maze graphs and sessions
var (
	ErrInvalidGraph  = errors.New("invalid maze graph")
	ErrInvalidChoice = errors.New("invalid maze choice")
	ErrFinished      = errors.New("maze already finished")
)

// Edge is one path leading out of a node.
type Edge struct {
	To          string
	Probability float64
	Description string
}

// Graph maps node name to its ordered outgoing edges.
type Graph struct {
	nodes map[string][]Edge
}

// NewGraph validates nodes and returns a Graph. Every non-terminal node must
// have edges whose probabilities sum to 1, every edge must point at a known
// node, and the graph must be acyclic and rooted at Start.
func NewGraph(nodes map[string][]Edge) (*Graph, error) {
	if _, ok := nodes[Start]; !ok {
		return nil, fmt.Errorf("%w: missing %q node", ErrInvalidGraph, Start)
	}
	for name, edges := range nodes {
		if name == Goal || name == Fail {
			if len(edges) > 0 {
				return nil, fmt.Errorf("%w: terminal node %q has edges", ErrInvalidGraph, name)
			}
			continue
		}
		if len(edges) == 0 {
			return nil, fmt.Errorf("%w: node %q is a dead end", ErrInvalidGraph, name)
		}
		var sum float64
		for _, e := range edges {
			if _, ok := nodes[e.To]; !ok && e.To != Goal && e.To != Fail {
				return nil, fmt.Errorf("%w: %q leads to unknown node %q", ErrInvalidGraph, name, e.To)
			}
			if e.Probability < 0 {
				return nil, fmt.Errorf("%w: negative probability on %q -> %q", ErrInvalidGraph, name, e.To)
			}
			sum += e.Probability
		}
		if !prob.WithinTolerance(sum) {
			return nil, fmt.Errorf("%w: edges of %q sum to %.3f", ErrInvalidGraph, name, sum)
		}
	}

	g := &Graph{nodes: nodes}
	if err := g.checkAcyclic(); err != nil {
		return nil, err
	}
	return g, nil
}

// MustGraph is NewGraph that panics on error. Useful for package-level tables.
func MustGraph(nodes map[string][]Edge) *Graph {
	g, err := NewGraph(nodes)
	if err != nil {
		panic("maze: " + err.Error())
	}
	return g
}

func (g *Graph) checkAcyclic() error {
	const (
		visiting = 1
		done     = 2
	)
	state := map[string]int{}
	var visit func(string) error
	visit = func(n string) error {
		switch state[n] {
		case visiting:
			return fmt.Errorf("%w: cycle through %q", ErrInvalidGraph, n)
		case done:
			return nil
		}
		state[n] = visiting
		for _, e := range g.nodes[n] {
			if err := visit(e.To); err != nil {
				return err
			}
		}
		state[n] = done
		return nil
	}
	return visit(Start)
}

// Edges returns the outgoing edges of node.
func (g *Graph) Edges(node string) []Edge {
	edges := g.nodes[node]
	cp := make([]Edge, len(edges))
	copy(cp, edges)
	return cp
}

// Reachable reports whether to can be reached from Start.
func (g *Graph) Reachable(to string) bool {
	seen := map[string]bool{}
	stack := []string{Start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == to {
			return true
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		for _, e := range g.nodes[n] {
			stack = append(stack, e.To)
		}
	}
	return false
}

// SuccessProbability is the chance of reaching Goal from node when every
// branch is taken with its edge probability.
func (g *Graph) SuccessProbability(node string) float64 {
	memo := map[string]float64{}
	var p func(string) float64
	p = func(n string) float64 {
		switch n {
		case Goal:
			return 1
		case Fail:
			return 0
		}
		if v, ok := memo[n]; ok {
			return v
		}
		var v float64
		for _, e := range g.nodes[n] {
			v += e.Probability * p(e.To)
		}
		memo[n] = v
		return v
	}
	return p(node)
}

// Default is the maze bound to maze cells on the standard boards.
var Default = MustGraph(map[string][]Edge{
	Start: {
		{To: "left tunnel", Probability: 0.5, Description: "A damp tunnel to the left"},
		{To: "right tunnel", Probability: 0.5, Description: "A windy tunnel to the right"},
	},
	"left tunnel": {
		{To: "rope bridge", Probability: 0.6, Description: "Cross the creaking rope bridge"},
		{To: Fail, Probability: 0.4, Description: "Squeeze through the collapsing crack"},
	},
	"right tunnel": {
		{To: "rope bridge", Probability: 0.3, Description: "Climb up towards the rope bridge"},
		{To: "crystal hall", Probability: 0.7, Description: "Follow the glittering light"},
	},
	"rope bridge": {
		{To: Goal, Probability: 0.5, Description: "Run for the exit"},
		{To: Fail, Probability: 0.5, Description: "Jump to the lower ledge"},
	},
	"crystal hall": {
		{To: Goal, Probability: 0.4, Description: "Take the stairs of light"},
		{To: "rope bridge", Probability: 0.2, Description: "Double back to the bridge"},
		{To: Fail, Probability: 0.4, Description: "Touch the largest crystal"},
	},
})
