package sugoroku

import (
	"fmt"
	"slices"
	"sync"

	"sugoroku/internal/game/dice"
	"sugoroku/internal/game/prob"
)

// Binding places an event on a cell.
type Binding struct {
	Position int
	Event    Event
}

// Layout is a named board: its size and the events bound to it.
type Layout struct {
	Name        string
	Description string
	Size        int
	Bindings    []Binding
}

// Build creates a fresh board for the layout. Later bindings to the same
// cell win.
func (l Layout) Build() (*Board, error) {
	return l.BuildSized(0)
}

// BuildSized is Build with the track length overridden. A size of zero or
// less keeps the layout's own size; a binding past the end is ErrOutOfRange.
func (l Layout) BuildSized(size int) (*Board, error) {
	if size <= 0 {
		size = l.Size
	}
	b, err := NewBoard(size)
	if err != nil {
		return nil, err
	}
	for _, bind := range l.Bindings {
		if err := b.Bind(bind.Position, bind.Event); err != nil {
			return nil, fmt.Errorf("layout %s: %w", l.Name, err)
		}
	}
	return b, nil
}

// LayoutRegistry manages named board layouts.
// It is safe for concurrent use.
type LayoutRegistry struct {
	layouts map[string]Layout
	mu      sync.RWMutex
}

// NewLayoutRegistry creates an empty registry.
func NewLayoutRegistry() *LayoutRegistry {
	return &LayoutRegistry{
		layouts: make(map[string]Layout),
	}
}

// Register adds a layout, replacing any layout with the same name.
func (r *LayoutRegistry) Register(l Layout) error {
	if l.Name == "" {
		return fmt.Errorf("layout name cannot be empty")
	}
	if _, err := l.Build(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.layouts[l.Name] = l
	return nil
}

// Get retrieves a layout by name.
func (r *LayoutRegistry) Get(name string) (Layout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.layouts[name]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
	return l, nil
}

// Names returns the registered layout names, sorted.
func (r *LayoutRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.layouts))
	for name := range r.layouts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Count returns the number of registered layouts.
func (r *LayoutRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.layouts)
}

var (
	loadedDie = prob.Trusted(
		prob.Weighted[int]{Outcome: 4, Weight: 0.2},
		prob.Weighted[int]{Outcome: 5, Weight: 0.3},
		prob.Weighted[int]{Outcome: 6, Weight: 0.5},
	)
	heavyAirDie = dice.Predefined[2].Dist
)

// Classic is the 40-cell loop.
var Classic = Layout{
	Name:        "classic",
	Description: "The full 40-cell loop with every kind of event.",
	Size:        40,
	Bindings: []Binding{
		{3, SlotRound{}},
		{4, NewMontyHall()},
		{5, Forward(2)},
		{7, NewMontyHall()},
		{10, Backward(3)},
		{12, NewProbabilityMaze()},
		{15, DiceSelectionOffer{}},
		{17, DiceReassign{Label: "Loaded die", Dist: loadedDie, Duration: 2, Target: TargetPlayer}},
		{20, Forward(5)},
		{22, NewMontyHall()},
		{25, Backward(4)},
		{28, DiceReassign{Label: "Heavy air", Dist: heavyAirDie, Duration: 3, Target: TargetShared}},
		{30, DiceSelectionOffer{}},
		{35, SlotRound{}},
	},
}

// Short is a 20-cell loop for quick games.
var Short = Layout{
	Name:        "short",
	Description: "A quick 20-cell loop.",
	Size:        20,
	Bindings: []Binding{
		{2, Forward(3)},
		{5, NewMontyHall()},
		{8, DiceSelectionOffer{}},
		{11, NewProbabilityMaze()},
		{14, Backward(4)},
		{17, SlotRound{}},
	},
}

// DefaultLayouts returns a registry holding Classic and Short.
func DefaultLayouts() *LayoutRegistry {
	r := NewLayoutRegistry()
	for _, l := range []Layout{Classic, Short} {
		if err := r.Register(l); err != nil {
			panic("sugoroku: " + err.Error())
		}
	}
	return r
}
