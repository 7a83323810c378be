package sugoroku

import "fmt"

// Cell is one square of the board.
type Cell struct {
	Position int
	Event    Event
}

// Board is a fixed-size looped track of cells.
type Board struct {
	cells []Cell
}

// NewBoard creates a board with size empty cells.
func NewBoard(size int) (*Board, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBoard, size)
	}
	cells := make([]Cell, size)
	for i := range cells {
		cells[i].Position = i
	}
	return &Board{cells: cells}, nil
}

// Size returns the number of cells.
func (b *Board) Size() int {
	return len(b.cells)
}

// Bind attaches ev to the cell at pos, replacing any earlier binding.
func (b *Board) Bind(pos int, ev Event) error {
	if pos < 0 || pos >= len(b.cells) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, pos, len(b.cells))
	}
	b.cells[pos].Event = ev
	return nil
}

// Cell returns the cell at pos.
func (b *Board) Cell(pos int) (Cell, error) {
	if pos < 0 || pos >= len(b.cells) {
		return Cell{}, fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, pos, len(b.cells))
	}
	return b.cells[pos], nil
}

// EventAt returns the event bound at pos, or nil.
func (b *Board) EventAt(pos int) Event {
	if pos < 0 || pos >= len(b.cells) {
		return nil
	}
	return b.cells[pos].Event
}

// EventCells returns the cells that have an event, in board order.
func (b *Board) EventCells() []Cell {
	out := make([]Cell, 0)
	for _, c := range b.cells {
		if c.Event != nil {
			out = append(out, c)
		}
	}
	return out
}

// EventDescription names an event and explains what it does.
type EventDescription struct {
	Name        string
	Kind        Kind
	Description string
}

// Descriptions lists each distinct event name once, in board order.
func (b *Board) Descriptions() []EventDescription {
	seen := map[string]bool{}
	out := make([]EventDescription, 0)
	for _, c := range b.EventCells() {
		name := c.Event.Name()
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, EventDescription{Name: name, Kind: c.Event.Kind(), Description: c.Event.Description()})
	}
	return out
}
