package grid

import (
	"fmt"
	"io"
)

// Grid is the sparse two-dimensional container that owns every Cell
// (spec.md §4.2). The zero value is not usable; construct with NewGrid.
type Grid struct {
	parser Parser
	cells  map[Position]*Cell

	rowCounts *orderedCounter
	colCounts *orderedCounter
}

// NewGrid builds an empty Grid that parses formulas with parser.
func NewGrid(parser Parser) *Grid {
	return &Grid{
		parser:    parser,
		cells:     make(map[Position]*Cell),
		rowCounts: newOrderedCounter(),
		colCounts: newOrderedCounter(),
	}
}

// SetCell installs text at pos, creating the cell if this is its first
// use (spec.md §4.2). The printable-area counters increment whenever an
// Empty cell (fresh, cleared or auto-materialized) gains content, and for a
// freshly created entry even if Set fails with CircularDependency (§9's
// "open question", resolved here in favor of preserving the source's
// observed behavior).
func (g *Grid) SetCell(pos Position, text string) error {
	if !pos.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}

	cell, exists := g.cells[pos]
	if !exists {
		cell = newCell(g, pos)
		g.cells[pos] = cell
	}

	wasEmpty := cell.IsEmpty()
	err := cell.Set(text)
	if wasEmpty && (!exists || !cell.IsEmpty()) {
		g.rowCounts.Inc(pos.Row)
		g.colCounts.Inc(pos.Col)
	}
	return err
}

// GetCell returns the cell at pos if it holds externally-visible content,
// or nil if pos is unset or only auto-materialized as Empty.
func (g *Grid) GetCell(pos Position) (*Cell, error) {
	if !pos.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}
	cell := g.cells[pos]
	if cell == nil || cell.IsEmpty() {
		return nil, nil
	}
	return cell, nil
}

// GetConcreteCell returns the cell at pos regardless of emptiness, or nil
// if no entry exists there at all. Used internally by Cell for cycle
// detection and edge rewiring, and exposed for host-side introspection.
func (g *Grid) GetConcreteCell(pos Position) (*Cell, error) {
	if !pos.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}
	return g.cells[pos], nil
}

// CreateEmptyCell ensures an entry exists at pos in Empty form, returning
// it. Idempotent: calling it on an already-materialized position is a
// no-op that returns the existing cell untouched.
func (g *Grid) CreateEmptyCell(pos Position) (*Cell, error) {
	if !pos.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}
	if cell, ok := g.cells[pos]; ok {
		return cell, nil
	}
	cell := newCell(g, pos)
	cell.Clear() // settles the fresh cell into an explicit Empty state
	g.cells[pos] = cell
	return cell, nil
}

// ClearCell reverts pos to Empty. A no-op if pos has no externally-visible
// cell. The entry (and any dependents pointing at it) is preserved.
func (g *Grid) ClearCell(pos Position) error {
	if !pos.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}
	cell, ok := g.cells[pos]
	if !ok || cell.IsEmpty() {
		return nil
	}

	g.rowCounts.Dec(pos.Row)
	g.colCounts.Dec(pos.Col)
	cell.Clear()
	return nil
}

// GetPrintableSize returns the minimal rectangle covering every position
// that currently holds an externally-set, non-cleared cell.
func (g *Grid) GetPrintableSize() (rows, cols int) {
	maxRow, ok := g.rowCounts.Max()
	if !ok {
		return 0, 0
	}
	maxCol, _ := g.colCounts.Max()
	return maxRow + 1, maxCol + 1
}

// PrintValues writes the tab/LF textual dump of computed values described
// in spec.md §6.
func (g *Grid) PrintValues(w io.Writer) error {
	return g.printCells(w, func(c *Cell) string { return c.GetValue().String() })
}

// PrintTexts writes the tab/LF textual dump of raw cell text described in
// spec.md §6.
func (g *Grid) PrintTexts(w io.Writer) error {
	return g.printCells(w, func(c *Cell) string { return c.GetText() })
}

func (g *Grid) printCells(w io.Writer, render func(*Cell) string) error {
	rows, cols := g.GetPrintableSize()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c != 0 {
				if _, err := io.WriteString(w, "\t"); err != nil {
					return err
				}
			}
			if cell := g.cells[Position{Row: r, Col: c}]; cell != nil {
				if _, err := io.WriteString(w, render(cell)); err != nil {
					return err
				}
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
