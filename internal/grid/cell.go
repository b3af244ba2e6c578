package grid

import "fmt"

type formKind uint8

const (
	formEmpty formKind = iota
	formText
	formFormula
)

// Cell is the smallest addressable unit of a Grid (spec.md §3, §4.1). It is
// always owned by exactly one Grid; the zero value is not usable, obtain
// one via Grid.SetCell/CreateEmptyCell.
type Cell struct {
	grid *Grid
	pos  Position

	kind formKind

	// hasPriorState distinguishes a genuinely fresh cell (never Set nor
	// explicitly emptied) from one that has been Set or has settled into
	// Empty via Clear. Set's same-initial-text shortcut applies only to the
	// latter, so Set("") turns a fresh cell into Text("") but leaves a
	// cleared cell Empty; see the two empty-string cases in cell_test.go.
	hasPriorState bool
	initialText   string // raw text as last passed to Set; "" while kind == formEmpty

	plainText   string     // stored verbatim for formText, including a leading "'" escape
	formulaText string     // raw formula source, without the leading '='
	expr        Expression // non-nil only for formFormula

	refs       []Position // forward references; nil unless formFormula
	dependents map[Position]struct{}

	cache    *Value
}

func newCell(g *Grid, pos Position) *Cell {
	return &Cell{grid: g, pos: pos, dependents: make(map[Position]struct{})}
}

// Position returns the coordinate this cell was materialized at.
func (c *Cell) Position() Position { return c.pos }

// IsEmpty reports whether the cell currently holds no content.
func (c *Cell) IsEmpty() bool { return c.kind == formEmpty }

// GetReferencedCells returns the forward-reference list of the current
// form; empty for Empty and Text cells.
func (c *Cell) GetReferencedCells() []Position {
	if c.kind != formFormula {
		return nil
	}
	out := make([]Position, len(c.refs))
	copy(out, c.refs)
	return out
}

// GetText returns the cell's raw textual representation (spec.md §4.1).
func (c *Cell) GetText() string {
	switch c.kind {
	case formText:
		return c.plainText
	case formFormula:
		return "=" + c.expr.Canonical()
	default:
		return ""
	}
}

// GetValue returns the cell's computed value, memoizing it on first
// computation (spec.md §4.1, §9 "mutable cache on a const read").
func (c *Cell) GetValue() Value {
	if c.cache != nil {
		return *c.cache
	}

	var v Value
	switch c.kind {
	case formEmpty:
		v = TextValue("")
	case formText:
		if len(c.plainText) > 0 && c.plainText[0] == '\'' {
			v = TextValue(c.plainText[1:])
		} else {
			v = TextValue(c.plainText)
		}
	case formFormula:
		v = c.expr.Evaluate(func(p Position) Value {
			cell, err := c.grid.GetConcreteCell(p)
			if err != nil || cell == nil {
				return NumberValue(0)
			}
			return cell.GetValue()
		})
	}

	c.cache = &v
	return v
}

// Set installs new content, per the state machine in spec.md §4.1.
func (c *Cell) Set(text string) error {
	if c.hasPriorState && text == c.initialText {
		return nil
	}

	isFormula := len(text) >= 2 && text[0] == '='

	var expr Expression
	var refs []Position
	if isFormula {
		var err error
		expr, err = c.grid.parser.Parse(text[1:])
		if err != nil {
			return err
		}
		refs = expr.References()
	}

	if err := c.detectCycle(refs); err != nil {
		return err
	}

	c.ClearValueCache()

	prevRefs := c.refs
	for _, p := range prevRefs {
		if target, _ := c.grid.GetConcreteCell(p); target != nil {
			delete(target.dependents, c.pos)
		}
	}

	for _, p := range refs {
		target, err := c.grid.CreateEmptyCell(p)
		if err != nil {
			continue // invalid positions are skipped, per spec.md §4.1 edge rules
		}
		target.dependents[c.pos] = struct{}{}
	}

	if isFormula {
		c.kind = formFormula
		c.formulaText = text[1:]
		c.expr = expr
		c.refs = refs
		c.plainText = ""
	} else {
		c.kind = formText
		c.plainText = text
		c.expr = nil
		c.refs = nil
	}

	c.hasPriorState = true
	c.initialText = text
	return nil
}

// Clear reverts the cell to Empty, dropping its outgoing forward-reference
// edges symmetrically with Set (spec.md §4.1 and the "ClearCell and
// outgoing edges" open question in §9, resolved in favor of symmetry).
func (c *Cell) Clear() {
	c.ClearValueCache()

	for _, p := range c.refs {
		if target, _ := c.grid.GetConcreteCell(p); target != nil {
			delete(target.dependents, c.pos)
		}
	}

	c.kind = formEmpty
	c.plainText = ""
	c.formulaText = ""
	c.expr = nil
	c.refs = nil
	c.hasPriorState = true
	c.initialText = ""
}

// ClearValueCache clears this cell's cache and recurses into every
// dependent, per spec.md §4.1's cache-invalidation algorithm. Dependents
// form a DAG (invariant 2), so no visited set is required for termination.
func (c *Cell) ClearValueCache() {
	c.cache = nil
	for p := range c.dependents {
		if dep, _ := c.grid.GetConcreteCell(p); dep != nil {
			dep.ClearValueCache()
		}
	}
}

// detectCycle implements spec.md §4.1's cycle-detection algorithm: for
// each prospective forward reference, DFS the *current* graph starting at
// that referenced cell, using a visited set scoped to that single DFS.
func (c *Cell) detectCycle(refs []Position) error {
	for _, start := range refs {
		visited := make(map[Position]struct{})
		if c.reaches(start, visited) {
			return fmt.Errorf("%w: %s would depend on itself via %s", ErrCircularDependency, c.pos, start)
		}
	}
	return nil
}

// reaches reports whether a DFS starting at pos, following each visited
// cell's current forward references, reaches c.
func (c *Cell) reaches(pos Position, visited map[Position]struct{}) bool {
	if !pos.IsValid() {
		return false
	}
	cell, _ := c.grid.GetConcreteCell(pos)
	if cell == nil {
		return false
	}
	if cell == c {
		return true
	}
	if _, seen := visited[pos]; seen {
		return false
	}
	visited[pos] = struct{}{}

	for _, next := range cell.GetReferencedCells() {
		if c.reaches(next, visited) {
			return true
		}
	}
	return false
}
