package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGrid() *Grid {
	return NewGrid(fakeParser{})
}

func TestCell_Set_plainText(t *testing.T) {
	g := newTestGrid()
	pos := Position{Row: 0, Col: 0}

	require.NoError(t, g.SetCell(pos, "hello"))

	cell, err := g.GetCell(pos)
	require.NoError(t, err)
	require.NotNil(t, cell)
	assert.Equal(t, "hello", cell.GetText())
	assert.Equal(t, TextValue("hello"), cell.GetValue())
	assert.False(t, cell.IsEmpty())
}

func TestCell_Set_singleEqualsIsPlainText(t *testing.T) {
	g := newTestGrid()
	pos := Position{Row: 0, Col: 0}

	require.NoError(t, g.SetCell(pos, "="))

	cell, err := g.GetCell(pos)
	require.NoError(t, err)
	assert.Equal(t, "=", cell.GetText())
	assert.Equal(t, TextValue("="), cell.GetValue())
}

func TestCell_Set_leadingApostropheEscapesFormula(t *testing.T) {
	g := newTestGrid()
	pos := Position{Row: 0, Col: 0}

	require.NoError(t, g.SetCell(pos, "'=x"))

	cell, err := g.GetCell(pos)
	require.NoError(t, err)
	assert.Equal(t, "'=x", cell.GetText())
	assert.Equal(t, TextValue("=x"), cell.GetValue())
}

func TestCell_Set_sameTextIsNoop(t *testing.T) {
	g := newTestGrid()
	pos := Position{Row: 0, Col: 0}

	require.NoError(t, g.SetCell(pos, "5"))
	require.NoError(t, g.SetCell(pos, "5"))

	cell, err := g.GetCell(pos)
	require.NoError(t, err)
	assert.Equal(t, TextValue("5"), cell.GetValue())
}

func TestCell_Set_emptyStringOnFreshCellBecomesText(t *testing.T) {
	g := newTestGrid()
	pos := Position{Row: 0, Col: 0}

	require.NoError(t, g.SetCell(pos, ""))

	cell, err := g.GetConcreteCell(pos)
	require.NoError(t, err)
	require.NotNil(t, cell)
	assert.False(t, cell.IsEmpty(), "a fresh cell explicitly Set to \"\" is Text(\"\"), not Empty")
}

func TestCell_Set_emptyStringAfterClearIsNoop(t *testing.T) {
	g := newTestGrid()
	pos := Position{Row: 0, Col: 0}

	require.NoError(t, g.SetCell(pos, "5"))
	require.NoError(t, g.ClearCell(pos))
	require.NoError(t, g.SetCell(pos, ""))

	cell, err := g.GetConcreteCell(pos)
	require.NoError(t, err)
	assert.True(t, cell.IsEmpty(), "Set(\"\") on a cleared cell is a no-op, staying Empty")
}

func TestCell_formulaRecalculatesOnDependencyChange(t *testing.T) {
	g := newTestGrid()
	a1 := Position{Row: 0, Col: 0}
	a2 := Position{Row: 1, Col: 0}

	require.NoError(t, g.SetCell(a1, "2"))
	require.NoError(t, g.SetCell(a2, "=A1+3"))

	cellA2, _ := g.GetCell(a2)
	assert.Equal(t, NumberValue(5), cellA2.GetValue())

	require.NoError(t, g.SetCell(a1, "10"))
	assert.Equal(t, NumberValue(13), cellA2.GetValue())
}

func TestCell_circularDependencyIsRejected(t *testing.T) {
	g := newTestGrid()
	a1 := Position{Row: 0, Col: 0}
	b1 := Position{Row: 0, Col: 1}
	c1 := Position{Row: 0, Col: 2}

	require.NoError(t, g.SetCell(a1, "=B1"))
	require.NoError(t, g.SetCell(b1, "=C1"))

	err := g.SetCell(c1, "=A1")
	require.ErrorIs(t, err, ErrCircularDependency)

	cellC1, err := g.GetConcreteCell(c1)
	require.NoError(t, err)
	require.NotNil(t, cellC1)
	assert.Equal(t, "", cellC1.GetText())
	assert.True(t, cellC1.IsEmpty())

	cellA1, _ := g.GetCell(a1)
	cellB1, _ := g.GetCell(b1)
	assert.Equal(t, "=B1", cellA1.GetText())
	assert.Equal(t, "=C1", cellB1.GetText())
}

func TestCell_selfReferenceIsCircular(t *testing.T) {
	g := newTestGrid()
	a1 := Position{Row: 0, Col: 0}

	err := g.SetCell(a1, "=A1")
	require.ErrorIs(t, err, ErrCircularDependency)
}

func TestCell_referencingNeverSetCellTreatsItAsEmpty(t *testing.T) {
	g := newTestGrid()
	a1 := Position{Row: 0, Col: 0}
	b1 := Position{Row: 0, Col: 1}

	require.NoError(t, g.SetCell(a1, "=B1"))

	cellB1, err := g.GetCell(b1)
	require.NoError(t, err)
	assert.Nil(t, cellB1, "an auto-materialized reference target is not externally visible")

	cellA1, _ := g.GetCell(a1)
	assert.Equal(t, []Position{b1}, cellA1.GetReferencedCells())
}

func TestCell_divisionByZeroIsCachedAndReplaceable(t *testing.T) {
	g := newTestGrid()
	a1 := Position{Row: 0, Col: 0}

	require.NoError(t, g.SetCell(a1, "=1/0"))
	cell, _ := g.GetCell(a1)
	assert.Equal(t, ErrorValue(ErrorDiv0), cell.GetValue())
	assert.Equal(t, ErrorValue(ErrorDiv0), cell.GetValue(), "second read hits the memoized value")

	require.NoError(t, g.SetCell(a1, "=2"))
	assert.Equal(t, NumberValue(2), cell.GetValue())
}

func TestCell_clearDropsOutgoingEdgesSymmetricallyWithSet(t *testing.T) {
	g := newTestGrid()
	a1 := Position{Row: 0, Col: 0}
	b1 := Position{Row: 0, Col: 1}

	require.NoError(t, g.SetCell(b1, "1"))
	require.NoError(t, g.SetCell(a1, "=B1"))
	require.NoError(t, g.ClearCell(a1))

	// B1 no longer has A1 as a dependent: setting B1 again must not touch A1's cache
	// and A1 (now Empty) must be freely re-settable to something that references B1
	// without detecting a stale edge as a cycle.
	require.NoError(t, g.SetCell(a1, "=B1"))
	cellA1, _ := g.GetCell(a1)
	assert.Equal(t, NumberValue(1), cellA1.GetValue())
}
