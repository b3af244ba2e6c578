package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berejant/gridsheet/internal/grid"
)

func evalWith(t *testing.T, source string, values map[grid.Position]grid.Value) grid.Value {
	t.Helper()
	exec := NewExecutor()
	expr, err := exec.Parse(source)
	require.NoError(t, err)
	return expr.Evaluate(func(p grid.Position) grid.Value {
		if v, ok := values[p]; ok {
			return v
		}
		return grid.TextValue("")
	})
}

func TestExecutor_arithmetic(t *testing.T) {
	v := evalWith(t, "1 + 2 * 3", nil)
	assert.Equal(t, grid.NumberValue(7), v)
}

func TestExecutor_lowercaseCellReferenceIsCanonicalized(t *testing.T) {
	a1 := grid.Position{Row: 0, Col: 0}
	v := evalWith(t, "a1 + 1", map[grid.Position]grid.Value{a1: grid.NumberValue(4)})
	assert.Equal(t, grid.NumberValue(5), v)
}

func TestExecutor_referencesExposesUpperCasedPositions(t *testing.T) {
	exec := NewExecutor()
	expr, err := exec.Parse("a1 + b2")
	require.NoError(t, err)

	refs := expr.References()
	assert.ElementsMatch(t, []grid.Position{
		{Row: 0, Col: 0},
		{Row: 1, Col: 1},
	}, refs)
	assert.Equal(t, "A1 + B2", expr.Canonical())
}

func TestExecutor_divisionByZeroYieldsDiv0(t *testing.T) {
	v := evalWith(t, "1 / 0", nil)
	assert.Equal(t, grid.ErrorValue(grid.ErrorDiv0), v)
}

func TestExecutor_sumFunction(t *testing.T) {
	a1 := grid.Position{Row: 0, Col: 0}
	a2 := grid.Position{Row: 1, Col: 0}
	v := evalWith(t, "sum(A1, A2, 10)", map[grid.Position]grid.Value{
		a1: grid.NumberValue(1),
		a2: grid.NumberValue(2),
	})
	assert.Equal(t, grid.NumberValue(13), v)
}

func TestExecutor_maxMinAvgFunctions(t *testing.T) {
	assert.Equal(t, grid.NumberValue(3), evalWith(t, "max(1, 3, 2)", nil))
	assert.Equal(t, grid.NumberValue(1), evalWith(t, "min(1, 3, 2)", nil))
	assert.Equal(t, grid.NumberValue(2), evalWith(t, "avg(1, 2, 3)", nil))
}

func TestExecutor_referenceHoldingErrorPropagates(t *testing.T) {
	a1 := grid.Position{Row: 0, Col: 0}
	v := evalWith(t, "A1 + 1", map[grid.Position]grid.Value{
		a1: grid.ErrorValue(grid.ErrorRef),
	})
	assert.Equal(t, grid.ErrorValue(grid.ErrorRef), v)
}

func TestExecutor_stringConcatenation(t *testing.T) {
	v := evalWith(t, `"foo" + "bar"`, nil)
	assert.Equal(t, grid.TextValue("foobar"), v)
}

func TestExecutor_parseErrorIsWrapped(t *testing.T) {
	exec := NewExecutor()
	_, err := exec.Parse("1 +")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpression)
}
