package formula

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/berejant/gridsheet/internal/grid"
)

// ErrExpression wraps every error this package raises out of Parse.
var ErrExpression = fmt.Errorf("expression error")

// Executor implements grid.Parser using github.com/expr-lang/expr as the
// compiler and VM. It is grounded on ExpressionExecutor.go, adapted from
// string-keyed cells to grid.Position-keyed cells: reference extraction
// walks formula text for cell-reference-shaped tokens (canonicalizer.go)
// instead of introspecting compiled constants, since positions - not
// opaque cell ids - are what internal/grid needs back.
type Executor struct {
	canon   *canonicalizer
	options []expr.Option
}

// NewExecutor builds a formula executor with the max/min/sum/avg and
// external_ref builtins registered (functions.go, externalref.go).
func NewExecutor() *Executor {
	options := []expr.Option{
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
	}
	options = append(options, mathFunctions...)
	options = append(options, externalRefFunctionOption)

	return &Executor{
		canon:   newCanonicalizer(),
		options: options,
	}
}

// Parse implements grid.Parser.
func (e *Executor) Parse(source string) (grid.Expression, error) {
	canonical := e.canon.Canonicalize(strings.TrimSpace(source))

	refs, refNames, invalidRef := extractReferences(canonical)

	program, err := expr.Compile(canonical, e.options...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrExpression, source, err)
	}

	return &expression{
		canonical:  canonical,
		program:    program,
		refs:       refs,
		refNames:   refNames,
		invalidRef: invalidRef,
	}, nil
}

// extractReferences scans canonicalized formula text for cell-reference
// tokens, splitting them into resolvable positions and out-of-range
// references (which evaluate to #REF!).
func extractReferences(canonical string) (refs []grid.Position, names []string, hasInvalid bool) {
	seen := make(map[string]bool)
	for _, tok := range cellRefPattern.FindAllString(canonical, -1) {
		if seen[tok] {
			continue
		}
		seen[tok] = true

		pos, err := grid.ParsePosition(tok)
		if err != nil {
			hasInvalid = true
			continue
		}
		refs = append(refs, pos)
		names = append(names, tok)
	}
	return refs, names, hasInvalid
}

type expression struct {
	canonical  string
	program    *vm.Program
	refs       []grid.Position
	refNames   []string
	invalidRef bool
}

func (ex *expression) References() []grid.Position {
	out := make([]grid.Position, len(ex.refs))
	copy(out, ex.refs)
	return out
}

func (ex *expression) Canonical() string { return ex.canonical }

// Evaluate implements grid.Expression. lookup must be read-only, per
// spec.md §5 and grid.Expression's contract.
func (ex *expression) Evaluate(lookup func(grid.Position) grid.Value) grid.Value {
	if ex.invalidRef {
		return grid.ErrorValue(grid.ErrorRef)
	}

	env := make(map[string]any, len(ex.refs))
	for i, pos := range ex.refs {
		v := lookup(pos)
		if v.Kind == grid.ValueError {
			return v // propagate the first error found among references
		}
		if v.Kind == grid.ValueNumber {
			env[ex.refNames[i]] = v.Number
		} else if n, err := strconv.ParseFloat(v.Text, 64); err == nil {
			env[ex.refNames[i]] = n // numeric text counts as a number
		} else {
			env[ex.refNames[i]] = v.Text
		}
	}

	out, err := expr.Run(ex.program, env)
	if err != nil {
		return grid.ErrorValue(classifyRuntimeError(err))
	}

	switch n := out.(type) {
	case float64:
		switch {
		case math.IsInf(n, 0):
			return grid.ErrorValue(grid.ErrorDiv0)
		case math.IsNaN(n):
			return grid.ErrorValue(grid.ErrorValueKind)
		default:
			return grid.NumberValue(n)
		}
	case int:
		return grid.NumberValue(float64(n))
	case string:
		return grid.TextValue(n)
	case bool:
		if n {
			return grid.NumberValue(1)
		}
		return grid.NumberValue(0)
	default:
		return grid.ErrorValue(grid.ErrorValueKind)
	}
}

func classifyRuntimeError(err error) grid.ErrorKind {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "divide") || strings.Contains(msg, "division"):
		return grid.ErrorDiv0
	default:
		return grid.ErrorValueKind
	}
}
