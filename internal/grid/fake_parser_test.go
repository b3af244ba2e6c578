package grid

import (
	"strconv"
	"strings"
)

// fakeParser is a deliberately tiny Parser used only by this package's own
// tests, standing in for internal/formula so internal/grid's tests never
// import the formula package (spec.md §1: the core must work against any
// conforming parser). It understands a term list joined by '+' or a single
// "a/b" division, where each term is either a bare number or a bare cell
// reference such as "A1". A referenced cell whose value is numeric text
// counts as that number.
type fakeParser struct{}

func (fakeParser) Parse(source string) (Expression, error) {
	source = strings.TrimSpace(source)

	if lhs, rhs, ok := strings.Cut(source, "/"); ok {
		return &fakeExpr{kind: "div", terms: []string{strings.TrimSpace(lhs), strings.TrimSpace(rhs)}}, nil
	}

	parts := strings.Split(source, "+")
	terms := make([]string, len(parts))
	for i, p := range parts {
		terms[i] = strings.TrimSpace(p)
	}
	return &fakeExpr{kind: "sum", terms: terms}, nil
}

type fakeExpr struct {
	kind  string
	terms []string
}

func (e *fakeExpr) References() []Position {
	var refs []Position
	for _, t := range e.terms {
		if pos, err := ParsePosition(t); err == nil {
			refs = append(refs, pos)
		}
	}
	return refs
}

func (e *fakeExpr) Canonical() string {
	return strings.Join(e.terms, map[string]string{"sum": "+", "div": "/"}[e.kind])
}

func (e *fakeExpr) resolve(term string, lookup func(Position) Value) Value {
	if pos, err := ParsePosition(term); err == nil {
		v := lookup(pos)
		if v.Kind == ValueText {
			if n, err := strconv.ParseFloat(v.Text, 64); err == nil {
				return NumberValue(n)
			}
		}
		return v
	}
	n, err := strconv.ParseFloat(term, 64)
	if err != nil {
		return ErrorValue(ErrorValueKind)
	}
	return NumberValue(n)
}

func (e *fakeExpr) Evaluate(lookup func(Position) Value) Value {
	values := make([]Value, len(e.terms))
	for i, t := range e.terms {
		v := e.resolve(t, lookup)
		if v.Kind == ValueError {
			return v
		}
		if v.Kind != ValueNumber {
			return ErrorValue(ErrorValueKind)
		}
		values[i] = v
	}

	switch e.kind {
	case "div":
		if values[1].Number == 0 {
			return ErrorValue(ErrorDiv0)
		}
		return NumberValue(values[0].Number / values[1].Number)
	default:
		sum := 0.0
		for _, v := range values {
			sum += v.Number
		}
		return NumberValue(sum)
	}
}
