package grid

import "strconv"

// ErrorKind is an opaque formula-error tag surfaced by the evaluator and
// propagated, never interpreted, by the core (spec.md §3, §7 category 2).
type ErrorKind uint8

const (
	ErrorNone ErrorKind = iota
	ErrorRef
	ErrorValueKind
	ErrorDiv0
)

// String renders the short textual tag used by PrintValues, e.g. "#REF!".
func (k ErrorKind) String() string {
	switch k {
	case ErrorRef:
		return "#REF!"
	case ErrorValueKind:
		return "#VALUE!"
	case ErrorDiv0:
		return "#DIV/0!"
	default:
		return "#ERROR!"
	}
}

// ValueKind discriminates the Value tagged union.
type ValueKind uint8

const (
	ValueNumber ValueKind = iota
	ValueText
	ValueError
)

// Value is the tagged union {Number, Text, Error} of spec.md §3.
type Value struct {
	Kind   ValueKind
	Number float64
	Text   string
	Err    ErrorKind
}

// NumberValue builds a Value holding a number.
func NumberValue(n float64) Value { return Value{Kind: ValueNumber, Number: n} }

// TextValue builds a Value holding text.
func TextValue(s string) Value { return Value{Kind: ValueText, Text: s} }

// ErrorValue builds a Value holding a formula-error tag.
func ErrorValue(k ErrorKind) Value { return Value{Kind: ValueError, Err: k} }

// String renders the value the way PrintValues does: numbers via the
// host's default double formatting, text verbatim, errors as their tag.
func (v Value) String() string {
	switch v.Kind {
	case ValueNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case ValueError:
		return v.Err.String()
	default:
		return v.Text
	}
}
