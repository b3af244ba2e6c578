package formula

import "regexp"

// cellRefPattern matches tokens shaped like a cell reference: one or more
// letters immediately followed by one or more digits.
var cellRefPattern = regexp.MustCompile(`[A-Za-z]+[0-9]+`)

// canonicalizer normalizes formula source before it is handed to the
// compiler and before cell-reference tokens are extracted from it, so
// "=a1+B2" and "=A1+b2" compile to the same program and reference the
// same positions.
//
// Grounded on Canonicalizer.go, simplified for this domain: the teacher
// escapes punctuation (".,:;[]{}#?@\~`'") out of cell keys because its
// cell ids are arbitrary strings that could contain characters an expr
// identifier can't. Here a cell reference is always the clean
// letters-then-digits form Position.String() produces, so the only
// normalization a formula still needs is upper-casing reference tokens,
// leaving operators and other tokens untouched. The match is purely
// textual: a letters-then-digits run inside a string literal or an
// identifier is upper-cased as well.
type canonicalizer struct{}

func newCanonicalizer() *canonicalizer { return &canonicalizer{} }

func (c *canonicalizer) Canonicalize(source string) string {
	return cellRefPattern.ReplaceAllStringFunc(source, func(tok string) string {
		return upperASCII(tok)
	})
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
