// Package syntax turns a pattern string into an abstract syntax tree.
//
// Parsing runs in two stages. The Lexer splits the pattern into Tokens,
// resolving punctuation whose meaning depends on context (inside or outside a
// bracket expression, the preceding token, how many capture groups the pattern
// declares). The Parser then builds a Tree by recursive descent, lowering
// quantifiers to bounded repeats and resolving backreferences against the
// groups parsed so far.
//
// The accepted dialect is a subset of ECMAScript regular expressions:
// literals and escapes, '.', class escapes (\d \D \s \S \w \W), bracket
// expressions with ranges and negation, capture groups, alternation,
// quantifiers (* + ? {n} {n,} {,m} {n,m}, optionally lazy) and decimal
// backreferences. Lookaround, non-capturing and named groups are rejected.
package syntax

import "fmt"

// TextRange is a half-open [Start, End) byte range in the pattern.
// End equals Start for zero-width tokens such as End.
type TextRange struct {
	Start int
	End   int
}

// Union returns the smallest range containing both r and other.
func (r TextRange) Union(other TextRange) TextRange {
	return TextRange{
		Start: min(r.Start, other.Start),
		End:   max(r.End, other.End),
	}
}

// Len returns the number of bytes covered.
func (r TextRange) Len() int {
	return r.End - r.Start
}

// String formats the range as "start..end".
func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}
