package syntax

import "fmt"

// ErrorKind classifies pattern errors.
type ErrorKind uint8

const (
	// Lexical indicates malformed token-level input: a trailing backslash,
	// an out-of-range hex escape, invalid repeat bounds, an unknown (?..)
	// extension or a non-ASCII byte inside a bracket expression.
	Lexical ErrorKind = iota

	// Unsupported indicates recognized but unsupported syntax (lookaround,
	// non-capturing and named groups). It is a kind of lexical failure.
	Unsupported

	// Grammar indicates malformed grammar: an unterminated group or bracket
	// expression, a dangling quantifier, an inverted character range or too
	// many capture groups.
	Grammar
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Unsupported:
		return "unsupported syntax"
	case Grammar:
		return "parse"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Sentinels for errors.Is. Matching compares kinds only; ErrLexical also
// matches errors of kind Unsupported.
var (
	ErrLexical     = &Error{Kind: Lexical, Message: "lexical error"}
	ErrUnsupported = &Error{Kind: Unsupported, Message: "unsupported syntax"}
	ErrParse       = &Error{Kind: Grammar, Message: "parse error"}
)

// Error is returned by Tokenize and Parse.
type Error struct {
	Kind    ErrorKind
	Message string
	Range   TextRange // where in the pattern the problem was detected
}

// Error implements the error interface
func (e *Error) Error() string {
	return "strex: " + e.Kind.String() + " error: " + e.Message
}

// Is implements error comparison for errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind == t.Kind {
		return true
	}
	return t.Kind == Lexical && e.Kind == Unsupported
}

func lexicalError(r TextRange, format string, args ...any) *Error {
	return &Error{Kind: Lexical, Message: fmt.Sprintf(format, args...), Range: r}
}

func unsupportedError(r TextRange, message string) *Error {
	return &Error{Kind: Unsupported, Message: message, Range: r}
}

func parseError(r TextRange, format string, args ...any) *Error {
	return &Error{Kind: Grammar, Message: fmt.Sprintf(format, args...), Range: r}
}
