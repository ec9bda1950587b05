package generate

import "fmt"

// ErrExhausted indicates that every sample drawn in one Generate call
// contained an excluded word.
var ErrExhausted = &Error{
	Kind:    Exhausted,
	Message: "no sample avoided the excluded words",
}

// ErrUnprintable indicates literal pattern text outside printable ASCII
// while Config.AllowUnprintable is false.
var ErrUnprintable = &Error{
	Kind:    Unprintable,
	Message: "literal text is not printable",
}

// ErrInvalidTree indicates a tree the generator cannot walk, such as a
// backreference to a group the tree does not contain. Trees built by
// syntax.Parse never produce it.
var ErrInvalidTree = &Error{
	Kind:    InvalidTree,
	Message: "invalid syntax tree",
}

// ErrorKind classifies generation errors.
type ErrorKind uint8

const (
	// Exhausted indicates MaxAttempts samples were all rejected
	Exhausted ErrorKind = iota

	// Unprintable indicates literal text outside printable ASCII
	Unprintable

	// InvalidTree indicates a malformed tree
	InvalidTree
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case Exhausted:
		return "Exhausted"
	case Unprintable:
		return "Unprintable"
	case InvalidTree:
		return "InvalidTree"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error is returned by New and Generate.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("strex: generate: %s: %v", e.Message, e.Cause)
	}
	return "strex: generate: " + e.Message
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func invalidTree(format string, args ...any) *Error {
	return &Error{Kind: InvalidTree, Message: fmt.Sprintf(format, args...)}
}
