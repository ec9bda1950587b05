// Package term detects whether a file descriptor is a terminal.
//
// The CLI reads patterns from stdin only when stdin is redirected; a terminal
// on stdin means the user forgot -r.
package term

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd uintptr) bool {
	return isTerminal(fd)
}
