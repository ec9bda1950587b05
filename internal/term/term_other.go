//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package term

// isTerminal has no termios to query here; input is treated as redirected.
func isTerminal(uintptr) bool {
	return false
}
