package syntax

import "strings"

// maxFixedLen bounds the analysis so nested repeats such as ((a{1000}){1000})
// are not expanded.
const maxFixedLen = 1 << 16

// Fixed reports whether the tree can produce exactly one string, and
// returns it. Anchors and unresolved backreferences count as empty text.
//
// Examples:
//
//	"hello"       → "hello", true
//	"(ab){2}\1"   → "ababab", true
//	"a|a"         → "a", true
//	"[x]y"        → "xy", true
//	"a?"          → "", false
//	"[ab]"        → "", false
func (t *Tree) Fixed() (string, bool) {
	fx := fixer{tree: t, groups: make(map[int]string)}
	return fx.fixed(t.Root)
}

type fixer struct {
	tree   *Tree
	groups map[int]string
}

func (fx *fixer) fixed(n *Node) (string, bool) {
	if n == nil {
		return "", false
	}

	switch n.Op {
	case OpText:
		return n.Text, true

	case OpCharset:
		if n.Charset == nil {
			return "", false
		}
		switch members := n.Charset.Members(); len(members) {
		case 0:
			return "", true
		case 1:
			return members, true
		}
		return "", false

	case OpSequence:
		var b strings.Builder
		for _, sub := range n.Sub {
			s, ok := fx.fixed(sub)
			if !ok || b.Len()+len(s) > maxFixedLen {
				return "", false
			}
			b.WriteString(s)
		}
		return b.String(), true

	case OpAlternation:
		first, ok := fx.fixed(n.Sub[0])
		if !ok {
			return "", false
		}
		for _, sub := range n.Sub[1:] {
			// a group inside a branch may or may not be produced
			if s, ok := fx.fixed(sub); !ok || s != first || hasGroup(sub) {
				return "", false
			}
		}
		if hasGroup(n.Sub[0]) {
			return "", false
		}
		return first, true

	case OpRepeat:
		if n.Min != n.Max {
			return "", false
		}
		if n.Min == 0 {
			// the content is never produced, so neither are its groups
			return "", !hasGroup(n.Sub[0])
		}
		s, ok := fx.fixed(n.Sub[0])
		if !ok || len(s)*n.Min > maxFixedLen {
			return "", false
		}
		return strings.Repeat(s, n.Min), true

	case OpGroup:
		s, ok := fx.fixed(n.Sub[0])
		if ok {
			fx.groups[n.Index] = s
		}
		return s, ok

	case OpBackref:
		s, ok := fx.groups[n.Index]
		return s, ok

	default:
		return "", false
	}
}

func hasGroup(n *Node) bool {
	if n.Op == OpGroup {
		return true
	}
	for _, sub := range n.Sub {
		if hasGroup(sub) {
			return true
		}
	}
	return false
}
