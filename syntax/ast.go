package syntax

import (
	"fmt"

	"github.com/coregx/strex/charset"
)

// Op is the kind of a Node.
type Op uint8

const (
	// OpText is literal text, possibly empty (zero-width).
	OpText Op = iota + 1

	// OpCharset is exactly one character drawn from Charset.
	OpCharset

	// OpSequence is the concatenation of Sub (at least two nodes).
	OpSequence

	// OpRepeat is Sub[0] repeated between Min and Max times, both finite.
	OpRepeat

	// OpGroup is capture group number Index around Sub[0].
	OpGroup

	// OpAlternation is a choice of exactly one of Sub (at least two nodes).
	OpAlternation

	// OpBackref replays the text generated for group Index.
	OpBackref
)

// String returns the name of the op.
func (op Op) String() string {
	switch op {
	case OpText:
		return "Text"
	case OpCharset:
		return "Charset"
	case OpSequence:
		return "Sequence"
	case OpRepeat:
		return "Repeat"
	case OpGroup:
		return "Group"
	case OpAlternation:
		return "Alternation"
	case OpBackref:
		return "Backref"
	default:
		return fmt.Sprintf("Op(%d)", op)
	}
}

// Node is one node of the syntax tree. The fields used depend on Op:
//
//	OpText         Text
//	OpCharset      Charset
//	OpSequence     Sub
//	OpAlternation  Sub
//	OpRepeat       Sub[0], Min, Max
//	OpGroup        Sub[0], Index
//	OpBackref      Index (looked up in Tree.Groups, never owned)
//
// Every node owns its Sub nodes exclusively. Nodes are not modified after
// parsing.
type Node struct {
	Op    Op
	Range TextRange

	Text    string
	Charset *charset.Charset
	Sub     []*Node
	Min     int
	Max     int
	Index   int
}

// Content returns the single child of a Repeat or Group node, nil otherwise.
func (n *Node) Content() *Node {
	if (n.Op == OpRepeat || n.Op == OpGroup) && len(n.Sub) == 1 {
		return n.Sub[0]
	}
	return nil
}

// String renders the node in the debug S-expression format of Format.
func (n *Node) String() string {
	return Format(n)
}

// Tree is a parsed pattern.
type Tree struct {
	// Root is the top-level node.
	Root *Node

	// Groups holds the capture groups, group n at Groups[n-1]. Backref nodes
	// refer into it by index.
	Groups []*Node

	// Source is the pattern the tree was parsed from.
	Source string
}

// NumGroups returns the number of capture groups.
func (t *Tree) NumGroups() int {
	return len(t.Groups)
}

// Group returns capture group n (1-based), or nil if there is none.
func (t *Tree) Group(n int) *Node {
	if n < 1 || n > len(t.Groups) {
		return nil
	}
	return t.Groups[n-1]
}

// String renders the root node.
func (t *Tree) String() string {
	return Format(t.Root)
}
