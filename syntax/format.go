package syntax

import (
	"strconv"
	"strings"
)

// Format renders a node as an S-expression for debugging and tests:
//
//	(text "a")
//	(charset include "abc")
//	(sequence (text "a"), (text "b"))
//	(repeat (text "a") [0, 3])
//	(group (text "a"))
//	(alter (text "a") | (text "b"))
//	(backref 1)
func Format(n *Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	if n == nil {
		b.WriteString("(nil)")
		return
	}

	switch n.Op {
	case OpText:
		b.WriteString("(text ")
		b.WriteString(strconv.Quote(n.Text))
		b.WriteByte(')')

	case OpCharset:
		b.WriteString("(charset ")
		if n.Charset != nil {
			b.WriteString(n.Charset.String())
		}
		b.WriteByte(')')

	case OpSequence:
		writeList(b, "sequence", ", ", n.Sub)

	case OpAlternation:
		writeList(b, "alter", " | ", n.Sub)

	case OpRepeat:
		b.WriteString("(repeat ")
		writeNode(b, n.Content())
		b.WriteString(" [")
		b.WriteString(strconv.Itoa(n.Min))
		b.WriteString(", ")
		b.WriteString(strconv.Itoa(n.Max))
		b.WriteString("])")

	case OpGroup:
		b.WriteString("(group ")
		writeNode(b, n.Content())
		b.WriteByte(')')

	case OpBackref:
		b.WriteString("(backref ")
		b.WriteString(strconv.Itoa(n.Index))
		b.WriteByte(')')

	default:
		b.WriteString("(" + n.Op.String() + ")")
	}
}

func writeList(b *strings.Builder, name, sep string, nodes []*Node) {
	b.WriteByte('(')
	b.WriteString(name)
	b.WriteByte(' ')
	for i, sub := range nodes {
		if i > 0 {
			b.WriteString(sep)
		}
		writeNode(b, sub)
	}
	b.WriteByte(')')
}
