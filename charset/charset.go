// Package charset provides immutable, interned character alphabets.
//
// A Charset is a sorted, deduplicated set of ASCII bytes plus an inclusive
// flag. An exclusive charset stands for every printable ASCII character that
// is not in its alphabet. Charsets are obtained from a Registry, which
// guarantees that equal (alphabet, inclusive) pairs yield the same pointer,
// so identity comparison is equality comparison.
//
// Only ASCII is modeled: the generator emits printable ASCII (0x20-0x7E), and
// the lexer rejects non-ASCII bytes inside bracket expressions.
package charset

import (
	"strconv"
	"strings"
)

// Printable ASCII bounds, inclusive.
const (
	MinPrintable = 0x20
	MaxPrintable = 0x7E
)

// bitmap is a 256-bit membership table, one bit per byte value.
type bitmap [4]uint64

func (m *bitmap) set(b byte) {
	m[b>>6] |= 1 << (b & 63)
}

func (m *bitmap) has(b byte) bool {
	return m[b>>6]&(1<<(b&63)) != 0
}

// bytes returns the members in ascending order.
func (m *bitmap) bytes() []byte {
	var out []byte
	for i := 0; i < 256; i++ {
		if m.has(byte(i)) {
			out = append(out, byte(i))
		}
	}
	return out
}

func newBitmap(alphabet string) bitmap {
	var m bitmap
	for i := 0; i < len(alphabet); i++ {
		m.set(alphabet[i])
	}
	return m
}

// Charset is an immutable character set. Obtain one from Registry.Get or the
// Registry class accessors; the zero value is an empty inclusive set.
type Charset struct {
	alphabet  string
	inclusive bool
	bits      bitmap

	// members is the concrete, printable sample space, computed once.
	members string
}

func newCharset(alphabet string, inclusive bool) *Charset {
	cs := &Charset{
		alphabet:  alphabet,
		inclusive: inclusive,
		bits:      newBitmap(alphabet),
	}
	concrete := alphabet
	if !inclusive {
		concrete = Exclude(alphabet)
	}
	cs.members = Printable(concrete)
	return cs
}

// Alphabet returns the sorted, deduplicated characters the set was built from.
func (c *Charset) Alphabet() string {
	return c.alphabet
}

// IsInclusive reports whether the set matches its alphabet (true) or the
// printable complement of it (false).
func (c *Charset) IsInclusive() bool {
	return c.inclusive
}

// Contains reports whether b belongs to the set. For an exclusive set this is
// any printable ASCII byte outside the alphabet.
func (c *Charset) Contains(b byte) bool {
	if c.inclusive {
		return c.bits.has(b)
	}
	return b >= MinPrintable && b <= MaxPrintable && !c.bits.has(b)
}

// Members returns the printable characters a generator may draw from, in
// ascending order. It may be empty.
func (c *Charset) Members() string {
	return c.members
}

// Len returns the number of printable members.
func (c *Charset) Len() int {
	return len(c.members)
}

// IsEmpty reports whether no printable character belongs to the set.
func (c *Charset) IsEmpty() bool {
	return len(c.members) == 0
}

// String returns a debug representation such as `include "0123456789"`.
func (c *Charset) String() string {
	mode := "include"
	if !c.inclusive {
		mode = "exclude"
	}
	return mode + " " + strconv.Quote(c.alphabet)
}

// Normalize sorts and deduplicates the bytes of alphabet.
func Normalize(alphabet string) string {
	m := newBitmap(alphabet)
	return string(m.bytes())
}

// Exclude returns every ASCII character (0x00-0x7F) not present in except,
// in ascending order.
func Exclude(except string) string {
	m := newBitmap(except)
	var b strings.Builder
	for i := 0; i < 128; i++ {
		if !m.has(byte(i)) {
			b.WriteByte(byte(i))
		}
	}
	return b.String()
}

// Printable returns the bytes of s within printable ASCII, preserving order.
func Printable(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if IsPrintable(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// IsPrintable reports whether b is printable ASCII (0x20-0x7E).
func IsPrintable(b byte) bool {
	return b >= MinPrintable && b <= MaxPrintable
}
