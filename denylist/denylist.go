// Package denylist reports whether a string contains any of a fixed set of
// forbidden substrings.
//
// A single word is searched with strings.Contains. Two or more words are
// compiled into one Aho-Corasick automaton, so a check is a single pass over
// the input regardless of how many words there are.
package denylist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coregx/ahocorasick"
)

// ErrEmptyWord is returned by New when a word is the empty string, which
// would reject every input.
var ErrEmptyWord = errors.New("denylist: empty word")

// List is an immutable set of forbidden substrings. It is safe for
// concurrent use.
type List struct {
	words []string

	single    string
	automaton *ahocorasick.Automaton
}

// New builds a list from words. Duplicates are allowed. A nil or empty words
// slice yields a list that contains nothing.
func New(words []string) (*List, error) {
	l := &List{words: make([]string, 0, len(words))}
	seen := make(map[string]struct{}, len(words))
	for i, w := range words {
		if w == "" {
			return nil, fmt.Errorf("%w at index %d", ErrEmptyWord, i)
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		l.words = append(l.words, w)
	}

	switch len(l.words) {
	case 0:
	case 1:
		l.single = l.words[0]
	default:
		builder := ahocorasick.NewBuilder()
		for _, w := range l.words {
			builder.AddPattern([]byte(w))
		}
		auto, err := builder.Build()
		if err != nil {
			return nil, fmt.Errorf("denylist: build automaton: %w", err)
		}
		l.automaton = auto
	}
	return l, nil
}

// Contains reports whether s contains at least one word of the list.
func (l *List) Contains(s string) bool {
	switch {
	case l == nil || len(l.words) == 0:
		return false
	case l.automaton != nil:
		return l.automaton.IsMatch([]byte(s))
	default:
		return strings.Contains(s, l.single)
	}
}

// Len returns the number of distinct words.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.words)
}

// Words returns a copy of the distinct words in insertion order.
func (l *List) Words() []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.words...)
}
