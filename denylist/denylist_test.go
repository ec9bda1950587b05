package denylist

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
)

func TestContains(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		input string
		want  bool
	}{
		{"empty list", nil, "anything", false},
		{"single hit", []string{"bad"}, "a bad word", true},
		{"single miss", []string{"bad"}, "a good word", false},
		{"single exact", []string{"bad"}, "bad", true},
		{"multi first", []string{"foo", "bar", "baz"}, "xxfooxx", true},
		{"multi last", []string{"foo", "bar", "baz"}, "xxbaz", true},
		{"multi miss", []string{"foo", "bar", "baz"}, "fo ba ba", false},
		{"multi overlap", []string{"abc", "bcd"}, "xbcdx", true},
		{"empty input", []string{"a", "b"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.words)
			assert.NilError(t, err)
			if got := l.Contains(tt.input); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewRejectsEmptyWord(t *testing.T) {
	_, err := New([]string{"ok", ""})
	assert.Assert(t, errors.Is(err, ErrEmptyWord))
	assert.ErrorContains(t, err, "index 1")
}

func TestDuplicates(t *testing.T) {
	l, err := New([]string{"x", "y", "x"})
	assert.NilError(t, err)
	assert.Equal(t, l.Len(), 2)
	if diff := cmp.Diff([]string{"x", "y"}, l.Words()); diff != "" {
		t.Errorf("Words() mismatch (-want +got):\n%s", diff)
	}
}

func TestNilList(t *testing.T) {
	var l *List
	assert.Assert(t, !l.Contains("abc"))
	assert.Equal(t, l.Len(), 0)
	assert.Assert(t, l.Words() == nil)
}
