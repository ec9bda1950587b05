package syntax

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/strex/charset"
	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"", `(text "")`},
		{"a", `(text "a")`},
		{"ab", `(sequence (text "a"), (text "b"))`},
		{"a|b|c", `(alter (text "a") | (text "b") | (text "c"))`},
		{"a|", `(alter (text "a") | (text ""))`},
		{"|", `(alter (text "") | (text ""))`},
		{"a*", `(repeat (text "a") [0, 3])`},
		{"a+", `(repeat (text "a") [1, 3])`},
		{"a?", `(repeat (text "a") [0, 1])`},
		{"a*?", `(repeat (text "a") [0, 3])`},
		{"a{2}", `(repeat (text "a") [2, 2])`},
		{"a{2,}", `(repeat (text "a") [2, 5])`},
		{"a{,4}", `(repeat (text "a") [0, 4])`},
		{"a{4,8}", `(repeat (text "a") [4, 8])`},
		{"(a)", `(group (text "a"))`},
		{"()", `(group (text ""))`},
		{`(a)\1`, `(sequence (group (text "a")), (backref 1))`},
		{`(a\1)`, `(group (sequence (text "a"), (text "")))`},
		{`\1\2(a)`, `(sequence (text ""), (text "\x02"), (group (text "a")))`},
		{`(a)\1*`, `(sequence (group (text "a")), (repeat (backref 1) [0, 3]))`},
		{"^a$", `(sequence (text ""), (text "a"), (text ""))`},
		{`\bx\B`, `(sequence (text ""), (text "x"), (text ""))`},
		{`\d`, `(charset include "0123456789")`},
		{`\D`, `(charset exclude "0123456789")`},
		{"[abc]", `(charset include "abc")`},
		{"[cba]", `(charset include "abc")`},
		{"[a-c]", `(charset include "abc")`},
		{"[a-cb]", `(charset include "abc")`},
		{"[-a]", `(charset include "-a")`},
		{"[a-]", `(charset include "-a")`},
		{"[]a]", `(charset include "]a")`},
		{`[\d]`, `(charset include "0123456789")`},
		{`[^\D]`, `(charset include "0123456789")`},
		{`[a-\d]`, `(charset include "-0123456789a")`},
		{`[\b]`, `(charset include "\b")`},
		{"a[bc]*", `(sequence (text "a"), (repeat (charset include "bc") [0, 3]))`},
		{"(a|b)c", `(sequence (group (alter (text "a") | (text "b"))), (text "c"))`},
		{"a{}", `(sequence (text "a"), (text "{"), (text "}"))`},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tree, err := Parse(tt.pattern, charset.NewRegistry())
			assert.NilError(t, err)
			if got := tree.String(); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.pattern, got, tt.want)
			}
			assert.Equal(t, tree.Source, tt.pattern)
		})
	}
}

func TestParseNegatedCharset(t *testing.T) {
	tree, err := Parse("[^a-z]", charset.NewRegistry())
	assert.NilError(t, err)

	root := tree.Root
	assert.Equal(t, root.Op, OpCharset)
	assert.Assert(t, root.Charset.IsInclusive())
	for c := byte('a'); c <= 'z'; c++ {
		assert.Assert(t, !root.Charset.Contains(c), "negated set contains %q", c)
	}
	assert.Assert(t, root.Charset.Contains('A'))
	assert.Assert(t, root.Charset.Contains('0'))
	assert.Assert(t, !strings.ContainsAny(root.Charset.Members(), "abcxyz"))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		pattern string
		lexical bool
		message string
	}{
		{"a{1,2}{3,4}", false, "the preceding token is not quantifiable"},
		{"a**", false, "the preceding token is not quantifiable"},
		{"*a", false, "the preceding token is not quantifiable"},
		{"a|*", false, "the preceding token is not quantifiable"},
		{"(*)", false, "the preceding token is not quantifiable"},
		{"^*", false, "the preceding token is not quantifiable"},
		{"$*", false, "the preceding token is not quantifiable"},
		{"((a)", false, "expect ')' to complete group"},
		{"(a", false, "expect ')' to complete group"},
		{"a)", false, "invalid regex"},
		{"())", false, "invalid regex"},
		{"[a", false, "expect ']' to close character set"},
		{"[]", false, "expect ']' to close character set"},
		{"[^", false, "expect ']' to close character set"},
		{"[z-a]", false, "invalid character range: z-a (7a-61)"},
		{"a{2,1}", true, "lower bound 2 is greater than upper bound 1"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Parse(tt.pattern, charset.NewRegistry())
			assert.ErrorContains(t, err, tt.message)
			assert.Equal(t, errors.Is(err, ErrLexical), tt.lexical)
			assert.Equal(t, errors.Is(err, ErrParse), !tt.lexical)
		})
	}
}

func TestParseGroupLimit(t *testing.T) {
	registry := charset.NewRegistry()

	tree, err := Parse(strings.Repeat("(a)", 255), registry)
	assert.NilError(t, err)
	assert.Equal(t, tree.NumGroups(), 255)

	_, err = Parse(strings.Repeat("(a)", 256), registry)
	assert.ErrorContains(t, err, "group number reaches limit 255")
	assert.Assert(t, errors.Is(err, ErrParse))

	config := DefaultConfig().WithMaxGroups(2)
	_, err = ParseWithConfig("(a)(b)(c)", registry, config)
	assert.ErrorContains(t, err, "group number reaches limit 2")
}

func TestParseGroupNumbering(t *testing.T) {
	tree, err := Parse("((a)b)(c)", charset.NewRegistry())
	assert.NilError(t, err)
	assert.Equal(t, tree.NumGroups(), 3)

	want := []string{
		`(group (sequence (group (text "a")), (text "b")))`,
		`(group (text "a"))`,
		`(group (text "c"))`,
	}
	for i, w := range want {
		g := tree.Group(i + 1)
		assert.Equal(t, g.Op, OpGroup)
		assert.Equal(t, g.Index, i+1)
		assert.Equal(t, g.String(), w)
	}
	assert.Assert(t, tree.Group(0) == nil)
	assert.Assert(t, tree.Group(4) == nil)
}

func TestParseBackrefResolution(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		// self reference inside the group being defined
		{`(a\1)`, `(group (sequence (text "a"), (text "")))`},
		// forward reference
		{`\2(a)(b)`, `(sequence (text ""), (group (text "a")), (group (text "b")))`},
		// outer group still open
		{`((a)\1\2)`, `(group (sequence (group (text "a")), (text ""), (backref 2)))`},
		{`(a)(b)\2\1`, `(sequence (group (text "a")), (group (text "b")), (backref 2), (backref 1))`},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tree, err := Parse(tt.pattern, charset.NewRegistry())
			assert.NilError(t, err)
			assert.Equal(t, tree.String(), tt.want)
		})
	}
}

func TestParseMaxRepeat(t *testing.T) {
	config := DefaultConfig().WithMaxRepeat(5)
	tree, err := ParseWithConfig("a*b+c{2,}", charset.NewRegistry(), config)
	assert.NilError(t, err)
	assert.Equal(t, tree.String(),
		`(sequence (repeat (text "a") [0, 5]), (repeat (text "b") [1, 5]), (repeat (text "c") [2, 7]))`)
}

func TestParseZeroMaxRepeatKeepsBoundsOrdered(t *testing.T) {
	config := DefaultConfig().WithMaxRepeat(0)
	tree, err := ParseWithConfig("a*b+c{2,}d?(e|f)+", charset.NewRegistry(), config)
	assert.NilError(t, err)
	assert.Equal(t, tree.String(),
		`(sequence (repeat (text "a") [0, 0]), (repeat (text "b") [1, 1]), (repeat (text "c") [2, 2]), `+
			`(repeat (text "d") [0, 1]), (repeat (group (alter (text "e") | (text "f"))) [1, 1]))`)

	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Op == OpRepeat {
			assert.Assert(t, 0 <= n.Min && n.Min <= n.Max, "repeat at %s has bounds [%d, %d]", n.Range, n.Min, n.Max)
		}
		for _, sub := range n.Sub {
			walk(sub)
		}
	}
	walk(tree.Root)
}

func TestParseAnchors(t *testing.T) {
	accepted := []struct {
		pattern string
		want    string
	}{
		{"^a", `(sequence (text ""), (text "a"))`},
		{"a$", `(sequence (text "a"), (text ""))`},
		{"^$", `(sequence (text ""), (text ""))`},
		{"^^a$$", `(sequence (text ""), (text ""), (text "a"), (text ""), (text ""))`},
		{"^a|b$", `(alter (sequence (text ""), (text "a")) | (sequence (text "b"), (text "")))`},
		{"a|^|$", `(alter (text "a") | (text "") | (text ""))`},
	}
	for _, tt := range accepted {
		t.Run(tt.pattern, func(t *testing.T) {
			tree, err := Parse(tt.pattern, charset.NewRegistry())
			assert.NilError(t, err)
			assert.Equal(t, tree.String(), tt.want)
		})
	}

	rejected := []string{
		"a^b",
		"a$b",
		"$a",
		"a^",
		"$^",
		"(^a)",
		"(a$)",
		"x(a|^b)",
		`ab`,
		`\Ba`,
		`a`,
		`+`,
	}
	for _, pattern := range rejected {
		t.Run(pattern, func(t *testing.T) {
			_, err := Parse(pattern, charset.NewRegistry())
			assert.ErrorContains(t, err, "invalid regex")
			assert.Assert(t, errors.Is(err, ErrParse))
		})
	}
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, Lexical.String(), "lexical")
	assert.Equal(t, Unsupported.String(), "unsupported syntax")
	assert.Equal(t, Grammar.String(), "parse")
	assert.Equal(t, ErrorKind(9).String(), "UnknownErrorKind(9)")

	_, err := Parse("(a", charset.NewRegistry())
	var serr *Error
	assert.Assert(t, errors.As(err, &serr))
	assert.Equal(t, serr.Kind, Grammar)
}

func TestParseInvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.MaxRepeat = -1

	_, err := ParseWithConfig("a", charset.NewRegistry(), config)
	var cerr *ConfigError
	assert.Assert(t, errors.As(err, &cerr))
	assert.Equal(t, cerr.Field, "MaxRepeat")
}

func TestParseInternsCharsets(t *testing.T) {
	registry := charset.NewRegistry()
	tree, err := Parse(`[ab]|[ba]|[a-b]`, registry)
	assert.NilError(t, err)

	alts := tree.Root.Sub
	assert.Equal(t, len(alts), 3)
	assert.Assert(t, alts[0].Charset == alts[1].Charset)
	assert.Assert(t, alts[1].Charset == alts[2].Charset)

	other, err := Parse(`[ab]`, registry)
	assert.NilError(t, err)
	assert.Assert(t, other.Root.Charset == alts[0].Charset)
}

func TestParseNilRegistry(t *testing.T) {
	tree, err := Parse(`\w`, nil)
	assert.NilError(t, err)
	assert.Equal(t, tree.Root.Charset.Alphabet(), charset.WordChars[:10]+charset.UpperChars+"_"+charset.LowerChars)
}

func TestParseRanges(t *testing.T) {
	tree, err := Parse("x(ab)*[cd]", charset.NewRegistry())
	assert.NilError(t, err)

	seq := tree.Root
	got := []TextRange{seq.Range}
	for _, sub := range seq.Sub {
		got = append(got, sub.Range)
	}
	want := []TextRange{{0, 10}, {0, 1}, {1, 6}, {6, 10}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ranges mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTokensRequiresEnd(t *testing.T) {
	_, err := ParseTokens(nil, nil, DefaultConfig())
	assert.ErrorContains(t, err, "invalid regex")

	_, err = ParseTokens([]Token{{Kind: TokenCharacter, Char: 'a'}}, nil, DefaultConfig())
	assert.ErrorContains(t, err, "invalid regex")
}

func TestOpString(t *testing.T) {
	assert.Equal(t, OpAlternation.String(), "Alternation")
	assert.Equal(t, Op(0).String(), "Op(0)")
}

func TestTextRange(t *testing.T) {
	r := TextRange{2, 4}.Union(TextRange{1, 3})
	assert.Equal(t, r, TextRange{1, 4})
	assert.Equal(t, r.Len(), 3)
	assert.Equal(t, r.String(), "1..4")
}
