package syntax

import (
	"fmt"
	"strconv"
)

// TokenKind identifies the lexical class of a Token.
type TokenKind uint8

const (
	// TokenCharacter is any character without special meaning, including
	// escaped metacharacters. Char holds the byte.
	TokenCharacter TokenKind = iota

	// TokenCharClass is \d \D \s \S \w \W or '.'. Char holds the class letter.
	TokenCharClass

	// TokenStar is '*' (or lazy '*?')
	TokenStar

	// TokenPlus is '+' (or lazy '+?')
	TokenPlus

	// TokenQuestion is '?' (or lazy '??')
	TokenQuestion

	// TokenRepeat is {n}, {n,}, {,m} or {n,m}. Upper is -1 when unbounded.
	TokenRepeat

	// TokenAlternation is '|'
	TokenAlternation

	// TokenWordBoundary is \b or \B outside a bracket expression
	TokenWordBoundary

	// TokenBackreference is a decimal escape naming a declared group.
	TokenBackreference

	// TokenLeftParen is '('
	TokenLeftParen

	// TokenRightParen is ')'
	TokenRightParen

	// TokenLeftBracket is '[' opening a bracket expression
	TokenLeftBracket

	// TokenRightBracket is ']' closing a bracket expression
	TokenRightBracket

	// TokenCaret is '^': negation directly after '[', an assertion elsewhere
	TokenCaret

	// TokenDollar is '$'
	TokenDollar

	// TokenHyphen is '-' used as a range operator inside a bracket expression
	TokenHyphen

	// TokenEnd terminates every token sequence
	TokenEnd
)

// String returns the name of the kind.
func (k TokenKind) String() string {
	switch k {
	case TokenCharacter:
		return "Character"
	case TokenCharClass:
		return "CharClass"
	case TokenStar:
		return "Star"
	case TokenPlus:
		return "Plus"
	case TokenQuestion:
		return "Question"
	case TokenRepeat:
		return "Repeat"
	case TokenAlternation:
		return "Alternation"
	case TokenWordBoundary:
		return "WordBoundary"
	case TokenBackreference:
		return "Backreference"
	case TokenLeftParen:
		return "LeftParen"
	case TokenRightParen:
		return "RightParen"
	case TokenLeftBracket:
		return "LeftBracket"
	case TokenRightBracket:
		return "RightBracket"
	case TokenCaret:
		return "Caret"
	case TokenDollar:
		return "Dollar"
	case TokenHyphen:
		return "Hyphen"
	case TokenEnd:
		return "End"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Token is one lexical unit of a pattern. Which payload field is meaningful
// depends on Kind:
//   - Character, CharClass: Char
//   - Repeat: Lower, Upper (Upper == -1 means unbounded)
//   - Backreference: Group
type Token struct {
	Kind  TokenKind
	Range TextRange

	Char  byte
	Lower int
	Upper int
	Group int
}

// Is reports whether the token has kind k.
func (t Token) Is(k TokenKind) bool {
	return t.Kind == k
}

// IsQuantifier reports whether the token is *, +, ? or a {..} repeat.
func (t Token) IsQuantifier() bool {
	switch t.Kind {
	case TokenStar, TokenPlus, TokenQuestion, TokenRepeat:
		return true
	}
	return false
}

// String renders the token for debugging, e.g. <Character 'a'>,
// <Repeat [1, inf)>, <Backreference 2>, <CharClass \d>.
func (t Token) String() string {
	switch t.Kind {
	case TokenCharacter:
		return fmt.Sprintf("<%s %s>", t.Kind, strconv.QuoteRune(rune(t.Char)))
	case TokenCharClass:
		if t.Char == '.' {
			return "<CharClass .>"
		}
		return fmt.Sprintf("<CharClass \\%c>", t.Char)
	case TokenRepeat:
		if t.Upper < 0 {
			return fmt.Sprintf("<Repeat [%d, inf)>", t.Lower)
		}
		return fmt.Sprintf("<Repeat [%d, %d]>", t.Lower, t.Upper)
	case TokenBackreference:
		return fmt.Sprintf("<Backreference %d>", t.Group)
	default:
		return "<" + t.Kind.String() + ">"
	}
}
