package syntax

import (
	"strconv"

	"github.com/coregx/strex/internal/conv"
)

// Lexer splits a pattern into tokens.
//
// Most punctuation is overloaded, so the lexer tracks whether it is inside a
// bracket expression and looks at the previous token. Decimal escapes depend
// on how many capture groups the whole pattern declares, which is why
// Tokenize first runs a counting pass (countGroups) over the raw pattern.
type Lexer struct {
	pattern string
	config  Config

	pos       int  // next byte to read
	start     int  // first byte of the token being scanned
	inCharset bool // inside [...]
	groups    int  // capture groups declared anywhere in the pattern

	tokens []Token
}

// NewLexer creates a lexer for pattern.
func NewLexer(pattern string, config Config) *Lexer {
	return &Lexer{pattern: pattern, config: config}
}

// Tokenize lexes pattern with the default configuration.
func Tokenize(pattern string) ([]Token, error) {
	return NewLexer(pattern, DefaultConfig()).Tokenize()
}

// Tokenize returns every token of the pattern. The last token is always
// TokenEnd. It may be called more than once; each call starts over.
func (l *Lexer) Tokenize() ([]Token, error) {
	l.groups = countGroups(l.pattern)
	l.pos = 0
	l.start = 0
	l.inCharset = false
	l.tokens = make([]Token, 0, len(l.pattern)+1)

	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
		if tok.Kind == TokenEnd {
			return l.tokens, nil
		}
	}
}

// GroupCount returns the number of capture groups found by the counting pass
// of the last Tokenize call.
func (l *Lexer) GroupCount() int {
	return l.groups
}

// countGroups counts the capture groups a pattern declares: every '(' that is
// not escaped, not inside a bracket expression and not followed by '?'.
// Bracket expressions are tracked with the same first-element rule for ']'
// as the main pass.
func countGroups(pattern string) int {
	n := 0
	inCharset := false
	atStart := false // the next byte is the first element of a bracket expression

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		first := atStart
		atStart = false

		switch {
		case c == '\\':
			i++
		case inCharset:
			if c == '^' && first && pattern[i-1] == '[' {
				atStart = true
			} else if c == ']' && !first {
				inCharset = false
			}
		case c == '[':
			inCharset = true
			atStart = true
		case c == '(':
			if i+1 >= len(pattern) || pattern[i+1] != '?' {
				n++
			}
		}
	}
	return n
}

func (l *Lexer) next() (Token, error) {
	l.start = l.pos
	if l.atEnd() {
		return l.make(TokenEnd), nil
	}

	ch := l.advance()
	switch ch {
	case '\\':
		return l.escape()
	case '[':
		return l.leftBracket(), nil
	case ']':
		return l.rightBracket(), nil
	case '(':
		return l.punct(TokenLeftParen, ch), nil
	case ')':
		return l.punct(TokenRightParen, ch), nil
	case '{':
		return l.leftBrace()
	case '*':
		return l.quantifier(TokenStar, ch), nil
	case '+':
		return l.quantifier(TokenPlus, ch), nil
	case '?':
		return l.question()
	case '|':
		return l.punct(TokenAlternation, ch), nil
	case '-':
		return l.hyphen(), nil
	case '.':
		if l.inCharset {
			return l.char('.'), nil
		}
		return l.charClass('.'), nil
	case '^':
		return l.caret(), nil
	case '$':
		return l.punct(TokenDollar, ch), nil
	default:
		return l.character(ch)
	}
}

// punct returns kind outside a bracket expression and a literal inside one.
func (l *Lexer) punct(kind TokenKind, ch byte) Token {
	if l.inCharset {
		return l.char(ch)
	}
	return l.make(kind)
}

func (l *Lexer) leftBracket() Token {
	if l.inCharset {
		return l.char('[')
	}
	l.inCharset = true
	return l.make(TokenLeftBracket)
}

func (l *Lexer) rightBracket() Token {
	if !l.inCharset || l.atCharsetStart() {
		return l.char(']')
	}
	l.inCharset = false
	return l.make(TokenRightBracket)
}

func (l *Lexer) hyphen() Token {
	if !l.inCharset || l.atCharsetStart() {
		return l.char('-')
	}
	if !l.atEnd() && l.peek() == ']' {
		return l.char('-')
	}
	return l.make(TokenHyphen)
}

func (l *Lexer) caret() Token {
	if l.inCharset && !l.prevIs(TokenLeftBracket) {
		return l.char('^')
	}
	return l.make(TokenCaret)
}

// quantifier handles '*' and '+'. A trailing '?' (lazy) is consumed; it does
// not change what is generated.
func (l *Lexer) quantifier(kind TokenKind, ch byte) Token {
	if l.inCharset {
		return l.char(ch)
	}
	l.skipLazy()
	return l.make(kind)
}

func (l *Lexer) question() (Token, error) {
	if l.inCharset {
		return l.char('?'), nil
	}
	if l.prevIs(TokenLeftParen) {
		return Token{}, l.extension()
	}
	l.skipLazy()
	return l.make(TokenQuestion), nil
}

func (l *Lexer) skipLazy() {
	if !l.atEnd() && l.peek() == '?' {
		l.advance()
	}
}

// extension reports the error for a "(?" construct. None is supported.
func (l *Lexer) extension() error {
	if l.atEnd() {
		return lexicalError(l.rangeSoFar(), "unknown extension '?'")
	}
	ext := l.advance()
	switch ext {
	case ':':
		return unsupportedError(l.rangeSoFar(), "non-capture group is not supported")
	case '=':
		return unsupportedError(l.rangeSoFar(), "positive lookahead is not supported")
	case '!':
		return unsupportedError(l.rangeSoFar(), "negative lookahead is not supported")
	case '<':
		if l.atEnd() {
			return lexicalError(l.rangeSoFar(), "unknown extension '?<'")
		}
		next := l.advance()
		switch {
		case next == '=':
			return unsupportedError(l.rangeSoFar(), "positive lookbehind is not supported")
		case next == '!':
			return unsupportedError(l.rangeSoFar(), "negative lookbehind is not supported")
		case isIdentStart(next):
			return unsupportedError(l.rangeSoFar(), "named capture group is not supported")
		}
		return lexicalError(l.rangeSoFar(), "unknown extension '?<%c'", next)
	default:
		return lexicalError(l.rangeSoFar(), "unknown extension '?%c'", ext)
	}
}

func (l *Lexer) leftBrace() (Token, error) {
	if l.inCharset {
		return l.char('{'), nil
	}
	tok, err := l.repeat()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind == TokenRepeat {
		l.skipLazy()
		tok.Range = l.rangeSoFar()
	}
	return tok, nil
}

// repeat scans {n}, {n,}, {,m} or {n,m} after the '{'. Anything else makes
// the '{' a literal and scanning resumes right after it.
func (l *Lexer) repeat() (Token, error) {
	save := l.pos
	literal := func() (Token, error) {
		l.pos = save
		return l.char('{'), nil
	}

	lowerDigits := l.digits()
	if l.atEnd() {
		return literal()
	}

	switch l.advance() {
	case '}':
		if lowerDigits == "" {
			return literal()
		}
		n, err := l.repeatCount(lowerDigits)
		if err != nil {
			return Token{}, err
		}
		return l.repeatToken(n, n), nil

	case ',':
		upperDigits := l.digits()
		if l.atEnd() || l.peek() != '}' {
			return literal()
		}
		l.advance()
		if lowerDigits == "" && upperDigits == "" {
			return literal()
		}

		lower, upper := 0, -1
		var err error
		if lowerDigits != "" {
			if lower, err = l.repeatCount(lowerDigits); err != nil {
				return Token{}, err
			}
		}
		if upperDigits != "" {
			if upper, err = l.repeatCount(upperDigits); err != nil {
				return Token{}, err
			}
			if lower > upper {
				return Token{}, lexicalError(l.rangeSoFar(),
					"invalid repeat quantifier: lower bound %d is greater than upper bound %d",
					lower, upper)
			}
		}
		return l.repeatToken(lower, upper), nil

	default:
		return literal()
	}
}

func (l *Lexer) repeatCount(digits string) (int, error) {
	n, err := strconv.Atoi(digits)
	if err != nil || n > l.config.MaxRepeatCount {
		return 0, lexicalError(l.rangeSoFar(), "repeat count too large: %s", digits)
	}
	return n, nil
}

func (l *Lexer) digits() string {
	begin := l.pos
	for !l.atEnd() && isDigit(l.peek()) {
		l.pos++
	}
	return l.pattern[begin:l.pos]
}

func (l *Lexer) escape() (Token, error) {
	if l.atEnd() {
		return Token{}, lexicalError(l.rangeSoFar(), "pattern may not end with a trailing backslash")
	}

	ch := l.advance()
	switch ch {
	case 'd', 'D', 's', 'S', 'w', 'W':
		return l.charClass(ch), nil
	case 'b':
		if l.inCharset {
			return l.char('\b'), nil
		}
		return l.make(TokenWordBoundary), nil
	case 'B':
		if l.inCharset {
			return l.char('B'), nil
		}
		return l.make(TokenWordBoundary), nil
	case 'f':
		return l.char('\f'), nil
	case 'n':
		return l.char('\n'), nil
	case 'r':
		return l.char('\r'), nil
	case 't':
		return l.char('\t'), nil
	case 'v':
		return l.char('\v'), nil
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return l.decimalEscape(ch), nil
	case 'x':
		return l.hexEscape('x', 2)
	case 'u':
		return l.hexEscape('u', 4)
	default:
		// identity escape: \( \$ \\ \. ...
		return l.character(ch)
	}
}

// decimalEscape resolves \<digits>. A value naming a declared group is a
// backreference, extended greedily (up to three digits) while it still names
// a declared group. Otherwise the longest octal prefix (at most three digits,
// value at most 255) is a character, and a non-octal digit is itself.
// Bracket expressions have no backreferences.
func (l *Lexer) decimalEscape(first byte) Token {
	d := int(first - '0')

	if d == 0 && (l.atEnd() || !isDigit(l.peek())) {
		return l.char(0)
	}

	if d != 0 && !l.inCharset && d <= l.groups {
		n := d
		for i := 0; i < 2 && !l.atEnd() && isDigit(l.peek()); i++ {
			next := n*10 + int(l.peek()-'0')
			if next > l.groups {
				break
			}
			n = next
			l.advance()
		}
		return Token{Kind: TokenBackreference, Range: l.rangeSoFar(), Group: n}
	}

	if !isOctal(first) {
		return l.char(first)
	}

	v := d
	for i := 0; i < 2 && !l.atEnd() && isOctal(l.peek()); i++ {
		next := v*8 + int(l.peek()-'0')
		if next > 0xFF {
			break
		}
		v = next
		l.advance()
	}
	return l.char(conv.IntToByte(v))
}

// hexEscape reads exactly width hex digits after \x or \u. If they are not
// all present, the letter is taken literally and the input is restored.
func (l *Lexer) hexEscape(letter byte, width int) (Token, error) {
	save := l.pos
	v := 0
	for i := 0; i < width; i++ {
		if l.atEnd() || !isHex(l.peek()) {
			l.pos = save
			return l.char(letter), nil
		}
		v = v*16 + hexValue(l.advance())
	}
	if v > 0xFF {
		return Token{}, lexicalError(l.rangeSoFar(), "unsupported hex value 0x%x", v)
	}
	return l.char(conv.IntToByte(v)), nil
}

// character validates a plain pattern byte.
func (l *Lexer) character(ch byte) (Token, error) {
	if l.inCharset && ch >= 0x80 {
		return Token{}, lexicalError(l.rangeSoFar(), "non-ascii character in charset is not supported")
	}
	return l.char(ch), nil
}

// atCharsetStart reports whether the token being scanned is the first
// element of a bracket expression, i.e. it follows '[' or '[^'.
func (l *Lexer) atCharsetStart() bool {
	n := len(l.tokens)
	if n == 0 || !l.inCharset {
		return false
	}
	if l.tokens[n-1].Kind == TokenLeftBracket {
		return true
	}
	return n >= 2 && l.tokens[n-1].Kind == TokenCaret && l.tokens[n-2].Kind == TokenLeftBracket
}

func (l *Lexer) prevIs(kind TokenKind) bool {
	n := len(l.tokens)
	return n > 0 && l.tokens[n-1].Kind == kind
}

func (l *Lexer) make(kind TokenKind) Token {
	return Token{Kind: kind, Range: l.rangeSoFar()}
}

func (l *Lexer) char(ch byte) Token {
	return Token{Kind: TokenCharacter, Range: l.rangeSoFar(), Char: ch}
}

func (l *Lexer) charClass(class byte) Token {
	return Token{Kind: TokenCharClass, Range: l.rangeSoFar(), Char: class}
}

func (l *Lexer) repeatToken(lower, upper int) Token {
	return Token{Kind: TokenRepeat, Range: l.rangeSoFar(), Lower: lower, Upper: upper}
}

func (l *Lexer) rangeSoFar() TextRange {
	return TextRange{Start: l.start, End: l.pos}
}

func (l *Lexer) peek() byte {
	return l.pattern[l.pos]
}

func (l *Lexer) advance() byte {
	ch := l.pattern[l.pos]
	l.pos++
	return ch
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.pattern)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) int {
	switch {
	case isDigit(c):
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
