package syntax

import "github.com/coregx/strex/charset"

// Parser builds a Tree from a token sequence by recursive descent:
//
//	Pattern      := Alternation
//	Alternation  := Sequence ('|' Sequence)*
//	Sequence     := Term*
//	Term         := Atom Quantifier?
//	Atom         := Character | CharClass | '(' Alternation ')'
//	              | '[' CharsetBody ']' | Backreference
//
// Unbounded quantifiers are capped with Config.MaxRepeat, so every Repeat in
// the tree has a finite upper bound.
//
// The anchors ^ and $ are accepted only where every generated string
// satisfies them: ^ before the first term of a top-level branch, $ after its
// last. Word boundaries and anchors anywhere else are rejected.
type Parser struct {
	tokens   []Token
	pos      int
	registry *charset.Registry
	config   Config
	depth    int // group nesting

	// groups is the group arena: group n at groups[n-1], nil until its ')'
	// has been consumed.
	groups []*Node
}

// Parse parses pattern with the default configuration. Charsets are interned
// in registry.
func Parse(pattern string, registry *charset.Registry) (*Tree, error) {
	return ParseWithConfig(pattern, registry, DefaultConfig())
}

// ParseWithConfig parses pattern with a custom configuration.
func ParseWithConfig(pattern string, registry *charset.Registry, config Config) (*Tree, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	tokens, err := NewLexer(pattern, config).Tokenize()
	if err != nil {
		return nil, err
	}

	tree, err := ParseTokens(tokens, registry, config)
	if err != nil {
		return nil, err
	}
	tree.Source = pattern
	return tree, nil
}

// ParseTokens parses a token sequence produced by a Lexer. The sequence must
// end with TokenEnd. A nil registry gets a private one.
func ParseTokens(tokens []Token, registry *charset.Registry, config Config) (*Tree, error) {
	if len(tokens) == 0 || !tokens[len(tokens)-1].Is(TokenEnd) {
		return nil, parseError(TextRange{}, "invalid regex")
	}
	if registry == nil {
		registry = charset.NewRegistry()
	}

	p := &Parser{
		tokens:   tokens,
		registry: registry,
		config:   config,
	}
	return p.parse()
}

func (p *Parser) parse() (*Tree, error) {
	root, err := p.alternation()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); !tok.Is(TokenEnd) {
		if tok.IsQuantifier() {
			return nil, parseError(tok.Range, "the preceding token is not quantifiable")
		}
		return nil, parseError(tok.Range, "invalid regex")
	}

	return &Tree{Root: root, Groups: p.groups}, nil
}

func (p *Parser) alternation() (*Node, error) {
	first, err := p.sequence()
	if err != nil {
		return nil, err
	}
	if !p.peek().Is(TokenAlternation) {
		return first, nil
	}

	branches := []*Node{first}
	for p.peek().Is(TokenAlternation) {
		p.advance()
		next, err := p.sequence()
		if err != nil {
			return nil, err
		}
		branches = append(branches, next)
	}

	return &Node{
		Op:    OpAlternation,
		Sub:   branches,
		Range: first.Range.Union(branches[len(branches)-1].Range),
	}, nil
}

func (p *Parser) sequence() (*Node, error) {
	start := p.peek().Range.Start
	var terms []*Node
	leading := true

loop:
	for {
		var (
			term *Node
			err  error
		)
		switch tok := p.peek(); tok.Kind {
		case TokenEnd, TokenAlternation, TokenRightParen:
			break loop
		case TokenCaret, TokenDollar:
			term, err = p.anchor(leading)
			leading = leading && tok.Is(TokenCaret)
		default:
			term, err = p.term()
			leading = false
		}
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}

	switch len(terms) {
	case 0:
		return &Node{Op: OpText, Range: TextRange{Start: start, End: start}}, nil
	case 1:
		return terms[0], nil
	default:
		return &Node{
			Op:    OpSequence,
			Sub:   terms,
			Range: terms[0].Range.Union(terms[len(terms)-1].Range),
		}, nil
	}
}

func (p *Parser) term() (*Node, error) {
	atom, err := p.atom()
	if err != nil {
		return nil, err
	}
	if !p.peek().IsQuantifier() {
		return atom, nil
	}

	q := p.advance()
	k := p.config.MaxRepeat
	var lower, upper int
	switch q.Kind {
	case TokenStar:
		lower, upper = 0, k
	case TokenPlus:
		lower, upper = 1, max(1, k)
	case TokenQuestion:
		lower, upper = 0, 1
	case TokenRepeat:
		lower, upper = q.Lower, q.Upper
		if upper < 0 {
			upper = lower + k
		}
	}

	if next := p.peek(); next.IsQuantifier() {
		return nil, parseError(next.Range, "the preceding token is not quantifiable")
	}

	return &Node{
		Op:    OpRepeat,
		Sub:   []*Node{atom},
		Min:   lower,
		Max:   upper,
		Range: atom.Range.Union(q.Range),
	}, nil
}

func (p *Parser) atom() (*Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokenCharacter:
		p.advance()
		return &Node{Op: OpText, Text: string([]byte{tok.Char}), Range: tok.Range}, nil

	case TokenCharClass:
		p.advance()
		cs, ok := p.registry.FromClass(tok.Char)
		if !ok {
			return nil, parseError(tok.Range, "invalid regex")
		}
		return &Node{Op: OpCharset, Charset: cs, Range: tok.Range}, nil

	case TokenLeftParen:
		return p.group()

	case TokenLeftBracket:
		return p.charset()

	case TokenBackreference:
		p.advance()
		return p.backref(tok), nil

	case TokenStar, TokenPlus, TokenQuestion, TokenRepeat:
		return nil, parseError(tok.Range, "the preceding token is not quantifiable")

	default:
		return nil, parseError(tok.Range, "invalid regex")
	}
}

// anchor parses ^ or $ as empty text. leading reports whether only anchors
// precede it in the current branch.
func (p *Parser) anchor(leading bool) (*Node, error) {
	tok := p.advance()
	if next := p.peek(); next.IsQuantifier() {
		return nil, parseError(next.Range, "the preceding token is not quantifiable")
	}

	ok := false
	if p.depth == 0 {
		switch tok.Kind {
		case TokenCaret:
			ok = leading
		case TokenDollar:
			ok = p.atBranchEnd()
		}
	}
	if !ok {
		return nil, parseError(tok.Range, "invalid regex")
	}
	return &Node{Op: OpText, Range: tok.Range}, nil
}

// atBranchEnd reports whether only $ anchors remain before the end of the
// current branch.
func (p *Parser) atBranchEnd() bool {
	i := 0
	for p.peekAt(i).Is(TokenDollar) {
		i++
	}
	switch p.peekAt(i).Kind {
	case TokenEnd, TokenAlternation:
		return true
	}
	return false
}

func (p *Parser) group() (*Node, error) {
	open := p.advance()

	index := len(p.groups) + 1
	if index > p.config.MaxGroups {
		return nil, parseError(open.Range, "group number reaches limit %d", p.config.MaxGroups)
	}
	p.groups = append(p.groups, nil)

	p.depth++
	content, err := p.alternation()
	p.depth--
	if err != nil {
		return nil, err
	}
	if !p.peek().Is(TokenRightParen) {
		return nil, parseError(open.Range.Union(p.peek().Range), "expect ')' to complete group")
	}
	closing := p.advance()

	node := &Node{
		Op:    OpGroup,
		Sub:   []*Node{content},
		Index: index,
		Range: open.Range.Union(closing.Range),
	}
	p.groups[index-1] = node
	return node, nil
}

// backref resolves a backreference against the groups closed so far. A
// reference to a group that is still open or not yet seen matches nothing.
func (p *Parser) backref(tok Token) *Node {
	n := tok.Group
	if n >= 1 && n <= len(p.groups) && p.groups[n-1] != nil {
		return &Node{Op: OpBackref, Index: n, Range: tok.Range}
	}
	return &Node{Op: OpText, Range: tok.Range}
}

// charset parses a bracket expression. Negation is applied here, so the
// resulting node always holds an inclusive charset.
func (p *Parser) charset() (*Node, error) {
	open := p.advance()

	negated := false
	if p.peek().Is(TokenCaret) {
		p.advance()
		negated = true
	}

	var alphabet []byte
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenRightBracket:
			closing := p.advance()
			set := string(alphabet)
			if negated {
				set = charset.Exclude(set)
			}
			return &Node{
				Op:      OpCharset,
				Charset: p.registry.Get(set, true),
				Range:   open.Range.Union(closing.Range),
			}, nil

		case TokenEnd:
			return nil, parseError(open.Range.Union(tok.Range), "expect ']' to close character set")

		case TokenCharClass:
			p.advance()
			cs, ok := p.registry.FromClass(tok.Char)
			if !ok {
				return nil, parseError(tok.Range, "invalid regex")
			}
			alphabet = append(alphabet, charset.Expand(cs)...)

		case TokenCharacter:
			p.advance()
			if !p.peek().Is(TokenHyphen) || !p.peekAt(1).Is(TokenCharacter) {
				alphabet = append(alphabet, tok.Char)
				continue
			}
			p.advance()
			hi := p.advance()
			lo := tok.Char
			if lo > hi.Char {
				return nil, parseError(tok.Range.Union(hi.Range),
					"invalid character range: %c-%c (%02x-%02x)", lo, hi.Char, lo, hi.Char)
			}
			for c := int(lo); c <= int(hi.Char); c++ {
				alphabet = append(alphabet, byte(c))
			}

		case TokenHyphen:
			// a hyphen next to a class escape, as in [\d-x]
			p.advance()
			alphabet = append(alphabet, '-')

		default:
			return nil, parseError(tok.Range, "invalid regex")
		}
	}
}

func (p *Parser) peek() Token {
	return p.peekAt(0)
}

// peekAt returns the token i positions ahead, or the final End token.
func (p *Parser) peekAt(i int) Token {
	if p.pos+i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+i]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}
