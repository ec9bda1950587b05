// Package strex generates random strings that match a regular expression.
//
// Patterns use a subset of ECMAScript syntax: literals and escapes, '.',
// class escapes (\d \D \s \S \w \W), bracket expressions, capture groups,
// alternation, quantifiers and decimal backreferences. Lookaround,
// non-capturing and named groups are rejected.
//
// Basic usage:
//
//	p, err := strex.Parse(`[a-z]{3,8}@example\.(com|org)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s, err := p.Generate()
//	fmt.Println(s) // e.g. "qzkf@example.org"
//
// Unbounded quantifiers are capped so generation terminates: * produces 0 to
// 3 repetitions, + 1 to 3 and {n,} n to n+3 by default (see
// syntax.Config.MaxRepeat). The generated language is therefore a finite
// subset of the pattern's language, and every output is matched by the
// pattern. Characters drawn from classes and sets are printable ASCII.
//
// Advanced usage:
//
//	config := strex.DefaultConfig()
//	config.Syntax.MaxRepeat = 10
//	config.Generate.Seed = 42
//	config.Generate.Exclude = []string{"root", "admin"}
//	c, err := strex.NewCompiler(config)
//	p, err := c.Parse(`\w{4,}`)
//
// Limitations:
//   - The anchors ^ and $ are accepted only at the start and end of a
//     top-level alternative; \b, \B and other anchor placements are rejected.
//   - A backreference to a group whose alternation branch was not taken
//     produces the empty string.
//   - Lazy quantifiers generate like greedy ones.
package strex

import (
	"errors"
	"fmt"

	"github.com/coregx/strex/charset"
	"github.com/coregx/strex/generate"
	"github.com/coregx/strex/syntax"
)

// Error sentinels, for errors.Is.
var (
	ErrLexical     = syntax.ErrLexical
	ErrUnsupported = syntax.ErrUnsupported
	ErrParse       = syntax.ErrParse
	ErrExhausted   = generate.ErrExhausted
	ErrUnprintable = generate.ErrUnprintable
)

// Config combines parsing and generation settings.
type Config struct {
	Syntax   syntax.Config
	Generate generate.Config
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Syntax:   syntax.DefaultConfig(),
		Generate: generate.DefaultConfig(),
	}
}

// Validate checks both sections.
func (c Config) Validate() error {
	if err := c.Syntax.Validate(); err != nil {
		return newConfigError("Syntax", err)
	}
	if err := c.Generate.Validate(); err != nil {
		return newConfigError("Generate", err)
	}
	return nil
}

// ConfigError reports an invalid field, named with its section, e.g.
// "Syntax.MaxRepeat".
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "strex: invalid config: " + e.Field + ": " + e.Message
}

// Unwrap returns the section's own error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

func newConfigError(section string, err error) *ConfigError {
	var serr *syntax.ConfigError
	if errors.As(err, &serr) {
		return &ConfigError{Field: section + "." + serr.Field, Message: serr.Message, Err: err}
	}
	var gerr *generate.ConfigError
	if errors.As(err, &gerr) {
		return &ConfigError{Field: section + "." + gerr.Field, Message: gerr.Message, Err: err}
	}
	return &ConfigError{Field: section, Message: err.Error(), Err: err}
}

// Compiler parses patterns with one configuration and one charset registry.
// Patterns parsed by the same Compiler share interned charsets.
//
// A Compiler is safe for concurrent use.
type Compiler struct {
	config   Config
	registry *charset.Registry
}

// NewCompiler validates config and returns a Compiler with a fresh registry.
func NewCompiler(config Config) (*Compiler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Compiler{
		config:   config,
		registry: charset.NewRegistry(),
	}, nil
}

// Parse parses a pattern.
func (c *Compiler) Parse(pattern string) (*Pattern, error) {
	tree, err := syntax.ParseWithConfig(pattern, c.registry, c.config.Syntax)
	if err != nil {
		return nil, err
	}
	return &Pattern{
		source: pattern,
		tree:   tree,
		config: c.config.Generate,
	}, nil
}

// MustParse is like Parse but panics if the pattern cannot be parsed.
func (c *Compiler) MustParse(pattern string) *Pattern {
	p, err := c.Parse(pattern)
	if err != nil {
		panic("strex: Parse(`" + pattern + "`): " + err.Error())
	}
	return p
}

// Registry returns the charset registry shared by this Compiler's patterns.
func (c *Compiler) Registry() *charset.Registry {
	return c.registry
}

// Config returns the Compiler's configuration.
func (c *Compiler) Config() Config {
	return c.config
}

// Parse parses a pattern with the default configuration.
//
// Example:
//
//	p, err := strex.Parse(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Parse(pattern string) (*Pattern, error) {
	return ParseWithConfig(pattern, DefaultConfig())
}

// ParseWithConfig parses a pattern with a custom configuration.
func ParseWithConfig(pattern string, config Config) (*Pattern, error) {
	c, err := NewCompiler(config)
	if err != nil {
		return nil, err
	}
	return c.Parse(pattern)
}

// MustParse parses a pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var phone = strex.MustParse(`\+1 \d{3}-\d{3}-\d{4}`)
func MustParse(pattern string) *Pattern {
	p, err := Parse(pattern)
	if err != nil {
		panic("strex: Parse(`" + pattern + "`): " + err.Error())
	}
	return p
}

// Generate parses pattern and returns one matching string.
func Generate(pattern string) (string, error) {
	p, err := Parse(pattern)
	if err != nil {
		return "", err
	}
	return p.Generate()
}

// Pattern is a parsed pattern.
//
// A Pattern is immutable and safe to use concurrently from multiple
// goroutines.
type Pattern struct {
	source string
	tree   *syntax.Tree
	config generate.Config
}

// Generate returns one string matched by the pattern. Each call uses a new
// generator, so with a non-zero Seed every call returns the same string; use
// NewGenerator to draw a sequence from one seed.
func (p *Pattern) Generate() (string, error) {
	g, err := p.NewGenerator()
	if err != nil {
		return "", err
	}
	return g.Generate()
}

// GenerateN returns n strings drawn from one generator.
func (p *Pattern) GenerateN(n int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("strex: GenerateN: negative count %d", n)
	}
	g, err := p.NewGenerator()
	if err != nil {
		return nil, err
	}
	return g.GenerateN(n)
}

// NewGenerator returns a generator for repeated draws. The generator is not
// safe for concurrent use.
func (p *Pattern) NewGenerator() (*generate.Generator, error) {
	return generate.New(p.tree, p.config)
}

// String returns the source text of the pattern.
func (p *Pattern) String() string {
	return p.source
}

// Tree returns the parsed tree. It must not be modified.
func (p *Pattern) Tree() *syntax.Tree {
	return p.tree
}

// NumGroups returns the number of capture groups.
func (p *Pattern) NumGroups() int {
	return p.tree.NumGroups()
}
