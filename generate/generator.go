// Package generate produces random strings from a parsed pattern.
//
// A Generator walks a syntax.Tree: a Text node emits its text, a Charset node
// one member chosen uniformly, a Repeat node its content a uniformly chosen
// number of times within its bounds, an Alternation node one uniformly chosen
// branch. Each Group node records the text it produced during the current
// call, and a Backref node replays it. A backreference to a group that
// produced nothing in the current call (its alternation branch was not taken,
// or its repeat ran zero times) contributes the empty string.
//
// Capture state follows ECMAScript: each pass of a repeat forgets the groups
// nested inside it before producing its content again.
package generate

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"github.com/coregx/strex/charset"
	"github.com/coregx/strex/denylist"
	"github.com/coregx/strex/internal/conv"
	"github.com/coregx/strex/internal/sparse"
	"github.com/coregx/strex/syntax"
)

// Stats tracks generation counters.
type Stats struct {
	// Generations counts Generate calls
	Generations uint64

	// Attempts counts samples drawn, including rejected ones
	Attempts uint64

	// Rejected counts samples discarded because they held an excluded word
	Rejected uint64

	// BackrefMisses counts backreferences that replayed nothing because
	// their group produced no text in the current sample
	BackrefMisses uint64
}

// Generator draws strings from one tree with one random stream.
//
// A Generator is not safe for concurrent use; create one per goroutine.
// Stats may be read from any goroutine.
type Generator struct {
	tree   *syntax.Tree
	config Config
	rng    *rand.Rand
	deny   *denylist.List

	buf  []byte
	memo []string    // memo[n-1] is the last text of group n
	done *sparse.Set // groups that produced text in the current sample

	// nested lists, for each repeat whose content declares groups, the
	// indices of those groups.
	nested map[*syntax.Node][]uint32

	stats Stats
}

// New creates a generator for tree. The tree is checked once here, so
// Generate never meets a malformed node.
func New(tree *syntax.Tree, config Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if tree == nil || tree.Root == nil {
		return nil, invalidTree("nil tree")
	}

	deny, err := denylist.New(config.Exclude)
	if err != nil {
		return nil, &ConfigError{Field: "Exclude", Message: err.Error()}
	}

	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	g := &Generator{
		tree:   tree,
		config: config,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		deny:   deny,
		memo:   make([]string, tree.NumGroups()),
		done:   sparse.New(conv.IntToUint32(tree.NumGroups() + 1)),
		nested: make(map[*syntax.Node][]uint32),
	}
	if _, err := g.check(tree.Root); err != nil {
		return nil, err
	}
	if s, ok := tree.Fixed(); ok && deny.Contains(s) {
		return nil, &Error{
			Kind:    Exhausted,
			Message: fmt.Sprintf("the only possible output %q contains an excluded word", s),
		}
	}
	return g, nil
}

// Generate returns one string matched by the pattern.
//
// When Config.Exclude is set, samples containing an excluded word are drawn
// again; after Config.MaxAttempts rejections it fails with ErrExhausted.
func (g *Generator) Generate() (string, error) {
	atomic.AddUint64(&g.stats.Generations, 1)

	for attempt := 0; attempt < g.config.MaxAttempts; attempt++ {
		atomic.AddUint64(&g.stats.Attempts, 1)

		g.buf = g.buf[:0]
		g.done.Clear()
		if err := g.emit(g.tree.Root); err != nil {
			return "", err
		}

		s := string(g.buf)
		if !g.deny.Contains(s) {
			return s, nil
		}
		atomic.AddUint64(&g.stats.Rejected, 1)
	}

	return "", &Error{
		Kind:    Exhausted,
		Message: fmt.Sprintf("all %d samples contained an excluded word", g.config.MaxAttempts),
	}
}

// GenerateN returns n strings drawn in sequence from the same stream.
func (g *Generator) GenerateN(n int) ([]string, error) {
	out := make([]string, 0, max(n, 0))
	for i := 0; i < n; i++ {
		s, err := g.Generate()
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Stats returns a snapshot of the counters.
//
// Example:
//
//	stats := gen.Stats()
//	println("samples:", stats.Attempts, "rejected:", stats.Rejected)
func (g *Generator) Stats() Stats {
	return Stats{
		Generations:   atomic.LoadUint64(&g.stats.Generations),
		Attempts:      atomic.LoadUint64(&g.stats.Attempts),
		Rejected:      atomic.LoadUint64(&g.stats.Rejected),
		BackrefMisses: atomic.LoadUint64(&g.stats.BackrefMisses),
	}
}

// ResetStats resets the counters to zero.
func (g *Generator) ResetStats() {
	atomic.StoreUint64(&g.stats.Generations, 0)
	atomic.StoreUint64(&g.stats.Attempts, 0)
	atomic.StoreUint64(&g.stats.Rejected, 0)
	atomic.StoreUint64(&g.stats.BackrefMisses, 0)
}

func (g *Generator) emit(n *syntax.Node) error {
	switch n.Op {
	case syntax.OpText:
		if !g.config.AllowUnprintable && !printable(n.Text) {
			return &Error{
				Kind:    Unprintable,
				Message: fmt.Sprintf("literal %q at %s is not printable ASCII", n.Text, n.Range),
			}
		}
		g.buf = append(g.buf, n.Text...)

	case syntax.OpCharset:
		// an empty set contributes nothing
		if members := n.Charset.Members(); len(members) > 0 {
			g.buf = append(g.buf, members[g.rng.IntN(len(members))])
		}

	case syntax.OpSequence:
		for _, sub := range n.Sub {
			if err := g.emit(sub); err != nil {
				return err
			}
		}

	case syntax.OpRepeat:
		count := n.Min + g.rng.IntN(n.Max-n.Min+1)
		groups := g.nested[n]
		for i := 0; i < count; i++ {
			for _, idx := range groups {
				g.done.Remove(idx)
			}
			if err := g.emit(n.Sub[0]); err != nil {
				return err
			}
		}

	case syntax.OpGroup:
		start := len(g.buf)
		if err := g.emit(n.Sub[0]); err != nil {
			return err
		}
		g.memo[n.Index-1] = string(g.buf[start:])
		g.done.Insert(conv.IntToUint32(n.Index))

	case syntax.OpAlternation:
		return g.emit(n.Sub[g.rng.IntN(len(n.Sub))])

	case syntax.OpBackref:
		if !g.done.Contains(conv.IntToUint32(n.Index)) {
			atomic.AddUint64(&g.stats.BackrefMisses, 1)
			return nil
		}
		g.buf = append(g.buf, g.memo[n.Index-1]...)

	default:
		return invalidTree("unknown op %s", n.Op)
	}
	return nil
}

// check validates n and its subtree and fills g.nested. It returns the
// indices of the groups declared in the subtree.
func (g *Generator) check(n *syntax.Node) ([]uint32, error) {
	if n == nil {
		return nil, invalidTree("nil node")
	}

	switch n.Op {
	case syntax.OpText:
		return nil, nil

	case syntax.OpCharset:
		if n.Charset == nil {
			return nil, invalidTree("charset node at %s has no charset", n.Range)
		}
		return nil, nil

	case syntax.OpSequence, syntax.OpAlternation:
		if n.Op == syntax.OpAlternation && len(n.Sub) < 2 {
			return nil, invalidTree("alternation at %s has %d branches", n.Range, len(n.Sub))
		}
		var groups []uint32
		for _, sub := range n.Sub {
			inner, err := g.check(sub)
			if err != nil {
				return nil, err
			}
			groups = append(groups, inner...)
		}
		return groups, nil

	case syntax.OpRepeat:
		if len(n.Sub) != 1 {
			return nil, invalidTree("repeat at %s has %d children", n.Range, len(n.Sub))
		}
		if n.Min < 0 || n.Min > n.Max {
			return nil, invalidTree("repeat at %s has bounds [%d, %d]", n.Range, n.Min, n.Max)
		}
		groups, err := g.check(n.Sub[0])
		if err != nil {
			return nil, err
		}
		if len(groups) > 0 {
			g.nested[n] = groups
		}
		return groups, nil

	case syntax.OpGroup:
		if len(n.Sub) != 1 {
			return nil, invalidTree("group at %s has %d children", n.Range, len(n.Sub))
		}
		if g.tree.Group(n.Index) != n {
			return nil, invalidTree("group %d is not registered in the tree", n.Index)
		}
		inner, err := g.check(n.Sub[0])
		if err != nil {
			return nil, err
		}
		return append(inner, conv.IntToUint32(n.Index)), nil

	case syntax.OpBackref:
		if g.tree.Group(n.Index) == nil {
			return nil, invalidTree("backreference to group %d, tree has %d groups", n.Index, g.tree.NumGroups())
		}
		return nil, nil

	default:
		return nil, invalidTree("unknown op %s", n.Op)
	}
}

func printable(s string) bool {
	for i := 0; i < len(s); i++ {
		if !charset.IsPrintable(s[i]) {
			return false
		}
	}
	return true
}
