// Command strex prints random strings matched by a regular expression.
//
//	strex -r '[a-z]{4}\d{2}' -n 5
//	printf '%s\n' 'a|b' '(x)\1' | strex -n 3
//
// Without -r, each non-empty line of redirected stdin is a pattern.
// The exit code is 0 on success, 1 if any pattern failed, 2 on usage errors.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/coregx/strex"
	"github.com/coregx/strex/internal/term"
	"github.com/coregx/strex/syntax"
)

const usageLine = "usage: strex -r <pattern> [-n N] [-seed S] [-max-repeat K] [-exclude W]... [-ast] [-stats]"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, term.IsTerminal(os.Stdin.Fd()), os.Stdout, os.Stderr))
}

// stringList collects a repeatable string flag.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type options struct {
	pattern   string
	count     int
	seed      uint64
	maxRepeat int
	exclude   stringList
	ast       bool
	stats     bool
}

func run(args []string, stdin io.Reader, stdinIsTerminal bool, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("strex", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.pattern, "r", "", "pattern to generate from")
	fs.StringVar(&opts.pattern, "regex", "", "same as -r")
	fs.IntVar(&opts.count, "n", 1, "number of strings per pattern")
	fs.IntVar(&opts.count, "number", 1, "same as -n")
	fs.Uint64Var(&opts.seed, "seed", 0, "random seed (0 picks one)")
	fs.IntVar(&opts.maxRepeat, "max-repeat", syntax.DefaultConfig().MaxRepeat, "extra repetitions allowed for *, + and {n,}")
	fs.Var(&opts.exclude, "exclude", "substring the output must not contain (repeatable)")
	fs.BoolVar(&opts.ast, "ast", false, "print the parsed tree instead of samples")
	fs.BoolVar(&opts.stats, "stats", false, "log generator counters to stderr")
	fs.Usage = func() {
		fmt.Fprintln(stderr, usageLine)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected argument %q\n", fs.Arg(0))
		fs.Usage()
		return 2
	}
	if opts.count < 1 {
		fmt.Fprintln(stderr, "-n must be at least 1")
		fs.Usage()
		return 2
	}

	config := strex.DefaultConfig()
	config.Syntax.MaxRepeat = opts.maxRepeat
	config.Generate.Seed = opts.seed
	config.Generate.Exclude = opts.exclude
	compiler, err := strex.NewCompiler(config)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	c := &cli{
		opts:     opts,
		compiler: compiler,
		stdout:   stdout,
		stderr:   stderr,
		logger:   log.New(stderr, "strex: ", 0),
		styles:   newStyles(stderr),
	}

	switch {
	case opts.pattern != "":
		c.process(opts.pattern)
	case !stdinIsTerminal:
		if err := c.processLines(stdin); err != nil {
			c.logger.Printf("reading stdin: %v", err)
			return 1
		}
	default:
		fs.Usage()
		return 2
	}

	if c.failed {
		fmt.Fprintln(stderr, usageLine)
		return 1
	}
	return 0
}

type cli struct {
	opts     options
	compiler *strex.Compiler
	stdout   io.Writer
	stderr   io.Writer
	logger   *log.Logger
	styles   styles
	failed   bool
}

func (c *cli) processLines(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			continue
		}
		c.process(line)
	}
	return sc.Err()
}

func (c *cli) process(pattern string) {
	p, err := c.compiler.Parse(pattern)
	if err != nil {
		c.report(pattern, err)
		return
	}

	if c.opts.ast {
		fmt.Fprintln(c.stdout, p.Tree())
		return
	}

	gen, err := p.NewGenerator()
	if err != nil {
		c.report(pattern, err)
		return
	}
	for i := 0; i < c.opts.count; i++ {
		s, err := gen.Generate()
		if err != nil {
			c.report(pattern, err)
			break
		}
		fmt.Fprintln(c.stdout, s)
	}

	if c.opts.stats {
		st := gen.Stats()
		c.logger.Printf("%s: generations=%d attempts=%d rejected=%d backref_misses=%d",
			pattern, st.Generations, st.Attempts, st.Rejected, st.BackrefMisses)
	}
}

// report prints err, and for syntax errors the pattern with the offending
// range underlined.
func (c *cli) report(pattern string, err error) {
	c.failed = true
	fmt.Fprintln(c.stderr, c.styles.label.Render("error:")+" "+c.styles.message.Render(err.Error()))

	var serr *syntax.Error
	if !errors.As(err, &serr) {
		return
	}
	start := min(max(serr.Range.Start, 0), len(pattern))
	end := min(max(serr.Range.End, start), len(pattern))
	width := max(end-start, 1)

	fmt.Fprintln(c.stderr, "  "+pattern[:start]+c.styles.highlight.Render(pattern[start:end])+pattern[end:])
	fmt.Fprintln(c.stderr, "  "+strings.Repeat(" ", start)+c.styles.marker.Render(strings.Repeat("^", width)))
}

type styles struct {
	label     lipgloss.Style
	message   lipgloss.Style
	highlight lipgloss.Style
	marker    lipgloss.Style
}

// newStyles binds the styles to w, so color is used only when w is a
// color-capable terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	red := lipgloss.Color("9")
	return styles{
		label:     r.NewStyle().Bold(true).Foreground(red),
		message:   r.NewStyle(),
		highlight: r.NewStyle().Underline(true).Foreground(red),
		marker:    r.NewStyle().Foreground(red),
	}
}
