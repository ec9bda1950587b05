package charset

import "sync"

// Class alphabets.
const (
	DigitChars = "0123456789"
	UpperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowerChars = "abcdefghijklmnopqrstuvwxyz"
	WordChars  = DigitChars + UpperChars + LowerChars + "_"
	SpaceChars = " \t\n\v\f\r"
)

// anyChars is ASCII 0x00-0x7E, the alphabet of '.'.
var anyChars = func() string {
	b := make([]byte, 0x7F)
	for i := range b {
		b[i] = byte(i)
	}
	return string(b)
}()

type key struct {
	alphabet  string
	inclusive bool
}

// Registry interns charsets. Two calls to Get with alphabets that normalize to
// the same string and the same inclusive flag return the same *Charset.
//
// A Registry is safe for concurrent use. Its lifetime is that of its owner
// (normally a strex.Compiler); there is no process-wide table.
type Registry struct {
	mu   sync.Mutex
	sets map[key]*Charset
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sets: make(map[key]*Charset)}
}

// Get returns the interned charset for alphabet (in any order, duplicates
// allowed) and the inclusive flag, creating it on first request.
func (r *Registry) Get(alphabet string, inclusive bool) *Charset {
	k := key{alphabet: Normalize(alphabet), inclusive: inclusive}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cs, ok := r.sets[k]; ok {
		return cs
	}
	cs := newCharset(k.alphabet, k.inclusive)
	r.sets[k] = cs
	return cs
}

// Len returns the number of distinct charsets interned so far.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sets)
}

// Digit returns \d.
func (r *Registry) Digit() *Charset { return r.Get(DigitChars, true) }

// NonDigit returns \D.
func (r *Registry) NonDigit() *Charset { return r.Get(DigitChars, false) }

// Word returns \w.
func (r *Registry) Word() *Charset { return r.Get(WordChars, true) }

// NonWord returns \W.
func (r *Registry) NonWord() *Charset { return r.Get(WordChars, false) }

// Space returns \s.
func (r *Registry) Space() *Charset { return r.Get(SpaceChars, true) }

// NonSpace returns \S.
func (r *Registry) NonSpace() *Charset { return r.Get(SpaceChars, false) }

// Any returns the set matched by '.'.
func (r *Registry) Any() *Charset { return r.Get(anyChars, true) }

// FromClass maps a class letter (d, D, s, S, w, W or '.') to its charset.
// ok is false for any other byte.
func (r *Registry) FromClass(class byte) (cs *Charset, ok bool) {
	switch class {
	case 'd':
		return r.Digit(), true
	case 'D':
		return r.NonDigit(), true
	case 's':
		return r.Space(), true
	case 'S':
		return r.NonSpace(), true
	case 'w':
		return r.Word(), true
	case 'W':
		return r.NonWord(), true
	case '.':
		return r.Any(), true
	default:
		return nil, false
	}
}

// Expand returns the concrete ASCII alphabet a charset covers: the alphabet
// itself when inclusive, its ASCII complement otherwise. The parser uses it to
// merge class escapes into bracket expressions.
func Expand(cs *Charset) string {
	if cs.IsInclusive() {
		return cs.Alphabet()
	}
	return Exclude(cs.Alphabet())
}
