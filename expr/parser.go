package expr

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// Option configures Parse.
type Option func(*parser)

// WithSymbols registers multi-character terminals, such as alias names or
// segment symbols, that must be read as one terminal. The longest registered
// symbol wins.
func WithSymbols(symbols ...string) Option {
	return func(p *parser) {
		for _, s := range symbols {
			if utf8.RuneCountInString(s) < 2 || containsMeta(s) {
				continue
			}
			p.symbols = append(p.symbols, []rune(s))
		}
	}
}

type parser struct {
	pattern string
	src     []rune
	pos     int
	symbols [][]rune
}

// Parse parses pattern into a non-capturing root sequence whose children are
// the top-level units. Node ids are assigned by RewriteIDs(root, "0").
// Any syntax error is returned as a *ParseError.
func Parse(pattern string, opts ...Option) (*Expression, error) {
	p := &parser{pattern: pattern, src: []rune(pattern)}
	for _, opt := range opts {
		opt(p)
	}
	// longest first; ties keep registration order
	slices.SortStableFunc(p.symbols, func(a, b []rune) bool { return len(a) > len(b) })

	children, err := p.parseSequence(0, -1)
	if err != nil {
		return nil, err
	}
	return RewriteIDs(Group(false, children...), "0"), nil
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string, opts ...Option) *Expression {
	e, err := Parse(pattern, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

func (p *parser) errorf(err error, from, to int) error {
	if to > len(p.src) {
		to = len(p.src)
	}
	return &ParseError{Pattern: p.pattern, Text: string(p.src[from:to]), Err: err}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune { return p.src[p.pos] }

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.pos++
	}
}

// parseSequence reads units until closer (or end of input when closer is 0).
// open is the index of the opening bracket, for error reporting.
func (p *parser) parseSequence(closer rune, open int) ([]*Expression, error) {
	var units []*Expression
	for {
		p.skipSpace()
		if p.eof() {
			if closer != 0 {
				return nil, p.errorf(ErrUnmatchedBracket, open, len(p.src))
			}
			return units, nil
		}
		c := p.peek()
		if c == closer {
			return units, nil
		}
		if c == ')' || c == '}' {
			return nil, p.errorf(ErrUnmatchedBracket, p.pos, p.pos+1)
		}
		unit, err := p.parseUnit()
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
}

// parseSet reads the branches of "{...}"; the '{' at open is already consumed.
func (p *parser) parseSet(open int) (*Expression, error) {
	var branches []*Expression
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf(ErrUnmatchedBracket, open, len(p.src))
		}
		if p.peek() == '}' {
			p.pos++
			break
		}
		var units []*Expression
		for !p.eof() && !unicode.IsSpace(p.peek()) && p.peek() != '}' {
			if p.peek() == ')' {
				return nil, p.errorf(ErrUnmatchedBracket, p.pos, p.pos+1)
			}
			unit, err := p.parseUnit()
			if err != nil {
				return nil, err
			}
			units = append(units, unit)
		}
		if len(units) == 1 {
			branches = append(branches, units[0])
		} else {
			branches = append(branches, Group(false, units...))
		}
	}
	if len(branches) == 0 {
		return nil, p.errorf(ErrEmptyGroup, open, p.pos)
	}
	return Parallel(branches...), nil
}

func (p *parser) parseUnit() (*Expression, error) {
	start := p.pos
	negative := false
	if p.peek() == '!' {
		p.pos++
		if p.eof() || unicode.IsSpace(p.peek()) || p.peek() == ')' || p.peek() == '}' {
			return nil, p.errorf(ErrDanglingNegation, start, p.pos)
		}
		switch c := p.peek(); {
		case c == '!':
			return nil, p.errorf(ErrDoubleNegation, start, p.pos+1)
		case isQuantifier(c):
			return nil, p.errorf(ErrNegatedQuantifier, start, p.pos+1)
		case c == '#':
			return nil, p.errorf(ErrNegatedBoundary, start, p.pos+1)
		}
		negative = true
	}

	var node *Expression
	switch c := p.peek(); {
	case isQuantifier(c):
		return nil, p.errorf(ErrMissingOperand, start, p.pos+1)
	case c == '(':
		open := p.pos
		p.pos++
		children, err := p.parseSequence(')', open)
		if err != nil {
			return nil, err
		}
		p.pos++ // ')'
		if len(children) == 0 {
			return nil, p.errorf(ErrEmptyGroup, open, p.pos)
		}
		node = Group(true, children...)
	case c == '{':
		open := p.pos
		p.pos++
		set, err := p.parseSet(open)
		if err != nil {
			return nil, err
		}
		node = set
	case c == '.':
		p.pos++
		node = Terminal(DotTerminal)
	case c == '#':
		p.pos++
		node = Terminal(BoundaryTerminal)
	default:
		node = Terminal(p.literal())
	}

	if !p.eof() && isQuantifier(p.peek()) {
		if node.IsBoundary() {
			return nil, p.errorf(ErrQuantifierAfterBoundary, start, p.pos+1)
		}
		node = node.WithQuantifier(Quantifier(p.peek()))
		p.pos++
		if !p.eof() && isQuantifier(p.peek()) {
			return nil, p.errorf(ErrStackedQuantifier, start, p.pos+1)
		}
	}
	if negative {
		node = node.WithNegative(true)
	}
	return node, nil
}

// literal reads one terminal: a registered symbol, or a character followed by
// any combining marks and modifier letters. A symbol must end on a cluster
// boundary, so "tsʰ" is never read as "ts" followed by a bare "ʰ".
func (p *parser) literal() string {
	for _, sym := range p.symbols {
		end := p.pos + len(sym)
		if end > len(p.src) || !slices.Equal(p.src[p.pos:end], sym) {
			continue
		}
		if end < len(p.src) && isModifier(p.src[end]) {
			continue
		}
		p.pos = end
		return string(sym)
	}
	start := p.pos
	p.pos++
	for !p.eof() && isModifier(p.peek()) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func isQuantifier(r rune) bool {
	return r == '?' || r == '*' || r == '+'
}

func isMeta(r rune) bool {
	switch r {
	case '!', '?', '*', '+', '(', ')', '{', '}', '.', '#':
		return true
	}
	return unicode.IsSpace(r)
}

func containsMeta(s string) bool {
	for _, r := range s {
		if isMeta(r) {
			return true
		}
	}
	return false
}

// isModifier reports whether r attaches to the preceding character.
func isModifier(r rune) bool {
	return !isMeta(r) && unicode.In(r, unicode.Mn, unicode.Me, unicode.Lm)
}

// Clusters splits s into the terminals Parse would read from it when no
// symbols are registered: each character with its trailing modifiers.
func Clusters(s string) []string {
	src := []rune(s)
	var out []string
	for i := 0; i < len(src); {
		j := i + 1
		for j < len(src) && isModifier(src[j]) {
			j++
		}
		out = append(out, string(src[i:j]))
		i = j
	}
	return out
}
