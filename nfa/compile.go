package nfa

import (
	"fmt"

	"github.com/coregx/seqmatch/expr"
	"github.com/coregx/seqmatch/token"
)

// Direction selects which way a pattern reads its input.
type Direction uint8

const (
	// Forward matches left to right
	Forward Direction = iota

	// Backward reverses the pattern and every literal in it; the caller
	// supplies reversed input and start offsets counted from its end
	Backward
)

// String returns a human-readable representation of the Direction
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Unknown(%d)", d)
	}
}

// CompilerConfig configures compilation behavior
type CompilerConfig struct {
	// Direction of the compiled machine
	Direction Direction

	// MaxRecursionDepth limits unit nesting (groups, sets, negations)
	// Default: 100
	MaxRecursionDepth int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		Direction:         Forward,
		MaxRecursionDepth: 100,
	}
}

// Compiler compiles patterns into machines over one token domain.
// A Compiler is not safe for concurrent use; the machines it returns are.
type Compiler[T, I any] struct {
	config CompilerConfig
	domain token.Domain[T, I]
	depth  int // current recursion depth
}

// NewCompiler creates a new compiler for domain with the given configuration
func NewCompiler[T, I any](domain token.Domain[T, I], config CompilerConfig) *Compiler[T, I] {
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = 100
	}
	return &Compiler[T, I]{
		config: config,
		domain: domain,
	}
}

// NewDefaultCompiler creates a new compiler with default configuration
func NewDefaultCompiler[T, I any](domain token.Domain[T, I]) *Compiler[T, I] {
	return NewCompiler(domain, DefaultCompilerConfig())
}

// Parse parses pattern with the domain's symbols registered.
func (c *Compiler[T, I]) Parse(pattern string) (*expr.Expression, error) {
	return expr.Parse(pattern, expr.WithSymbols(c.symbols()...))
}

func (c *Compiler[T, I]) symbols() []string {
	syms := c.domain.Symbols()
	return append(syms[:len(syms):len(syms)], c.domain.Aliases().Names()...)
}

// Compile parses pattern and compiles it into a Standard machine (or an Empty
// one for a pattern with no units).
func (c *Compiler[T, I]) Compile(id, pattern string) (*Machine[T, I], error) {
	e, err := c.Parse(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	m, err := c.CompileExpression(id, e)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return m, nil
}

// CompileNegative parses pattern and compiles it into a Negative machine that
// accepts any input of the pattern's shape that the pattern itself rejects.
func (c *Compiler[T, I]) CompileNegative(id, pattern string) (*Machine[T, I], error) {
	e, err := c.Parse(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	c.depth = 0
	units := c.units(e)
	if len(units) == 0 {
		return newEmpty(id, c.domain), nil
	}
	m, err := c.compileNegative(id, units)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return m, nil
}

// CompileExpression compiles a parsed expression.
func (c *Compiler[T, I]) CompileExpression(id string, e *expr.Expression) (*Machine[T, I], error) {
	c.depth = 0
	units := c.units(e)
	if len(units) == 0 {
		return newEmpty(id, c.domain), nil
	}
	return c.compileStandard(id, units)
}

// units returns the top-level unit list of e in compile order.
func (c *Compiler[T, I]) units(e *expr.Expression) []*expr.Expression {
	if c.config.Direction == Backward {
		e = expr.RewriteIDs(e.Reverse(), e.ID())
	}
	if e.IsTerminal() && e.Terminal() == "" {
		return nil
	}
	plain := !e.IsTerminal() && !e.IsParallel() && !e.IsCapturing() &&
		!e.IsNegative() && e.Quantifier() == expr.QuantNone
	if plain {
		return e.Children()
	}
	return []*expr.Expression{e}
}

// Label resolves terminal text into an arc label: the wildcard, the boundary
// anchor, an alias with its alternatives, or a literal token.
func (c *Compiler[T, I]) Label(terminal string) (token.Label[T], error) {
	switch terminal {
	case expr.DotTerminal:
		return token.Dot[T](), nil
	case expr.BoundaryTerminal:
		return token.Boundary[T](), nil
	}
	if alts, ok := c.domain.Aliases().Lookup(terminal); ok {
		toks := make([]T, 0, len(alts))
		for _, alt := range alts {
			tok, err := c.transform(alt)
			if err != nil {
				return token.Label[T]{}, fmt.Errorf("alias %q: %w", terminal, err)
			}
			toks = append(toks, tok)
		}
		return token.Alias(terminal, toks), nil
	}
	tok, err := c.transform(terminal)
	if err != nil {
		return token.Label[T]{}, err
	}
	return token.Literal(terminal, tok), nil
}

func (c *Compiler[T, I]) transform(literal string) (T, error) {
	tok, err := c.domain.Transform(literal)
	if err != nil {
		return tok, err
	}
	if c.config.Direction == Backward {
		tok = c.domain.Reverse(tok)
	}
	return tok, nil
}

// compileStandard compiles units into one graph; the state the walk ends on
// becomes the accepting state.
func (c *Compiler[T, I]) compileStandard(id string, units []*expr.Expression) (*Machine[T, I], error) {
	m := &Machine[T, I]{kind: KindStandard, id: id, matcher: c.domain}
	f := &fragment[T, I]{c: c, m: m, b: NewBuilder[T]()}

	start := f.b.AddState(id)
	end, err := f.sequence(start, units)
	if err != nil {
		return nil, err
	}
	g, err := f.b.Graph()
	if err != nil {
		return nil, err
	}
	m.graph, m.start, m.accept = g, start, end
	return m, nil
}

// compileNegative builds the literal machine for units and mirrors it into
// the wildcard-shape machine.
func (c *Compiler[T, I]) compileNegative(id string, units []*expr.Expression) (*Machine[T, I], error) {
	literal, err := c.compileStandard(id+":neg", units)
	if err != nil {
		return nil, err
	}
	return &Machine[T, I]{
		kind:     KindNegative,
		id:       id,
		start:    InvalidState,
		accept:   InvalidState,
		positive: c.mirror(literal, id+":pos"),
		negative: literal,
		matcher:  c.domain,
	}, nil
}

// fragment threads one builder through the recursive walk of a machine.
type fragment[T, I any] struct {
	c *Compiler[T, I]
	m *Machine[T, I]
	b *Builder[T]
}

func (f *fragment[T, I]) sequence(prev StateID, units []*expr.Expression) (StateID, error) {
	for _, u := range units {
		var err error
		if prev, err = f.unit(prev, u); err != nil {
			return InvalidState, err
		}
	}
	return prev, nil
}

// unit compiles u entered from prev and returns the state the walk continues
// from. That state never has outgoing arcs yet.
func (f *fragment[T, I]) unit(prev StateID, u *expr.Expression) (StateID, error) {
	c := f.c
	c.depth++
	if c.depth > c.config.MaxRecursionDepth {
		return InvalidState, ErrTooComplex
	}
	defer func() { c.depth-- }()

	name := u.ID()
	switch {
	case u.IsNegative():
		child, err := c.compileNegative(name, []*expr.Expression{
			u.WithNegative(false).WithQuantifier(expr.QuantNone),
		})
		if err != nil {
			return InvalidState, err
		}
		host := f.b.AddState(name)
		f.b.Embed(host, len(f.m.embedded))
		f.m.embedded = append(f.m.embedded, child)
		f.b.AddEpsilon(prev, host)
		return f.quantify(prev, host, host, u.Quantifier()), nil

	case u.IsTerminal():
		label, err := c.Label(u.Terminal())
		if err != nil {
			return InvalidState, err
		}
		switch u.Quantifier() {
		case expr.QuantNone:
			to := f.b.AddState(name)
			f.b.AddArc(prev, to, label)
			return to, nil
		case expr.QuantOptional:
			to := f.b.AddState(name)
			f.b.AddArc(prev, to, label)
			f.b.AddEpsilon(prev, to)
			return to, nil
		}
		in := f.b.AddState(name + ":in")
		out := f.b.AddState(name)
		f.b.AddArc(in, out, label)
		f.b.AddEpsilon(prev, in)
		return f.quantify(prev, in, out, u.Quantifier()), nil

	case u.IsParallel():
		in := f.b.AddState(name + ":in")
		out := f.b.AddState(name)
		for _, branch := range u.Children() {
			end, err := f.unit(in, branch)
			if err != nil {
				return InvalidState, err
			}
			f.b.AddEpsilon(end, out)
		}
		f.b.AddEpsilon(prev, in)
		return f.quantify(prev, in, out, u.Quantifier()), nil

	default:
		in := f.b.AddState(name + ":in")
		end, err := f.sequence(in, u.Children())
		if err != nil {
			return InvalidState, err
		}
		f.b.AddEpsilon(prev, in)
		return f.quantify(prev, in, end, u.Quantifier()), nil
	}
}

// quantify wires the repetition shape of q around the fragment in..out, which
// prev already enters. Loops run through the fragment's own entry state, never
// through prev, so neighbouring units cannot leak into each other's loops.
func (f *fragment[T, I]) quantify(prev, in, out StateID, q expr.Quantifier) StateID {
	if q == expr.QuantNone {
		return out
	}
	after := f.b.AddState(f.b.states[out].name + ":" + string(q))
	switch q {
	case expr.QuantOptional:
		f.b.AddEpsilon(prev, after)
	case expr.QuantStar:
		f.b.AddEpsilon(out, in)
		f.b.AddEpsilon(prev, after)
	case expr.QuantPlus:
		f.b.AddEpsilon(out, in)
	}
	f.b.AddEpsilon(out, after)
	return after
}
