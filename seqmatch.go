// Package seqmatch matches sequence patterns against token sequences.
//
// A pattern is written in a small grammar: terminals, wildcards (.), boundary
// anchors (#), capturing groups ( ), alternation sets { } with space
// separated branches, quantifiers ? * + and a negation prefix !. Patterns are
// compiled into non-deterministic automata over a pluggable token domain: the
// text package matches character clusters, the feature package matches
// phonetic segments with underspecified features.
//
// Basic usage:
//
//	domain := text.NewDomain(nil)
//	p, err := seqmatch.Compile[string, []string]("{a e o}{pʰ tʰ}us", domain)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p.MatchAll(text.Input("apʰus")) // true
//
// A negated unit !x matches any input of the same shape as x that x itself
// does not match at the same length:
//
//	p := seqmatch.MustCompile[string, []string]("!a b", domain)
//	p.MatchAll(text.Input("cb")) // true
//	p.MatchAll(text.Input("ab")) // false
//
// MatchIndices exposes every end offset reachable from a start offset, which
// is the primitive the other methods are built on.
package seqmatch

import (
	"errors"
	"fmt"

	"github.com/coregx/seqmatch/expr"
	"github.com/coregx/seqmatch/nfa"
	"github.com/coregx/seqmatch/token"
)

// ErrOutOfRange is returned for start offsets outside the input.
var ErrOutOfRange = errors.New("seqmatch: offset out of range")

// Pattern is a compiled pattern.
//
// A Pattern is immutable and safe for concurrent use as long as its domain is.
type Pattern[T, I any] struct {
	pattern   string
	expr      *expr.Expression
	machine   *nfa.Machine[T, I]
	domain    token.Domain[T, I]
	prefilter token.Prefilter[I]
	config    Config
}

// Span is a half-open range [Start, End) of input offsets.
type Span struct {
	Start int
	End   int
}

// Compile compiles pattern for domain with the default configuration.
//
// Example:
//
//	p, err := seqmatch.Compile[string, []string]("a+b", text.NewDomain(nil))
func Compile[T, I any](pattern string, domain token.Domain[T, I]) (*Pattern[T, I], error) {
	return CompileWithConfig(pattern, domain, DefaultConfig())
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile[T, I any](pattern string, domain token.Domain[T, I]) *Pattern[T, I] {
	p, err := Compile(pattern, domain)
	if err != nil {
		panic("seqmatch: Compile(`" + pattern + "`): " + err.Error())
	}
	return p
}

// CompileWithConfig compiles pattern for domain with a custom configuration.
func CompileWithConfig[T, I any](pattern string, domain token.Domain[T, I], config Config) (*Pattern[T, I], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	c := nfa.NewCompiler(domain, nfa.CompilerConfig{
		Direction:         config.Direction,
		MaxRecursionDepth: config.MaxRecursionDepth,
	})
	e, err := c.Parse(pattern)
	if err != nil {
		return nil, &nfa.CompileError{Pattern: pattern, Err: err}
	}
	m, err := c.CompileExpression("0", e)
	if err != nil {
		return nil, &nfa.CompileError{Pattern: pattern, Err: err}
	}

	p := &Pattern[T, I]{
		pattern: pattern,
		expr:    e,
		machine: m,
		domain:  domain,
		config:  config,
	}
	if config.EnablePrefilter {
		p.prefilter = buildPrefilter(c, domain, e)
	}
	config.logf("compiled %q: %s machine, %d states, %d graphs, prefilter=%t",
		pattern, m.Kind(), m.States(), len(m.Graphs()), p.prefilter != nil)
	return p, nil
}

// MatchIndices returns every offset at which a match starting at start can
// end, in ascending order. It returns ErrOutOfRange if start lies outside
// [0, length of input] and nfa.ErrStepLimit if Config.MaxSteps runs out.
func (p *Pattern[T, I]) MatchIndices(start int, input I) ([]int, error) {
	if n := p.domain.Length(input); start < 0 || start > n {
		return nil, fmt.Errorf("%w: start %d, input length %d", ErrOutOfRange, start, n)
	}
	out, err := p.machine.Search(start, input, p.config.MaxSteps)
	if err != nil {
		p.config.logf("pattern %q: %v at start %d", p.pattern, err, start)
		return nil, err
	}
	return out, nil
}

// indices is MatchIndices for the boolean helpers: a search that runs out of
// steps counts as no match.
func (p *Pattern[T, I]) indices(start int, input I) []int {
	out, _ := p.MatchIndices(start, input)
	return out
}

func (p *Pattern[T, I]) mayMatch(input I) bool {
	return p.prefilter == nil || p.prefilter.MayMatch(input)
}

// Match reports whether the pattern matches a prefix of input.
func (p *Pattern[T, I]) Match(input I) bool {
	return p.mayMatch(input) && len(p.indices(0, input)) > 0
}

// MatchAll reports whether the pattern matches the whole of input.
func (p *Pattern[T, I]) MatchAll(input I) bool {
	if !p.mayMatch(input) {
		return false
	}
	out := p.indices(0, input)
	return len(out) > 0 && out[len(out)-1] == p.domain.Length(input)
}

// FindAll returns successive non-overlapping matches, each the longest match
// at the leftmost start offset not inside a previous match. If n >= 0, it
// returns at most n spans; otherwise it returns all of them.
func (p *Pattern[T, I]) FindAll(input I, n int) []Span {
	if n == 0 || !p.mayMatch(input) {
		return nil
	}
	var spans []Span
	length := p.domain.Length(input)
	for pos := 0; pos <= length; {
		out := p.indices(pos, input)
		if len(out) == 0 {
			pos++
			continue
		}
		end := out[len(out)-1]
		spans = append(spans, Span{Start: pos, End: end})
		if n > 0 && len(spans) >= n {
			break
		}
		if end > pos {
			pos = end
		} else {
			// Empty match: advance by 1 to avoid infinite loop
			pos++
		}
	}
	return spans
}

// Expression returns the parsed pattern.
func (p *Pattern[T, I]) Expression() *expr.Expression {
	return p.expr
}

// Machine returns the compiled automaton.
func (p *Pattern[T, I]) Machine() *nfa.Machine[T, I] {
	return p.machine
}

// Config returns the configuration the pattern was compiled with.
func (p *Pattern[T, I]) Config() Config {
	return p.config
}

// String returns the source text used to compile the pattern.
func (p *Pattern[T, I]) String() string {
	return p.pattern
}
