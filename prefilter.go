package seqmatch

import (
	"github.com/coregx/seqmatch/expr"
	"github.com/coregx/seqmatch/nfa"
	"github.com/coregx/seqmatch/token"
)

// requiredTerminals returns terminal texts at least one of which every match
// of e must consume, or nil if no such set exists. Dots, boundaries, negated
// units and units that may repeat zero times never contribute.
func requiredTerminals(e *expr.Expression, aliases *token.Aliases) []string {
	if e.IsNegative() || e.Quantifier() == expr.QuantOptional || e.Quantifier() == expr.QuantStar {
		return nil
	}
	if e.IsTerminal() {
		if e.IsDot() || e.IsBoundary() || e.Terminal() == "" {
			return nil
		}
		return []string{e.Terminal()}
	}
	if e.IsParallel() {
		var out []string
		for _, branch := range e.Children() {
			terms := requiredTerminals(branch, aliases)
			if terms == nil {
				return nil
			}
			out = append(out, terms...)
		}
		return out
	}
	var best []string
	for _, child := range e.Children() {
		terms := requiredTerminals(child, aliases)
		if terms != nil && better(terms, best, aliases) {
			best = terms
		}
	}
	return best
}

// better prefers sets whose shortest literal is longer, then smaller sets.
func better(a, b []string, aliases *token.Aliases) bool {
	if b == nil {
		return true
	}
	ma, mb := shortest(a, aliases), shortest(b, aliases)
	if ma != mb {
		return ma > mb
	}
	return len(a) < len(b)
}

func shortest(terms []string, aliases *token.Aliases) int {
	n := -1
	for _, t := range terms {
		lits := []string{t}
		if alts, ok := aliases.Lookup(t); ok {
			lits = alts
		}
		for _, l := range lits {
			if n < 0 || len(l) < n {
				n = len(l)
			}
		}
	}
	return n
}

// buildPrefilter turns the required terminals of e into a domain prefilter,
// or nil when the domain cannot build one or nothing is required.
func buildPrefilter[T, I any](c *nfa.Compiler[T, I], domain token.Domain[T, I], e *expr.Expression) token.Prefilter[I] {
	pf, ok := domain.(token.Prefilterer[T, I])
	if !ok {
		return nil
	}
	terms := requiredTerminals(e, domain.Aliases())
	if len(terms) == 0 {
		return nil
	}
	required := make([]T, 0, len(terms))
	for _, term := range terms {
		label, err := c.Label(term)
		if err != nil {
			return nil
		}
		if label.Kind == token.LabelAlias {
			required = append(required, label.Alternatives...)
		} else {
			required = append(required, label.Token)
		}
	}
	return pf.Prefilter(required)
}
