package nfa

import (
	"github.com/coregx/seqmatch/internal/conv"
	"github.com/coregx/seqmatch/token"
)

// Mirror returns the wildcard-shape machine of m: the same graph with every
// literal arc replaced by a chain of dot arcs as long as its token, and every
// alias arc by one such chain per distinct alternative length. Epsilon, dot
// and boundary arcs are kept. Embedded machines are mirrored recursively; a
// Negative machine mirrors to its positive machine and an Empty one to itself.
func (c *Compiler[T, I]) Mirror(m *Machine[T, I]) *Machine[T, I] {
	return c.mirror(m, m.id+":pos")
}

func (c *Compiler[T, I]) mirror(m *Machine[T, I], id string) *Machine[T, I] {
	switch m.kind {
	case KindNegative:
		return m.positive
	case KindEmpty:
		return m
	}

	g := m.graph
	b := NewBuilderWithCapacity[T](g.States())
	for _, s := range g.states {
		b.AddState(s.name)
	}
	for i, s := range g.states {
		from := StateID(conv.IntToUint32(i))
		b.Embed(from, s.embedded)
		for _, a := range s.arcs {
			switch a.Label.Kind {
			case token.LabelLiteral:
				c.dotChain(b, from, a.To, c.domain.Len(a.Label.Token))
			case token.LabelAlias:
				seen := make(map[int]bool, len(a.Label.Alternatives))
				for _, alt := range a.Label.Alternatives {
					n := c.domain.Len(alt)
					if seen[n] {
						continue
					}
					seen[n] = true
					c.dotChain(b, from, a.To, n)
				}
			default:
				b.AddArc(from, a.To, a.Label)
			}
		}
	}
	// The state list was copied verbatim, so the graph is valid by construction.
	mg, _ := b.Graph()

	embedded := make([]*Machine[T, I], len(m.embedded))
	for i, child := range m.embedded {
		embedded[i] = c.mirror(child, child.id+":pos")
	}
	return &Machine[T, I]{
		kind:     KindStandard,
		id:       id,
		graph:    mg,
		start:    m.start,
		accept:   m.accept,
		embedded: embedded,
		matcher:  m.matcher,
	}
}

// dotChain links from to to with n dot arcs through fresh states, or with an
// epsilon arc when n is zero.
func (c *Compiler[T, I]) dotChain(b *Builder[T], from, to StateID, n int) {
	if n <= 0 {
		b.AddEpsilon(from, to)
		return
	}
	prev := from
	for i := 1; i < n; i++ {
		next := b.AddState(b.states[from].name + ":.")
		b.AddArc(prev, next, token.Dot[T]())
		prev = next
	}
	b.AddArc(prev, to, token.Dot[T]())
}
