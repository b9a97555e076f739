package nfa

import (
	"golang.org/x/exp/slices"

	"github.com/coregx/seqmatch/internal/conv"
	"github.com/coregx/seqmatch/internal/sparse"
	"github.com/coregx/seqmatch/token"
)

// MatchIndices returns every offset at which m can stop in its accepting state
// when started at start, in ascending order without duplicates. A start
// outside [0, length of input] yields no offsets.
func (m *Machine[T, I]) MatchIndices(start int, input I) []int {
	out, _ := m.Search(start, input, 0)
	return out
}

// Search is MatchIndices with a step budget. A positive maxSteps bounds the
// number of (position, state) visits across m and every embedded machine; when
// it runs out Search returns ErrStepLimit and no offsets.
func (m *Machine[T, I]) Search(start int, input I, maxSteps int) ([]int, error) {
	s := &simulation[T, I]{
		input:    input,
		length:   m.matcher.Length(input),
		maxSteps: maxSteps,
	}
	if start < 0 || start > s.length {
		return nil, nil
	}
	return s.run(m, start)
}

// simulation holds the per-call state of one Search. Nothing in it outlives
// the call, so machines stay shareable.
type simulation[T, I any] struct {
	input    I
	length   int
	maxSteps int
	steps    int
	free     map[int][]*sparse.Set // drained frontier sets by capacity
}

// acquire returns an empty set able to hold capacity state ids, reusing one
// drained by an earlier position or embedded run when possible.
func (s *simulation[T, I]) acquire(capacity int) *sparse.Set {
	if sets := s.free[capacity]; len(sets) > 0 {
		set := sets[len(sets)-1]
		s.free[capacity] = sets[:len(sets)-1]
		return set
	}
	return sparse.New(conv.IntToUint32(capacity))
}

func (s *simulation[T, I]) release(set *sparse.Set) {
	set.Clear()
	if s.free == nil {
		s.free = make(map[int][]*sparse.Set)
	}
	s.free[set.Capacity()] = append(s.free[set.Capacity()], set)
}

func (s *simulation[T, I]) run(m *Machine[T, I], start int) ([]int, error) {
	switch m.kind {
	case KindEmpty:
		return []int{start}, nil
	case KindNegative:
		return s.negative(m, start)
	default:
		return s.standard(m, start)
	}
}

// negative applies same-length exclusion: the shape's offsets survive unless
// the literal machine reaches the same maximum offset.
func (s *simulation[T, I]) negative(m *Machine[T, I], start int) ([]int, error) {
	pos, err := s.run(m.positive, start)
	if err != nil || len(pos) == 0 {
		return nil, err
	}
	neg, err := s.run(m.negative, start)
	if err != nil {
		return nil, err
	}
	if len(neg) > 0 && neg[len(neg)-1] == pos[len(pos)-1] {
		return nil, nil
	}
	return pos, nil
}

// standard walks the frontier one input position at a time. Arcs never move
// backwards, so once position p is drained no later step can add to it; each
// (position, state) pair is visited at most once. The frontier only spans
// positions actually reached from start.
func (s *simulation[T, I]) standard(m *Machine[T, I], start int) ([]int, error) {
	g := m.graph
	capacity := g.States()
	var frontier []*sparse.Set // indexed by position - start
	add := func(pos int, id StateID) {
		if pos > s.length {
			return
		}
		i := pos - start
		for len(frontier) <= i {
			frontier = append(frontier, nil)
		}
		if frontier[i] == nil {
			frontier[i] = s.acquire(capacity)
		}
		frontier[i].Insert(uint32(id))
	}
	var found []int

	add(start, m.start)
	here := make([]int, 1)
	for i := 0; i < len(frontier); i++ {
		pos := start + i
		set := frontier[i]
		if set == nil || set.IsEmpty() {
			continue
		}
		for k := 0; k < set.Len(); k++ {
			if s.maxSteps > 0 {
				s.steps++
				if s.steps > s.maxSteps {
					return nil, ErrStepLimit
				}
			}
			id := StateID(set.At(k))

			effective := here[:1]
			effective[0] = pos
			if child := m.Embedded(id); child != nil {
				var err error
				if effective, err = s.run(child, pos); err != nil {
					return nil, err
				}
			}
			if id == m.accept {
				found = append(found, effective...)
			}
			for _, a := range g.states[id].arcs {
				for _, p := range effective {
					if a.Label.Kind == token.LabelEpsilon {
						add(p, a.To)
						continue
					}
					if n := m.matcher.Match(s.input, a.Label, p); n >= 0 {
						add(p+n, a.To)
					}
				}
			}
		}
		frontier[i] = nil
		s.release(set)
	}

	slices.Sort(found)
	return slices.Compact(found), nil
}
