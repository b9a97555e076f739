package nfa

import (
	"fmt"

	"github.com/coregx/seqmatch/token"
)

// Kind identifies the variant of a Machine.
type Kind uint8

const (
	// KindStandard is a compiled graph with optional embedded machines
	KindStandard Kind = iota

	// KindNegative pairs a literal machine with its mirrored wildcard shape
	KindNegative

	// KindEmpty matches the empty sequence at any position
	KindEmpty
)

// String returns a human-readable representation of the Kind
func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "Standard"
	case KindNegative:
		return "Negative"
	case KindEmpty:
		return "Empty"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Machine is a compiled automaton. The kind determines which fields are valid.
// Machines are immutable after compilation and safe for concurrent use as long
// as the domain's Matcher is.
type Machine[T, I any] struct {
	kind Kind
	id   string

	// For Standard: the graph, its start and accepting states, and the child
	// machines hosted by states (indexed by state.embedded)
	graph    *Graph[T]
	start    StateID
	accept   StateID
	embedded []*Machine[T, I]

	// For Negative: the wildcard-shape machine and the literal machine
	positive *Machine[T, I]
	negative *Machine[T, I]

	matcher token.Matcher[T, I]
}

func newEmpty[T, I any](id string, matcher token.Matcher[T, I]) *Machine[T, I] {
	return &Machine[T, I]{
		kind:    KindEmpty,
		id:      id,
		start:   InvalidState,
		accept:  InvalidState,
		matcher: matcher,
	}
}

// ID returns the machine id
func (m *Machine[T, I]) ID() string {
	return m.id
}

// Kind returns the machine variant
func (m *Machine[T, I]) Kind() Kind {
	return m.kind
}

// Graph returns the transition graph of a Standard machine, nil otherwise.
func (m *Machine[T, I]) Graph() *Graph[T] {
	return m.graph
}

// Start returns the start state of a Standard machine, InvalidState otherwise.
func (m *Machine[T, I]) Start() StateID {
	return m.start
}

// Accepting returns the accepting states of a Standard machine.
func (m *Machine[T, I]) Accepting() []StateID {
	if m.kind != KindStandard {
		return nil
	}
	return []StateID{m.accept}
}

// IsAccepting returns true if id is an accepting state
func (m *Machine[T, I]) IsAccepting(id StateID) bool {
	return m.kind == KindStandard && id == m.accept
}

// Embedded returns the machine hosted by state id, or nil.
func (m *Machine[T, I]) Embedded(id StateID) *Machine[T, I] {
	if m.graph == nil || !m.graph.valid(id) {
		return nil
	}
	slot := m.graph.states[id].embedded
	if slot == noMachine {
		return nil
	}
	return m.embedded[slot]
}

// Children returns the embedded machines of a Standard machine in slot order.
func (m *Machine[T, I]) Children() []*Machine[T, I] {
	out := make([]*Machine[T, I], len(m.embedded))
	copy(out, m.embedded)
	return out
}

// Positive returns the wildcard-shape machine of a Negative machine.
func (m *Machine[T, I]) Positive() *Machine[T, I] {
	return m.positive
}

// Negative returns the literal machine of a Negative machine.
func (m *Machine[T, I]) Negative() *Machine[T, I] {
	return m.negative
}

// Graphs returns every graph reachable from m keyed by machine id. A Negative
// machine has no graph of its own; its entry is the union of its children's.
func (m *Machine[T, I]) Graphs() map[string]*Graph[T] {
	out := make(map[string]*Graph[T])
	m.collectGraphs(out)
	return out
}

func (m *Machine[T, I]) collectGraphs(out map[string]*Graph[T]) {
	switch m.kind {
	case KindStandard:
		out[m.id] = m.graph
		for _, child := range m.embedded {
			child.collectGraphs(out)
		}
	case KindNegative:
		m.positive.collectGraphs(out)
		m.negative.collectGraphs(out)
	case KindEmpty:
	}
}

// States returns the number of states across m and all machines inside it
func (m *Machine[T, I]) States() int {
	n := 0
	for _, g := range m.Graphs() {
		n += g.States()
	}
	return n
}

// String returns a human-readable representation of the machine
func (m *Machine[T, I]) String() string {
	switch m.kind {
	case KindStandard:
		return fmt.Sprintf("Machine{id: %q, kind: %s, states: %d, start: %d, accept: %d, embedded: %d}",
			m.id, m.kind, m.graph.States(), m.start, m.accept, len(m.embedded))
	case KindNegative:
		return fmt.Sprintf("Machine{id: %q, kind: %s, positive: %s, negative: %s}",
			m.id, m.kind, m.positive, m.negative)
	default:
		return fmt.Sprintf("Machine{id: %q, kind: %s}", m.id, m.kind)
	}
}
