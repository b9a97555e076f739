package nfa

import (
	"fmt"

	"github.com/coregx/seqmatch/token"
)

// StateID identifies a state within one Graph.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// noMachine marks a state that hosts no embedded machine
const noMachine = -1

// Arc is one labeled transition.
type Arc[T any] struct {
	Label token.Label[T]
	To    StateID
}

// String returns a human-readable representation of the arc
func (a Arc[T]) String() string {
	return fmt.Sprintf("-%s-> %d", a.Label, a.To)
}

// state is one graph node. Its name is built from the expression id that
// produced it and is unique within the graph.
type state[T any] struct {
	name     string
	arcs     []Arc[T]
	embedded int // slot in Machine.embedded, or noMachine
}

// Graph is one automaton's transition table: for each state, the arcs leaving
// it. Graphs are immutable once built.
type Graph[T any] struct {
	states []state[T]
	index  map[string]StateID
}

// States returns the number of states in the graph
func (g *Graph[T]) States() int {
	return len(g.states)
}

// Name returns the structured name of state id.
func (g *Graph[T]) Name(id StateID) string {
	if !g.valid(id) {
		return ""
	}
	return g.states[id].name
}

// Lookup returns the state with the given name.
func (g *Graph[T]) Lookup(name string) (StateID, bool) {
	id, ok := g.index[name]
	return id, ok
}

// Arcs returns the arcs leaving id, in insertion order.
func (g *Graph[T]) Arcs(id StateID) []Arc[T] {
	if !g.valid(id) {
		return nil
	}
	return g.states[id].arcs
}

// Targets returns the states reachable from id over arcs labeled like label.
func (g *Graph[T]) Targets(id StateID, label token.Label[T]) []StateID {
	var out []StateID
	key := label.Key()
	for _, a := range g.Arcs(id) {
		if a.Label.Key() == key {
			out = append(out, a.To)
		}
	}
	return out
}

// NumArcs returns the total number of arcs in the graph
func (g *Graph[T]) NumArcs() int {
	n := 0
	for i := range g.states {
		n += len(g.states[i].arcs)
	}
	return n
}

func (g *Graph[T]) valid(id StateID) bool {
	return id != InvalidState && int(id) < len(g.states)
}

// String returns a human-readable representation of the graph
func (g *Graph[T]) String() string {
	return fmt.Sprintf("Graph{states: %d, arcs: %d}", g.States(), g.NumArcs())
}
