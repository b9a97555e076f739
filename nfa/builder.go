package nfa

import (
	"fmt"

	"github.com/coregx/seqmatch/internal/conv"
	"github.com/coregx/seqmatch/token"
)

// Builder constructs a Graph incrementally. It owns the graph until Graph is
// called; states are arena indices, so fragments built by recursive compiler
// calls never alias each other.
type Builder[T any] struct {
	states []state[T]
	index  map[string]StateID
}

// NewBuilder creates a new graph builder with default capacity
func NewBuilder[T any]() *Builder[T] {
	return NewBuilderWithCapacity[T](16)
}

// NewBuilderWithCapacity creates a new graph builder with specified initial capacity
func NewBuilderWithCapacity[T any](capacity int) *Builder[T] {
	return &Builder[T]{
		states: make([]state[T], 0, capacity),
		index:  make(map[string]StateID, capacity),
	}
}

// AddState adds a state and returns its ID. A name already in use gets a
// numeric suffix.
func (b *Builder[T]) AddState(name string) StateID {
	if _, taken := b.index[name]; taken {
		base := name
		for i := 1; ; i++ {
			name = fmt.Sprintf("%s/%d", base, i)
			if _, taken := b.index[name]; !taken {
				break
			}
		}
	}
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, state[T]{name: name, embedded: noMachine})
	b.index[name] = id
	return id
}

// AddArc adds a transition from -> to labeled label.
func (b *Builder[T]) AddArc(from, to StateID, label token.Label[T]) {
	b.states[from].arcs = append(b.states[from].arcs, Arc[T]{Label: label, To: to})
}

// AddEpsilon adds a zero-width transition from -> to.
func (b *Builder[T]) AddEpsilon(from, to StateID) {
	b.AddArc(from, to, token.Epsilon[T]())
}

// Embed marks id as hosting the embedded machine in the given slot.
func (b *Builder[T]) Embed(id StateID, slot int) {
	b.states[id].embedded = slot
}

// States returns the current number of states
func (b *Builder[T]) States() int {
	return len(b.states)
}

// Validate checks that every arc targets an existing state.
func (b *Builder[T]) Validate() error {
	for i, s := range b.states {
		for _, a := range s.arcs {
			if int(a.To) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid target state %d", a.To),
					StateID: StateID(conv.IntToUint32(i)),
				}
			}
		}
	}
	return nil
}

// Graph validates and returns the built graph. The builder must not be used
// afterwards.
func (b *Builder[T]) Graph() (*Graph[T], error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	g := &Graph[T]{states: b.states, index: b.index}
	b.states, b.index = nil, nil
	return g, nil
}
