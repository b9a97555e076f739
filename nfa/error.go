// Package nfa compiles parsed patterns into non-deterministic finite automata
// over an abstract token domain and simulates them against input.
//
// A pattern compiles to a Machine: a Graph of labeled arcs between states, a
// start state and an accepting state. Negated units compile to embedded child
// machines hosted by a single state. Simulation is a frontier walk over
// (position, state) pairs that returns every offset at which the machine can
// stop in its accepting state.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrInvalidState indicates an invalid state ID was encountered
	ErrInvalidState = errors.New("invalid NFA state")

	// ErrTooComplex indicates the pattern nests deeper than the compiler allows
	ErrTooComplex = errors.New("pattern too complex")

	// ErrStepLimit indicates a search exhausted its step budget
	ErrStepLimit = errors.New("step limit exceeded")
)

// CompileError wraps compilation errors with additional context
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("NFA compilation failed for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("NFA compilation failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// BuildError represents an error during graph construction via the Builder API
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}

// Unwrap returns ErrInvalidState
func (e *BuildError) Unwrap() error {
	return ErrInvalidState
}
