// Package token defines the contract between the pattern engine and a token
// domain.
//
// The engine never inspects tokens itself. A domain turns literal pattern text
// into tokens of type T and answers positional match queries against inputs of
// type I. Plain strings and feature-based phonetic segments are two domains
// implementing the same contract.
package token

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownLiteral is returned by Transform when literal text has no token.
	ErrUnknownLiteral = errors.New("unknown literal")

	// ErrDuplicateAlias indicates an alias name registered twice
	ErrDuplicateAlias = errors.New("duplicate alias")

	// ErrEmptyAlias indicates an alias with no alternatives
	ErrEmptyAlias = errors.New("alias has no alternatives")
)

// LabelKind identifies what an arc label matches.
type LabelKind uint8

const (
	// LabelEpsilon consumes nothing and always succeeds
	LabelEpsilon LabelKind = iota

	// LabelDot matches exactly one token of input
	LabelDot

	// LabelBoundary matches (zero width) only at a word boundary
	LabelBoundary

	// LabelLiteral matches Label.Token
	LabelLiteral

	// LabelAlias matches the first of Label.Alternatives that matches
	LabelAlias
)

// String returns a human-readable representation of the LabelKind
func (k LabelKind) String() string {
	switch k {
	case LabelEpsilon:
		return "Epsilon"
	case LabelDot:
		return "Dot"
	case LabelBoundary:
		return "Boundary"
	case LabelLiteral:
		return "Literal"
	case LabelAlias:
		return "Alias"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Label is the label of one automaton arc.
//
// Epsilon and dot are label kinds rather than distinguished token values, so a
// domain never has to reserve tokens for them.
type Label[T any] struct {
	Kind LabelKind

	// Text is the terminal text the label was built from.
	Text string

	// Token is the literal token for LabelLiteral.
	Token T

	// Alternatives are the literal tokens of a LabelAlias, in registration order.
	Alternatives []T
}

// Epsilon returns the zero-width label.
func Epsilon[T any]() Label[T] {
	return Label[T]{Kind: LabelEpsilon}
}

// Dot returns the single-token wildcard label.
func Dot[T any]() Label[T] {
	return Label[T]{Kind: LabelDot, Text: "."}
}

// Boundary returns the boundary anchor label.
func Boundary[T any]() Label[T] {
	return Label[T]{Kind: LabelBoundary, Text: "#"}
}

// Literal returns a label matching tok.
func Literal[T any](text string, tok T) Label[T] {
	return Label[T]{Kind: LabelLiteral, Text: text, Token: tok}
}

// Alias returns a label matching any of alts, tried in order.
func Alias[T any](name string, alts []T) Label[T] {
	return Label[T]{Kind: LabelAlias, Text: name, Alternatives: alts}
}

// Key identifies the label for graph lookups; two labels with the same key
// match the same input.
func (l Label[T]) Key() string {
	return l.Kind.String() + ":" + l.Text
}

// String returns the label as it appears in diagnostic output
func (l Label[T]) String() string {
	switch l.Kind {
	case LabelEpsilon:
		return "ε"
	case LabelDot:
		return "."
	case LabelBoundary:
		return "#"
	default:
		return l.Text
	}
}

// Parser turns literal pattern text into tokens.
type Parser[T any] interface {
	// Transform converts literal text into a token. Returns an error wrapping
	// ErrUnknownLiteral if the domain has no token for it.
	Transform(literal string) (T, error)

	// Len returns how many input units tok consumes.
	Len(tok T) int

	// Reverse returns tok with its units in reverse order.
	Reverse(tok T) T

	// Aliases returns the alias table; may be nil.
	Aliases() *Aliases

	// Symbols returns multi-character terminals the pattern grammar must keep whole.
	Symbols() []string
}

// Matcher answers positional match queries.
type Matcher[T, I any] interface {
	// Match returns how many input units label consumes at index, or -1.
	// Alias labels try their alternatives in order and use the first match.
	Match(input I, label Label[T], index int) int

	// Length returns the number of units in input.
	Length(input I) int
}

// Domain is everything the engine needs from a token domain.
type Domain[T, I any] interface {
	Parser[T]
	Matcher[T, I]
}

// Prefilter quickly rejects inputs that cannot contain a match.
type Prefilter[I any] interface {
	// MayMatch returns false only if no match can exist in input.
	MayMatch(input I) bool
}

// Prefilterer is implemented by domains able to build a prefilter from a set of
// literal tokens, at least one of which every match contains.
type Prefilterer[T, I any] interface {
	Prefilter(required []T) Prefilter[I]
}
