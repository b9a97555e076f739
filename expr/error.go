package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPattern matches every ParseError via errors.Is
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrQuantifierAfterBoundary indicates a quantifier applied to '#'
	ErrQuantifierAfterBoundary = errors.New("quantifier after boundary anchor")

	// ErrStackedQuantifier indicates a quantifier following another quantifier
	ErrStackedQuantifier = errors.New("quantifier follows quantifier")

	// ErrMissingOperand indicates a quantifier with nothing to apply to
	ErrMissingOperand = errors.New("quantifier has no operand")

	// ErrDoubleNegation indicates "!!"
	ErrDoubleNegation = errors.New("double negation")

	// ErrNegatedQuantifier indicates '!' directly before a quantifier
	ErrNegatedQuantifier = errors.New("negated quantifier")

	// ErrNegatedBoundary indicates '!' directly before '#'
	ErrNegatedBoundary = errors.New("negated boundary anchor")

	// ErrDanglingNegation indicates '!' with nothing after it
	ErrDanglingNegation = errors.New("negation has no operand")

	// ErrUnmatchedBracket indicates an unbalanced '(', ')', '{' or '}'
	ErrUnmatchedBracket = errors.New("unmatched bracket")

	// ErrEmptyGroup indicates "()" or "{}"
	ErrEmptyGroup = errors.New("empty group")

	// ErrOutOfRange indicates a query for a nonexistent group or child
	ErrOutOfRange = errors.New("index out of range")
)

// ParseError reports a malformed pattern. Text is the offending substring.
type ParseError struct {
	Pattern string
	Text    string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v at %q", e.Pattern, e.Err, e.Text)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports true for ErrInvalidPattern so callers can test for any parse failure.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidPattern
}
