// Package expr parses the pattern language into an immutable expression tree.
//
// The grammar is small and tailored to rule description:
//
//	a      literal terminal (one character plus any trailing modifier letters,
//	       or a registered multi-character symbol)
//	.      wildcard, matches one token
//	#      boundary anchor
//	(...)  capturing group
//	{a b}  alternation set; branches are separated by whitespace
//	x?     optional, x* zero or more, x+ one or more
//	!x     negation of the unit x
//
// Example:
//
//	e, err := expr.Parse("{a e o}{pʰ tʰ}us")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(e.Len()) // 4
package expr

import (
	"strconv"
	"strings"
)

// Quantifier is the repetition suffix of a unit.
type Quantifier string

// Quantifiers
const (
	QuantNone     Quantifier = ""
	QuantOptional Quantifier = "?"
	QuantStar     Quantifier = "*"
	QuantPlus     Quantifier = "+"
)

// Reserved terminal text.
const (
	DotTerminal      = "."
	BoundaryTerminal = "#"
)

// Expression is one node of a parsed pattern. Exactly one of IsTerminal or
// Len() > 0 holds. Expressions are immutable; the With* methods and Reverse
// return new values.
type Expression struct {
	id         string
	quantifier Quantifier
	negative   bool
	capturing  bool
	parallel   bool
	children   []*Expression
	terminal   string
}

// Terminal returns a leaf matching text.
func Terminal(text string) *Expression {
	return &Expression{terminal: text}
}

// Group returns a sequence node. Only explicit "(...)" groups are capturing.
func Group(capturing bool, children ...*Expression) *Expression {
	return &Expression{capturing: capturing, children: children}
}

// Parallel returns an alternation node whose children are the branches.
func Parallel(branches ...*Expression) *Expression {
	return &Expression{parallel: true, children: branches}
}

// ID returns the node id.
func (e *Expression) ID() string { return e.id }

// Quantifier returns the node's quantifier.
func (e *Expression) Quantifier() Quantifier { return e.quantifier }

// IsNegative reports whether the node is negated.
func (e *Expression) IsNegative() bool { return e.negative }

// IsCapturing reports whether the node is an explicit group.
func (e *Expression) IsCapturing() bool { return e.capturing }

// IsParallel reports whether the node is an alternation set.
func (e *Expression) IsParallel() bool { return e.parallel }

// IsTerminal reports whether the node is a leaf.
func (e *Expression) IsTerminal() bool { return len(e.children) == 0 }

// Terminal returns the leaf text, or "" for non-terminals.
func (e *Expression) Terminal() string { return e.terminal }

// IsDot reports whether the node is the wildcard.
func (e *Expression) IsDot() bool { return e.IsTerminal() && e.terminal == DotTerminal }

// IsBoundary reports whether the node is the boundary anchor.
func (e *Expression) IsBoundary() bool { return e.IsTerminal() && e.terminal == BoundaryTerminal }

// Len returns the number of children.
func (e *Expression) Len() int { return len(e.children) }

// Children returns a copy of the child list.
func (e *Expression) Children() []*Expression {
	out := make([]*Expression, len(e.children))
	copy(out, e.children)
	return out
}

// Child returns the i-th child.
func (e *Expression) Child(i int) (*Expression, error) {
	if i < 0 || i >= len(e.children) {
		return nil, ErrOutOfRange
	}
	return e.children[i], nil
}

func (e *Expression) clone() *Expression {
	c := *e
	return &c
}

// WithID returns a copy with the given id.
func (e *Expression) WithID(id string) *Expression {
	c := e.clone()
	c.id = id
	return c
}

// WithNegative returns a copy with the negation flag set to neg.
func (e *Expression) WithNegative(neg bool) *Expression {
	c := e.clone()
	c.negative = neg
	return c
}

// WithQuantifier returns a copy with quantifier q.
func (e *Expression) WithQuantifier(q Quantifier) *Expression {
	c := e.clone()
	c.quantifier = q
	return c
}

// Reverse returns the expression with every sequence in reverse order.
// Terminals are unchanged and alternation branches keep their order; the
// branches themselves are reversed. Ids are carried over, not renumbered.
func (e *Expression) Reverse() *Expression {
	if e.IsTerminal() {
		return e
	}
	n := len(e.children)
	children := make([]*Expression, n)
	for i, child := range e.children {
		if e.parallel {
			children[i] = child.Reverse()
		} else {
			children[n-1-i] = child.Reverse()
		}
	}
	c := e.clone()
	c.children = children
	return c
}

// RewriteIDs returns a copy of e whose ids are renumbered from root: children
// of a sequence get root.0, root.1, ...; branches of an alternation get
// root.P0, root.P1, ... Structurally identical trees rewritten from the same
// root are Equal.
func RewriteIDs(e *Expression, root string) *Expression {
	c := e.WithID(root)
	if e.IsTerminal() {
		return c
	}
	prefix := root + "."
	if e.parallel {
		prefix += "P"
	}
	c.children = make([]*Expression, len(e.children))
	for i, child := range e.children {
		c.children[i] = RewriteIDs(child, prefix+strconv.Itoa(i))
	}
	return c
}

// Equal reports whether e and o have the same structure and ids.
func (e *Expression) Equal(o *Expression) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.id != o.id || e.quantifier != o.quantifier || e.negative != o.negative ||
		e.capturing != o.capturing || e.parallel != o.parallel ||
		e.terminal != o.terminal || len(e.children) != len(o.children) {
		return false
	}
	for i := range e.children {
		if !e.children[i].Equal(o.children[i]) {
			return false
		}
	}
	return true
}

// Groups returns the capturing groups in pre-order.
func (e *Expression) Groups() []*Expression {
	var out []*Expression
	var walk func(*Expression)
	walk = func(n *Expression) {
		if n.capturing {
			out = append(out, n)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(e)
	return out
}

// Group returns the i-th capturing group (0-based, pre-order).
func (e *Expression) Group(i int) (*Expression, error) {
	groups := e.Groups()
	if i < 0 || i >= len(groups) {
		return nil, ErrOutOfRange
	}
	return groups[i], nil
}

// String renders the expression in pattern syntax.
func (e *Expression) String() string {
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (e *Expression) write(sb *strings.Builder) {
	if e.negative {
		sb.WriteByte('!')
	}
	switch {
	case e.IsTerminal():
		sb.WriteString(e.terminal)
	case e.parallel:
		sb.WriteByte('{')
		for i, c := range e.children {
			if i > 0 {
				sb.WriteByte(' ')
			}
			c.write(sb)
		}
		sb.WriteByte('}')
	default:
		// plain sequences (the root, set branches) print bare
		bare := !e.capturing && !e.negative && e.quantifier == QuantNone
		if !bare {
			sb.WriteByte('(')
		}
		for _, c := range e.children {
			c.write(sb)
		}
		if !bare {
			sb.WriteByte(')')
		}
	}
	sb.WriteString(string(e.quantifier))
}
