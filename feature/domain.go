package feature

import (
	"fmt"

	"github.com/coregx/seqmatch/token"
)

// Domain implements token.Domain over segment sequences of one Model. A
// literal is a segment string; it matches input segments pairwise under
// Segment.Matches.
type Domain struct {
	model *Model
}

// NewDomain returns the domain of model m.
func NewDomain(m *Model) *Domain {
	return &Domain{model: m}
}

// Model returns the domain's feature model.
func (d *Domain) Model() *Model {
	return d.model
}

// Input segments word for matching.
func (d *Domain) Input(word string) ([]Segment, error) {
	return d.model.Sequence(word)
}

// Transform implements token.Parser.
func (d *Domain) Transform(literal string) ([]Segment, error) {
	segs, err := d.model.Sequence(literal)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", token.ErrUnknownLiteral, err)
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("%w: empty literal", token.ErrUnknownLiteral)
	}
	return segs, nil
}

// Len implements token.Parser.
func (d *Domain) Len(tok []Segment) int {
	return len(tok)
}

// Reverse implements token.Parser.
func (d *Domain) Reverse(tok []Segment) []Segment {
	return ReverseInput(tok)
}

// ReverseInput returns a reversed copy of segs.
func ReverseInput(segs []Segment) []Segment {
	out := make([]Segment, len(segs))
	for i, s := range segs {
		out[len(segs)-1-i] = s
	}
	return out
}

// Aliases implements token.Parser.
func (d *Domain) Aliases() *token.Aliases {
	return d.model.Aliases()
}

// Symbols implements token.Parser.
func (d *Domain) Symbols() []string {
	return d.model.Symbols()
}

// Length implements token.Matcher.
func (d *Domain) Length(input []Segment) int {
	return len(input)
}

// Match implements token.Matcher.
func (d *Domain) Match(input []Segment, label token.Label[[]Segment], index int) int {
	if index < 0 || index > len(input) {
		return -1
	}
	switch label.Kind {
	case token.LabelEpsilon:
		return 0
	case token.LabelDot:
		if index < len(input) {
			return 1
		}
	case token.LabelBoundary:
		if index == 0 || index == len(input) {
			return 0
		}
	case token.LabelLiteral:
		return matchAt(input, label.Token, index)
	case token.LabelAlias:
		for _, alt := range label.Alternatives {
			if n := matchAt(input, alt, index); n >= 0 {
				return n
			}
		}
	}
	return -1
}

func matchAt(input, tok []Segment, index int) int {
	if index+len(tok) > len(input) {
		return -1
	}
	for i, seg := range tok {
		if !seg.Matches(input[index+i]) {
			return -1
		}
	}
	return len(tok)
}

var _ token.Domain[[]Segment, []Segment] = (*Domain)(nil)
