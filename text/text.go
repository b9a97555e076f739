// Package text is the plain string token domain.
//
// A token is a character cluster: one character followed by any combining
// marks and modifier letters, so "pʰ" is a single token and "." matches it
// whole. Inputs are cluster slices built with Input.
package text

import (
	"fmt"
	"os"
	"strings"

	"github.com/coregx/ahocorasick"
	"sigs.k8s.io/yaml"

	"github.com/coregx/seqmatch/expr"
	"github.com/coregx/seqmatch/token"
)

// Domain implements token.Domain over cluster slices. It is stateless after
// construction and safe for concurrent use.
type Domain struct {
	aliases *token.Aliases
	symbols []string
}

// NewDomain returns a domain with the given alias table (may be nil) and
// extra multi-character symbols the pattern grammar should keep whole.
func NewDomain(aliases *token.Aliases, symbols ...string) *Domain {
	return &Domain{aliases: aliases, symbols: symbols}
}

// Input splits s into clusters.
func Input(s string) []string {
	return expr.Clusters(s)
}

// Reverse reverses s cluster by cluster, so modifiers stay attached.
func Reverse(s string) string {
	return strings.Join(ReverseInput(Input(s)), "")
}

// ReverseInput returns a reversed copy of in.
func ReverseInput(in []string) []string {
	out := make([]string, len(in))
	for i, c := range in {
		out[len(in)-1-i] = c
	}
	return out
}

// Transform implements token.Parser. Every non-empty literal is its own token.
func (d *Domain) Transform(literal string) (string, error) {
	if literal == "" {
		return "", fmt.Errorf("%w: empty literal", token.ErrUnknownLiteral)
	}
	return literal, nil
}

// Len returns the number of clusters in tok.
func (d *Domain) Len(tok string) int {
	return len(expr.Clusters(tok))
}

// Reverse implements token.Parser.
func (d *Domain) Reverse(tok string) string {
	return Reverse(tok)
}

// Aliases implements token.Parser.
func (d *Domain) Aliases() *token.Aliases {
	return d.aliases
}

// Symbols implements token.Parser.
func (d *Domain) Symbols() []string {
	return d.symbols
}

// Length implements token.Matcher.
func (d *Domain) Length(input []string) int {
	return len(input)
}

// Match implements token.Matcher. The boundary anchor matches, with zero
// width, at either edge of the input.
func (d *Domain) Match(input []string, label token.Label[string], index int) int {
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
		return -1
	case token.LabelBoundary:
		if index == 0 || index == len(input) {
			return 0
		}
		return -1
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

// matchAt returns how many clusters of input starting at index spell tok.
func matchAt(input []string, tok string, index int) int {
	i := index
	for rest := tok; rest != ""; i++ {
		if i >= len(input) || !strings.HasPrefix(rest, input[i]) {
			return -1
		}
		rest = rest[len(input[i]):]
	}
	return i - index
}

// Prefilter implements token.Prefilterer with an Aho-Corasick automaton over
// the required literals. It returns nil if the automaton cannot be built.
func (d *Domain) Prefilter(required []string) token.Prefilter[[]string] {
	if len(required) == 0 {
		return nil
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range required {
		builder.AddPattern([]byte(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &prefilter{auto: auto}
}

type prefilter struct {
	auto *ahocorasick.Automaton
}

// MayMatch reports whether any required literal occurs in input.
func (p *prefilter) MayMatch(input []string) bool {
	return p.auto.IsMatch([]byte(strings.Join(input, "")))
}

// ParseAliases decodes a YAML mapping of alias names to alternative lists.
//
//	V: [a, e, i, o, u]
//	CH: [th, ch]
func ParseAliases(data []byte) (*token.Aliases, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse aliases: %w", err)
	}
	aliases := token.NewAliases()
	for name, alts := range raw {
		if err := aliases.Add(name, alts...); err != nil {
			return nil, err
		}
	}
	return aliases, nil
}

// LoadAliases reads an alias table from a YAML file.
func LoadAliases(path string) (*token.Aliases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseAliases(data)
}

var (
	_ token.Domain[string, []string]      = (*Domain)(nil)
	_ token.Prefilterer[string, []string] = (*Domain)(nil)
)
