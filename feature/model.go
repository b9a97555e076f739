// Package feature is a token domain of phonetic segments described by
// feature values.
//
// A Model names a set of features and an inventory of segment symbols, each
// with a value for some of those features. A feature a segment leaves out is
// unspecified and matches any value, so an underspecified symbol in a pattern
// stands for a whole natural class and an underspecified input segment is
// matched by any pattern segment that agrees on the features it does carry.
package feature

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"sigs.k8s.io/yaml"

	"github.com/coregx/seqmatch/token"
)

var (
	// ErrInvalidModel indicates a malformed feature model
	ErrInvalidModel = errors.New("invalid feature model")

	// ErrUnknownFeature indicates a feature name the model does not define
	ErrUnknownFeature = errors.New("unknown feature")

	// ErrUnknownSegment indicates text that cannot be segmented with the
	// model's inventory
	ErrUnknownSegment = errors.New("unknown segment")
)

// Unspecified is the value of a feature a segment does not specify.
const Unspecified = ""

// Model is an immutable feature model. It is safe for concurrent use.
type Model struct {
	features []string
	index    map[string]int
	segments map[string]Segment
	// symbols sorted longest first, for segmentation
	symbols []string
	aliases *token.Aliases
}

// modelFile is the YAML form of a Model:
//
//	features: [voice, place]
//	segments:
//	  p: {voice: "-", place: labial}
//	  b: {voice: "+", place: labial}
//	  P: {place: labial}
//	aliases:
//	  STOP: [p, b]
type modelFile struct {
	Features []string                     `json:"features"`
	Segments map[string]map[string]string `json:"segments"`
	Aliases  map[string][]string          `json:"aliases"`
}

// NewModel creates a model with the given features and no segments.
func NewModel(features ...string) (*Model, error) {
	m := &Model{
		features: slices.Clone(features),
		index:    make(map[string]int, len(features)),
		segments: make(map[string]Segment),
		aliases:  token.NewAliases(),
	}
	for i, f := range features {
		if f == "" {
			return nil, fmt.Errorf("%w: empty feature name", ErrInvalidModel)
		}
		if _, dup := m.index[f]; dup {
			return nil, fmt.Errorf("%w: duplicate feature %q", ErrInvalidModel, f)
		}
		m.index[f] = i
	}
	return m, nil
}

// ParseModel decodes a model from YAML.
func ParseModel(data []byte) (*Model, error) {
	var file modelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	m, err := NewModel(file.Features...)
	if err != nil {
		return nil, err
	}
	for _, sym := range sortedKeys(file.Segments) {
		if err := m.AddSegment(sym, file.Segments[sym]); err != nil {
			return nil, err
		}
	}
	for _, name := range sortedKeys(file.Aliases) {
		if err := m.AddAlias(name, file.Aliases[name]...); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// LoadModel reads a model from a YAML file.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseModel(data)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// AddSegment registers symbol with the given feature values. Features not in
// values are unspecified. The model must not be modified once in use.
func (m *Model) AddSegment(symbol string, values map[string]string) error {
	if symbol == "" || strings.ContainsAny(symbol, "!?*+(){}.# \t\n") {
		return fmt.Errorf("%w: bad segment symbol %q", ErrInvalidModel, symbol)
	}
	if _, dup := m.segments[symbol]; dup {
		return fmt.Errorf("%w: duplicate segment %q", ErrInvalidModel, symbol)
	}
	seg, err := m.NewSegment(values)
	if err != nil {
		return fmt.Errorf("segment %q: %w", symbol, err)
	}
	seg.symbol = symbol
	m.segments[symbol] = seg
	m.symbols = append(m.symbols, symbol)
	slices.SortStableFunc(m.symbols, func(a, b string) bool {
		la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
		if la != lb {
			return la > lb
		}
		return a < b
	})
	return nil
}

// AddAlias registers an alias over segment strings of the model.
func (m *Model) AddAlias(name string, alternatives ...string) error {
	if _, clash := m.segments[name]; clash {
		return fmt.Errorf("%w: alias %q shadows a segment", ErrInvalidModel, name)
	}
	for _, alt := range alternatives {
		if _, err := m.Sequence(alt); err != nil {
			return fmt.Errorf("alias %q: %w", name, err)
		}
	}
	return m.aliases.Add(name, alternatives...)
}

// NewSegment returns an anonymous segment with the given feature values.
func (m *Model) NewSegment(values map[string]string) (Segment, error) {
	seg := Segment{model: m, values: make([]string, len(m.features))}
	for f, v := range values {
		i, ok := m.index[f]
		if !ok {
			return Segment{}, fmt.Errorf("%w: %q", ErrUnknownFeature, f)
		}
		seg.values[i] = v
	}
	return seg, nil
}

// Features returns the feature names in declaration order.
func (m *Model) Features() []string {
	return slices.Clone(m.features)
}

// Symbols returns the segment inventory, sorted.
func (m *Model) Symbols() []string {
	return sortedKeys(m.segments)
}

// Segment returns the segment registered as symbol.
func (m *Model) Segment(symbol string) (Segment, bool) {
	seg, ok := m.segments[symbol]
	return seg, ok
}

// Aliases returns the model's alias table.
func (m *Model) Aliases() *token.Aliases {
	return m.aliases
}

// Sequence segments word using the longest inventory symbol at each position.
func (m *Model) Sequence(word string) ([]Segment, error) {
	out := make([]Segment, 0, len(word))
	for rest := word; rest != ""; {
		seg, n := m.longest(rest)
		if n == 0 {
			r, _ := utf8.DecodeRuneInString(rest)
			return nil, fmt.Errorf("%w: %q in %q", ErrUnknownSegment, r, word)
		}
		out = append(out, seg)
		rest = rest[n:]
	}
	return out, nil
}

func (m *Model) longest(s string) (Segment, int) {
	for _, sym := range m.symbols {
		if strings.HasPrefix(s, sym) {
			return m.segments[sym], len(sym)
		}
	}
	return Segment{}, 0
}
