package feature

import "strings"

// Segment is one phonetic segment: a value (or Unspecified) for every feature
// of its model.
type Segment struct {
	model  *Model
	symbol string
	values []string
}

// Symbol returns the inventory symbol of s, or "" for an anonymous segment.
func (s Segment) Symbol() string {
	return s.symbol
}

// Model returns the model s belongs to.
func (s Segment) Model() *Model {
	return s.model
}

// Value returns the value of feature f, Unspecified if s leaves it open or the
// model has no such feature.
func (s Segment) Value(f string) string {
	if s.model == nil {
		return Unspecified
	}
	i, ok := s.model.index[f]
	if !ok {
		return Unspecified
	}
	return s.values[i]
}

// Matches reports whether s and o agree on every feature both specify.
// Segments of different models never match.
func (s Segment) Matches(o Segment) bool {
	if s.model != o.model || s.model == nil {
		return false
	}
	for i, v := range s.values {
		w := o.values[i]
		if v != Unspecified && w != Unspecified && v != w {
			return false
		}
	}
	return true
}

// String returns the symbol, or the specified features in brackets.
func (s Segment) String() string {
	if s.symbol != "" {
		return s.symbol
	}
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	for i, v := range s.values {
		if v == Unspecified {
			continue
		}
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(s.model.features[i])
		sb.WriteByte('=')
		sb.WriteString(v)
	}
	sb.WriteByte(']')
	return sb.String()
}

// Join concatenates the symbols of segs.
func Join(segs []Segment) string {
	var sb strings.Builder
	for _, s := range segs {
		sb.WriteString(s.String())
	}
	return sb.String()
}
