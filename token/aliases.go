package token

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Aliases maps a symbolic name to literal alternatives of possibly different
// lengths. Alternatives keep their registration order, which is the order a
// matcher tries them in.
//
// An Aliases table must not be modified once a pattern using it is compiled.
type Aliases struct {
	alts map[string][]string
}

// NewAliases returns an empty table.
func NewAliases() *Aliases {
	return &Aliases{alts: make(map[string][]string)}
}

// Add registers name with the given alternatives.
func (a *Aliases) Add(name string, alternatives ...string) error {
	if len(alternatives) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyAlias, name)
	}
	if _, ok := a.alts[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateAlias, name)
	}
	a.alts[name] = slices.Clone(alternatives)
	return nil
}

// Lookup returns the alternatives registered for name.
func (a *Aliases) Lookup(name string) ([]string, bool) {
	if a == nil {
		return nil, false
	}
	alts, ok := a.alts[name]
	return alts, ok
}

// Names returns the registered names, sorted.
func (a *Aliases) Names() []string {
	if a == nil {
		return nil
	}
	names := maps.Keys(a.alts)
	slices.Sort(names)
	return names
}

// Len returns the number of registered names.
func (a *Aliases) Len() int {
	if a == nil {
		return 0
	}
	return len(a.alts)
}
