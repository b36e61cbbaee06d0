package catalog

import (
	"sort"
	"strings"
)

// Set is an unordered collection of selected filter values.
type Set map[string]struct{}

// NewSet builds a set from the provided values, skipping blanks.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether value is selected.
func (s Set) Has(value string) bool {
	_, ok := s[value]
	return ok
}

// Values returns the selected values in lexical order.
func (s Set) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold the same values.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for v := range s {
		if !other.Has(v) {
			return false
		}
	}
	return true
}

// Toggle returns a new set with value removed when present and added otherwise.
// The input set is left untouched.
func Toggle(set Set, value string) Set {
	out := set.Clone()
	if out.Has(value) {
		delete(out, value)
		return out
	}
	out[value] = struct{}{}
	return out
}

// Selection maps a filter dimension name to its selected values.
type Selection map[string]Set

// Get returns the selected values for dimension, or an empty set.
func (s Selection) Get(dimension string) Set {
	if set, ok := s[dimension]; ok && set != nil {
		return set
	}
	return Set{}
}

// Toggle returns a new selection with value toggled in dimension.
func (s Selection) Toggle(dimension, value string) Selection {
	out := make(Selection, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	toggled := Toggle(s.Get(dimension), value)
	if len(toggled) == 0 {
		delete(out, dimension)
		return out
	}
	out[dimension] = toggled
	return out
}

// With returns a new selection where dimension holds exactly the given values.
func (s Selection) With(dimension string, values ...string) Selection {
	out := make(Selection, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	set := NewSet(values...)
	if len(set) == 0 {
		delete(out, dimension)
		return out
	}
	out[dimension] = set
	return out
}

// Active reports whether any dimension has a selected value.
func (s Selection) Active() bool {
	for _, set := range s {
		if len(set) > 0 {
			return true
		}
	}
	return false
}
