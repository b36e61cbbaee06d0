// Package catalog implements the search, filter and sort pipeline shared by every
// listing page. An Engine is configured once per record type and answers queries
// without touching the records it was built from.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// ViewMode selects between card and row presentation. It never affects results.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// ParseViewMode normalises a raw mode value, defaulting to grid.
func ParseViewMode(raw string) ViewMode {
	if strings.EqualFold(strings.TrimSpace(raw), string(ViewList)) {
		return ViewList
	}
	return ViewGrid
}

// Query is the user-controlled state a listing page feeds into the engine.
type Query struct {
	Term    string
	Filters Selection
	Sort    string
	Mode    ViewMode
}

// MatchMode controls how a dimension compares selected values to record values.
type MatchMode int

const (
	// MatchExact keeps records whose value equals a selected value.
	MatchExact MatchMode = iota
	// MatchContains keeps records whose value contains a selected value, ignoring case.
	MatchContains
)

// TextField extracts searchable strings from a record.
type TextField[T any] func(T) []string

// Text declares a single-valued searchable attribute.
func Text[T any](field func(T) string) TextField[T] {
	return func(rec T) []string { return []string{field(rec)} }
}

// Texts declares a multi-valued searchable attribute such as a tag list.
func Texts[T any](field func(T) []string) TextField[T] {
	return TextField[T](field)
}

// Dimension declares one category filter.
type Dimension[T any] struct {
	Name   string
	Label  string
	Values func(T) []string
	Match  MatchMode
}

// One adapts a single-valued accessor for use as Dimension.Values.
func One[T any](field func(T) string) func(T) []string {
	return func(rec T) []string {
		v := field(rec)
		if v == "" {
			return nil
		}
		return []string{v}
	}
}

// Config declares everything an Engine needs to know about a record type.
type Config[T any] struct {
	Search      []TextField[T]
	Dimensions  []Dimension[T]
	Sorts       []SortStrategy[T]
	DefaultSort string
}

// SortOption is a sort key and its display label.
type SortOption struct {
	Key   string
	Label string
}

// DimensionInfo describes a declared dimension.
type DimensionInfo struct {
	Name  string
	Label string
}

// Facet is a distinct dimension value and the number of records carrying it.
type Facet struct {
	Value string `json:"name"`
	Count int    `json:"count"`
}

// Engine answers queries over an immutable record set. It is safe for concurrent use.
type Engine[T any] struct {
	records     []T
	search      []TextField[T]
	dimensions  []Dimension[T]
	dimIndex    map[string]int
	sorts       []SortStrategy[T]
	sortIndex   map[string]int
	defaultSort string
}

// New builds an engine over a private copy of records.
func New[T any](records []T, cfg Config[T]) *Engine[T] {
	e := &Engine[T]{
		records:     append([]T(nil), records...),
		search:      append([]TextField[T](nil), cfg.Search...),
		dimensions:  append([]Dimension[T](nil), cfg.Dimensions...),
		dimIndex:    make(map[string]int, len(cfg.Dimensions)),
		sorts:       append([]SortStrategy[T](nil), cfg.Sorts...),
		sortIndex:   make(map[string]int, len(cfg.Sorts)),
		defaultSort: cfg.DefaultSort,
	}
	for i, dim := range e.dimensions {
		e.dimIndex[dim.Name] = i
	}
	for i, s := range e.sorts {
		e.sortIndex[s.Key] = i
	}
	return e
}

// Len returns the number of records the engine was built with.
func (e *Engine[T]) Len() int {
	return len(e.records)
}

// All returns a copy of the records in source order.
func (e *Engine[T]) All() []T {
	return append([]T(nil), e.records...)
}

// DefaultSort returns the key used when a query names no sort.
func (e *Engine[T]) DefaultSort() string {
	return e.defaultSort
}

// Sorts lists the declared sort strategies in declaration order.
func (e *Engine[T]) Sorts() []SortOption {
	out := make([]SortOption, 0, len(e.sorts))
	for _, s := range e.sorts {
		out = append(out, SortOption{Key: s.Key, Label: s.Label})
	}
	return out
}

// Dimensions lists the declared filter dimensions in declaration order.
func (e *Engine[T]) Dimensions() []DimensionInfo {
	out := make([]DimensionInfo, 0, len(e.dimensions))
	for _, d := range e.dimensions {
		out = append(out, DimensionInfo{Name: d.Name, Label: d.Label})
	}
	return out
}

// HasDimension reports whether name is a declared dimension.
func (e *Engine[T]) HasDimension(name string) bool {
	_, ok := e.dimIndex[name]
	return ok
}

// ResolveSort returns the sort key a query would actually apply. Unknown keys
// resolve to "" meaning source order.
func (e *Engine[T]) ResolveSort(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		key = e.defaultSort
	}
	if _, ok := e.sortIndex[key]; ok {
		return key
	}
	return ""
}

// Query runs text filter, category filters and sort, in that order, and returns a
// new slice. The engine's records are never reordered or modified.
func (e *Engine[T]) Query(q Query) []T {
	term := strings.TrimSpace(q.Term)
	folder := cases.Fold()
	if term != "" {
		term = folder.String(term)
	}
	filters := e.activeFilters(q.Filters, folder)

	out := make([]T, 0, len(e.records))
	for _, rec := range e.records {
		if term != "" && !e.matchesTerm(rec, term, folder) {
			continue
		}
		if !matchesFilters(rec, filters, folder) {
			continue
		}
		out = append(out, rec)
	}

	if key := e.ResolveSort(q.Sort); key != "" {
		strategy := e.sorts[e.sortIndex[key]]
		if strategy.Compare != nil {
			sort.SliceStable(out, func(i, j int) bool {
				return strategy.Compare(out[i], out[j]) < 0
			})
		}
	}
	return out
}

// Facets counts records per distinct value of dimension, most common first.
// Unknown dimensions yield nil.
func (e *Engine[T]) Facets(dimension string) []Facet {
	idx, ok := e.dimIndex[dimension]
	if !ok {
		return nil
	}
	dim := e.dimensions[idx]
	counts := make(map[string]int)
	for _, rec := range e.records {
		seen := make(map[string]struct{})
		for _, v := range dim.Values(rec) {
			if v == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			counts[v]++
		}
	}
	out := make([]Facet, 0, len(counts))
	for v, n := range counts {
		out = append(out, Facet{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

func (e *Engine[T]) matchesTerm(rec T, term string, folder cases.Caser) bool {
	for _, field := range e.search {
		for _, v := range field(rec) {
			if v == "" {
				continue
			}
			if strings.Contains(folder.String(v), term) {
				return true
			}
		}
	}
	return false
}

type activeFilter[T any] struct {
	dim    Dimension[T]
	values Set
	folded []string
}

func (e *Engine[T]) activeFilters(sel Selection, folder cases.Caser) []activeFilter[T] {
	if len(sel) == 0 {
		return nil
	}
	// Iterate declared dimensions so evaluation order is independent of map order.
	filters := make([]activeFilter[T], 0, len(sel))
	for _, dim := range e.dimensions {
		set, ok := sel[dim.Name]
		if !ok || len(set) == 0 {
			continue
		}
		f := activeFilter[T]{dim: dim, values: set}
		if dim.Match == MatchContains {
			for _, v := range set.Values() {
				f.folded = append(f.folded, folder.String(v))
			}
		}
		filters = append(filters, f)
	}
	return filters
}

func matchesFilters[T any](rec T, filters []activeFilter[T], folder cases.Caser) bool {
	for _, f := range filters {
		if !f.matches(rec, folder) {
			return false
		}
	}
	return true
}

func (f activeFilter[T]) matches(rec T, folder cases.Caser) bool {
	for _, v := range f.dim.Values(rec) {
		switch f.dim.Match {
		case MatchContains:
			folded := folder.String(v)
			for _, want := range f.folded {
				if strings.Contains(folded, want) {
					return true
				}
			}
		default:
			if f.values.Has(v) {
				return true
			}
		}
	}
	return false
}
