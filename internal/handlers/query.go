package handlers

import (
	"net/url"
	"sort"
	"strings"

	"visnex.global/web/internal/catalog"
)

// Query parameter names shared by every listing.
const (
	ParamTerm   = "q"
	ParamSort   = "sort"
	ParamMode   = "mode"
	ParamToggle = "toggle"
)

// Codec maps a listing's query state to and from URL parameters. Prefix keeps two
// listings on one page apart; Dimensions lists the repeatable filter params.
type Codec struct {
	Prefix     string
	Dimensions []string
}

func (c Codec) key(name string) string {
	return c.Prefix + name
}

// Parse reads the term, sort, mode and dimension values, then applies every
// toggle=dimension:value pair in order. Toggles naming other dimensions are dropped.
func (c Codec) Parse(values url.Values) catalog.Query {
	q := catalog.Query{
		Term:    strings.TrimSpace(values.Get(c.key(ParamTerm))),
		Sort:    strings.TrimSpace(values.Get(c.key(ParamSort))),
		Mode:    catalog.ParseViewMode(values.Get(c.key(ParamMode))),
		Filters: catalog.Selection{},
	}
	for _, dim := range c.Dimensions {
		if raw, ok := values[c.key(dim)]; ok {
			q.Filters = q.Filters.With(dim, raw...)
		}
	}
	for _, raw := range values[c.key(ParamToggle)] {
		dim, value, ok := strings.Cut(raw, ":")
		dim, value = strings.TrimSpace(dim), strings.TrimSpace(value)
		if !ok || value == "" || !c.known(dim) {
			continue
		}
		q.Filters = q.Filters.Toggle(dim, value)
	}
	return q
}

func (c Codec) known(dim string) bool {
	for _, d := range c.Dimensions {
		if d == dim {
			return true
		}
	}
	return false
}

// Encode writes q into dst using this codec's parameter names. Only declared
// dimensions are written; grid mode and empty values are omitted.
func (c Codec) Encode(dst url.Values, q catalog.Query) {
	if term := strings.TrimSpace(q.Term); term != "" {
		dst.Set(c.key(ParamTerm), term)
	}
	if q.Sort != "" {
		dst.Set(c.key(ParamSort), q.Sort)
	}
	if q.Mode == catalog.ViewList {
		dst.Set(c.key(ParamMode), string(catalog.ViewList))
	}
	dims := append([]string(nil), c.Dimensions...)
	sort.Strings(dims)
	for _, dim := range dims {
		for _, v := range q.Filters.Get(dim).Values() {
			dst.Add(c.key(dim), v)
		}
	}
}

// Links builds hrefs for one listing. Every href keeps the rest of the page state
// (other listings, tabs) carried in Keep.
type Links struct {
	Base  string
	Codec Codec
	Query catalog.Query
	Keep  url.Values
}

func (l Links) href(q catalog.Query) string {
	values := cloneQuery(l.Keep)
	l.Codec.Encode(values, q)
	if len(values) == 0 {
		return l.Base
	}
	return l.Base + "?" + values.Encode()
}

// Self links to the current state.
func (l Links) Self() string {
	return l.href(l.Query)
}

// Toggle links to the state with value flipped in dimension.
func (l Links) Toggle(dimension, value string) string {
	q := l.Query
	q.Filters = q.Filters.Toggle(dimension, value)
	return l.href(q)
}

// Select links to the state with dimension holding exactly values. No values clears it.
func (l Links) Select(dimension string, values ...string) string {
	q := l.Query
	q.Filters = q.Filters.With(dimension, values...)
	return l.href(q)
}

// Sort links to the state ordered by key.
func (l Links) Sort(key string) string {
	q := l.Query
	q.Sort = key
	return l.href(q)
}

// Mode links to the state shown in mode.
func (l Links) Mode(mode catalog.ViewMode) string {
	q := l.Query
	q.Mode = mode
	return l.href(q)
}

// Field is one hidden form input.
type Field struct {
	Name  string
	Value string
}

// TermParam is the name of the search input.
func (l Links) TermParam() string {
	return l.Codec.key(ParamTerm)
}

// Hidden lists the current state minus the term, so a search form submits
// everything else unchanged.
func (l Links) Hidden() []Field {
	q := l.Query
	q.Term = ""
	values := cloneQuery(l.Keep)
	l.Codec.Encode(values, q)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []Field
	for _, k := range keys {
		for _, v := range values[k] {
			out = append(out, Field{Name: k, Value: v})
		}
	}
	return out
}

// Clear drops the term and every filter. Sort and mode survive.
func (l Links) Clear() string {
	return l.href(catalog.Query{Sort: l.Query.Sort, Mode: l.Query.Mode})
}

func cloneQuery(values url.Values) url.Values {
	cp := url.Values{}
	for k, vv := range values {
		for _, v := range vv {
			cp.Add(k, v)
		}
	}
	return cp
}
