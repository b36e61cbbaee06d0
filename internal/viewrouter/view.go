// Package viewrouter keeps the current page view in sync with the address fragment.
package viewrouter

import "strings"

// View identifies one top-level page of the site.
type View string

const (
	Home           View = "home"
	Startups       View = "startups"
	Investors      View = "investors"
	Partnerships   View = "partnerships"
	SuccessStories View = "success-stories"
	GrowthTools    View = "growth-tools"
)

// Default is the view used for empty or unrecognised fragments.
const Default = Home

var allViews = []View{Home, Startups, Investors, Partnerships, SuccessStories, GrowthTools}

// Views returns every valid view in navigation order.
func Views() []View {
	return append([]View(nil), allViews...)
}

// Valid reports whether v belongs to the fixed view set.
func (v View) Valid() bool {
	for _, candidate := range allViews {
		if v == candidate {
			return true
		}
	}
	return false
}

// Fragment returns the canonical fragment for v, e.g. "#startups".
func (v View) Fragment() string {
	return "#" + string(v)
}

func (v View) String() string { return string(v) }

// Parse matches an exact view id.
func Parse(id string) (View, bool) {
	v := View(id)
	return v, v.Valid()
}

// Resolve maps any fragment to a valid view. It never fails: anything that is not a
// known view, after trimming and removing "#" and "/" prefixes, resolves to Default.
func Resolve(fragment string) View {
	id := strings.TrimSpace(fragment)
	id = strings.TrimPrefix(id, "#")
	id = strings.TrimPrefix(id, "/")
	id = strings.ToLower(strings.TrimSpace(id))
	if v, ok := Parse(id); ok {
		return v
	}
	return Default
}
