package nav

import (
	"visnex.global/web/internal/viewrouter"
)

// Item represents a top-level navigation item.
type Item struct {
	View  viewrouter.View
	Label string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	View viewrouter.View
	// Href is the fragment link, usable without JavaScript.
	Href string
	// Swap is the htmx endpoint that renders the view partial.
	Swap   string
	Label  string
	Active bool
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Labeler resolves the nav label for a view.
type Labeler func(viewrouter.View) string

// Main is the primary navigation definition with fallback labels.
var Main = []Item{
	{View: viewrouter.Home, Label: "Home"},
	{View: viewrouter.Startups, Label: "Startups"},
	{View: viewrouter.Investors, Label: "Investors"},
	{View: viewrouter.Partnerships, Label: "Partnerships"},
	{View: viewrouter.SuccessStories, Label: "Success Stories"},
	{View: viewrouter.GrowthTools, Label: "Growth Tools"},
}

// SwapPath is the internal-transition endpoint for v.
func SwapPath(v viewrouter.View) string {
	return "/views/" + string(v)
}

// Build renders navigation items with the current view marked active. labels may
// be nil; empty labels fall back to Main.
func Build(current viewrouter.View, labels Labeler) []RenderedItem {
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		label := it.Label
		if labels != nil {
			if l := labels(it.View); l != "" {
				label = l
			}
		}
		items = append(items, RenderedItem{
			View:   it.View,
			Href:   "/" + it.View.Fragment(),
			Swap:   SwapPath(it.View),
			Label:  label,
			Active: it.View == current,
		})
	}
	return items
}

// Breadcrumbs starts at Home and ends at the current view.
func Breadcrumbs(current viewrouter.View, labels Labeler) []Crumb {
	home := Crumb{Href: "/", Label: labelFor(viewrouter.Home, labels), Active: current == viewrouter.Home}
	if current == viewrouter.Home || !current.Valid() {
		home.Active = true
		return []Crumb{home}
	}
	return []Crumb{
		home,
		{Href: "/" + current.Fragment(), Label: labelFor(current, labels), Active: true},
	}
}

func labelFor(v viewrouter.View, labels Labeler) string {
	if labels != nil {
		if l := labels(v); l != "" {
			return l
		}
	}
	for _, it := range Main {
		if it.View == v {
			return it.Label
		}
	}
	return string(v)
}
