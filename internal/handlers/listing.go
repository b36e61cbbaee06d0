package handlers

import (
	"context"

	"go.uber.org/zap"

	"visnex.global/web/internal/catalog"
	"visnex.global/web/internal/platform/requestctx"
)

// Listing is the shared state of a searchable, filterable card list.
type Listing struct {
	// Action is the results endpoint the search form targets.
	Action       string
	TermParam    string
	Hidden       []Field
	Term         string
	Mode         catalog.ViewMode
	Sort         string
	Sorts        []SortChoice
	Filters      []FilterGroup
	Count        int
	Total        int
	Empty        bool
	EmptyMessage string
	Filtered     bool
	SelfHref     string
	ClearHref    string
	GridHref     string
	ListHref     string
}

// SortChoice is one option of the sort dropdown.
type SortChoice struct {
	Key      string
	Label    string
	Selected bool
	Href     string
}

// FilterGroup is one filter dimension with its selectable values.
type FilterGroup struct {
	Name    string
	Label   string
	Options []FilterOption
}

// FilterOption is a checkbox, chip or dropdown entry.
type FilterOption struct {
	Value    string
	Label    string
	Count    int
	Selected bool
	Href     string
}

// Selected returns the checked options of the group.
func (g FilterGroup) Selected() []FilterOption {
	var out []FilterOption
	for _, opt := range g.Options {
		if opt.Selected {
			out = append(out, opt)
		}
	}
	return out
}

func newListing(links Links, sorts []catalog.SortOption, resolvedSort string, count, total int, empty string) Listing {
	q := links.Query
	l := Listing{
		Action:    links.Base,
		TermParam: links.TermParam(),
		Hidden:    links.Hidden(),
		Term:      q.Term,
		Mode:      q.Mode,
		Sort:      resolvedSort,
		Count:     count,
		Total:     total,
		Empty:     count == 0,
		Filtered:  q.Term != "" || q.Filters.Active(),
		SelfHref:  links.Self(),
		ClearHref: links.Clear(),
		GridHref:  links.Mode(catalog.ViewGrid),
		ListHref:  links.Mode(catalog.ViewList),
	}
	if l.Empty {
		l.EmptyMessage = empty
	}
	for _, s := range sorts {
		l.Sorts = append(l.Sorts, SortChoice{
			Key:      s.Key,
			Label:    s.Label,
			Selected: s.Key == resolvedSort,
			Href:     links.Sort(s.Key),
		})
	}
	return l
}

// facetGroup turns facet counts into toggle options. Selected values missing from the
// facets still appear so they can be unchecked.
func facetGroup(links Links, name, label string, facets []catalog.Facet) FilterGroup {
	selected := links.Query.Filters.Get(name)
	group := FilterGroup{Name: name, Label: label}
	seen := make(map[string]bool, len(facets))
	for _, f := range facets {
		seen[f.Value] = true
		group.Options = append(group.Options, FilterOption{
			Value:    f.Value,
			Label:    f.Value,
			Count:    f.Count,
			Selected: selected.Has(f.Value),
			Href:     links.Toggle(name, f.Value),
		})
	}
	for _, v := range selected.Values() {
		if seen[v] {
			continue
		}
		group.Options = append(group.Options, FilterOption{
			Value:    v,
			Label:    v,
			Selected: true,
			Href:     links.Toggle(name, v),
		})
	}
	return group
}

// facetsOrEmpty logs and swallows facet errors so a missing dimension only hides
// its filter block.
func facetsOrEmpty(ctx context.Context, name string, load func(context.Context, string) ([]catalog.Facet, error)) []catalog.Facet {
	facets, err := load(ctx, name)
	if err != nil {
		requestctx.Logger(ctx).Warn("facets unavailable", zap.String("dimension", name), zap.Error(err))
		return nil
	}
	return facets
}
