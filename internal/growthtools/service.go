package growthtools

import (
	"context"
	"errors"
	"strings"

	"visnex.global/web/internal/catalog"
)

// ErrNotFound indicates the requested tool does not exist.
var ErrNotFound = errors.New("growth tool not found")

// Service exposes the growth tools library.
type Service interface {
	Search(ctx context.Context, query catalog.Query) (Result, error)
	Get(ctx context.Context, id string) (Tool, error)
	Stats(ctx context.Context) ([]Stat, error)
	Filters() []Filter
}

// DimSection is the only filter dimension of the library.
const DimSection = "section"

// SortDefault keeps the library order.
const SortDefault = "default"

// Section names as stored on each tool.
const (
	SectionCalculators = "calculators"
	SectionTemplates   = "templates"
	SectionGuides      = "guides"
	SectionMentors     = "mentors"
	SectionEvents      = "events"
	SectionAssessments = "assessments"
)

// FilterAll shows every section.
const FilterAll = "all"

// Filter is one tab of the section filter bar.
type Filter struct {
	Key      string
	Label    string
	Sections []string
}

var filters = []Filter{
	{Key: FilterAll, Label: "All Tools"},
	{Key: "calculators", Label: "Calculators", Sections: []string{SectionCalculators}},
	{Key: "templates", Label: "Templates", Sections: []string{SectionTemplates}},
	{Key: "guides", Label: "Guides", Sections: []string{SectionGuides}},
	{Key: "mentorship", Label: "Mentorship", Sections: []string{SectionMentors}},
	{Key: "events", Label: "Events", Sections: []string{SectionEvents}},
	{Key: "assessments", Label: "Assessments", Sections: []string{SectionAssessments}},
}

// Filters lists the section filter tabs in display order.
func Filters() []Filter {
	out := make([]Filter, len(filters))
	copy(out, filters)
	return out
}

// ParseFilter returns the filter for key, falling back to FilterAll.
func ParseFilter(key string) Filter {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, f := range filters {
		if f.Key == key {
			return f
		}
	}
	return filters[0]
}

// Selection converts the filter into a catalog selection. FilterAll is empty.
func (f Filter) Selection() catalog.Selection {
	if len(f.Sections) == 0 {
		return catalog.Selection{}
	}
	return catalog.Selection{}.With(DimSection, f.Sections...)
}

// Detail is a labelled fact on a tool card (duration, price, date).
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Tool is one calculator, template, guide, mentor, event or assessment.
type Tool struct {
	ID          string   `json:"id"`
	Section     string   `json:"section"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features,omitempty"`
	Popular     bool     `json:"popular"`
	Summary     string   `json:"summary,omitempty"`
	Details     []Detail `json:"details,omitempty"`
}

// Stat is a headline number for the library.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Result groups the matching tools by section, in library order.
type Result struct {
	Items    []Tool
	Total    int
	Sections []Group
}

// Group is the tools of one section.
type Group struct {
	Section string
	Tools   []Tool
}

// GroupBySection splits tools into consecutive per-section groups in first-seen order.
func GroupBySection(tools []Tool) []Group {
	var groups []Group
	index := map[string]int{}
	for _, t := range tools {
		i, ok := index[t.Section]
		if !ok {
			i = len(groups)
			index[t.Section] = i
			groups = append(groups, Group{Section: t.Section})
		}
		groups[i].Tools = append(groups[i].Tools, t)
	}
	return groups
}
