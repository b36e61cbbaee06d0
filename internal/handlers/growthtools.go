package handlers

import (
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"visnex.global/web/internal/catalog"
	"visnex.global/web/internal/content"
	"visnex.global/web/internal/growthtools"
)

// GrowthToolsResultsPath serves the growth tools fragment.
const GrowthToolsResultsPath = "/growth-tools/results"

// ParamFilter selects a growth tools section tab.
const ParamFilter = "filter"

var sectionLabels = map[string]string{
	growthtools.SectionCalculators: "Calculators",
	growthtools.SectionTemplates:   "Templates",
	growthtools.SectionGuides:      "Guides",
	growthtools.SectionMentors:     "Mentors",
	growthtools.SectionEvents:      "Upcoming Events",
	growthtools.SectionAssessments: "Assessments",
}

// GrowthToolsView is the growth tools library payload.
type GrowthToolsView struct {
	Term      string
	Filter    string
	Filters   []TabLink
	Groups    []ToolGroup
	Count     int
	Total     int
	Empty     bool
	EmptyText string
	ClearHref string
	Stats     []growthtools.Stat
}

// ToolGroup is one section block.
type ToolGroup struct {
	Section string
	Label   string
	Tools   []ToolCard
}

// ToolCard is a tool with its guide summary rendered to HTML.
type ToolCard struct {
	growthtools.Tool
	SummaryHTML template.HTML
}

func growthToolsHref(term, filter string) string {
	values := url.Values{}
	if term != "" {
		values.Set(ParamTerm, term)
	}
	if filter != "" && filter != growthtools.FilterAll {
		values.Set(ParamFilter, filter)
	}
	if len(values) == 0 {
		return GrowthToolsResultsPath
	}
	return GrowthToolsResultsPath + "?" + values.Encode()
}

// BuildGrowthTools applies the section tab and search box.
func (s *Services) BuildGrowthTools(ctx context.Context, values url.Values, empty string) (GrowthToolsView, error) {
	term := strings.TrimSpace(values.Get(ParamTerm))
	filter := growthtools.ParseFilter(values.Get(ParamFilter))

	res, err := s.GrowthTools.Search(ctx, catalog.Query{Term: term, Filters: filter.Selection()})
	if err != nil {
		return GrowthToolsView{}, fmt.Errorf("growth tools: %w", err)
	}
	s.Metrics.ObserveQuery("growth-tools", growthtools.SortDefault, len(res.Items))

	stats, err := s.GrowthTools.Stats(ctx)
	if err != nil {
		return GrowthToolsView{}, fmt.Errorf("growth tools: stats: %w", err)
	}

	view := GrowthToolsView{
		Term:      term,
		Filter:    filter.Key,
		Count:     len(res.Items),
		Total:     res.Total,
		Empty:     len(res.Items) == 0,
		ClearHref: growthToolsHref("", ""),
		Stats:     stats,
	}
	if view.Empty {
		view.EmptyText = empty
	}
	for _, f := range s.GrowthTools.Filters() {
		view.Filters = append(view.Filters, TabLink{
			Key:    f.Key,
			Label:  f.Label,
			Active: f.Key == filter.Key,
			Href:   growthToolsHref(term, f.Key),
		})
	}
	for _, g := range res.Sections {
		group := ToolGroup{Section: g.Section, Label: sectionLabels[g.Section]}
		if group.Label == "" {
			group.Label = g.Section
		}
		for _, t := range g.Tools {
			group.Tools = append(group.Tools, ToolCard{Tool: t, SummaryHTML: content.MustRender(t.Summary)})
		}
		view.Groups = append(view.Groups, group)
	}
	return view, nil
}
