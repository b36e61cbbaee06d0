package handlers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"visnex.global/web/internal/catalog"
	"visnex.global/web/internal/insights"
	"visnex.global/web/internal/investors"
)

// InvestorsResultsPath serves the investor results fragment.
const InvestorsResultsPath = "/investors/results"

// Investors page parameters outside the codec.
const (
	ParamTab      = "tab"
	ParamType     = "type"
	ParamLocation = "location"
)

var (
	investorsCodec  = Codec{Dimensions: []string{investors.DimIndustry, investors.DimStage, investors.DimStatus}}
	incubatorsCodec = Codec{Dimensions: []string{investors.DimIndustry}}
)

// InvestorsView is the investor network page payload.
type InvestorsView struct {
	Listing
	Tab        investors.Tab
	Tabs       []TabLink
	Type       string
	Types      []FilterOption
	Location   string
	Locations  []FilterOption
	Investors  []investors.Investor
	Incubators []investors.Incubator
	Stats      insights.Stats
}

// TabLink is one tab of a segmented control.
type TabLink struct {
	Key    string
	Label  string
	Active bool
	Href   string
}

type investorsRequest struct {
	tab      investors.Tab
	radio    string
	location string
	codec    Codec
	query    catalog.Query
}

func parseInvestorsRequest(values url.Values) investorsRequest {
	req := investorsRequest{
		tab:   investors.ParseTab(values.Get(ParamTab)),
		radio: strings.ToLower(strings.TrimSpace(values.Get(ParamType))),
	}
	if _, ok := investors.TypeLabel(req.radio); !ok {
		req.radio = investors.TypeAll
	}
	req.location = strings.TrimSpace(values.Get(ParamLocation))
	if strings.EqualFold(req.location, investors.AllLocations) {
		req.location = ""
	}
	req.codec = investorsCodec
	if req.tab == investors.TabIncubators {
		req.codec = incubatorsCodec
	}
	req.query = req.codec.Parse(values)
	return req
}

// engineQuery adds the radio and dropdown selections that the codec does not carry.
func (r investorsRequest) engineQuery() catalog.Query {
	q := r.query
	if label, ok := investors.TypeLabel(r.radio); ok && r.tab == investors.TabInvestors {
		q.Filters = q.Filters.With(investors.DimType, label)
	}
	if r.location != "" {
		q.Filters = q.Filters.With(investors.DimLocation, r.location)
	}
	return q
}

// keep is the page state preserved by every listing link.
func (r investorsRequest) keep() url.Values {
	keep := url.Values{}
	if r.tab == investors.TabIncubators {
		keep.Set(ParamTab, string(r.tab))
	}
	if r.radio != investors.TypeAll && r.tab == investors.TabInvestors {
		keep.Set(ParamType, r.radio)
	}
	if r.location != "" {
		keep.Set(ParamLocation, r.location)
	}
	return keep
}

// BuildInvestors renders the active tab of the investors page.
func (s *Services) BuildInvestors(ctx context.Context, values url.Values, empty string) (InvestorsView, error) {
	req := parseInvestorsRequest(values)
	q := req.engineQuery()
	keep := req.keep()
	links := Links{Base: InvestorsResultsPath, Codec: req.codec, Query: req.query, Keep: keep}

	view := InvestorsView{Tab: req.tab, Type: req.radio, Location: req.location}

	var (
		count, total int
		sortKey      string
		facets       func(context.Context, string) ([]catalog.Facet, error)
	)
	if req.tab == investors.TabIncubators {
		res, err := s.Investors.SearchIncubators(ctx, q)
		if err != nil {
			return InvestorsView{}, fmt.Errorf("incubators: %w", err)
		}
		view.Incubators = res.Items
		count, total, sortKey = len(res.Items), res.Total, res.Sort
		facets = s.Investors.IncubatorFacets
	} else {
		res, err := s.Investors.SearchInvestors(ctx, q)
		if err != nil {
			return InvestorsView{}, fmt.Errorf("investors: %w", err)
		}
		view.Investors = res.Items
		count, total, sortKey = len(res.Items), res.Total, res.Sort
		facets = s.Investors.InvestorFacets
	}
	s.Metrics.ObserveQuery(string(req.tab), sortKey, count)

	view.Listing = newListing(links, s.Investors.Sorts(req.tab), sortKey, count, total, empty)
	view.Filters = append(view.Filters, facetGroup(links, investors.DimIndustry, "Industry Focus", facetsOrEmpty(ctx, investors.DimIndustry, facets)))
	if req.tab == investors.TabInvestors {
		view.Filters = append(view.Filters,
			facetGroup(links, investors.DimStage, "Investment Stage", facetsOrEmpty(ctx, investors.DimStage, facets)),
			facetGroup(links, investors.DimStatus, "Status", facetsOrEmpty(ctx, investors.DimStatus, facets)),
		)
		view.Types = typeOptions(req, links)
	}
	view.Locations = locationOptions(req, links, facetsOrEmpty(ctx, investors.DimLocation, facets))
	view.Tabs = tabLinks(req)

	stats, err := s.Insights.Stats(ctx)
	if err != nil {
		return InvestorsView{}, fmt.Errorf("investors: stats: %w", err)
	}
	view.Stats = stats
	return view, nil
}

func typeOptions(req investorsRequest, links Links) []FilterOption {
	radios := []struct{ value, label string }{
		{investors.TypeAll, "All"},
		{investors.TypeInvestor, "Investors"},
		{investors.TypeIncubator, "Incubators"},
	}
	out := make([]FilterOption, 0, len(radios))
	for _, radio := range radios {
		l := links
		l.Keep = cloneQuery(links.Keep)
		if radio.value == investors.TypeAll {
			l.Keep.Del(ParamType)
		} else {
			l.Keep.Set(ParamType, radio.value)
		}
		out = append(out, FilterOption{
			Value:    radio.value,
			Label:    radio.label,
			Selected: req.radio == radio.value,
			Href:     l.Self(),
		})
	}
	return out
}

func locationOptions(req investorsRequest, links Links, facets []catalog.Facet) []FilterOption {
	all := links
	all.Keep = cloneQuery(links.Keep)
	all.Keep.Del(ParamLocation)
	out := []FilterOption{{
		Value:    investors.AllLocations,
		Label:    investors.AllLocations,
		Selected: req.location == "",
		Href:     all.Self(),
	}}
	for _, f := range facets {
		l := links
		l.Keep = cloneQuery(links.Keep)
		l.Keep.Set(ParamLocation, f.Value)
		out = append(out, FilterOption{
			Value:    f.Value,
			Label:    f.Value,
			Count:    f.Count,
			Selected: strings.EqualFold(req.location, f.Value),
			Href:     l.Self(),
		})
	}
	return out
}

// tabLinks switch tabs and start the new tab from a clean query.
func tabLinks(req investorsRequest) []TabLink {
	tabs := []struct {
		tab   investors.Tab
		label string
	}{
		{investors.TabInvestors, "Investors"},
		{investors.TabIncubators, "Incubators"},
	}
	out := make([]TabLink, 0, len(tabs))
	for _, t := range tabs {
		href := InvestorsResultsPath
		if t.tab == investors.TabIncubators {
			href += "?" + url.Values{ParamTab: {string(t.tab)}}.Encode()
		}
		out = append(out, TabLink{
			Key:    string(t.tab),
			Label:  t.label,
			Active: req.tab == t.tab,
			Href:   href,
		})
	}
	return out
}
