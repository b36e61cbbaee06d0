// Package handlers builds the view models rendered by the page and fragment templates.
package handlers

import (
	"context"
	"net/url"

	"visnex.global/web/internal/growthtools"
	"visnex.global/web/internal/insights"
	"visnex.global/web/internal/investors"
	"visnex.global/web/internal/partnerships"
	"visnex.global/web/internal/platform/observability"
	"visnex.global/web/internal/site"
	"visnex.global/web/internal/startups"
	"visnex.global/web/internal/stories"
	"visnex.global/web/internal/viewrouter"
)

// Services are the catalogs behind the pages. Metrics may be nil.
type Services struct {
	Startups     startups.Service
	Investors    investors.Service
	Partnerships partnerships.Service
	Stories      stories.Service
	GrowthTools  growthtools.Service
	Insights     *insights.Service
	Metrics      *observability.Metrics
}

// NewStaticServices loads every bundled catalog.
func NewStaticServices(metrics *observability.Metrics) (*Services, error) {
	st, err := startups.NewStaticService()
	if err != nil {
		return nil, err
	}
	inv, err := investors.NewStaticService()
	if err != nil {
		return nil, err
	}
	ps, err := partnerships.NewStaticService()
	if err != nil {
		return nil, err
	}
	ss, err := stories.NewStaticService()
	if err != nil {
		return nil, err
	}
	gt, err := growthtools.NewStaticService()
	if err != nil {
		return nil, err
	}
	return &Services{
		Startups:     st,
		Investors:    inv,
		Partnerships: ps,
		Stories:      ss,
		GrowthTools:  gt,
		Insights:     insights.NewService(inv, st),
		Metrics:      metrics,
	}, nil
}

// ResultsPath is the fragment endpoint of v's listing, or "" for views without one.
func ResultsPath(v viewrouter.View) string {
	switch v {
	case viewrouter.Startups:
		return StartupsResultsPath
	case viewrouter.Investors:
		return InvestorsResultsPath
	case viewrouter.Partnerships:
		return PartnershipsResultsPath
	case viewrouter.SuccessStories:
		return StoriesResultsPath
	case viewrouter.GrowthTools:
		return GrowthToolsResultsPath
	}
	return ""
}

// BuildView assembles the partial payload of v from the request query.
func (s *Services) BuildView(ctx context.Context, sc *site.Site, v viewrouter.View, values url.Values) (ViewData, error) {
	page := sc.Page(v)
	data := ViewData{View: v, Page: page, Partial: PartialName(v)}

	var (
		payload any
		err     error
	)
	switch v {
	case viewrouter.Startups:
		payload, err = s.BuildStartups(ctx, values, page.Empty)
	case viewrouter.Investors:
		payload, err = s.BuildInvestors(ctx, values, page.Empty)
	case viewrouter.Partnerships:
		payload, err = s.BuildPartnerships(ctx, values, page.Empty)
	case viewrouter.SuccessStories:
		payload, err = s.BuildStories(ctx, values, page.Empty)
	case viewrouter.GrowthTools:
		payload, err = s.BuildGrowthTools(ctx, values, page.Empty)
	default:
		data.View = viewrouter.Home
		data.Partial = PartialName(viewrouter.Home)
		payload, err = s.BuildHome(ctx, sc.Page(viewrouter.Home))
	}
	if err != nil {
		return ViewData{}, err
	}
	data.Payload = payload
	return data, nil
}
