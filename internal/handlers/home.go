package handlers

import (
	"context"
	"fmt"

	"visnex.global/web/internal/catalog"
	"visnex.global/web/internal/insights"
	"visnex.global/web/internal/nav"
	"visnex.global/web/internal/site"
	"visnex.global/web/internal/startups"
)

// featuredStartups is how many top matches the landing page shows.
const featuredStartups = 3

// HomeView is the landing page payload.
type HomeView struct {
	Stats    insights.Stats
	Startups int
	Featured []StartupCard
	CTAs     []CTALink
}

// CTALink is a call-to-action that switches view.
type CTALink struct {
	Label string
	Href  string
	Swap  string
}

// BuildHome collects the landing page figures and top startup matches.
func (s *Services) BuildHome(ctx context.Context, page site.Page) (HomeView, error) {
	stats, err := s.Insights.Stats(ctx)
	if err != nil {
		return HomeView{}, fmt.Errorf("home: stats: %w", err)
	}
	res, err := s.Startups.Search(ctx, catalog.Query{Sort: startups.SortMostRelevant})
	if err != nil {
		return HomeView{}, fmt.Errorf("home: startups: %w", err)
	}
	featured := res.Items
	if len(featured) > featuredStartups {
		featured = featured[:featuredStartups]
	}
	view := HomeView{Stats: stats, Startups: res.Total, Featured: startupCards(featured, "")}
	for _, cta := range page.CTA {
		view.CTAs = append(view.CTAs, CTALink{
			Label: cta.Label,
			Href:  "/" + cta.View.Fragment(),
			Swap:  nav.SwapPath(cta.View),
		})
	}
	return view, nil
}
