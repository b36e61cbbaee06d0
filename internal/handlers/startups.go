package handlers

import (
	"context"
	"fmt"
	"net/url"

	"visnex.global/web/internal/catalog"
	"visnex.global/web/internal/startups"
)

// StartupsResultsPath serves the startup results fragment.
const StartupsResultsPath = "/startups/results"

var startupsCodec = Codec{Dimensions: []string{startups.DimIndustry, startups.DimStage, startups.DimLocation}}

// StartupsView is the discovery page payload.
type StartupsView struct {
	Listing
	Items []StartupCard
}

// StartupCard is a startup with its name split around the search term.
type StartupCard struct {
	startups.Startup
	Title []catalog.Segment
}

func startupCards(items []startups.Startup, term string) []StartupCard {
	cards := make([]StartupCard, len(items))
	for i, st := range items {
		cards[i] = StartupCard{Startup: st, Title: catalog.Highlight(st.Name, term)}
	}
	return cards
}

// BuildStartups runs the request's query state through the startup catalog.
func (s *Services) BuildStartups(ctx context.Context, values url.Values, empty string) (StartupsView, error) {
	q := startupsCodec.Parse(values)
	res, err := s.Startups.Search(ctx, q)
	if err != nil {
		return StartupsView{}, fmt.Errorf("startups: %w", err)
	}
	s.Metrics.ObserveQuery("startups", res.Sort, len(res.Items))

	links := Links{Base: StartupsResultsPath, Codec: startupsCodec, Query: q}
	view := StartupsView{
		Listing: newListing(links, s.Startups.Sorts(), res.Sort, len(res.Items), res.Total, empty),
		Items:   startupCards(res.Items, q.Term),
	}
	view.Filters = []FilterGroup{
		facetGroup(links, startups.DimIndustry, "Industry", facetsOrEmpty(ctx, startups.DimIndustry, s.Startups.Facets)),
		facetGroup(links, startups.DimStage, "Funding Stage", facetsOrEmpty(ctx, startups.DimStage, s.Startups.Facets)),
		facetGroup(links, startups.DimLocation, "Location", facetsOrEmpty(ctx, startups.DimLocation, s.Startups.Facets)),
	}
	return view, nil
}
