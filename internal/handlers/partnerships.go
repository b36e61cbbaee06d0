package handlers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"visnex.global/web/internal/catalog"
	"visnex.global/web/internal/partnerships"
)

// PartnershipsResultsPath serves the partnerships fragment.
const PartnershipsResultsPath = "/partnerships/results"

// Favorite parameters. fav repeats once per favorited opportunity.
const (
	ParamFavorite       = "fav"
	ParamToggleFavorite = "togglefav"
)

var (
	opportunitiesCodec = Codec{Dimensions: []string{partnerships.DimPriority, partnerships.DimTag, partnerships.DimLocation}}
	resourcesCodec     = Codec{Prefix: "res-", Dimensions: []string{partnerships.DimCategory, partnerships.DimPriceType}}
)

// PartnershipsView is the partnership hub payload: opportunities and the
// resource marketplace share the page and the URL.
type PartnershipsView struct {
	Hero          partnerships.Hero
	Opportunities OpportunityList
	Resources     ResourceList
	Favorites     int
}

// OpportunityList is the opportunities listing.
type OpportunityList struct {
	Listing
	Items []OpportunityCard
}

// OpportunityCard is an opportunity with its favorite state.
type OpportunityCard struct {
	partnerships.Opportunity
	Favorite     bool
	FavoriteHref string
}

// ResourceList is the marketplace listing.
type ResourceList struct {
	Listing
	Items []partnerships.Resource
}

// parseFavorites reads fav ids and applies a pending togglefav.
func parseFavorites(values url.Values) partnerships.Favorites {
	favs := catalog.NewSet(values[ParamFavorite]...)
	if id := strings.TrimSpace(values.Get(ParamToggleFavorite)); id != "" {
		favs = partnerships.ToggleFavorite(favs, id)
	}
	return favs
}

// BuildPartnerships renders both listings from one request.
func (s *Services) BuildPartnerships(ctx context.Context, values url.Values, empty string) (PartnershipsView, error) {
	favs := parseFavorites(values)
	oppQuery := opportunitiesCodec.Parse(values)
	resQuery := resourcesCodec.Parse(values)

	hero, err := s.Partnerships.Hero(ctx)
	if err != nil {
		return PartnershipsView{}, fmt.Errorf("partnerships: hero: %w", err)
	}
	opps, err := s.Partnerships.SearchOpportunities(ctx, oppQuery)
	if err != nil {
		return PartnershipsView{}, fmt.Errorf("partnerships: opportunities: %w", err)
	}
	res, err := s.Partnerships.SearchResources(ctx, resQuery)
	if err != nil {
		return PartnershipsView{}, fmt.Errorf("partnerships: resources: %w", err)
	}
	s.Metrics.ObserveQuery("opportunities", opps.Sort, len(opps.Items))
	s.Metrics.ObserveQuery("resources", res.Sort, len(res.Items))

	favKeep := url.Values{}
	for _, id := range favs.Values() {
		favKeep.Add(ParamFavorite, id)
	}

	// Each listing keeps the other listing's state and the favorites.
	oppKeep := cloneQuery(favKeep)
	resourcesCodec.Encode(oppKeep, resQuery)
	oppLinks := Links{Base: PartnershipsResultsPath, Codec: opportunitiesCodec, Query: oppQuery, Keep: oppKeep}

	resKeep := cloneQuery(favKeep)
	opportunitiesCodec.Encode(resKeep, oppQuery)
	resLinks := Links{Base: PartnershipsResultsPath, Codec: resourcesCodec, Query: resQuery, Keep: resKeep}

	view := PartnershipsView{Hero: hero, Favorites: len(favs)}

	view.Opportunities.Listing = newListing(oppLinks, s.Partnerships.OpportunitySorts(), opps.Sort, len(opps.Items), opps.Total, empty)
	view.Opportunities.Filters = []FilterGroup{
		facetGroup(oppLinks, partnerships.DimPriority, "Priority", facetsOrEmpty(ctx, partnerships.DimPriority, s.Partnerships.OpportunityFacets)),
		facetGroup(oppLinks, partnerships.DimTag, "Tags", facetsOrEmpty(ctx, partnerships.DimTag, s.Partnerships.OpportunityFacets)),
	}
	for _, opp := range opps.Items {
		view.Opportunities.Items = append(view.Opportunities.Items, OpportunityCard{
			Opportunity:  opp,
			Favorite:     favs.Has(opp.ID),
			FavoriteHref: favoriteHref(oppQuery, resQuery, favs, opp.ID),
		})
	}

	view.Resources.Listing = newListing(resLinks, s.Partnerships.ResourceSorts(), res.Sort, len(res.Items), res.Total, "No resources match this category.")
	view.Resources.Filters = []FilterGroup{
		facetGroup(resLinks, partnerships.DimCategory, "Category", facetsOrEmpty(ctx, partnerships.DimCategory, s.Partnerships.ResourceFacets)),
		facetGroup(resLinks, partnerships.DimPriceType, "Price", facetsOrEmpty(ctx, partnerships.DimPriceType, s.Partnerships.ResourceFacets)),
	}
	view.Resources.Items = res.Items
	return view, nil
}

// favoriteHref keeps both listings' state and flips id.
func favoriteHref(opp, res catalog.Query, favs partnerships.Favorites, id string) string {
	next := url.Values{}
	for _, fav := range partnerships.ToggleFavorite(favs, id).Values() {
		next.Add(ParamFavorite, fav)
	}
	opportunitiesCodec.Encode(next, opp)
	resourcesCodec.Encode(next, res)
	if len(next) == 0 {
		return PartnershipsResultsPath
	}
	return PartnershipsResultsPath + "?" + next.Encode()
}
