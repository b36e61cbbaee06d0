package partnerships

import (
	"context"
	"errors"

	"visnex.global/web/internal/catalog"
)

// ErrNotFound indicates the requested opportunity or resource does not exist.
var ErrNotFound = errors.New("partnership record not found")

// Service exposes partnership opportunities and the resource marketplace.
type Service interface {
	Hero(ctx context.Context) (Hero, error)
	SearchOpportunities(ctx context.Context, query catalog.Query) (Result[Opportunity], error)
	SearchResources(ctx context.Context, query catalog.Query) (Result[Resource], error)
	Opportunity(ctx context.Context, id string) (Opportunity, error)
	Resource(ctx context.Context, id string) (Resource, error)
	OpportunitySorts() []catalog.SortOption
	ResourceSorts() []catalog.SortOption
	// OpportunityFacets counts opportunities per priority, tag or location.
	OpportunityFacets(ctx context.Context, dimension string) ([]catalog.Facet, error)
	// ResourceFacets powers the marketplace category chips.
	ResourceFacets(ctx context.Context, dimension string) ([]catalog.Facet, error)
}

// Opportunity filter dimensions.
const (
	DimPriority = "priority"
	DimTag      = "tag"
	DimLocation = "location"
)

// Resource filter dimensions.
const (
	DimCategory  = "category"
	DimPriceType = "priceType"
)

// Opportunity sort keys.
const (
	SortNewest  = "newest"
	SortPopular = "popular"
)

// Resource sort keys.
const (
	SortFeatured     = "featured"
	SortHighestRated = "highest-rated"
	SortMostReviewed = "most-reviewed"
	SortAToZ         = "a-to-z"
)

// HeroStat is one figure in the page hero.
type HeroStat struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// Hero is the page banner copy.
type Hero struct {
	Badge       string     `json:"badge"`
	Description string     `json:"description"`
	Stats       []HeroStat `json:"stats"`
}

// Opportunity is an open partnership listing.
type Opportunity struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Logo            string   `json:"logo,omitempty"`
	Priority        string   `json:"priority"`
	MatchPercentage int      `json:"matchPercentage"`
	Description     string   `json:"description"`
	Tags            []string `json:"tags"`
	Investment      string   `json:"investment,omitempty"`
	Duration        string   `json:"duration,omitempty"`
	Location        string   `json:"location"`
}

// Resource is a marketplace item.
type Resource struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Provider    string   `json:"provider"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	PriceType   string   `json:"priceType"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Image       string   `json:"image,omitempty"`
	Featured    bool     `json:"featured"`
}

// Free reports whether the resource costs nothing.
func (r Resource) Free() bool {
	return r.PriceType == "free" || r.Price == 0
}

// Result is a filtered list plus the unfiltered total.
type Result[T any] struct {
	Items []T
	Total int
	Sort  string
}

// Favorites is the set of favorited opportunity ids.
type Favorites = catalog.Set

// ToggleFavorite flips id in favs without mutating it.
func ToggleFavorite(favs Favorites, id string) Favorites {
	return catalog.Toggle(favs, id)
}
