package startups

import (
	"context"
	"errors"

	"visnex.global/web/internal/catalog"
)

// ErrNotFound indicates the requested startup does not exist.
var ErrNotFound = errors.New("startup not found")

// Service exposes the startup discovery catalog.
type Service interface {
	// Search runs the query through the startup catalog.
	Search(ctx context.Context, query catalog.Query) (Result, error)
	// Get returns a single startup by id.
	Get(ctx context.Context, id int) (Startup, error)
	// Facets counts startups per value of a filter dimension.
	Facets(ctx context.Context, dimension string) ([]catalog.Facet, error)
	// Sorts lists the available sort options, default first.
	Sorts() []catalog.SortOption
	// Total returns the number of startups in the catalog.
	Total() int
}

// Filter dimensions.
const (
	DimIndustry = "industry"
	DimStage    = "stage"
	DimLocation = "location"
	DimCategory = "category"
	DimTag      = "tag"
)

// Sort keys.
const (
	SortMostRelevant   = "most-relevant"
	SortNewestFirst    = "newest-first"
	SortHighestFunding = "highest-funding"
	SortFastestGrowing = "fastest-growing"
	SortAToZ           = "a-to-z"
)

// Startup is one company listed in the discovery center.
type Startup struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Logo            string   `json:"logo,omitempty"`
	Tagline         string   `json:"tagline"`
	Description     string   `json:"description,omitempty"`
	Industry        string   `json:"industry"`
	FundingStage    string   `json:"fundingStage"`
	Location        string   `json:"location"`
	Funding         string   `json:"funding"`
	TeamSize        int      `json:"teamSize"`
	Founded         int      `json:"founded"`
	Growth          string   `json:"growth"`
	MatchPercentage float64  `json:"matchPercentage"`
	Categories      []string `json:"categories"`
	FoundingTeam    []string `json:"foundingTeam,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	LastActive      string   `json:"lastActive,omitempty"`
}

// Result is one page of the catalog after filtering and sorting.
type Result struct {
	Items []Startup
	// Total is the size of the unfiltered catalog.
	Total int
	Sort  string
}
