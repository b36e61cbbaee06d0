package investors

import (
	"context"
	"errors"
	"strings"

	"visnex.global/web/internal/catalog"
)

// ErrNotFound indicates the requested investor or incubator does not exist.
var ErrNotFound = errors.New("investor not found")

// Service exposes the investor network: investors and incubators on separate tabs.
type Service interface {
	SearchInvestors(ctx context.Context, query catalog.Query) (Result[Investor], error)
	SearchIncubators(ctx context.Context, query catalog.Query) (Result[Incubator], error)
	Investor(ctx context.Context, id int) (Investor, error)
	Incubator(ctx context.Context, id int) (Incubator, error)
	InvestorFacets(ctx context.Context, dimension string) ([]catalog.Facet, error)
	IncubatorFacets(ctx context.Context, dimension string) ([]catalog.Facet, error)
	Sorts(tab Tab) []catalog.SortOption
	AllInvestors() []Investor
	AllIncubators() []Incubator
}

// Tab selects which catalog the investors page shows.
type Tab string

const (
	TabInvestors  Tab = "investors"
	TabIncubators Tab = "incubators"
)

// ParseTab defaults to the investors tab.
func ParseTab(raw string) Tab {
	if strings.EqualFold(strings.TrimSpace(raw), string(TabIncubators)) {
		return TabIncubators
	}
	return TabInvestors
}

// Filter dimensions. Incubators support industry and location only.
const (
	DimType     = "type"
	DimIndustry = "industry"
	DimStage    = "stage"
	DimLocation = "location"
	DimStatus   = "status"
)

// Sort keys.
const (
	SortRelevance      = "relevance"
	SortPortfolioSize  = "portfolio-size"
	SortActiveDeals    = "active-deals"
	SortRecentlyJoined = "recently-joined"
	SortSuccessRate    = "success-rate"
)

// Type radio values and the record types they select.
const (
	TypeAll       = "all"
	TypeInvestor  = "investor"
	TypeIncubator = "incubator"
)

var typeLabels = map[string]string{
	TypeInvestor:  "Venture Capital",
	TypeIncubator: "Accelerator",
}

// TypeLabel maps a type radio value to the record type it filters on. "all" and
// unknown values report false, meaning no type filter.
func TypeLabel(radio string) (string, bool) {
	label, ok := typeLabels[strings.ToLower(strings.TrimSpace(radio))]
	return label, ok
}

// AllLocations is the location dropdown entry that disables the filter.
const AllLocations = "All Locations"

// InvestmentRange is the cheque size band of an investor.
type InvestmentRange struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// Investor is a fund, angel network or firm.
type Investor struct {
	ID                 int             `json:"id"`
	Name               string          `json:"name"`
	Type               string          `json:"type"`
	Logo               string          `json:"logo,omitempty"`
	Location           string          `json:"location"`
	Status             string          `json:"status"`
	InvestmentRange    InvestmentRange `json:"investmentRange"`
	FocusIndustries    []string        `json:"focusIndustries"`
	InvestmentStages   []string        `json:"investmentStages"`
	PortfolioCompanies int             `json:"portfolioCompanies"`
	ActiveDeals        int             `json:"activeDeals"`
	InvestmentThesis   string          `json:"investmentThesis,omitempty"`
	DealSize           string          `json:"dealSize,omitempty"`
}

// Active reports whether the investor is currently deploying capital.
func (i Investor) Active() bool {
	return strings.EqualFold(i.Status, "Active")
}

// Incubator is an accelerator or incubator program.
type Incubator struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Image       string   `json:"image,omitempty"`
	Location    string   `json:"location"`
	Description string   `json:"description,omitempty"`
	FocusAreas  []string `json:"focusAreas"`
	Duration    string   `json:"duration"`
	Equity      string   `json:"equity,omitempty"`
	Funding     string   `json:"funding,omitempty"`
	BatchSize   int      `json:"batchSize"`
	Alumni      int      `json:"alumni"`
	SuccessRate string   `json:"successRate,omitempty"`
}

// Result is a filtered, sorted view of one tab.
type Result[T any] struct {
	Items []T
	Total int
	Sort  string
}
