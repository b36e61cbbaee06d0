package investors

import (
	"context"
	"fmt"

	"visnex.global/web/internal/catalog"
	"visnex.global/web/internal/directory"
)

// StaticService serves the bundled investors and incubators.
type StaticService struct {
	investors  *catalog.Engine[Investor]
	incubators *catalog.Engine[Incubator]
}

type dataset struct {
	Investors  []Investor  `json:"investors"`
	Incubators []Incubator `json:"incubators"`
}

// NewStaticService loads the bundled investors dataset.
func NewStaticService() (*StaticService, error) {
	var data dataset
	if err := directory.Load(directory.Investors, &data); err != nil {
		return nil, fmt.Errorf("investors: %w", err)
	}
	return NewService(data.Investors, data.Incubators), nil
}

// NewService builds both catalogs over the provided records.
func NewService(investors []Investor, incubators []Incubator) *StaticService {
	return &StaticService{
		investors:  catalog.New(investors, InvestorConfig()),
		incubators: catalog.New(incubators, IncubatorConfig()),
	}
}

// InvestorConfig declares the investors tab catalog.
func InvestorConfig() catalog.Config[Investor] {
	return catalog.Config[Investor]{
		Search: []catalog.TextField[Investor]{
			catalog.Text(func(i Investor) string { return i.Name }),
			catalog.Text(func(i Investor) string { return i.Location }),
			catalog.Texts(func(i Investor) []string { return i.FocusIndustries }),
		},
		Dimensions: []catalog.Dimension[Investor]{
			{Name: DimType, Label: "Type", Values: catalog.One(func(i Investor) string { return i.Type })},
			{Name: DimIndustry, Label: "Industry Focus", Values: func(i Investor) []string { return i.FocusIndustries }},
			{Name: DimStage, Label: "Investment Stage", Values: func(i Investor) []string { return i.InvestmentStages }},
			{Name: DimLocation, Label: "Location", Values: catalog.One(func(i Investor) string { return i.Location }), Match: catalog.MatchContains},
			{Name: DimStatus, Label: "Status", Values: catalog.One(func(i Investor) string { return i.Status })},
		},
		Sorts: []catalog.SortStrategy[Investor]{
			catalog.Preserve[Investor](SortRelevance, "Relevance"),
			catalog.ByScore(SortPortfolioSize, "Portfolio Size", func(i Investor) float64 { return float64(i.PortfolioCompanies) }, catalog.Descending),
			catalog.ByScore(SortActiveDeals, "Active Deals", func(i Investor) float64 { return float64(i.ActiveDeals) }, catalog.Descending),
			catalog.Preserve[Investor](SortRecentlyJoined, "Recently Joined"),
		},
		DefaultSort: SortRelevance,
	}
}

// IncubatorConfig declares the incubators tab catalog.
func IncubatorConfig() catalog.Config[Incubator] {
	return catalog.Config[Incubator]{
		Search: []catalog.TextField[Incubator]{
			catalog.Text(func(i Incubator) string { return i.Name }),
			catalog.Text(func(i Incubator) string { return i.Location }),
			catalog.Texts(func(i Incubator) []string { return i.FocusAreas }),
		},
		Dimensions: []catalog.Dimension[Incubator]{
			{Name: DimType, Label: "Type", Values: catalog.One(func(i Incubator) string { return i.Type })},
			{Name: DimIndustry, Label: "Focus Area", Values: func(i Incubator) []string { return i.FocusAreas }},
			{Name: DimLocation, Label: "Location", Values: catalog.One(func(i Incubator) string { return i.Location }), Match: catalog.MatchContains},
		},
		Sorts: []catalog.SortStrategy[Incubator]{
			catalog.Preserve[Incubator](SortRelevance, "Relevance"),
			catalog.ByScore(SortPortfolioSize, "Portfolio Size", func(i Incubator) float64 { return float64(i.Alumni) }, catalog.Descending),
			catalog.ByNumber(SortSuccessRate, "Success Rate", func(i Incubator) string { return i.SuccessRate }, catalog.NumericLike, catalog.Descending),
		},
		DefaultSort: SortRelevance,
	}
}

// SearchInvestors implements Service.
func (s *StaticService) SearchInvestors(_ context.Context, query catalog.Query) (Result[Investor], error) {
	return Result[Investor]{
		Items: s.investors.Query(query),
		Total: s.investors.Len(),
		Sort:  s.investors.ResolveSort(query.Sort),
	}, nil
}

// SearchIncubators implements Service.
func (s *StaticService) SearchIncubators(_ context.Context, query catalog.Query) (Result[Incubator], error) {
	return Result[Incubator]{
		Items: s.incubators.Query(query),
		Total: s.incubators.Len(),
		Sort:  s.incubators.ResolveSort(query.Sort),
	}, nil
}

// Investor implements Service.
func (s *StaticService) Investor(_ context.Context, id int) (Investor, error) {
	for _, inv := range s.investors.All() {
		if inv.ID == id {
			return inv, nil
		}
	}
	return Investor{}, ErrNotFound
}

// Incubator implements Service.
func (s *StaticService) Incubator(_ context.Context, id int) (Incubator, error) {
	for _, inc := range s.incubators.All() {
		if inc.ID == id {
			return inc, nil
		}
	}
	return Incubator{}, ErrNotFound
}

// InvestorFacets implements Service.
func (s *StaticService) InvestorFacets(_ context.Context, dimension string) ([]catalog.Facet, error) {
	if !s.investors.HasDimension(dimension) {
		return nil, fmt.Errorf("investors: unknown dimension %q", dimension)
	}
	return s.investors.Facets(dimension), nil
}

// IncubatorFacets implements Service.
func (s *StaticService) IncubatorFacets(_ context.Context, dimension string) ([]catalog.Facet, error) {
	if !s.incubators.HasDimension(dimension) {
		return nil, fmt.Errorf("incubators: unknown dimension %q", dimension)
	}
	return s.incubators.Facets(dimension), nil
}

// Sorts implements Service.
func (s *StaticService) Sorts(tab Tab) []catalog.SortOption {
	if tab == TabIncubators {
		return s.incubators.Sorts()
	}
	return s.investors.Sorts()
}

// AllInvestors implements Service.
func (s *StaticService) AllInvestors() []Investor {
	return s.investors.All()
}

// AllIncubators implements Service.
func (s *StaticService) AllIncubators() []Incubator {
	return s.incubators.All()
}
