package partnerships

import (
	"context"
	"fmt"

	"visnex.global/web/internal/catalog"
	"visnex.global/web/internal/directory"
)

// StaticService serves the bundled partnership hub data.
type StaticService struct {
	hero          Hero
	opportunities *catalog.Engine[Opportunity]
	resources     *catalog.Engine[Resource]
}

type dataset struct {
	Hero          Hero          `json:"hero"`
	Opportunities []Opportunity `json:"opportunities"`
	Resources     []Resource    `json:"resources"`
}

// NewStaticService loads the bundled partnerships dataset.
func NewStaticService() (*StaticService, error) {
	var data dataset
	if err := directory.Load(directory.Partnerships, &data); err != nil {
		return nil, fmt.Errorf("partnerships: %w", err)
	}
	return &StaticService{
		hero:          data.Hero,
		opportunities: catalog.New(data.Opportunities, OpportunityConfig()),
		resources:     catalog.New(data.Resources, ResourceConfig()),
	}, nil
}

// OpportunityConfig declares the opportunities catalog.
func OpportunityConfig() catalog.Config[Opportunity] {
	return catalog.Config[Opportunity]{
		Search: []catalog.TextField[Opportunity]{
			catalog.Text(func(o Opportunity) string { return o.Title }),
			catalog.Text(func(o Opportunity) string { return o.Company }),
			catalog.Text(func(o Opportunity) string { return o.Description }),
			catalog.Texts(func(o Opportunity) []string { return o.Tags }),
		},
		Dimensions: []catalog.Dimension[Opportunity]{
			{Name: DimPriority, Label: "Priority", Values: catalog.One(func(o Opportunity) string { return o.Priority })},
			{Name: DimTag, Label: "Tags", Values: func(o Opportunity) []string { return o.Tags }},
			{Name: DimLocation, Label: "Location", Values: catalog.One(func(o Opportunity) string { return o.Location }), Match: catalog.MatchContains},
		},
		Sorts: []catalog.SortStrategy[Opportunity]{
			catalog.Preserve[Opportunity](SortNewest, "Newest"),
			catalog.ByScore(SortPopular, "Most Popular", func(o Opportunity) float64 { return float64(o.MatchPercentage) }, catalog.Descending),
		},
		DefaultSort: SortNewest,
	}
}

// ResourceConfig declares the resource marketplace catalog.
func ResourceConfig() catalog.Config[Resource] {
	return catalog.Config[Resource]{
		Search: []catalog.TextField[Resource]{
			catalog.Text(func(r Resource) string { return r.Title }),
			catalog.Text(func(r Resource) string { return r.Provider }),
			catalog.Text(func(r Resource) string { return r.Description }),
			catalog.Texts(func(r Resource) []string { return r.Tags }),
		},
		Dimensions: []catalog.Dimension[Resource]{
			{Name: DimCategory, Label: "Category", Values: catalog.One(func(r Resource) string { return r.Category })},
			{Name: DimPriceType, Label: "Pricing", Values: catalog.One(func(r Resource) string { return r.PriceType })},
		},
		Sorts: []catalog.SortStrategy[Resource]{
			catalog.ByFlag(SortFeatured, "Featured", func(r Resource) bool { return r.Featured }),
			catalog.ByScore(SortHighestRated, "Highest Rated", func(r Resource) float64 { return r.Rating }, catalog.Descending),
			catalog.ByScore(SortMostReviewed, "Most Reviewed", func(r Resource) float64 { return float64(r.Reviews) }, catalog.Descending),
			catalog.ByText(SortAToZ, "A to Z", func(r Resource) string { return r.Title }, catalog.Ascending),
		},
		DefaultSort: SortFeatured,
	}
}

// Hero implements Service.
func (s *StaticService) Hero(context.Context) (Hero, error) {
	hero := s.hero
	hero.Stats = append([]HeroStat(nil), s.hero.Stats...)
	return hero, nil
}

// SearchOpportunities implements Service.
func (s *StaticService) SearchOpportunities(_ context.Context, query catalog.Query) (Result[Opportunity], error) {
	return Result[Opportunity]{
		Items: s.opportunities.Query(query),
		Total: s.opportunities.Len(),
		Sort:  s.opportunities.ResolveSort(query.Sort),
	}, nil
}

// SearchResources implements Service.
func (s *StaticService) SearchResources(_ context.Context, query catalog.Query) (Result[Resource], error) {
	return Result[Resource]{
		Items: s.resources.Query(query),
		Total: s.resources.Len(),
		Sort:  s.resources.ResolveSort(query.Sort),
	}, nil
}

// Opportunity implements Service.
func (s *StaticService) Opportunity(_ context.Context, id string) (Opportunity, error) {
	for _, o := range s.opportunities.All() {
		if o.ID == id {
			return o, nil
		}
	}
	return Opportunity{}, ErrNotFound
}

// Resource implements Service.
func (s *StaticService) Resource(_ context.Context, id string) (Resource, error) {
	for _, r := range s.resources.All() {
		if r.ID == id {
			return r, nil
		}
	}
	return Resource{}, ErrNotFound
}

// OpportunitySorts implements Service.
func (s *StaticService) OpportunitySorts() []catalog.SortOption {
	return s.opportunities.Sorts()
}

// ResourceSorts implements Service.
func (s *StaticService) ResourceSorts() []catalog.SortOption {
	return s.resources.Sorts()
}

// ResourceFacets implements Service.
func (s *StaticService) ResourceFacets(_ context.Context, dimension string) ([]catalog.Facet, error) {
	if !s.resources.HasDimension(dimension) {
		return nil, fmt.Errorf("resources: unknown dimension %q", dimension)
	}
	return s.resources.Facets(dimension), nil
}

// OpportunityFacets returns value counts for an opportunity dimension.
func (s *StaticService) OpportunityFacets(_ context.Context, dimension string) ([]catalog.Facet, error) {
	if !s.opportunities.HasDimension(dimension) {
		return nil, fmt.Errorf("opportunities: unknown dimension %q", dimension)
	}
	return s.opportunities.Facets(dimension), nil
}
