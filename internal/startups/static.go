package startups

import (
	"context"
	"fmt"

	"visnex.global/web/internal/catalog"
	"visnex.global/web/internal/directory"
)

// StaticService serves startups from the bundled dataset.
type StaticService struct {
	engine *catalog.Engine[Startup]
	byID   map[int]Startup
}

type dataset struct {
	Startups []Startup `json:"startups"`
}

// NewStaticService loads the bundled startups dataset.
func NewStaticService() (*StaticService, error) {
	var data dataset
	if err := directory.Load(directory.Startups, &data); err != nil {
		return nil, fmt.Errorf("startups: %w", err)
	}
	return NewService(data.Startups), nil
}

// NewService builds a catalog over the provided records.
func NewService(records []Startup) *StaticService {
	byID := make(map[int]Startup, len(records))
	for _, s := range records {
		byID[s.ID] = s
	}
	return &StaticService{
		engine: catalog.New(records, Config()),
		byID:   byID,
	}
}

// Config declares the startup catalog's search fields, dimensions and sorts.
func Config() catalog.Config[Startup] {
	return catalog.Config[Startup]{
		Search: []catalog.TextField[Startup]{
			catalog.Text(func(s Startup) string { return s.Name }),
			catalog.Text(func(s Startup) string { return s.Tagline }),
			catalog.Text(func(s Startup) string { return s.Industry }),
			catalog.Texts(func(s Startup) []string { return s.Categories }),
		},
		Dimensions: []catalog.Dimension[Startup]{
			{Name: DimIndustry, Label: "Industry", Values: catalog.One(func(s Startup) string { return s.Industry })},
			{Name: DimStage, Label: "Funding Stage", Values: catalog.One(func(s Startup) string { return s.FundingStage })},
			{Name: DimLocation, Label: "Location", Values: catalog.One(func(s Startup) string { return s.Location }), Match: catalog.MatchContains},
			{Name: DimCategory, Label: "Category", Values: func(s Startup) []string { return s.Categories }},
			{Name: DimTag, Label: "Tag", Values: func(s Startup) []string { return s.Tags }},
		},
		Sorts: []catalog.SortStrategy[Startup]{
			catalog.ByScore(SortMostRelevant, "Most Relevant", func(s Startup) float64 { return s.MatchPercentage }, catalog.Descending),
			catalog.ByScore(SortNewestFirst, "Newest First", func(s Startup) float64 { return float64(s.Founded) }, catalog.Descending),
			catalog.ByNumber(SortHighestFunding, "Highest Funding", func(s Startup) string { return s.Funding }, catalog.NumericLike, catalog.Descending),
			catalog.ByNumber(SortFastestGrowing, "Fastest Growing", func(s Startup) string { return s.Growth }, catalog.NumericLike, catalog.Descending),
			catalog.ByText(SortAToZ, "A to Z", func(s Startup) string { return s.Name }, catalog.Ascending),
		},
		DefaultSort: SortMostRelevant,
	}
}

// Search implements Service.
func (s *StaticService) Search(_ context.Context, query catalog.Query) (Result, error) {
	return Result{
		Items: s.engine.Query(query),
		Total: s.engine.Len(),
		Sort:  s.engine.ResolveSort(query.Sort),
	}, nil
}

// Get implements Service.
func (s *StaticService) Get(_ context.Context, id int) (Startup, error) {
	startup, ok := s.byID[id]
	if !ok {
		return Startup{}, ErrNotFound
	}
	return startup, nil
}

// Facets implements Service.
func (s *StaticService) Facets(_ context.Context, dimension string) ([]catalog.Facet, error) {
	if !s.engine.HasDimension(dimension) {
		return nil, fmt.Errorf("startups: unknown dimension %q", dimension)
	}
	return s.engine.Facets(dimension), nil
}

// Sorts implements Service.
func (s *StaticService) Sorts() []catalog.SortOption {
	return s.engine.Sorts()
}

// Total implements Service.
func (s *StaticService) Total() int {
	return s.engine.Len()
}

// Dimensions lists the startup filter dimensions.
func (s *StaticService) Dimensions() []catalog.DimensionInfo {
	return s.engine.Dimensions()
}
