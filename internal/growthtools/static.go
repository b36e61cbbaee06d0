package growthtools

import (
	"context"
	"fmt"

	"visnex.global/web/internal/catalog"
	"visnex.global/web/internal/directory"
)

// StaticService serves the bundled growth tools library.
type StaticService struct {
	engine *catalog.Engine[Tool]
	stats  []Stat
}

type dataset struct {
	Stats []Stat `json:"stats"`
	Tools []Tool `json:"tools"`
}

// NewStaticService loads the bundled growth tools dataset.
func NewStaticService() (*StaticService, error) {
	var data dataset
	if err := directory.Load(directory.GrowthTools, &data); err != nil {
		return nil, fmt.Errorf("growthtools: %w", err)
	}
	return &StaticService{
		engine: catalog.New(data.Tools, Config()),
		stats:  data.Stats,
	}, nil
}

// Config declares the growth tools catalog.
func Config() catalog.Config[Tool] {
	return catalog.Config[Tool]{
		Search: []catalog.TextField[Tool]{
			catalog.Text(func(t Tool) string { return t.Name }),
			catalog.Text(func(t Tool) string { return t.Description }),
			catalog.Texts(func(t Tool) []string { return t.Features }),
		},
		Dimensions: []catalog.Dimension[Tool]{
			{Name: DimSection, Label: "Section", Values: catalog.One(func(t Tool) string { return t.Section })},
		},
		Sorts: []catalog.SortStrategy[Tool]{
			catalog.Preserve[Tool](SortDefault, "Default"),
		},
		DefaultSort: SortDefault,
	}
}

// Search implements Service.
func (s *StaticService) Search(_ context.Context, query catalog.Query) (Result, error) {
	items := s.engine.Query(query)
	return Result{
		Items:    items,
		Total:    s.engine.Len(),
		Sections: GroupBySection(items),
	}, nil
}

// Get implements Service.
func (s *StaticService) Get(_ context.Context, id string) (Tool, error) {
	for _, t := range s.engine.All() {
		if t.ID == id {
			return t, nil
		}
	}
	return Tool{}, ErrNotFound
}

// Stats implements Service.
func (s *StaticService) Stats(context.Context) ([]Stat, error) {
	return append([]Stat(nil), s.stats...), nil
}

// Filters implements Service.
func (s *StaticService) Filters() []Filter {
	return Filters()
}
