package stories

import (
	"context"
	"fmt"
	"strings"

	"visnex.global/web/internal/catalog"
	"visnex.global/web/internal/directory"
)

// StaticService serves the bundled success stories.
type StaticService struct {
	engine       *catalog.Engine[Story]
	testimonials []Testimonial
	stats        []Stat
	options      map[string][]Option
}

type dataset struct {
	Stats        []Stat        `json:"stats"`
	Testimonials []Testimonial `json:"testimonials"`
	Stories      []Story       `json:"stories"`
	Filters      struct {
		Industries   []Option `json:"industries"`
		Stages       []Option `json:"stages"`
		Achievements []Option `json:"achievements"`
	} `json:"filters"`
}

// NewStaticService loads the bundled stories dataset.
func NewStaticService() (*StaticService, error) {
	var data dataset
	if err := directory.Load(directory.Stories, &data); err != nil {
		return nil, fmt.Errorf("stories: %w", err)
	}
	return &StaticService{
		engine:       catalog.New(data.Stories, Config()),
		testimonials: data.Testimonials,
		stats:        data.Stats,
		options: map[string][]Option{
			DimIndustry:    data.Filters.Industries,
			DimStage:       data.Filters.Stages,
			DimAchievement: data.Filters.Achievements,
		},
	}, nil
}

// Config declares the success stories catalog.
func Config() catalog.Config[Story] {
	return catalog.Config[Story]{
		Search: []catalog.TextField[Story]{
			catalog.Text(func(s Story) string { return s.Title }),
			catalog.Text(func(s Story) string { return s.Company }),
			catalog.Text(func(s Story) string { return s.Description }),
		},
		Dimensions: []catalog.Dimension[Story]{
			{Name: DimIndustry, Label: "Industry", Values: catalog.One(func(s Story) string { return s.Industry })},
			{Name: DimStage, Label: "Stage", Values: catalog.One(func(s Story) string { return s.Stage })},
			{Name: DimAchievement, Label: "Achievement", Values: catalog.One(func(s Story) string { return s.Achievement })},
		},
		Sorts: []catalog.SortStrategy[Story]{
			catalog.Preserve[Story](SortDefault, "Default"),
			catalog.ByFlag(SortFeatured, "Featured First", func(s Story) bool { return s.Featured }),
			catalog.ByText(SortAToZ, "Company A to Z", func(s Story) string { return s.Company }, catalog.Ascending),
		},
		DefaultSort: SortDefault,
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
func (s *StaticService) Get(_ context.Context, id int) (Story, error) {
	for _, story := range s.engine.All() {
		if story.ID == id {
			return story, nil
		}
	}
	return Story{}, ErrNotFound
}

// Testimonials implements Service.
func (s *StaticService) Testimonials(context.Context) ([]Testimonial, error) {
	return append([]Testimonial(nil), s.testimonials...), nil
}

// Stats implements Service.
func (s *StaticService) Stats(context.Context) ([]Stat, error) {
	return append([]Stat(nil), s.stats...), nil
}

// Options implements Service.
func (s *StaticService) Options(dimension string) []Option {
	return append([]Option(nil), s.options[dimension]...)
}

// Sorts implements Service.
func (s *StaticService) Sorts() []catalog.SortOption {
	return s.engine.Sorts()
}

// Selection turns dropdown values into a catalog selection. Each dimension takes a
// single option value; "all", empty and unknown values leave the dimension open.
func (s *StaticService) Selection(values map[string]string) catalog.Selection {
	sel := catalog.Selection{}
	for dim, value := range values {
		value = strings.TrimSpace(value)
		if value == "" || value == AllOption {
			continue
		}
		for _, opt := range s.options[dim] {
			if opt.Value == value {
				sel = sel.With(dim, opt.Label)
				break
			}
		}
	}
	return sel
}
