package handlers

import (
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"visnex.global/web/internal/catalog"
	"visnex.global/web/internal/content"
	"visnex.global/web/internal/platform/requestctx"
	"visnex.global/web/internal/stories"
)

// StoriesResultsPath serves the success stories fragment.
const StoriesResultsPath = "/success-stories/results"

// ParamTestimonial is the visible carousel slide.
const ParamTestimonial = "t"

var storyDropdowns = []struct {
	dim   string
	label string
}{
	{stories.DimIndustry, "Industry"},
	{stories.DimStage, "Stage"},
	{stories.DimAchievement, "Achievement"},
}

// StoriesView is the success stories page payload.
type StoriesView struct {
	Term      string
	Sort      string
	Sorts     []SortChoice
	Dropdowns []Dropdown
	Items     []StoryCard
	Count     int
	Total     int
	Empty     bool
	EmptyText string
	ClearHref string

	Stats       []stories.Stat
	Testimonial stories.Testimonial
	Carousel    stories.Carousel
	PrevHref    string
	NextHref    string
}

// Dropdown is a single-choice filter whose values are URL slugs.
type Dropdown struct {
	Name     string
	Label    string
	Selected string
	Options  []stories.Option
}

// StoryCard is a story with its body rendered to HTML.
type StoryCard struct {
	stories.Story
	BodyHTML template.HTML
}

type storiesRequest struct {
	term      string
	sort      string
	dropdowns map[string]string
	carousel  int
}

func parseStoriesRequest(values url.Values) storiesRequest {
	req := storiesRequest{
		term:      strings.TrimSpace(values.Get(ParamTerm)),
		sort:      strings.TrimSpace(values.Get(ParamSort)),
		dropdowns: map[string]string{},
	}
	for _, d := range storyDropdowns {
		if v := strings.TrimSpace(values.Get(d.dim)); v != "" && v != stories.AllOption {
			req.dropdowns[d.dim] = v
		}
	}
	if n, err := strconv.Atoi(values.Get(ParamTestimonial)); err == nil {
		req.carousel = n
	}
	return req
}

func (r storiesRequest) encode(carousel int) url.Values {
	values := url.Values{}
	if r.term != "" {
		values.Set(ParamTerm, r.term)
	}
	if r.sort != "" {
		values.Set(ParamSort, r.sort)
	}
	for dim, v := range r.dropdowns {
		values.Set(dim, v)
	}
	if carousel > 0 {
		values.Set(ParamTestimonial, strconv.Itoa(carousel))
	}
	return values
}

func storiesHref(values url.Values) string {
	if len(values) == 0 {
		return StoriesResultsPath
	}
	return StoriesResultsPath + "?" + values.Encode()
}

// BuildStories filters stories by the three dropdowns and positions the carousel.
func (s *Services) BuildStories(ctx context.Context, values url.Values, empty string) (StoriesView, error) {
	req := parseStoriesRequest(values)
	q := catalog.Query{
		Term:    req.term,
		Sort:    req.sort,
		Filters: s.Stories.Selection(req.dropdowns),
	}
	res, err := s.Stories.Search(ctx, q)
	if err != nil {
		return StoriesView{}, fmt.Errorf("stories: %w", err)
	}
	s.Metrics.ObserveQuery("stories", res.Sort, len(res.Items))

	testimonials, err := s.Stories.Testimonials(ctx)
	if err != nil {
		return StoriesView{}, fmt.Errorf("stories: testimonials: %w", err)
	}
	stats, err := s.Stories.Stats(ctx)
	if err != nil {
		return StoriesView{}, fmt.Errorf("stories: stats: %w", err)
	}

	carousel := stories.NewCarousel(req.carousel, len(testimonials))
	view := StoriesView{
		Term:      req.term,
		Sort:      res.Sort,
		Count:     len(res.Items),
		Total:     res.Total,
		Empty:     len(res.Items) == 0,
		Stats:     stats,
		Carousel:  carousel,
		PrevHref:  storiesHref(req.encode(carousel.Prev().Index)),
		NextHref:  storiesHref(req.encode(carousel.Next().Index)),
		ClearHref: storiesHref(storiesRequest{sort: req.sort}.encode(carousel.Index)),
	}
	if view.Empty {
		view.EmptyText = empty
	}
	if carousel.Count > 0 {
		view.Testimonial = testimonials[carousel.Index]
	}

	for _, opt := range s.Stories.Sorts() {
		next := req
		next.sort = opt.Key
		view.Sorts = append(view.Sorts, SortChoice{
			Key:      opt.Key,
			Label:    opt.Label,
			Selected: opt.Key == res.Sort,
			Href:     storiesHref(next.encode(carousel.Index)),
		})
	}
	for _, d := range storyDropdowns {
		selected := req.dropdowns[d.dim]
		if selected == "" {
			selected = stories.AllOption
		}
		view.Dropdowns = append(view.Dropdowns, Dropdown{
			Name:     d.dim,
			Label:    d.label,
			Selected: selected,
			Options:  s.Stories.Options(d.dim),
		})
	}

	logger := requestctx.Logger(ctx)
	for _, story := range res.Items {
		card := StoryCard{Story: story}
		if story.Body != "" {
			body, err := content.Render(story.Body)
			if err != nil {
				logger.Warn("story body render failed", zap.Int("story_id", story.ID), zap.Error(err))
			}
			card.BodyHTML = body
		}
		view.Items = append(view.Items, card)
	}
	return view, nil
}
