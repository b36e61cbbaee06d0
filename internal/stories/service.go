package stories

import (
	"context"
	"errors"

	"visnex.global/web/internal/catalog"
)

// ErrNotFound indicates the requested story does not exist.
var ErrNotFound = errors.New("story not found")

// Service exposes founder success stories and testimonials.
type Service interface {
	Search(ctx context.Context, query catalog.Query) (Result, error)
	Get(ctx context.Context, id int) (Story, error)
	Testimonials(ctx context.Context) ([]Testimonial, error)
	Stats(ctx context.Context) ([]Stat, error)
	// Options returns the dropdown options for a filter dimension.
	Options(dimension string) []Option
	// Selection converts dropdown values keyed by dimension into a catalog selection.
	Selection(values map[string]string) catalog.Selection
	Sorts() []catalog.SortOption
}

// Filter dimensions.
const (
	DimIndustry    = "industry"
	DimStage       = "stage"
	DimAchievement = "achievement"
)

// Sort keys.
const (
	SortDefault  = "default"
	SortFeatured = "featured"
	SortAToZ     = "a-to-z"
)

// AllOption is the dropdown value that disables a filter.
const AllOption = "all"

// Metric is a headline number on a story card.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Story is one founder success story. Body is markdown.
type Story struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Founder     string   `json:"founder,omitempty"`
	Industry    string   `json:"industry"`
	Stage       string   `json:"stage"`
	Achievement string   `json:"achievement"`
	Description string   `json:"description"`
	Body        string   `json:"body,omitempty"`
	Image       string   `json:"image,omitempty"`
	Featured    bool     `json:"featured"`
	HasVideo    bool     `json:"hasVideo"`
	Timeline    string   `json:"timeline,omitempty"`
	Metrics     []Metric `json:"metrics,omitempty"`
}

// Testimonial is a founder quote shown in the carousel.
type Testimonial struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role,omitempty"`
	Company string `json:"company,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
	Quote   string `json:"quote"`
}

// Stat is a page-level headline figure.
type Stat struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change,omitempty"`
	Period string `json:"period,omitempty"`
	Icon   string `json:"icon,omitempty"`
}

// Option is a dropdown entry: a URL-safe value and the record label it selects.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Result is the filtered story list.
type Result struct {
	Items []Story
	Total int
	Sort  string
}

// Carousel tracks the visible testimonial. Index always stays within [0, Count).
type Carousel struct {
	Index int
	Count int
}

// NewCarousel clamps index into range.
func NewCarousel(index, count int) Carousel {
	c := Carousel{Count: count}
	if count > 0 {
		c.Index = ((index % count) + count) % count
	}
	return c
}

// Next advances one testimonial, wrapping at the end.
func (c Carousel) Next() Carousel {
	return NewCarousel(c.Index+1, c.Count)
}

// Prev moves back one testimonial, wrapping at the start.
func (c Carousel) Prev() Carousel {
	return NewCarousel(c.Index-1, c.Count)
}
