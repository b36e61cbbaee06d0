package pagination

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is used when the client omits limit.
	DefaultLimit = 10
	// MaxLimit caps the supported page size.
	MaxLimit = 100
)

var (
	ErrInvalidPage  = errors.New("pagination: invalid page")
	ErrInvalidLimit = errors.New("pagination: invalid limit")
)

// Params is a 1-based page request.
type Params struct {
	Page  int
	Limit int
}

// Offset is the index of the first record on the page. Offsets that do not fit
// in an int saturate at math.MaxInt, past the end of any result set.
func (p Params) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// FromRequest parses page and limit from the request query.
func FromRequest(r *http.Request) (Params, error) {
	if r == nil {
		return Params{}, errors.New("pagination: nil request")
	}
	return Parse(r.URL.Query())
}

// Parse validates page (>= 1) and limit (1..MaxLimit). Out-of-range values are errors,
// not clamped.
func Parse(values url.Values) (Params, error) {
	page, err := parseBounded(values.Get("page"), 1, 1, 0)
	if err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrInvalidPage, err)
	}
	limit, err := parseBounded(values.Get("limit"), DefaultLimit, 1, MaxLimit)
	if err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrInvalidLimit, err)
	}
	return Params{Page: page, Limit: limit}, nil
}

func parseBounded(raw string, fallback, lo, hi int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("must be an integer")
	}
	if value < lo {
		return 0, fmt.Errorf("must be at least %d", lo)
	}
	if hi > 0 && value > hi {
		return 0, fmt.Errorf("must be at most %d", hi)
	}
	return value, nil
}

// Page is one slice of a result set.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Slice cuts items down to the requested page. Pages past the end are empty.
func Slice[T any](items []T, p Params) Page[T] {
	total := len(items)
	totalPages := 0
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	data := []T{}
	if start := p.Offset(); start < total {
		end := start + p.Limit
		if end > total {
			end = total
		}
		data = append(data, items[start:end]...)
	}
	return Page[T]{
		Data:       data,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
	}
}
