// Package api serves the read-only JSON view of every catalog under /api.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"visnex.global/web/internal/catalog"
	"visnex.global/web/internal/growthtools"
	"visnex.global/web/internal/insights"
	"visnex.global/web/internal/investors"
	"visnex.global/web/internal/partnerships"
	"visnex.global/web/internal/platform/httpx"
	"visnex.global/web/internal/platform/observability"
	"visnex.global/web/internal/platform/pagination"
	"visnex.global/web/internal/startups"
	"visnex.global/web/internal/stories"
)

// Version is reported by the index endpoint.
const Version = "1.0.0"

const errorNotFoundCode = "route_not_found"

// Handlers exposes the catalogs as JSON.
type Handlers struct {
	startups     startups.Service
	investors    investors.Service
	partnerships partnerships.Service
	stories      stories.Service
	growthTools  growthtools.Service
	insights     *insights.Service
	metrics      *observability.Metrics
}

// Option customises construction of Handlers.
type Option func(*Handlers)

// WithStartups injects the startup catalog.
func WithStartups(svc startups.Service) Option {
	return func(h *Handlers) { h.startups = svc }
}

// WithInvestors injects the investor network.
func WithInvestors(svc investors.Service) Option {
	return func(h *Handlers) { h.investors = svc }
}

// WithPartnerships injects the partnership hub.
func WithPartnerships(svc partnerships.Service) Option {
	return func(h *Handlers) { h.partnerships = svc }
}

// WithStories injects the success stories.
func WithStories(svc stories.Service) Option {
	return func(h *Handlers) { h.stories = svc }
}

// WithGrowthTools injects the growth tools library.
func WithGrowthTools(svc growthtools.Service) Option {
	return func(h *Handlers) { h.growthTools = svc }
}

// WithInsights injects the statistics service.
func WithInsights(svc *insights.Service) Option {
	return func(h *Handlers) { h.insights = svc }
}

// WithMetrics records catalog queries.
func WithMetrics(m *observability.Metrics) Option {
	return func(h *Handlers) { h.metrics = m }
}

// New constructs the API handlers.
func New(opts ...Option) *Handlers {
	h := &Handlers{}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Routes registers every endpoint relative to the /api mount point.
func (h *Handlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(req.Context(), w, httpx.NewError(errorNotFoundCode, fmt.Sprintf("no route for %s", req.URL.Path), http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(req.Context(), w, httpx.NewError("method_not_allowed", fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path), http.StatusMethodNotAllowed))
	})

	r.Get("/", h.index)

	r.Get("/startups", h.listStartups)
	r.Get("/startups/filters/{kind}", h.startupFilters)
	r.Get("/startups/{id}", h.getStartup)

	r.Get("/investors", h.listInvestors)
	r.Get("/investors/incubators/all", h.allIncubators)
	r.Get("/investors/filters/{kind}", h.investorFilters)
	r.Get("/investors/{id}", h.getInvestor)

	r.Get("/stories", h.listStories)
	r.Get("/partnerships/opportunities", h.listOpportunities)
	r.Get("/partnerships/resources", h.listResources)
	r.Get("/growth-tools", h.listGrowthTools)

	r.Get("/stats", h.stats)
	r.Get("/stats/dashboard", h.dashboard)

	r.Get("/views/resolve", h.resolveView)
}

func (h *Handlers) index(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to Visnex API",
		"version": Version,
		"endpoints": map[string]string{
			"startups":     "/api/startups",
			"investors":    "/api/investors",
			"stories":      "/api/stories",
			"partnerships": "/api/partnerships/opportunities",
			"resources":    "/api/partnerships/resources",
			"growthTools":  "/api/growth-tools",
			"stats":        "/api/stats",
			"views":        "/api/views/resolve",
		},
	})
}

// writePage writes the requested page of items in the paged envelope.
func writePage[T any](w http.ResponseWriter, params pagination.Params, items []T) {
	httpx.WriteJSON(w, http.StatusOK, pagination.Slice(items, params))
}

// pageParams parses page and limit, writing the 400 itself on failure.
func pageParams(w http.ResponseWriter, r *http.Request) (pagination.Params, bool) {
	params, err := pagination.FromRequest(r)
	if err != nil {
		field := "page"
		if errors.Is(err, pagination.ErrInvalidLimit) {
			field = "limit"
		}
		fail(w, r, httpx.BadRequest(err.Error()).WithField(field))
		return pagination.Params{}, false
	}
	return params, true
}

// selection reads repeatable filter params. Each entry maps a query param to a
// catalog dimension; comma separated values are split.
func selection(values url.Values, params map[string]string) catalog.Selection {
	sel := catalog.Selection{}
	for param, dim := range params {
		var picked []string
		for _, raw := range values[param] {
			for _, v := range strings.Split(raw, ",") {
				if v = strings.TrimSpace(v); v != "" {
					picked = append(picked, v)
				}
			}
		}
		if len(picked) > 0 {
			sel = sel.With(dim, append(sel.Get(dim).Values(), picked...)...)
		}
	}
	return sel
}

func pathID(w http.ResponseWriter, r *http.Request, resource string) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		fail(w, r, httpx.BadRequest(fmt.Sprintf("%s id must be a positive integer", resource)))
		return 0, false
	}
	return id, true
}

func fail(w http.ResponseWriter, r *http.Request, err error) {
	httpx.WriteError(r.Context(), w, err)
}
