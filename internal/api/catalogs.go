package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"visnex.global/web/internal/catalog"
	"visnex.global/web/internal/growthtools"
	"visnex.global/web/internal/investors"
	"visnex.global/web/internal/partnerships"
	"visnex.global/web/internal/platform/httpx"
	"visnex.global/web/internal/startups"
	"visnex.global/web/internal/stories"
)

// Original backend sort_by field names, kept working alongside the page sort keys.
var startupSortAliases = map[string]string{
	"matchPercentage": startups.SortMostRelevant,
	"founded":         startups.SortNewestFirst,
	"funding":         startups.SortHighestFunding,
	"growth":          startups.SortFastestGrowing,
	"name":            startups.SortAToZ,
}

var investorSortAliases = map[string]string{
	"portfolioCompanies": investors.SortPortfolioSize,
	"activeDeals":        investors.SortActiveDeals,
	"alumni":             investors.SortPortfolioSize,
	"successRate":        investors.SortSuccessRate,
}

func listQuery(values url.Values, filters catalog.Selection, aliases map[string]string) catalog.Query {
	sortKey := strings.TrimSpace(values.Get("sort_by"))
	if alias, ok := aliases[sortKey]; ok {
		sortKey = alias
	}
	return catalog.Query{
		Term:    strings.TrimSpace(values.Get("search")),
		Filters: filters,
		Sort:    sortKey,
	}
}

func (h *Handlers) listStartups(w http.ResponseWriter, r *http.Request) {
	if h.startups == nil {
		fail(w, r, httpx.Unavailable("startup"))
		return
	}
	params, ok := pageParams(w, r)
	if !ok {
		return
	}
	values := r.URL.Query()
	q := listQuery(values, selection(values, map[string]string{
		"industry":      startups.DimIndustry,
		"funding_stage": startups.DimStage,
		"location":      startups.DimLocation,
		"category":      startups.DimCategory,
		"tag":           startups.DimTag,
	}), startupSortAliases)

	res, err := h.startups.Search(r.Context(), q)
	if err != nil {
		fail(w, r, err)
		return
	}
	h.metrics.ObserveQuery("startups", res.Sort, len(res.Items))
	writePage(w, params, res.Items)
}

func (h *Handlers) getStartup(w http.ResponseWriter, r *http.Request) {
	if h.startups == nil {
		fail(w, r, httpx.Unavailable("startup"))
		return
	}
	id, ok := pathID(w, r, "startup")
	if !ok {
		return
	}
	s, err := h.startups.Get(r.Context(), id)
	if err != nil {
		fail(w, r, httpx.NotFoundAs(err, startups.ErrNotFound, "startup"))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s)
}

// startupFilterKinds maps /filters/{kind} to the dimension and the response key the
// original backend used.
var startupFilterKinds = map[string]struct{ dim, key string }{
	"industries": {startups.DimIndustry, "industries"},
	"stages":     {startups.DimStage, "fundingStages"},
	"locations":  {startups.DimLocation, "locations"},
	"categories": {startups.DimCategory, "categories"},
	"tags":       {startups.DimTag, "tags"},
}

func (h *Handlers) startupFilters(w http.ResponseWriter, r *http.Request) {
	if h.startups == nil {
		fail(w, r, httpx.Unavailable("startup"))
		return
	}
	kind, ok := startupFilterKinds[chi.URLParam(r, "kind")]
	if !ok {
		fail(w, r, httpx.NotFound("unknown filter "+chi.URLParam(r, "kind")))
		return
	}
	facets, err := h.startups.Facets(r.Context(), kind.dim)
	if err != nil {
		fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{kind.key: facets})
}

func (h *Handlers) listInvestors(w http.ResponseWriter, r *http.Request) {
	if h.investors == nil {
		fail(w, r, httpx.Unavailable("investor"))
		return
	}
	params, ok := pageParams(w, r)
	if !ok {
		return
	}
	values := r.URL.Query()
	tab := investors.ParseTab(values.Get("tab"))

	dims := map[string]string{
		"industry": investors.DimIndustry,
		"location": investors.DimLocation,
	}
	if tab == investors.TabInvestors {
		dims["stage"] = investors.DimStage
		dims["status"] = investors.DimStatus
		dims["type"] = investors.DimType
	}
	filters := selection(values, dims)
	// Radio values select the record type they stand for.
	if types := filters.Get(investors.DimType); len(types) > 0 {
		var mapped []string
		for _, v := range types.Values() {
			if label, ok := investors.TypeLabel(v); ok {
				v = label
			}
			if v != investors.TypeAll {
				mapped = append(mapped, v)
			}
		}
		filters = filters.With(investors.DimType, mapped...)
	}
	if loc := filters.Get(investors.DimLocation); loc.Has(investors.AllLocations) {
		filters = filters.With(investors.DimLocation)
	}
	q := listQuery(values, filters, investorSortAliases)

	if tab == investors.TabIncubators {
		res, err := h.investors.SearchIncubators(r.Context(), q)
		if err != nil {
			fail(w, r, err)
			return
		}
		h.metrics.ObserveQuery(string(tab), res.Sort, len(res.Items))
		writePage(w, params, res.Items)
		return
	}
	res, err := h.investors.SearchInvestors(r.Context(), q)
	if err != nil {
		fail(w, r, err)
		return
	}
	h.metrics.ObserveQuery(string(tab), res.Sort, len(res.Items))
	writePage(w, params, res.Items)
}

// getInvestor looks in the investors tab first, then the incubators tab.
func (h *Handlers) getInvestor(w http.ResponseWriter, r *http.Request) {
	if h.investors == nil {
		fail(w, r, httpx.Unavailable("investor"))
		return
	}
	id, ok := pathID(w, r, "investor")
	if !ok {
		return
	}
	inv, err := h.investors.Investor(r.Context(), id)
	if err == nil {
		httpx.WriteJSON(w, http.StatusOK, inv)
		return
	}
	if !errors.Is(err, investors.ErrNotFound) {
		fail(w, r, err)
		return
	}
	inc, err := h.investors.Incubator(r.Context(), id)
	if err != nil {
		fail(w, r, httpx.NotFoundAs(err, investors.ErrNotFound, "investor"))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, inc)
}

func (h *Handlers) allIncubators(w http.ResponseWriter, r *http.Request) {
	if h.investors == nil {
		fail(w, r, httpx.Unavailable("investor"))
		return
	}
	all := h.investors.AllIncubators()
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"data": all, "total": len(all)})
}

var investorFilterKinds = map[string]string{
	"industries": investors.DimIndustry,
	"stages":     investors.DimStage,
	"locations":  investors.DimLocation,
}

func (h *Handlers) investorFilters(w http.ResponseWriter, r *http.Request) {
	if h.investors == nil {
		fail(w, r, httpx.Unavailable("investor"))
		return
	}
	kind := chi.URLParam(r, "kind")
	dim, ok := investorFilterKinds[kind]
	if !ok {
		fail(w, r, httpx.NotFound("unknown filter "+kind))
		return
	}
	facets, err := h.investors.InvestorFacets(r.Context(), dim)
	if err != nil {
		fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{kind: facets})
}

func (h *Handlers) listStories(w http.ResponseWriter, r *http.Request) {
	if h.stories == nil {
		fail(w, r, httpx.Unavailable("story"))
		return
	}
	params, ok := pageParams(w, r)
	if !ok {
		return
	}
	values := r.URL.Query()
	dropdowns := map[string]string{}
	for _, dim := range []string{stories.DimIndustry, stories.DimStage, stories.DimAchievement} {
		if v := strings.TrimSpace(values.Get(dim)); v != "" {
			dropdowns[dim] = v
		}
	}
	q := listQuery(values, h.stories.Selection(dropdowns), nil)
	res, err := h.stories.Search(r.Context(), q)
	if err != nil {
		fail(w, r, err)
		return
	}
	h.metrics.ObserveQuery("stories", res.Sort, len(res.Items))
	writePage(w, params, res.Items)
}

func (h *Handlers) listOpportunities(w http.ResponseWriter, r *http.Request) {
	if h.partnerships == nil {
		fail(w, r, httpx.Unavailable("partnership"))
		return
	}
	params, ok := pageParams(w, r)
	if !ok {
		return
	}
	values := r.URL.Query()
	q := listQuery(values, selection(values, map[string]string{
		"priority": partnerships.DimPriority,
		"tag":      partnerships.DimTag,
		"location": partnerships.DimLocation,
	}), nil)
	res, err := h.partnerships.SearchOpportunities(r.Context(), q)
	if err != nil {
		fail(w, r, err)
		return
	}
	h.metrics.ObserveQuery("opportunities", res.Sort, len(res.Items))
	writePage(w, params, res.Items)
}

func (h *Handlers) listResources(w http.ResponseWriter, r *http.Request) {
	if h.partnerships == nil {
		fail(w, r, httpx.Unavailable("partnership"))
		return
	}
	params, ok := pageParams(w, r)
	if !ok {
		return
	}
	values := r.URL.Query()
	q := listQuery(values, selection(values, map[string]string{
		"category":  partnerships.DimCategory,
		"priceType": partnerships.DimPriceType,
	}), nil)
	res, err := h.partnerships.SearchResources(r.Context(), q)
	if err != nil {
		fail(w, r, err)
		return
	}
	h.metrics.ObserveQuery("resources", res.Sort, len(res.Items))
	writePage(w, params, res.Items)
}

func (h *Handlers) listGrowthTools(w http.ResponseWriter, r *http.Request) {
	if h.growthTools == nil {
		fail(w, r, httpx.Unavailable("growth_tools"))
		return
	}
	params, ok := pageParams(w, r)
	if !ok {
		return
	}
	values := r.URL.Query()
	filter := growthtools.ParseFilter(values.Get("filter"))
	q := listQuery(values, filter.Selection(), nil)
	res, err := h.growthTools.Search(r.Context(), q)
	if err != nil {
		fail(w, r, err)
		return
	}
	h.metrics.ObserveQuery("growth-tools", growthtools.SortDefault, len(res.Items))
	writePage(w, params, res.Items)
}
