package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"visnex.global/web/internal/catalog"
	"visnex.global/web/internal/handlers"
	"visnex.global/web/internal/investors"
)

// result is a catalog query flattened for printing.
type result struct {
	Catalog string `json:"catalog"`
	Sort    string `json:"sort,omitempty"`
	Count   int    `json:"count"`
	Total   int    `json:"total"`
	Items   any    `json:"items"`

	header []string
	rows   [][]string
}

type catalogDef struct {
	search func(ctx context.Context, svc *handlers.Services, q catalog.Query, filters map[string][]string) (result, error)
	facets func(ctx context.Context, svc *handlers.Services, dimension string) ([]catalog.Facet, error)
}

var catalogs = map[string]catalogDef{
	"startups": {
		search: func(ctx context.Context, svc *handlers.Services, q catalog.Query, filters map[string][]string) (result, error) {
			q.Filters = selection(filters)
			res, err := svc.Startups.Search(ctx, q)
			if err != nil {
				return result{}, err
			}
			out := result{Sort: res.Sort, Total: res.Total, Items: res.Items,
				header: []string{"ID", "NAME", "INDUSTRY", "STAGE", "LOCATION", "FUNDING", "MATCH"}}
			for _, s := range res.Items {
				out.rows = append(out.rows, []string{itoa(s.ID), s.Name, s.Industry, s.FundingStage, s.Location, s.Funding, fmt.Sprintf("%.0f%%", s.MatchPercentage)})
			}
			return out, nil
		},
		facets: func(ctx context.Context, svc *handlers.Services, dim string) ([]catalog.Facet, error) {
			return svc.Startups.Facets(ctx, dim)
		},
	},
	"investors": {
		search: func(ctx context.Context, svc *handlers.Services, q catalog.Query, filters map[string][]string) (result, error) {
			q.Filters = selection(filters)
			res, err := svc.Investors.SearchInvestors(ctx, q)
			if err != nil {
				return result{}, err
			}
			out := result{Sort: res.Sort, Total: res.Total, Items: res.Items,
				header: []string{"ID", "NAME", "TYPE", "LOCATION", "STATUS", "PORTFOLIO", "DEALS"}}
			for _, inv := range res.Items {
				out.rows = append(out.rows, []string{itoa(inv.ID), inv.Name, inv.Type, inv.Location, inv.Status, itoa(inv.PortfolioCompanies), itoa(inv.ActiveDeals)})
			}
			return out, nil
		},
		facets: func(ctx context.Context, svc *handlers.Services, dim string) ([]catalog.Facet, error) {
			return svc.Investors.InvestorFacets(ctx, dim)
		},
	},
	"incubators": {
		search: func(ctx context.Context, svc *handlers.Services, q catalog.Query, filters map[string][]string) (result, error) {
			q.Filters = selection(filters)
			res, err := svc.Investors.SearchIncubators(ctx, q)
			if err != nil {
				return result{}, err
			}
			out := result{Sort: res.Sort, Total: res.Total, Items: res.Items,
				header: []string{"ID", "NAME", "TYPE", "LOCATION", "DURATION", "ALUMNI"}}
			for _, inc := range res.Items {
				out.rows = append(out.rows, []string{itoa(inc.ID), inc.Name, inc.Type, inc.Location, inc.Duration, itoa(inc.Alumni)})
			}
			return out, nil
		},
		facets: func(ctx context.Context, svc *handlers.Services, dim string) ([]catalog.Facet, error) {
			return svc.Investors.IncubatorFacets(ctx, dim)
		},
	},
	"opportunities": {
		search: func(ctx context.Context, svc *handlers.Services, q catalog.Query, filters map[string][]string) (result, error) {
			q.Filters = selection(filters)
			res, err := svc.Partnerships.SearchOpportunities(ctx, q)
			if err != nil {
				return result{}, err
			}
			out := result{Sort: res.Sort, Total: res.Total, Items: res.Items,
				header: []string{"ID", "TITLE", "COMPANY", "PRIORITY", "LOCATION", "MATCH"}}
			for _, o := range res.Items {
				out.rows = append(out.rows, []string{o.ID, o.Title, o.Company, o.Priority, o.Location, itoa(o.MatchPercentage) + "%"})
			}
			return out, nil
		},
		facets: func(ctx context.Context, svc *handlers.Services, dim string) ([]catalog.Facet, error) {
			return svc.Partnerships.OpportunityFacets(ctx, dim)
		},
	},
	"resources": {
		search: func(ctx context.Context, svc *handlers.Services, q catalog.Query, filters map[string][]string) (result, error) {
			q.Filters = selection(filters)
			res, err := svc.Partnerships.SearchResources(ctx, q)
			if err != nil {
				return result{}, err
			}
			out := result{Sort: res.Sort, Total: res.Total, Items: res.Items,
				header: []string{"ID", "TITLE", "PROVIDER", "CATEGORY", "PRICE", "RATING"}}
			for _, r := range res.Items {
				out.rows = append(out.rows, []string{r.ID, r.Title, r.Provider, r.Category,
					strconv.FormatFloat(r.Price, 'f', -1, 64) + " " + r.PriceType, strconv.FormatFloat(r.Rating, 'f', 1, 64)})
			}
			return out, nil
		},
		facets: func(ctx context.Context, svc *handlers.Services, dim string) ([]catalog.Facet, error) {
			return svc.Partnerships.ResourceFacets(ctx, dim)
		},
	},
	"stories": {
		search: func(ctx context.Context, svc *handlers.Services, q catalog.Query, filters map[string][]string) (result, error) {
			// Story filters are dropdowns: one slug per dimension.
			dropdowns := map[string]string{}
			for dim, values := range filters {
				if len(values) > 0 {
					dropdowns[dim] = values[len(values)-1]
				}
			}
			q.Filters = svc.Stories.Selection(dropdowns)
			res, err := svc.Stories.Search(ctx, q)
			if err != nil {
				return result{}, err
			}
			out := result{Sort: res.Sort, Total: res.Total, Items: res.Items,
				header: []string{"ID", "COMPANY", "INDUSTRY", "STAGE", "ACHIEVEMENT"}}
			for _, s := range res.Items {
				out.rows = append(out.rows, []string{itoa(s.ID), s.Company, s.Industry, s.Stage, s.Achievement})
			}
			return out, nil
		},
	},
	"growth-tools": {
		search: func(ctx context.Context, svc *handlers.Services, q catalog.Query, filters map[string][]string) (result, error) {
			q.Filters = selection(filters)
			res, err := svc.GrowthTools.Search(ctx, q)
			if err != nil {
				return result{}, err
			}
			out := result{Total: res.Total, Items: res.Items,
				header: []string{"ID", "SECTION", "NAME", "POPULAR"}}
			for _, t := range res.Items {
				out.rows = append(out.rows, []string{t.ID, t.Section, t.Name, strconv.FormatBool(t.Popular)})
			}
			return out, nil
		},
	},
}

func catalogNames() []string {
	names := make([]string, 0, len(catalogs))
	for name := range catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupCatalog(name string) (catalogDef, error) {
	def, ok := catalogs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return catalogDef{}, fmt.Errorf("unknown catalog %q (want one of %s)", name, strings.Join(catalogNames(), ", "))
	}
	return def, nil
}

// parseFilters reads repeated dim=value flags.
func parseFilters(raw []string) (map[string][]string, error) {
	out := map[string][]string{}
	for _, f := range raw {
		dim, value, ok := strings.Cut(f, "=")
		dim, value = strings.TrimSpace(dim), strings.TrimSpace(value)
		if !ok || dim == "" || value == "" {
			return nil, fmt.Errorf("invalid filter %q: want dimension=value", f)
		}
		out[dim] = append(out[dim], value)
	}
	return out, nil
}

func selection(filters map[string][]string) catalog.Selection {
	sel := catalog.Selection{}
	for dim, values := range filters {
		if dim == investors.DimType {
			values = investorTypes(values)
		}
		sel = sel.With(dim, values...)
	}
	return sel
}

// investorTypes accepts the radio keys (investor, incubator) as well as labels.
func investorTypes(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if label, ok := investors.TypeLabel(v); ok {
			v = label
		}
		if v != investors.TypeAll {
			out = append(out, v)
		}
	}
	return out
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
