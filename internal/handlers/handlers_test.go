package handlers

import (
	"context"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"visnex.global/web/internal/catalog"
	"visnex.global/web/internal/investors"
	"visnex.global/web/internal/site"
	"visnex.global/web/internal/viewrouter"
)

var (
	servicesOnce sync.Once
	testServices *Services
	servicesErr  error
)

func loadServices(t *testing.T) *Services {
	t.Helper()
	servicesOnce.Do(func() {
		testServices, servicesErr = NewStaticServices(nil)
	})
	require.NoError(t, servicesErr)
	return testServices
}

func mustQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return values
}

func TestCodecParse(t *testing.T) {
	t.Parallel()

	codec := Codec{Dimensions: []string{"industry", "stage"}}
	q := codec.Parse(mustQuery(t, "q=+pay+&industry=FinTech&industry=AI&toggle=industry:AI&toggle=stage:Seed&toggle=color:red&sort=a-to-z&mode=LIST"))

	require.Equal(t, "pay", q.Term)
	require.Equal(t, "a-to-z", q.Sort)
	require.Equal(t, catalog.ViewList, q.Mode)
	require.Equal(t, []string{"FinTech"}, q.Filters.Get("industry").Values())
	require.Equal(t, []string{"Seed"}, q.Filters.Get("stage").Values())
	require.False(t, q.Filters.Get("color").Has("red"))
}

func TestCodecPrefixRoundTrip(t *testing.T) {
	t.Parallel()

	codec := Codec{Prefix: "res-", Dimensions: []string{"category"}}
	q := catalog.Query{
		Term:    "legal",
		Sort:    "highest-rated",
		Filters: catalog.Selection{}.With("category", "Legal", "Analytics"),
	}
	values := url.Values{}
	codec.Encode(values, q)

	require.Equal(t, "legal", values.Get("res-q"))
	require.Equal(t, []string{"Analytics", "Legal"}, values["res-category"])
	require.Empty(t, values.Get("res-mode"))

	back := codec.Parse(values)
	require.Equal(t, q.Term, back.Term)
	require.True(t, q.Filters.Get("category").Equal(back.Filters.Get("category")))
}

func TestLinks(t *testing.T) {
	t.Parallel()

	links := Links{
		Base:  "/startups/results",
		Codec: Codec{Dimensions: []string{"industry"}},
		Query: catalog.Query{Term: "ai", Sort: "a-to-z", Filters: catalog.Selection{}.With("industry", "FinTech")},
		Keep:  url.Values{"tab": {"x"}},
	}

	require.Equal(t, "/startups/results?industry=FinTech&industry=HealthTech&q=ai&sort=a-to-z&tab=x", links.Toggle("industry", "HealthTech"))
	require.Equal(t, "/startups/results?q=ai&sort=a-to-z&tab=x", links.Toggle("industry", "FinTech"))
	require.Equal(t, "/startups/results?sort=a-to-z&tab=x", links.Clear())
	require.Equal(t, "/startups/results?industry=FinTech&mode=list&q=ai&sort=a-to-z&tab=x", links.Mode(catalog.ViewList))
	require.Equal(t, []string{"FinTech"}, links.Query.Filters.Get("industry").Values())
}

func TestBuildStartups(t *testing.T) {
	t.Parallel()
	svc := loadServices(t)
	ctx := context.Background()

	view, err := svc.BuildStartups(ctx, mustQuery(t, "industry=FinTech"), "none")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, "PayLoop", view.Items[0].Name)
	require.Equal(t, []catalog.Segment{{Text: "PayLoop"}}, view.Items[0].Title)
	require.Equal(t, 8, view.Total)
	require.True(t, view.Filtered)
	require.Equal(t, StartupsResultsPath, view.ClearHref)
	require.Len(t, view.Filters, 3)

	var fintech FilterOption
	for _, opt := range view.Filters[0].Options {
		if opt.Value == "FinTech" {
			fintech = opt
		}
	}
	require.True(t, fintech.Selected)
	require.Equal(t, 1, fintech.Count)
	require.Equal(t, StartupsResultsPath, fintech.Href)

	require.Equal(t, "most-relevant", view.Sort)
	require.True(t, view.Sorts[0].Selected)

	searched, err := svc.BuildStartups(ctx, mustQuery(t, "q=payloop"), "")
	require.NoError(t, err)
	require.NotEmpty(t, searched.Items)
	require.Equal(t, []catalog.Segment{{Text: "PayLoop", Match: true}}, searched.Items[0].Title)

	empty, err := svc.BuildStartups(ctx, mustQuery(t, "q=zzz-no-match"), "No startups")
	require.NoError(t, err)
	require.True(t, empty.Empty)
	require.Equal(t, "No startups", empty.EmptyMessage)
}

func TestBuildInvestorsTabs(t *testing.T) {
	t.Parallel()
	svc := loadServices(t)
	ctx := context.Background()

	view, err := svc.BuildInvestors(ctx, mustQuery(t, "type=investor"), "")
	require.NoError(t, err)
	require.Equal(t, investors.TabInvestors, view.Tab)
	var ids []int
	for _, inv := range view.Investors {
		ids = append(ids, inv.ID)
	}
	require.Equal(t, []int{1, 2, 5, 6}, ids)
	require.Equal(t, 5, view.Stats.ActiveInvestors)
	require.True(t, view.Types[1].Selected)
	require.Equal(t, "/investors/results?type=investor", view.SelfHref)

	view, err = svc.BuildInvestors(ctx, mustQuery(t, "tab=incubators&location=boston"), "")
	require.NoError(t, err)
	require.Equal(t, investors.TabIncubators, view.Tab)
	require.Len(t, view.Incubators, 1)
	require.Equal(t, "HealthBridge Labs", view.Incubators[0].Name)
	require.Empty(t, view.Types)
	require.True(t, view.Tabs[1].Active)
	require.Equal(t, investors.AllLocations, view.Locations[0].Value)
	require.False(t, view.Locations[0].Selected)

	view, err = svc.BuildInvestors(ctx, mustQuery(t, "location=All+Locations"), "")
	require.NoError(t, err)
	require.Len(t, view.Investors, 6)
	require.True(t, view.Locations[0].Selected)
}

func TestBuildPartnershipsFavorites(t *testing.T) {
	t.Parallel()
	svc := loadServices(t)

	view, err := svc.BuildPartnerships(context.Background(), mustQuery(t, "fav=opp-1&togglefav=opp-2&res-category=Legal"), "")
	require.NoError(t, err)
	require.Equal(t, 2, view.Favorites)
	require.Len(t, view.Opportunities.Items, 4)

	first := view.Opportunities.Items[0]
	require.Equal(t, "opp-1", first.ID)
	require.True(t, first.Favorite)
	require.Equal(t, "/partnerships/results?fav=opp-2&res-category=Legal", first.FavoriteHref)

	require.Len(t, view.Resources.Items, 1)
	require.Equal(t, "res-1", view.Resources.Items[0].ID)
	require.Equal(t, "/partnerships/results?fav=opp-1&fav=opp-2", view.Resources.ClearHref)
}

func TestBuildStories(t *testing.T) {
	t.Parallel()
	svc := loadServices(t)
	ctx := context.Background()

	view, err := svc.BuildStories(ctx, mustQuery(t, "industry=ai&achievement=growth"), "")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, "ShieldStack", view.Items[0].Company)
	require.NotEmpty(t, view.Items[0].BodyHTML)
	require.Equal(t, "ai", view.Dropdowns[0].Selected)
	require.Equal(t, "all", view.Dropdowns[1].Selected)

	view, err = svc.BuildStories(ctx, mustQuery(t, "t=5"), "")
	require.NoError(t, err)
	require.Equal(t, 2, view.Carousel.Index)
	require.Equal(t, StoriesResultsPath+"?t=1", view.PrevHref)
	require.Equal(t, StoriesResultsPath, view.NextHref)
	require.Len(t, view.Items, 6)
}

func TestBuildGrowthTools(t *testing.T) {
	t.Parallel()
	svc := loadServices(t)
	ctx := context.Background()

	view, err := svc.BuildGrowthTools(ctx, mustQuery(t, "filter=Mentorship"), "")
	require.NoError(t, err)
	require.Equal(t, "mentorship", view.Filter)
	require.Len(t, view.Groups, 1)
	require.Equal(t, "Mentors", view.Groups[0].Label)
	require.Len(t, view.Groups[0].Tools, 3)

	view, err = svc.BuildGrowthTools(ctx, mustQuery(t, "filter=guides"), "")
	require.NoError(t, err)
	require.Len(t, view.Groups, 1)
	for _, tool := range view.Groups[0].Tools {
		require.NotEmpty(t, tool.SummaryHTML, tool.ID)
	}

	view, err = svc.BuildGrowthTools(ctx, mustQuery(t, "q=nothing-like-this"), "No tools")
	require.NoError(t, err)
	require.True(t, view.Empty)
	require.Equal(t, "No tools", view.EmptyText)
}

func TestBuildViewAndPage(t *testing.T) {
	t.Parallel()
	svc := loadServices(t)
	sc, err := site.Load()
	require.NoError(t, err)

	data, err := svc.BuildView(context.Background(), sc, viewrouter.View("pricing"), nil)
	require.NoError(t, err)
	require.Equal(t, viewrouter.Home, data.View)
	require.Equal(t, "view_home", data.Partial)
	home, ok := data.Payload.(HomeView)
	require.True(t, ok)
	require.Len(t, home.Featured, 3)
	require.Equal(t, "NeuralFlow", home.Featured[0].Name)
	require.Equal(t, "/#startups", home.CTAs[0].Href)

	data, err = svc.BuildView(context.Background(), sc, viewrouter.Investors, url.Values{})
	require.NoError(t, err)
	vm := BuildPageData(sc, data, Analytics{GA4MeasurementID: "G-TEST"})
	require.Equal(t, "https://visnex.global/#investors", vm.SEO.Canonical)
	require.Equal(t, "G-TEST", vm.Analytics.GA4MeasurementID)
	require.Len(t, vm.Breadcrumbs, 2)
	require.True(t, vm.Nav[2].Active)
	require.Len(t, vm.SEO.JSONLD, 1)
	require.Equal(t, "BreadcrumbList", vm.SEO.JSONLD[0]["@type"])

	homeData, err := svc.BuildView(context.Background(), sc, viewrouter.Home, nil)
	require.NoError(t, err)
	vm = BuildPageData(sc, homeData, Analytics{})
	require.Len(t, vm.SEO.JSONLD, 2)
	require.Equal(t, "https://visnex.global/assets/img/og-default.png", vm.SEO.JSONLD[0]["logo"])
}
