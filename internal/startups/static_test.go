package startups

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"visnex.global/web/internal/catalog"
)

func newTestService(t *testing.T) *StaticService {
	t.Helper()
	svc, err := NewStaticService()
	require.NoError(t, err)
	return svc
}

func names(items []Startup) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, s.Name)
	}
	return out
}

func TestStaticServiceDefaultSortIsRelevance(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	res, err := svc.Search(context.Background(), catalog.Query{})
	require.NoError(t, err)
	require.Equal(t, svc.Total(), len(res.Items))
	require.Equal(t, SortMostRelevant, res.Sort)
	for i := 1; i < len(res.Items); i++ {
		require.GreaterOrEqual(t, res.Items[i-1].MatchPercentage, res.Items[i].MatchPercentage)
	}
}

func TestStaticServiceHighestFunding(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	res, err := svc.Search(context.Background(), catalog.Query{Sort: SortHighestFunding})
	require.NoError(t, err)
	require.Equal(t, []string{"GreenGrid Energy", "PayLoop", "NeuralFlow"}, names(res.Items[:3]))
	require.Equal(t, "LearnLoop", res.Items[len(res.Items)-1].Name)
}

func TestStaticServiceSearchMatchesCategories(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	res, err := svc.Search(context.Background(), catalog.Query{Term: "devtools"})
	require.NoError(t, err)
	require.Equal(t, []string{"ShieldStack"}, names(res.Items))
}

func TestStaticServiceFilters(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Search(ctx, catalog.Query{
		Filters: catalog.Selection{
			DimStage:    catalog.NewSet("Seed"),
			DimLocation: catalog.NewSet("kenya"),
		},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"AgriSense"}, names(res.Items))

	res, err = svc.Search(ctx, catalog.Query{
		Filters: catalog.Selection{DimIndustry: catalog.NewSet("CleanTech", "Logistics")},
		Sort:    SortAToZ,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Cartwheel", "GreenGrid Energy"}, names(res.Items))
}

func TestStaticServiceGet(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	startup, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "MediSync", startup.Name)

	_, err = svc.Get(context.Background(), 999)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestStaticServiceFacets(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	facets, err := svc.Facets(context.Background(), DimStage)
	require.NoError(t, err)
	require.Equal(t, catalog.Facet{Value: "Seed", Count: 3}, facets[0])
	require.Equal(t, catalog.Facet{Value: "Series A", Count: 3}, facets[1])

	_, err = svc.Facets(context.Background(), "color")
	require.Error(t, err)
}

func TestStaticServiceSorts(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	sorts := svc.Sorts()
	require.Len(t, sorts, 5)
	require.Equal(t, SortMostRelevant, sorts[0].Key)
	require.Equal(t, "A to Z", sorts[4].Label)
}
