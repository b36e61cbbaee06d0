package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToggleIsInvolution(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		start Set
		value string
	}{
		{name: "empty set", start: NewSet(), value: "AI"},
		{name: "value absent", start: NewSet("Fintech"), value: "AI"},
		{name: "value present", start: NewSet("AI", "Fintech"), value: "AI"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			before := tc.start.Clone()
			once := Toggle(tc.start, tc.value)
			twice := Toggle(once, tc.value)
			require.True(t, twice.Equal(tc.start))
			require.NotEqual(t, tc.start.Has(tc.value), once.Has(tc.value))
			require.True(t, before.Equal(tc.start), "input set must not change")
		})
	}
}

func TestSelectionToggle(t *testing.T) {
	t.Parallel()

	sel := Selection{"industry": NewSet("AI")}
	added := sel.Toggle("industry", "Fintech")
	require.Equal(t, []string{"AI", "Fintech"}, added.Get("industry").Values())
	require.Equal(t, []string{"AI"}, sel.Get("industry").Values())

	removed := added.Toggle("industry", "AI").Toggle("industry", "Fintech")
	_, ok := removed["industry"]
	require.False(t, ok)
	require.False(t, removed.Active())

	other := sel.Toggle("stage", "Seed")
	require.True(t, other.Get("stage").Has("Seed"))
	require.True(t, other.Get("industry").Has("AI"))
	require.True(t, sel.Toggle("industry", "Fintech").Toggle("industry", "Fintech").Get("industry").Equal(sel.Get("industry")))
}

func TestSelectionWith(t *testing.T) {
	t.Parallel()

	sel := Selection{}.With("stage", "Seed", " ", "Series A")
	require.Equal(t, []string{"Seed", "Series A"}, sel.Get("stage").Values())
	require.True(t, sel.Active())
	require.False(t, sel.With("stage").Active())
	require.Empty(t, Selection(nil).Get("missing"))
}
