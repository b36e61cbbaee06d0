package site

import (
	"testing"

	"github.com/stretchr/testify/require"

	"visnex.global/web/internal/viewrouter"
)

func TestBundledCopyCoversEveryView(t *testing.T) {
	t.Parallel()

	s, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Visnex", s.Name)
	for _, v := range viewrouter.Views() {
		require.NotEmpty(t, s.Page(v).Heading, "view %s", v)
	}
	require.Equal(t, "Success Stories", s.Page(viewrouter.SuccessStories).Nav)
	require.Len(t, s.Page(viewrouter.Home).CTA, 2)
	require.Equal(t, viewrouter.Startups, s.Page(viewrouter.Home).CTA[0].View)
}

func TestPageFallsBackToHome(t *testing.T) {
	t.Parallel()

	s, err := Load()
	require.NoError(t, err)
	require.Equal(t, s.Page(viewrouter.Home), s.Page(viewrouter.View("pricing")))
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	s := &Site{BaseURL: "https://visnex.global/"}
	require.Equal(t, "https://visnex.global/", s.Canonical(viewrouter.Home))
	require.Equal(t, "https://visnex.global/#investors", s.Canonical(viewrouter.Investors))
}

func TestParseRejectsIncompleteDeck(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("name: x\nviews:\n  home:\n    nav: Home\n    title: Home\n"))
	require.ErrorContains(t, err, "startups")

	_, err = Parse([]byte("views: ["))
	require.Error(t, err)
}
