package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrganizationOmitsEmptyFields(t *testing.T) {
	t.Parallel()

	org := Organization("Visnex", "https://visnex.global", "")
	require.Equal(t, "Organization", org["@type"])
	require.Equal(t, "https://visnex.global", org["url"])
	_, hasLogo := org["logo"]
	require.False(t, hasLogo)
}

func TestBreadcrumbList(t *testing.T) {
	t.Parallel()

	require.Nil(t, BreadcrumbList([]Crumb{{Name: "Home", URL: "https://visnex.global/#home"}}))

	doc := BreadcrumbList([]Crumb{
		{Name: "Home", URL: "https://visnex.global/#home"},
		{Name: "Investors", URL: "https://visnex.global/#investors"},
	})
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"@context": "https://schema.org",
		"@type": "BreadcrumbList",
		"itemListElement": [
			{"@type": "ListItem", "position": 1, "name": "Home", "item": "https://visnex.global/#home"},
			{"@type": "ListItem", "position": 2, "name": "Investors", "item": "https://visnex.global/#investors"}
		]
	}`, string(raw))
}
