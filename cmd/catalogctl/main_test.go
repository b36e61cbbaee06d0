package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQueryJSON(t *testing.T) {
	t.Parallel()

	out, err := run(t, "query", "startups", "--filter", "industry=FinTech", "--json")
	require.NoError(t, err)

	var res struct {
		Catalog string `json:"catalog"`
		Sort    string `json:"sort"`
		Count   int    `json:"count"`
		Total   int    `json:"total"`
		Items   []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Equal(t, "startups", res.Catalog)
	require.Equal(t, "most-relevant", res.Sort)
	require.Equal(t, 1, res.Count)
	require.Equal(t, 8, res.Total)
	require.Equal(t, "PayLoop", res.Items[0].Name)
}

func TestQueryTable(t *testing.T) {
	t.Parallel()

	out, err := run(t, "query", "investors", "-f", "type=investor", "--sort", "portfolio-size")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.True(t, strings.HasPrefix(lines[0], "ID"))
	require.Equal(t, "4 of 6 sorted by portfolio-size", lines[len(lines)-1])
}

func TestQueryStoriesUsesDropdownSlugs(t *testing.T) {
	t.Parallel()

	out, err := run(t, "query", "stories", "-f", "industry=ai", "-f", "achievement=growth")
	require.NoError(t, err)
	require.Contains(t, out, "ShieldStack")
	require.Contains(t, out, "1 of 6")
}

func TestQueryErrors(t *testing.T) {
	t.Parallel()

	_, err := run(t, "query", "pricing")
	require.ErrorContains(t, err, "unknown catalog")

	_, err = run(t, "query", "startups", "--filter", "industry")
	require.ErrorContains(t, err, "invalid filter")

	_, err = run(t, "query")
	require.Error(t, err)
}

func TestFacets(t *testing.T) {
	t.Parallel()

	out, err := run(t, "facets", "startups", "stage")
	require.NoError(t, err)
	first := strings.Fields(strings.Split(out, "\n")[0])
	require.Equal(t, []string{"Seed", "3"}, first)

	_, err = run(t, "facets", "stories", "industry")
	require.ErrorContains(t, err, "no facet counts")
}

func TestResolve(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  resolution
	}{
		{"#investors", resolution{Input: "#investors", View: "investors", Fragment: "#investors", Write: "none"}},
		{"#/Investors", resolution{Input: "#/Investors", View: "investors", Fragment: "#investors", Write: "replace"}},
		{"#pricing", resolution{Input: "#pricing", View: "home", Fragment: "#home", Write: "replace"}},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, resolveFragment(tc.input), tc.input)
	}

	out, err := run(t, "resolve", "#/growth-tools")
	require.NoError(t, err)
	require.Equal(t, "view: growth-tools\nfragment: #growth-tools\nwrite: replace\n", out)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := run(t, "version")
	require.NoError(t, err)
	require.Equal(t, "catalogctl dev\n", out)
}
