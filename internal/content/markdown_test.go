package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		contains []string
		excludes []string
	}{
		{
			name:     "emphasis and lists",
			source:   "Closed a **$12M** round.\n\n- one\n- two",
			contains: []string{"<strong>$12M</strong>", "<li>one</li>"},
		},
		{
			name:     "raw html is dropped",
			source:   "hello <script>alert(1)</script>",
			excludes: []string{"<script>", "alert(1)</script>"},
		},
		{
			name:     "links get nofollow",
			source:   "[site](https://visnex.global)",
			contains: []string{`href="https://visnex.global"`, `rel="nofollow"`},
		},
		{
			name:   "blank",
			source: "   ",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out, err := Render(tc.source)
			require.NoError(t, err)
			for _, want := range tc.contains {
				require.Contains(t, string(out), want)
			}
			for _, bad := range tc.excludes {
				require.NotContains(t, string(out), bad)
			}
			if strings.TrimSpace(tc.source) == "" {
				require.Empty(t, out)
			}
		})
	}
}

func TestSanitizeKeepsFigures(t *testing.T) {
	t.Parallel()

	out := Sanitize(`<figure class="wide" onclick="x()"><img src="/a.png" loading="lazy"><figcaption>cap</figcaption></figure>`)
	require.Contains(t, string(out), `<figure class="wide">`)
	require.Contains(t, string(out), `loading="lazy"`)
	require.NotContains(t, string(out), "onclick")
}
