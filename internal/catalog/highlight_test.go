package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHighlight(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		term string
		want []Segment
	}{
		{name: "blank term", text: "PayLoop", term: " ", want: []Segment{{Text: "PayLoop"}}},
		{name: "empty text", text: "", term: "pay", want: nil},
		{name: "prefix", text: "PayLoop", term: "pay", want: []Segment{{Text: "Pay", Match: true}, {Text: "Loop"}}},
		{name: "repeated", text: "Loop de loop", term: "LOOP", want: []Segment{
			{Text: "Loop", Match: true}, {Text: " de "}, {Text: "loop", Match: true},
		}},
		{name: "no match", text: "MediSync", term: "pay", want: []Segment{{Text: "MediSync"}}},
		{name: "multibyte", text: "Café Über", term: "über", want: []Segment{{Text: "Café "}, {Text: "Über", Match: true}}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Highlight(tc.text, tc.term))
		})
	}
}
