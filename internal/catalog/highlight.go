package catalog

import (
	"strings"
	"unicode/utf8"
)

// Segment is a run of display text, marked when it matched the search term.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits text around case-insensitive occurrences of term. A blank
// term yields the whole text as one unmarked segment.
func Highlight(text, term string) []Segment {
	if text == "" {
		return nil
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return []Segment{{Text: text}}
	}

	var out []Segment
	start := 0
	for i := 0; i < len(text); {
		if n := foldPrefix(text[i:], term); n > 0 {
			if i > start {
				out = append(out, Segment{Text: text[start:i]})
			}
			out = append(out, Segment{Text: text[i : i+n], Match: true})
			i += n
			start = i
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	if start < len(text) {
		out = append(out, Segment{Text: text[start:]})
	}
	return out
}

// foldPrefix returns the byte length of the prefix of s equal to term under
// simple case folding, or 0.
func foldPrefix(s, term string) int {
	n := 0
	for _, want := range term {
		if n >= len(s) {
			return 0
		}
		got, size := utf8.DecodeRuneInString(s[n:])
		if got != want && !strings.EqualFold(string(got), string(want)) {
			return 0
		}
		n += size
	}
	return n
}
