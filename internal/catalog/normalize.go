package catalog

import (
	"strconv"
	"strings"
)

// Normalizer converts a raw sort field into a comparable number.
type Normalizer func(raw string) float64

// NumericLike strips every character that is not a digit, '.' or '-' and parses the
// remainder. "$12M" -> 12, "+45%" -> 45, "$8.5M" -> 8.5. Values that do not parse
// normalize to 0 so they rank lowest.
func NumericLike(raw string) float64 {
	if raw == "" {
		return 0
	}
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}
