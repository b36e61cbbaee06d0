package observability

import (
	"strings"
	"unicode"
)

// UnmatchedRoute labels requests no route pattern claimed, so 404 probes cannot
// grow the request metrics without bound.
const UnmatchedRoute = "unmatched"

// sanitizeString drops control characters and caps the rune count of values
// written to logs and metric labels.
func sanitizeString(value string, limit int) string {
	if limit <= 0 {
		limit = 256
	}
	var b strings.Builder
	n := 0
	for _, r := range value {
		if unicode.IsControl(r) {
			continue
		}
		if n == limit {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// SanitizeRoute cleans a route pattern for logs and metric labels.
func SanitizeRoute(route string) string {
	if route == "" {
		return "/"
	}
	return sanitizeString(route, 180)
}

// SanitizeMethod cleans an HTTP method.
func SanitizeMethod(method string) string {
	return strings.ToUpper(sanitizeString(method, 10))
}

// SanitizeFragment cleans a client-supplied URL fragment before it is logged.
func SanitizeFragment(fragment string) string {
	return sanitizeString(fragment, 64)
}
