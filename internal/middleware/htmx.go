package middleware

import (
	"net/http"
)

// HTMX marks requests coming from htmx so handlers can render partials instead of
// the full layout.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true"
		ctx := WithHTMX(r.Context(), is)
		if is {
			ctx = WithHTMXTarget(ctx, r.Header.Get("HX-Target"))
			w.Header().Add("Vary", "HX-Request")
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
