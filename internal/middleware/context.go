package middleware

import (
	"context"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyIsHTMX     ctxKey = "is_htmx"
	ctxKeyHTMXTarget ctxKey = "htmx_target"
)

// WithHTMX marks request as HTMX
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, ctxKeyIsHTMX, is)
}

// IsHTMX returns whether this is an htmx request
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyIsHTMX).(bool)
	return v
}

// WithHTMXTarget stores the id of the element htmx will swap.
func WithHTMXTarget(ctx context.Context, target string) context.Context {
	return context.WithValue(ctx, ctxKeyHTMXTarget, target)
}

// HTMXTarget returns the swap target id, empty for full page loads.
func HTMXTarget(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyHTMXTarget).(string)
	return v
}
