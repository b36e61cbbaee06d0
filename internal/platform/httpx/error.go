// Package httpx writes the JSON bodies of the catalog API: payloads and the
// error envelope.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"visnex.global/web/internal/platform/requestctx"
)

const (
	codeLimit    = 80
	messageLimit = 512
)

// Error is an API failure with a stable machine code. It satisfies error so
// handlers can return it through the same paths as service errors.
type Error struct {
	Code    string
	Message string
	Status  int
	Details map[string]any
}

// NewError builds an Error. A zero status means 500.
func NewError(code, message string, status int) *Error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return &Error{
		Code:    clean(code, codeLimit),
		Message: clean(message, messageLimit),
		Status:  status,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// BadRequest is a 400 invalid_argument.
func BadRequest(message string) *Error {
	return NewError("invalid_argument", message, http.StatusBadRequest)
}

// NotFound is a 404 not_found.
func NotFound(message string) *Error {
	return NewError("not_found", message, http.StatusNotFound)
}

// Unavailable reports a catalog that was not wired, e.g. startup_unavailable.
func Unavailable(resource string) *Error {
	return NewError(resource+"_unavailable", resource+" service is unavailable", http.StatusServiceUnavailable)
}

// Internal hides the cause behind a generic 500.
func Internal() *Error {
	return NewError("internal_error", "internal server error", http.StatusInternalServerError)
}

// WithField names the offending query parameter.
func (e *Error) WithField(field string) *Error {
	return e.WithDetails(map[string]any{"field": field})
}

// WithDetails returns a copy of e carrying extra top-level envelope keys.
func (e *Error) WithDetails(details map[string]any) *Error {
	out := *e
	out.Details = make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		out.Details[k] = v
	}
	for k, v := range details {
		out.Details[k] = v
	}
	return &out
}

// NotFoundAs maps err to resource_not_found when it matches target. Other errors
// pass through unchanged.
func NotFoundAs(err, target error, resource string) error {
	if err != nil && target != nil && errors.Is(err, target) {
		return NewError(resource+"_not_found", resource+" not found", http.StatusNotFound)
	}
	return err
}

// WriteError writes err as the JSON error envelope. Anything that is not an
// *Error is logged and answered with a 500.
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		requestctx.Logger(ctx).Error("request failed", zap.Error(err))
		apiErr = Internal()
	}

	payload := make(map[string]any, len(apiErr.Details)+5)
	for k, v := range apiErr.Details {
		payload[k] = v
	}
	payload["error"] = apiErr.Code
	payload["message"] = apiErr.Message
	payload["status"] = apiErr.Status
	if id := clean(middleware.GetReqID(ctx), codeLimit); id != "" {
		payload["request_id"] = id
	}
	if id := clean(requestctx.TraceID(ctx), 64); id != "" {
		payload["trace_id"] = id
	}
	WriteJSON(w, apiErr.Status, payload)
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// clean flattens control characters to spaces and caps the length in bytes.
func clean(value string, limit int) string {
	value = strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, value))
	if len(value) > limit {
		value = value[:limit]
	}
	return value
}
