package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"

	"visnex.global/web/internal/platform/requestctx"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestWriteErrorEnvelope(t *testing.T) {
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	ctx = requestctx.WithTrace(ctx, requestctx.TraceInfo{TraceID: "abc"})

	rec := httptest.NewRecorder()
	WriteError(ctx, rec, BadRequest("limit must be\nbetween 1 and 100").WithField("limit"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["error"] != "invalid_argument" {
		t.Fatalf("unexpected code %v", body["error"])
	}
	if body["message"] != "limit must be between 1 and 100" {
		t.Fatalf("message not cleaned: %q", body["message"])
	}
	if body["request_id"] != "req-1" || body["trace_id"] != "abc" {
		t.Fatalf("missing ids: %v", body)
	}
	if body["field"] != "limit" {
		t.Fatalf("missing details: %v", body)
	}
}

func TestWriteErrorHidesUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), rec, errors.New("disk on fire"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["error"] != "internal_error" || body["message"] != "internal server error" {
		t.Fatalf("leaked cause: %v", body)
	}
}

func TestNotFoundAs(t *testing.T) {
	errMissing := errors.New("startup not found")

	mapped := NotFoundAs(fmt.Errorf("lookup: %w", errMissing), errMissing, "startup")
	var apiErr *Error
	if !errors.As(mapped, &apiErr) || apiErr.Code != "startup_not_found" || apiErr.Status != http.StatusNotFound {
		t.Fatalf("unexpected mapping %v", mapped)
	}

	other := errors.New("boom")
	if got := NotFoundAs(other, errMissing, "startup"); got != other {
		t.Fatalf("expected passthrough, got %v", got)
	}
	if NotFoundAs(nil, errMissing, "startup") != nil {
		t.Fatalf("expected nil")
	}
}

func TestNewErrorDefaultsStatus(t *testing.T) {
	if got := NewError("x", "y", 0).Status; got != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", got)
	}
	base := NotFound("gone")
	withField := base.WithField("id")
	if base.Details != nil || withField.Details["field"] != "id" {
		t.Fatalf("WithDetails must copy")
	}
}
