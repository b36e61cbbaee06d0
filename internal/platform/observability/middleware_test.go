package observability

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"visnex.global/web/internal/platform/requestctx"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetReqID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(seen) != 26 {
		t.Fatalf("expected generated ulid, got %q", seen)
	}
	if rec.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("response header %q does not match %q", rec.Header().Get(RequestIDHeader), seen)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-id")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "client-id" {
		t.Fatalf("expected client id to be kept, got %q", seen)
	}
}

func TestRequestLoggerRecordsViewAndMetrics(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := NewMetrics()

	r := chi.NewRouter()
	r.Use(InjectLoggerMiddleware(zap.New(core)))
	r.Use(RequestLoggerMiddleware(metrics))
	r.Get("/views/{view}", func(w http.ResponseWriter, r *http.Request) {
		requestctx.SetView(r.Context(), chi.URLParam(r, "view"))
		w.WriteHeader(http.StatusNoContent)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/views/investors", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wp-login.php", nil))

	entries := logs.FilterMessage("request completed").All()
	if len(entries) != 2 {
		t.Fatalf("expected two completion logs, got %d", len(entries))
	}
	if entries[1].Level != zap.WarnLevel || entries[1].ContextMap()["route"] != UnmatchedRoute {
		t.Fatalf("expected unmatched warn entry, got %v %v", entries[1].Level, entries[1].ContextMap())
	}
	fields := entries[0].ContextMap()
	if fields["view"] != "investors" {
		t.Fatalf("expected view field, got %v", fields)
	}
	if fields["route"] != "/views/{view}" {
		t.Fatalf("expected route pattern, got %v", fields["route"])
	}
	if got := testutil.ToFloat64(metrics.requests.WithLabelValues("/views/{view}", "GET", "204")); got != 1 {
		t.Fatalf("expected one request observed, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.requests.WithLabelValues(UnmatchedRoute, "GET", "404")); got != 1 {
		t.Fatalf("expected unmatched 404 under one label, got %v", got)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := RecoveryMiddleware(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "internal_error" {
		t.Fatalf("unexpected body %v", body)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Fatal("expected panic to be logged")
	}
}

func TestMetricsHandlerExposesCollectors(t *testing.T) {
	metrics := NewMetrics()
	metrics.ObserveTransition("startups", "push")
	metrics.ObserveQuery("startups", "most-relevant", 3)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	for _, want := range []string{
		`visnex_view_transitions_total{mode="push",view="startups"} 1`,
		`visnex_catalog_queries_total{catalog="startups",sort="most-relevant"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}

	var nilMetrics *Metrics
	nilMetrics.ObserveQuery("x", "y", 1)
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger("chatty")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if !logger.Core().Enabled(zap.InfoLevel) || logger.Core().Enabled(zap.DebugLevel) {
		t.Fatal("expected info level")
	}
}
