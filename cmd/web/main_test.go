package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap/zaptest"

	"visnex.global/web/internal/handlers"
	"visnex.global/web/internal/platform/config"
	"visnex.global/web/internal/platform/observability"
	"visnex.global/web/internal/site"
	"visnex.global/web/internal/viewrouter"
)

func testConfig() config.Config {
	return config.Config{
		RateLimit: config.RateLimitConfig{PerMinute: 600, Burst: 100},
		Telemetry: config.TelemetryConfig{MetricsEnabled: true},
	}
}

// newTestRouter builds the same router as main() around the bundled catalogs.
func newTestRouter(t *testing.T, cfg config.Config, tmplDir string) http.Handler {
	t.Helper()
	metrics := observability.NewMetrics()
	services, err := handlers.NewStaticServices(metrics)
	if err != nil {
		t.Fatalf("load services: %v", err)
	}
	copyDeck, err := site.Load()
	if err != nil {
		t.Fatalf("load site: %v", err)
	}
	rd, err := newRenderer(tmplDir)
	if err != nil {
		t.Fatalf("parseTemplates failed: %v", err)
	}
	a := &app{
		site:      copyDeck,
		services:  services,
		metrics:   metrics,
		analytics: handlers.Analytics{GA4MeasurementID: "G-TEST"},
		renderer:  rd,
	}
	return newRouter(a, zaptest.NewLogger(t), cfg)
}

type request struct {
	target  string
	htmx    bool
	current string
}

func do(t *testing.T, h http.Handler, req request) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, req.target, nil)
	if req.htmx {
		r.Header.Set("HX-Request", "true")
		r.Header.Set("HX-Target", "main")
	}
	if req.current != "" {
		r.Header.Set(viewrouter.HeaderCurrentURL, req.current)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestHealthzOK(t *testing.T) {
	srv := newTestRouter(t, testConfig(), "")
	rec := do(t, srv, request{target: "/healthz"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "ok" {
		t.Fatalf("expected body 'ok', got %q", got)
	}

	rec = do(t, srv, request{target: "/health"})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"healthy"`) {
		t.Fatalf("unexpected /health response %d %s", rec.Code, rec.Body.String())
	}
}

func TestHomeShellRenders(t *testing.T) {
	srv := newTestRouter(t, testConfig(), "")
	rec := do(t, srv, request{target: "/"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	doc := parse(t, rec)

	if got := doc.Find("#main-nav a[data-nav]").Length(); got != 6 {
		t.Fatalf("expected 6 nav links, got %d", got)
	}
	active := doc.Find("#main-nav a.active")
	if active.Length() != 1 || active.AttrOr("data-nav", "") != "home" {
		t.Fatalf("expected home active, got %q", active.AttrOr("data-nav", ""))
	}
	if href := doc.Find("#main-nav a[data-nav=investors]").AttrOr("hx-get", ""); href != "/views/investors" {
		t.Fatalf("unexpected swap path %q", href)
	}
	if canonical := doc.Find(`link[rel=canonical]`).AttrOr("href", ""); canonical != "https://visnex.global/" {
		t.Fatalf("unexpected canonical %q", canonical)
	}
	if doc.Find("#main #view-home").Length() != 1 {
		t.Fatalf("expected home view in main")
	}
	if got := doc.Find(".featured .startup-card .card-title").First().Text(); got != "NeuralFlow" {
		t.Fatalf("expected NeuralFlow featured first, got %q", got)
	}
	if !strings.Contains(rec.Body.String(), "G-TEST") {
		t.Fatalf("expected analytics snippet")
	}
	if got := doc.Find(`script[type="application/ld+json"]`).Length(); got != 2 {
		t.Fatalf("expected organization and website JSON-LD, got %d", got)
	}
	if !strings.Contains(doc.Find(`script[type="application/ld+json"]`).First().Text(), `"@type":"Organization"`) {
		t.Fatalf("expected Organization JSON-LD")
	}
}

func TestSwapViewPushesFragment(t *testing.T) {
	srv := newTestRouter(t, testConfig(), "")
	rec := do(t, srv, request{target: "/views/investors", htmx: true, current: "https://visnex.global/#home"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(viewrouter.HeaderPushURL); got != "/#investors" {
		t.Fatalf("expected push to /#investors, got %q", got)
	}
	if got := rec.Header().Get(viewrouter.HeaderReplaceURL); got != "" {
		t.Fatalf("unexpected replace header %q", got)
	}
	doc := parse(t, rec)
	if doc.Find("title").Length() != 0 {
		t.Fatalf("expected a partial, got the full layout")
	}
	if doc.Find("#view-investors .investor-card").Length() != 6 {
		t.Fatalf("expected 6 investor cards, body=%s", rec.Body.String())
	}
}

func TestSwapViewIgnoresUnknownView(t *testing.T) {
	srv := newTestRouter(t, testConfig(), "")
	rec := do(t, srv, request{target: "/views/pricing", htmx: true, current: "https://visnex.global/#startups"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(viewrouter.HeaderPushURL); got != "" {
		t.Fatalf("expected no push for unknown view, got %q", got)
	}
	if parse(t, rec).Find("#view-startups").Length() != 1 {
		t.Fatalf("expected the current startups view to stay rendered")
	}
}

func TestSwapViewSameViewWritesNothing(t *testing.T) {
	srv := newTestRouter(t, testConfig(), "")
	rec := do(t, srv, request{target: "/views/startups", htmx: true, current: "https://visnex.global/#startups"})
	if rec.Header().Get(viewrouter.HeaderPushURL) != "" || rec.Header().Get(viewrouter.HeaderReplaceURL) != "" {
		t.Fatalf("expected no history headers, got %v", rec.Header())
	}
}

func TestViewFragmentResolution(t *testing.T) {
	srv := newTestRouter(t, testConfig(), "")
	cases := []struct {
		name    string
		target  string
		view    string
		replace string
	}{
		{"canonical", "/view?fragment=%23investors", "investors", ""},
		{"slash and case", "/view?fragment=%23%2FStartups", "startups", "/#startups"},
		{"unknown", "/view?fragment=%23pricing", "home", "/#home"},
		{"empty", "/view?fragment=", "home", "/#home"},
		{"hashless", "/view?fragment=growth-tools", "growth-tools", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, srv, request{target: tc.target, htmx: true})
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get(viewrouter.HeaderReplaceURL); got != tc.replace {
				t.Fatalf("expected replace %q, got %q", tc.replace, got)
			}
			if rec.Header().Get(viewrouter.HeaderPushURL) != "" {
				t.Fatalf("external transitions must not push")
			}
			if parse(t, rec).Find("#view-"+tc.view).Length() != 1 {
				t.Fatalf("expected view %s, body=%s", tc.view, rec.Body.String())
			}
		})
	}
}

func TestViewFragmentRedirectsWithoutHTMX(t *testing.T) {
	srv := newTestRouter(t, testConfig(), "")
	rec := do(t, srv, request{target: "/view?fragment=%23%2FInvestors"})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/#investors" {
		t.Fatalf("unexpected redirect %q", loc)
	}
}

func TestStartupResultsFragment(t *testing.T) {
	srv := newTestRouter(t, testConfig(), "")
	rec := do(t, srv, request{target: "/startups/results?industry=FinTech", htmx: true})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	doc := parse(t, rec)
	cards := doc.Find(".startup-card")
	if cards.Length() != 1 || strings.TrimSpace(cards.Find(".card-title").Text()) != "PayLoop" {
		t.Fatalf("expected only PayLoop, body=%s", rec.Body.String())
	}
	if got := doc.Find(`.filter-option.selected[data-value="FinTech"]`).Length(); got != 1 {
		t.Fatalf("expected FinTech selected, got %d", got)
	}
	if got := doc.Find(".clear-filters").AttrOr("hx-get", ""); got != handlers.StartupsResultsPath {
		t.Fatalf("unexpected clear href %q", got)
	}

	rec = do(t, srv, request{target: "/startups/results?q=zzz-none", htmx: true})
	if parse(t, rec).Find(".empty-state").Length() != 1 {
		t.Fatalf("expected empty state")
	}
}

func TestOtherResultsFragments(t *testing.T) {
	srv := newTestRouter(t, testConfig(), "")
	cases := []struct {
		target   string
		selector string
		want     int
	}{
		{"/investors/results?tab=incubators&location=boston", ".incubator-card", 1},
		{"/partnerships/results?fav=opp-1", ".favorite.saved", 1},
		{"/success-stories/results?industry=ai&achievement=growth", ".story-card", 1},
		{"/growth-tools/results?filter=mentorship", ".tool-card", 3},
	}
	for _, tc := range cases {
		rec := do(t, srv, request{target: tc.target, htmx: true})
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d; body=%s", tc.target, rec.Code, rec.Body.String())
		}
		if got := parse(t, rec).Find(tc.selector).Length(); got != tc.want {
			t.Fatalf("%s: expected %d %s, got %d", tc.target, tc.want, tc.selector, got)
		}
	}
}

func TestAPIMountedAndRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{PerMinute: 1, Burst: 1}
	srv := newTestRouter(t, cfg, "")

	rec := do(t, srv, request{target: "/api/startups?limit=1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	rec = do(t, srv, request{target: "/api/startups?limit=1"})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	// Pages are not throttled.
	if rec := do(t, srv, request{target: "/"}); rec.Code != http.StatusOK {
		t.Fatalf("expected page to bypass the limiter, got %d", rec.Code)
	}

	rec = do(t, srv, request{target: "/metrics"})
	body := rec.Body.String()
	if !strings.Contains(body, `visnex_rate_limited_total{route="/api/startups"} 1`) {
		t.Fatalf("expected rate limit metric, got %s", body)
	}
}

func TestRateLimitedMetricBoundedForUnknownPaths(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{PerMinute: 1, Burst: 1}
	srv := newTestRouter(t, cfg, "")

	do(t, srv, request{target: "/api/startups"})
	for i := 0; i < 50; i++ {
		rec := do(t, srv, request{target: fmt.Sprintf("/api/junk-%d", i)})
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("junk-%d: expected 429, got %d", i, rec.Code)
		}
	}
	do(t, srv, request{target: "/api/startups/3"})

	var series []string
	for _, line := range strings.Split(do(t, srv, request{target: "/metrics"}).Body.String(), "\n") {
		if strings.HasPrefix(line, "visnex_rate_limited_total{") {
			series = append(series, line)
		}
	}
	want := []string{
		`visnex_rate_limited_total{route="/api/startups/{id}"} 1`,
		`visnex_rate_limited_total{route="unmatched"} 50`,
	}
	if strings.Join(series, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected rate limit series:\n%s", strings.Join(series, "\n"))
	}
}

func TestTransitionMetrics(t *testing.T) {
	srv := newTestRouter(t, testConfig(), "")
	do(t, srv, request{target: "/views/partnerships", htmx: true, current: "https://visnex.global/#home"})
	do(t, srv, request{target: "/view?fragment=%23%2Fpartnerships", htmx: true})

	body := do(t, srv, request{target: "/metrics"}).Body.String()
	for _, want := range []string{
		`visnex_view_transitions_total{mode="push",view="partnerships"} 1`,
		`visnex_view_transitions_total{mode="replace",view="partnerships"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in metrics", want)
		}
	}
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Telemetry.MetricsEnabled = false
	srv := newTestRouter(t, cfg, "")
	if rec := do(t, srv, request{target: "/metrics"}); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when metrics are disabled, got %d", rec.Code)
	}
}

func TestAssetsServedWithETag(t *testing.T) {
	srv := newTestRouter(t, testConfig(), "")
	rec := do(t, srv, request{target: "/assets/js/app.js"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag header")
	}
	r := httptest.NewRequest(http.MethodGet, "/assets/js/app.js", nil)
	r.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, r)
	if rec.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", rec.Code)
	}
}

func TestDevTemplatesDirectory(t *testing.T) {
	srv := newTestRouter(t, testConfig(), "../../internal/ui/templates")
	rec := do(t, srv, request{target: "/views/growth-tools", htmx: true, current: "https://visnex.global/#home"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if parse(t, rec).Find(".tool-group").Length() == 0 {
		t.Fatalf("expected tool groups from disk templates")
	}
}
