package main

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"visnex.global/web/internal/handlers"
	mw "visnex.global/web/internal/middleware"
	"visnex.global/web/internal/platform/observability"
	"visnex.global/web/internal/platform/requestctx"
	"visnex.global/web/internal/site"
	"visnex.global/web/internal/viewrouter"
)

// app holds what the page handlers share.
type app struct {
	site      *site.Site
	services  *handlers.Services
	metrics   *observability.Metrics
	analytics handlers.Analytics
	renderer  *renderer
}

// HomeHandler renders the shell with the home view. The client resolves any
// other fragment through /view once the page has loaded.
func (a *app) HomeHandler(w http.ResponseWriter, r *http.Request) {
	requestctx.SetView(r.Context(), string(viewrouter.Home))
	a.renderView(w, r, viewrouter.Home, r.URL.Query())
}

// ViewFragmentHandler handles an external fragment change: address bar edits,
// back and forward. Non-canonical fragments are corrected with a history replace.
func (a *app) ViewFragmentHandler(w http.ResponseWriter, r *http.Request) {
	store := viewrouter.NewRequestStore(w, r)
	router := viewrouter.New(store, viewrouter.WithLogger(requestctx.Logger(r.Context())))
	v := router.Start()
	defer router.Stop()

	a.observeTransition(r, v, store)
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, "/"+v.Fragment(), http.StatusSeeOther)
		return
	}
	a.renderView(w, r, v, withoutFragment(r.URL.Query()))
}

// SwapViewHandler handles a navigation click. The target view is pushed onto the
// client history; unknown views leave the current view in place.
func (a *app) SwapViewHandler(w http.ResponseWriter, r *http.Request) {
	store := viewrouter.NewRequestStore(w, r)
	logger := requestctx.Logger(r.Context())
	router := viewrouter.New(store, viewrouter.WithLogger(logger))
	router.Start()
	defer router.Stop()

	target := viewrouter.View(chi.URLParam(r, "view"))
	if !router.SetView(target) {
		logger.Debug("ignoring unknown view", zap.String("view", observability.SanitizeFragment(string(target))))
	}
	v := router.Current()

	a.observeTransition(r, v, store)
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, "/"+v.Fragment(), http.StatusSeeOther)
		return
	}
	a.renderView(w, r, v, withoutFragment(r.URL.Query()))
}

// ResultsHandler re-renders the listing of v after a search, filter or sort change.
func (a *app) ResultsHandler(v viewrouter.View) http.HandlerFunc {
	name := "results_" + string(v)
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestctx.SetView(ctx, string(v))
		data, err := a.services.BuildView(ctx, a.site, v, r.URL.Query())
		if err != nil {
			requestctx.Logger(ctx).Error("build results failed", zap.String("view", string(v)), zap.Error(err))
			http.Error(w, "failed to load results", http.StatusInternalServerError)
			return
		}
		if !mw.IsHTMX(ctx) {
			a.renderer.render(w, r, handlers.BuildPageData(a.site, data, a.analytics))
			return
		}
		a.renderer.renderTemplate(w, r, name, data.Payload)
	}
}

// renderView writes the view partial for htmx requests and the full shell otherwise.
func (a *app) renderView(w http.ResponseWriter, r *http.Request, v viewrouter.View, values url.Values) {
	ctx := r.Context()
	data, err := a.services.BuildView(ctx, a.site, v, values)
	if err != nil {
		requestctx.Logger(ctx).Error("build view failed", zap.String("view", string(v)), zap.Error(err))
		http.Error(w, "failed to load view", http.StatusInternalServerError)
		return
	}
	if mw.IsHTMX(ctx) {
		a.renderer.renderTemplate(w, r, "view", data)
		return
	}
	a.renderer.render(w, r, handlers.BuildPageData(a.site, data, a.analytics))
}

func (a *app) observeTransition(r *http.Request, v viewrouter.View, store *viewrouter.RequestStore) {
	mode := "none"
	if m, ok := store.Written(); ok {
		mode = m.String()
	}
	a.metrics.ObserveTransition(string(v), mode)
	requestctx.SetView(r.Context(), string(v))
}

func withoutFragment(values url.Values) url.Values {
	if _, ok := values[viewrouter.FragmentParam]; !ok {
		return values
	}
	cp := url.Values{}
	for k, vv := range values {
		if k != viewrouter.FragmentParam {
			cp[k] = vv
		}
	}
	return cp
}
