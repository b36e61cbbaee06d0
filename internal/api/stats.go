package api

import (
	"net/http"

	"visnex.global/web/internal/platform/httpx"
	"visnex.global/web/internal/viewrouter"
)

func (h *Handlers) stats(w http.ResponseWriter, r *http.Request) {
	if h.insights == nil {
		fail(w, r, httpx.Unavailable("stats"))
		return
	}
	stats, err := h.insights.Stats(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	if h.insights == nil {
		fail(w, r, httpx.Unavailable("stats"))
		return
	}
	dash, err := h.insights.Dashboard(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dash)
}

type resolveResponse struct {
	View      viewrouter.View `json:"view"`
	Fragment  string          `json:"fragment"`
	Corrected bool            `json:"corrected"`
}

// resolveView applies the fragment rules without rendering anything.
func (h *Handlers) resolveView(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get(viewrouter.FragmentParam)
	v := viewrouter.Resolve(raw)
	httpx.WriteJSON(w, http.StatusOK, resolveResponse{
		View:      v,
		Fragment:  v.Fragment(),
		Corrected: raw != v.Fragment(),
	})
}
