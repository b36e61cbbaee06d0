package viewrouter

import (
	"net/http"
	"net/url"
	"strings"
)

// htmx headers used to read the client address and to update its history.
const (
	HeaderCurrentURL = "HX-Current-URL"
	HeaderPushURL    = "HX-Push-Url"
	HeaderReplaceURL = "HX-Replace-Url"

	// FragmentParam carries the client fragment on requests that are not sent by htmx.
	FragmentParam = "fragment"
)

// RequestStore adapts one HTTP exchange to FragmentStore. The browser never sends
// its fragment, so the client reports it through the fragment query parameter or
// the HX-Current-URL header. Writes become htmx history response headers and must
// happen before the response body is written.
type RequestStore struct {
	w        http.ResponseWriter
	basePath string
	fragment string
	written  bool
	mode     WriteMode
}

// NewRequestStore reads the client fragment from r and writes headers to w.
func NewRequestStore(w http.ResponseWriter, r *http.Request) *RequestStore {
	return &RequestStore{
		w:        w,
		basePath: "/",
		fragment: requestFragment(r),
	}
}

// Fragment returns the client fragment including its '#', or "" when none was sent.
func (s *RequestStore) Fragment() string {
	return s.fragment
}

// SetFragment records the new fragment in an HX-Push-Url or HX-Replace-Url header.
func (s *RequestStore) SetFragment(fragment string, mode WriteMode) {
	s.fragment = fragment
	s.written = true
	s.mode = mode
	target := s.basePath + fragment
	header := s.w.Header()
	if mode == Replace {
		header.Del(HeaderPushURL)
		header.Set(HeaderReplaceURL, target)
		return
	}
	header.Del(HeaderReplaceURL)
	header.Set(HeaderPushURL, target)
}

// Watch is a no-op: a single request sees no later fragment changes.
func (s *RequestStore) Watch(func(string)) (cancel func()) {
	return func() {}
}

// Written reports whether the router wrote a fragment and with which mode.
func (s *RequestStore) Written() (WriteMode, bool) {
	return s.mode, s.written
}

func requestFragment(r *http.Request) string {
	if r == nil {
		return ""
	}
	if raw, ok := r.URL.Query()[FragmentParam]; ok && len(raw) > 0 {
		return withHash(raw[0])
	}
	if current := strings.TrimSpace(r.Header.Get(HeaderCurrentURL)); current != "" {
		if u, err := url.Parse(current); err == nil {
			return withHash(u.Fragment)
		}
	}
	return ""
}

func withHash(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" || strings.HasPrefix(fragment, "#") {
		return fragment
	}
	return "#" + fragment
}
