// Package site loads the per-view copy, SEO metadata and navigation labels.
package site

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"visnex.global/web/internal/viewrouter"
)

//go:embed site.yaml
var bundled []byte

// CTA is a call-to-action button that switches view.
type CTA struct {
	Label string          `yaml:"label"`
	View  viewrouter.View `yaml:"view"`
}

// Page is the copy for one view.
type Page struct {
	Nav         string `yaml:"nav"`
	Title       string `yaml:"title"`
	Heading     string `yaml:"heading"`
	Description string `yaml:"description"`
	Empty       string `yaml:"empty"`
	CTA         []CTA  `yaml:"cta"`
}

// Site is the whole copy deck.
type Site struct {
	Name    string                   `yaml:"name"`
	Tagline string                   `yaml:"tagline"`
	BaseURL string                   `yaml:"base_url"`
	Twitter string                   `yaml:"twitter"`
	OGImage string                   `yaml:"og_image"`
	Views   map[viewrouter.View]Page `yaml:"views"`
}

var (
	loadOnce sync.Once
	loaded   *Site
	loadErr  error
)

// Load returns the bundled copy deck, parsed once.
func Load() (*Site, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(bundled)
	})
	return loaded, loadErr
}

// Parse decodes a copy deck and checks every view has a page.
func Parse(raw []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("site: parse: %w", err)
	}
	var missing []string
	for _, v := range viewrouter.Views() {
		page, ok := s.Views[v]
		if !ok || strings.TrimSpace(page.Title) == "" || strings.TrimSpace(page.Nav) == "" {
			missing = append(missing, string(v))
		}
		for _, cta := range page.CTA {
			if !cta.View.Valid() {
				return nil, fmt.Errorf("site: view %s: unknown cta target %q", v, cta.View)
			}
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("site: missing copy for views [%s]", strings.Join(missing, ", "))
	}
	return &s, nil
}

// Page returns the copy for v, falling back to the default view.
func (s *Site) Page(v viewrouter.View) Page {
	if page, ok := s.Views[v]; ok {
		return page
	}
	return s.Views[viewrouter.Default]
}

// Canonical is the absolute URL of a view.
func (s *Site) Canonical(v viewrouter.View) string {
	base := strings.TrimRight(s.BaseURL, "/")
	if v == viewrouter.Default {
		return base + "/"
	}
	return base + "/" + v.Fragment()
}
