package handlers

import (
	"strings"

	"visnex.global/web/internal/nav"
	"visnex.global/web/internal/platform/config"
	"visnex.global/web/internal/seo"
	"visnex.global/web/internal/site"
	"visnex.global/web/internal/viewrouter"
)

// PageData is the view model of the shell layout.
type PageData struct {
	Title     string
	SiteName  string
	Tagline   string
	SEO       SEOData
	Analytics Analytics

	View        viewrouter.View
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	// Content is the active view partial.
	Content ViewData
}

// ViewData is what a view partial receives, with or without the shell.
type ViewData struct {
	View    viewrouter.View
	Page    site.Page
	Payload any
	// Partial names the template rendering Payload.
	Partial string
}

// SEOData is the head metadata of the current view.
type SEOData struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          struct {
		Title       string
		Description string
		Image       string
		Type        string
		URL         string
		SiteName    string
	}
	Twitter struct {
		Card  string
		Site  string
		Image string
	}
	JSONLD []seo.Document
}

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	GTMContainerID   string // e.g. GTM-XXXXXXX
	SegmentWriteKey  string
	Debug            bool
}

// AnalyticsFromConfig copies the configured client IDs.
func AnalyticsFromConfig(cfg config.AnalyticsConfig) Analytics {
	return Analytics{
		GA4MeasurementID: cfg.GA4MeasurementID,
		GTMContainerID:   cfg.GTMContainerID,
		SegmentWriteKey:  cfg.SegmentWriteKey,
		Debug:            cfg.Debug,
	}
}

// Labels resolves nav labels from the copy deck.
func Labels(s *site.Site) nav.Labeler {
	return func(v viewrouter.View) string {
		if s == nil {
			return ""
		}
		return s.Page(v).Nav
	}
}

// PartialName is the template that renders v.
func PartialName(v viewrouter.View) string {
	return "view_" + string(v)
}

// BuildPageData wraps a view in the shell layout.
func BuildPageData(s *site.Site, content ViewData, analytics Analytics) PageData {
	labels := Labels(s)
	page := content.Page
	vm := PageData{
		Title:       page.Title,
		SiteName:    s.Name,
		Tagline:     s.Tagline,
		Analytics:   analytics,
		View:        content.View,
		Nav:         nav.Build(content.View, labels),
		Breadcrumbs: nav.Breadcrumbs(content.View, labels),
		Content:     content,
	}

	vm.SEO.Title = page.Title
	vm.SEO.Description = page.Description
	vm.SEO.Canonical = s.Canonical(content.View)
	vm.SEO.Robots = "index,follow"
	vm.SEO.OG.URL = vm.SEO.Canonical
	vm.SEO.OG.SiteName = s.Name
	vm.SEO.OG.Title = vm.SEO.Title
	vm.SEO.OG.Description = vm.SEO.Description
	vm.SEO.OG.Image = s.OGImage
	vm.SEO.OG.Type = "website"
	vm.SEO.Twitter.Card = "summary_large_image"
	vm.SEO.Twitter.Site = s.Twitter
	vm.SEO.Twitter.Image = s.OGImage
	vm.SEO.JSONLD = structuredData(s, content.View, page)
	return vm
}

func structuredData(s *site.Site, v viewrouter.View, page site.Page) []seo.Document {
	if v == viewrouter.Home {
		return []seo.Document{
			seo.Organization(s.Name, s.Canonical(viewrouter.Home), absoluteURL(s, s.OGImage)),
			seo.WebSite(s.Name, s.Canonical(viewrouter.Home), page.Description),
		}
	}
	crumbs := []seo.Crumb{
		{Name: s.Page(viewrouter.Home).Nav, URL: s.Canonical(viewrouter.Home)},
		{Name: page.Nav, URL: s.Canonical(v)},
	}
	if doc := seo.BreadcrumbList(crumbs); doc != nil {
		return []seo.Document{doc}
	}
	return nil
}

func absoluteURL(s *site.Site, path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(s.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
