// Package seo builds schema.org JSON-LD documents for the page head.
package seo

const schemaContext = "https://schema.org"

// Document is one JSON-LD object. html/template marshals it as JSON inside an
// application/ld+json script element.
type Document map[string]any

// Organization describes the site operator.
func Organization(name, url, logoURL string) Document {
	d := Document{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		d["url"] = url
	}
	if logoURL != "" {
		d["logo"] = logoURL
	}
	return d
}

// WebSite describes the site itself.
func WebSite(name, url, description string) Document {
	d := Document{
		"@context": schemaContext,
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		d["url"] = url
	}
	if description != "" {
		d["description"] = description
	}
	return d
}

// Crumb is one breadcrumb with an absolute URL.
type Crumb struct {
	Name string
	URL  string
}

// BreadcrumbList returns nil for fewer than two crumbs; a single crumb adds nothing.
func BreadcrumbList(crumbs []Crumb) Document {
	if len(crumbs) < 2 {
		return nil
	}
	items := make([]map[string]any, 0, len(crumbs))
	for i, c := range crumbs {
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Name,
			"item":     c.URL,
		})
	}
	return Document{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}
