// Package views holds the types and helpers shared by user-provided templ
// templates. Templates receive content.Post values directly; this package
// adds the presentation-side helpers they need.
package views

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
