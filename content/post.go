// Package content owns the Markdown post corpus: parsing front matter,
// loading a content directory, and linting it. Content files are the source
// of truth; nothing in this package ever writes a post file back.
package content

import (
	"regexp"
	"strings"
)

// Post is a single Markdown post: its front-matter record plus the body.
type Post struct {
	Slug        string
	Layout      string
	Title       string
	Date        string // YYYY-MM-DD
	Category    string
	BannerEmoji string
	BannerBG    string
	ReadTime    int // minutes
	Tags        []string
	Excerpt     string
	Body        string // Markdown body without the front-matter block
	Link        string
	Source      string // file path relative to the content root
	Published   bool
}

// DateLayout is the calendar date format used in front matter.
const DateLayout = "2006-01-02"

// DefaultLayout is assumed when a post declares no layout key.
const DefaultLayout = "post"

// readWordsPerMinute is the reading speed used for read_time estimation.
const readWordsPerMinute = 200

var reDatePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)

// SlugFromFilename derives a post slug from a content filename.
// "2026-01-10-ab-testing.md" and "ab-testing.md" both yield "ab-testing".
func SlugFromFilename(name string) string {
	base := name
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndexByte(base, '.'); idx > 0 {
		base = base[:idx]
	}
	base = reDatePrefix.ReplaceAllString(base, "")
	return Slugify(base)
}

// Slugify converts a title or filename stem to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// EstimateReadTime returns the read-time estimate in minutes for a body,
// rounding up at 200 words per minute with a floor of one minute.
func EstimateReadTime(body string) int {
	words := len(strings.Fields(body))
	minutes := (words + readWordsPerMinute - 1) / readWordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// NormalizeTags trims, lowercases, and drops empty tags, preserving order.
func NormalizeTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if s := strings.ToLower(strings.TrimSpace(t)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
