package content

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// frontMatterEnvelope mirrors the front-matter keys a post file may declare.
// Unknown keys are ignored rather than rejected; lint reports what matters.
type frontMatterEnvelope struct {
	Layout      string   `yaml:"layout"`
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Category    string   `yaml:"category"`
	BannerEmoji string   `yaml:"banner_emoji"`
	BannerBG    string   `yaml:"banner_bg"`
	ReadTime    *int     `yaml:"read_time"`
	Tags        []string `yaml:"tags"`
	Excerpt     string   `yaml:"excerpt"`
	Slug        string   `yaml:"slug"`
	Published   *bool    `yaml:"published"`
	Draft       bool     `yaml:"draft"`
}

// Parse extracts the front-matter record and Markdown body from source.
// The file must open with a correctly delimited front-matter block; name is
// used for slug derivation and carried through as Post.Source.
func Parse(name string, source []byte) (Post, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.MustParse(bytes.NewReader(source), &meta)
	if err != nil {
		return Post{}, fmt.Errorf("parse front matter in %s: %w", name, err)
	}

	return envelopeToPost(name, meta, body), nil
}

func envelopeToPost(name string, meta frontMatterEnvelope, body []byte) Post {
	slug := meta.Slug
	if slug == "" {
		slug = SlugFromFilename(name)
	} else {
		slug = Slugify(slug)
	}

	layout := meta.Layout
	if layout == "" {
		layout = DefaultLayout
	}

	// An absent read_time gets the word-count estimate. An explicit value is
	// kept as written, zero included, so lint can flag it.
	readTime := EstimateReadTime(string(body))
	if meta.ReadTime != nil {
		readTime = *meta.ReadTime
	}

	published := !meta.Draft
	if meta.Published != nil {
		published = *meta.Published
	}

	return Post{
		Slug:        slug,
		Layout:      layout,
		Title:       meta.Title,
		Date:        meta.Date,
		Category:    meta.Category,
		BannerEmoji: meta.BannerEmoji,
		BannerBG:    meta.BannerBG,
		ReadTime:    readTime,
		Tags:        NormalizeTags(meta.Tags),
		Excerpt:     meta.Excerpt,
		Body:        string(body),
		Link:        "/blog/" + slug,
		Source:      name,
		Published:   published,
	}
}
