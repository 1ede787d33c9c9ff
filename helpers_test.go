package fieldnotes

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/tbardin/fieldnotes/content"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"blog"}, "https://example.com/blog/"},
		{"https://example.com", []string{"blog", "my-post"}, "https://example.com/blog/my-post/"},
		{"https://example.com/sub", []string{"blog"}, "https://example.com/sub/blog/"},
	}

	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{"a", "", "  ", "b", "\t"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("FilterEmpty = %v, want [a b]", got)
	}
}

func TestFilterRelatedPosts(t *testing.T) {
	current := content.Post{Slug: "current", Tags: []string{"SQL", "testing"}}
	posts := []content.Post{
		{Slug: "current", Tags: []string{"sql"}},
		{Slug: "shares-tag", Tags: []string{"sql", "python"}},
		{Slug: "no-shared", Tags: []string{"career"}},
		{Slug: "case-match", Tags: []string{"Testing"}},
	}

	related := FilterRelatedPosts(current, posts)
	if len(related) != 2 {
		t.Fatalf("got %d related posts, want 2: %v", len(related), related)
	}
	if related[0].Slug != "shares-tag" || related[1].Slug != "case-match" {
		t.Errorf("related = [%s %s], want [shares-tag case-match]", related[0].Slug, related[1].Slug)
	}
}

func TestWebsiteJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Field Notes", URL: "https://example.com", Description: "Notes on data", Author: "T. Bardin"}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(WebsiteJsonLD(cfg)), &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if data["@type"] != "WebSite" {
		t.Errorf("@type = %v, want WebSite", data["@type"])
	}
	if data["name"] != "Field Notes" {
		t.Errorf("name = %v", data["name"])
	}
	author, ok := data["author"].(map[string]interface{})
	if !ok || author["name"] != "T. Bardin" {
		t.Errorf("author = %v", data["author"])
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Field Notes", URL: "https://example.com", Author: "T. Bardin"}
	post := content.Post{
		Slug:     "ab-test-sample-size",
		Title:    "How Big Should Your A/B Test Be?",
		Date:     "2025-03-14",
		Category: "experimentation",
		Tags:     []string{"statistics", "ab-testing"},
		Excerpt:  "Sample size math without the hand-waving.",
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(BlogPostingJsonLD(post, cfg)), &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if data["@type"] != "BlogPosting" {
		t.Errorf("@type = %v, want BlogPosting", data["@type"])
	}
	if data["headline"] != post.Title {
		t.Errorf("headline = %v", data["headline"])
	}
	if data["datePublished"] != "2025-03-14" {
		t.Errorf("datePublished = %v", data["datePublished"])
	}
	if data["articleSection"] != "experimentation" {
		t.Errorf("articleSection = %v", data["articleSection"])
	}
	url, _ := data["url"].(string)
	if !strings.Contains(url, "/blog/ab-test-sample-size") {
		t.Errorf("url = %q", url)
	}
	if data["keywords"] != "statistics, ab-testing" {
		t.Errorf("keywords = %v", data["keywords"])
	}
}
