package content

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadTestdata(t *testing.T) {
	posts, problems, err := LoadDir("testdata/posts")
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
	if len(posts) != 4 {
		t.Fatalf("expected 4 posts, got %d", len(posts))
	}

	// Sorted by date descending.
	wantOrder := []string{
		"advice-for-junior-data-scientists",
		"ab-test-sample-size",
		"churn-model-in-production",
		"sql-window-functions",
	}
	for i, slug := range wantOrder {
		if posts[i].Slug != slug {
			t.Errorf("posts[%d].Slug = %q, want %q", i, posts[i].Slug, slug)
		}
	}

	for _, p := range posts {
		if errs := LintPost(p); errs != nil {
			t.Errorf("%s: lint problems in testdata post: %v", p.Source, errs)
		}
	}
}

func TestLoadSkipsMalformedFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"good.md": {Data: []byte("---\ntitle: Good\ndate: 2024-01-01\ntags: [a]\ncategory: c\nexcerpt: e\n---\n\nbody\n")},
		"bad.md":  {Data: []byte("# No front matter\n")},
	}

	posts, problems, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "good" {
		t.Fatalf("expected only the good post, got %v", posts)
	}
	if len(problems) != 1 || problems[0].File != "bad.md" {
		t.Fatalf("expected one problem for bad.md, got %v", problems)
	}
}

func TestLoadIgnoresNonMarkdownAndHidden(t *testing.T) {
	post := []byte("---\ntitle: T\ndate: 2024-01-01\ntags: [a]\ncategory: c\nexcerpt: e\n---\n\nbody\n")
	fsys := fstest.MapFS{
		"keep.md":          {Data: post},
		"notes.txt":        {Data: []byte("not content")},
		".hidden.md":       {Data: post},
		"_drafts/wip.md":   {Data: post},
		"2024/archived.md": {Data: post},
	}

	posts, problems, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
	slugs := make([]string, 0, len(posts))
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}
	joined := strings.Join(slugs, ",")
	if !strings.Contains(joined, "keep") || !strings.Contains(joined, "archived") {
		t.Errorf("expected keep and archived posts, got %v", slugs)
	}
	for _, s := range slugs {
		if s == "hidden" || s == "wip" {
			t.Errorf("hidden or underscore-prefixed file was loaded: %v", slugs)
		}
	}
}

func TestLoadDuplicateSlugs(t *testing.T) {
	fsys := fstest.MapFS{
		"2024-01-02-same.md": {Data: []byte("---\ntitle: Newer\ndate: 2024-01-02\ntags: [a]\ncategory: c\nexcerpt: e\n---\n\nbody\n")},
		"2024-01-01-same.md": {Data: []byte("---\ntitle: Older\ndate: 2024-01-01\ntags: [a]\ncategory: c\nexcerpt: e\n---\n\nbody\n")},
	}

	posts, problems, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post after dedup, got %d", len(posts))
	}
	if posts[0].Title != "Newer" {
		t.Errorf("dedup should keep the newest post, kept %q", posts[0].Title)
	}
	if len(problems) != 1 || problems[0].Field != "slug" {
		t.Fatalf("expected one duplicate-slug problem, got %v", problems)
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, _, err := LoadDir("testdata/does-not-exist"); err == nil {
		t.Fatal("LoadDir should fail for a missing directory")
	}
}
