package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tbardin/fieldnotes/content"
	"github.com/tbardin/fieldnotes/scaffold"
)

// postFrontMatter is the scaffolded front-matter block, written in the same
// key order authors see in existing posts.
type postFrontMatter struct {
	Layout      string   `yaml:"layout"`
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Category    string   `yaml:"category"`
	BannerEmoji string   `yaml:"banner_emoji"`
	BannerBG    string   `yaml:"banner_bg"`
	ReadTime    int      `yaml:"read_time"`
	Tags        []string `yaml:"tags"`
	Excerpt     string   `yaml:"excerpt"`
}

func runNew(title string, rest []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	slug := content.Slugify(title)
	if slug == "" {
		return fmt.Errorf("title %q produces an empty slug", title)
	}

	category := "uncategorized"
	if len(rest) > 0 {
		category = content.Slugify(rest[0])
	}

	today := time.Now().Format(content.DateLayout)
	path := filepath.Join(cfg.ContentDir, fmt.Sprintf("%s-%s.md", today, slug))
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	fm := postFrontMatter{
		Layout:      content.DefaultLayout,
		Title:       title,
		Date:        today,
		Category:    category,
		BannerEmoji: "✏️",
		BannerBG:    "#2b4a6f",
		ReadTime:    1,
		Tags:        []string{category},
		Excerpt:     "One-sentence summary for listings and the feed.",
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	buf.WriteString("---\n\n")

	raw, err := scaffold.Templates.ReadFile("templates/post.md.tmpl")
	if err != nil {
		return fmt.Errorf("read post template: %w", err)
	}
	tmpl, err := template.New("post").Parse(string(raw))
	if err != nil {
		return fmt.Errorf("parse post template: %w", err)
	}
	if err := tmpl.Execute(&buf, fm); err != nil {
		return fmt.Errorf("execute post template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Printf("created %s\n", path)
	fmt.Println("Fill in the excerpt and tags, then run `fieldnotes sync`.")
	return nil
}
