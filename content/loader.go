package content

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// Problem describes a defect found in a content file, either while parsing
// it or while linting its front matter.
type Problem struct {
	File    string
	Field   string // empty for file-level problems
	Message string
}

func (p Problem) String() string {
	if p.Field == "" {
		return p.File + ": " + p.Message
	}
	return p.File + ": " + p.Field + ": " + p.Message
}

// Load walks fsys for Markdown files and parses each into a Post. Files that
// fail to parse are reported as Problems and skipped; they never abort the
// load. Posts come back sorted by date descending, then title, with
// duplicate slugs dropped (first by that order wins).
func Load(fsys fs.FS) ([]Post, []Problem, error) {
	var posts []Post
	var problems []Problem

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			return nil
		}
		ext := strings.ToLower(name)
		if !strings.HasSuffix(ext, ".md") && !strings.HasSuffix(ext, ".markdown") {
			return nil
		}

		source, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		post, err := Parse(path, source)
		if err != nil {
			problems = append(problems, Problem{File: path, Message: err.Error()})
			return nil
		}
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("content: walk: %w", err)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return posts[i].Title < posts[j].Title
	})

	posts, dupes := dedupeSlugs(posts)
	problems = append(problems, dupes...)

	return posts, problems, nil
}

// LoadDir is Load over a directory on the local filesystem.
func LoadDir(root string) ([]Post, []Problem, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, nil, fmt.Errorf("content: %w", err)
	}
	return Load(os.DirFS(root))
}

func dedupeSlugs(posts []Post) ([]Post, []Problem) {
	seen := make(map[string]string, len(posts))
	var kept []Post
	var problems []Problem
	for _, p := range posts {
		if first, ok := seen[p.Slug]; ok {
			problems = append(problems, Problem{
				File:    p.Source,
				Field:   "slug",
				Message: fmt.Sprintf("duplicate slug %q, already used by %s", p.Slug, first),
			})
			continue
		}
		seen[p.Slug] = p.Source
		kept = append(kept, p)
	}
	return kept, problems
}
