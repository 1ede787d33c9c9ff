package fieldnotes

import (
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/tbardin/fieldnotes/content"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// PostCache is an in-memory cache of published posts, tags, and categories
// with TTL.
type PostCache struct {
	mu         sync.RWMutex
	posts      []content.Post
	tags       []string
	categories []string
	fetched    time.Time
	ttl        time.Duration
	store      *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.tags = nil
	c.categories = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts("")
	if err != nil {
		return err
	}
	tags, err := c.store.ListTags()
	if err != nil {
		return err
	}
	categories, err := c.store.ListCategories()
	if err != nil {
		return err
	}
	c.posts = posts
	c.tags = tags
	c.categories = categories
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached data after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]content.Post, []string, []string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, tags, categories := c.posts, c.tags, c.categories
		c.mu.RUnlock()
		return posts, tags, categories, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, nil, err
	}
	return c.posts, c.tags, c.categories, nil
}

// ListPosts returns published posts, optionally filtered by tag and category.
func (c *PostCache) ListPosts(tag, category string) ([]content.Post, error) {
	posts, _, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if tag == "" && category == "" {
		return posts, nil
	}
	normalizedTag := normalizeLabel(tag)
	normalizedCategory := normalizeLabel(category)
	var filtered []content.Post
	for _, p := range posts {
		if normalizedCategory != "" && normalizeLabel(p.Category) != normalizedCategory {
			continue
		}
		if normalizedTag != "" && !hasTag(p, normalizedTag) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// ListTags returns all unique tags from published posts.
func (c *PostCache) ListTags() ([]string, error) {
	_, tags, _, err := c.ensureLoaded()
	return tags, err
}

// ListCategories returns all unique categories from published posts.
func (c *PostCache) ListCategories() ([]string, error) {
	_, _, categories, err := c.ensureLoaded()
	return categories, err
}

// GetPost returns a single published post by slug from the cache.
func (c *PostCache) GetPost(slug string) (content.Post, error) {
	posts, _, _, err := c.ensureLoaded()
	if err != nil {
		return content.Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return content.Post{}, ErrNotFound
}

func hasTag(p content.Post, normalized string) bool {
	for _, t := range p.Tags {
		if normalizeLabel(t) == normalized {
			return true
		}
	}
	return false
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
