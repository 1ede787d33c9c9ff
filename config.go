package fieldnotes

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for a fieldnotes site. Values come from
// an optional site.yml file overlaid by environment variables (env wins).
type SiteConfig struct {
	Name        string `env:"SITE_NAME" yaml:"name"`               // Site name (default "Field Notes")
	URL         string `env:"SITE_URL" yaml:"url"`                 // Canonical URL (default "http://localhost:3000")
	Description string `env:"SITE_DESCRIPTION" yaml:"description"` // Site description for RSS and meta tags
	Author      string `env:"SITE_AUTHOR" yaml:"author"`           // Author name for JSON-LD

	Addr         string `env:"ADDR" yaml:"addr"`                  // Listen address (default ":3000")
	ContentDir   string `env:"CONTENT_DIR" yaml:"content_dir"`    // Markdown post directory (default "content")
	DatabasePath string `env:"DATABASE_PATH" yaml:"database_path"` // SQLite path (default "data/site.db")

	AnalyticsEnabled      bool   `env:"ANALYTICS_ENABLED" yaml:"analytics_enabled"`
	AnalyticsDatabasePath string `env:"ANALYTICS_DATABASE_PATH" yaml:"analytics_database_path"`

	AdminPassword string `env:"ADMIN_PASSWORD" yaml:"-"` // Required: admin login password
	SessionSecret string `env:"SESSION_SECRET" yaml:"-"` // Required: session encryption secret
	CookieSecure  bool   `env:"COOKIE_SECURE" yaml:"cookie_secure"`

	PostCacheTTL   time.Duration `env:"POST_CACHE_TTL" yaml:"post_cache_ttl"`     // Post cache TTL (default 5min)
	ResyncInterval time.Duration `env:"RESYNC_INTERVAL" yaml:"resync_interval"` // Content resync period (default 5min, 0 disables)
}

// LoadConfig builds a SiteConfig from site.yml (if file is non-empty and the
// file exists) overlaid with environment variables.
func LoadConfig(file string) (SiteConfig, error) {
	// Analytics defaults on; yaml or env can switch it off.
	cfg := SiteConfig{AnalyticsEnabled: true}

	if file != "" {
		data, err := os.ReadFile(file)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return SiteConfig{}, fmt.Errorf("fieldnotes: parse %s: %w", file, err)
			}
		case !os.IsNotExist(err):
			return SiteConfig{}, fmt.Errorf("fieldnotes: read %s: %w", file, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("fieldnotes: parse environment: %w", err)
	}

	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Field Notes"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.ResyncInterval == 0 {
		c.ResyncInterval = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger replaces the default stderr logger.
func WithLogger(log zerolog.Logger) Option {
	return func(a *App) {
		a.Log = log
	}
}
