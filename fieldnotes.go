// Package fieldnotes is a file-first blog publishing engine built with Go,
// Echo, and templ. Posts live as Markdown files with front matter; the engine
// syncs them into a SQLite index and serves listings, posts, RSS, a sitemap,
// an admin dashboard, and privacy-first analytics.
//
// Users provide their own templ templates via the ViewFuncs struct, and
// fieldnotes handles handler logic, middleware, content sync, and storage.
package fieldnotes

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tbardin/fieldnotes/analytics"
	"github.com/tbardin/fieldnotes/content"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	Home             func(posts []content.Post, activeTag, activeCategory string, tags, categories []string, siteURL string) templ.Component
	HomePartial      func(posts []content.Post, activeTag, activeCategory string, tags, categories []string, siteURL string) templ.Component
	BlogSection      func(posts []content.Post, activeTag, activeCategory string, tags, categories []string) templ.Component
	Post             func(post content.Post, posts []content.Post, siteURL string) templ.Component
	PostPartial      func(post content.Post, posts []content.Post, siteURL string) templ.Component
	AdminLogin       func(showError bool, csrfToken string) templ.Component
	AdminDashboard   func(posts []content.Post, report content.Report, message string, csrfToken string) templ.Component
	AdminImages      func(images []Image, csrfToken string) templ.Component
	NotFound         func() templ.Component
	ServerError      func() templ.Component
}

// App is the central fieldnotes application. It wires together the content
// loader, store, cache, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs
	Log    zerolog.Logger

	loginLimiter   *LoginLimiter
	analyticsStore *analytics.Store
	customRoutes   []func(*App)
	staticDir      string
}

// New creates a new fieldnotes App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		Log:       zerolog.New(os.Stderr).With().Timestamp().Logger(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// OpenStore initializes the store and cache without starting the server.
// CLI commands that need the index outside of Start use this directly.
func (a *App) OpenStore() error {
	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return err
	}
	a.Store = store
	a.Cache = NewPostCache(store, a.Config.PostCacheTTL)
	return nil
}

// Start initializes the store, syncs content, wires middleware and routes,
// and starts the server. It blocks until the server stops.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("fieldnotes: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("fieldnotes: SessionSecret is required")
	}

	if err := a.OpenStore(); err != nil {
		return fmt.Errorf("fieldnotes: init store: %w", err)
	}
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	// Initial content sync. Lint problems are logged, not fatal: a mangled
	// post file must never keep the rest of the site down.
	if _, err := a.SyncContent(); err != nil {
		return fmt.Errorf("fieldnotes: initial content sync: %w", err)
	}
	stopResync := a.startResyncScheduler()
	defer stopResync()

	if a.Config.AnalyticsEnabled {
		analyticsStore, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("fieldnotes: init analytics: %w", err)
		}
		a.analyticsStore = analyticsStore
		if err := analytics.InitSalt(analyticsStore); err != nil {
			return fmt.Errorf("fieldnotes: init analytics salt: %w", err)
		}
		stopCleanup := analyticsStore.StartCleanupScheduler(365, 24*time.Hour)
		defer stopCleanup()
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.Log.Info().Str("addr", a.Config.Addr).Str("content_dir", a.Config.ContentDir).Msg("starting server")
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded framework assets fall through to the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/analytics.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	// User's static assets
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.POST("/admin/sync/", a.handleAdminSync)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)

	// Analytics routes
	if a.Config.AnalyticsEnabled && a.analyticsStore != nil {
		analyticsHandler := analytics.NewHandler(a.analyticsStore)
		adminOnly := func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				if !IsAdmin(c) {
					return c.Redirect(http.StatusSeeOther, "/admin/")
				}
				return next(c)
			}
		}
		analyticsHandler.RegisterRoutes(e, adminOnly)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.analyticsStore != nil {
		a.analyticsStore.Close()
	}
	return nil
}
