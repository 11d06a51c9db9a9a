package pressroom

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Content source kinds accepted in SiteConfig.Source.
const (
	SourceFiles  = "files"
	SourceSQLite = "sqlite"
)

// SiteConfig holds all configuration for a pressroom site. It is built once at
// the composition root and handed to New; nothing below reads the environment.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS
	Author      string

	Addr       string // Listen address (default ":3000")
	Source     string // "files" (default) or "sqlite"
	ContentDir string // Markdown root for the files source (default "content")
	PostsRoute string // Route prefix listed on the home page (default "/posts")
	StaticDir  string // Static assets and thumbnail sources (default "public")
	Watch      bool   // Invalidate the page cache when ContentDir changes

	DatabasePath string // SQLite path (default "data/pressroom.db")

	AdminPassword string // Required for the sqlite source
	SessionSecret string // Required for the sqlite source
	CookieSecure  bool   // Set true for HTTPS

	PageCacheTTL  time.Duration // Page cache TTL (default 5min)
	WatchDebounce time.Duration // Quiet period before a reload (default 500ms)
	ThumbWidth    int           // Thumbnail width in pixels (default 480)

	Logger *logrus.Logger // default: logrus.StandardLogger()
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.Source == "" {
		c.Source = SourceFiles
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.PostsRoute == "" {
		c.PostsRoute = "/posts"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/pressroom.db"
	}
	if c.PageCacheTTL == 0 {
		c.PageCacheTTL = 5 * time.Minute
	}
	if c.WatchDebounce == 0 {
		c.WatchDebounce = 500 * time.Millisecond
	}
	if c.ThumbWidth == 0 {
		c.ThumbWidth = 480
	}
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithSource replaces the content source chosen by SiteConfig.Source.
func WithSource(src Source) Option {
	return func(a *App) {
		a.source = src
	}
}

// WithStore uses an already opened Store as the content source and enables
// the admin routes.
func WithStore(s *Store) Option {
	return func(a *App) {
		a.Store = s
		a.source = s
	}
}
