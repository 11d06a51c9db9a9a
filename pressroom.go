// Package pressroom is a Markdown blog engine built with Go, Echo, and templ.
// It lists published posts newest first, groups them by tag with counts, and
// serves single posts, an RSS feed and image thumbnails.
//
// Posts come from a Source: Markdown files with front matter on disk, or a
// SQLite store edited through the admin pages. The listing logic itself lives
// in package meta and is recomputed from the raw records on every request.
package pressroom

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/eringen/pressroom/content"
)

// App is the central pressroom application. It wires together the content
// source, cache, handlers, middleware, and templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PageCache
	Views  ViewFuncs
	Log    *logrus.Logger

	source       Source
	loginLimiter *LoginLimiter
	watcher      *Watcher
	thumbs       *Thumbnailer
	customRoutes []func(*App)
	ready        bool
}

// New creates a pressroom App. Nil entries in views are filled from
// DefaultViews.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	a := &App{
		Config: cfg,
		Echo:   e,
		Views:  views.withDefaults(DefaultViews(cfg)),
		Log:    cfg.Logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AdminEnabled reports whether the admin pages are served. They need the
// SQLite store because files on disk are edited outside pressroom.
func (a *App) AdminEnabled() bool {
	return a.Store != nil
}

// Setup opens the content source and registers middleware and routes. Start
// calls it; tests call it directly and drive a.Echo with httptest.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if a.source == nil {
		src, err := a.openSource()
		if err != nil {
			return err
		}
		a.source = src
	}
	if a.AdminEnabled() {
		if a.Config.AdminPassword == "" {
			return errors.New("pressroom: AdminPassword is required for the sqlite source")
		}
		if a.Config.SessionSecret == "" {
			return errors.New("pressroom: SessionSecret is required for the sqlite source")
		}
		a.loginLimiter = NewLoginLimiter(5, time.Minute)
	}

	a.Cache = NewPageCache(a.source, a.Config.PageCacheTTL)
	a.thumbs = NewThumbnailer(a.Config.StaticDir, a.Config.ThumbWidth)

	if loader, ok := a.source.(*content.Loader); ok && a.Config.Watch {
		w, err := NewWatcher(loader.Root(), a.Cache, a.Config.WatchDebounce, a.Log)
		if err != nil {
			return fmt.Errorf("pressroom: watch %s: %w", loader.Root(), err)
		}
		a.watcher = w
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

func (a *App) openSource() (Source, error) {
	switch a.Config.Source {
	case SourceFiles:
		return content.NewLoader(a.Config.ContentDir), nil
	case SourceSQLite:
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("pressroom: init store: %w", err)
		}
		a.Store = store
		return store, nil
	default:
		return nil, fmt.Errorf("pressroom: unknown source %q", a.Config.Source)
	}
}

// Start sets the app up and serves HTTP until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Log.WithFields(logrus.Fields{
		"addr":   a.Config.Addr,
		"source": a.Config.Source,
		"admin":  a.AdminEnabled(),
	}).Info("pressroom listening")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.Config.StaticDir)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/thumbs/*", a.handleThumb)
	e.GET("/", a.handleHome)
	e.GET("/tag/:tag", a.handleTag)
	e.GET("/tag/:tag/", a.handleTag)
	e.GET("/search/", a.handleSearch)
	e.GET("/search.js", handleSearchScript)

	if a.AdminEnabled() {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
		e.GET("/admin/new/", a.handleAdminNew)
		e.GET("/admin/edit/", a.handleAdminEdit)
		e.POST("/admin/save/", a.handleAdminSave)
		e.POST("/admin/delete/", a.handleAdminDelete)
		e.GET("/admin/images/", a.handleImageList)
		e.POST("/admin/images/upload/", a.handleImageUpload, middleware.BodyLimit("11M"))
		e.POST("/admin/images/delete/", a.handleImageDelete)
	}

	e.GET("/*", a.handlePage)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	var errs []error
	if a.watcher != nil {
		errs = append(errs, a.watcher.Close())
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Close()
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	return errors.Join(errs...)
}
