package pressroom

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/eringen/pressroom/markdown"
	"github.com/eringen/pressroom/meta"
	"github.com/eringen/pressroom/views"
)

// posts returns the cached records under the configured posts route.
func (a *App) posts(c echo.Context) ([]meta.PageRecord, error) {
	pages, err := a.Cache.Pages(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return RecordsUnder(pages, a.Config.PostsRoute), nil
}

// articles returns the published posts, newest first.
func (a *App) articles(c echo.Context) ([]meta.Meta, error) {
	pages, err := a.posts(c)
	if err != nil {
		return nil, err
	}
	return meta.GetArticles(pages, "")
}

func (a *App) handleHome(c echo.Context) error {
	return a.renderListing(c, a.Config.Name, "")
}

// pathParam returns the route parameter name decoded exactly once. Echo
// matches on URL.RawPath when it is set and hands back escaped parameters;
// otherwise the parameters come from the already decoded URL.Path.
func pathParam(c echo.Context, name string) (string, error) {
	v := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

func (a *App) handleTag(c echo.Context) error {
	tag, err := pathParam(c, "tag")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tag")
	}
	return a.renderListing(c, "Posts tagged "+tag, tag)
}

func (a *App) renderListing(c echo.Context, title, tag string) error {
	pages, err := a.posts(c)
	if err != nil {
		return err
	}
	articles, err := meta.GetArticles(pages, tag)
	if err != nil {
		return err
	}
	tags, err := meta.GetTags(pages)
	if err != nil {
		return err
	}
	if tag != "" && len(articles) == 0 {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	return Render(c, a.Views.Listing(title, tag, articles, tags))
}

func (a *App) handlePage(c echo.Context) error {
	rest, err := pathParam(c, "*")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid path")
	}
	route := "/" + strings.Trim(rest, "/")
	rec, err := a.Cache.Page(c.Request().Context(), route)
	if errors.Is(err, ErrNotFound) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	if err != nil {
		return err
	}
	post, err := meta.Normalize(rec)
	if err != nil {
		return err
	}
	// Drafts are only reachable through the admin editor.
	if !post.Published {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}

	// A broken sibling record costs the related list, not the page.
	var related []meta.Meta
	articles, err := a.articles(c)
	if err != nil {
		a.Log.WithError(err).WithField("route", route).Warn("related posts unavailable")
	} else {
		related = RelatedArticles(post, articles, 3)
	}
	return Render(c, a.Views.Post(post, markdown.Markdown(rec.Body), related))
}

const searchLimit = 10

// handleSearch serves the whole search page, or only the result list when the
// search script asks for it with an HX-Request header.
func (a *App) handleSearch(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	articles, err := a.articles(c)
	if err != nil {
		return err
	}
	results := meta.Search(articles, query, searchLimit)
	c.Response().Header().Add(echo.HeaderVary, "HX-Request")
	if c.Request().Header.Get("HX-Request") == "true" {
		return Render(c, a.Views.SearchResults(query, results))
	}
	return Render(c, a.Views.Search(query, results))
}

func handleSearchScript(c echo.Context) error {
	return c.Blob(http.StatusOK, "text/javascript; charset=utf-8", views.SearchScript)
}

func (a *App) handleFeed(c echo.Context) error {
	articles, err := a.articles(c)
	if err != nil {
		return err
	}
	return a.renderRSS(c, articles)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		entry := a.Log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request().Method,
			"uri":    c.Request().RequestURI,
		})
		var verr *meta.ValidationError
		if errors.As(err, &verr) {
			entry = entry.WithField("route", verr.Route)
		}
		entry.Error("server error")
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
