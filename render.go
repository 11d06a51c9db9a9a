package pressroom

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/pressroom/meta"
	"github.com/eringen/pressroom/views"
)

// ViewFuncs holds the templ components the handlers render. Sites override
// any of them to own their markup; nil entries fall back to DefaultViews.
type ViewFuncs struct {
	Listing        func(title, activeTag string, articles []meta.Meta, tags []meta.TagCount) templ.Component
	Post           func(post meta.Meta, body templ.Component, related []meta.Meta) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(posts []meta.Meta, message, csrfToken string) templ.Component
	AdminForm      func(form views.PostForm, csrfToken string) templ.Component
	AdminImages    func(images []views.Image, message, csrfToken string) templ.Component
	Search         func(query string, results []meta.Meta) templ.Component
	SearchResults  func(query string, results []meta.Meta) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// DefaultViews returns the components from package views bound to cfg.
func DefaultViews(cfg SiteConfig) ViewFuncs {
	site := views.Site{
		Name:        cfg.Name,
		URL:         cfg.URL,
		Description: cfg.Description,
		Author:      cfg.Author,
	}
	return ViewFuncs{
		Listing: func(title, activeTag string, articles []meta.Meta, tags []meta.TagCount) templ.Component {
			return views.Listing(site, title, activeTag, articles, tags)
		},
		Post: func(post meta.Meta, body templ.Component, related []meta.Meta) templ.Component {
			return views.Post(site, post, body, related)
		},
		AdminLogin: func(showError bool, csrfToken string) templ.Component {
			return views.AdminLogin(site, showError, csrfToken)
		},
		AdminDashboard: func(posts []meta.Meta, message, csrfToken string) templ.Component {
			return views.AdminDashboard(site, posts, message, csrfToken)
		},
		AdminForm: func(form views.PostForm, csrfToken string) templ.Component {
			return views.AdminForm(site, form, csrfToken)
		},
		AdminImages: func(images []views.Image, message, csrfToken string) templ.Component {
			return views.AdminImages(site, images, message, csrfToken)
		},
		Search: func(query string, results []meta.Meta) templ.Component {
			return views.Search(site, query, results)
		},
		SearchResults: views.SearchResults,
		NotFound:      func() templ.Component { return views.NotFound(site) },
		ServerError:   func() templ.Component { return views.ServerError(site) },
	}
}

func (v ViewFuncs) withDefaults(d ViewFuncs) ViewFuncs {
	if v.Listing == nil {
		v.Listing = d.Listing
	}
	if v.Post == nil {
		v.Post = d.Post
	}
	if v.AdminLogin == nil {
		v.AdminLogin = d.AdminLogin
	}
	if v.AdminDashboard == nil {
		v.AdminDashboard = d.AdminDashboard
	}
	if v.AdminForm == nil {
		v.AdminForm = d.AdminForm
	}
	if v.AdminImages == nil {
		v.AdminImages = d.AdminImages
	}
	if v.Search == nil {
		v.Search = d.Search
	}
	if v.SearchResults == nil {
		v.SearchResults = d.SearchResults
	}
	if v.NotFound == nil {
		v.NotFound = d.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = d.ServerError
	}
	return v
}

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}
