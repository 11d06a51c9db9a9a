package pressroom

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pressroom/meta"
	"github.com/eringen/pressroom/views"
)

const newPostFrontMatter = `title: ""
date: %s
description: ""
tags: []
published: false
`

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	a.Log.WithField("ip", ip).Warn("failed admin login")
	return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminNew(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	form := views.PostForm{
		IsNew:       true,
		FrontMatter: fmt.Sprintf(newPostFrontMatter, time.Now().Format("2006-01-02")),
	}
	return Render(c, a.Views.AdminForm(form, CsrfToken(c)))
}

func (a *App) handleAdminEdit(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	route := NormalizeRoute(c.QueryParam("route"))
	rec, err := a.Store.GetPage(c.Request().Context(), route)
	if errors.Is(err, ErrNotFound) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	if err != nil {
		return err
	}
	fm, err := encodeFrontMatter(rec.FrontMatter)
	if err != nil {
		return err
	}
	form := views.PostForm{Route: rec.Route, FrontMatter: fm, Body: string(rec.Body)}
	return Render(c, a.Views.AdminForm(form, CsrfToken(c)))
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	form := views.PostForm{
		Route:       strings.TrimSpace(c.FormValue("route")),
		FrontMatter: c.FormValue("front_matter"),
		Body:        c.FormValue("body"),
		IsNew:       c.FormValue("is_new") == "1",
	}
	fm, err := DecodeFrontMatter(form.FrontMatter)
	if err != nil {
		return a.rejectForm(c, form, "Front matter is not valid YAML: "+err.Error())
	}
	if form.Route == "" {
		title, _ := fm["title"].(string)
		if slug := Slugify(title); slug != "" {
			form.Route = a.Config.PostsRoute + "/" + slug
		}
	}
	form.Route = NormalizeRoute(form.Route)

	ctx := c.Request().Context()
	if form.IsNew && form.Route != "" {
		_, err := a.Store.GetPage(ctx, form.Route)
		if err == nil {
			return a.rejectForm(c, form, "A page already exists at "+form.Route+". Choose another route or edit that page.")
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
	}

	rec := meta.PageRecord{Route: form.Route, FrontMatter: fm, Body: []byte(form.Body)}
	if err := a.Store.SavePage(ctx, rec); err != nil {
		var verr *meta.ValidationError
		if errors.As(err, &verr) {
			return a.rejectForm(c, form, verr.Error())
		}
		return err
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/?msg="+url.QueryEscape("saved "+rec.Route))
}

func (a *App) rejectForm(c echo.Context, form views.PostForm, msg string) error {
	form.Error = msg
	return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.AdminForm(form, CsrfToken(c)))
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	route := NormalizeRoute(c.FormValue("route"))
	if err := a.Store.DeletePage(c.Request().Context(), route); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/?msg="+url.QueryEscape("deleted "+route))
}

// renderAdminDashboard lists every stored record, drafts included. It reads
// the store directly so edits show up before the cache expires.
func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	pages, err := a.Store.Pages(c.Request().Context())
	if err != nil {
		return err
	}
	posts, err := meta.NormalizeAll(pages)
	if err != nil {
		return err
	}
	meta.SortByDate(posts)
	return Render(c, a.Views.AdminDashboard(posts, msg, CsrfToken(c)))
}
