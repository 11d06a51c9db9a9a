// Package views provides the default templ components for pressroom pages.
// Sites that want their own markup pass a custom pressroom.ViewFuncs instead.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/pressroom/markdown"
	"github.com/eringen/pressroom/meta"
)

func layout(site Site, title string, body func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		full := site.Name
		if title != "" && title != site.Name {
			full = title + " | " + site.Name
		}
		h.raw("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		h.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">")
		h.rawf("<title>%s</title>", h.attr(full))
		h.rawf("<link rel=\"alternate\" type=\"application/rss+xml\" title=\"%s\" href=\"/feed.xml\">", h.attr(site.Name))
		h.raw("<link rel=\"stylesheet\" href=\"/public/style.css\"></head><body>")
		h.rawf("<header><a class=\"logo\" href=\"/\">%s</a></header><main>", h.attr(site.Name))
		body(h)
		h.raw("</main>")
		if site.Author != "" {
			h.rawf("<footer>%s</footer>", h.attr(site.Author))
		}
		h.raw("</body></html>")
		return h.err
	})
}

func tagList(h *htmlWriter, tags []meta.TagCount, active string) {
	if len(tags) == 0 {
		return
	}
	h.raw("<ul class=\"tag-list\">")
	for _, tc := range tags {
		h.rawf("<li><a class=\"%s\" href=\"%s\">%s <span class=\"count\">%d</span></a></li>",
			TagClass(tc.Tag == active), h.href(TagURL(tc.Tag)), h.attr(tc.Tag), tc.Count)
	}
	h.raw("</ul>")
}

func cardList(h *htmlWriter, articles []meta.Meta) {
	if len(articles) == 0 {
		h.raw("<p class=\"empty\">No posts yet.</p>")
		return
	}
	h.raw("<ul class=\"cards\">")
	for _, a := range articles {
		h.raw("<li class=\"card\">")
		// Front matter URLs are author supplied; SafeURL returns them escaped.
		if img := markdown.SafeURL(ThumbURL(a)); img != "" {
			h.rawf("<img src=\"%s\" alt=\"%s\" loading=\"lazy\">", img, h.attr(a.Title))
		}
		h.rawf("<h2><a href=\"%s\">%s</a></h2>", h.href(a.Link), h.attr(a.Title))
		h.rawf("<time datetime=\"%s\">%s</time>", h.attr(a.Date), h.attr(a.Date))
		if a.Description != "" {
			h.rawf("<p>%s</p>", h.attr(a.Description))
		}
		if len(a.Tags) > 0 {
			h.raw("<div class=\"card-tags\">")
			for _, t := range a.Tags {
				h.rawf("<a class=\"%s\" href=\"%s\">%s</a>", TagClass(false), h.href(TagURL(t)), h.attr(t))
			}
			h.raw("</div>")
		}
		h.raw("</li>")
	}
	h.raw("</ul>")
}

// Listing renders a tag cloud above a list of article cards. It serves both
// the home page (activeTag "") and the per-tag pages.
func Listing(site Site, title, activeTag string, articles []meta.Meta, tags []meta.TagCount) templ.Component {
	return layout(site, title, func(h *htmlWriter) {
		h.rawf("<h1>%s</h1>", h.attr(title))
		if site.Description != "" && activeTag == "" {
			h.rawf("<p class=\"lead\">%s</p>", h.attr(site.Description))
		}
		searchForm(h, "")
		h.raw("<div id=\"search-results\"></div>")
		tagList(h, tags, activeTag)
		cardList(h, articles)
	})
}

// Post renders a single article with its body and related articles.
func Post(site Site, post meta.Meta, body templ.Component, related []meta.Meta) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return layout(site, post.Title, func(h *htmlWriter) {
			h.raw("<article>")
			h.rawf("<h1>%s</h1>", h.attr(post.Title))
			h.rawf("<time datetime=\"%s\">%s</time>", h.attr(post.Date), h.attr(post.Date))
			if post.UpdateDate != "" {
				h.rawf(" <span class=\"updated\">updated %s</span>", h.attr(post.UpdateDate))
			}
			if img := markdown.SafeURL(post.Image); img != "" {
				h.rawf("<img class=\"hero\" src=\"%s\" alt=\"%s\">", img, h.attr(post.Title))
			}
			h.raw("<div class=\"prose\">")
			if h.err == nil {
				h.err = body.Render(ctx, w)
			}
			h.raw("</div>")
			if len(post.Tags) > 0 {
				h.raw("<div class=\"card-tags\">")
				for _, t := range post.Tags {
					h.rawf("<a class=\"%s\" href=\"%s\">%s</a>", TagClass(false), h.href(TagURL(t)), h.attr(t))
				}
				h.raw("</div>")
			}
			h.raw("</article>")
			if len(related) > 0 {
				h.raw("<section class=\"related\"><h2>Related posts</h2>")
				cardList(h, related)
				h.raw("</section>")
			}
		}).Render(ctx, w)
	})
}

// NotFound renders the 404 page.
func NotFound(site Site) templ.Component {
	return layout(site, "Not found", func(h *htmlWriter) {
		h.raw("<h1>Page not found</h1><p><a href=\"/\">Back to all posts</a></p>")
	})
}

// ServerError renders the 500 page.
func ServerError(site Site) templ.Component {
	return layout(site, "Error", func(h *htmlWriter) {
		h.raw("<h1>Something went wrong</h1><p>Please try again later.</p>")
	})
}
