package views

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/pressroom/meta"
)

// PathEscape wraps url.PathEscape for building tag links.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	base := "tag"
	if active {
		base += " tag-active"
	}
	return base
}

// JoinTags formats a tag set as a comma-separated string.
func JoinTags(tags meta.TagSet) string {
	return strings.Join(tags, ", ")
}

// TagURL is the listing route for tag.
func TagURL(tag string) string {
	return "/tag/" + PathEscape(tag) + "/"
}

// ThumbURL returns the image a card should show: the explicit thumbnail when
// set, a generated thumbnail for images under /public/, the image itself
// otherwise.
func ThumbURL(m meta.Meta) string {
	switch {
	case m.Thumbnail != "":
		return m.Thumbnail
	case strings.HasPrefix(m.Image, "/public/"):
		return "/thumbs/" + strings.TrimPrefix(m.Image, "/public/")
	default:
		return m.Image
	}
}

// htmlWriter writes escaped HTML and remembers the first write error so the
// templates can stay free of error plumbing.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) rawf(format string, args ...any) {
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}

func (h *htmlWriter) attr(s string) string {
	return templ.EscapeString(s)
}

func (h *htmlWriter) href(s string) string {
	return templ.EscapeString(string(templ.URL(s)))
}
