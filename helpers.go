package pressroom

import (
	"net/url"
	"path"
	"strings"

	"github.com/eringen/pressroom/meta"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with a route. Routes keep their own trailing
// slash policy.
func BuildURL(base string, route string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join("/", u.Path, route)
	return u.String()
}

// NormalizeRoute cleans a user supplied route: leading slash, no trailing
// slash, no dot segments.
func NormalizeRoute(route string) string {
	route = strings.TrimSpace(route)
	if route == "" {
		return ""
	}
	return path.Clean("/" + route)
}

// RecordsUnder keeps the records whose route is prefix or lies below it.
func RecordsUnder(pages []meta.PageRecord, prefix string) []meta.PageRecord {
	prefix = NormalizeRoute(prefix)
	if prefix == "" || prefix == "/" {
		return pages
	}
	var out []meta.PageRecord
	for _, p := range pages {
		if p.Route == prefix || strings.HasPrefix(p.Route, prefix+"/") {
			out = append(out, p)
		}
	}
	return out
}

// RelatedArticles returns up to limit articles sharing at least one tag with
// current, in the order given. current itself is skipped.
func RelatedArticles(current meta.Meta, articles []meta.Meta, limit int) []meta.Meta {
	var related []meta.Meta
	for _, a := range articles {
		if len(related) == limit {
			break
		}
		if a.Link == current.Link {
			continue
		}
		for _, t := range a.Tags {
			if current.Tags.Contains(t) {
				related = append(related, a)
				break
			}
		}
	}
	return related
}
