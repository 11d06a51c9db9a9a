// Package meta turns raw content records into the listing view models used by
// the blog: normalized post metadata, publication and tag filtering, date
// ordering and tag counts. Every function is pure; callers may share inputs
// across goroutines as long as they do not mutate them.
package meta

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// PageRecord is a raw content record as supplied by a content source: the
// front matter bag and the route it is published under.
type PageRecord struct {
	Route       string
	FrontMatter map[string]any
	Body        []byte
}

// Meta is the normalized metadata of one content record.
type Meta struct {
	Title       string `yaml:"title"`
	Tags        TagSet `yaml:"tags,omitempty"`
	Date        string `yaml:"date"`
	UpdateDate  string `yaml:"updateDate,omitempty"`
	Description string `yaml:"description,omitempty"`
	Image       string `yaml:"image,omitempty"`
	Thumbnail   string `yaml:"thumbnail,omitempty"`
	Link        string `yaml:"link"`
	Published   bool   `yaml:"published"`
}

// TagCount is the number of records carrying a tag.
type TagCount struct {
	Tag   string `yaml:"tag"`
	Count int    `yaml:"count"`
}

// ErrInvalidRecord is wrapped by every ValidationError.
var ErrInvalidRecord = errors.New("invalid content record")

// ValidationError reports a record that cannot be normalized.
type ValidationError struct {
	Route  string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	route := e.Route
	if route == "" {
		route = "<no route>"
	}
	return fmt.Sprintf("%s: %s %s", route, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRecord }

// Normalize projects a PageRecord onto Meta. Optional fields that are absent
// stay empty; a record without route, title or date is rejected.
func Normalize(p PageRecord) (Meta, error) {
	if p.Route == "" {
		return Meta{}, &ValidationError{Field: "route", Reason: "is required"}
	}
	fm := p.FrontMatter
	m := Meta{
		Title:       stringField(fm, "title"),
		Tags:        NewTagSet(fm["tags"]),
		Date:        dateField(fm, "date"),
		UpdateDate:  dateField(fm, "updateDate"),
		Description: stringField(fm, "description"),
		Image:       stringField(fm, "image"),
		Thumbnail:   stringField(fm, "thumbnail"),
		Link:        p.Route,
	}
	// Only a boolean true publishes; "true" strings and absence stay drafts.
	if v, ok := fm["published"].(bool); ok {
		m.Published = v
	}
	if m.Title == "" {
		return Meta{}, &ValidationError{Route: p.Route, Field: "title", Reason: "is required"}
	}
	if m.Date == "" {
		return Meta{}, &ValidationError{Route: p.Route, Field: "date", Reason: "is required"}
	}
	return m, nil
}

// NormalizeAll normalizes pages in order. It stops at the first invalid
// record and rejects two records sharing a link.
func NormalizeAll(pages []PageRecord) ([]Meta, error) {
	out := make([]Meta, 0, len(pages))
	seen := make(map[string]struct{}, len(pages))
	for _, p := range pages {
		m, err := Normalize(p)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[m.Link]; dup {
			return nil, &ValidationError{Route: m.Link, Field: "route", Reason: "is not unique"}
		}
		seen[m.Link] = struct{}{}
		out = append(out, m)
	}
	return out, nil
}

func stringField(fm map[string]any, key string) string {
	switch v := fm[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// dateField keeps string dates verbatim so that unparseable values survive
// normalization and sort last later on. Decoders that already produced a
// time, or an epoch value in milliseconds, are rendered as RFC 3339.
func dateField(fm map[string]any, key string) string {
	switch v := fm[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case int:
		return formatMillis(float64(v))
	case int64:
		return formatMillis(float64(v))
	case uint64:
		return formatMillis(float64(v))
	case float64:
		return formatMillis(v)
	default:
		return fmt.Sprint(v)
	}
}

func formatMillis(ms float64) string {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return strconv.FormatFloat(ms, 'f', -1, 64)
	}
	return time.UnixMilli(int64(ms)).UTC().Format(time.RFC3339)
}
