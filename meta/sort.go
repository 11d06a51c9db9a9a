package meta

import (
	"slices"
	"strings"
	"time"
)

// dateLayouts are tried in order by ParseDate. Values without a zone are read
// as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01",
	"2006",
	"2006/01/02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// ParseDate parses a front matter date. The boolean is false when no layout
// matches.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortByDateDesc orders a before b when a is newer. A record whose date does
// not parse is placed after every record whose date does; two such records
// compare equal.
func SortByDateDesc(a, b Meta) int {
	ta, okA := ParseDate(a.Date)
	tb, okB := ParseDate(b.Date)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	case ta.After(tb):
		return -1
	case ta.Before(tb):
		return 1
	default:
		return 0
	}
}

// SortByDate sorts metas newest first in place. The sort is stable: records
// with equal dates keep their input order.
func SortByDate(metas []Meta) {
	slices.SortStableFunc(metas, SortByDateDesc)
}
