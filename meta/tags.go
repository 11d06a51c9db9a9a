package meta

import (
	"fmt"
	"slices"
)

// TagSet is the tags of one record in authoring order without duplicates.
// Front matter may carry a single string or a list; both end up here.
type TagSet []string

// NewTagSet builds a TagSet from a decoded front matter value. A lone string
// is a one-element set, lists keep their scalar members and anything else
// (including nil) yields an empty set. Empty strings are dropped.
func NewTagSet(v any) TagSet {
	var raw []string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		raw = []string{t}
	case []string:
		raw = t
	case TagSet:
		raw = t
	case []any:
		raw = make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := scalarString(item); ok {
				raw = append(raw, s)
			}
		}
	default:
		if s, ok := scalarString(t); ok {
			raw = []string{s}
		}
	}

	var set TagSet
	for _, tag := range raw {
		if tag == "" || slices.Contains(set, tag) {
			continue
		}
		set = append(set, tag)
	}
	return set
}

// Contains reports whether tag is in the set. Matching is exact and
// case-sensitive.
func (s TagSet) Contains(tag string) bool {
	return slices.Contains(s, tag)
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}
