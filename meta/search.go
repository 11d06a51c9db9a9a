package meta

import "strings"

// Search returns up to limit of articles whose title contains query, ignoring
// case. A blank query matches nothing. Results keep the order of articles, so
// sorted input gives newest matches first. limit <= 0 means no limit.
func Search(articles []Meta, query string, limit int) []Meta {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []Meta
	for _, m := range articles {
		if limit > 0 && len(out) == limit {
			break
		}
		if strings.Contains(strings.ToLower(m.Title), q) {
			out = append(out, m)
		}
	}
	return out
}
