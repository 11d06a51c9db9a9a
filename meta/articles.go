package meta

import "slices"

// FilterPublished keeps published records and, when tag is not empty, only
// those carrying tag. The input slice is not modified.
func FilterPublished(metas []Meta, tag string) []Meta {
	var out []Meta
	for _, m := range metas {
		if !m.Published {
			continue
		}
		if tag != "" && !m.Tags.Contains(tag) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// GetArticles returns the published articles of pages, optionally restricted
// to tag, newest first.
func GetArticles(pages []PageRecord, tag string) ([]Meta, error) {
	metas, err := NormalizeAll(pages)
	if err != nil {
		return nil, err
	}
	articles := FilterPublished(metas, tag)
	SortByDate(articles)
	return articles, nil
}

// GetTags counts tags over the published records of pages. Drafts never
// contribute, so a tag used only by unpublished posts does not appear.
func GetTags(pages []PageRecord) ([]TagCount, error) {
	metas, err := NormalizeAll(pages)
	if err != nil {
		return nil, err
	}
	return CountTags(FilterPublished(metas, "")), nil
}

// CountTags counts tag occurrences over exactly the given records, one per
// record per tag. The result is ordered by count, highest first; equal counts
// keep the order in which the tags were first seen.
func CountTags(metas []Meta) []TagCount {
	var counts []TagCount
	index := make(map[string]int)
	for _, m := range metas {
		for _, tag := range m.Tags {
			if i, ok := index[tag]; ok {
				counts[i].Count++
				continue
			}
			index[tag] = len(counts)
			counts = append(counts, TagCount{Tag: tag, Count: 1})
		}
	}
	slices.SortStableFunc(counts, func(a, b TagCount) int {
		return b.Count - a.Count
	})
	return counts
}
