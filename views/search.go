package views

import (
	"context"
	_ "embed"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/pressroom/meta"
)

// SearchScript debounces the search box and swaps in SearchResults.
//
//go:embed search.js
var SearchScript []byte

// SearchDelay is how long the search box waits after the last keystroke, in
// milliseconds.
const SearchDelay = 300

func searchForm(h *htmlWriter, query string) {
	h.rawf("<form class=\"search\" action=\"/search/\" method=\"get\" role=\"search\" data-search=\"search-results\" data-delay=\"%d\">", SearchDelay)
	h.rawf("<input type=\"search\" name=\"q\" value=\"%s\" placeholder=\"Search posts\" autocomplete=\"off\">", h.attr(query))
	h.raw("</form><script src=\"/search.js\" defer></script>")
}

func searchResults(h *htmlWriter, query string, results []meta.Meta) {
	if query == "" {
		return
	}
	if len(results) == 0 {
		h.raw("<p class=\"empty\">No results found</p>")
		return
	}
	h.raw("<ul class=\"search-results\">")
	for _, a := range results {
		h.rawf("<li><a href=\"%s\">%s</a> <time datetime=\"%s\">%s</time></li>",
			h.href(a.Link), h.attr(a.Title), h.attr(a.Date), h.attr(a.Date))
	}
	h.raw("</ul>")
}

// SearchResults renders only the result list. The search script requests it
// to refresh the results in place.
func SearchResults(query string, results []meta.Meta) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		searchResults(h, query, results)
		return h.err
	})
}

// Search renders the full search page, used when scripts are off.
func Search(site Site, query string, results []meta.Meta) templ.Component {
	return layout(site, "Search", func(h *htmlWriter) {
		h.raw("<h1>Search</h1>")
		searchForm(h, query)
		h.raw("<div id=\"search-results\">")
		searchResults(h, query, results)
		h.raw("</div>")
	})
}
