package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/pressroom/meta"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestListingEscapesAndLinks(t *testing.T) {
	site := Site{Name: "Blog", Description: "notes"}
	articles := []meta.Meta{
		{Title: "<script>x</script>", Link: "/posts/a", Date: "2024-01-01", Tags: meta.TagSet{"c++"}, Image: "/public/img/a.png"},
		{Title: "Evil", Link: "/posts/b", Date: "2024-01-02", Image: "javascript:alert(1)"},
	}
	tags := []meta.TagCount{{Tag: "c++", Count: 1}}

	out := render(t, Listing(site, "Blog", "", articles, tags))
	assert.NotContains(t, out, "<script>x</script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, `src="/thumbs/img/a.png"`)
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, `href="/tag/c++/"`)
	assert.Contains(t, out, `<p class="lead">notes</p>`)

	out = render(t, Listing(site, "Posts tagged c++", "c++", nil, tags))
	assert.Contains(t, out, "No posts yet.")
	assert.Contains(t, out, "tag tag-active")
	assert.NotContains(t, out, "lead")
}

func TestThumbURL(t *testing.T) {
	assert.Equal(t, "/custom.jpg", ThumbURL(meta.Meta{Thumbnail: "/custom.jpg", Image: "/public/a.png"}))
	assert.Equal(t, "/thumbs/a.png", ThumbURL(meta.Meta{Image: "/public/a.png"}))
	assert.Equal(t, "https://cdn.example.com/a.png", ThumbURL(meta.Meta{Image: "https://cdn.example.com/a.png"}))
	assert.Equal(t, "", ThumbURL(meta.Meta{}))
}

func TestAdminDashboardMarksDrafts(t *testing.T) {
	posts := []meta.Meta{
		{Title: "Live", Link: "/posts/live", Date: "2024-01-02", Published: true},
		{Title: "Wip", Link: "/posts/wip", Date: "2024-01-01"},
	}
	out := render(t, AdminDashboard(Site{Name: "Blog"}, posts, "saved /posts/live", "tok"))
	assert.Contains(t, out, "<td>published</td>")
	assert.Contains(t, out, "<td>draft</td>")
	assert.Contains(t, out, `href="/admin/edit/?route=%2Fposts%2Fwip"`)
	assert.Contains(t, out, `name="_csrf" value="tok"`)
	assert.Contains(t, out, "saved /posts/live")
}

func TestAdminFormMarksNewPosts(t *testing.T) {
	out := render(t, AdminForm(Site{}, PostForm{IsNew: true}, "tok"))
	assert.Contains(t, out, `name="is_new" value="1"`)
	assert.Contains(t, out, "<h1>New post</h1>")

	out = render(t, AdminForm(Site{}, PostForm{Route: "/posts/a"}, "tok"))
	assert.NotContains(t, out, "is_new")
	assert.Contains(t, out, `value="/posts/a"`)
}

func TestAdminImages(t *testing.T) {
	out := render(t, AdminImages(Site{}, nil, "", "tok"))
	assert.Contains(t, out, "No images yet.")
	assert.Contains(t, out, `enctype="multipart/form-data"`)
	assert.Contains(t, out, `name="_csrf" value="tok"`)

	images := []Image{{Filename: "cat.jpg", OriginalName: "<cat>.png", Width: 800, Height: 600, Size: 2048, UploadedAt: "2024-01-01T00:00:00Z"}}
	out = render(t, AdminImages(Site{}, images, "uploaded /public/uploads/cat.jpg", "tok"))
	assert.Contains(t, out, `src="/thumbs/uploads/cat.jpg"`)
	assert.Contains(t, out, "<code>/public/uploads/cat.jpg</code>")
	assert.Contains(t, out, "800&times;600, 2 KB")
	assert.Contains(t, out, `name="filename" value="cat.jpg"`)
	assert.Contains(t, out, `alt="&lt;cat&gt;.png"`)
	assert.Contains(t, out, "uploaded /public/uploads/cat.jpg")
	assert.NotContains(t, out, "No images yet.")
}

func TestSearchViews(t *testing.T) {
	results := []meta.Meta{{Title: "Go <tips>", Link: "/posts/go", Date: "2024-01-01"}}

	out := render(t, SearchResults("go", results))
	assert.Contains(t, out, `<a href="/posts/go">Go &lt;tips&gt;</a>`)
	assert.NotContains(t, out, "<html")

	assert.Empty(t, render(t, SearchResults("", nil)))
	assert.Contains(t, render(t, SearchResults("zz", nil)), "No results found")

	out = render(t, Search(Site{Name: "Blog"}, `"q"`, results))
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, `value="&#34;q&#34;"`)
	assert.Contains(t, out, `<div id="search-results"><ul class="search-results">`)
	assert.Contains(t, out, `src="/search.js"`)
	assert.Contains(t, out, `data-delay="300"`)
}
