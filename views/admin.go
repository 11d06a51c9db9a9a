package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/pressroom/meta"
)

func csrfField(h *htmlWriter, token string) {
	h.rawf("<input type=\"hidden\" name=\"_csrf\" value=\"%s\">", h.attr(token))
}

// AdminLogin renders the password form.
func AdminLogin(site Site, showError bool, csrfToken string) templ.Component {
	return layout(site, "Admin", func(h *htmlWriter) {
		h.raw("<h1>Admin</h1>")
		if showError {
			h.raw("<p class=\"error\">Wrong password.</p>")
		}
		h.raw("<form method=\"post\" action=\"/admin/login/\">")
		csrfField(h, csrfToken)
		h.raw("<input type=\"password\" name=\"password\" autofocus required>")
		h.raw("<button type=\"submit\">Log in</button></form>")
	})
}

// AdminDashboard lists every stored post, drafts included, newest first.
func AdminDashboard(site Site, posts []meta.Meta, message, csrfToken string) templ.Component {
	return layout(site, "Admin", func(h *htmlWriter) {
		h.raw("<h1>Posts</h1>")
		if message != "" {
			h.rawf("<p class=\"message\">%s</p>", h.attr(message))
		}
		h.raw("<p><a href=\"/admin/new/\">New post</a> <a href=\"/admin/images/\">Images</a></p>")
		h.raw("<form method=\"post\" action=\"/admin/logout/\">")
		csrfField(h, csrfToken)
		h.raw("<button type=\"submit\">Log out</button></form>")
		h.raw("<table class=\"admin-posts\"><thead><tr><th>Title</th><th>Date</th><th>Tags</th><th>Status</th><th></th></tr></thead><tbody>")
		for _, p := range posts {
			status := "draft"
			if p.Published {
				status = "published"
			}
			h.raw("<tr>")
			h.rawf("<td>%s</td><td>%s</td><td>%s</td><td>%s</td>", h.attr(p.Title), h.attr(p.Date), h.attr(JoinTags(p.Tags)), status)
			h.rawf("<td><a href=\"%s\">Edit</a> ", h.href("/admin/edit/?route="+PathEscape(p.Link)))
			h.rawf("<form method=\"post\" action=\"/admin/delete/\" class=\"inline\">")
			csrfField(h, csrfToken)
			h.rawf("<input type=\"hidden\" name=\"route\" value=\"%s\"><button type=\"submit\">Delete</button></form></td>", h.attr(p.Link))
			h.raw("</tr>")
		}
		h.raw("</tbody></table>")
	})
}

// AdminForm renders the editor for one post.
func AdminForm(site Site, form PostForm, csrfToken string) templ.Component {
	title := "Edit post"
	if form.IsNew {
		title = "New post"
	}
	return layout(site, title, func(h *htmlWriter) {
		h.rawf("<h1>%s</h1>", title)
		if form.Error != "" {
			h.rawf("<p class=\"error\">%s</p>", h.attr(form.Error))
		}
		h.raw("<form method=\"post\" action=\"/admin/save/\">")
		csrfField(h, csrfToken)
		if form.IsNew {
			h.raw("<input type=\"hidden\" name=\"is_new\" value=\"1\">")
		}
		h.rawf("<label>Route <input name=\"route\" value=\"%s\" placeholder=\"/posts/my-post\"></label>", h.attr(form.Route))
		h.rawf("<label>Front matter (YAML)<textarea name=\"front_matter\" rows=\"10\">%s</textarea></label>", h.attr(form.FrontMatter))
		h.rawf("<label>Body (Markdown)<textarea name=\"body\" rows=\"24\">%s</textarea></label>", h.attr(form.Body))
		h.raw("<button type=\"submit\">Save</button></form>")
	})
}

// AdminImages lists uploaded images with the URL to paste into front matter
// or Markdown, plus the upload form.
func AdminImages(site Site, images []Image, message, csrfToken string) templ.Component {
	return layout(site, "Images", func(h *htmlWriter) {
		h.raw("<h1>Images</h1>")
		if message != "" {
			h.rawf("<p class=\"message\">%s</p>", h.attr(message))
		}
		h.raw("<p><a href=\"/admin/\">Back to posts</a></p>")
		h.raw("<form method=\"post\" action=\"/admin/images/upload/\" enctype=\"multipart/form-data\">")
		csrfField(h, csrfToken)
		h.raw("<input type=\"file\" name=\"image\" accept=\"image/jpeg,image/png,image/gif\" required>")
		h.raw("<button type=\"submit\">Upload</button></form>")
		if len(images) == 0 {
			h.raw("<p class=\"empty\">No images yet.</p>")
			return
		}
		h.raw("<table class=\"admin-images\"><thead><tr><th></th><th>URL</th><th>Size</th><th>Uploaded</th><th></th></tr></thead><tbody>")
		for _, img := range images {
			h.raw("<tr>")
			h.rawf("<td><img src=\"%s\" alt=\"%s\" width=\"120\" loading=\"lazy\"></td>",
				h.href(ThumbURL(meta.Meta{Image: img.URL()})), h.attr(img.OriginalName))
			h.rawf("<td><code>%s</code></td>", h.attr(img.URL()))
			h.rawf("<td>%d&times;%d, %d KB</td>", img.Width, img.Height, (img.Size+1023)/1024)
			h.rawf("<td>%s</td>", h.attr(img.UploadedAt))
			h.raw("<td><form method=\"post\" action=\"/admin/images/delete/\" class=\"inline\">")
			csrfField(h, csrfToken)
			h.rawf("<input type=\"hidden\" name=\"filename\" value=\"%s\"><button type=\"submit\">Delete</button></form></td>", h.attr(img.Filename))
			h.raw("</tr>")
		}
		h.raw("</tbody></table>")
	})
}
