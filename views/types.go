package views

// Site holds the site-wide values every page needs. It is filled from
// pressroom.SiteConfig so nothing in the templates is hardcoded.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PostForm is the state of the admin edit form.
type PostForm struct {
	Route       string
	FrontMatter string // YAML
	Body        string
	Error       string
	IsNew       bool
}

// Image is an uploaded image as listed on the admin images page. Files live
// under the uploads directory of the static dir.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// URL is the public path of the image, the value to put in front matter.
func (i Image) URL() string {
	return "/public/uploads/" + i.Filename
}
