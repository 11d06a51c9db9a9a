package pressroom

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pressroom/views"
)

const (
	maxImageWidth = 800
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

func (a *App) uploadsDir() string {
	return filepath.Join(a.Config.StaticDir, uploadsSubdir)
}

// uniqueImageName appends a counter to base until neither the uploads
// directory nor the store knows the name.
func (a *App) uniqueImageName(ctx context.Context, base string) (string, error) {
	if base == "" {
		base = "image"
	}
	candidate := base + ".jpg"
	for n := 2; ; n++ {
		_, statErr := os.Stat(filepath.Join(a.uploadsDir(), candidate))
		known, err := a.Store.HasImage(ctx, candidate)
		if err != nil {
			return "", err
		}
		if statErr != nil && !known {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d.jpg", base, n)
	}
}

// validImageName accepts the names uniqueImageName produces: a single path
// element ending in .jpg.
func validImageName(name string) bool {
	return name != "" && name == filepath.Base(name) && !strings.HasPrefix(name, ".") &&
		strings.HasSuffix(name, ".jpg")
}

func (a *App) handleImageUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	file, err := c.FormFile("image")
	if err != nil {
		return c.String(http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, w, h, err := resizeJPEG(src, maxImageWidth)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid image: "+err.Error())
	}

	ctx := c.Request().Context()
	name, err := a.uniqueImageName(ctx, Slugify(strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename))))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(a.uploadsDir(), 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(a.uploadsDir(), name), data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	img := views.Image{
		Filename:     name,
		OriginalName: file.Filename,
		Width:        w,
		Height:       h,
		Size:         len(data),
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := a.Store.SaveImage(ctx, img); err != nil {
		return err
	}
	a.Log.WithField("file", name).Info("image uploaded")
	return c.Redirect(http.StatusSeeOther, "/admin/images/?msg="+url.QueryEscape("uploaded "+img.URL()))
}

func (a *App) handleImageDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	name := c.FormValue("filename")
	if !validImageName(name) {
		return c.String(http.StatusBadRequest, "Invalid filename")
	}
	if err := os.Remove(filepath.Join(a.uploadsDir(), name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete image: %w", err)
	}
	if err := a.Store.DeleteImage(c.Request().Context(), name); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/images/?msg="+url.QueryEscape("deleted "+name))
}

func (a *App) handleImageList(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	images, err := a.Store.ListImages(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminImages(images, c.QueryParam("msg"), CsrfToken(c)))
}
