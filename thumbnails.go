package pressroom

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const jpegQuality = 80

var thumbExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Thumbnailer produces JPEG thumbnails of images under a static directory for
// the article cards. Results are kept in memory until the source file changes.
type Thumbnailer struct {
	dir   string
	width int

	mu    sync.Mutex
	cache map[string]thumb
}

type thumb struct {
	modTime time.Time
	data    []byte
}

// NewThumbnailer serves thumbnails of at most width pixels for files in dir.
func NewThumbnailer(dir string, width int) *Thumbnailer {
	return &Thumbnailer{dir: dir, width: width, cache: make(map[string]thumb)}
}

// Thumbnail returns the JPEG thumbnail for the image at rel, a slash separated
// path relative to the static directory. It returns ErrNotFound for paths
// outside the directory, unknown extensions and missing files.
func (t *Thumbnailer) Thumbnail(rel string) ([]byte, error) {
	clean := path.Clean("/" + rel)
	if !thumbExtensions[strings.ToLower(path.Ext(clean))] {
		return nil, ErrNotFound
	}
	file := filepath.Join(t.dir, filepath.FromSlash(clean))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return nil, ErrNotFound
	}

	t.mu.Lock()
	cached, ok := t.cache[clean]
	t.mu.Unlock()
	if ok && cached.modTime.Equal(info.ModTime()) {
		return cached.data, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, _, _, err := resizeJPEG(f, t.width)
	if err != nil {
		return nil, fmt.Errorf("thumbnail %s: %w", clean, err)
	}

	t.mu.Lock()
	t.cache[clean] = thumb{modTime: info.ModTime(), data: data}
	t.mu.Unlock()
	return data, nil
}

// resizeJPEG decodes an image from src, scales it down to maxWidth when it is
// wider, and encodes it as JPEG. It returns the encoded size in pixels.
func resizeJPEG(src io.Reader, maxWidth int) (data []byte, width, height int, err error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxWidth {
		newH := h * maxWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = maxWidth, newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, 0, 0, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), w, h, nil
}

func (a *App) handleThumb(c echo.Context) error {
	data, err := a.thumbs.Thumbnail(c.Param("*"))
	if errors.Is(err, ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}
