package pressroom

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/eringen/pressroom/meta"
	"github.com/eringen/pressroom/views"
)

// Store wraps a SQLite database holding page records: the route, the front
// matter as YAML and the Markdown body.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed while the admin writes; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    route TEXT NOT NULL UNIQUE,
    front_matter TEXT NOT NULL,
    body TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

// Pages returns every stored record, drafts included, in insertion order.
func (s *Store) Pages(ctx context.Context) ([]meta.PageRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT route, front_matter, body FROM pages ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []meta.PageRecord
	for rows.Next() {
		var route, fm, body string
		if err := rows.Scan(&route, &fm, &body); err != nil {
			return nil, err
		}
		p, err := decodePage(route, fm, body)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// GetPage returns the record stored under route, or ErrNotFound.
func (s *Store) GetPage(ctx context.Context, route string) (meta.PageRecord, error) {
	var fm, body string
	err := s.db.QueryRowContext(ctx, `SELECT front_matter, body FROM pages WHERE route = ?`, route).Scan(&fm, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return meta.PageRecord{}, ErrNotFound
	}
	if err != nil {
		return meta.PageRecord{}, err
	}
	return decodePage(route, fm, body)
}

// SavePage validates p and upserts it. An existing route keeps its position
// in the insertion order.
func (s *Store) SavePage(ctx context.Context, p meta.PageRecord) error {
	if _, err := meta.Normalize(p); err != nil {
		return err
	}
	fm, err := encodeFrontMatter(p.FrontMatter)
	if err != nil {
		return fmt.Errorf("encode front matter of %s: %w", p.Route, err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO pages (route, front_matter, body, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(route) DO UPDATE SET front_matter = excluded.front_matter, body = excluded.body, updated_at = excluded.updated_at`,
		p.Route, fm, string(p.Body), time.Now().UTC().Format(time.RFC3339))
	return err
}

// DeletePage removes the record stored under route. Deleting a missing route
// is not an error.
func (s *Store) DeletePage(ctx context.Context, route string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE route = ?`, route)
	return err
}

// Import saves every page in a single transaction. Either all pages are
// stored or none are.
func (s *Store) Import(ctx context.Context, pages []meta.PageRecord) error {
	if _, err := meta.NormalizeAll(pages); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, p := range pages {
		fm, err := encodeFrontMatter(p.FrontMatter)
		if err != nil {
			return fmt.Errorf("encode front matter of %s: %w", p.Route, err)
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO pages (route, front_matter, body, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(route) DO UPDATE SET front_matter = excluded.front_matter, body = excluded.body, updated_at = excluded.updated_at`,
			p.Route, fm, string(p.Body), now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func encodeFrontMatter(fm map[string]any) (string, error) {
	if fm == nil {
		fm = map[string]any{}
	}
	b, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeFrontMatter parses YAML front matter text as stored by the Store and
// as typed into the admin form.
func DecodeFrontMatter(text string) (map[string]any, error) {
	fm := make(map[string]any)
	if err := yaml.Unmarshal([]byte(text), &fm); err != nil {
		return nil, err
	}
	return fm, nil
}

func decodePage(route, fm, body string) (meta.PageRecord, error) {
	m, err := DecodeFrontMatter(fm)
	if err != nil {
		return meta.PageRecord{}, fmt.Errorf("decode front matter of %s: %w", route, err)
	}
	return meta.PageRecord{Route: route, FrontMatter: m, Body: []byte(body)}, nil
}

// SaveImage records the metadata of an uploaded image.
func (s *Store) SaveImage(ctx context.Context, img views.Image) error {
	_, err := s.db.ExecContext(ctx, `
INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns all uploaded images, newest first.
func (s *Store) ListImages(ctx context.Context) ([]views.Image, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT filename, original_name, width, height, size, uploaded_at
FROM images ORDER BY uploaded_at DESC, filename`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []views.Image
	for rows.Next() {
		var img views.Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// HasImage reports whether an image with filename is recorded.
func (s *Store) HasImage(ctx context.Context, filename string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images WHERE filename = ?`, filename).Scan(&n)
	return n > 0, err
}

// DeleteImage removes the metadata of filename. Deleting a missing image is
// not an error.
func (s *Store) DeleteImage(ctx context.Context, filename string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM images WHERE filename = ?`, filename)
	return err
}
