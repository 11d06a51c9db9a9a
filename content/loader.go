// Package content reads Markdown files with front matter from a directory tree
// and turns them into page records.
package content

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/spf13/afero"

	"github.com/eringen/pressroom/meta"
)

var extensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdx":      true,
}

// Loader walks a content root and produces one PageRecord per Markdown file.
type Loader struct {
	fs   afero.Fs
	root string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFs replaces the filesystem the loader reads from (default: the OS).
func WithFs(fsys afero.Fs) LoaderOption {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// NewLoader creates a Loader rooted at dir.
func NewLoader(dir string, opts ...LoaderOption) *Loader {
	l := &Loader{fs: afero.NewOsFs(), root: dir}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Root returns the directory the loader reads from.
func (l *Loader) Root() string {
	return l.root
}

// Pages loads every page under the root in lexical path order.
func (l *Loader) Pages(ctx context.Context) ([]meta.PageRecord, error) {
	var files []string
	err := afero.Walk(l.fs, l.root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if p != l.root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if extensions[strings.ToLower(filepath.Ext(p))] {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("content: walk %s: %w", l.root, err)
	}
	sort.Strings(files)

	pages := make([]meta.PageRecord, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(l.root, file)
		if err != nil {
			return nil, fmt.Errorf("content: %s: %w", file, err)
		}
		p, err := l.readPage(file)
		if err != nil {
			return nil, err
		}
		p.Route = Route(rel)
		pages = append(pages, p)
	}
	return pages, nil
}

func (l *Loader) readPage(file string) (meta.PageRecord, error) {
	raw, err := afero.ReadFile(l.fs, file)
	if err != nil {
		return meta.PageRecord{}, fmt.Errorf("content: read %s: %w", file, err)
	}
	return Parse(raw, file)
}

// Parse splits a Markdown document into front matter and body. name is only
// used in error messages.
func Parse(raw []byte, name string) (meta.PageRecord, error) {
	fm := make(map[string]any)
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return meta.PageRecord{}, fmt.Errorf("content: front matter of %s: %w", name, err)
	}
	return meta.PageRecord{FrontMatter: fm, Body: body}, nil
}

// Route maps a path relative to the content root onto the route it is served
// under: "posts/hello.md" becomes "/posts/hello" and "posts/hello/index.md"
// becomes "/posts/hello".
func Route(rel string) string {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	if rel == "index" {
		return "/"
	}
	rel = strings.TrimSuffix(rel, "/index")
	return "/" + strings.Trim(rel, "/")
}
