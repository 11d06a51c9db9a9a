package pressroom

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/pressroom/content"
	"github.com/eringen/pressroom/meta"
)

func writePost(t *testing.T, dir, name, title string) {
	t.Helper()
	doc := "---\ntitle: " + title + "\ndate: 2024-01-01\npublished: true\n---\nbody\n"
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644))
}

func titles(t *testing.T, c *PageCache) []string {
	pages, err := c.Pages(context.Background())
	require.NoError(t, err)
	metas, err := meta.NormalizeAll(pages)
	require.NoError(t, err)
	var out []string
	for _, m := range metas {
		out = append(out, m.Title)
	}
	return out
}

// countPages is safe to call from require.Eventually; a file caught mid-write
// counts as not ready.
func countPages(c *PageCache) int {
	pages, err := c.Pages(context.Background())
	if err != nil {
		return -1
	}
	return len(pages)
}

func TestWatcherInvalidatesCache(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "posts/first.md", "First")

	cache := NewPageCache(content.NewLoader(dir), time.Hour)
	w, err := NewWatcher(dir, cache, 20*time.Millisecond, testLogger())
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, []string{"First"}, titles(t, cache))

	writePost(t, dir, "posts/second.md", "Second")
	require.Eventually(t, func() bool {
		return countPages(cache) == 2
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{"First", "Second"}, titles(t, cache))
}

func TestWatcherPicksUpNewDirectories(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "posts/first.md", "First")

	cache := NewPageCache(content.NewLoader(dir), time.Hour)
	w, err := NewWatcher(dir, cache, 20*time.Millisecond, testLogger())
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, 1, countPages(cache))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "notes"), 0o755))
	// The watch on notes/ is added when the create event is handled.
	time.Sleep(100 * time.Millisecond)

	writePost(t, dir, "notes/later.md", "Later")
	require.Eventually(t, func() bool {
		return countPages(cache) == 2
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWatcherMissingDir(t *testing.T) {
	cache := NewPageCache(content.NewLoader("nope"), time.Hour)
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), cache, time.Millisecond, testLogger())
	assert.Error(t, err)
}
