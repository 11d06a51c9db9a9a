package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/eringen/pressroom"
	"github.com/eringen/pressroom/meta"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

// setupSite writes the three-post scenario (one draft) and a config file
// pointing at it.
func setupSite(t *testing.T) (dir, cfgFile string) {
	dir = t.TempDir()
	writeFile(t, filepath.Join(dir, "content/posts/a.md"), "---\ntitle: Alpha\ndate: 2023-01-01\npublished: true\ntags: [x]\n---\nA\n")
	writeFile(t, filepath.Join(dir, "content/posts/b.md"), "---\ntitle: Bravo\ndate: 2023-06-01\npublished: true\ntags: [x, y]\n---\nB\n")
	writeFile(t, filepath.Join(dir, "content/posts/c.md"), "---\ntitle: Charlie\ndate: 2023-03-01\npublished: false\ntags: [x]\n---\nC\n")
	writeFile(t, filepath.Join(dir, "content/about.md"), "---\ntitle: About\ndate: 2020-01-01\npublished: true\n---\n")

	cfgFile = filepath.Join(dir, "pressroom.yaml")
	writeFile(t, cfgFile, "name: Test Blog\ncontent_dir: "+filepath.Join(dir, "content")+
		"\ndatabase_path: "+filepath.Join(dir, "data", "test.db")+"\nlog_level: warn\n")
	return dir, cfgFile
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLoadConfigDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	cfg, log, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, pressroom.SourceFiles, cfg.Source)
	assert.Equal(t, "content", cfg.ContentDir)
	assert.Equal(t, 5*time.Minute, cfg.PageCacheTTL)
	assert.Equal(t, 480, cfg.ThumbWidth)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Same(t, log, cfg.Logger)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	_, cfgFile := setupSite(t)
	t.Setenv("PRESSROOM_ADMIN_PASSWORD", "from-env")
	t.Setenv("PRESSROOM_PAGE_CACHE_TTL", "30s")

	cfg, log, err := loadConfig(viper.New(), cfgFile)
	require.NoError(t, err)
	assert.Equal(t, "Test Blog", cfg.Name)
	assert.Equal(t, "from-env", cfg.AdminPassword)
	assert.Equal(t, 30*time.Second, cfg.PageCacheTTL)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
}

func TestLoadConfigErrors(t *testing.T) {
	_, _, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit config file must exist")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "log_level: loud\n")
	_, _, err = loadConfig(viper.New(), bad)
	assert.ErrorContains(t, err, "log_level")
}

func TestListCommand(t *testing.T) {
	_, cfgFile := setupSite(t)

	out, err := run(t, "--config", cfgFile, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Bravo")
	assert.Contains(t, out, "Alpha")
	assert.NotContains(t, out, "Charlie")
	assert.NotContains(t, out, "About")
	assert.Less(t, bytes.Index([]byte(out), []byte("Bravo")), bytes.Index([]byte(out), []byte("Alpha")))

	out, err = run(t, "--config", cfgFile, "list", "--tag", "y", "--output", "yaml")
	require.NoError(t, err)
	var articles []meta.Meta
	require.NoError(t, yaml.Unmarshal([]byte(out), &articles))
	require.Len(t, articles, 1)
	assert.Equal(t, "Bravo", articles[0].Title)
	assert.Equal(t, "/posts/b", articles[0].Link)
	assert.Equal(t, meta.TagSet{"x", "y"}, articles[0].Tags)

	_, err = run(t, "--config", cfgFile, "list", "--output", "xml")
	assert.Error(t, err)
}

func TestTagsCommand(t *testing.T) {
	_, cfgFile := setupSite(t)

	out, err := run(t, "--config", cfgFile, "tags", "-o", "yaml")
	require.NoError(t, err)
	var tags []meta.TagCount
	require.NoError(t, yaml.Unmarshal([]byte(out), &tags))
	assert.Equal(t, []meta.TagCount{{Tag: "x", Count: 2}, {Tag: "y", Count: 1}}, tags)
}

func TestImportThenListFromStore(t *testing.T) {
	dir, cfgFile := setupSite(t)

	out, err := run(t, "--config", cfgFile, "import", filepath.Join(dir, "content"))
	require.NoError(t, err)
	assert.Contains(t, out, "imported 4 pages")

	t.Setenv("PRESSROOM_SOURCE", "sqlite")
	out, err = run(t, "--config", cfgFile, "tags")
	require.NoError(t, err)
	assert.Contains(t, out, "x")
	assert.Contains(t, out, "2")
}

func TestImportRejectsInvalidFiles(t *testing.T) {
	dir, cfgFile := setupSite(t)
	writeFile(t, filepath.Join(dir, "content/posts/bad.md"), "---\ndate: 2024-01-01\n---\n")

	_, err := run(t, "--config", cfgFile, "import", filepath.Join(dir, "content"))
	require.ErrorIs(t, err, meta.ErrInvalidRecord)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "pressroom dev\n", out)
}
