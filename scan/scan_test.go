package scan

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func rel(t *testing.T, root string, files []File) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		r, err := filepath.Rel(root, f.Path)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestFilesMatchesBareNameRecursively(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.jpg", "notes.txt", "sub/b.jpg", "sub/deeper/c.jpg", "sub/d.png", "x.jpg.bak")

	files, err := Files(root, Options{Pattern: regexp.MustCompile(`\.jpg`)})
	require.NoError(t, err)

	// search semantics: ".jpg" anywhere in the name matches, including x.jpg.bak
	assert.Equal(t, []string{"a.jpg", "sub/b.jpg", "sub/deeper/c.jpg", "x.jpg.bak"}, rel(t, root, files))
	assert.Equal(t, int64(1), files[0].Size)
}

func TestFilesDirectoryNamesDoNotMatch(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "photos.jpg/readme.txt")

	files, err := Files(root, Options{Pattern: regexp.MustCompile(`\.jpg`)})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFilesExclude(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "keep/a.jpg", "cache/b.jpg", "keep/thumbs/c.jpg", "keep/d_small.jpg")

	files, err := Files(root, Options{
		Pattern: regexp.MustCompile(`\.jpg$`),
		Exclude: []string{"cache", "**/thumbs", "**/*_small.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep/a.jpg"}, rel(t, root, files))
}

func TestFilesNilPatternMatchesAll(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a", "b/c")

	files, err := Files(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b/c"}, rel(t, root, files))
	assert.Equal(t, filepath.Join(root, "b", "c"), files[1].Path)
}

func TestFilesBadRoot(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "file.jpg")

	_, err := Files(filepath.Join(root, "missing"), Options{})
	assert.True(t, errors.Is(err, ErrIO))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = Files(filepath.Join(root, "file.jpg"), Options{})
	assert.True(t, errors.Is(err, ErrIO))
}
