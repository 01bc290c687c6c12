// Package scan enumerates candidate image files below a root directory.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar"
)

// ErrIO marks a root that is missing, not a directory, or unreadable.
var ErrIO = errors.New("scan i/o error")

// File is one discovered file.
type File struct {
	Path string // root joined with the relative path
	Size int64
}

// Options controls which files are reported.
type Options struct {
	// Pattern is searched for in the bare file name. Nil matches everything.
	Pattern *regexp.Regexp
	// Exclude holds doublestar globs matched against the slash-separated
	// path relative to the root. A matching directory is pruned.
	Exclude []string
}

// Files walks root recursively and returns every regular file whose name
// matches opts.Pattern, in traversal order.
func Files(root string, opts Options) ([]File, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrIO, root)
	}
	for _, glob := range opts.Exclude {
		if _, err := doublestar.Match(glob, "x"); err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", glob, err)
		}
	}

	var files []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		if path != root {
			rel, relErr := filepath.Rel(root, path)
			if relErr == nil && excluded(opts.Exclude, filepath.ToSlash(rel)) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if opts.Pattern != nil && !opts.Pattern.MatchString(d.Name()) {
			return nil
		}

		f := File{Path: path}
		if fi, err := d.Info(); err == nil {
			f.Size = fi.Size()
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func excluded(globs []string, rel string) bool {
	for _, glob := range globs {
		if ok, _ := doublestar.Match(glob, rel); ok {
			return true
		}
	}
	return false
}
