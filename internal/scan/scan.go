// Package scan finds media files under a directory tree.
package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/vmunix/mkvcat/pkg/release"
)

// ErrNotDirectory indicates the scan root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// File is a matched media file.
type File struct {
	Name string // base name, passed to the extractor
	Path string // full path, used for the size lookup
}

// Options controls which files Walk reports.
type Options struct {
	Extensions  []string // matched case-insensitively, e.g. ".mkv"
	ExcludeDirs []string // relative to root unless absolute
	// OnError receives unreadable entries below root. Nil skips them silently.
	OnError func(path string, err error)
}

// Walk returns every file under root whose extension is listed in opts,
// in lexical order. A missing or unreadable root is an error; unreadable
// entries below it are reported to opts.OnError and skipped.
func Walk(fsys afero.Fs, root string, opts Options) ([]File, error) {
	root = filepath.Clean(root)

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	exts := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		exts[strings.ToLower(ext)] = true
	}
	excluded := buildExcluded(root, opts.ExcludeDirs)

	var files []File
	err = afero.Walk(fsys, root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			if opts.OnError != nil {
				opts.OnError(path, walkErr)
			}
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if path != root && excluded[filepath.Clean(path)] {
				return filepath.SkipDir
			}
			return nil
		}

		if !exts[strings.ToLower(filepath.Ext(info.Name()))] {
			return nil
		}

		files = append(files, File{Name: info.Name(), Path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	return files, nil
}

func buildExcluded(root string, dirs []string) map[string]bool {
	excluded := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if !filepath.IsAbs(d) {
			d = filepath.Join(root, d)
		}
		excluded[filepath.Clean(d)] = true
	}
	return excluded
}

// SizeOf returns a size lookup for path on fsys.
func SizeOf(fsys afero.Fs, path string) release.SizeFunc {
	return func() (int64, error) {
		info, err := fsys.Stat(path)
		if err != nil {
			return 0, err
		}
		return info.Size(), nil
	}
}
