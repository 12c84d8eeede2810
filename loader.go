package texstack

import (
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"

	// Image stacks load whatever the path points at; register the
	// stdlib decoders plus the extended formats from x/image.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Loader reads and decodes the image behind a layer path.
// PathSource calls Load once per path and memoizes the result.
type Loader interface {
	// Load returns the decoded image at path.
	// A missing file is reported as a *ResourceNotFoundError.
	Load(path string) (image.Image, error)
}

// FileLoader loads images from the filesystem, optionally resolving
// relative paths against a list of search directories.
type FileLoader struct {
	search []string
}

// NewFileLoader creates a loader that resolves relative paths against the
// given directories in order, first hit wins. With no search directories,
// paths are opened as given.
func NewFileLoader(searchPaths ...string) *FileLoader {
	return &FileLoader{search: searchPaths}
}

// Find resolves path to a readable file.
// Absolute paths and paths that exist as given are returned unchanged;
// otherwise each search directory is tried in order. A path that resolves
// nowhere returns a *ResourceNotFoundError.
func (l *FileLoader) Find(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if !filepath.IsAbs(path) {
		for _, dir := range l.search {
			cand := filepath.Join(dir, path)
			if _, err := os.Stat(cand); err == nil {
				return cand, nil
			}
		}
	}
	return "", &ResourceNotFoundError{Path: path, Err: fs.ErrNotExist}
}

// Load implements Loader.
func (l *FileLoader) Load(path string) (image.Image, error) {
	resolved, err := l.Find(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Clean(resolved))
	if err != nil {
		return nil, &ResourceNotFoundError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texstack: decode %s: %w", path, err)
	}
	return img, nil
}

// Ensure FileLoader implements Loader.
var _ Loader = (*FileLoader)(nil)
