// Package archive reads form bundles: zip archives carrying form documents.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// maxEntrySize limits uncompressed size of a single bundled document.
const maxEntrySize = 16 << 20

// WalkFunc is called for every matching file in archive with its content.
// If an error is returned, processing stops.
type WalkFunc func(archive, name string, data []byte) error

// Walk visits regular files in the archive which names satisfy match, in
// natural order of names. Nil match accepts everything. Archive with absolute
// entry paths or path traversal components is rejected before anything is
// visited.
func Walk(archive string, match func(name string) bool, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	files := make(map[string]*zip.File, len(r.File))
	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		name := f.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || (match != nil && !match(name)) {
			continue
		}
		if _, dup := files[name]; dup {
			return fmt.Errorf("zip entry %q: duplicate name", name)
		}
		files[name] = f
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))

	for _, name := range names {
		data, err := read(files[name])
		if err != nil {
			return fmt.Errorf("zip entry %q: %w", name, err)
		}
		if err := walkFn(archive, name, data); err != nil {
			return err
		}
	}
	return nil
}

func read(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > maxEntrySize {
		return nil, fmt.Errorf("entry is too big (%d bytes)", f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, maxEntrySize))
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
