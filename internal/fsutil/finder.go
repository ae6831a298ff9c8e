// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindFilesByExtension recursively searches the given root path for all files ending
// with the specified extension. It returns a slice of their full paths in
// lexical order.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	return FindFilesInFS(os.DirFS(rootPath), ".", extension, func(p string) string {
		return filepath.Join(rootPath, filepath.FromSlash(p))
	})
}

// FindFilesInFS is like FindFilesByExtension but walks fsys from root. The
// optional rewrite maps every found slash-separated path before it is
// returned.
func FindFilesInFS(fsys fs.FS, root string, extension string, rewrite func(string) string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			if rewrite != nil {
				path = rewrite(path)
			}
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}
