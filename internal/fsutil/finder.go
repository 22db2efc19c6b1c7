// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindFilesByExtension returns every file under rootPath whose name ends
// with extension, sorted lexically. If rootPath is itself a regular file it
// is returned as-is, whatever its extension.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{rootPath}, nil
	}

	var files []string
	err = filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// SiblingPath swaps the extension of path for ext, e.g. build.hcl becomes
// build.tree.
func SiblingPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
