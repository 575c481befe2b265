// Package fsutil provides file system helpers for manifest discovery.
package fsutil

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// FindFilesByExtension returns the full paths of all files under rootPath
// ending with the given extension. A rootPath that is itself a matching file
// yields a single-element result.
func FindFilesByExtension(rootPath, extension string) ([]string, error) {
	if extension == "" {
		return nil, fmt.Errorf("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
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
	return files, nil
}
