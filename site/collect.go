package site

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
)

// collect returns every regular file under root, recursively, sorted by full
// path so the output ordering is reproducible run-to-run.
func collect(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
