package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// copyInto copies src into dir under its base name and returns the
// destination path. Files collected from different subdirectories may share a
// base name; the later arrival is renamed {stem}_{n}{suffix} with the
// smallest n >= 1 that is free, so every destination name in dir is unique.
func copyInto(dir, src string) (string, error) {
	name := filepath.Base(src)
	suffix := filepath.Ext(name)
	if suffix == name { // dotfiles like .gitignore: the leading dot is not an extension
		suffix = ""
	}
	stem := strings.TrimSuffix(name, suffix)

	dst := filepath.Join(dir, name)
	for n := 1; ; n++ {
		_, err := os.Lstat(dst)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", dst, err)
		}
		dst = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, suffix))
	}

	b, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, b, 0o777); err != nil {
		return "", err
	}
	return dst, nil
}
