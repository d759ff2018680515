package site

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// already compressed; a layer of deflate won't help.
var storeRaw = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
	".pdf": true, ".zip": true, ".gz": true, ".woff2": true,
}

// writeBundle combines every file in filesDir into a flat zip at zipPath so
// the page can offer a single "download all" link. Compressed formats are
// stored, everything else is deflated.
func writeBundle(zipPath, filesDir string) error {
	entries, err := os.ReadDir(filesDir)
	if err != nil {
		return err
	}
	f, err := os.Create(zipPath)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(f)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		b, err := os.ReadFile(filepath.Join(filesDir, e.Name()))
		if err != nil {
			f.Close()
			return err
		}
		method := zip.Deflate
		if storeRaw[strings.ToLower(filepath.Ext(e.Name()))] {
			method = zip.Store
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e.Name(), Method: method})
		if err != nil {
			f.Close()
			return fmt.Errorf("add %s to bundle: %w", e.Name(), err)
		}
		if _, err := w.Write(b); err != nil {
			f.Close()
			return fmt.Errorf("write %s to bundle: %w", e.Name(), err)
		}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
