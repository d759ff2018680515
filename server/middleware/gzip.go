// Package middleware holds the server's plain net/http middleware.
package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"
)

// WriteGzip compresses the response body when the client sends
// Accept-Encoding: gzip. Requests for the zip bundle pass through untouched:
// the archive is already compressed.
func WriteGzip(h http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".zip") {
			h.ServeHTTP(w, r)
			return
		}
		for _, v := range r.Header.Values("Accept-Encoding") {
			if strings.Contains(v, "gzip") {
				gz := gzip.NewWriter(w)
				w.Header().Set("Content-Encoding", "gzip")
				defer gz.Close()
				h.ServeHTTP(&gzipWriter{zip: gz, ResponseWriter: w}, r)
				return
			}
		}
		h.ServeHTTP(w, r)
	}
}

type gzipWriter struct {
	zip *gzip.Writer
	http.ResponseWriter
}

func (gz *gzipWriter) Write(p []byte) (n int, err error) { return gz.zip.Write(p) }

// a Content-Length set by an inner handler (http.ServeFile) counts the
// uncompressed bytes; it must not survive compression.
func (gz *gzipWriter) WriteHeader(code int) {
	gz.Header().Del("Content-Length")
	gz.ResponseWriter.WriteHeader(code)
}
