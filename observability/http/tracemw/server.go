// Package tracemw logs and traces HTTP requests on both ends of the wire:
// Server wraps a handler, Client wraps an *http.Client (or anything with Do).
package tracemw

import (
	"bytes"
	"fmt"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"gitlab.com/efronlicht/gallery/observability/trace"
	"go.uber.org/zap"
)

var excludeHeaders = map[string]bool{
	http.CanonicalHeaderKey("Authorization"): true,
}

var bufpool = sync.Pool{New: func() any { return bytes.NewBuffer(make([]byte, 0, 256)) }}

// Server continues the trace from the incoming headers (minting one if the
// headers are missing or invalid), appends a fresh RequestID, echoes the
// trace on the response, and logs begin/end of every request. Panics in h are
// recovered, logged with a stack, and turned into a 500.
func Server(h http.Handler, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		t, err := trace.FromHTTPHeader(r.Header)
		if err != nil {
			t.TraceID = uuid.New()
		}
		t.RequestIDs = append(t.RequestIDs, uuid.New())
		trace.PopulateHTTPHeader(w.Header(), t)

		logger := logger.With(zap.String("method", r.Method), zap.String("path", r.URL.Path))
		prefix := fmt.Sprintf("server: %s %s: ", r.Method, r.URL.Path)
		{ // log request
			buf := bufpool.Get().(*bytes.Buffer)
			buf.Reset()
			if err := r.Header.WriteSubset(buf, excludeHeaders); err != nil {
				panic(err)
			}
			logger.Debug(prefix+"begin",
				zap.String("user-agent", r.UserAgent()),
				zap.Stringer("trace_id", t.TraceID),
				zap.Stringers("request_id", t.RequestIDs),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Stringer("headers", buf),
			)
			bufpool.Put(buf)
		}

		lw := &writer{ResponseWriter: w}
		defer func() {
			elapsed := time.Since(start)
			if p := recover(); p != nil {
				lw.WriteHeader(http.StatusInternalServerError)
				logger.Error(prefix+"end: panic", zap.Any("panic", p), zap.ByteString("stack", debug.Stack()), zap.Int("status_code", lw.statusCode))
				return
			}
			if lw.statusCode >= 300 {
				logger.Error(prefix+"end: error", zap.Int("status_code", lw.statusCode), zap.Duration("elapsed", elapsed))
				return
			}
			logger.Info(prefix+"end: ok", zap.Int("status_code", lw.statusCode), zap.Int("content_length", lw.contentLength), zap.Duration("elapsed", elapsed))
		}()
		h.ServeHTTP(lw, r.WithContext(trace.SaveCtx(r.Context(), t)))
	}
}

// writer records the status code and body length written to the response.
type writer struct {
	http.ResponseWriter
	statusCode, contentLength int
}

func (w *writer) Write(b []byte) (int, error) {
	if w.statusCode < 200 {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.contentLength += n
	return n, err
}

func (w *writer) WriteHeader(statusCode int) {
	if w.statusCode < 200 {
		w.statusCode = statusCode
	}
	w.ResponseWriter.WriteHeader(statusCode)
}
