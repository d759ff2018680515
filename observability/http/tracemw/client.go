package tracemw

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"gitlab.com/efronlicht/gallery/observability/trace"
	"go.uber.org/zap"
)

// ClientInterface's Do() performs a single HTTP request. Unlike an
// http.RoundTripper, it may modify the outgoing request. The usual
// implementation is *http.Client.
type ClientInterface interface {
	Do(r *http.Request) (*http.Response, error)
}

// ClientFunc adapts a function to ClientInterface.
type ClientFunc func(*http.Request) (*http.Response, error)

func (cf ClientFunc) Do(req *http.Request) (*http.Response, error) { return cf(req) }

// Client wraps client so that every request carries the trace from its
// context (minting one if absent) in its headers, with the request logged at
// Debug on the way out and Info/Error on the way back.
func Client(client ClientInterface, logger *zap.Logger) ClientInterface {
	if client == nil {
		panic("nil client")
	}
	if logger == nil {
		panic("nil logger")
	}
	return ClientFunc(func(req *http.Request) (*http.Response, error) {
		t := trace.FromCtxOrNew(req.Context())
		start := time.Now()
		logger := logger.With(zap.String("method", req.Method), zap.String("path", req.URL.Path))
		prefix := fmt.Sprintf("client: %s %s: ", req.Method, req.URL.Path)

		{ // log request
			buf := bufpool.Get().(*bytes.Buffer)
			buf.Reset()
			if err := req.Header.WriteSubset(buf, excludeHeaders); err != nil {
				panic(err)
			}
			logger.Debug(prefix+"begin",
				zap.Stringer("trace_id", t.TraceID),
				zap.Stringers("request_id", t.RequestIDs),
				zap.Stringer("headers", buf),
			)
			bufpool.Put(buf)
		}

		trace.PopulateHTTPHeader(req.Header, t)
		resp, err := client.Do(req)
		if err != nil {
			logger.Error(prefix+"end: request failed", zap.Error(err))
			return resp, err
		}
		if resp.StatusCode >= 300 {
			logger.Error(prefix+"end: unexpected status code", zap.Duration("elapsed", time.Since(start)), zap.Int("status_code", resp.StatusCode), zap.Stringer("trace_id", t.TraceID))
			return resp, nil
		}
		logger.Debug(prefix+"end: ok", zap.Duration("elapsed", time.Since(start)), zap.Int("status_code", resp.StatusCode), zap.Stringer("trace_id", t.TraceID))
		return resp, nil
	})
}
