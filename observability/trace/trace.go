// Package trace carries a request trace across function and HTTP boundaries.
// Use the middleware in observability/http/tracemw rather than calling these
// primitives directly.
package trace

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Trace is a TraceID plus the chain of RequestIDs that handled it, oldest
// first. Each hop appends its own RequestID.
type Trace struct {
	TraceID    uuid.UUID   `json:"trace_id,omitempty"`
	RequestIDs []uuid.UUID `json:"request_ids,omitempty"`
}

// New makes a Trace with a fresh TraceID and a single fresh RequestID.
func New() Trace {
	return Trace{TraceID: uuid.New(), RequestIDs: []uuid.UUID{uuid.New()}}
}

const (
	TraceIDHeader = "G-Trace-Id"
	ReqIDHeader   = "G-Req-Id"
)

// ErrNoReqIDHeader is returned by FromHTTPHeader when the trace ID parsed but
// no request IDs accompanied it.
var ErrNoReqIDHeader = errors.New("no G-Req-Id header")

// PopulateHTTPHeader writes the trace into h for the next hop.
func PopulateHTTPHeader(h http.Header, t Trace) {
	reqIDs := make([]string, len(t.RequestIDs))
	for i := range reqIDs {
		reqIDs[i] = t.RequestIDs[i].String()
	}
	h.Set(TraceIDHeader, t.TraceID.String())
	h[http.CanonicalHeaderKey(ReqIDHeader)] = reqIDs
}

// FromHTTPHeader decodes a Trace from h. A missing or malformed header is an
// error; callers usually respond by minting a new trace.
func FromHTTPHeader(h http.Header) (Trace, error) {
	raw := h.Get(TraceIDHeader)
	traceID, err := uuid.Parse(raw)
	if err != nil {
		return Trace{}, fmt.Errorf("%s header had invalid value %q, expected a UUID: %w", TraceIDHeader, raw, err)
	}
	rawReqIDs := h[http.CanonicalHeaderKey(ReqIDHeader)]
	if len(rawReqIDs) == 0 {
		return Trace{TraceID: traceID}, ErrNoReqIDHeader
	}
	reqIDs := make([]uuid.UUID, len(rawReqIDs))
	for i := range reqIDs {
		reqIDs[i], err = uuid.Parse(rawReqIDs[i])
		if err != nil {
			return Trace{TraceID: traceID}, fmt.Errorf("%s header had invalid value at position %d: %q: %w", ReqIDHeader, i, rawReqIDs[i], err)
		}
	}
	return Trace{TraceID: traceID, RequestIDs: reqIDs}, nil
}

type ctxKey struct{}

// SaveCtx returns a child context carrying t, for retrieval with FromCtx.
func SaveCtx(ctx context.Context, t Trace) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromCtx retrieves a trace saved with SaveCtx, reporting whether one was
// found. Zero-valued IDs are filled in either way.
func FromCtx(ctx context.Context) (Trace, bool) {
	t, ok := ctx.Value(ctxKey{}).(Trace)
	if t.TraceID == (uuid.UUID{}) {
		t.TraceID = uuid.New()
	}
	if len(t.RequestIDs) == 0 {
		t.RequestIDs = []uuid.UUID{uuid.New()}
	}
	return t, ok
}

// FromCtxOrNew retrieves a trace from the context, minting one if absent.
func FromCtxOrNew(ctx context.Context) Trace {
	t, _ := FromCtx(ctx)
	return t
}
