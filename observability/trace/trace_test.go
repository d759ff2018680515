package trace_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gitlab.com/efronlicht/gallery/observability/trace"
)

func TestHTTPHeaderRoundTrip(t *testing.T) {
	want := trace.New()
	want.RequestIDs = append(want.RequestIDs, uuid.New())
	h := http.Header{}
	trace.PopulateHTTPHeader(h, want)
	got, err := trace.FromHTTPHeader(h)
	if err != nil {
		t.Fatal(err)
	}
	if got.TraceID != want.TraceID {
		t.Fatalf("trace ID: want %s, got %s", want.TraceID, got.TraceID)
	}
	if len(got.RequestIDs) != 2 || got.RequestIDs[0] != want.RequestIDs[0] || got.RequestIDs[1] != want.RequestIDs[1] {
		t.Fatalf("request IDs: want %v, got %v", want.RequestIDs, got.RequestIDs)
	}
}

func TestFromHTTPHeaderMissing(t *testing.T) {
	if _, err := trace.FromHTTPHeader(http.Header{}); err == nil {
		t.Fatal("expected an error for empty headers")
	}
}

func TestCtxRoundTrip(t *testing.T) {
	want := trace.New()
	got, ok := trace.FromCtx(trace.SaveCtx(context.Background(), want))
	if !ok {
		t.Fatal("expected to find the saved trace")
	}
	if got.TraceID != want.TraceID {
		t.Fatalf("want %s, got %s", want.TraceID, got.TraceID)
	}
}

func TestFromCtxMintsIDs(t *testing.T) {
	got, ok := trace.FromCtx(context.Background())
	if ok {
		t.Fatal("expected no saved trace")
	}
	if got.TraceID == uuid.Nil || len(got.RequestIDs) == 0 {
		t.Fatalf("expected minted IDs, got %+v", got)
	}
}
