// probe smoke-checks a running gallery preview server: it sends one traced
// GET (default http://localhost:$PORT/index.html, or the URL given as the
// single argument) and prints the status, body size, and returned trace ID.
// Exits non-zero on any status other than 200.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"gitlab.com/efronlicht/enve"
	"gitlab.com/efronlicht/gallery/observability/http/tracemw"
	"gitlab.com/efronlicht/gallery/observability/trace"
	"go.uber.org/zap"
)

func main() {
	log.SetPrefix("probe\t")
	logger := zap.Must(zap.NewDevelopment())
	defer logger.Sync()

	target := fmt.Sprintf("http://localhost:%d/index.html", enve.IntOr("PORT", 8080))
	if len(os.Args) > 1 {
		target = os.Args[1]
	}

	client := tracemw.Client(&http.Client{Timeout: 5 * time.Second}, logger)
	t := trace.New()
	req, err := http.NewRequestWithContext(trace.SaveCtx(context.Background(), t), "GET", target, nil)
	if err != nil {
		log.Fatal(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()
	n, _ := io.Copy(io.Discard, resp.Body)

	returned, _ := trace.FromHTTPHeader(resp.Header)
	fmt.Printf("%s %s (%d bytes) trace=%s\n", resp.Status, target, n, returned.TraceID)
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}
