// server serves a generated gallery (the docs/ tree) over HTTP for local
// inspection before publishing. It is read-only and GET-only; run cmd/gallery
// first to produce the docs tree.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"gitlab.com/efronlicht/enve"
	"gitlab.com/efronlicht/gallery/observability/http/tracemw"
	"gitlab.com/efronlicht/gallery/observability/meta"
	"gitlab.com/efronlicht/gallery/server/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var start = time.Now()

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT)
	if err := Run(ctx); err != nil {
		cancel()
		log.Fatal(err)
	}
	cancel()
	log.Println("successful shutdown")
}

func setupLogger() *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeDuration = zapcore.NanosDurationEncoder
	logger := zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		&zapcore.BufferedWriteSyncer{WS: os.Stderr, FlushInterval: time.Second},
		zapcore.DebugLevel,
	))
	zap.ReplaceGlobals(logger)
	zap.RedirectStdLog(logger)
	logger.Info("initialized logger")
	go logger.Info("metadata dump", zap.Reflect("meta", Meta))
	return logger
}

// Run the preview server until ctx is cancelled.
func Run(ctx context.Context) error {
	logger := setupLogger()
	defer logger.Sync()

	docs := enve.StringOr("GALLERY_DOCS", "docs")
	if _, err := os.Stat(filepath.Join(docs, "index.html")); err != nil {
		logger.Warn("no generated gallery found; run cmd/gallery first", zap.String("docs", docs))
	}

	var router http.Handler // build router.
	{
		// three fixed routes plus static files: a plain handler beats a
		// routing framework here.
		router = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := strings.TrimSuffix(r.URL.Path, "/")
			switch {
			case r.Method != http.MethodGet:
				w.WriteHeader(http.StatusMethodNotAllowed)
			case p == "/debug/uptime":
				elapsed := time.Since(Meta.StartTime)
				_, _ = fmt.Fprintf(w, "%3vh %02vm %02vs", math.Floor(elapsed.Hours()), math.Floor(elapsed.Minutes()), math.Floor(elapsed.Seconds()))
			case p == "/debug/meta":
				writeMeta(w)
			case p == "":
				http.Redirect(w, r, "./index.html", http.StatusPermanentRedirect)
			default:
				// the stylesheet is the same fixed bytes every run; everything
				// else is rewritten per run, so don't let clients cache it.
				if strings.HasSuffix(p, "/site_assets/styles.css") {
					w.Header().Set("Cache-Control", "max-age=3600")
				} else {
					w.Header().Set("Cache-Control", "no-cache")
				}
				serveDocs(w, r, docs)
			}
		})
		// middleware executes Last-In, First-Out.
		router = middleware.WriteGzip(router)
		router = tracemw.Server(router, logger)
	}

	server := http.Server{
		Addr:         fmt.Sprintf(":%04d", enve.IntOr("PORT", 8080)),
		Handler:      router,
		ReadTimeout:  enve.DurationOr("READ_TIMEOUT", 2*time.Second),
		WriteTimeout: enve.DurationOr("WRITE_TIMEOUT", 5*time.Second),
		IdleTimeout:  enve.DurationOr("IDLE_TIMEOUT", time.Minute),
		// don't accept new connections if already shutting down
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}

	logger.Sugar().Infof("took %s to start", time.Since(start))
	logger.Info("serving gallery", zap.String("addr", server.Addr), zap.String("docs", docs))
	go server.ListenAndServe()
	<-ctx.Done() // wait for (ctrl+c)

	logger.Debug(fmt.Sprintf("%v: shutting down server in %s", ctx.Err(), 2*time.Second))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

// serveDocs maps the URL path onto the docs tree and serves the file. Paths
// that climb out of the docs root 404; a bare path whose .html twin exists
// gets redirected there, the way the gallery's own links expect.
func serveDocs(w http.ResponseWriter, r *http.Request, docs string) {
	p := path.Clean(strings.Trim(r.URL.Path, "/"))
	if p == "." || p == "" {
		p = "index.html"
	}
	if p == ".." || strings.HasPrefix(p, "../") {
		http.NotFound(w, r)
		return
	}
	full := filepath.Join(docs, filepath.FromSlash(p))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		if _, err := os.Stat(full + ".html"); err == nil { // they forgot .html: show them where to find it.
			http.Redirect(w, r, "./"+path.Base(p)+".html", http.StatusPermanentRedirect)
			return
		}
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, full)
}

func writeMeta(w http.ResponseWriter) {
	fds, _ := meta.OpenFileHandles()
	mem, _ := meta.MemInfo()
	b, err := json.Marshal(struct {
		App             any
		OpenFileHandles int
		MemKB           meta.MemStats
	}{Meta, fds, mem})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}

// Application Metadata: everything you might want to know about the running
// server, logged once at startup and served at /debug/meta.
var Meta = struct {
	AppName    string
	InstanceID string // unique per server process
	StartTime  time.Time
	OS         struct {
		Host string
		PID  int
	}
	Runtime struct{ GOARCH, GOOS, Version string }
}{
	AppName:    "efronlicht/gallery/server",
	InstanceID: uuid.New().String(),
	StartTime:  time.Now(),
	OS: struct {
		Host string
		PID  int
	}{
		Host: must(os.Hostname()),
		PID:  os.Getpid(),
	},
	Runtime: struct{ GOARCH, GOOS, Version string }{
		GOARCH:  runtime.GOARCH,
		GOOS:    runtime.GOOS,
		Version: runtime.Version(),
	},
}

func must[T any](t T, err error) T {
	if err != nil {
		pc, file, line, _ := runtime.Caller(1)
		log.Panicf("%s: %s %04d: fatal err: %v", runtime.FuncForPC(pc).Name(), file, line, err)
	}
	return t
}
