// gallery publishes a folder as a static HTML page.
//
// It scans the source folder (override with GALLERY_SRC; default "uploads"),
// copies every file into docs/files, and writes docs/index.html with an
// inline preview and download link per file, ready for any static host.
// No arguments, no flags: one run, one page.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gitlab.com/efronlicht/enve"
	"gitlab.com/efronlicht/gallery/site"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	logger := setupLogger()
	defer logger.Sync()
	if err := run(logger); err != nil {
		log.Fatal(err)
	}
}

func setupLogger() *zap.Logger {
	// structured logs go to stderr; stdout is reserved for the one-line
	// status the tool prints when it finishes.
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
	return logger
}

func run(logger *zap.Logger) error {
	src := enve.StringOr("GALLERY_SRC", "uploads")
	logger = logger.With(zap.Stringer("run_id", uuid.New()), zap.String("src", src))

	start := time.Now()
	res, err := site.Build(logger, site.DefaultPaths(src))
	if err != nil {
		return err
	}
	logger.Info("done", zap.Duration("elapsed", time.Since(start)))

	if res.SrcMissing {
		fmt.Printf("Source folder not found: %s\n", src)
		return nil
	}
	fmt.Printf("wrote %s from %s\n", res.IndexPath, src)
	return nil
}
