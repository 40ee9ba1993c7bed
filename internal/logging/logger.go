// Package logging builds the zap logger used by the pathmark CLI.
// Output goes to stderr unless logging.file is configured; the default level
// is warn so ordinary commands print nothing but their result.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pathmark/internal/config"
)

// Category names the subsystem a log line belongs to.
type Category string

const (
	CategoryBoot   Category = "boot"   // config and logger setup
	CategoryStore  Category = "store"  // open/close of the bookmark database
	CategoryCLI    Category = "cli"    // command dispatch and outcomes
	CategoryPicker Category = "picker" // interactive selection
)

// New builds a logger from cfg writing to stderr, or to cfg.File when set.
// verbose forces debug level. Entries never carry stack traces; the CLI
// reports failures itself.
func New(cfg config.LoggingConfig, verbose bool, stderr io.Writer) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if cfg.Format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	errOut := zapcore.Lock(zapcore.AddSync(stderr))
	sink := errOut
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		ws, _, err := zap.Open(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		sink = ws
	}

	core := zapcore.NewCore(enc, sink, zap.NewAtomicLevelAt(level))
	return zap.New(core,
		zap.AddCaller(),
		zap.ErrorOutput(errOut),
		zap.Fields(zap.String("run", uuid.NewString())),
	), nil
}

// For returns a child logger tagged with category.
func For(logger *zap.Logger, category Category) *zap.Logger {
	return logger.With(zap.String("category", string(category)))
}

func parseLevel(s string) (zapcore.Level, error) {
	switch s {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "", "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.WarnLevel, fmt.Errorf("invalid log level: %s", s)
}
