// Package iologger configures the process-wide slog logger.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/proteotype/proteodb/pkg/config"
)

// Init installs the default slog logger according to cfg. With the
// "file" destination the log goes to cfg.File when set, otherwise to
// proteodb.log inside logDir; the file is truncated on every run so it
// holds the latest invocation only.
func Init(logDir string, cfg config.LogConfig) error {
	w, err := destination(logDir, cfg)
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{Level: level(cfg.Level)}

	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(h))
	return nil
}

func destination(logDir string, cfg config.LogConfig) (io.Writer, error) {
	switch cfg.Destination {
	case "stdout":
		return os.Stdout, nil
	case "file":
		path := cfg.File
		if path == "" {
			path = filepath.Join(logDir, "proteodb.log")
		}
		f, err := os.Create(path)
		if err != nil {
			return nil, CreateLogFileError(path, err)
		}
		return f, nil
	default:
		// "stderr" and anything unrecognized
		return os.Stderr, nil
	}
}

func level(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
