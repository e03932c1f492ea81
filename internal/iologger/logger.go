// Package iologger sets up the process-wide slog logger.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/odysseus-imc/capexdb/pkg/config"
)

// LogFile returns the log file used by the "file" destination.
func LogFile(logDir string) string {
	return filepath.Join(logDir, config.AppName+".log")
}

// Init replaces the default slog logger according to cfg. With the
// "file" destination, logs go to LogFile(logDir), which is appended
// to or truncated depending on keep.
func Init(logDir string, cfg config.LogConfig, keep bool) error {
	w, err := openWriter(logDir, cfg.Destination, keep)
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	var h slog.Handler = slog.NewJSONHandler(w, opts)
	if cfg.Format == "text" {
		h = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(h))
	return nil
}

func openWriter(logDir, dest string, keep bool) (io.Writer, error) {
	switch dest {
	case "stdout":
		return os.Stdout, nil
	case "file":
	default:
		return os.Stderr, nil
	}

	path := LogFile(logDir)
	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if keep {
		flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return nil, CreateLogFileError(path, err)
	}
	return f, nil
}

// parseLevel falls back to info for unknown names.
func parseLevel(name string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
