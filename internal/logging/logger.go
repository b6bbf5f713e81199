package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/Fantasim/netbalance/internal/config"
)

// Options controls where log records go.
type Options struct {
	Level string
	Dir   string
	// Console mirrors records to stdout as colored text. Terminal commands
	// that draw their own output turn this off and log to the file only.
	Console bool
}

// Setup initializes the global slog logger writing JSON records to a daily
// log file and, optionally, human-readable records to stdout. The returned
// io.Closer closes the file.
func Setup(opts Options) (io.Closer, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level %q: %w", opts.Level, err)
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %q: %w", opts.Dir, err)
	}

	filename := FileName(time.Now())
	logFilePath := filepath.Join(opts.Dir, filename)

	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
	}

	var handler slog.Handler = slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: level,
	})
	if opts.Console {
		handler = fanout{
			tint.NewHandler(os.Stdout, &tint.Options{
				Level:      level,
				TimeFormat: time.RFC3339,
			}),
			handler,
		}
	}

	slog.SetDefault(slog.New(handler))

	slog.Info("logging initialized",
		"level", opts.Level,
		"logDir", opts.Dir,
		"logFile", filename,
		"console", opts.Console,
	)

	removed := CleanOldLogs(opts.Dir, config.LogMaxAgeDays)
	if removed > 0 {
		slog.Info("cleaned old log files", "removed", removed, "maxAgeDays", config.LogMaxAgeDays)
	}

	return file, nil
}

// FileName returns the daily log file name for t.
func FileName(t time.Time) string {
	return config.LogFilePrefix + t.Format("2006-01-02") + ".log"
}

// CleanOldLogs deletes log files in logDir that are older than maxAgeDays.
// Returns the number of files removed.
func CleanOldLogs(logDir string, maxAgeDays int) int {
	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)
	removed := 0

	entries, err := os.ReadDir(logDir)
	if err != nil {
		slog.Warn("failed to read log directory for cleanup", "logDir", logDir, "error", err)
		return 0
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, config.LogFilePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			fullPath := filepath.Join(logDir, name)
			if err := os.Remove(fullPath); err != nil {
				slog.Warn("failed to remove old log file", "file", fullPath, "error", err)
			} else {
				removed++
			}
		}
	}

	return removed
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}
