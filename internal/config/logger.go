package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// levelColors maps a slog level name to its ANSI color code
var levelColors = map[string]string{
	"DEBUG": "90", // gray
	"INFO":  "32", // green
	"WARN":  "33", // yellow
	"ERROR": "31", // red
}

// InitLogger initializes the application logger based on configuration.
// The TUI owns stdout, so logs go to a rotated file unless File is "-".
func InitLogger(cfg *LoggingConfig) (*slog.Logger, error) {
	level := parseLogLevel(cfg.Level)

	if cfg.File == "" {
		cfg.File = filepath.Join(getStateDir(), "aniview", "aniview.log")
	}

	var writer io.Writer
	toConsole := cfg.File == "-"
	if toConsole {
		writer = os.Stderr
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		writer = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize, // megabytes
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge, // days
			Compress:   cfg.Compress,
		}
	}

	logger := slog.New(newHandler(writer, cfg.Format, level, cfg.Color && toConsole))
	slog.SetDefault(logger)

	return logger, nil
}

func newHandler(w io.Writer, format string, level slog.Level, color bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(format) {
	case "json":
		return slog.NewJSONHandler(w, opts)
	default:
		if color {
			return NewColoredTextHandler(w, opts)
		}
		return slog.NewTextHandler(w, opts)
	}
}

// ColoredTextHandler wraps slog.TextHandler to color the level for console output
type ColoredTextHandler struct {
	slog.Handler
}

// NewColoredTextHandler creates a new handler that adds colors for console output
func NewColoredTextHandler(w io.Writer, opts *slog.HandlerOptions) *ColoredTextHandler {
	return &ColoredTextHandler{Handler: slog.NewTextHandler(colorWriter{w}, opts)}
}

// colorWriter colors each text record by the value of its level field.
// slog.TextHandler emits a whole record per Write call.
type colorWriter struct {
	w io.Writer
}

func (c colorWriter) Write(p []byte) (int, error) {
	line := string(p)
	level := ""
	if _, after, ok := strings.Cut(line, "level="); ok {
		level, _, _ = strings.Cut(after, " ")
	}
	if _, err := io.WriteString(c.w, colorize(line, level)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// colorize wraps the first field of line (time=...) in the level's color
func colorize(line, level string) string {
	code, ok := levelColors[level]
	if !ok {
		return line
	}

	head, rest, found := strings.Cut(line, " ")
	colored := fmt.Sprintf("\033[%sm%s\033[0m", code, head)
	if !found {
		return colored
	}
	return colored + " " + rest
}

// parseLogLevel parses a log level string, defaulting to info
func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
