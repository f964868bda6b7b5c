// Package logging configures the process-wide slog default shared by every
// command. Text output goes through charmbracelet/log for readable terminal
// rendering; JSON output uses the stock slog handler.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// levelDetail resolves a level name to the slog level plus the verbosity
// extras turned on at trace level: caller reporting and timestamps.
func levelDetail(logLevel string) (level slog.Level, caller, timestamp bool) {
	switch strings.ToLower(logLevel) {
	case "trace":
		return slog.LevelDebug, true, true
	case "debug":
		return slog.LevelDebug, false, true
	case "warn", "warning":
		return slog.LevelWarn, false, false
	case "error":
		return slog.LevelError, false, false
	default:
		return slog.LevelInfo, false, false
	}
}

// SetupHandlerText configures a text slog handler with the provided writer and log level
func SetupHandlerText(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	level, reportCaller, reportTimestamp := levelDetail(logLevel)
	lvl := log.InfoLevel
	switch level {
	case slog.LevelDebug:
		lvl = log.DebugLevel
	case slog.LevelWarn:
		lvl = log.WarnLevel
	case slog.LevelError:
		lvl = log.ErrorLevel
	}

	return log.NewWithOptions(writer, log.Options{
		ReportTimestamp: reportTimestamp,
		ReportCaller:    reportCaller,
		Level:           lvl,
	})
}

// SetupHandlerJSON configures a JSON slog handler with the provided writer and log level
func SetupHandlerJSON(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stdout
	}

	level, reportCaller, _ := levelDetail(logLevel)
	return slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level:     level,
		AddSource: reportCaller,
	})
}

// SetupLogger configures the default logger based on provided log level
func SetupLogger(logLevel string) {
	handler := SetupHandlerText(logLevel, nil)
	slog.SetDefault(slog.New(handler))
}
