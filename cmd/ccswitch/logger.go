package main

import (
	"log/slog"

	"github.com/ccswitch/ccswitch/internal/logging"
)

// SetupLogger configures the default logger based on provided log level
func SetupLogger(logLevel string) {
	logging.SetupLogger(logLevel)
}

// SetupLoggerJSON switches the default logger to structured JSON output
func SetupLoggerJSON(logLevel string) {
	slog.SetDefault(slog.New(logging.SetupHandlerJSON(logLevel, nil)))
}
