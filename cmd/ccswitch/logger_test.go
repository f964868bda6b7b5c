package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		t.Run(level, func(t *testing.T) {
			SetupLogger(level)
			assert.NotNil(t, slog.Default())
		})
	}
}

func TestSetupLoggerJSON(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	SetupLoggerJSON("debug")
	assert.IsType(t, &slog.JSONHandler{}, slog.Default().Handler())
}
