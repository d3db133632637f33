package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{name: "debug", input: "debug", expected: slog.LevelDebug},
		{name: "info", input: "info", expected: slog.LevelInfo},
		{name: "warn", input: "warn", expected: slog.LevelWarn},
		{name: "warning alias", input: "warning", expected: slog.LevelWarn},
		{name: "error", input: "error", expected: slog.LevelError},
		{name: "uppercase", input: "DEBUG", expected: slog.LevelDebug},
		{name: "empty defaults to info", input: "", expected: slog.LevelInfo},
		{name: "unknown defaults to info", input: "verbose", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestInitLogger_JSONCarriesService(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Level: "info", Format: "json", Service: "fraud-engine", Output: &buf})

	logger.Info("fraud analysis completed", "farmer_id", "F-1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "fraud-engine", line["service"])
	assert.Equal(t, "F-1", line["farmer_id"])
	assert.Equal(t, "fraud analysis completed", line["msg"])
}

func TestInitLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Level: "warn", Format: "text", Output: &buf})

	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestInitLogger_SetsDefault(t *testing.T) {
	logger := InitLogger(LogConfig{Level: "info", Format: "json", Output: &bytes.Buffer{}})
	assert.Equal(t, logger.Handler(), slog.Default().Handler())
}
