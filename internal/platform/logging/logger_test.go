package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNewHandler_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, "warn", "JSON"))

	logger.Info("dropped")
	logger.Warn("listings refresh failed", "count", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "listings refresh failed", entry["msg"])
	assert.EqualValues(t, 3, entry["count"])
}

func TestNewHandler_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, "debug", "text"))
	logger.Debug("hello", "symbol", "AAPL")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "symbol=AAPL")
}
