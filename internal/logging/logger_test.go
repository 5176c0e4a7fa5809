package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    slog.Level
		wantErr bool
	}{
		{raw: "debug", want: slog.LevelDebug},
		{raw: "INFO", want: slog.LevelInfo},
		{raw: "", want: slog.LevelInfo},
		{raw: "warning", want: slog.LevelWarn},
		{raw: " warn ", want: slog.LevelWarn},
		{raw: "error", want: slog.LevelError},
		{raw: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseLevel(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "debug", Format: "json"})
	require.NoError(t, err)

	logger.Debug("entitlements operation finished", slog.String("operation", "GetExternalId"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "entitlements operation finished", record["msg"])
	assert.Equal(t, "GetExternalId", record["operation"])
}

func TestNewTextLoggerHonoursLevelWithoutColour(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "warn"})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", slog.Any("error", errors.New("boom")))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "\x1b[")
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	t.Parallel()

	_, err := New(&bytes.Buffer{}, Options{Format: "xml"})
	require.Error(t, err)

	_, err = New(&bytes.Buffer{}, Options{Level: "loud"})
	require.Error(t, err)
}
