package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: slog.LevelWarn, Writer: &buf})

	log.Info("dropped")
	log.Warn("skipping invalid row", "entity", "TenderDTO")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "skipping invalid row", line["msg"])
	assert.Equal(t, "TenderDTO", line["entity"])
	assert.Equal(t, "WARN", line["level"])
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Format: "console", Writer: &buf})
	log.Info("fetched pipeline", "count", 3)

	out := buf.String()
	assert.Contains(t, out, "fetched pipeline")
	assert.Contains(t, out, "count=3")
	assert.NotContains(t, out, "\x1b[", "no color when not a terminal")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"":      slog.LevelInfo,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
