package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Development(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "development", "debug")
	logger.Debug("extracting", "file", "essay.docx")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "file=essay.docx")
}

func TestNew_Production(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "production", "warn")
	logger.Info("dropped")
	logger.Warn("kept", "rule", "formatting")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "formatting", record["rule"])
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"DEBUG": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(t.Context(), slog.LevelError))
}

func TestContext(t *testing.T) {
	assert.NotNil(t, FromContext(t.Context()))

	logger := New(&bytes.Buffer{}, "development", "info")
	ctx := WithContext(t.Context(), logger)
	assert.Same(t, logger, FromContext(ctx))
}
