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
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew(t *testing.T) {
	t.Run("text handler filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Options{Level: "warn", Output: &buf})
		logger.Info("hidden")
		logger.Warn("shown", "entries", 3)

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "msg=shown")
		assert.Contains(t, buf.String(), "entries=3")
	})

	t.Run("json handler", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Options{Level: "debug", Format: "json", Output: &buf})
		logger.Debug("rendered", "entries", 134)

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "rendered", rec["msg"])
		assert.Equal(t, float64(134), rec["entries"])
	})
}
