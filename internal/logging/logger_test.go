package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("level filter and no time", func(t *testing.T) {
		var buf bytes.Buffer
		log := newLogger(&buf, "warn", false)
		log.Info("hidden")
		log.Warn("shown", "network", "kovan")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "msg=shown network=kovan")
		assert.NotContains(t, out, "time=")
	})

	t.Run("debug adds source", func(t *testing.T) {
		var buf bytes.Buffer
		log := newLogger(&buf, "error", true)
		log.Debug("details")

		assert.Contains(t, buf.String(), "msg=details")
		assert.Contains(t, buf.String(), "source=")
	})
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/usecase/registry.go", shortPath("/home/dev/fundops/internal/usecase/registry.go"))
	assert.Equal(t, "main.go", shortPath("/tmp/build/main.go"))
}
