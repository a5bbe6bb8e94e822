package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Component: ComponentStore, Output: &buf})

	logger.Info("loaded", FieldCount, 3)

	out := buf.String()
	assert.Contains(t, out, "component=store")
	assert.Contains(t, out, "count=3")
	assert.Contains(t, out, "msg=loaded")
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Component: ComponentApp, Output: &buf})

	storage := logger.WithComponent(ComponentStorage)
	storage.Warn("slow write")

	assert.Equal(t, ComponentStorage, storage.Component())
	assert.Equal(t, ComponentApp, logger.Component())
	assert.Contains(t, buf.String(), "component=storage")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelInfo, cfg.Level)
	assert.Equal(t, ComponentApp, cfg.Component)
	assert.NotNil(t, cfg.Output)
	assert.Nil(t, cfg.Handler)
}

func TestWith_KeepsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Component: ComponentStore, Output: &buf})

	keyed := logger.With(FieldKey, "@expenses")
	keyed.Info("saved")

	assert.Equal(t, ComponentStore, keyed.Component())
	assert.Contains(t, buf.String(), "key=@expenses")
	assert.Contains(t, buf.String(), "component=store")

	buf.Reset()
	logger.Info("plain")
	assert.NotContains(t, buf.String(), "key=", "parent logger is unchanged")
}

func TestSetDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	SetDefault(New(Config{Level: slog.LevelInfo, Component: ComponentCLI, Output: &buf}))

	slog.Info("through the default")
	assert.Contains(t, buf.String(), "through the default")
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Component: ComponentApp, Output: &buf})

	logger.Info("hidden")
	logger.Debug("hidden too")
	assert.Empty(t, buf.String())

	logger.Error("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		require.NoError(t, err, "input: %q", tt.input)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
