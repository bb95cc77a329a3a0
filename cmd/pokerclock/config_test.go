package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytelemetry/pokerclock/internal/model"
	"github.com/tinytelemetry/pokerclock/internal/validate"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTickInterval, cfg.TickInterval)
	assert.Equal(t, model.DefaultSkin, cfg.Skin)
	assert.Equal(t, model.DefaultClockStyle, cfg.ClockStyle)
	assert.Equal(t, model.DefaultFontSize, cfg.FontSize)
	assert.Equal(t, model.DefaultRenderWidth, cfg.RenderWidth)
	assert.Equal(t, model.DefaultRenderHeight, cfg.RenderHeight)
	assert.Empty(t, cfg.ContentFile)
	assert.True(t, cfg.layout().Empty())
	assert.Contains(t, cfg.LogFile, filepath.Join(".local", "state", "pokerclock"))
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
skin: casino
tick-interval: 250ms
clock-style: 12h
layout:
  - "a b"
  - "a c"
`), 0o644))
	t.Setenv("POKERCLOCK_SKIN", "night")
	t.Setenv("POKERCLOCK_RENDER_WIDTH", "800")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "night", cfg.Skin)
	assert.Equal(t, 800, cfg.RenderWidth)
	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, "12h", cfg.ClockStyle)
	assert.Equal(t, []string{"a b", "a c"}, cfg.layout().Areas)
}

func TestLoadConfig_RejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("clock-style: 36h\nfont-size: 0\n"), 0o644))

	_, err := loadConfig(path)
	require.ErrorIs(t, err, validate.ErrInvalid)
	assert.Contains(t, err.Error(), "clock-style")
	assert.Contains(t, err.Error(), "36h")
	assert.Contains(t, err.Error(), "font-size")
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("skin: [unterminated\n"), 0o644))

	_, err := loadConfig(path)
	require.Error(t, err)
}
