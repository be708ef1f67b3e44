package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasskit/glasskit/pkg/app"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	name := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(name, []byte(content), 0o600))

	return name
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := app.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1920, cfg.Width)
	assert.Equal(t, 1080, cfg.Height)
	assert.Equal(t, "Glasskit App", cfg.Title)
	assert.False(t, cfg.Fullscreen)
	assert.Empty(t, cfg.Icon)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	name := writeConfig(t, `
width: 800
height: 600
fullscreen: true
title: Editor
`)

	cfg, err := app.LoadConfig(name)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.True(t, cfg.Fullscreen)
	assert.Equal(t, "Editor", cfg.Title)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	// fields missing from the file keep their defaults
	name := writeConfig(t, `title: Bare`)

	cfg, err := app.LoadConfig(name)
	require.NoError(t, err)
	assert.Equal(t, 1920, cfg.Width)
	assert.Equal(t, 1080, cfg.Height)
	assert.Equal(t, "Bare", cfg.Title)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := app.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfigMalformed(t *testing.T) {
	t.Parallel()

	name := writeConfig(t, `width: [not a number`)

	_, err := app.LoadConfig(name)
	require.Error(t, err)
}

func TestLoadConfigInvalidSize(t *testing.T) {
	t.Parallel()

	name := writeConfig(t, `
width: -1
height: 600
`)

	_, err := app.LoadConfig(name)
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrInvalidConfig)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := app.DefaultConfig()
	cfg.Height = 0

	_, err := app.New(cfg, app.BaseState{})
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrInvalidConfig)
}

func TestNewSeedsContext(t *testing.T) {
	t.Parallel()

	a, err := app.New(app.DefaultConfig(), app.BaseState{})
	require.NoError(t, err)

	c := a.Context()
	require.NotNil(t, c.World)
	require.NotNil(t, c.Events)
	require.NotNil(t, c.Logger)
	assert.Equal(t, 1920, c.Width)
	assert.Equal(t, 1080, c.Height)
}
