// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
driver = "offscreen"
fps = 120
listen = ":9000"

[[offscreen.screens]]
name = "left"
refresh_rate = 144

[[offscreen.screens]]
name = "right"
refresh_rate = 60
`), 0o644))

	cfg, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, float32(120), cfg.FPS)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []Screen{{"left", 144}, {"right", 60}}, cfg.Offscreen.Screens)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestOpenInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`driver = "vulkan"`), 0o644))
	_, err := Open(path)
	assert.ErrorContains(t, err, "unknown driver")

	require.NoError(t, os.WriteFile(path, []byte(`driver = `), 0o644))
	_, err = Open(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.Driver = "file"
	assert.ErrorContains(t, cfg.Validate(), "display_file")
	cfg.DisplayFile = "displays.yaml"
	assert.NoError(t, cfg.Validate())

	cfg.FPS = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Offscreen.Screens = nil
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.FPS = 90
	require.NoError(t, cfg.Save(path))
	got, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
