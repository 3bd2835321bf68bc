// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/vsync/config"
	"cogentcore.org/vsync/driver/displayfile"
	"cogentcore.org/vsync/driver/offscreen"
)

func TestNewOffscreen(t *testing.T) {
	cfg := config.Default()
	cfg.Offscreen.Screens = []config.Screen{{Name: "a", RefreshRate: 75}, {Name: "b", RefreshRate: 30}}
	h, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &offscreen.Host{}, h)
	fps, err := h.Displays().RefreshRate(h.Displays().Primary())
	assert.NoError(t, err)
	assert.Equal(t, float32(75), fps)
	assert.NotNil(t, h.Loop())
}

func TestNewDesktopInTests(t *testing.T) {
	cfg := config.Default()
	cfg.Driver = "desktop"
	h, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &offscreen.Host{}, h)
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "displays.yaml")
	require.NoError(t, os.WriteFile(path, []byte("displays:\n  - id: 0\n    refresh_rate: 90\n"), 0o644))
	cfg := config.Default()
	cfg.Driver = "file"
	cfg.DisplayFile = path
	h, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &displayfile.Host{}, h)
	fps, err := h.Displays().RefreshRate(0)
	assert.NoError(t, err)
	assert.Equal(t, float32(90), fps)

	cfg.DisplayFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestNewUnknown(t *testing.T) {
	cfg := config.Default()
	cfg.Driver = "metal"
	_, err := New(cfg)
	assert.Error(t, err)
}
