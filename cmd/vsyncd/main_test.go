// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestProbeCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[offscreen.screens]]\nname = \"main\"\nrefresh_rate = 144\n"), 0o644))
	out, err := run(t, "probe", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "refresh rate: 144 fps")
	assert.Contains(t, out, "period: 6944444 ns")
}

func TestPaceCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[offscreen.screens]]\nname = \"main\"\nrefresh_rate = 500\n"), 0o644))
	out, err := run(t, "pace", "-c", path, "-n", "5", "--fps", "250")
	require.NoError(t, err)
	assert.Contains(t, out, "frames: 5")
	assert.Contains(t, out, "period: 4ms")
}

func TestUnknownDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))
	_, err := run(t, "probe", "-c", path, "--driver", "vulkan")
	assert.ErrorContains(t, err, "unknown driver")
}
