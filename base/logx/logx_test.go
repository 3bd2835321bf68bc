// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger(t *testing.T) {
	UserLevel = slog.LevelDebug
	SetDefaultLogger()

	slog.Debug("this is debug")
	slog.Info("this is info")
	slog.Warn("this is warn")
}

func TestHandlerLevel(t *testing.T) {
	var b bytes.Buffer
	l := slog.New(NewHandler(&b, slog.LevelWarn))
	l.Info("hidden")
	l.Warn("shown", "fps", 60)
	assert.NotContains(t, b.String(), "hidden")
	assert.Contains(t, b.String(), "level=WARN")
	assert.Contains(t, b.String(), "fps=60")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	assert.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = ParseLevel("warning")
	assert.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
