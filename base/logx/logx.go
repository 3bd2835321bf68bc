// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the default [slog.Handler] used by the vsync
// daemon and its drivers, with colored level output on terminals.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity [slog.Level] that the user has selected.
// It defaults to [slog.LevelInfo], [slog.LevelDebug] with the debug
// build tag, and [slog.LevelWarn] with the release build tag.
var UserLevel = defaultUserLevel

// SetDefaultLogger sets the default logger to a [slog.TextHandler]
// writing to stderr at [UserLevel], with colored levels when stderr
// is a terminal. It should be called once at program start.
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, UserLevel)))
}

// NewHandler returns a text handler writing to w at the given level.
// Level names are colored according to the color profile of w.
func NewHandler(w io.Writer, level slog.Level) slog.Handler {
	out := termenv.NewOutput(w)
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 || a.Key != slog.LevelKey {
				return a
			}
			lvl, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}
			a.Value = slog.StringValue(colorLevel(out, lvl))
			return a
		},
	})
}

func colorLevel(out *termenv.Output, lvl slog.Level) string {
	s := lvl.String()
	if out.Profile == termenv.Ascii {
		return s
	}
	var c termenv.Color
	switch {
	case lvl >= slog.LevelError:
		c = out.Color("1")
	case lvl >= slog.LevelWarn:
		c = out.Color("3")
	case lvl >= slog.LevelInfo:
		c = out.Color("4")
	default:
		c = out.Color("8")
	}
	return out.String(s).Foreground(c).String()
}

// ParseLevel parses a level name (debug, info, warn, error), case
// insensitively. An empty string returns [UserLevel].
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return UserLevel, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return UserLevel, fmt.Errorf("logx: unknown log level %q", s)
}
