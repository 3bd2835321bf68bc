// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver selects the vsync host for the current platform
// and configuration.
package driver

import (
	"context"
	"fmt"
	"testing"

	"cogentcore.org/vsync/clock"
	"cogentcore.org/vsync/config"
	"cogentcore.org/vsync/driver/displayfile"
	"cogentcore.org/vsync/driver/offscreen"
	"cogentcore.org/vsync/monitor"
)

// Host is a platform that provides displays and a frame clock.
type Host interface {

	// Displays returns the display subsystem of the host.
	Displays() monitor.Displays

	// Loop returns the loop owning the frame clock. Vsync requests
	// are submitted to it from any goroutine.
	Loop() *clock.Loop

	// Run runs the frame clock on the calling goroutine until ctx is
	// done. On the desktop host it must be called on the main thread.
	Run(ctx context.Context) error
}

// New returns the host named by cfg.Driver. Tests always get the
// offscreen host, except when they ask for the file driver.
func New(cfg *config.Config) (Host, error) {
	name := cfg.Driver
	if testing.Testing() && name == "desktop" {
		name = "offscreen"
	}
	switch name {
	case "offscreen":
		scs := make([]offscreen.Screen, len(cfg.Offscreen.Screens))
		for i, sc := range cfg.Offscreen.Screens {
			scs[i] = offscreen.Screen{Name: sc.Name, RefreshRate: sc.RefreshRate}
		}
		if len(scs) == 0 {
			scs = append(scs, offscreen.Screen{Name: "main", RefreshRate: offscreen.DefaultRefreshRate})
		}
		return offscreen.NewHost(scs...), nil
	case "file":
		h, err := displayfile.NewHost(cfg.DisplayFile)
		if err != nil {
			return nil, err
		}
		return h, nil
	case "desktop":
		return newDesktop()
	}
	return nil, fmt.Errorf("driver: unknown driver %q", cfg.Driver)
}
