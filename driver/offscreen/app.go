// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package offscreen provides a simulated host for vsync pacing:
// in-memory screens and a software frame clock paced at the refresh
// rate of the primary screen. It is used for testing and on machines
// without a display.
package offscreen

import (
	"context"
	"log/slog"
	"time"

	"cogentcore.org/vsync"
	"cogentcore.org/vsync/clock"
	"cogentcore.org/vsync/monitor"
)

// DefaultRefreshRate is the frame clock rate used while the
// primary screen has no valid refresh rate.
const DefaultRefreshRate = 60

// Host is the offscreen platform.
type Host struct {
	screens *Screens
	loop    *clock.Loop
	ticker  *clock.Ticker
	pacer   *monitor.Monitor
}

// NewHost returns a new [Host] with the given screens.
func NewHost(scs ...Screen) *Host {
	return NewHostFor(NewScreens(scs...))
}

// NewHostFor returns a new [Host] for existing screens.
// The frame clock follows the primary screen.
func NewHostFor(s *Screens) *Host {
	h := &Host{screens: s, loop: clock.NewLoop()}
	h.ticker = clock.NewTicker(h.loop, periodOf(DefaultRefreshRate))
	if fps, err := s.RefreshRate(s.Primary()); err == nil {
		h.ticker.Reset(periodOf(fps))
	}
	h.pacer = monitor.New(s, func(fps float32) {
		h.ticker.Reset(periodOf(fps))
	})
	return h
}

// periodOf returns the frame period for fps, or 0 if fps is
// not a valid refresh rate.
func periodOf(fps float32) time.Duration {
	p, err := vsync.PeriodOf(fps)
	if err != nil {
		return 0
	}
	return p.Duration()
}

// Displays returns the screens as [monitor.Displays].
func (h *Host) Displays() monitor.Displays {
	return h.screens
}

// Screens returns the simulated screens.
func (h *Host) Screens() *Screens {
	return h.screens
}

// Loop returns the loop owning the frame clock.
func (h *Host) Loop() *clock.Loop {
	return h.loop
}

// Source returns the frame clock.
func (h *Host) Source() clock.Source {
	return h.ticker
}

// Run runs the frame clock on the calling goroutine until ctx is done.
func (h *Host) Run(ctx context.Context) error {
	if err := h.pacer.Register(); err != nil {
		return err
	}
	defer h.pacer.Unregister()
	slog.Info("offscreen: frame clock running", "period", h.ticker.Period())
	h.ticker.Start(ctx)
	return h.loop.Run(ctx, h.ticker)
}
