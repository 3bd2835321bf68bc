// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package desktop implements the desktop vsync host on top of glfw.
// The frame clock is a hidden window with a swap interval of one, so
// that each buffer swap returns at a vertical blank of the primary
// monitor.
package desktop

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"cogentcore.org/vsync/clock"
	"cogentcore.org/vsync/monitor"
)

func init() {
	// some operating systems require us to be on the main thread
	runtime.LockOSThread()
}

// PollInterval is how often the video modes of the monitors are
// re-read while running, since glfw only reports connection changes.
var PollInterval = time.Second

// Host is the desktop platform.
type Host struct {
	screens Screens
	loop    *clock.Loop

	// swapWin is a non-visible window whose buffer swaps wait for vsync.
	swapWin *glfw.Window

	// pending is only touched on the main thread.
	pending []clock.Task
}

// NewHost initializes glfw and returns a new [Host].
// It must be called on the main thread.
func NewHost() (*Host, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("desktop: failed to initialize glfw: %w", err)
	}
	h := &Host{loop: clock.NewLoop()}
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	var err error
	h.swapWin, err = glfw.CreateWindow(16, 16, "vsync", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("desktop: failed to create hidden swap window: %w", err)
	}
	h.swapWin.MakeContextCurrent()
	glfw.SwapInterval(1)

	h.screens.Update()
	glfw.SetMonitorCallback(h.screens.monitorChange)
	h.loop.SetWaker(glfw.PostEmptyEvent)
	return h, nil
}

// Displays returns the glfw monitors as [monitor.Displays].
func (h *Host) Displays() monitor.Displays {
	return &h.screens
}

// Loop returns the loop owning the frame clock.
func (h *Host) Loop() *clock.Loop {
	return h.loop
}

// ScheduleOnce implements [clock.Source].
func (h *Host) ScheduleOnce(t clock.Task) {
	h.pending = append(h.pending, t)
}

// Run runs the event loop and frame clock on the main thread until
// ctx is done, then terminates glfw. While no vsync is pending it
// sleeps in glfw.WaitEventsTimeout instead of swapping.
func (h *Host) Run(ctx context.Context) error {
	defer glfw.Terminate()
	stop := context.AfterFunc(ctx, glfw.PostEmptyEvent)
	defer stop()

	slog.Info("desktop: frame clock running", "poll", PollInterval)
	lastPoll := time.Now()
	for ctx.Err() == nil {
		h.loop.Drain(h)
		if len(h.pending) == 0 {
			glfw.WaitEventsTimeout(PollInterval.Seconds())
		} else {
			h.swapWin.SwapBuffers()
			h.frame(clock.Now())
			glfw.PollEvents()
		}
		if time.Since(lastPoll) >= PollInterval {
			h.screens.Update()
			lastPoll = time.Now()
		}
	}
	return ctx.Err()
}

// frame fires every task pending at the boundary. Tasks submitted
// while firing are drained for the next boundary.
func (h *Host) frame(ts int64) {
	fire := h.pending
	h.pending = nil
	for _, t := range fire {
		t.Fire(ts)
	}
}
