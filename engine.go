// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vsync

// Engine is the rendering engine that a [Coordinator] paces.
type Engine interface {

	// OnVsync is called once for every [Coordinator.RequestVsync],
	// with the time elapsed since the frame boundary, the current
	// frame period (0 if it is not known yet), both in nanoseconds,
	// and the cookie passed to RequestVsync. It is called on the
	// goroutine that owns the frame clock and should return quickly.
	OnVsync(delay, period, cookie uint64)

	// SetRefreshRate is called whenever the coordinator
	// applies a new refresh rate.
	SetRefreshRate(fps float32)
}

// EngineFuncs is an [Engine] made from functions.
// Nil functions are skipped.
type EngineFuncs struct {
	Vsync       func(delay, period, cookie uint64)
	RefreshRate func(fps float32)
}

func (e EngineFuncs) OnVsync(delay, period, cookie uint64) {
	if e.Vsync != nil {
		e.Vsync(delay, period, cookie)
	}
}

func (e EngineFuncs) SetRefreshRate(fps float32) {
	if e.RefreshRate != nil {
		e.RefreshRate(fps)
	}
}
