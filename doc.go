// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package vsync paces a rendering engine to the vertical sync of the
host display, so that draw work is released exactly once per refresh
interval.

A [Coordinator] owns the authoritative refresh [Period]. The engine
asks it to wait for the next vsync with [Coordinator.RequestVsync],
passing an opaque cookie. The request is marshaled onto the goroutine
that owns the platform frame clock (a [clock.Loop]), which schedules a
one-shot [clock.Task] on its [clock.Source]. At the next frame boundary
the coordinator computes how late the delivery is and calls
[Engine.OnVsync] with the delay, the current period, and the cookie.

The period comes either from an explicit rate ([Coordinator.Init]) or
from the primary display ([Coordinator.InitDisplay]), in which case a
[monitor.Monitor] keeps it current as the display changes. When both
are used, the last write wins.

Typical use with the offscreen driver:

	host := offscreen.NewHost(offscreen.Screen{Name: "main", RefreshRate: 60})
	c := vsync.New(engine, host.Loop())
	if err := c.InitDisplay(host.Displays()); err != nil {
		return err
	}
	go host.Run(ctx)
	c.RequestVsync(42) // engine.OnVsync(delay, 16666667, 42) at the next frame
*/
package vsync
