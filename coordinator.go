// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vsync

import (
	"fmt"
	"log/slog"
	"math"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"cogentcore.org/vsync/clock"
	"cogentcore.org/vsync/monitor"
)

// Coordinator bridges vsync requests from an [Engine] to a platform
// frame clock, and holds the authoritative refresh [Period].
// All of its methods are safe for concurrent use and never block.
type Coordinator struct {
	engine Engine
	loop   *clock.Loop
	now    func() int64

	// period and fps are published atomically; they are written
	// by Init and the monitor, and read by every delivery.
	period atomic.Int64
	fps    atomic.Uint32

	// mu guards monitor installation and Reset.
	mu      sync.Mutex
	monitor *monitor.Monitor
}

var _ clock.Target = (*Coordinator)(nil)

// Option configures a [Coordinator].
type Option func(c *Coordinator)

// WithNow sets the function used to read the current monotonic time
// in nanoseconds when computing delivery delays. It defaults to [clock.Now].
func WithNow(now func() int64) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

// New returns a new [Coordinator] delivering to the given engine,
// scheduling on the frame clock owned by the given loop.
// The period is [Unknown] until [Coordinator.Init] or
// [Coordinator.InitDisplay] is called.
func New(engine Engine, loop *clock.Loop, opts ...Option) *Coordinator {
	c := &Coordinator{engine: engine, loop: loop, now: clock.Now}
	c.period.Store(int64(Unknown))
	for _, o := range opts {
		o(c)
	}
	return c
}

// Period returns the current refresh period.
func (c *Coordinator) Period() Period {
	return Period(c.period.Load())
}

// RefreshRate returns the refresh rate the current period was derived
// from, or 0 if it is not known.
func (c *Coordinator) RefreshRate() float32 {
	return math.Float32frombits(c.fps.Load())
}

// Init sets the refresh rate explicitly. It returns an error wrapping
// [ErrInvalidRate], and keeps the previous period, if fps is not a
// finite positive number. It may be called any number of times.
func (c *Coordinator) Init(fps float32) error {
	if err := c.setRate(fps); err != nil {
		slog.Warn("vsync: rejected refresh rate", "fps", fps)
		return err
	}
	return nil
}

// InitDisplay takes the refresh rate from the primary display of d
// and keeps it current as d reports changes. The display listener is
// registered only once, before the primary display is measured, so no
// change is missed in between; later calls only measure again if the
// period is still unknown. If registering or measuring fails, the error
// is returned and no listener installed by this call is left behind.
func (c *Coordinator) InitDisplay(d monitor.Displays) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	measure := !c.Period().Known()
	installed := false
	if c.monitor == nil {
		m := monitor.New(d, c.OnRefreshRateChanged)
		if err := m.Register(); err != nil {
			return fmt.Errorf("vsync: registering display listener: %w", err)
		}
		c.monitor = m
		installed = true
	}
	if !measure {
		return nil
	}
	if c.Period().Known() {
		// the listener already delivered a rate while registering
		return nil
	}
	primary := d.Primary()
	fps, err := d.RefreshRate(primary)
	if err == nil {
		err = c.setRate(fps)
	} else {
		err = fmt.Errorf("vsync: reading refresh rate of display %d: %w", primary, err)
	}
	if err != nil && installed {
		c.monitor.Unregister()
		c.monitor = nil
	}
	return err
}

// OnRefreshRateChanged applies a new refresh rate reported by the host.
// Invalid rates are logged and dropped.
func (c *Coordinator) OnRefreshRateChanged(fps float32) {
	if err := c.setRate(fps); err != nil {
		slog.Warn("vsync: ignoring refresh rate change", "fps", fps, "err", err)
	}
}

func (c *Coordinator) setRate(fps float32) error {
	p, err := PeriodOf(fps)
	if err != nil {
		return err
	}
	c.period.Store(int64(p))
	c.fps.Store(math.Float32bits(fps))
	slog.Debug("vsync: refresh rate", "fps", fps, "period", p)
	c.notifyRate(fps)
	return nil
}

// RequestVsync asks for a single [Engine.OnVsync] call with the given
// cookie at the next frame boundary. It returns immediately and may be
// called from any goroutine. There is no timeout and no cancellation.
func (c *Coordinator) RequestVsync(cookie uint64) {
	c.loop.Submit(clock.Task{Cookie: cookie, Target: c})
}

// DeliverVsync is called by the frame clock at the frame boundary for
// a request. It delivers the delay since frameTime, clamped at zero
// for frame times in the future, along with the current period.
func (c *Coordinator) DeliverVsync(frameTime int64, cookie uint64) {
	delay := c.now() - frameTime
	if delay < 0 {
		delay = 0
	}
	period := c.period.Load()
	if period < 0 {
		period = 0
	}
	c.deliver(uint64(delay), uint64(period), cookie)
}

// deliver isolates the engine: a panic while consuming one vsync
// must not take down the frame clock serving the other requests.
func (c *Coordinator) deliver(delay, period, cookie uint64) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("vsync: engine panicked in OnVsync", "cookie", cookie, "panic", r, "stack", string(debug.Stack()))
		}
	}()
	c.engine.OnVsync(delay, period, cookie)
}

func (c *Coordinator) notifyRate(fps float32) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("vsync: engine panicked in SetRefreshRate", "fps", fps, "panic", r)
		}
	}()
	c.engine.SetRefreshRate(fps)
}

// Reset removes the display listener and forgets the refresh rate.
// It is intended for tests that reuse a coordinator.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.monitor != nil {
		c.monitor.Unregister()
		c.monitor = nil
	}
	c.period.Store(int64(Unknown))
	c.fps.Store(0)
}

// Listening returns whether a display listener is installed.
func (c *Coordinator) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.monitor != nil
}
