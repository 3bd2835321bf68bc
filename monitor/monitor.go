// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package monitor translates host display notifications into
// refresh rate updates for the primary display.
package monitor

import (
	"log/slog"
	"sync"

	"cogentcore.org/vsync/base/errors"
)

// ErrRegistered is returned by [Monitor.Register] when the
// monitor is already registered with its displays.
var ErrRegistered = errors.New("monitor: already registered")

// Displays is the host display subsystem.
type Displays interface {

	// Primary returns the id of the primary display.
	Primary() int

	// RefreshRate returns the current refresh rate of the
	// given display, in frames per second.
	RefreshRate(id int) (float32, error)

	// AddListener registers l for display notifications.
	AddListener(l Listener) error

	// RemoveListener unregisters l. It is a no-op if l
	// is not registered.
	RemoveListener(l Listener)
}

// Listener receives display notifications from [Displays].
// Notifications may arrive on any goroutine.
type Listener interface {
	DisplayAdded(id int)
	DisplayRemoved(id int)
	DisplayChanged(id int)
}

// Monitor is a [Listener] that watches the primary display of
// a [Displays] and reports its refresh rate on every primary
// display notification, including ones that repeat the last rate.
type Monitor struct {
	displays Displays
	onRate   func(fps float32)

	mu         sync.Mutex
	registered bool
}

var _ Listener = (*Monitor)(nil)

// New returns a new [Monitor] for the given displays that calls
// onRate with the new refresh rate of the primary display.
// It does not receive notifications until [Monitor.Register].
func New(d Displays, onRate func(fps float32)) *Monitor {
	return &Monitor{displays: d, onRate: onRate}
}

// Register registers the monitor with its displays. A monitor
// can only be registered once at a time.
func (m *Monitor) Register() error {
	m.mu.Lock()
	if m.registered {
		m.mu.Unlock()
		return ErrRegistered
	}
	m.registered = true
	m.mu.Unlock()

	if err := m.displays.AddListener(m); err != nil {
		m.mu.Lock()
		m.registered = false
		m.mu.Unlock()
		return err
	}
	return nil
}

// Unregister removes the monitor from its displays. Notifications
// that are already in flight are dropped.
func (m *Monitor) Unregister() {
	m.mu.Lock()
	was := m.registered
	m.registered = false
	m.mu.Unlock()
	if was {
		m.displays.RemoveListener(m)
	}
}

// Registered returns whether the monitor is registered.
func (m *Monitor) Registered() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registered
}

// DisplayAdded re-reads the primary display when a display
// takes the primary id.
func (m *Monitor) DisplayAdded(id int) {
	m.update(id)
}

// DisplayRemoved is ignored: removing a display does not
// change the refresh rate of the primary display.
func (m *Monitor) DisplayRemoved(id int) {}

// DisplayChanged re-reads the refresh rate if id is the primary display.
func (m *Monitor) DisplayChanged(id int) {
	m.update(id)
}

func (m *Monitor) update(id int) {
	if id != m.displays.Primary() {
		return
	}
	fps, err := m.displays.RefreshRate(id)
	if err != nil {
		slog.Warn("monitor: could not read primary refresh rate", "display", id, "err", err)
		return
	}
	if !m.Registered() {
		return
	}
	slog.Debug("monitor: primary refresh rate", "display", id, "fps", fps)
	m.onRate(fps)
}
