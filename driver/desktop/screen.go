// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package desktop

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"

	"cogentcore.org/vsync/monitor"
)

// MonitorDebug turns on debugging statements about monitor changes
// and updates from glfw.
var MonitorDebug = false

// Screen is the cached state of one glfw monitor.
type Screen struct {

	// Name is the name of the monitor.
	Name string

	// RefreshRate is the refresh rate of the current video mode.
	RefreshRate float32
}

// Screens is the [monitor.Displays] of the desktop platform. glfw may
// only be queried on the main thread, so Screens caches the monitor
// state, which the main thread refreshes with [Screens.Update]. Screen
// ids are indices into glfw.GetMonitors; glfw always lists the primary
// monitor first, so the primary id is 0.
type Screens struct {
	mu        sync.Mutex
	screens   []Screen
	listeners []monitor.Listener
}

var _ monitor.Displays = (*Screens)(nil)

// Primary implements [monitor.Displays].
func (s *Screens) Primary() int {
	return 0
}

// RefreshRate implements [monitor.Displays].
func (s *Screens) RefreshRate(id int) (float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < 0 || id >= len(s.screens) {
		return 0, fmt.Errorf("desktop: no screen %d", id)
	}
	return s.screens[id].RefreshRate, nil
}

// AddListener implements [monitor.Displays].
func (s *Screens) AddListener(l monitor.Listener) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.listeners, l) {
		return fmt.Errorf("desktop: listener already added")
	}
	s.listeners = append(s.listeners, l)
	return nil
}

// RemoveListener implements [monitor.Displays].
func (s *Screens) RemoveListener(l monitor.Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.listeners, l); i >= 0 {
		s.listeners = slices.Delete(s.listeners, i, i+1)
	}
}

// Update re-reads the glfw monitors and notifies listeners of any
// differences. It must be called on the main thread.
func (s *Screens) Update() {
	mons := glfw.GetMonitors()
	cur := make([]Screen, 0, len(mons))
	for i, mon := range mons {
		vm := mon.GetVideoMode()
		if vm == nil || vm.Width == 0 || vm.Height == 0 {
			if MonitorDebug {
				slog.Info("MonitorDebug: screen has no video mode", "index", i, "name", mon.GetName())
			}
			continue
		}
		cur = append(cur, Screen{Name: mon.GetName(), RefreshRate: float32(vm.RefreshRate)})
	}
	s.set(cur)
}

// set replaces the cached screens and notifies listeners.
func (s *Screens) set(cur []Screen) {
	s.mu.Lock()
	old := s.screens
	s.screens = cur
	ls := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, ev := range diff(old, cur) {
		if MonitorDebug {
			slog.Info("MonitorDebug: screen event", "kind", ev.kind, "id", ev.id)
		}
		for _, l := range ls {
			switch ev.kind {
			case added:
				l.DisplayAdded(ev.id)
			case removed:
				l.DisplayRemoved(ev.id)
			default:
				l.DisplayChanged(ev.id)
			}
		}
	}
}

type eventKind int

const (
	changed eventKind = iota
	added
	removed
)

type screenEvent struct {
	kind eventKind
	id   int
}

// diff returns the events that turn old into cur, by index.
func diff(old, cur []Screen) []screenEvent {
	var evs []screenEvent
	for i := range max(len(old), len(cur)) {
		switch {
		case i >= len(old):
			evs = append(evs, screenEvent{added, i})
		case i >= len(cur):
			evs = append(evs, screenEvent{removed, i})
		case old[i] != cur[i]:
			evs = append(evs, screenEvent{changed, i})
		}
	}
	return evs
}

// monitorChange is the glfw monitor callback, called on the main
// thread when a monitor is connected or disconnected.
func (s *Screens) monitorChange(mon *glfw.Monitor, event glfw.PeripheralEvent) {
	if MonitorDebug {
		enm := "Disconnected"
		if event == glfw.Connected {
			enm = "Connected"
		}
		slog.Info("MonitorDebug: monitorChange", "monitor", mon.GetName(), "event", enm)
	}
	s.Update()
}
