// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package offscreen

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"cogentcore.org/vsync/monitor"
)

// Screen is a simulated display.
type Screen struct {

	// Name is the name of the screen.
	Name string

	// RefreshRate is the refresh rate of the screen, in frames per second.
	RefreshRate float32
}

// Screens is an in-memory [monitor.Displays] whose screens can be
// added, removed, and reconfigured at run time. Screen ids are
// assigned in order of addition, starting at 0; the first screen
// added is the primary screen, until it is changed or removed.
type Screens struct {
	mu        sync.Mutex
	screens   map[int]Screen
	nextID    int
	primary   int
	listeners []monitor.Listener
}

var _ monitor.Displays = (*Screens)(nil)

// NewScreens returns [Screens] containing the given screens.
func NewScreens(scs ...Screen) *Screens {
	s := &Screens{screens: map[int]Screen{}}
	for _, sc := range scs {
		s.Add(sc)
	}
	return s
}

// Primary implements [monitor.Displays].
func (s *Screens) Primary() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.primary
}

// RefreshRate implements [monitor.Displays].
func (s *Screens) RefreshRate(id int) (float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.screens[id]
	if !ok {
		return 0, fmt.Errorf("offscreen: no screen %d", id)
	}
	return sc.RefreshRate, nil
}

// Screen returns the screen with the given id.
func (s *Screens) Screen(id int) (Screen, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.screens[id]
	return sc, ok
}

// IDs returns the ids of all screens, in ascending order.
func (s *Screens) IDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.screens))
}

// AddListener implements [monitor.Displays].
func (s *Screens) AddListener(l monitor.Listener) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.listeners, l) {
		return fmt.Errorf("offscreen: listener already added")
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

// Add adds the given screen and returns its id.
func (s *Screens) Add(sc Screen) int {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	if len(s.screens) == 0 {
		s.primary = id
	}
	s.screens[id] = sc
	s.mu.Unlock()
	s.notify(func(l monitor.Listener) { l.DisplayAdded(id) })
	return id
}

// AddWithID adds the given screen under a caller chosen id,
// replacing any screen with that id.
func (s *Screens) AddWithID(id int, sc Screen) {
	s.mu.Lock()
	if len(s.screens) == 0 {
		s.primary = id
	}
	_, had := s.screens[id]
	s.screens[id] = sc
	if id >= s.nextID {
		s.nextID = id + 1
	}
	s.mu.Unlock()
	if had {
		s.notify(func(l monitor.Listener) { l.DisplayChanged(id) })
		return
	}
	s.notify(func(l monitor.Listener) { l.DisplayAdded(id) })
}

// Remove removes the screen with the given id. If it was the
// primary screen, the remaining screen with the lowest id becomes
// the primary screen.
func (s *Screens) Remove(id int) {
	s.mu.Lock()
	if _, ok := s.screens[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.screens, id)
	promoted := -1
	if s.primary == id && len(s.screens) > 0 {
		promoted = slices.Min(slices.Collect(maps.Keys(s.screens)))
		s.primary = promoted
	}
	s.mu.Unlock()
	s.notify(func(l monitor.Listener) { l.DisplayRemoved(id) })
	if promoted >= 0 {
		s.notify(func(l monitor.Listener) { l.DisplayChanged(promoted) })
	}
}

// SetRefreshRate changes the refresh rate of the given screen.
func (s *Screens) SetRefreshRate(id int, fps float32) error {
	s.mu.Lock()
	sc, ok := s.screens[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("offscreen: no screen %d", id)
	}
	if sc.RefreshRate == fps {
		s.mu.Unlock()
		return nil
	}
	sc.RefreshRate = fps
	s.screens[id] = sc
	s.mu.Unlock()
	s.notify(func(l monitor.Listener) { l.DisplayChanged(id) })
	return nil
}

// SetPrimary makes the given screen the primary screen.
func (s *Screens) SetPrimary(id int) error {
	s.mu.Lock()
	if _, ok := s.screens[id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("offscreen: no screen %d", id)
	}
	if s.primary == id {
		s.mu.Unlock()
		return nil
	}
	s.primary = id
	s.mu.Unlock()
	s.notify(func(l monitor.Listener) { l.DisplayChanged(id) })
	return nil
}

// notify calls f for every listener, without holding the lock so
// that listeners can query the screens.
func (s *Screens) notify(f func(l monitor.Listener)) {
	s.mu.Lock()
	ls := slices.Clone(s.listeners)
	s.mu.Unlock()
	for _, l := range ls {
		f(l)
	}
}
