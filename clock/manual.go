// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock

// Manual is a [Source] whose frame boundaries are produced explicitly
// with [Manual.Advance]. It is not safe for concurrent use: the
// goroutine calling Advance is the owning goroutine.
type Manual struct {
	pending []Task
}

// ScheduleOnce implements [Source].
func (m *Manual) ScheduleOnce(t Task) {
	m.pending = append(m.pending, t)
}

// Pending returns the number of tasks waiting for the next boundary.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Advance produces a frame boundary at the given time, firing
// every pending task. It returns the number of tasks fired.
func (m *Manual) Advance(frameTime int64) int {
	fire := m.pending
	m.pending = nil
	for _, t := range fire {
		t.Fire(frameTime)
	}
	return len(fire)
}
