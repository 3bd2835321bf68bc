// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clock provides the frame clock side of vsync pacing:
// the [Source] contract that platform frame clocks implement,
// the one-shot [Task] they fire, and the thread-confined [Loop]
// that marshals requests from arbitrary goroutines onto the
// goroutine that owns the frame clock.
package clock

// Target receives the frame boundary for a fired [Task].
type Target interface {

	// DeliverVsync is called exactly once per [Task], on the goroutine
	// that owns the frame clock, with the frame's target timestamp in
	// monotonic nanoseconds (see [Now]).
	DeliverVsync(frameTime int64, cookie uint64)
}

// Task is a one-shot request for the next frame boundary.
// It carries the caller's opaque cookie back to its [Target].
type Task struct {
	Cookie uint64
	Target Target
}

// Fire delivers the given frame time to the task's target.
func (t Task) Fire(frameTime int64) {
	t.Target.DeliverVsync(frameTime, t.Cookie)
}

// Source is a platform frame clock.
type Source interface {

	// ScheduleOnce arranges for t to be fired exactly once, on the
	// source's owning goroutine, at the next frame boundary.
	// It must only be called on the owning goroutine. There is no
	// way to cancel a scheduled task.
	ScheduleOnce(t Task)
}
