// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock

import (
	"context"
	"sync/atomic"
)

// Loop is the task queue of the goroutine that owns a frame clock.
// [Loop.Submit] and [Loop.Post] may be called from any goroutine and
// never block; the owning goroutine picks the work up with
// [Loop.Drain], typically from [Loop.Run] or a platform event loop.
type Loop struct {
	tasks Queue[Task]
	funcs Queue[func()]

	// wake has a buffer of one so that a signal sent between a
	// Drain and the next wait is never lost.
	wake chan struct{}

	waker atomic.Pointer[func()]
}

// NewLoop returns a new, empty [Loop].
func NewLoop() *Loop {
	l := &Loop{wake: make(chan struct{}, 1)}
	l.tasks.Init()
	l.funcs.Init()
	return l
}

// SetWaker sets a function that is called whenever work is queued,
// in addition to signaling [Loop.Wake]. Platform event loops that
// block outside of Go use it to get woken, e.g. glfw.PostEmptyEvent.
// Pass nil to remove it.
func (l *Loop) SetWaker(f func()) {
	if f == nil {
		l.waker.Store(nil)
		return
	}
	l.waker.Store(&f)
}

// Submit queues the given task to be scheduled on the owning goroutine.
func (l *Loop) Submit(t Task) {
	l.tasks.Send(t)
	l.signal()
}

// Post queues the given function to run on the owning goroutine
// and returns immediately.
func (l *Loop) Post(f func()) {
	l.funcs.Send(f)
	l.signal()
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
	if w := l.waker.Load(); w != nil {
		(*w)()
	}
}

// Wake returns the channel that receives a value when work is queued.
func (l *Loop) Wake() <-chan struct{} {
	return l.wake
}

// Pending returns the number of queued tasks and functions.
func (l *Loop) Pending() int {
	return int(l.tasks.Len() + l.funcs.Len())
}

// Drain runs all posted functions and schedules all submitted tasks
// on src, until both queues are empty. It must be called on the
// owning goroutine. It returns the number of tasks scheduled.
func (l *Loop) Drain(src Source) int {
	n := 0
	for {
		progress := false
		for {
			f, ok := l.funcs.Next()
			if !ok {
				break
			}
			f()
			progress = true
		}
		for {
			t, ok := l.tasks.Next()
			if !ok {
				break
			}
			src.ScheduleOnce(t)
			n++
			progress = true
		}
		if !progress {
			return n
		}
	}
}

// Run makes the calling goroutine the owner of the loop and drains
// it onto src until ctx is done. It returns the context error.
func (l *Loop) Run(ctx context.Context, src Source) error {
	for {
		l.Drain(src)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}
