// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock

import (
	"context"
	"sync/atomic"
	"time"
)

// Ticker is a software [Source] that produces a frame boundary
// every period. Boundaries are posted onto its [Loop], so tasks
// always fire on the loop's owning goroutine.
type Ticker struct {
	loop   *Loop
	period atomic.Int64

	// pending and spare are only touched on the owning goroutine.
	pending []Task
	spare   []Task
}

// NewTicker returns a new [Ticker] posting to the given loop.
// It does not tick until [Ticker.Start] is called.
func NewTicker(loop *Loop, period time.Duration) *Ticker {
	t := &Ticker{loop: loop}
	t.Reset(period)
	return t
}

// Reset changes the frame period. It takes effect at the next
// boundary. Non-positive periods are ignored.
func (t *Ticker) Reset(period time.Duration) {
	if period > 0 {
		t.period.Store(int64(period))
	}
}

// Period returns the current frame period.
func (t *Ticker) Period() time.Duration {
	return time.Duration(t.period.Load())
}

// ScheduleOnce implements [Source].
func (t *Ticker) ScheduleOnce(task Task) {
	t.pending = append(t.pending, task)
}

// Start starts producing frame boundaries in a new goroutine
// until ctx is done.
func (t *Ticker) Start(ctx context.Context) {
	cur := t.Period()
	tk := time.NewTicker(cur)
	go func() {
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tk.C:
				ts := Now()
				t.loop.Post(func() { t.frame(ts) })
				if p := t.Period(); p != cur {
					cur = p
					tk.Reset(cur)
				}
			}
		}
	}()
}

// frame fires every task pending at the boundary. Tasks scheduled
// while firing wait for the next boundary.
func (t *Ticker) frame(ts int64) {
	if len(t.pending) == 0 {
		return
	}
	fire := t.pending
	t.pending = t.spare[:0]
	for _, task := range fire {
		task.Fire(ts)
	}
	clear(fire)
	t.spare = fire[:0]
}
