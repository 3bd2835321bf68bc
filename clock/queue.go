// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock

import "sync/atomic"

// Queue is a lock-free FIFO queue that any number of goroutines
// may send on. It must be initialized using [Queue.Init] before use.
// It is based on https://github.com/fyne-io/fyne/blob/master/internal/async/queue_canvasobject.go
type Queue[T any] struct {
	head atomic.Pointer[queueItem[T]]
	tail atomic.Pointer[queueItem[T]]
	len  atomic.Uint64
}

// Nodes are not pooled: reusing them would expose the CAS loops below to ABA.
type queueItem[T any] struct {
	next atomic.Pointer[queueItem[T]]
	v    T
}

// Init initializes the queue.
func (q *Queue[T]) Init() {
	head := &queueItem[T]{}
	q.head.Store(head)
	q.tail.Store(head)
}

// Next removes and returns the next value in the queue.
// It returns false if the queue is empty.
func (q *Queue[T]) Next() (T, bool) {
	var first, last, firstnext *queueItem[T]
	for {
		first = q.head.Load()
		last = q.tail.Load()
		firstnext = first.next.Load()
		if first == q.head.Load() {
			if first == last {
				if firstnext == nil {
					var zero T
					return zero, false
				}

				q.tail.CompareAndSwap(last, firstnext)
			} else {
				v := firstnext.v
				if q.head.CompareAndSwap(first, firstnext) {
					q.len.Add(^uint64(0))
					return v, true
				}
			}
		}
	}
}

// Send adds a value to the end of the queue.
func (q *Queue[T]) Send(v T) {
	i := &queueItem[T]{v: v}
	// counted before publishing so Next never takes Len below zero
	q.len.Add(1)

	var last, lastnext *queueItem[T]
	for {
		last = q.tail.Load()
		lastnext = last.next.Load()
		if q.tail.Load() == last {
			if lastnext == nil {
				if last.next.CompareAndSwap(lastnext, i) {
					q.tail.CompareAndSwap(last, i)
					return
				}
			} else {
				q.tail.CompareAndSwap(last, lastnext)
			}
		}
	}
}

// Len returns the length of the queue. While sends are in
// progress it may count values that are not yet visible to Next.
func (q *Queue[T]) Len() uint64 {
	return q.len.Load()
}
