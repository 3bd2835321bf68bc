// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package clock

import "golang.org/x/sys/unix"

// Now returns the current CLOCK_MONOTONIC time in nanoseconds,
// the same time base that display servers stamp frames with.
func Now() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return fallbackNow()
	}
	return ts.Nano()
}
