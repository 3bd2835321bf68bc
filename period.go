// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vsync

import (
	"fmt"
	"math"
	"time"

	"cogentcore.org/vsync/base/errors"
)

// ErrInvalidRate is returned when a refresh rate is not a
// finite number of frames per second greater than zero.
var ErrInvalidRate = errors.New("vsync: invalid refresh rate")

// Period is the time between consecutive frames, in nanoseconds.
type Period int64

// Unknown is the [Period] before the refresh rate has been measured.
const Unknown Period = -1

// PeriodOf returns the frame period for the given refresh rate,
// rounded to the nearest nanosecond.
func PeriodOf(fps float32) (Period, error) {
	f := float64(fps)
	if !(f > 0) || math.IsInf(f, 1) {
		return Unknown, fmt.Errorf("%w: %v fps", ErrInvalidRate, fps)
	}
	p := math.Round(1e9 / f)
	if p < 1 {
		return Unknown, fmt.Errorf("%w: %v fps is above 1e9", ErrInvalidRate, fps)
	}
	return Period(p), nil
}

// Known returns whether the period has been measured.
func (p Period) Known() bool {
	return p > 0
}

// Duration returns the period as a [time.Duration],
// or 0 if it is [Unknown].
func (p Period) Duration() time.Duration {
	if !p.Known() {
		return 0
	}
	return time.Duration(p)
}

func (p Period) String() string {
	if !p.Known() {
		return "unknown"
	}
	return time.Duration(p).String()
}
