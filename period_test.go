// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vsync

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodOf(t *testing.T) {
	tests := []struct {
		fps  float32
		want Period
	}{
		{60, 16_666_667},
		{120, 8_333_333},
		{90, 11_111_111},
		{144, 6_944_444},
		{59.94, 16_683_350},
		{30, 33_333_333},
		{1, 1_000_000_000},
	}
	for _, tt := range tests {
		p, err := PeriodOf(tt.fps)
		assert.NoError(t, err)
		assert.InDelta(t, int64(tt.want), int64(p), 1, "fps %v", tt.fps)
		assert.InDelta(t, math.Round(1e9/float64(tt.fps)), float64(p), 1)
	}
}

func TestPeriodOfInvalid(t *testing.T) {
	for _, fps := range []float32{0, -5, float32(math.NaN()), float32(math.Inf(1)), float32(math.Inf(-1)), 1e10} {
		p, err := PeriodOf(fps)
		assert.ErrorIs(t, err, ErrInvalidRate, "fps %v", fps)
		assert.Equal(t, Unknown, p)
	}
}

func TestPeriodString(t *testing.T) {
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, time.Duration(0), Unknown.Duration())
	assert.False(t, Unknown.Known())
	p := Period(16_666_667)
	assert.True(t, p.Known())
	assert.Equal(t, 16666667*time.Nanosecond, p.Duration())
	assert.Equal(t, "16.666667ms", p.String())
}
