// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package desktop

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cogentcore.org/vsync/monitor"
)

type changes struct {
	added, removed, changed []int
}

func (c *changes) DisplayAdded(id int)   { c.added = append(c.added, id) }
func (c *changes) DisplayRemoved(id int) { c.removed = append(c.removed, id) }
func (c *changes) DisplayChanged(id int) { c.changed = append(c.changed, id) }

func TestDiff(t *testing.T) {
	a := []Screen{{"A", 60}, {"B", 144}}
	assert.Empty(t, diff(a, a))
	assert.Equal(t, []screenEvent{{changed, 0}}, diff(a, []Screen{{"A", 120}, {"B", 144}}))
	assert.Equal(t, []screenEvent{{added, 2}}, diff(a, append(a, Screen{"C", 75})))
	assert.Equal(t, []screenEvent{{changed, 0}, {removed, 1}}, diff(a, []Screen{{"B", 144}}))
}

func TestScreensFollowPrimary(t *testing.T) {
	s := &Screens{}
	s.set([]Screen{{"A", 60}, {"B", 144}})

	var got []float32
	m := monitor.New(s, func(fps float32) { got = append(got, fps) })
	assert.NoError(t, m.Register())
	assert.Error(t, s.AddListener(m))

	ch := &changes{}
	assert.NoError(t, s.AddListener(ch))

	s.set([]Screen{{"A", 60}, {"B", 60}})
	assert.Empty(t, got)

	// the built-in display becomes primary
	s.set([]Screen{{"B", 60}})
	assert.Equal(t, []float32{60}, got)
	s.set([]Screen{{"B", 120}})
	assert.Equal(t, []float32{60, 120}, got)

	assert.Equal(t, []int{1, 0, 0}, ch.changed)
	assert.Equal(t, []int{1}, ch.removed)

	fps, err := s.RefreshRate(0)
	assert.NoError(t, err)
	assert.Equal(t, float32(120), fps)
	_, err = s.RefreshRate(3)
	assert.Error(t, err)
}
