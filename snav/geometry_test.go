// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package snav_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/framegrace/spatialnav/snav"
)

type fakeElement string

func (f fakeElement) ElementID() string { return string(f) }

func rect(id fakeElement, left, top, w, h float64) snav.Rect {
	return snav.NewRect(id, left, top, w, h)
}

func TestDirectionReverse(t *testing.T) {
	assert.Equal(t, snav.Down, snav.Up.Reverse())
	assert.Equal(t, snav.Up, snav.Down.Reverse())
	assert.Equal(t, snav.Right, snav.Left.Reverse())
	assert.Equal(t, snav.Left, snav.Right.Reverse())
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "up", snav.Up.String())
	assert.Equal(t, "down", snav.Down.String())
	assert.Equal(t, "left", snav.Left.String())
	assert.Equal(t, "right", snav.Right.String())
}

func TestRectCenter(t *testing.T) {
	r := rect("a", 10, 20, 4, 6)
	c := r.Center()
	assert.Equal(t, float64(12), c.X)
	assert.Equal(t, float64(23), c.Y)
}

// A candidate directly to the right and vertically aligned scores better
// (lower) under NearHorizonIsBetter than one offset downward; both share
// the same horizontal position, so they tie under NearPlumbLineIsBetter.
// A candidate farther to the right scores worse under LeftIsBetter.
func TestDistanceComparatorsMonotonic(t *testing.T) {
	target := rect("t", 0, 0, 10, 10)
	aligned := rect("aligned", 20, 0, 10, 10)
	offset := rect("offset", 20, 15, 10, 10)

	assert.Less(t, target.NearHorizonIsBetter(aligned), target.NearHorizonIsBetter(offset))
	assert.Equal(t, target.NearPlumbLineIsBetter(aligned), target.NearPlumbLineIsBetter(offset))

	farther := rect("farther", 40, 0, 10, 10)
	assert.Less(t, target.LeftIsBetter(aligned), target.LeftIsBetter(farther))
}

func TestClampPositiveNeverNegative(t *testing.T) {
	target := rect("t", 0, 0, 10, 10)
	overlapping := rect("o", 0, 0, 10, 10)
	// A fully overlapping candidate never produces a negative distance from
	// the clamped near-* comparators.
	assert.GreaterOrEqual(t, target.NearPlumbLineIsBetter(overlapping), float64(0))
	assert.GreaterOrEqual(t, target.NearHorizonIsBetter(overlapping), float64(0))
	assert.GreaterOrEqual(t, target.NearTargetLeftIsBetter(overlapping), float64(0))
	assert.GreaterOrEqual(t, target.NearTargetTopIsBetter(overlapping), float64(0))
	// The edge comparators are not clamped: left/top are the raw edges and
	// right/bottom are the negated edges.
	assert.GreaterOrEqual(t, target.LeftIsBetter(overlapping), float64(0))
	assert.Equal(t, float64(-10), target.RightIsBetter(overlapping))
	assert.GreaterOrEqual(t, target.TopIsBetter(overlapping), float64(0))
	assert.Equal(t, float64(-10), target.BottomIsBetter(overlapping))
}
