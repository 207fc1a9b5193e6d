// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package snav_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/framegrace/spatialnav/snav"
)

func cand(id fakeElement, left, top, w, h float64) snav.Candidate {
	return snav.Candidate{Element: id, Rect: rect(id, left, top, w, h)}
}

// Three boxes side by side on the same row: left and right land in the
// horizontal middle groups (3 and 5), never in group 4 (inside) or any
// corner group.
func TestPartitionThreeHorizontalBoxes(t *testing.T) {
	ref := rect("mid", 10, 0, 10, 10)
	left := cand("left", 0, 0, 10, 10)
	right := cand("right", 20, 0, 10, 10)

	groups := snav.Partition([]snav.Candidate{left, right}, ref, snav.DefaultOverlapThreshold)

	assert.Contains(t, groups[3], left)
	assert.Contains(t, groups[5], right)
	assert.Empty(t, groups[4])
	for _, corner := range []int{0, 2, 6, 8} {
		assert.Empty(t, groups[corner])
	}
}

// A box above-and-to-the-left of the reference lands primarily in the
// top-left corner group (0); if it overlaps the reference's vertical
// span past the threshold it also spills into the middle-left group (3).
func TestPartitionCornerOverlapSpill(t *testing.T) {
	ref := rect("mid", 10, 10, 10, 10)
	// Candidate sits up-left, but its bottom edge reaches well past the
	// reference's top edge, satisfying the spill condition.
	spilling := cand("spill", 0, 4, 8, 8)

	groups := snav.Partition([]snav.Candidate{spilling}, ref, 0.1)

	assert.Contains(t, groups[0], spilling)
	assert.Contains(t, groups[3], spilling)
}

// Every candidate is assigned to exactly one primary group (no candidate
// is dropped), even when none of the corner spill conditions apply.
func TestPartitionCoversEveryCandidate(t *testing.T) {
	ref := rect("mid", 10, 10, 10, 10)
	above := cand("above", 10, 0, 10, 5)
	below := cand("below", 10, 25, 10, 5)

	groups := snav.Partition([]snav.Candidate{above, below}, ref, snav.DefaultOverlapThreshold)

	var total int
	for _, g := range groups {
		total += len(g)
	}
	assert.GreaterOrEqual(t, total, 2)
	assert.Contains(t, groups[1], above)
	assert.Contains(t, groups[7], below)
}
