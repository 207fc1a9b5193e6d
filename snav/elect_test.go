// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package snav_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/spatialnav/snav"
)

func TestElectPicksAlignedCandidateOverDiagonal(t *testing.T) {
	target := rect("target", 10, 10, 10, 10)
	aligned := snav.Candidate{Element: fakeElement("aligned"), Rect: rect("aligned", 30, 10, 10, 10)}
	diagonal := snav.Candidate{Element: fakeElement("diagonal"), Rect: rect("diagonal", 30, 30, 10, 10)}

	el, ok := snav.Elect(target, snav.Right, []snav.Candidate{aligned, diagonal}, snav.ElectConfig{})
	require.True(t, ok)
	assert.Equal(t, fakeElement("aligned"), el)
}

// With straightOnly set, a candidate that only overlaps diagonally (never
// straight-line reachable) must not be elected even if it is the sole
// candidate in the requested direction's general vicinity.
func TestElectStraightOnlyExcludesDiagonal(t *testing.T) {
	target := rect("target", 10, 10, 10, 10)
	diagonalOnly := snav.Candidate{Element: fakeElement("diagonal"), Rect: rect("diagonal", 40, 40, 10, 10)}

	_, ok := snav.Elect(target, snav.Right, []snav.Candidate{diagonalOnly}, snav.ElectConfig{StraightOnly: true})
	assert.False(t, ok)
}

// The same diagonal candidate is reachable once straightOnly is relaxed,
// because the non-straight priority classes widen the scan to the whole
// half-plane.
func TestElectNonStraightIncludesDiagonal(t *testing.T) {
	target := rect("target", 10, 10, 10, 10)
	diagonalOnly := snav.Candidate{Element: fakeElement("diagonal"), Rect: rect("diagonal", 40, 40, 10, 10)}

	el, ok := snav.Elect(target, snav.Right, []snav.Candidate{diagonalOnly}, snav.ElectConfig{StraightOnly: false})
	require.True(t, ok)
	assert.Equal(t, fakeElement("diagonal"), el)
}

func TestElectNoCandidatesFails(t *testing.T) {
	target := rect("target", 10, 10, 10, 10)
	_, ok := snav.Elect(target, snav.Up, nil, snav.ElectConfig{})
	assert.False(t, ok)
}

// rememberSource prefers snapping back to the element a previous move
// originated from, over the geometrically closer sibling, when reversing
// that move's direction.
func TestElectRememberSourceSnapsBack(t *testing.T) {
	target := rect("target", 30, 10, 10, 10)
	closer := snav.Candidate{Element: fakeElement("closer"), Rect: rect("closer", 10, 10, 10, 10)}
	origin := snav.Candidate{Element: fakeElement("origin"), Rect: rect("origin", 0, 10, 10, 10)}

	cfg := snav.ElectConfig{
		RememberSource: true,
		Previous: &snav.PreviousFocus{
			Target:      fakeElement("origin"),
			Destination: fakeElement("target"),
			Reverse:     snav.Left,
		},
	}

	el, ok := snav.Elect(target, snav.Left, []snav.Candidate{closer, origin}, cfg)
	require.True(t, ok)
	assert.Equal(t, fakeElement("origin"), el)
}

// Without a matching Previous record, election falls back to the normal
// closest-candidate result.
func TestElectRememberSourceIgnoredWithoutMatch(t *testing.T) {
	target := rect("target", 30, 10, 10, 10)
	closer := snav.Candidate{Element: fakeElement("closer"), Rect: rect("closer", 10, 10, 10, 10)}
	farther := snav.Candidate{Element: fakeElement("farther"), Rect: rect("farther", 0, 10, 10, 10)}

	el, ok := snav.Elect(target, snav.Left, []snav.Candidate{closer, farther}, snav.ElectConfig{RememberSource: true})
	require.True(t, ok)
	assert.Equal(t, fakeElement("closer"), el)
}
