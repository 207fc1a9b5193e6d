// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: snav/elect.go
// Summary: The directional election algorithm: partitions candidates
// around the target, picks a priority class per direction, and breaks
// ties with a lexicographic distance comparator chain.

package snav

import "sort"

type meter func(target, candidate Rect) float64

func meterNearPlumbLine(t, c Rect) float64    { return t.NearPlumbLineIsBetter(c) }
func meterNearHorizon(t, c Rect) float64      { return t.NearHorizonIsBetter(c) }
func meterNearTargetLeft(t, c Rect) float64   { return t.NearTargetLeftIsBetter(c) }
func meterNearTargetTop(t, c Rect) float64    { return t.NearTargetTopIsBetter(c) }
func meterTop(t, c Rect) float64              { return t.TopIsBetter(c) }
func meterBottom(t, c Rect) float64           { return t.BottomIsBetter(c) }
func meterLeft(t, c Rect) float64             { return t.LeftIsBetter(c) }
func meterRight(t, c Rect) float64            { return t.RightIsBetter(c) }

// priorityClass names which groups feed a round of election and the
// lexicographic comparator chain used to order them.
type priorityClass struct {
	useInternal bool
	groupIdx    []int
	meters      []meter
}

func priorityClasses(dir Direction, straightOnly bool) []priorityClass {
	var classes []priorityClass
	switch dir {
	case Left:
		classes = []priorityClass{
			{useInternal: true, groupIdx: []int{0, 3, 6}, meters: []meter{meterNearPlumbLine, meterTop}},
			{groupIdx: []int{3}, meters: []meter{meterNearPlumbLine, meterTop}},
			{groupIdx: []int{0, 6}, meters: []meter{meterNearHorizon, meterRight, meterNearTargetTop}},
		}
	case Right:
		classes = []priorityClass{
			{useInternal: true, groupIdx: []int{2, 5, 8}, meters: []meter{meterNearPlumbLine, meterTop}},
			{groupIdx: []int{5}, meters: []meter{meterNearPlumbLine, meterTop}},
			{groupIdx: []int{2, 8}, meters: []meter{meterNearHorizon, meterLeft, meterNearTargetTop}},
		}
	case Up:
		classes = []priorityClass{
			{useInternal: true, groupIdx: []int{0, 1, 2}, meters: []meter{meterNearHorizon, meterLeft}},
			{groupIdx: []int{1}, meters: []meter{meterNearHorizon, meterLeft}},
			{groupIdx: []int{0, 2}, meters: []meter{meterNearPlumbLine, meterBottom, meterNearTargetLeft}},
		}
	case Down:
		classes = []priorityClass{
			{useInternal: true, groupIdx: []int{6, 7, 8}, meters: []meter{meterNearHorizon, meterLeft}},
			{groupIdx: []int{7}, meters: []meter{meterNearHorizon, meterLeft}},
			{groupIdx: []int{6, 8}, meters: []meter{meterNearPlumbLine, meterTop, meterNearTargetLeft}},
		}
	}
	if straightOnly {
		classes = classes[:2]
	}
	return classes
}

func collectGroup(groups, internal Groups, c priorityClass) []Candidate {
	src := groups
	if c.useInternal {
		src = internal
	}
	var out []Candidate
	for _, idx := range c.groupIdx {
		out = append(out, src[idx]...)
	}
	return out
}

// sortGroup orders candidates by the class's comparator chain, falling
// back to stable input order once every meter ties at zero.
func sortGroup(target Rect, group []Candidate, meters []meter) []Candidate {
	sorted := make([]Candidate, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		for _, m := range meters {
			vi := m(target, sorted[i].Rect)
			vj := m(target, sorted[j].Rect)
			if vi != vj {
				return vi < vj
			}
		}
		return false
	})
	return sorted
}

// ElectConfig carries the per-move parameters the election needs out of a
// Section's effective configuration. StraightOverlapThreshold must already
// be resolved (mergeConfig does this): Elect trusts it verbatim, including
// an explicit zero, rather than re-applying DefaultOverlapThreshold.
type ElectConfig struct {
	StraightOnly             bool
	StraightOverlapThreshold float64
	RememberSource           bool
	Previous                 *PreviousFocus
}

// Elect runs the directional election algorithm described in the
// specification: partition candidates around target, walk priority
// classes for dir until one yields a non-empty group, sort that group,
// and apply the rememberSource snap-back preference.
func Elect(target Rect, dir Direction, candidates []Candidate, cfg ElectConfig) (Element, bool) {
	if len(candidates) == 0 {
		return nil, false
	}

	groups := Partition(candidates, target, cfg.StraightOverlapThreshold)
	internal := partitionInternal(groups[4], target, cfg.StraightOverlapThreshold)

	for _, class := range priorityClasses(dir, cfg.StraightOnly) {
		group := collectGroup(groups, internal, class)
		if len(group) == 0 {
			continue
		}
		sorted := sortGroup(target, group, class.meters)

		if cfg.RememberSource && cfg.Previous != nil &&
			cfg.Previous.Destination == target.Element && cfg.Previous.Reverse == dir {
			for _, cand := range sorted {
				if cand.Element == cfg.Previous.Target {
					return cand.Element, true
				}
			}
		}
		return sorted[0].Element, true
	}

	return nil, false
}
