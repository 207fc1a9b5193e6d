// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: snav/partition.go
// Summary: Pure nine-zone grouping of candidate rects relative to a
// reference rect, with the overlap-spill rule for corner groups.

package snav

// Candidate pairs a measured Rect with the Element it came from, so group
// membership threads the element identity through partitioning untouched.
type Candidate struct {
	Element Element
	Rect    Rect
}

// DefaultOverlapThreshold is used when a section leaves
// straightOverlapThreshold unset.
const DefaultOverlapThreshold = 0.5

// Groups is the nine-zone result of Partition, indexed left-to-right,
// top-to-bottom: group 4 is the "inside" bucket, sharing the reference's
// position.
type Groups [9][]Candidate

// Partition assigns every candidate to exactly one primary group by its
// center point, then spills corner-group members into the adjacent
// middle-row or middle-column group when they overlap the reference rect
// by at least threshold.
func Partition(candidates []Candidate, ref Rect, threshold float64) Groups {
	var groups Groups

	leftEdge := ref.Left + ref.Width*threshold
	rightEdge := ref.Right - ref.Width*threshold
	topEdge := ref.Top + ref.Height*threshold
	bottomEdge := ref.Bottom - ref.Height*threshold

	for _, c := range candidates {
		center := c.Rect.Center()

		col := 1
		switch {
		case center.X < ref.Left:
			col = 0
		case center.X > ref.Right:
			col = 2
		}

		row := 1
		switch {
		case center.Y < ref.Top:
			row = 0
		case center.Y > ref.Bottom:
			row = 2
		}

		primary := row*3 + col
		groups[primary] = append(groups[primary], c)

		switch primary {
		case 0:
			if c.Rect.Right >= leftEdge {
				groups[1] = append(groups[1], c)
			}
			if c.Rect.Bottom >= topEdge {
				groups[3] = append(groups[3], c)
			}
		case 2:
			if c.Rect.Left <= rightEdge {
				groups[1] = append(groups[1], c)
			}
			if c.Rect.Bottom >= topEdge {
				groups[5] = append(groups[5], c)
			}
		case 6:
			if c.Rect.Right >= leftEdge {
				groups[7] = append(groups[7], c)
			}
			if c.Rect.Top <= bottomEdge {
				groups[3] = append(groups[3], c)
			}
		case 8:
			if c.Rect.Left <= rightEdge {
				groups[7] = append(groups[7], c)
			}
			if c.Rect.Top <= bottomEdge {
				groups[5] = append(groups[5], c)
			}
		}
	}

	return groups
}

// partitionInternal re-partitions the candidates that fell inside the
// reference (group 4) using the reference's center point as a zero-area
// reference rect, per Elector step 4.
func partitionInternal(inside []Candidate, ref Rect, threshold float64) Groups {
	return Partition(inside, ref.centerRect(), threshold)
}
