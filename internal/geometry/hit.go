package geometry

import (
	"math"

	"github.com/inamate/drawboard/internal/board"
)

type segment struct {
	ax, ay, bx, by float64
}

// IsNear reports whether (x, y) lies within the tolerance of the shape's
// outline. Fills do not count: a point inside a rectangle but away from its
// edges is not near it.
func (h *Helpers) IsNear(shape board.Shape, x, y float64) bool {
	reach := h.tolerance + shape.Style.StrokeWidth/2

	// Cheap reject before walking the outline.
	if !shape.Bounds.Inflate(reach).Contains(x, y) {
		return false
	}

	for _, s := range flatten(shape.Path) {
		if distanceToSegment(x, y, s) <= reach {
			return true
		}
	}
	return false
}

// flatten converts a path into straight segments, splitting curves into
// flattenSteps pieces.
func flatten(path []board.PathCommand) []segment {
	var segs []segment
	var curX, curY, startX, startY float64
	hasCurrent := false

	lineTo := func(x, y float64) {
		if hasCurrent {
			segs = append(segs, segment{curX, curY, x, y})
		}
		curX, curY = x, y
		hasCurrent = true
	}

	for _, cmd := range path {
		switch cmd.Op {
		case "M":
			if len(cmd.Args) >= 2 {
				curX, curY = cmd.Args[0], cmd.Args[1]
				startX, startY = curX, curY
				hasCurrent = true
			}
		case "L":
			if len(cmd.Args) >= 2 {
				lineTo(cmd.Args[0], cmd.Args[1])
			}
		case "Q":
			if len(cmd.Args) >= 4 {
				x0, y0 := curX, curY
				for i := 1; i <= flattenSteps; i++ {
					t := float64(i) / flattenSteps
					lineTo(quadratic(x0, cmd.Args[0], cmd.Args[2], t), quadratic(y0, cmd.Args[1], cmd.Args[3], t))
				}
			}
		case "C":
			if len(cmd.Args) >= 6 {
				x0, y0 := curX, curY
				for i := 1; i <= flattenSteps; i++ {
					t := float64(i) / flattenSteps
					lineTo(
						cubic(x0, cmd.Args[0], cmd.Args[2], cmd.Args[4], t),
						cubic(y0, cmd.Args[1], cmd.Args[3], cmd.Args[5], t),
					)
				}
			}
		case "Z":
			if hasCurrent {
				lineTo(startX, startY)
			}
		}
	}
	return segs
}

func quadratic(p0, p1, p2, t float64) float64 {
	mt := 1 - t
	return mt*mt*p0 + 2*mt*t*p1 + t*t*p2
}

func cubic(p0, p1, p2, p3, t float64) float64 {
	mt := 1 - t
	return mt*mt*mt*p0 + 3*mt*mt*t*p1 + 3*mt*t*t*p2 + t*t*t*p3
}

// distanceToSegment returns the distance from (px, py) to the closest point
// of s. Zero-length segments degrade to point distance.
func distanceToSegment(px, py float64, s segment) float64 {
	dx, dy := s.bx-s.ax, s.by-s.ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-s.ax, py-s.ay)
	}
	t := ((px-s.ax)*dx + (py-s.ay)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(s.ax+t*dx), py-(s.ay+t*dy))
}
