package bumpgo

import "math"

// EPSILON is the floating point margin used throughout the rect math: the
// interior test, overlap detection, and the tunneling graze
// rejection all compare against it instead of zero.
const EPSILON = 1e-5

// Rect is an axis-aligned bounding box with real-valued coordinates.
// World.Update rejects a negative W or H with ErrBadArgument; World.Add
// stores the size it is given without checking it.
type Rect struct {
	X, Y, W, H float64
}

// Point is a 2D coordinate or vector: a movement, a normal, or a touch
// position.
type Point struct {
	X, Y float64
}

// minkowskiDiff reduces "does a moving by (dx,dy) hit b?" to "does the
// segment from (0,0) to (dx,dy) enter this rect?".
func minkowskiDiff(a, b Rect) Rect {
	return Rect{
		X: b.X - a.X - a.W,
		Y: b.Y - a.Y - a.H,
		W: a.W + b.W,
		H: a.H + b.H,
	}
}

// containsPointMargin is the strict interior test beyond the EPSILON
// margin collision detection requires: used both for overlap detection
// against a Minkowski difference and for QueryPoint.
func containsPointMargin(r Rect, px, py float64) bool {
	return px > r.X+EPSILON && px < r.X+r.W-EPSILON &&
		py > r.Y+EPSILON && py < r.Y+r.H-EPSILON
}

// nearestCorner returns the corner of r closest to (px, py) on each axis
// independently.
func nearestCorner(r Rect, px, py float64) (x, y float64) {
	return nearest(px, r.X, r.X+r.W), nearest(py, r.Y, r.Y+r.H)
}

func nearest(v, a, b float64) float64 {
	if math.Abs(v-a) < math.Abs(v-b) {
		return a
	}
	return b
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// rectsIntersect is the open-interval overlap test used to screen
// broadphase candidates down to an exact intersection.
func rectsIntersect(a, b Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W &&
		a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

// segmentIntersection is a generalized Liang–Barsky clip of the segment
// (x1,y1)-(x2,y2) against rect. It walks the four half-planes in a fixed
// left/right/top/bottom order, tightening ti1 (entry) when a side's
// direction component is negative and ti2 (exit) when it's positive.
// ti1Init/ti2Init seed the clip range: callers pass [0,1] for the
// inclusion test, [-Inf,1] to find where a moving-and-overlapping item
// re-enters, or [-Inf,+Inf] for the unclamped tunneling test and for
// segment-query ordering weights.
func segmentIntersection(rect Rect, x1, y1, x2, y2, ti1Init, ti2Init float64) (ti1, ti2, nx1, ny1, nx2, ny2 float64, ok bool) {
	dx, dy := x2-x1, y2-y1
	ti1, ti2 = ti1Init, ti2Init

	sides := [4]struct{ nx, ny, p, q float64 }{
		{-1, 0, -dx, x1 - rect.X},
		{1, 0, dx, (rect.X + rect.W) - x1},
		{0, -1, -dy, y1 - rect.Y},
		{0, 1, dy, (rect.Y + rect.H) - y1},
	}

	for _, side := range sides {
		if side.p == 0 {
			if side.q <= 0 {
				return 0, 0, 0, 0, 0, 0, false
			}
			continue
		}
		r := side.q / side.p
		if side.p < 0 {
			if r > ti2 {
				return 0, 0, 0, 0, 0, 0, false
			}
			if r > ti1 {
				ti1, nx1, ny1 = r, side.nx, side.ny
			}
		} else {
			if r < ti1 {
				return 0, 0, 0, 0, 0, 0, false
			}
			if r < ti2 {
				ti2, nx2, ny2 = r, side.nx, side.ny
			}
		}
	}

	return ti1, ti2, nx1, ny1, nx2, ny2, true
}

// collisionGeom is the raw narrowphase result, before project.go attaches
// item identities and a response name to it.
type collisionGeom struct {
	overlaps bool
	ti       float64
	move     Point
	normal   Point
	touch    Point
}

// detectCollision is the continuous narrowphase test between a moving
// itemRect and a static otherRect: whether itemRect, moving toward
// (goalX, goalY), touches otherRect, and if so where, along which normal,
// and at what fraction of the requested movement.
//
// Two regimes: if the two rects already overlap, ti carries the negative
// area of intersection (used purely as a sort key favoring deeper overlaps
// first) and touch is computed separately, either via the minimum
// displacement vector (zero requested movement) or via a re-clip of the
// move against range [-Inf,1] — ti and touch deliberately come from two
// different computations in this branch, not a single shared clip.
// Otherwise (tunneling), ti is the unclamped clip's entry fraction and
// touch is derived directly from it.
func detectCollision(itemRect, otherRect Rect, goalX, goalY float64) (collisionGeom, bool) {
	dx, dy := goalX-itemRect.X, goalY-itemRect.Y
	diff := minkowskiDiff(itemRect, otherRect)

	var overlaps bool
	var ti, nx, ny float64

	if containsPointMargin(diff, 0, 0) {
		overlaps = true
		px, py := nearestCorner(diff, 0, 0)
		wi := math.Min(itemRect.W, math.Abs(px))
		hi := math.Min(itemRect.H, math.Abs(py))
		ti = -wi * hi
	} else {
		ti1, ti2, nx1, ny1, _, _, ok := segmentIntersection(diff, 0, 0, dx, dy, math.Inf(-1), math.Inf(1))
		if !ok || !(ti1 < 1 && math.Abs(ti1-ti2) >= EPSILON && (ti1 > -EPSILON || (ti1 == 0 && ti2 > 0))) {
			return collisionGeom{}, false
		}
		ti, nx, ny = ti1, nx1, ny1
	}

	var tx, ty float64
	if overlaps {
		if dx == 0 && dy == 0 {
			px, py := nearestCorner(diff, 0, 0)
			if math.Abs(px) < math.Abs(py) {
				py = 0
			} else {
				px = 0
			}
			nx, ny = sign(px), sign(py)
			tx, ty = itemRect.X+px, itemRect.Y+py
		} else {
			rti1, _, rnx, rny, _, _, ok := segmentIntersection(diff, 0, 0, dx, dy, math.Inf(-1), 1)
			if !ok {
				return collisionGeom{}, false
			}
			nx, ny = rnx, rny
			tx, ty = itemRect.X+dx*rti1, itemRect.Y+dy*rti1
		}
	} else {
		tx, ty = itemRect.X+dx*ti, itemRect.Y+dy*ti
	}

	return collisionGeom{
		overlaps: overlaps,
		ti:       ti,
		move:     Point{X: dx, Y: dy},
		normal:   Point{X: nx, Y: ny},
		touch:    Point{X: tx, Y: ty},
	}, true
}
