package bumpgo

import "math"

// toCell maps a world coordinate to its 1-based cell coordinate.
func toCell(cellSize, x, y float64) (cx, cy int) {
	return int(math.Floor(x/cellSize)) + 1, int(math.Floor(y/cellSize)) + 1
}

// toWorld maps a 1-based cell coordinate back to its top-left world
// coordinate.
func toWorld(cellSize float64, cx, cy int) (x, y float64) {
	return float64(cx-1) * cellSize, float64(cy-1) * cellSize
}

// toCellRect returns the inclusive cell span a rect covers: cl,ct is the
// first cell, cw,ch the number of cells spanned on each axis.
func toCellRect(cellSize, x, y, w, h float64) (cl, ct, cw, ch int) {
	cl, ct = toCell(cellSize, x, y)
	cr := int(math.Ceil((x + w) / cellSize))
	cb := int(math.Ceil((y + h) / cellSize))
	return cl, ct, cr - cl + 1, cb - ct + 1
}

func frac(v float64) float64 {
	return v - math.Floor(v)
}

// rayStep computes the Amanatides & Woo step direction, per-cell delta,
// and initial boundary distance for one axis of a segment from t1 to t2.
// An axis with zero velocity never steps again (step=0, infinite delta).
func rayStep(cellSize, t1, t2 float64) (step int, d, t float64) {
	v := t2 - t1
	switch {
	case v > 0:
		delta := cellSize / v
		return 1, delta, delta * (1 - frac(t1/cellSize))
	case v < 0:
		delta := cellSize / v
		return -1, -delta, -delta * frac(t1/cellSize)
	default:
		return 0, math.Inf(1), math.Inf(1)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// traceRay walks the grid cells crossed by the segment (x1,y1)-(x2,y2),
// calling visit once per cell in travel order. This is a variant of
// Amanatides & Woo's voxel traversal with two deviations from the
// textbook algorithm: when the ray passes exactly through a
// grid corner, the diagonal neighbor cell is also visited, so a query
// never misses an item touching only at a corner; and traversal stops as
// soon as the current cell is within Manhattan distance 1 of the end
// cell, emitting the end cell directly afterward — this sidesteps an
// infinite loop that floating-point drift can otherwise cause right at
// the segment's end.
func traceRay(cellSize, x1, y1, x2, y2 float64, visit func(cx, cy int)) {
	cx1, cy1 := toCell(cellSize, x1, y1)
	cx2, cy2 := toCell(cellSize, x2, y2)
	stepX, dx, tx := rayStep(cellSize, x1, x2)
	stepY, dy, ty := rayStep(cellSize, y1, y2)
	cx, cy := cx1, cy1

	visit(cx, cy)

	for absInt(cx-cx2)+absInt(cy-cy2) > 1 {
		if tx < ty {
			tx += dx
			cx += stepX
		} else {
			if tx == ty {
				visit(cx+stepX, cy)
			}
			ty += dy
			cy += stepY
		}
		visit(cx, cy)
	}

	if cx != cx2 || cy != cy2 {
		visit(cx2, cy2)
	}
}
