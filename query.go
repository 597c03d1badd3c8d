package bumpgo

import (
	"math"
	"sort"
)

// ItemFilterFunc screens a query candidate; a query accepts item only if
// every supplied filter returns true for it.
type ItemFilterFunc[Item comparable] func(item Item) bool

func passesFilters[Item comparable](item Item, filters []ItemFilterFunc[Item]) bool {
	for _, f := range filters {
		if f != nil && !f(item) {
			return false
		}
	}
	return true
}

// QueryRect returns every item whose rect intersects (x,y,w,h), screened
// first by the broadphase cell span and then by an exact open-interval
// intersection test. Result order is arbitrary but deterministic.
func (w *World[Item]) QueryRect(x, y, width, height float64, filters ...ItemFilterFunc[Item]) []Item {
	candidates := w.itemsInCells(w.cellsInRect(x, y, width, height))
	queryRect := Rect{X: x, Y: y, W: width, H: height}

	result := make([]Item, 0, len(candidates))
	for item := range candidates {
		if !rectsIntersect(w.items[item].rect, queryRect) {
			continue
		}
		if !passesFilters(item, filters) {
			continue
		}
		result = append(result, item)
	}
	return result
}

// QueryPoint returns every item whose rect strictly contains (x, y),
// beyond the EPSILON margin.
func (w *World[Item]) QueryPoint(x, y float64, filters ...ItemFilterFunc[Item]) []Item {
	cx, cy := toCell(w.cellSize, x, y)
	c := w.cellAt(cx, cy, false)
	if c == nil {
		return nil
	}

	result := make([]Item, 0, c.count())
	for item := range c.items {
		if !containsPointMargin(w.items[item].rect, x, y) {
			continue
		}
		if !passesFilters(item, filters) {
			continue
		}
		result = append(result, item)
	}
	return result
}

func (w *World[Item]) cellsTouchedBySegment(x1, y1, x2, y2 float64) []*cell[Item] {
	seen := make(map[*cell[Item]]struct{})
	cells := make([]*cell[Item], 0)
	traceRay(w.cellSize, x1, y1, x2, y2, func(cx, cy int) {
		c := w.cellAt(cx, cy, false)
		if c == nil {
			return
		}
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		cells = append(cells, c)
	})
	return cells
}

// segmentOrderWeight re-clips the segment against rect with an unbounded
// range purely to get an ordering key: the natural order of an infinite
// line through the candidate rects, independent of where the segment
// itself starts and ends.
func segmentOrderWeight(rect Rect, x1, y1, x2, y2 float64) float64 {
	uti1, uti2, _, _, _, _, ok := segmentIntersection(rect, x1, y1, x2, y2, math.Inf(-1), math.Inf(1))
	if !ok {
		return math.Inf(1)
	}
	return math.Min(uti1, uti2)
}

// QuerySegment returns every item whose rect the segment (x1,y1)-(x2,y2)
// crosses strictly between its endpoints, ordered by where along the
// segment they're first encountered.
func (w *World[Item]) QuerySegment(x1, y1, x2, y2 float64, filters ...ItemFilterFunc[Item]) []Item {
	type scored struct {
		item   Item
		weight float64
	}

	candidates := w.itemsInCells(w.cellsTouchedBySegment(x1, y1, x2, y2))
	scoredItems := make([]scored, 0, len(candidates))
	for item := range candidates {
		if !passesFilters(item, filters) {
			continue
		}
		rect := w.items[item].rect
		ti1, ti2, _, _, _, _, ok := segmentIntersection(rect, x1, y1, x2, y2, 0, 1)
		if !ok || !((ti1 > 0 && ti1 < 1) || (ti2 > 0 && ti2 < 1)) {
			continue
		}
		scoredItems = append(scoredItems, scored{item, segmentOrderWeight(rect, x1, y1, x2, y2)})
	}

	sort.Slice(scoredItems, func(i, j int) bool { return scoredItems[i].weight < scoredItems[j].weight })

	result := make([]Item, len(scoredItems))
	for i, s := range scoredItems {
		result[i] = s.item
	}
	return result
}

// SegmentHit is one result of QuerySegmentWithCoords: an item the segment
// crosses, the clipped entry/exit fractions, and their world coordinates.
type SegmentHit[Item comparable] struct {
	Item   Item
	TI1    float64
	TI2    float64
	EntryX float64
	EntryY float64
	ExitX  float64
	ExitY  float64
}

// QuerySegmentWithCoords is QuerySegment augmented with the entry/exit
// world coordinates of each hit, in the same order QuerySegment would
// return.
func (w *World[Item]) QuerySegmentWithCoords(x1, y1, x2, y2 float64, filters ...ItemFilterFunc[Item]) []SegmentHit[Item] {
	type scored struct {
		hit    SegmentHit[Item]
		weight float64
	}

	dx, dy := x2-x1, y2-y1
	candidates := w.itemsInCells(w.cellsTouchedBySegment(x1, y1, x2, y2))
	scoredHits := make([]scored, 0, len(candidates))
	for item := range candidates {
		if !passesFilters(item, filters) {
			continue
		}
		rect := w.items[item].rect
		ti1, ti2, _, _, _, _, ok := segmentIntersection(rect, x1, y1, x2, y2, 0, 1)
		if !ok || !((ti1 > 0 && ti1 < 1) || (ti2 > 0 && ti2 < 1)) {
			continue
		}
		scoredHits = append(scoredHits, scored{
			hit: SegmentHit[Item]{
				Item: item, TI1: ti1, TI2: ti2,
				EntryX: x1 + dx*ti1, EntryY: y1 + dy*ti1,
				ExitX: x1 + dx*ti2, ExitY: y1 + dy*ti2,
			},
			weight: segmentOrderWeight(rect, x1, y1, x2, y2),
		})
	}

	sort.Slice(scoredHits, func(i, j int) bool { return scoredHits[i].weight < scoredHits[j].weight })

	hits := make([]SegmentHit[Item], len(scoredHits))
	for i, s := range scoredHits {
		hits[i] = s.hit
	}
	return hits
}
