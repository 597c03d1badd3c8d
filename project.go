package bumpgo

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Project computes the ordered set of collisions that would occur if item
// — whose rect is (x,y,width,height) — moved toward (goalX, goalY),
// without mutating the world. item may be absent from the world entirely;
// this is a "hypothetical" projection, since Project never consults the
// registry for item's own rect. A nil filter falls
// back to the world's default filter.
func (w *World[Item]) Project(item Item, x, y, width, height, goalX, goalY float64, filter FilterFunc[Item]) []*Collision[Item] {
	if filter == nil {
		filter = w.filter
	}

	tl := math.Min(x, goalX)
	tt := math.Min(y, goalY)
	tr := math.Max(x+width, goalX+width)
	tb := math.Max(y+height, goalY+height)

	itemRect := Rect{X: x, Y: y, W: width, H: height}
	candidates := w.itemsInCells(w.cellsInRect(tl, tt, tr-tl, tb-tt))

	cols := make([]*Collision[Item], 0, len(candidates))
	for other := range candidates {
		if other == item {
			continue
		}
		responseName, ok := filter(item, other)
		if !ok {
			continue
		}

		otherRect := w.items[other].rect
		geom, hit := detectCollision(itemRect, otherRect, goalX, goalY)
		if !hit {
			continue
		}

		cols = append(cols, &Collision[Item]{
			Item:      item,
			Other:     other,
			Overlaps:  geom.overlaps,
			TI:        geom.ti,
			Move:      geom.move,
			Normal:    geom.normal,
			Touch:     geom.touch,
			ItemRect:  itemRect,
			OtherRect: otherRect,
			Type:      responseName,
		})
	}

	sortCollisions(cols)
	return cols
}

// Check runs the full multi-response resolution loop for item moving
// toward (goalX, goalY) and returns where it would end up plus the
// ordered collisions it resolved, without committing the move (see Move).
// Fails with ErrUnknownItem if item isn't present, or ErrUnknownResponse
// if a filter names a response that was never registered.
func (w *World[Item]) Check(item Item, goalX, goalY float64, filter FilterFunc[Item]) (actualX, actualY float64, cols []*Collision[Item], err error) {
	rec, ok := w.items[item]
	if !ok {
		return 0, 0, nil, errors.Wrapf(ErrUnknownItem, "check %v", item)
	}
	if filter == nil {
		filter = w.filter
	}
	x, y, width, height := rec.rect.X, rec.rect.Y, rec.rect.W, rec.rect.H

	// visited blocks an item from colliding twice in the same resolution:
	// every iteration either adds one new entry here or touchResponse
	// returns an empty next-set, so the loop is bounded by CountItems().
	visited := map[Item]struct{}{item: {}}
	visitedFilter := func(it, other Item) (string, bool) {
		if _, seen := visited[other]; seen {
			return "", false
		}
		return filter(it, other)
	}

	collisions := make([]*Collision[Item], 0)
	projected := w.Project(item, x, y, width, height, goalX, goalY, visitedFilter)

	for len(projected) > 0 {
		col := projected[0]
		collisions = append(collisions, col)
		visited[col.Other] = struct{}{}

		response, ok := w.responses[col.Type]
		if !ok {
			return 0, 0, nil, errors.Wrapf(ErrUnknownResponse, "response %q", col.Type)
		}

		var next []*Collision[Item]
		goalX, goalY, next = response(w, col, x, y, width, height, goalX, goalY, visitedFilter)
		projected = next

		w.log.Debug("check",
			zap.Any("item", item), zap.Any("other", col.Other),
			zap.String("response", col.Type), zap.Float64("ti", col.TI))
	}

	return goalX, goalY, collisions, nil
}

// Move runs Check, then commits the result by calling Update with the
// resolved position (keeping item's current width/height).
func (w *World[Item]) Move(item Item, goalX, goalY float64, filter FilterFunc[Item]) (actualX, actualY float64, cols []*Collision[Item], err error) {
	actualX, actualY, cols, err = w.Check(item, goalX, goalY, filter)
	if err != nil {
		return 0, 0, nil, err
	}
	if err := w.Update(item, actualX, actualY, math.NaN(), math.NaN()); err != nil {
		return 0, 0, nil, err
	}
	return actualX, actualY, cols, nil
}
