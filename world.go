package bumpgo

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultCellSize is a reasonable default absent a tile grid to align to.
const DefaultCellSize = 64.0

// FilterFunc decides, for a candidate collision between item and other,
// which registered response should resolve it. Returning ok=false means
// "ignore this candidate entirely".
type FilterFunc[Item comparable] func(item, other Item) (response string, ok bool)

func defaultFilterFunc[Item comparable](_, _ Item) (string, bool) {
	return "slide", true
}

// itemRecord is the registry's per-item state: just the current rect.
// Which cells the item occupies is never stored redundantly here — it's
// always exactly toCellRect(rect), recomputed from the rect only when
// Remove or Update needs to know the old span.
type itemRecord struct {
	rect Rect
}

// World is the collision engine's item registry: a mapping of items to
// rectangles, a uniform grid of which cells each item occupies, and a
// table of named movement responses. It is single-threaded and
// non-reentrant; callers driving multiple worlds concurrently must keep
// each world confined to one goroutine at a time.
type World[Item comparable] struct {
	cellSize  float64
	items     map[Item]*itemRecord
	rows      map[int]map[int]*cell[Item]
	nonEmpty  map[*cell[Item]]struct{}
	responses map[string]Response[Item]
	filter    FilterFunc[Item]
	log       *zap.Logger
}

// NewWorld builds an empty collision world whose uniform grid has the
// given cell size. Fails with ErrBadArgument when cellSize <= 0.
func NewWorld[Item comparable](cellSize float64, opts ...Option[Item]) (*World[Item], error) {
	if cellSize <= 0 {
		return nil, errors.Wrapf(ErrBadArgument, "cellSize must be > 0, got %v", cellSize)
	}

	w := &World[Item]{
		cellSize:  cellSize,
		items:     make(map[Item]*itemRecord),
		rows:      make(map[int]map[int]*cell[Item]),
		nonEmpty:  make(map[*cell[Item]]struct{}),
		responses: make(map[string]Response[Item]),
		filter:    defaultFilterFunc[Item],
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.AddResponse("touch", touchResponse[Item])
	w.AddResponse("cross", crossResponse[Item])
	w.AddResponse("slide", slideResponse[Item])
	w.AddResponse("bounce", bounceResponse[Item])

	return w, nil
}

func (w *World[Item]) cellAt(cx, cy int, create bool) *cell[Item] {
	row, ok := w.rows[cy]
	if !ok {
		if !create {
			return nil
		}
		row = make(map[int]*cell[Item])
		w.rows[cy] = row
	}
	c, ok := row[cx]
	if !ok {
		if !create {
			return nil
		}
		c = newCell[Item]()
		row[cx] = c
	}
	return c
}

func (w *World[Item]) enterCell(cx, cy int, item Item) {
	c := w.cellAt(cx, cy, true)
	c.enter(item)
	w.nonEmpty[c] = struct{}{}
}

// leaveCell removes item from the cell at (cx, cy) and frees the cell
// (and its row, if that empties too) once its occupant count reaches
// zero — explicit freeing rather than relying on a weak-reference map.
func (w *World[Item]) leaveCell(cx, cy int, item Item) {
	c := w.cellAt(cx, cy, false)
	if c == nil {
		return
	}
	c.leave(item)
	if c.count() == 0 {
		delete(w.nonEmpty, c)
		row := w.rows[cy]
		delete(row, cx)
		if len(row) == 0 {
			delete(w.rows, cy)
		}
	}
}

func (w *World[Item]) cellsInRect(x, y, width, height float64) []*cell[Item] {
	cl, ct, cw, ch := toCellRect(w.cellSize, x, y, width, height)
	cells := make([]*cell[Item], 0, cw*ch)
	for cy := ct; cy < ct+ch; cy++ {
		row, ok := w.rows[cy]
		if !ok {
			continue
		}
		for cx := cl; cx < cl+cw; cx++ {
			if c, ok := row[cx]; ok {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// itemsInCells gathers the union of a set of cells' occupants, naturally
// deduplicated by the map key.
func (w *World[Item]) itemsInCells(cells []*cell[Item]) map[Item]struct{} {
	result := make(map[Item]struct{})
	for _, c := range cells {
		for item := range c.items {
			result[item] = struct{}{}
		}
	}
	return result
}

// Add records item's rectangle and inserts it into every cell of its cell
// span. Fails with ErrDuplicateItem if item is already present.
func (w *World[Item]) Add(item Item, x, y, width, height float64) error {
	if _, exists := w.items[item]; exists {
		return errors.Wrapf(ErrDuplicateItem, "add %v", item)
	}

	w.items[item] = &itemRecord{rect: Rect{X: x, Y: y, W: width, H: height}}
	cl, ct, cw, ch := toCellRect(w.cellSize, x, y, width, height)
	for cy := ct; cy < ct+ch; cy++ {
		for cx := cl; cx < cl+cw; cx++ {
			w.enterCell(cx, cy, item)
		}
	}

	w.log.Debug("add", zap.Any("item", item), zap.Float64("x", x), zap.Float64("y", y), zap.Float64("w", width), zap.Float64("h", height))
	return nil
}

// Remove deletes item's rectangle and removes it from every cell it
// occupied. Fails with ErrUnknownItem if item isn't present.
func (w *World[Item]) Remove(item Item) error {
	rec, ok := w.items[item]
	if !ok {
		return errors.Wrapf(ErrUnknownItem, "remove %v", item)
	}

	cl, ct, cw, ch := toCellRect(w.cellSize, rec.rect.X, rec.rect.Y, rec.rect.W, rec.rect.H)
	for cy := ct; cy < ct+ch; cy++ {
		for cx := cl; cx < cl+cw; cx++ {
			w.leaveCell(cx, cy, item)
		}
	}
	delete(w.items, item)

	w.log.Debug("remove", zap.Any("item", item))
	return nil
}

// updateCells performs a symmetric-difference cell update: cells in the
// old span no longer covered by the new one are left, cells in the new
// span not already covered by the old one are entered. An item that
// barely moves touches only the handful of cells that actually changed,
// not its whole span.
func (w *World[Item]) updateCells(item Item, old, newRect Rect) {
	ocl, oct, ocw, och := toCellRect(w.cellSize, old.X, old.Y, old.W, old.H)
	ncl, nct, ncw, nch := toCellRect(w.cellSize, newRect.X, newRect.Y, newRect.W, newRect.H)
	if ocl == ncl && oct == nct && ocw == ncw && och == nch {
		return
	}

	inNew := func(cx, cy int) bool {
		return cx >= ncl && cx < ncl+ncw && cy >= nct && cy < nct+nch
	}
	inOld := func(cx, cy int) bool {
		return cx >= ocl && cx < ocl+ocw && cy >= oct && cy < oct+och
	}

	for cy := oct; cy < oct+och; cy++ {
		for cx := ocl; cx < ocl+ocw; cx++ {
			if !inNew(cx, cy) {
				w.leaveCell(cx, cy, item)
			}
		}
	}
	for cy := nct; cy < nct+nch; cy++ {
		for cx := ncl; cx < ncl+ncw; cx++ {
			if !inOld(cx, cy) {
				w.enterCell(cx, cy, item)
			}
		}
	}
}

// Update repositions item to (x, y). Pass math.NaN() for width or height
// to keep the item's current size — an omitted-size update modeled as a
// sentinel value rather than overloading by arity.
func (w *World[Item]) Update(item Item, x, y, width, height float64) error {
	rec, ok := w.items[item]
	if !ok {
		return errors.Wrapf(ErrUnknownItem, "update %v", item)
	}

	if math.IsNaN(width) {
		width = rec.rect.W
	}
	if math.IsNaN(height) {
		height = rec.rect.H
	}
	if width < 0 || height < 0 {
		return errors.Wrapf(ErrBadArgument, "update %v: negative size %vx%v", item, width, height)
	}

	newRect := Rect{X: x, Y: y, W: width, H: height}
	if newRect == rec.rect {
		return nil
	}

	w.updateCells(item, rec.rect, newRect)
	rec.rect = newRect

	w.log.Debug("update", zap.Any("item", item), zap.Float64("x", x), zap.Float64("y", y), zap.Float64("w", width), zap.Float64("h", height))
	return nil
}

// GetRect returns item's current rectangle. Fails with ErrUnknownItem if
// item isn't present.
func (w *World[Item]) GetRect(item Item) (Rect, error) {
	rec, ok := w.items[item]
	if !ok {
		return Rect{}, errors.Wrapf(ErrUnknownItem, "getRect %v", item)
	}
	return rec.rect, nil
}

// HasItem reports whether item is currently registered.
func (w *World[Item]) HasItem(item Item) bool {
	_, ok := w.items[item]
	return ok
}

// GetItems returns every registered item, in arbitrary order.
func (w *World[Item]) GetItems() []Item {
	items := make([]Item, 0, len(w.items))
	for item := range w.items {
		items = append(items, item)
	}
	return items
}

// CountItems returns the number of registered items.
func (w *World[Item]) CountItems() int {
	return len(w.items)
}

// CountCells returns the number of non-empty cells.
func (w *World[Item]) CountCells() int {
	return len(w.nonEmpty)
}

// ToCell maps a world coordinate to its cell coordinate.
func (w *World[Item]) ToCell(x, y float64) (cx, cy int) {
	return toCell(w.cellSize, x, y)
}

// ToWorld maps a cell coordinate back to its top-left world coordinate.
func (w *World[Item]) ToWorld(cx, cy int) (x, y float64) {
	return toWorld(w.cellSize, cx, cy)
}

// AddResponse registers or overrides a named movement response.
func (w *World[Item]) AddResponse(name string, response Response[Item]) {
	w.responses[name] = response
}
