package bumpgo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinkowskiDiff(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 8, H: 8}
	b := Rect{X: 8, Y: 0, W: 100, H: 8}
	diff := minkowskiDiff(a, b)
	assert.Equal(t, Rect{X: 0, Y: -8, W: 108, H: 16}, diff)
}

func TestContainsPointMargin(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 10, H: 10}
	assert.False(t, containsPointMargin(r, 10, 10), "corner itself is not strictly inside")
	assert.True(t, containsPointMargin(r, 10.001, 10.001))
	assert.False(t, containsPointMargin(r, 20, 20), "opposite corner is not strictly inside")
}

func TestSymmetricContainment(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 5, Y: 5, W: 10, H: 10}
	c := Rect{X: 50, Y: 50, W: 10, H: 10}
	for _, pair := range [][2]Rect{{a, b}, {a, c}, {b, c}} {
		assert.Equal(t, rectsIntersect(pair[0], pair[1]), rectsIntersect(pair[1], pair[0]))
	}
	assert.True(t, rectsIntersect(a, b))
	assert.False(t, rectsIntersect(a, c))
}

func TestSegmentIntersectionOrder(t *testing.T) {
	rect := Rect{X: 10, Y: 0, W: 10, H: 10}
	ti1, ti2, nx1, ny1, _, _, ok := segmentIntersection(rect, 0, 5, 100, 5, 0, 1)
	require.True(t, ok)
	assert.InDelta(t, 0.1, ti1, 1e-9)
	assert.InDelta(t, 0.2, ti2, 1e-9)
	assert.Equal(t, -1.0, nx1)
	assert.Equal(t, 0.0, ny1)
}

func TestSegmentIntersectionMiss(t *testing.T) {
	rect := Rect{X: 10, Y: 20, W: 10, H: 10}
	_, _, _, _, _, _, ok := segmentIntersection(rect, 0, 0, 100, 0, 0, 1)
	assert.False(t, ok, "a horizontal segment at y=0 must miss a rect starting at y=20")
}

func TestDetectCollisionOverlapSign(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 5, Y: 5, W: 10, H: 10}
	geom, ok := detectCollision(a, b, 0, 0)
	require.True(t, ok)
	assert.True(t, geom.overlaps)
	assert.Less(t, geom.ti, 0.0, "overlapping collisions report a negative ti")
}

func TestDetectCollisionTunnelingSign(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 2, H: 2}
	b := Rect{X: 500, Y: 0, W: 2, H: 2}
	geom, ok := detectCollision(a, b, 1000, 0)
	require.True(t, ok)
	assert.False(t, geom.overlaps)
	assert.GreaterOrEqual(t, geom.ti, 0.0)
	assert.Less(t, geom.ti, 1.0)
	assert.InDelta(t, 0.498, geom.ti, 1e-6)
}

func TestDetectCollisionNoHit(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 2, H: 2}
	b := Rect{X: 500, Y: 0, W: 2, H: 2}
	_, ok := detectCollision(a, b, 5, 0)
	assert.False(t, ok, "moving far short of the other rect should not collide")
}

func TestDetectCollisionStationaryOverlapUsesMinimumDisplacement(t *testing.T) {
	// a's nearest escape is along x (the Minkowski diff's x corner is
	// closer to the origin than its y corner), so the zero-movement
	// resolution should push out along x and leave y untouched.
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: -2, Y: -20, W: 20, H: 40}
	geom, ok := detectCollision(a, b, 0, 0)
	require.True(t, ok)
	assert.True(t, geom.overlaps)
	assert.NotEqual(t, 0.0, geom.normal.X)
	assert.Equal(t, 0.0, geom.normal.Y)
}

func TestSignHelper(t *testing.T) {
	assert.Equal(t, 1.0, sign(5))
	assert.Equal(t, -1.0, sign(-5))
	assert.Equal(t, 0.0, sign(0))
}

func TestNearestCorner(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	x, y := nearestCorner(r, 1, 9)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 10.0, y)
}

func TestSegmentIntersectionUnboundedNeverReturnsNaN(t *testing.T) {
	rect := Rect{X: 0, Y: 0, W: 10, H: 10}
	ti1, ti2, _, _, _, _, ok := segmentIntersection(rect, -100, 5, 100, 5, math.Inf(-1), math.Inf(1))
	require.True(t, ok)
	assert.False(t, math.IsNaN(ti1))
	assert.False(t, math.IsNaN(ti2))
}
