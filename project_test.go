package bumpgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slideFilter(_, _ string) (string, bool) { return "slide", true }
func touchFilter(_, _ string) (string, bool) { return "touch", true }

func TestProjectIgnoresTheMovingItemItself(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.Add("a", 0, 0, 8, 8))
	cols := w.Project("a", 0, 0, 8, 8, 64, 0, slideFilter)
	assert.Empty(t, cols, "an item must never collide with itself in its own projection")
}

func TestSlideAlongWall(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.Add("a", 0, 0, 8, 8))
	require.NoError(t, w.Add("b", 8, 0, 100, 8))

	actualX, actualY, cols, err := w.Check("a", 64, 4, slideFilter)
	require.NoError(t, err)
	assert.Equal(t, 0.0, actualX)
	assert.Equal(t, 4.0, actualY)

	require.Len(t, cols, 1)
	col := cols[0]
	assert.Equal(t, "b", col.Other)
	assert.Equal(t, 0.0, col.TI)
	assert.Equal(t, Point{X: -1, Y: 0}, col.Normal)
	require.NotNil(t, col.Slide)
	assert.Equal(t, Point{X: 0, Y: 4}, *col.Slide)
}

// TestBounceOffCeiling exercises the bounce response. The final actualY is
// derived from bounceResponse's own reflection rule (residual movement
// negated about the touch point, measured from the touch point rather
// than the start position).
func TestBounceOffCeiling(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.Add("a", 0, 10, 8, 8))
	require.NoError(t, w.Add("b", 0, 0, 64, 8))

	bounceFilter := func(_, _ string) (string, bool) { return "bounce", true }
	actualX, actualY, cols, err := w.Check("a", 0, -20, bounceFilter)
	require.NoError(t, err)
	assert.Equal(t, 0.0, actualX)
	assert.Equal(t, 36.0, actualY)

	require.Len(t, cols, 1)
	col := cols[0]
	assert.Equal(t, "b", col.Other)
	assert.Equal(t, Point{X: 0, Y: 1}, col.Normal)
	require.NotNil(t, col.Bounce)
	assert.Equal(t, Point{X: 0, Y: 36}, *col.Bounce)
}

func TestCrossASensor(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.Add("a", 0, 0, 8, 8))
	require.NoError(t, w.Add("s", 20, 0, 8, 8))
	require.NoError(t, w.Add("wall", 40, 0, 8, 64))

	filter := func(_, other string) (string, bool) {
		if other == "s" {
			return "cross", true
		}
		return "slide", true
	}

	actualX, actualY, cols, err := w.Check("a", 100, 0, filter)
	require.NoError(t, err)
	assert.Equal(t, 32.0, actualX)
	assert.Equal(t, 0.0, actualY)

	require.Len(t, cols, 2)
	assert.Equal(t, "s", cols[0].Other)
	assert.Equal(t, "cross", cols[0].Type)
	assert.Equal(t, "wall", cols[1].Other)
	assert.Equal(t, "slide", cols[1].Type)
}

func TestTunnelPrevention(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.Add("a", 0, 0, 2, 2))
	require.NoError(t, w.Add("b", 500, 0, 2, 2))

	actualX, actualY, cols, err := w.Check("a", 1000, 0, touchFilter)
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.InDelta(t, 0.498, cols[0].TI, 1e-6)
	assert.Equal(t, 498.0, actualX)
	assert.Equal(t, 0.0, actualY)
}

func TestCheckUnknownItem(t *testing.T) {
	w := newTestWorld(t)
	_, _, _, err := w.Check("ghost", 10, 10, slideFilter)
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestCheckUnregisteredResponseName(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.Add("a", 0, 0, 8, 8))
	require.NoError(t, w.Add("b", 8, 0, 8, 8))
	badFilter := func(_, _ string) (string, bool) { return "teleport", true }

	_, _, _, err := w.Check("a", 64, 0, badFilter)
	assert.ErrorIs(t, err, ErrUnknownResponse)
}

// TestCheckTerminatesWithManyCrossingItems is the bounded-iteration property:
// Check's visited set means each other item can only contribute one
// collision per call, so a chain of N sensors the mover crosses resolves in
// at most N steps rather than looping.
func TestCheckTerminatesWithManyCrossingItems(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.Add("mover", 0, 0, 4, 4))

	const n = 25
	for i := 0; i < n; i++ {
		name := sensorName(i)
		x := float64(10 * (i + 1))
		require.NoError(t, w.Add(name, x, 0, 4, 4))
	}

	crossFilter := func(_, _ string) (string, bool) { return "cross", true }
	goalX := float64(10 * (n + 2))
	actualX, actualY, cols, err := w.Check("mover", goalX, 0, crossFilter)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(cols), n)
	assert.Equal(t, goalX, actualX)
	assert.Equal(t, 0.0, actualY)
}

func sensorName(i int) string {
	return "sensor-" + string(rune('a'+i))
}
