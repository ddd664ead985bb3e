package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ash22686/Kolam-Kar/internal/state"
)

func TestComputeSevenBySeven(t *testing.T) {
	dots, err := Compute(7, 800, 60)
	require.NoError(t, err)
	require.Len(t, dots, 49)

	assert.Equal(t, state.Point{X: 60, Y: 60}, dots[0])
	assert.InDelta(t, 740, dots[48].X, 1e-9)
	assert.InDelta(t, 740, dots[48].Y, 1e-9)
	assert.InDelta(t, 680.0/6, Spacing(7, 800, 60), 1e-12)

	// row-major: index 1 is row 0, column 1
	assert.InDelta(t, 60+680.0/6, dots[1].X, 1e-9)
	assert.Equal(t, 60.0, dots[1].Y)
	assert.Equal(t, 60.0, dots[7].X)
	assert.InDelta(t, 60+680.0/6, dots[7].Y, 1e-9)
}

func TestComputeDeterministic(t *testing.T) {
	a, err := Compute(9, 800, 60)
	require.NoError(t, err)
	b, err := Compute(9, 800, 60)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeRejectsOutOfRangeGrid(t *testing.T) {
	for _, n := range []int{1, 0, -5} {
		_, err := Compute(n, 800, 60)
		assert.ErrorIs(t, err, ErrGridTooSmall)
		_, err = New(n, 800, 60)
		assert.ErrorIs(t, err, ErrGridTooSmall)
	}
	_, err := Compute(100000, 800, 60)
	assert.ErrorIs(t, err, ErrGridTooLarge)
	dots, err := Compute(2, 800, 60)
	require.NoError(t, err)
	assert.Equal(t, []state.Point{{X: 60, Y: 60}, {X: 740, Y: 60}, {X: 60, Y: 740}, {X: 740, Y: 740}}, dots)
}

func TestGridHelpers(t *testing.T) {
	g, err := New(5, 800, 60)
	require.NoError(t, err)
	assert.Equal(t, 170.0, g.Spacing())
	assert.Equal(t, state.Point{X: 400, Y: 400}, g.Center())

	d, ok := g.Nearest(state.Point{X: 395, Y: 410}, SnapThreshold)
	require.True(t, ok)
	assert.Equal(t, state.Point{X: 400, Y: 400}, d)

	_, ok = g.Nearest(state.Point{X: 315, Y: 315}, SnapThreshold)
	assert.False(t, ok)
	d, ok = g.NearestAbsolute(state.Point{X: 315, Y: 315})
	require.True(t, ok)
	assert.Equal(t, state.Point{X: 230, Y: 230}, d)
}
