package symmetry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ash22686/Kolam-Kar/internal/state"
)

var center = state.Point{X: 400, Y: 400}

func TestApplyClosure(t *testing.T) {
	path := []state.Point{{X: 60, Y: 60}, {X: 173.3, Y: 95.1}, {X: 211, Y: 400}}
	for fold := 1; fold <= 12; fold++ {
		out := Apply(path, fold, center)
		require.Len(t, out, fold)
		for _, replica := range out {
			assert.Len(t, replica, len(path))
		}
		assert.Equal(t, path, out[0], "replica 0 must be the unrotated input")
	}
}

func TestApplyIdentity(t *testing.T) {
	path := []state.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}
	for _, fold := range []int{1, 0, -2} {
		out := Apply(path, fold, center)
		assert.Equal(t, [][]state.Point{path}, out)
	}

	out := Apply(path, 1, center)
	out[0][0] = state.Point{}
	assert.Equal(t, state.Point{X: 1, Y: 2}, path[0], "result must not alias the input")
}

func TestApplyQuarterTurns(t *testing.T) {
	// y grows downwards, so a positive angle turns clockwise on screen
	out := Apply([]state.Point{{X: 500, Y: 400}}, 4, center)
	want := []state.Point{{X: 500, Y: 400}, {X: 400, Y: 500}, {X: 300, Y: 400}, {X: 400, Y: 300}}
	for i, w := range want {
		assert.InDelta(t, w.X, out[i][0].X, 1e-9, "replica %d x", i)
		assert.InDelta(t, w.Y, out[i][0].Y, 1e-9, "replica %d y", i)
	}
}

func TestApplyKeepsOrderAndDistance(t *testing.T) {
	path := []state.Point{{X: 100, Y: 120}, {X: 130, Y: 90}, {X: 180, Y: 260}}
	for _, replica := range Apply(path, 6, center) {
		for j := range path {
			assert.InDelta(t, path[j].Dist(center), replica[j].Dist(center), 1e-9)
		}
		for j := 1; j < len(path); j++ {
			assert.InDelta(t, path[j-1].Dist(path[j]), replica[j-1].Dist(replica[j]), 1e-9)
		}
	}
}

func TestAnglesAreDistinct(t *testing.T) {
	for fold := 2; fold <= 8; fold++ {
		seen := map[float64]bool{}
		for i := range fold {
			a := Angle(i, fold)
			assert.GreaterOrEqual(t, a, 0.0)
			assert.Less(t, a, 2*math.Pi)
			assert.False(t, seen[a], "angle %v repeated for fold %d", a, fold)
			seen[a] = true
		}
		assert.Len(t, seen, fold)
	}
	assert.Equal(t, 0.0, Angle(0, 6))
	assert.Equal(t, 0.0, Angle(3, 1))
}

func TestApplyEmptyPath(t *testing.T) {
	out := Apply(nil, 3, center)
	require.Len(t, out, 3)
	for _, r := range out {
		assert.Empty(t, r)
	}
}
