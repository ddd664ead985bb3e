// Package symmetry expands a path into its rotated replicas for k-fold
// rotational symmetry.
package symmetry

import (
	"math"

	"github.com/Ash22686/Kolam-Kar/internal/state"
)

// Angle returns the rotation of replica i for the given fold, in radians.
func Angle(i, fold int) float64 {
	if fold <= 1 {
		return 0
	}
	return float64(i) * (2 * math.Pi / float64(fold))
}

// Apply returns fold rotated copies of path about center. Replica 0 is an
// exact copy of path and point order is kept within every replica. A fold
// of 1 or less yields a single copy.
//
// The result never aliases path.
func Apply(path []state.Point, fold int, center state.Point) [][]state.Point {
	if fold <= 1 {
		return [][]state.Point{clone(path)}
	}
	out := make([][]state.Point, fold)
	out[0] = clone(path)
	for i := 1; i < fold; i++ {
		out[i] = Rotate(path, Angle(i, fold), center)
	}
	return out
}

// Rotate turns every point of path by theta about center.
func Rotate(path []state.Point, theta float64, center state.Point) []state.Point {
	sin, cos := math.Sincos(theta)
	out := make([]state.Point, len(path))
	for j, p := range path {
		dx, dy := p.X-center.X, p.Y-center.Y
		out[j] = state.Point{
			X: dx*cos - dy*sin + center.X,
			Y: dx*sin + dy*cos + center.Y,
		}
	}
	return out
}

func clone(path []state.Point) []state.Point {
	return append(make([]state.Point, 0, len(path)), path...)
}
