package grid

import (
	"math"

	"github.com/Ash22686/Kolam-Kar/internal/state"
)

// SnapThreshold is the default snap radius in canvas units, shared by
// gesture snapping and the hover indicator.
const SnapThreshold = 25.0

// NearestWithinThreshold returns the dot closest to p when that distance is
// strictly below threshold. Equidistant dots resolve to the one that comes
// first in dots, so row-major layouts prefer the upper, then the left dot.
func NearestWithinThreshold(p state.Point, dots []state.Point, threshold float64) (state.Point, bool) {
	best, ok := nearest(p, dots)
	if !ok || !(p.Dist(best) < threshold) {
		return state.Point{}, false
	}
	return best, true
}

// NearestAbsolute returns the closest dot regardless of distance. It only
// fails when dots is empty.
func NearestAbsolute(p state.Point, dots []state.Point) (state.Point, bool) {
	return nearest(p, dots)
}

func nearest(p state.Point, dots []state.Point) (state.Point, bool) {
	if len(dots) == 0 {
		return state.Point{}, false
	}
	best, bestDist := dots[0], math.Inf(1)
	for _, d := range dots {
		if dist := p.Dist(d); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best, true
}
