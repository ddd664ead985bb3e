package render

import (
	"math"

	"github.com/Ash22686/Kolam-Kar/internal/grid"
	"github.com/Ash22686/Kolam-Kar/internal/state"
	"github.com/Ash22686/Kolam-Kar/internal/symmetry"
)

// Shape is one symmetry replica of a stroke, ready to draw. Circles carry a
// single center point; every other tool is a polyline.
type Shape struct {
	Tool   state.Tool
	Points []state.Point
	Radius float64
}

// Expand produces the replicas of s about center. Line endpoints snap to the
// closest dot in dots so lines follow the current layout after a grid
// change. Curves keep their raw points.
func Expand(s state.Stroke, dots []state.Point, center state.Point) []Shape {
	fold := s.Symmetry.Count()
	switch s.Tool {
	case state.ToolLine:
		if len(s.Points) != 2 {
			return nil
		}
		starts := symmetry.Apply(s.Points[:1], fold, center)
		ends := symmetry.Apply(s.Points[1:], fold, center)
		out := make([]Shape, 0, len(starts))
		for i := range starts {
			a, okA := grid.NearestAbsolute(starts[i][0], dots)
			b, okB := grid.NearestAbsolute(ends[i][0], dots)
			if !okA || !okB {
				continue
			}
			out = append(out, Shape{Tool: state.ToolLine, Points: []state.Point{a, b}})
		}
		return out
	case state.ToolCircle:
		if len(s.Points) != 1 {
			return nil
		}
		r := math.Abs(s.Radius)
		var out []Shape
		for _, rep := range symmetry.Apply(s.Points, fold, center) {
			out = append(out, Shape{Tool: state.ToolCircle, Points: rep, Radius: r})
		}
		return out
	default:
		var out []Shape
		for _, rep := range symmetry.Apply(s.Points, fold, center) {
			out = append(out, Shape{Tool: s.Tool, Points: rep})
		}
		return out
	}
}
