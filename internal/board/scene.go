package board

import (
	"github.com/Ash22686/Kolam-Kar/internal/grid"
	"github.com/Ash22686/Kolam-Kar/internal/state"
)

// Scene is everything a frame is drawn from. Rendering is a pure function
// of a Scene; the controller builds a fresh one for every redraw.
type Scene struct {
	Geometry Geometry
	Dots     []state.Point
	Strokes  []state.Stroke
	Mode     Mode
	Brush    Brush
	Gesture  Gesture
}

// Center is the rotation center used for every stroke.
func (s Scene) Center() state.Point { return s.Geometry.Center() }

// Scene returns a copy of the current state.
func (c *Controller) Scene() Scene {
	return Scene{
		Geometry: c.geom,
		Dots:     append([]state.Point(nil), c.grid.Dots...),
		Strokes:  c.history.Strokes(),
		Mode:     c.mode,
		Brush:    c.brush,
		Gesture:  c.gesture.clone(),
	}
}

// SceneOf builds a gesture-free scene for a stored drawing, as used when
// rendering saved drawings outside an interactive board.
func SceneOf(snap state.Snapshot, geom Geometry) (Scene, error) {
	if err := geom.Validate(); err != nil {
		return Scene{}, err
	}
	if err := snap.Validate(); err != nil {
		return Scene{}, err
	}
	dots, err := grid.Compute(int(snap.Grid), geom.CanvasSize, geom.Padding)
	if err != nil {
		return Scene{}, err
	}
	strokes := make([]state.Stroke, len(snap.Strokes))
	for i, s := range snap.Strokes {
		strokes[i] = s.Clone()
	}
	return Scene{
		Geometry: geom,
		Dots:     dots,
		Strokes:  strokes,
		Brush:    Brush{Color: "#000000", Thickness: 4, Fold: snap.Symmetry},
	}, nil
}
