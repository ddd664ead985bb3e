package board

import (
	"log/slog"

	"github.com/Ash22686/Kolam-Kar/internal/state"
)

// Gesture is the transient pointer state. It is never persisted.
type Gesture struct {
	// Drawing is true between pointer-down and pointer-up in freehand mode.
	Drawing bool
	// Path holds the raw pointer samples of the freehand stroke in progress.
	Path []state.Point
	// Anchor is the first dot of a point-to-point line.
	Anchor    state.Point
	HasAnchor bool
	// Pointer is the last known pointer position.
	Pointer    state.Point
	HasPointer bool
}

func (g *Gesture) reset() {
	g.Drawing = false
	g.Path = nil
	g.Anchor = state.Point{}
	g.HasAnchor = false
}

func (g Gesture) clone() Gesture {
	g.Path = append([]state.Point(nil), g.Path...)
	return g
}

func (c *Controller) Gesture() Gesture { return c.gesture.clone() }

// PointerDown starts a freehand stroke or places a point-to-point click.
// Clicks that are not near a dot are ignored.
func (c *Controller) PointerDown(p state.Point) {
	p = c.clamp(p)
	c.gesture.Pointer, c.gesture.HasPointer = p, true

	if c.mode == ModeFreehand {
		c.gesture.Drawing = true
		c.gesture.Path = []state.Point{p}
		c.changed()
		return
	}

	dot, ok := c.grid.Nearest(p, c.geom.SnapThreshold)
	if !ok {
		return
	}
	switch {
	case c.tool == state.ToolCircle:
		c.commit(state.Stroke{
			Tool:   state.ToolCircle,
			Points: []state.Point{dot},
			Radius: c.grid.Spacing() / 2,
		})
	case !c.gesture.HasAnchor:
		c.gesture.Anchor, c.gesture.HasAnchor = dot, true
	default:
		c.commit(state.Stroke{
			Tool:   state.ToolLine,
			Points: []state.Point{c.gesture.Anchor, dot},
		})
		c.gesture.Anchor, c.gesture.HasAnchor = state.Point{}, false
	}
	c.changed()
}

// PointerMove records the pointer position and extends a freehand stroke.
func (c *Controller) PointerMove(p state.Point) {
	p = c.clamp(p)
	c.gesture.Pointer, c.gesture.HasPointer = p, true
	if c.mode == ModeFreehand {
		if !c.gesture.Drawing {
			return
		}
		c.gesture.Path = append(c.gesture.Path, p)
	}
	c.changed()
}

// PointerUp finishes a freehand stroke. A release after a single sample
// is discarded.
func (c *Controller) PointerUp() {
	if c.mode != ModeFreehand || !c.gesture.Drawing {
		return
	}
	path := c.gesture.Path
	c.gesture.Drawing = false
	c.gesture.Path = nil
	if len(path) > 1 {
		c.commit(state.Stroke{Tool: state.ToolCurve, Points: path})
	} else {
		c.log.Debug("freehand gesture discarded", slog.Int("points", len(path)))
	}
	c.changed()
}

// PointerLeave ends a freehand stroke like a release and hides the hover
// indicator.
func (c *Controller) PointerLeave() {
	hadPointer := c.gesture.HasPointer
	c.gesture.HasPointer = false
	if c.mode == ModeFreehand && c.gesture.Drawing {
		c.PointerUp()
		return
	}
	if hadPointer {
		c.changed()
	}
}
