// Package board holds the interactive drawing state of one kolam canvas:
// the dot grid, the stroke history and the in-progress gesture. It turns
// pointer events into committed strokes and exposes an immutable Scene for
// rendering after every change.
//
// A Controller is driven from a single goroutine (the UI event loop) and is
// not safe for concurrent use. Snapshots and scenes it hands out are copies
// and may be used from any goroutine.
package board

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/Ash22686/Kolam-Kar/internal/grid"
	"github.com/Ash22686/Kolam-Kar/internal/state"
)

var ErrEmptyDrawing = errors.New("board: drawing has no strokes")

type Mode int

const (
	ModePointToPoint Mode = iota
	ModeFreehand
)

func (m Mode) String() string {
	if m == ModeFreehand {
		return "freehand"
	}
	return "point-to-point"
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "point-to-point", "point":
		return ModePointToPoint, nil
	case "freehand":
		return ModeFreehand, nil
	}
	return 0, fmt.Errorf("board: unknown draw mode %q", s)
}

// Geometry holds the fixed canvas constants.
type Geometry struct {
	CanvasSize    float64
	Padding       float64
	SnapThreshold float64
}

func DefaultGeometry() Geometry {
	return Geometry{
		CanvasSize:    800,
		Padding:       60,
		SnapThreshold: grid.SnapThreshold,
	}
}

func (g Geometry) Validate() error {
	if !(g.CanvasSize > 0) {
		return fmt.Errorf("board: canvas size must be positive, got %v", g.CanvasSize)
	}
	if g.Padding < 0 || 2*g.Padding >= g.CanvasSize {
		return fmt.Errorf("board: padding %v does not fit canvas %v", g.Padding, g.CanvasSize)
	}
	if !(g.SnapThreshold > 0) {
		return fmt.Errorf("board: snap threshold must be positive, got %v", g.SnapThreshold)
	}
	return nil
}

func (g Geometry) Center() state.Point {
	return state.Point{X: g.CanvasSize / 2, Y: g.CanvasSize / 2}
}

// Brush is the style applied to the next committed stroke.
type Brush struct {
	Color     string
	Thickness float64
	Fold      state.Fold
}

// Controller is the drawing surface state machine.
type Controller struct {
	geom    Geometry
	grid    *grid.Grid
	history *state.History

	mode    Mode
	tool    state.Tool
	brush   Brush
	gesture Gesture

	observers []func()
	log       *slog.Logger
}

// New returns a controller with an empty history for a size x size grid.
func New(geom Geometry, size state.GridSize, log *slog.Logger) (*Controller, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	g, err := grid.New(int(size), geom.CanvasSize, geom.Padding)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		geom:    geom,
		grid:    g,
		history: state.NewHistory(),
		mode:    ModePointToPoint,
		tool:    state.ToolLine,
		brush: Brush{
			Color:     "#000000",
			Thickness: 4,
			Fold:      6,
		},
		log: log,
	}, nil
}

// Observe registers fn to run once after every change that needs a redraw.
func (c *Controller) Observe(fn func()) {
	c.observers = append(c.observers, fn)
}

func (c *Controller) changed() {
	for _, fn := range c.observers {
		fn()
	}
}

func (c *Controller) Geometry() Geometry      { return c.geom }
func (c *Controller) GridSize() state.GridSize { return state.GridSize(c.grid.Size) }
func (c *Controller) Mode() Mode               { return c.mode }
func (c *Controller) Tool() state.Tool         { return c.tool }
func (c *Controller) Brush() Brush             { return c.brush }
func (c *Controller) CanUndo() bool            { return c.history.CanUndo() }
func (c *Controller) CanRedo() bool            { return c.history.CanRedo() }
func (c *Controller) Len() int                 { return c.history.Len() }

// SetGridSize recomputes the dot layout. Committed strokes are kept; the
// in-progress gesture is dropped.
func (c *Controller) SetGridSize(size state.GridSize) error {
	if err := size.Validate(); err != nil {
		return err
	}
	g, err := grid.New(int(size), c.geom.CanvasSize, c.geom.Padding)
	if err != nil {
		return err
	}
	c.grid = g
	c.gesture.reset()
	c.log.Debug("grid changed", slog.String("grid", size.String()))
	c.changed()
	return nil
}

func (c *Controller) SetMode(m Mode) {
	c.mode = m
	c.gesture.reset()
	c.changed()
}

// SetTool selects the point-to-point primitive. Any tool other than Circle
// places lines; freehand mode always produces curves.
func (c *Controller) SetTool(t state.Tool) {
	c.tool = t
	c.gesture.reset()
	c.changed()
}

func (c *Controller) SetColor(hex string) error {
	if _, err := state.ParseHexColor(hex); err != nil {
		return err
	}
	c.brush.Color = hex
	c.changed()
	return nil
}

func (c *Controller) SetThickness(t float64) error {
	if err := state.ValidateThickness(t); err != nil {
		return err
	}
	c.brush.Thickness = t
	c.changed()
	return nil
}

func (c *Controller) SetFold(f state.Fold) {
	f = min(max(f, 1), state.MaxFold)
	c.brush.Fold = f
	c.changed()
}

func (c *Controller) Undo() {
	if c.history.Undo() {
		c.changed()
	}
}

func (c *Controller) Redo() {
	if c.history.Redo() {
		c.changed()
	}
}

func (c *Controller) Clear() {
	if c.history.Len() == 0 && !c.history.CanRedo() {
		return
	}
	c.history.Clear()
	c.log.Debug("history cleared")
	c.changed()
}

func (c *Controller) commit(s state.Stroke) {
	s.ID = state.NewID()
	s.Color = c.brush.Color
	s.Thickness = c.brush.Thickness
	s.Symmetry = c.brush.Fold
	c.history.Append(s)
	c.log.Debug("stroke committed",
		slog.String("tool", s.Tool.String()),
		slog.Int("points", len(s.Points)),
		slog.Int("fold", s.Symmetry.Count()))
}

func (c *Controller) clamp(p state.Point) state.Point {
	size := c.geom.CanvasSize
	return state.Point{
		X: math.Min(math.Max(p.X, 0), size),
		Y: math.Min(math.Max(p.Y, 0), size),
	}
}

// Snapshot returns the drawing for persistence.
func (c *Controller) Snapshot(name string) (state.Snapshot, error) {
	if c.history.Len() == 0 {
		return state.Snapshot{}, ErrEmptyDrawing
	}
	return state.NewSnapshot(name, c.GridSize(), c.brush.Fold, c.history.Strokes()), nil
}

// Load replaces the grid, symmetry and history with a stored drawing.
// Nothing changes when the snapshot is invalid.
func (c *Controller) Load(snap state.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	g, err := grid.New(int(snap.Grid), c.geom.CanvasSize, c.geom.Padding)
	if err != nil {
		return err
	}
	c.grid = g
	c.brush.Fold = snap.Symmetry
	c.history.Replace(snap.Strokes)
	c.gesture.reset()
	c.log.Info("drawing loaded",
		slog.String("id", snap.ID),
		slog.String("grid", snap.Grid.String()),
		slog.Int("strokes", len(snap.Strokes)))
	c.changed()
	return nil
}
