package render

import (
	"github.com/gogpu/gg"

	"github.com/Ash22686/Kolam-Kar/internal/state"
)

// Canvas is the raster target a Renderer paints on. Colours are "#rrggbb"
// strings as stored on strokes.
type Canvas interface {
	Clear(col string) error
	FillCircle(center state.Point, radius float64, col string) error
	StrokeCircle(center state.Point, radius, width float64, col string) error
	StrokePolyline(points []state.Point, width float64, col string) error
	// SetAlpha scales the opacity of every following draw call.
	SetAlpha(a float64)
}

// GGCanvas draws on a gogpu/gg context with round caps and joins.
type GGCanvas struct {
	dc    *gg.Context
	alpha float64
}

func NewGGCanvas(dc *gg.Context) *GGCanvas {
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	return &GGCanvas{dc: dc, alpha: 1}
}

func (c *GGCanvas) Context() *gg.Context { return c.dc }

func (c *GGCanvas) SetAlpha(a float64) { c.alpha = a }

func (c *GGCanvas) setColor(col string) {
	rgba := gg.Hex(col)
	c.dc.SetRGBA(rgba.R, rgba.G, rgba.B, rgba.A*c.alpha)
}

func (c *GGCanvas) Clear(col string) error {
	c.dc.ClearWithColor(gg.Hex(col))
	return nil
}

func (c *GGCanvas) FillCircle(center state.Point, radius float64, col string) error {
	c.setColor(col)
	c.dc.DrawCircle(center.X, center.Y, radius)
	return c.dc.Fill()
}

func (c *GGCanvas) StrokeCircle(center state.Point, radius, width float64, col string) error {
	c.setColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawCircle(center.X, center.Y, radius)
	return c.dc.Stroke()
}

// StrokePolyline connects points in order. Fewer than two points draw nothing.
func (c *GGCanvas) StrokePolyline(points []state.Point, width float64, col string) error {
	if len(points) < 2 {
		return nil
	}
	c.setColor(col)
	c.dc.SetLineWidth(width)
	c.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	return c.dc.Stroke()
}
