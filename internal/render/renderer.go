// Package render draws a board.Scene. Every frame is painted from scratch:
// background, dots, committed strokes in history order, then the live
// overlays (freehand path, point-to-point preview, hover ring).
package render

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/gogpu/gg"

	"github.com/Ash22686/Kolam-Kar/internal/board"
	"github.com/Ash22686/Kolam-Kar/internal/grid"
	"github.com/Ash22686/Kolam-Kar/internal/state"
)

type Style struct {
	Background   string
	DotColor     string
	DotRadius    float64
	HoverRadius  float64
	HoverWidth   float64
	PreviewAlpha float64
}

func DefaultStyle() Style {
	return Style{
		Background:   "#ffffff",
		DotColor:     "#4a4a4a",
		DotRadius:    3,
		HoverRadius:  10,
		HoverWidth:   2,
		PreviewAlpha: 0.6,
	}
}

// Options select what Paint draws on top of the committed strokes.
type Options struct {
	WithDots bool
	// Live adds the in-progress path, the preview line and the hover ring.
	Live bool
}

type Renderer struct {
	Style Style
	log   *slog.Logger
}

func New(style Style, log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{Style: style, log: log}
}

// Render paints the interactive view: dots and every overlay.
func (r *Renderer) Render(c Canvas, sc board.Scene) error {
	return r.Paint(c, sc, Options{WithDots: true, Live: true})
}

func (r *Renderer) Paint(c Canvas, sc board.Scene, opts Options) error {
	c.SetAlpha(1)
	if err := c.Clear(r.Style.Background); err != nil {
		return err
	}
	if opts.WithDots {
		for _, d := range sc.Dots {
			if err := c.FillCircle(d, r.Style.DotRadius, r.Style.DotColor); err != nil {
				return err
			}
		}
	}
	center := sc.Center()
	for _, s := range sc.Strokes {
		if err := drawShapes(c, Expand(s, sc.Dots, center), s.Color, s.Thickness); err != nil {
			return err
		}
	}
	if !opts.Live {
		return nil
	}
	return r.paintOverlays(c, sc)
}

func (r *Renderer) paintOverlays(c Canvas, sc board.Scene) error {
	g, brush := sc.Gesture, sc.Brush
	center := sc.Center()

	if sc.Mode == board.ModeFreehand {
		if !g.Drawing || len(g.Path) < 2 {
			return nil
		}
		live := state.Stroke{Tool: state.ToolCurve, Points: g.Path, Symmetry: brush.Fold}
		return drawShapes(c, Expand(live, sc.Dots, center), brush.Color, brush.Thickness)
	}

	if !g.HasPointer {
		return nil
	}
	hover, near := grid.NearestWithinThreshold(g.Pointer, sc.Dots, sc.Geometry.SnapThreshold)
	if g.HasAnchor {
		end := g.Pointer
		if near {
			end = hover
		}
		preview := state.Stroke{
			Tool:     state.ToolLine,
			Points:   []state.Point{g.Anchor, end},
			Symmetry: brush.Fold,
		}
		c.SetAlpha(r.Style.PreviewAlpha)
		err := drawShapes(c, Expand(preview, sc.Dots, center), brush.Color, brush.Thickness)
		c.SetAlpha(1)
		if err != nil {
			return err
		}
	}
	if near {
		return c.StrokeCircle(hover, r.Style.HoverRadius, r.Style.HoverWidth, brush.Color)
	}
	return nil
}

func drawShapes(c Canvas, shapes []Shape, col string, width float64) error {
	for _, sh := range shapes {
		var err error
		if sh.Tool == state.ToolCircle {
			err = c.StrokeCircle(sh.Points[0], sh.Radius, width, col)
		} else {
			err = c.StrokePolyline(sh.Points, width, col)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) raster(sc board.Scene, opts Options) (*gg.Context, error) {
	size := int(math.Round(sc.Geometry.CanvasSize))
	if size <= 0 {
		return nil, fmt.Errorf("render: canvas size %v", sc.Geometry.CanvasSize)
	}
	dc := gg.NewContext(size, size)
	if err := r.Paint(NewGGCanvas(dc), sc, opts); err != nil {
		dc.Close()
		return nil, fmt.Errorf("render: %w", err)
	}
	return dc, nil
}

// Image rasterises the interactive view of sc.
func (r *Renderer) Image(sc board.Scene) (image.Image, error) {
	dc, err := r.raster(sc, Options{WithDots: true, Live: true})
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// Export encodes the committed drawing as PNG at the canvas's native size.
// Live overlays are never part of an export. An empty drawing still
// exports as a blank or dots-only image.
func (r *Renderer) Export(sc board.Scene, withDots bool) ([]byte, error) {
	dc, err := r.raster(sc, Options{WithDots: withDots})
	if err != nil {
		return nil, err
	}
	defer dc.Close()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("render: encoding png: %w", err)
	}
	r.log.Debug("exported png",
		slog.Bool("dots", withDots),
		slog.Int("strokes", len(sc.Strokes)),
		slog.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}
