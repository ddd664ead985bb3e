package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/Ash22686/Kolam-Kar/internal/board"
	"github.com/Ash22686/Kolam-Kar/internal/render"
	"github.com/Ash22686/Kolam-Kar/internal/state"
)

const (
	pdfMargin = 15.0  // mm
	pdfSide   = 180.0 // mm, square drawing area on A4 portrait
)

// WritePDF writes the committed drawing as vector paths on one A4 page.
func WritePDF(w io.Writer, sc board.Scene, withDots bool) error {
	if !(sc.Geometry.CanvasSize > 0) {
		return fmt.Errorf("export: canvas size %v", sc.Geometry.CanvasSize)
	}
	scale := pdfSide / sc.Geometry.CanvasSize
	at := func(p state.Point) (float64, float64) {
		return pdfMargin + p.X*scale, pdfMargin + p.Y*scale
	}

	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle("Kolam design", true)
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	if withDots {
		r, g, b := rgb(render.DefaultStyle().DotColor)
		p.SetFillColor(r, g, b)
		for _, d := range sc.Dots {
			x, y := at(d)
			p.Circle(x, y, render.DefaultStyle().DotRadius*scale, "F")
		}
	}

	center := sc.Center()
	for _, st := range sc.Strokes {
		r, g, b := rgb(st.Color)
		p.SetDrawColor(r, g, b)
		p.SetLineWidth(st.Thickness * scale)
		for _, sh := range render.Expand(st, sc.Dots, center) {
			if sh.Tool == state.ToolCircle {
				x, y := at(sh.Points[0])
				p.Circle(x, y, sh.Radius*scale, "D")
				continue
			}
			if len(sh.Points) < 2 {
				continue
			}
			p.MoveTo(at(sh.Points[0]))
			for _, pt := range sh.Points[1:] {
				p.LineTo(at(pt))
			}
			p.DrawPath("D")
		}
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("export: writing pdf: %w", err)
	}
	return nil
}

func rgb(hex string) (int, int, int) {
	c, err := state.ParseHexColor(hex)
	if err != nil {
		return 0, 0, 0
	}
	return int(c.R), int(c.G), int(c.B)
}
