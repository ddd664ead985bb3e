package ui

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/Ash22686/Kolam-Kar/internal/board"
	"github.com/Ash22686/Kolam-Kar/internal/render"
	"github.com/Ash22686/Kolam-Kar/internal/state"
)

// BoardWidget shows the kolam canvas and feeds pointer events to the
// controller. The canvas keeps its square aspect and is centered in the
// widget.
type BoardWidget struct {
	widget.BaseWidget
	ctrl      *board.Controller
	renderer  *render.Renderer
	img       *canvas.Image
	statusBar *widget.Label
	summary   *widget.Label
	log       *slog.Logger

	// OnChange runs after every redraw so the toolbar can track undo and
	// redo availability.
	OnChange func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(ctrl *board.Controller, r *render.Renderer, log *slog.Logger) *BoardWidget {
	b := &BoardWidget{
		ctrl:      ctrl,
		renderer:  r,
		statusBar: widget.NewLabel("Ready"),
		summary:   widget.NewLabel(""),
		log:       log,
	}
	b.img = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	b.img.FillMode = canvas.ImageFillContain
	b.img.ScaleMode = canvas.ImageScaleSmooth
	b.img.SetMinSize(fyne.NewSize(400, 400))
	b.ExtendBaseWidget(b)

	ctrl.Observe(b.redraw)
	b.redraw()
	return b
}

func (b *BoardWidget) Controller() *board.Controller { return b.ctrl }
func (b *BoardWidget) Renderer() *render.Renderer    { return b.renderer }
func (b *BoardWidget) StatusBar() *widget.Label      { return b.statusBar }

// Summary shows mode, grid and stroke count. It is kept apart from the
// status bar so action messages survive pointer moves.
func (b *BoardWidget) Summary() *widget.Label { return b.summary }

// SetStatus is safe to call from any goroutine.
func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

func (b *BoardWidget) redraw() {
	img, err := b.renderer.Image(b.ctrl.Scene())
	if err != nil {
		b.log.Error("render failed", slog.Any("err", err))
		return
	}
	b.img.Image = img
	b.img.Refresh()
	if b.OnChange != nil {
		b.OnChange()
	}
}

// canvasPoint maps a widget position to canvas units for a square canvas
// of side canvasSize drawn contained and centered in a widget of the given
// size. ok is false when pos lies outside the drawn canvas.
func canvasPoint(pos fyne.Position, size fyne.Size, canvasSize float64) (p state.Point, ok bool) {
	side := math.Min(float64(size.Width), float64(size.Height))
	if side <= 0 || canvasSize <= 0 {
		return state.Point{}, false
	}
	scale := side / canvasSize
	offX := (float64(size.Width) - side) / 2
	offY := (float64(size.Height) - side) / 2
	p = state.Point{
		X: (float64(pos.X) - offX) / scale,
		Y: (float64(pos.Y) - offY) / scale,
	}
	ok = p.X >= 0 && p.Y >= 0 && p.X <= canvasSize && p.Y <= canvasSize
	return p, ok
}

func (b *BoardWidget) toCanvas(pos fyne.Position) (state.Point, bool) {
	return canvasPoint(pos, b.Size(), b.ctrl.Geometry().CanvasSize)
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	if p, ok := b.toCanvas(e.Position); ok {
		b.ctrl.PointerDown(p)
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.ctrl.PointerUp()
	}
}

// Positions outside the canvas are passed on; the controller clamps them
// so a stroke dragged past the edge keeps following the pointer.
func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	p, _ := b.toCanvas(e.Position)
	b.ctrl.PointerMove(p)
}

func (b *BoardWidget) DragEnd() {
	b.ctrl.PointerUp()
}

func (b *BoardWidget) MouseIn(e *desktop.MouseEvent) {
	b.MouseMoved(e)
}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	p, ok := b.toCanvas(e.Position)
	if !ok {
		b.ctrl.PointerLeave()
		return
	}
	b.ctrl.PointerMove(p)
}

func (b *BoardWidget) MouseOut() {
	b.ctrl.PointerLeave()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.NRGBA{R: 245, G: 246, B: 248, A: 255})
	return widget.NewSimpleRenderer(container.NewStack(bg, b.img))
}
