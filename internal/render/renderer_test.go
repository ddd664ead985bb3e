package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ash22686/Kolam-Kar/internal/board"
	"github.com/Ash22686/Kolam-Kar/internal/state"
)

type op struct {
	kind   string
	points []state.Point
	radius float64
	width  float64
	color  string
	alpha  float64
}

type recorder struct {
	alpha float64
	ops   []op
}

func (r *recorder) SetAlpha(a float64) { r.alpha = a }

func (r *recorder) Clear(col string) error {
	r.ops = append(r.ops, op{kind: "clear", color: col, alpha: r.alpha})
	return nil
}

func (r *recorder) FillCircle(c state.Point, radius float64, col string) error {
	r.ops = append(r.ops, op{kind: "dot", points: []state.Point{c}, radius: radius, color: col, alpha: r.alpha})
	return nil
}

func (r *recorder) StrokeCircle(c state.Point, radius, width float64, col string) error {
	r.ops = append(r.ops, op{kind: "circle", points: []state.Point{c}, radius: radius, width: width, color: col, alpha: r.alpha})
	return nil
}

func (r *recorder) StrokePolyline(pts []state.Point, width float64, col string) error {
	r.ops = append(r.ops, op{kind: "poly", points: append([]state.Point(nil), pts...), width: width, color: col, alpha: r.alpha})
	return nil
}

func (r *recorder) kinds() []string {
	var out []string
	for _, o := range r.ops {
		if o.kind != "dot" {
			out = append(out, o.kind)
		}
	}
	return out
}

func pt(x, y float64) state.Point { return state.Point{X: x, Y: y} }

func newBoard(t *testing.T, size state.GridSize, fold state.Fold) *board.Controller {
	t.Helper()
	c, err := board.New(board.DefaultGeometry(), size, nil)
	require.NoError(t, err)
	c.SetFold(fold)
	return c
}

func TestExpandLineResnaps(t *testing.T) {
	dots := mustDots(t, 5)
	s := state.Stroke{Tool: state.ToolLine, Points: []state.Point{pt(60, 60), pt(230, 60)}, Symmetry: 4}
	shapes := Expand(s, dots, pt(400, 400))
	require.Len(t, shapes, 4)
	assert.Equal(t, []state.Point{pt(60, 60), pt(230, 60)}, shapes[0].Points)
	assert.Equal(t, []state.Point{pt(740, 60), pt(740, 230)}, shapes[1].Points)
	assert.Equal(t, []state.Point{pt(740, 740), pt(570, 740)}, shapes[2].Points)
	assert.Equal(t, []state.Point{pt(60, 740), pt(60, 570)}, shapes[3].Points)
}

func TestExpandCircleAndCurve(t *testing.T) {
	dots := mustDots(t, 5)
	circle := state.Stroke{Tool: state.ToolCircle, Points: []state.Point{pt(230, 60)}, Radius: -85, Symmetry: 2}
	shapes := Expand(circle, dots, pt(400, 400))
	require.Len(t, shapes, 2)
	assert.Equal(t, 85.0, shapes[0].Radius)
	assert.InDelta(t, 570, shapes[1].Points[0].X, 1e-9)
	assert.InDelta(t, 740, shapes[1].Points[0].Y, 1e-9)

	curve := state.Stroke{Tool: state.ToolCurve, Points: []state.Point{pt(101, 99), pt(133, 140)}, Symmetry: 1}
	shapes = Expand(curve, dots, pt(400, 400))
	require.Len(t, shapes, 1)
	assert.Equal(t, curve.Points, shapes[0].Points, "curves are never snapped")
}

func TestLineFollowsGridChange(t *testing.T) {
	c := newBoard(t, 5, 1)
	c.PointerDown(pt(60, 60))
	c.PointerDown(pt(230, 60))

	require.NoError(t, c.SetGridSize(9))
	sc := c.Scene()
	shapes := Expand(sc.Strokes[0], sc.Dots, sc.Center())
	require.Len(t, shapes, 1)
	for _, p := range shapes[0].Points {
		assert.Contains(t, sc.Dots, p)
	}

	require.NoError(t, c.SetGridSize(6))
	sc = c.Scene()
	shapes = Expand(sc.Strokes[0], sc.Dots, sc.Center())
	assert.Equal(t, []state.Point{pt(60, 60), pt(196, 60)}, shapes[0].Points)
	assert.Equal(t, []state.Point{pt(60, 60), pt(230, 60)}, sc.Strokes[0].Points, "stored points are untouched")
}

func TestRenderDrawOrder(t *testing.T) {
	c := newBoard(t, 5, 1)
	require.NoError(t, c.SetColor("#ff0000"))
	c.PointerDown(pt(60, 60))
	c.PointerDown(pt(230, 60))
	c.PointerDown(pt(400, 400))
	c.PointerMove(pt(572, 401))

	rec := &recorder{}
	require.NoError(t, New(DefaultStyle(), nil).Render(rec, c.Scene()))

	assert.Equal(t, []string{"clear", "poly", "poly", "circle"}, rec.kinds())
	dots := 0
	for _, o := range rec.ops {
		if o.kind == "dot" {
			dots++
			assert.Equal(t, "#4a4a4a", o.color)
			assert.Equal(t, 3.0, o.radius)
		}
	}
	assert.Equal(t, 25, dots)

	n := len(rec.ops)
	preview, hover := rec.ops[n-2], rec.ops[n-1]
	assert.Equal(t, 0.6, preview.alpha)
	assert.Equal(t, []state.Point{pt(400, 400), pt(570, 400)}, preview.points)
	assert.Equal(t, 1.0, hover.alpha)
	assert.Equal(t, pt(570, 400), hover.points[0])
	assert.Equal(t, 10.0, hover.radius)
	assert.Equal(t, 2.0, hover.width)
	assert.Equal(t, "#ff0000", hover.color)
}

func TestRenderNoHoverAwayFromDots(t *testing.T) {
	c := newBoard(t, 5, 1)
	c.PointerMove(pt(145, 145))
	rec := &recorder{}
	require.NoError(t, New(DefaultStyle(), nil).Render(rec, c.Scene()))
	assert.Equal(t, []string{"clear"}, rec.kinds())

	c.PointerMove(pt(62, 58))
	rec = &recorder{}
	require.NoError(t, New(DefaultStyle(), nil).Render(rec, c.Scene()))
	assert.Equal(t, []string{"clear", "circle"}, rec.kinds())

	c.PointerLeave()
	rec = &recorder{}
	require.NoError(t, New(DefaultStyle(), nil).Render(rec, c.Scene()))
	assert.Equal(t, []string{"clear"}, rec.kinds())
}

func TestRenderLiveFreehand(t *testing.T) {
	c := newBoard(t, 5, 6)
	c.SetMode(board.ModeFreehand)
	c.PointerDown(pt(100, 100))
	c.PointerMove(pt(120, 130))

	rec := &recorder{}
	require.NoError(t, New(DefaultStyle(), nil).Render(rec, c.Scene()))
	kinds := rec.kinds()
	assert.Equal(t, "clear", kinds[0])
	assert.Len(t, kinds, 7, "six replicas of the live path")
}

func TestExportExcludesTransientState(t *testing.T) {
	c := newBoard(t, 7, 6)
	c.SetMode(board.ModeFreehand)
	c.PointerDown(pt(100, 100))
	c.PointerMove(pt(150, 160))
	c.PointerUp()
	c.PointerDown(pt(300, 300))
	c.PointerMove(pt(350, 320))
	c.PointerMove(pt(390, 380))
	live := c.Scene()
	require.True(t, live.Gesture.Drawing)

	committed := live
	committed.Gesture = board.Gesture{}

	r := New(DefaultStyle(), nil)
	rec := &recorder{}
	require.NoError(t, r.Paint(rec, live, Options{WithDots: true}))
	assert.Len(t, rec.kinds(), 1+6, "background plus one committed curve per replica")

	withGesture, err := r.Export(live, true)
	require.NoError(t, err)
	without, err := r.Export(committed, true)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(withGesture, without))
}

func TestExportPixels(t *testing.T) {
	c := newBoard(t, 5, 1)
	c.PointerDown(pt(60, 60))
	c.PointerDown(pt(740, 60))
	sc := c.Scene()
	r := New(DefaultStyle(), nil)

	data, err := r.Export(sc, true)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 800, 800), img.Bounds())
	assertPixel(t, img, 10, 10, 0xff, 0xff, 0xff)
	assertPixel(t, img, 400, 400, 0x4a, 0x4a, 0x4a)
	assertPixel(t, img, 400, 60, 0x00, 0x00, 0x00)

	data, err = r.Export(sc, false)
	require.NoError(t, err)
	img, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assertPixel(t, img, 400, 400, 0xff, 0xff, 0xff)
	assertPixel(t, img, 400, 60, 0x00, 0x00, 0x00)
}

func TestExportEmptyDrawing(t *testing.T) {
	c := newBoard(t, 7, 6)
	data, err := New(DefaultStyle(), nil).Export(c.Scene(), false)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assertPixel(t, img, 60, 60, 0xff, 0xff, 0xff)
}

func TestImageSize(t *testing.T) {
	c := newBoard(t, 7, 6)
	img, err := New(DefaultStyle(), nil).Image(c.Scene())
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())

	sc := c.Scene()
	sc.Geometry.CanvasSize = 0
	_, err = New(DefaultStyle(), nil).Image(sc)
	assert.Error(t, err)
}

func mustDots(t *testing.T, size state.GridSize) []state.Point {
	t.Helper()
	return newBoard(t, size, 1).Scene().Dots
}

func assertPixel(t *testing.T, img image.Image, x, y int, r, g, b uint8) {
	t.Helper()
	got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	assert.InDelta(t, float64(r), float64(got.R), 3, "red at %d,%d", x, y)
	assert.InDelta(t, float64(g), float64(got.G), 3, "green at %d,%d", x, y)
	assert.InDelta(t, float64(b), float64(got.B), 3, "blue at %d,%d", x, y)
}
