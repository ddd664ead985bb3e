package ui

import (
	"fmt"
	"image/color"
	"slices"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Ash22686/Kolam-Kar/internal/board"
	"github.com/Ash22686/Kolam-Kar/internal/state"
)

var (
	gridChoices     = []string{"3x3", "5x5", "7x7", "9x9", "11x11", "13x13"}
	symmetryChoices = []string{"1-fold", "2-fold", "4-fold", "6-fold", "8-fold"}
	modeChoices     = []string{"Point", "Freehand"}
	shapeChoices    = []string{state.ToolLine.String(), state.ToolCircle.String()}
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// Toolbar holds the drawing controls. It mirrors controller state back
// into the widgets after loads and undo/redo.
type Toolbar struct {
	board   *BoardWidget
	actions *Actions
	window  fyne.Window

	mode      *widget.RadioGroup
	shape     *widget.Select
	shapeRow  fyne.CanvasObject
	grid      *widget.Select
	symmetry  *widget.Select
	hex       *widget.Entry
	thickness *widget.Slider
	undo      *widget.Button
	redo      *widget.Button
	clear     *widget.Button
	object    fyne.CanvasObject

	syncing bool
}

func NewToolbar(b *BoardWidget, actions *Actions, w fyne.Window) *Toolbar {
	t := &Toolbar{board: b, actions: actions, window: w}
	ctrl := b.ctrl

	t.mode = widget.NewRadioGroup(modeChoices, func(v string) {
		if t.syncing || v == "" {
			return
		}
		if v == "Freehand" {
			ctrl.SetMode(board.ModeFreehand)
		} else {
			ctrl.SetMode(board.ModePointToPoint)
		}
	})
	t.mode.Horizontal = true
	t.mode.Required = true

	t.shape = widget.NewSelect(shapeChoices, func(v string) {
		if t.syncing {
			return
		}
		if tool, err := state.ParseTool(v); err == nil {
			ctrl.SetTool(tool)
		}
	})

	t.grid = widget.NewSelect(gridChoices, func(v string) {
		if t.syncing {
			return
		}
		size, err := state.ParseGridSize(v)
		if err == nil {
			err = ctrl.SetGridSize(size)
		}
		if err != nil {
			dialog.ShowError(err, w)
		}
	})

	t.symmetry = widget.NewSelect(symmetryChoices, func(v string) {
		if t.syncing {
			return
		}
		ctrl.SetFold(state.ParseFold(v))
	})

	t.hex = widget.NewEntry()
	t.hex.SetPlaceHolder("#000000")
	t.hex.OnSubmitted = func(v string) {
		if err := ctrl.SetColor(v); err != nil {
			dialog.ShowError(err, w)
		}
	}
	onColorTapped := func(c color.Color) {
		hex := state.HexColor(c)
		if err := ctrl.SetColor(hex); err == nil {
			t.hex.SetText(hex)
		}
	}
	colorBox := container.NewHBox(
		newColorSwatch(color.Black, onColorTapped),
		newColorSwatch(color.NRGBA{R: 0xdc, G: 0x26, B: 0x26, A: 255}, onColorTapped), // kumkum red
		newColorSwatch(color.NRGBA{R: 0xea, G: 0xb3, B: 0x08, A: 255}, onColorTapped), // turmeric
		newColorSwatch(color.NRGBA{R: 0x16, G: 0xa3, B: 0x4a, A: 255}, onColorTapped),
		newColorSwatch(color.NRGBA{R: 0x25, G: 0x63, B: 0xeb, A: 255}, onColorTapped),
		newColorSwatch(color.NRGBA{R: 0x93, G: 0x33, B: 0xea, A: 255}, onColorTapped),
	)

	thicknessLabel := widget.NewLabel("")
	t.thickness = widget.NewSlider(1, 30)
	t.thickness.Step = 1
	t.thickness.OnChanged = func(v float64) {
		thicknessLabel.SetText(strconv.Itoa(int(v)))
		if t.syncing {
			return
		}
		if err := ctrl.SetThickness(v); err != nil {
			dialog.ShowError(err, w)
		}
	}

	t.undo = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), ctrl.Undo)
	t.redo = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), ctrl.Redo)
	t.clear = widget.NewButtonWithIcon("", theme.ContentClearIcon(), ctrl.Clear)

	t.shapeRow = container.NewHBox(widget.NewLabel("Shape:"), t.shape)

	t.object = container.NewVBox(
		container.NewHBox(
			widget.NewLabel("Mode:"), t.mode,
			widget.NewSeparator(),
			t.shapeRow,
			widget.NewSeparator(),
			widget.NewLabel("Grid:"), t.grid,
			widget.NewLabel("Symmetry:"), t.symmetry,
			layout.NewSpacer(),
			t.undo, t.redo, t.clear,
		),
		container.NewHBox(
			widget.NewLabel("Color:"), colorBox,
			container.New(layout.NewGridWrapLayout(fyne.NewSize(100, 35)), t.hex),
			widget.NewSeparator(),
			widget.NewLabel("Size:"),
			container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), t.thickness),
			thicknessLabel,
			layout.NewSpacer(),
			widget.NewButtonWithIcon("Save Design", theme.DocumentSaveIcon(), actions.Save),
			widget.NewButtonWithIcon("With dots", theme.DownloadIcon(), func() { actions.DownloadPNG(true) }),
			widget.NewButtonWithIcon("No dots", theme.DownloadIcon(), func() { actions.DownloadPNG(false) }),
			widget.NewButtonWithIcon("PDF", theme.FileIcon(), actions.ExportPDF),
		),
	)

	b.OnChange = t.Sync
	t.Sync()
	return t
}

func (t *Toolbar) Object() fyne.CanvasObject { return t.object }

// Sync copies the controller state into the widgets without feeding the
// changes back.
func (t *Toolbar) Sync() {
	ctrl := t.board.ctrl
	t.syncing = true
	defer func() { t.syncing = false }()

	if ctrl.Mode() == board.ModeFreehand {
		t.mode.SetSelected("Freehand")
		t.shapeRow.Hide()
	} else {
		t.mode.SetSelected("Point")
		t.shapeRow.Show()
	}
	t.shape.SetSelected(shapeLabel(ctrl.Tool()))
	t.grid.Options = withOption(t.grid.Options, ctrl.GridSize().String())
	t.grid.SetSelected(ctrl.GridSize().String())
	brush := ctrl.Brush()
	t.symmetry.Options = withOption(t.symmetry.Options, brush.Fold.String())
	t.symmetry.SetSelected(brush.Fold.String())
	if t.hex.Text != brush.Color {
		t.hex.SetText(brush.Color)
	}
	if t.thickness.Value != brush.Thickness {
		t.thickness.SetValue(brush.Thickness)
	}
	setEnabled(t.undo, ctrl.CanUndo())
	setEnabled(t.redo, ctrl.CanRedo())
	setEnabled(t.clear, ctrl.CanUndo())
	t.board.summary.SetText(summaryText(ctrl.Mode(), ctrl.GridSize(), ctrl.Len()))
}

func summaryText(mode board.Mode, size state.GridSize, strokes int) string {
	return fmt.Sprintf("%s · %s · %d strokes", mode, size, strokes)
}

// shapeLabel shows Curve as Line; point mode places lines for it.
func shapeLabel(tool state.Tool) string {
	if tool == state.ToolCircle {
		return tool.String()
	}
	return state.ToolLine.String()
}

// withOption appends v when a loaded drawing uses a value the selector
// does not offer.
func withOption(options []string, v string) []string {
	if slices.Contains(options, v) {
		return options
	}
	return append(slices.Clone(options), v)
}

func setEnabled(b *widget.Button, on bool) {
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}
