package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"github.com/Ash22686/Kolam-Kar/internal/board"
	"github.com/Ash22686/Kolam-Kar/internal/render"
	"github.com/Ash22686/Kolam-Kar/internal/store"
)

// RunApp opens the board window and blocks until it is closed. title may
// carry the gallery the drawings are saved to.
func RunApp(title string, ctrl *board.Controller, r *render.Renderer, saver store.Saver, log *slog.Logger) {
	myApp := app.NewWithID("io.github.kolamkar.board")
	myWindow := myApp.NewWindow(title)
	myWindow.Resize(fyne.NewSize(1100, 900))

	b := NewBoardWidget(ctrl, r, log)
	actions := NewActions(b, myWindow, saver, log)
	toolbar := NewToolbar(b, actions, myWindow)

	myWindow.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("Open...", actions.LoadFromFile),
			fyne.NewMenuItem("Save as JSON...", actions.SaveToFile),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Save Design", actions.Save),
			fyne.NewMenuItem("Download PNG with dots...", func() { actions.DownloadPNG(true) }),
			fyne.NewMenuItem("Download PNG without dots...", func() { actions.DownloadPNG(false) }),
			fyne.NewMenuItem("Export PDF...", actions.ExportPDF),
		),
		fyne.NewMenu("Edit",
			fyne.NewMenuItem("Undo", ctrl.Undo),
			fyne.NewMenuItem("Redo", ctrl.Redo),
			fyne.NewMenuItem("Clear", ctrl.Clear),
		),
	))

	footer := container.NewBorder(nil, nil, nil, b.Summary(), b.StatusBar())
	content := container.NewBorder(toolbar.Object(), footer, nil, nil, b)
	myWindow.SetContent(content)
	log.Info("window open", slog.String("title", title))
	myWindow.ShowAndRun()
}
