package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/Ash22686/Kolam-Kar/internal/board"
	"github.com/Ash22686/Kolam-Kar/internal/export"
	"github.com/Ash22686/Kolam-Kar/internal/state"
	"github.com/Ash22686/Kolam-Kar/internal/store"
)

const (
	defaultDesignName = "My Kolam Design"
	saveTimeout       = 15 * time.Second
)

// Actions wires the toolbar buttons to persistence and export.
type Actions struct {
	board  *BoardWidget
	window fyne.Window
	saver  store.Saver
	log    *slog.Logger
}

func NewActions(b *BoardWidget, w fyne.Window, saver store.Saver, log *slog.Logger) *Actions {
	return &Actions{board: b, window: w, saver: saver, log: log}
}

// Save asks for a name and hands the drawing to the saver in the
// background. Drawing continues while the save is in flight.
func (a *Actions) Save() {
	if a.board.ctrl.Len() == 0 {
		dialog.ShowInformation("Nothing to save", "Canvas is empty! Draw something to save.", a.window)
		return
	}
	name := widget.NewEntry()
	name.SetText(defaultDesignName)
	dialog.ShowForm("Save design", "Save", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", name)},
		func(ok bool) {
			if ok {
				a.saveAs(name.Text)
			}
		}, a.window)
}

func (a *Actions) saveAs(name string) {
	snap, err := a.board.ctrl.Snapshot(name)
	if errors.Is(err, board.ErrEmptyDrawing) {
		dialog.ShowInformation("Nothing to save", "Canvas is empty! Draw something to save.", a.window)
		return
	}
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.board.SetStatus("Saving...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		err := a.saver.Save(ctx, snap)
		fyne.Do(func() {
			if err != nil {
				a.log.Warn("save failed", slog.String("id", snap.ID), slog.Any("err", err))
				a.board.statusBar.SetText("Save failed")
				dialog.ShowError(fmt.Errorf("could not save your design: %w", err), a.window)
				return
			}
			a.board.statusBar.SetText(fmt.Sprintf("Saved %q", snap.Name))
			dialog.ShowInformation("Saved", "Your design has been saved!", a.window)
		})
	}()
}

// DownloadPNG writes the committed drawing, with or without the dot grid.
func (a *Actions) DownloadPNG(withDots bool) {
	sc := a.board.ctrl.Scene()
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if wc == nil {
			return
		}
		defer wc.Close()
		if err := export.WritePNG(wc, a.board.renderer, sc, withDots); err != nil {
			a.log.Error("png export failed", slog.Any("err", err))
			dialog.ShowError(err, a.window)
			return
		}
		a.log.Info("png exported", slog.String("uri", wc.URI().String()))
		a.board.SetStatus("Exported " + wc.URI().Name())
	}, a.window)
	d.SetFileName(export.FileName(withDots))
	d.Show()
}

func (a *Actions) ExportPDF() {
	sc := a.board.ctrl.Scene()
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if wc == nil {
			return
		}
		defer wc.Close()
		if err := export.WritePDF(wc, sc, true); err != nil {
			a.log.Error("pdf export failed", slog.Any("err", err))
			dialog.ShowError(err, a.window)
			return
		}
		a.board.SetStatus("Exported " + wc.URI().Name())
	}, a.window)
	d.SetFileName("kolam-design.pdf")
	d.Show()
}

// SaveToFile writes the drawing as JSON to a file the user picks.
func (a *Actions) SaveToFile() {
	snap, err := a.board.ctrl.Snapshot(defaultDesignName)
	if errors.Is(err, board.ErrEmptyDrawing) {
		dialog.ShowInformation("Nothing to save", "Canvas is empty! Draw something to save.", a.window)
		return
	}
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if wc == nil {
			return
		}
		defer wc.Close()
		enc := json.NewEncoder(wc)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			a.log.Error("writing drawing", slog.Any("err", err))
			dialog.ShowError(err, a.window)
			return
		}
		a.board.SetStatus(fmt.Sprintf("Saved %d strokes", len(snap.Strokes)))
	}, a.window)
	d.SetFileName("kolam-design.json")
	d.Show()
}

// LoadFromFile replaces the board with a drawing read from JSON.
func (a *Actions) LoadFromFile() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if rc == nil {
			return
		}
		defer rc.Close()
		snap, err := state.DecodeSnapshot(rc)
		if err == nil {
			err = a.board.ctrl.Load(snap)
		}
		if err != nil {
			a.log.Warn("open failed", slog.String("uri", rc.URI().String()), slog.Any("err", err))
			dialog.ShowError(fmt.Errorf("error parsing file: %w", err), a.window)
			return
		}
		a.board.SetStatus(fmt.Sprintf("Loaded %d strokes", len(snap.Strokes)))
	}, a.window)
	d.Show()
}
