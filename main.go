package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gogpu/gg"

	"github.com/Ash22686/Kolam-Kar/internal/board"
	"github.com/Ash22686/Kolam-Kar/internal/config"
	"github.com/Ash22686/Kolam-Kar/internal/logx"
	gallery "github.com/Ash22686/Kolam-Kar/internal/net"
	"github.com/Ash22686/Kolam-Kar/internal/render"
	"github.com/Ash22686/Kolam-Kar/internal/state"
	"github.com/Ash22686/Kolam-Kar/internal/store"
	"github.com/Ash22686/Kolam-Kar/internal/ui"
)

const autoDiscover = "auto"

func main() {
	settings := loadSettings()
	level, err := logx.ParseLevel(settings.LogLevel)
	log := logx.New(os.Stderr, level)
	if err != nil {
		log.Warn("falling back to info logging", slog.Any("err", err))
	}
	gg.SetLogger(logx.For("gg"))

	args := os.Args
	switch {
	case len(args) > 1 && args[1] == "serve":
		if err := runHost(settings); err != nil {
			log.Error("gallery host stopped", slog.Any("err", err))
			os.Exit(1)
		}
	case len(args) > 1 && strings.HasPrefix(args[1], gallery.LinkScheme):
		runBoard(settings, args[1])
	default:
		runBoard(settings, settings.Gallery.Addr)
	}
}

// loadSettings reads the settings file, writing the defaults on first run.
// Logging is not configured yet, so problems go to stderr.
func loadSettings() config.Settings {
	path, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "settings:", err)
		return config.Defaults()
	}
	settings, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "settings:", err)
		return config.Defaults()
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := config.Save(path, settings); err != nil {
			fmt.Fprintln(os.Stderr, "settings:", err)
		}
	}
	return settings
}

func geometry(s config.Settings) board.Geometry {
	return board.Geometry{
		CanvasSize:    s.Canvas.Size,
		Padding:       s.Canvas.Padding,
		SnapThreshold: s.Canvas.SnapThreshold,
	}
}

func openStore(s config.Settings) (*store.FileStore, error) {
	dir, err := s.GalleryDir()
	if err != nil {
		return nil, err
	}
	return store.NewFileStore(dir, logx.For("store"))
}

func runHost(s config.Settings) error {
	files, err := openStore(s)
	if err != nil {
		return err
	}
	port := s.Gallery.Port
	if port == 0 {
		port = gallery.DefaultPort
	}
	geom := geometry(s)
	r := render.New(render.DefaultStyle(), logx.For("render"))
	h := gallery.NewHost(files, port, logx.For("host"))
	h.Render = func(snap state.Snapshot) ([]byte, error) {
		sc, err := board.SceneOf(snap, geom)
		if err != nil {
			return nil, err
		}
		return r.Export(sc, true)
	}

	log := logx.For("host")
	if srv, err := gallery.Advertise(port); err != nil {
		log.Warn("mDNS advertising disabled", slog.Any("err", err))
	} else {
		defer srv.Shutdown()
	}
	log.Info("share link", slog.String("link", gallery.ShareLink(gallery.OutgoingIP(), port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return h.ListenAndServe(ctx)
}

func runBoard(s config.Settings, addr string) {
	log := logx.For("main")
	saver, where, err := pickSaver(s, addr)
	if err != nil {
		log.Error("no place to save drawings", slog.Any("err", err))
		os.Exit(1)
	}

	ctrl, err := board.New(geometry(s), state.GridSize(s.Canvas.Grid), logx.For("board"))
	if err != nil {
		log.Error("bad canvas settings", slog.Any("err", err))
		os.Exit(1)
	}
	if err := ctrl.SetColor(s.Brush.Color); err != nil {
		log.Warn("ignoring brush color", slog.Any("err", err))
	}
	if err := ctrl.SetThickness(s.Brush.Thickness); err != nil {
		log.Warn("ignoring brush thickness", slog.Any("err", err))
	}
	ctrl.SetFold(state.Fold(s.Brush.Fold))

	r := render.New(render.DefaultStyle(), logx.For("render"))
	ui.RunApp("Kolam Board ("+where+")", ctrl, r, saver, logx.For("ui"))
}

// pickSaver saves to the local gallery directory unless a gallery host is
// named. "auto" finds the host over mDNS at save time.
func pickSaver(s config.Settings, addr string) (store.Saver, string, error) {
	switch addr {
	case "":
		files, err := openStore(s)
		if err != nil {
			return nil, "", err
		}
		return files, files.Dir(), nil
	case autoDiscover:
		return gallery.NewClient("", 10*time.Second, logx.For("client")), "gallery on local network", nil
	}
	hostAddr, err := gallery.ParseLink(addr)
	if err != nil {
		return nil, "", err
	}
	return gallery.NewClient(hostAddr, 10*time.Second, logx.For("client")), "gallery " + hostAddr, nil
}
