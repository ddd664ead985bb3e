package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Ash22686/Kolam-Kar/internal/export"
	"github.com/Ash22686/Kolam-Kar/internal/state"
	"github.com/Ash22686/Kolam-Kar/internal/store"
)

const (
	writeTimeout = 5 * time.Second
	saveTimeout  = 10 * time.Second
	// Largest websocket frame the host reads. Long freehand drawings stay
	// well below it.
	maxMessageSize = 4 << 20
)

// Host is the gallery server. It stores drawings received over websocket
// in a FileStore and serves them back over plain HTTP.
type Host struct {
	store *store.FileStore
	port  int
	peers *PeerManager
	log   *slog.Logger

	// Render, when set, produces the PNG stored beside each drawing. A
	// thumbnail is derived from it.
	Render func(state.Snapshot) ([]byte, error)

	upgrader websocket.Upgrader
}

func NewHost(fs *store.FileStore, port int, log *slog.Logger) *Host {
	if log == nil {
		log = slog.Default()
	}
	return &Host{
		store: fs,
		port:  port,
		peers: NewPeerManager(log),
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Desktop clients on the LAN send no Origin header.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *Host) Peers() *PeerManager { return h.peers }

func (h *Host) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+KolamsPath, h.handleIndex)
	mux.HandleFunc("GET "+KolamsPath+"/{id}", h.handleGet)
	mux.HandleFunc("GET "+KolamsPath+"/{id}/image", h.handleImage(".png"))
	mux.HandleFunc("GET "+KolamsPath+"/{id}/thumbnail", h.handleImage(".thumb.png"))
	return mux
}

// ListenAndServe runs until ctx is cancelled.
func (h *Host) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", h.port),
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			h.log.Warn("shutdown", slog.Any("err", err))
		}
	}()
	h.log.Info("gallery listening", slog.Int("port", h.port), slog.String("dir", h.store.Dir()))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *Host) handleIndex(w http.ResponseWriter, r *http.Request) {
	if websocket.IsWebSocketUpgrade(r) {
		h.handleSocket(w, r)
		return
	}
	list, err := h.store.List()
	if err != nil {
		h.log.Error("listing drawings", slog.Any("err", err))
		http.Error(w, "could not list drawings", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []store.Entry{}
	}
	writeJSON(w, list)
}

func (h *Host) handleGet(w http.ResponseWriter, r *http.Request) {
	snap, err := h.store.Load(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.log.Error("loading drawing", slog.Any("err", err))
		http.Error(w, "could not load drawing", http.StatusInternalServerError)
		return
	}
	writeJSON(w, snap)
}

func (h *Host) handleImage(ext string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if !state.ValidID(id) {
			http.NotFound(w, r)
			return
		}
		path := filepath.Join(h.store.Dir(), id+ext)
		if _, err := os.Stat(path); err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		http.ServeFile(w, r, path)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Warn("writing response", slog.Any("err", err))
	}
}

func (h *Host) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", slog.Any("err", err))
		return
	}
	conn.SetReadLimit(maxMessageSize)
	peer := &Peer{Conn: conn}
	h.peers.Add(peer)
	defer conn.Close()
	defer h.peers.Remove(peer)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug("read ended", slog.Any("err", err))
			}
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.log.Warn("bad message", slog.String("addr", conn.RemoteAddr().String()), slog.Any("err", err))
			if err := peer.Send(Message{Type: MsgError, Error: err.Error()}, writeTimeout); err != nil {
				return
			}
			continue
		}
		h.log.Debug("received", slog.String("type", msg.Type), slog.String("addr", conn.RemoteAddr().String()))
		if msg.Type != MsgSave {
			continue
		}
		reply := h.save(r.Context(), msg.Drawing)
		if err := peer.Send(reply, writeTimeout); err != nil {
			h.log.Warn("reply failed", slog.Any("err", err))
			return
		}
		if reply.Type == MsgAck {
			h.peers.Broadcast(Message{Type: MsgSaved, ID: reply.ID, Name: reply.Name}, peer)
		}
	}
}

func (h *Host) save(ctx context.Context, snap *state.Snapshot) Message {
	if snap == nil {
		return Message{Type: MsgError, Error: "missing drawing"}
	}
	if len(snap.Strokes) == 0 {
		return Message{Type: MsgError, ID: snap.ID, Error: "drawing is empty"}
	}
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()
	if err := h.store.Save(ctx, *snap); err != nil {
		h.log.Warn("save rejected", slog.String("id", snap.ID), slog.Any("err", err))
		return Message{Type: MsgError, ID: snap.ID, Error: err.Error()}
	}
	h.storeArtifacts(*snap)
	return Message{Type: MsgAck, ID: snap.ID, Name: snap.Name}
}

// storeArtifacts writes the render and thumbnail. Failures only cost the
// preview, the drawing itself is already stored.
func (h *Host) storeArtifacts(snap state.Snapshot) {
	if h.Render == nil {
		return
	}
	img, err := h.Render(snap)
	if err != nil {
		h.log.Warn("render failed", slog.String("id", snap.ID), slog.Any("err", err))
		return
	}
	if err := h.store.SaveArtifact(snap.ID, ".png", img); err != nil {
		h.log.Warn("storing render", slog.String("id", snap.ID), slog.Any("err", err))
		return
	}
	thumb, err := export.ThumbnailPNG(img, export.ThumbnailSide)
	if err != nil {
		h.log.Warn("thumbnail failed", slog.String("id", snap.ID), slog.Any("err", err))
		return
	}
	if err := h.store.SaveArtifact(snap.ID, ".thumb.png", thumb); err != nil {
		h.log.Warn("storing thumbnail", slog.String("id", snap.ID), slog.Any("err", err))
	}
}
