package net

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ash22686/Kolam-Kar/internal/board"
	"github.com/Ash22686/Kolam-Kar/internal/render"
	"github.com/Ash22686/Kolam-Kar/internal/state"
	"github.com/Ash22686/Kolam-Kar/internal/store"
)

func drawing(t *testing.T) state.Snapshot {
	t.Helper()
	c, err := board.New(board.DefaultGeometry(), 5, nil)
	require.NoError(t, err)
	c.PointerDown(state.Point{X: 60, Y: 60})
	c.PointerDown(state.Point{X: 230, Y: 230})
	snap, err := c.Snapshot("My Kolam Design")
	require.NoError(t, err)
	return snap
}

func startHost(t *testing.T) (*Host, *store.FileStore, string) {
	t.Helper()
	fs, err := store.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	h := NewHost(fs, 0, nil)
	r := render.New(render.DefaultStyle(), nil)
	h.Render = func(s state.Snapshot) ([]byte, error) {
		sc, err := board.SceneOf(s, board.DefaultGeometry())
		if err != nil {
			return nil, err
		}
		return r.Export(sc, true)
	}
	srv := httptest.NewServer(h.Handler())
	t.Cleanup(srv.Close)
	return h, fs, strings.TrimPrefix(srv.URL, "http://")
}

func TestClientSaveStoresDrawing(t *testing.T) {
	_, fs, addr := startHost(t)
	snap := drawing(t)

	c := NewClient(addr, 5*time.Second, nil)
	require.NoError(t, c.Save(context.Background(), snap))

	got, err := fs.Load(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.Strokes, got.Strokes)
	assert.FileExists(t, filepath.Join(fs.Dir(), snap.ID+".png"))
	assert.FileExists(t, filepath.Join(fs.Dir(), snap.ID+".thumb.png"))

	resp, err := http.Get("http://" + addr + KolamsPath)
	require.NoError(t, err)
	defer resp.Body.Close()
	var list []store.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "My Kolam Design", list[0].Name)
	assert.Equal(t, state.GridSize(5), list[0].Grid)

	img, err := http.Get("http://" + addr + KolamsPath + "/" + snap.ID + "/image")
	require.NoError(t, err)
	img.Body.Close()
	assert.Equal(t, http.StatusOK, img.StatusCode)
	assert.Equal(t, "image/png", img.Header.Get("Content-Type"))
}

func TestClientSaveRejected(t *testing.T) {
	_, fs, addr := startHost(t)
	snap := drawing(t)
	snap.Strokes = nil

	err := NewClient(addr, 5*time.Second, nil).Save(context.Background(), snap)
	assert.ErrorIs(t, err, ErrRejected)
	_, err = fs.Load(snap.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestHostRejectsOversizedDrawing(t *testing.T) {
	_, fs, addr := startHost(t)

	snap := drawing(t)
	snap.Strokes[0].Symmetry = 1 << 40
	err := NewClient(addr, 5*time.Second, nil).Save(context.Background(), snap)
	assert.ErrorIs(t, err, ErrRejected)
	_, err = fs.Load(snap.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+KolamsPath, nil)
	require.NoError(t, err)
	defer conn.Close()
	frame := `{"type":"save","drawing":{"id":"x","grid":"100000x100000","symmetry":"4-fold","paths":[]}}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var reply Message
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, MsgError, reply.Type)

	entries, err := fs.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClientSaveUnreachable(t *testing.T) {
	err := NewClient("127.0.0.1:1", time.Second, nil).Save(context.Background(), drawing(t))
	assert.Error(t, err)
}

func TestHostBroadcastsSaves(t *testing.T) {
	h, _, addr := startHost(t)

	watcher, _, err := websocket.DefaultDialer.Dial("ws://"+addr+KolamsPath, nil)
	require.NoError(t, err)
	defer watcher.Close()
	require.Eventually(t, func() bool { return h.Peers().Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	snap := drawing(t)
	require.NoError(t, NewClient(addr, 5*time.Second, nil).Save(context.Background(), snap))

	require.NoError(t, watcher.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, watcher.ReadJSON(&msg))
	assert.Equal(t, MsgSaved, msg.Type)
	assert.Equal(t, snap.ID, msg.ID)
	assert.Equal(t, "My Kolam Design", msg.Name)
}

func TestBroadcastDoesNotBlockNewPeers(t *testing.T) {
	h, _, addr := startHost(t)

	slow, _, err := websocket.DefaultDialer.Dial("ws://"+addr+KolamsPath, nil)
	require.NoError(t, err)
	defer slow.Close()
	require.Eventually(t, func() bool { return h.Peers().Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	var stuck *Peer
	h.peers.mu.RLock()
	for _, p := range h.peers.peers {
		stuck = p
	}
	h.peers.mu.RUnlock()

	// Hold the peer's write lock so the broadcast blocks on it.
	stuck.mu.Lock()
	done := make(chan struct{})
	go func() {
		h.Peers().Broadcast(Message{Type: MsgSaved, ID: "x"}, nil)
		close(done)
	}()

	next, _, err := websocket.DefaultDialer.Dial("ws://"+addr+KolamsPath, nil)
	require.NoError(t, err)
	defer next.Close()
	assert.Eventually(t, func() bool { return h.Peers().Len() == 2 }, 2*time.Second, 10*time.Millisecond)

	stuck.mu.Unlock()
	<-done
}

func TestHostGetDrawing(t *testing.T) {
	_, fs, addr := startHost(t)
	snap := drawing(t)
	require.NoError(t, fs.Save(context.Background(), snap))

	resp, err := http.Get("http://" + addr + KolamsPath + "/" + snap.ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	got, err := state.DecodeSnapshot(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)

	missing, err := http.Get("http://" + addr + KolamsPath + "/" + state.NewID())
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	noImage, err := http.Get("http://" + addr + KolamsPath + "/" + snap.ID + "/thumbnail")
	require.NoError(t, err)
	noImage.Body.Close()
	assert.Equal(t, http.StatusNotFound, noImage.StatusCode)
}

func TestParseLink(t *testing.T) {
	addr, err := ParseLink("kolamboard://192.168.1.4:8888/")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.4:8888", addr)

	addr, err = ParseLink("localhost:9000")
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", addr)

	for _, bad := range []string{"", "kolamboard://", "host", "http://x:1/a"} {
		_, err := ParseLink(bad)
		assert.Error(t, err, bad)
	}
	assert.Equal(t, "kolamboard://10.0.0.2:8888", ShareLink("10.0.0.2", DefaultPort))
}

func TestOutgoingIP(t *testing.T) {
	assert.NotEmpty(t, OutgoingIP())
}
