package net

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Ash22686/Kolam-Kar/internal/state"
)

const (
	LinkScheme  = "kolamboard://"
	DefaultPort = 8888
	// Path of the gallery endpoint, both websocket and plain HTTP listing.
	KolamsPath = "/api/kolams"
)

// Message types exchanged over the gallery websocket.
const (
	MsgSave  = "save"
	MsgAck   = "ack"
	MsgError = "error"
	// MsgSaved tells every other connected peer a drawing was stored.
	MsgSaved = "saved"
)

var (
	ErrRejected = errors.New("gallery rejected the drawing")
	ErrNoHost   = errors.New("no gallery host found on the local network")
)

// Message is one JSON frame on the gallery websocket.
type Message struct {
	Type    string          `json:"type"`
	Drawing *state.Snapshot `json:"drawing,omitempty"`
	ID      string          `json:"id,omitempty"`
	Name    string          `json:"name,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ShareLink formats the address a client can be started with.
func ShareLink(ip string, port int) string {
	return fmt.Sprintf("%s%s:%d", LinkScheme, ip, port)
}

// ParseLink accepts "kolamboard://host:port" or a bare "host:port".
func ParseLink(link string) (string, error) {
	addr := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(link), LinkScheme), "/")
	if addr == "" || strings.Contains(addr, "/") || !strings.Contains(addr, ":") {
		return "", fmt.Errorf("bad gallery address %q", link)
	}
	return addr, nil
}

// Peer is one websocket connection held by the host. Writes are
// serialised; gorilla connections allow a single concurrent writer.
type Peer struct {
	Conn *websocket.Conn
	mu   sync.Mutex
}

func (p *Peer) Send(msg Message, timeout time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.Conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	return p.Conn.WriteJSON(msg)
}

// PeerManager tracks the host's open connections.
type PeerManager struct {
	peers map[string]*Peer
	mu    sync.RWMutex
	log   *slog.Logger
}

func NewPeerManager(log *slog.Logger) *PeerManager {
	return &PeerManager{
		peers: make(map[string]*Peer),
		log:   log,
	}
}

func (pm *PeerManager) Add(peer *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	addr := peer.Conn.RemoteAddr().String()
	pm.peers[addr] = peer
	pm.log.Info("peer connected", slog.String("addr", addr))
}

func (pm *PeerManager) Remove(peer *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	addr := peer.Conn.RemoteAddr().String()
	delete(pm.peers, addr)
	pm.log.Info("peer disconnected", slog.String("addr", addr))
}

func (pm *PeerManager) Len() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Broadcast sends msg to every peer except exclude.
func (pm *PeerManager) Broadcast(msg Message, exclude *Peer) {
	pm.mu.RLock()
	targets := make(map[string]*Peer, len(pm.peers))
	for addr, p := range pm.peers {
		if p != exclude {
			targets[addr] = p
		}
	}
	pm.mu.RUnlock()

	for addr, p := range targets {
		if err := p.Send(msg, writeTimeout); err != nil {
			pm.log.Warn("broadcast failed", slog.String("addr", addr), slog.Any("err", err))
		}
	}
}
