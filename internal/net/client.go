package net

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Ash22686/Kolam-Kar/internal/state"
)

// Client saves drawings to a gallery host. It satisfies store.Saver.
type Client struct {
	// Addr is "host:port". When empty the host is looked up over mDNS on
	// every save.
	Addr    string
	Timeout time.Duration
	log     *slog.Logger
}

func NewClient(addr string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{Addr: addr, Timeout: timeout, log: log}
}

// Save sends snap and waits for the host to acknowledge it.
func (c *Client) Save(ctx context.Context, snap state.Snapshot) error {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	addr := c.Addr
	if addr == "" {
		found, err := Discover(ctx, c.Timeout/2)
		if err != nil {
			return err
		}
		addr = found
		c.log.Info("gallery discovered", slog.String("addr", addr))
	}

	dialer := websocket.Dialer{HandshakeTimeout: c.Timeout}
	conn, _, err := dialer.DialContext(ctx, "ws://"+addr+KolamsPath, nil)
	if err != nil {
		return fmt.Errorf("connecting to gallery %s: %w", addr, err)
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	deadline, _ := ctx.Deadline()
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	if err := conn.WriteJSON(Message{Type: MsgSave, Drawing: &snap}); err != nil {
		return fmt.Errorf("sending drawing: %w", err)
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return err
	}
	for {
		var reply Message
		if err := conn.ReadJSON(&reply); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("waiting for gallery: %w", err)
		}
		switch reply.Type {
		case MsgAck:
			if reply.ID == snap.ID {
				c.log.Info("drawing saved", slog.String("id", snap.ID), slog.String("addr", addr))
				return nil
			}
		case MsgError:
			if reply.ID == "" || reply.ID == snap.ID {
				return fmt.Errorf("%w: %s", ErrRejected, reply.Error)
			}
		}
	}
}
