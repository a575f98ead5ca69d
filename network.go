package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	reconnectDelay = 3 * time.Second
	writeWait      = 10 * time.Second
	inboundBuffer  = 256
)

// gameClient maintains the websocket session with the world server. It
// reconnects forever on a fixed cadence until its context is canceled, and
// hands every decoded inbound message to the game loop over a channel.
type gameClient struct {
	url      string
	username string
	inbound  chan serverMessage

	mu   sync.Mutex
	conn *websocket.Conn

	connected atomic.Bool
	rxBytes   atomic.Int64
	txBytes   atomic.Int64
	rxMsgs    atomic.Int64
	txMsgs    atomic.Int64
}

func newGameClient(url, username string) *gameClient {
	return &gameClient{
		url:      url,
		username: username,
		inbound:  make(chan serverMessage, inboundBuffer),
	}
}

// run dials and re-dials the server until ctx is canceled. The limiter
// spaces attempts a fixed delay apart; there is no backoff and no attempt
// cap, matching a client that should always find its way back.
func (c *gameClient) run(ctx context.Context) {
	limiter := rate.NewLimiter(rate.Every(reconnectDelay), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		if err := c.session(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			logError("connection lost: %v (retrying in %v)", err, reconnectDelay)
		}
	}
}

// session runs one connection: dial, join handshake, then the read pump
// until the connection dies or ctx is canceled.
func (c *gameClient) session(ctx context.Context) error {
	dialCtx, cancel := context.WithTimeout(ctx, writeWait)
	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, c.url, nil)
	cancel()
	if err != nil {
		return fmt.Errorf("dial %v: %w", c.url, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.connected.Store(true)
	logInfo("connected to %v", c.url)

	defer func() {
		c.connected.Store(false)
		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
		conn.Close()
	}()

	// Close the socket when the session context ends so the read pump
	// unblocks. The stop channel keeps this watcher from outliving us.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	if err := c.sendCommand(joinCommand(c.username)); err != nil {
		return fmt.Errorf("join handshake: %w", err)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		c.rxBytes.Add(int64(len(data)))
		c.rxMsgs.Add(1)
		msg, err := decodeServerMessage(data)
		if err != nil {
			// Malformed payloads cost one message, never the stream.
			logError("discarding inbound message: %v", err)
			continue
		}
		select {
		case c.inbound <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// sendCommand writes one outbound message. Writes are serialized by the
// mutex; failures are reported to the caller but the connection is left for
// the read pump to declare dead.
func (c *gameClient) sendCommand(msg clientMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode %s: %w", msg.Action, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return fmt.Errorf("not connected")
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	c.txBytes.Add(int64(len(data)))
	c.txMsgs.Add(1)
	logDebug("sent %s", data)
	return nil
}
