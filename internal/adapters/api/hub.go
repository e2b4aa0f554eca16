package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/andrescamacho/mekanik-go/internal/application/common"
	"github.com/andrescamacho/mekanik-go/internal/domain/game"
)

const (
	// MessageShipUpdate carries the whole ship after a state change
	MessageShipUpdate = "ship_update"

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16
)

// Message is the JSON envelope for everything pushed over the socket
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// StateSource is the subset of the game store the hub follows
type StateSource interface {
	Snapshot() game.State
	Subscribe() <-chan game.State
	Unsubscribe(ch <-chan game.State)
}

// Client is one connected browser tab
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the set of connected clients and fans ship updates out to them.
// All client bookkeeping happens on the Run goroutine.
type Hub struct {
	source StateSource

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub(source StateSource) *Hub {
	return &Hub{
		source:     source,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run is the hub's event loop. It blocks until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	logger := common.LoggerFromContext(ctx)
	updates := h.source.Subscribe()
	defer h.source.Unsubscribe(updates)
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			logger.Log("DEBUG", "WebSocket client connected", map[string]interface{}{
				"clients": len(h.clients),
			})
			// new clients start from the current ship instead of waiting for a change
			if msg, err := shipUpdate(h.source.Snapshot()); err == nil {
				h.deliver(client, msg)
			}

		case client := <-h.unregister:
			if h.clients[client] {
				h.drop(client)
			}

		case state, ok := <-updates:
			if !ok {
				return
			}
			msg, err := shipUpdate(state)
			if err != nil {
				logger.Log("ERROR", "Failed to encode ship update", map[string]interface{}{
					"error": err.Error(),
				})
				continue
			}
			for client := range h.clients {
				h.deliver(client, msg)
			}
		}
	}
}

// deliver queues msg for client, dropping clients whose buffer is full
func (h *Hub) deliver(client *Client, msg []byte) {
	select {
	case client.send <- msg:
	default:
		h.drop(client)
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
}

func shipUpdate(state game.State) ([]byte, error) {
	return json.Marshal(Message{Type: MessageShipUpdate, Payload: state.Ship})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades the request to a WebSocket and registers the client
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		common.LoggerFromContext(r.Context()).Log("WARN", "WebSocket upgrade failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, sendBufferSize)}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump only watches for the connection closing and answers pongs;
// clients send nothing the server acts on
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump writes queued messages and keepalive pings until the hub closes
// the send channel
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
