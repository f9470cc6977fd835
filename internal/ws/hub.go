package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"cxf-converter/internal/model"
	"cxf-converter/internal/observability"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1024
)

type message struct {
	eventType string
	data      []byte
}

// Hub fans events out to connected clients. A client with a non-empty topic
// set only receives events whose type is in it.
type Hub struct {
	log        observability.Logger
	clients    map[*Client]struct{}
	broadcast  chan message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub(log observability.Logger) *Hub {
	if log == nil {
		log = observability.NopLogger{}
	}
	return &Hub{
		log:        log,
		clients:    map[*Client]struct{}{},
		broadcast:  make(chan message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Register closes the client's queue right away when the hub has stopped.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.send)
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Run dispatches until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.log.Debug("ws client registered", observability.Int("clients", len(h.clients)))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				if !c.wants(msg.eventType) {
					continue
				}
				select {
				case c.send <- msg.data:
				default:
					h.log.Warn("dropping slow ws client")
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

func (h *Hub) BroadcastEvent(evt model.Event) {
	b, err := json.Marshal(evt)
	if err != nil {
		h.log.Error("marshal ws event", observability.String("type", evt.Type), observability.Error("err", err))
		return
	}
	select {
	case h.broadcast <- message{eventType: evt.Type, data: b}:
	default:
		h.log.Warn("ws broadcast queue full", observability.String("type", evt.Type))
	}
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	topics map[string]struct{}
}

// NewClient subscribes to the given event types, or to all of them when
// topics is empty.
func NewClient(hub *Hub, conn *websocket.Conn, topics ...string) *Client {
	c := &Client{hub: hub, conn: conn, send: make(chan []byte, 128)}
	if len(topics) > 0 {
		c.topics = make(map[string]struct{}, len(topics))
		for _, t := range topics {
			c.topics[t] = struct{}{}
		}
	}
	return c
}

func (c *Client) wants(eventType string) bool {
	if len(c.topics) == 0 {
		return true
	}
	_, ok := c.topics[eventType]
	return ok
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
