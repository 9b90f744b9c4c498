package ws

import (
	"encoding/json"
	"time"

	"livetrack/internal/core/ports"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024

	// egressBuffer absorbs fan-out bursts; a client that cannot drain it is
	// disconnected rather than allowed to block the hub.
	egressBuffer = 64
)

// Client is one live websocket connection with its authenticated identity.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	identity ports.Identity
	egress   chan Event
}

func newClient(hub *Hub, conn *websocket.Conn, identity ports.Identity) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		identity: identity,
		egress:   make(chan Event, egressBuffer),
	}
}

// send queues an event without blocking. A full egress means the client
// stopped draining; it is kicked so broadcasts stay non-blocking.
func (c *Client) send(event Event) {
	select {
	case c.egress <- event:
	default:
		c.hub.kick(c)
	}
}

// readPump consumes client events until the connection drops and routes the
// join/leave requests to the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var event Event
		if err = json.Unmarshal(payload, &event); err != nil {
			c.send(newEvent(EventError, ErrorPayload{Message: "malformed event"}))
			continue
		}

		c.hub.handleClientEvent(c, event)
	}
}

// writePump drains egress to the connection and keeps the liveness pings
// going. One writer per connection; gorilla allows at most one concurrent
// writer.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.egress:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
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
