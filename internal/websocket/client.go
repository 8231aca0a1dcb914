package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client is a single WebSocket connection for an authenticated user. A user
// may hold several at once; each maintains its own list subscriptions.
type Client struct {
	id     string
	userID int
	hub    *Hub
	conn   *websocket.Conn
	send   chan Event
	lists  map[int]bool
	mu     sync.RWMutex
}

// clientRequest is what the browser sends: subscribe/unsubscribe to a list,
// or an application-level ping.
type clientRequest struct {
	Type   string `json:"type"`
	ListID int    `json:"list_id,omitempty"`
}

const (
	requestSubscribe   = "subscribe"
	requestUnsubscribe = "unsubscribe"
	requestPing        = "ping"
)

func (c *Client) subscribe(listID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[listID] = true
}

func (c *Client) unsubscribe(listID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lists, listID)
}

func (c *Client) subscribed(listID int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lists[listID]
}

// readPump consumes client requests until the connection dies, then
// unregisters.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).WithField("client_id", c.id).Warn("WebSocket read failed")
			}
			return
		}

		var req clientRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			logrus.WithError(err).WithField("client_id", c.id).Warn("Malformed WebSocket request")
			continue
		}
		c.handle(req)
	}
}

// writePump serializes outgoing events and keeps the connection alive with
// pings. All writes go through here.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.writeEvent(event); err != nil {
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

func (c *Client) writeEvent(event Event) error {
	event.Time = time.Now().Unix()
	raw, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal WebSocket event")
		return nil
	}
	return c.conn.WriteMessage(websocket.TextMessage, raw)
}

func (c *Client) handle(req clientRequest) {
	switch req.Type {
	case requestSubscribe:
		if req.ListID > 0 {
			c.subscribe(req.ListID)
			c.reply(Event{Type: "subscribed", ListID: req.ListID})
		}

	case requestUnsubscribe:
		if req.ListID > 0 {
			c.unsubscribe(req.ListID)
			c.reply(Event{Type: "unsubscribed", ListID: req.ListID})
		}

	case requestPing:
		c.reply(Event{Type: "pong", Data: map[string]interface{}{"timestamp": time.Now().Unix()}})

	default:
		logrus.WithField("type", req.Type).Warn("Unknown WebSocket request type")
	}
}

func (c *Client) reply(event Event) {
	select {
	case c.send <- event:
	default:
	}
}
