package websocket

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Event types pushed to clients.
const (
	EventListChanged  = "list_changed"
	EventItemChanged  = "item_changed"
	EventShareChanged = "share_changed"
	EventNotification = "notification"
	EventUserOnline   = "user_online"
	EventUserOffline  = "user_offline"
)

type Event struct {
	Type   string      `json:"type"`
	UserID int         `json:"user_id,omitempty"`
	ListID int         `json:"list_id,omitempty"`
	Data   interface{} `json:"data"`
	Time   int64       `json:"time"`
}

// Hub tracks connected clients per user and routes events to them. List
// events go to clients subscribed to that list, user events to every
// connection of that user. All routing happens on the Run goroutine.
type Hub struct {
	clients map[int]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	events     chan Event

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan Event),
	}
}

// Run is the hub's event loop; call it on its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case event := <-h.events:
			h.route(event)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.userID] == nil {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	logrus.WithFields(logrus.Fields{
		"client_id": client.id,
		"user_id":   client.userID,
	}).Debug("WebSocket client connected")

	h.presence(client.userID, EventUserOnline)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.userID]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.userID)
		h.presence(client.userID, EventUserOffline)
	}

	logrus.WithFields(logrus.Fields{
		"client_id": client.id,
		"user_id":   client.userID,
	}).Debug("WebSocket client disconnected")
}

func (h *Hub) route(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch event.Type {
	case EventListChanged, EventItemChanged:
		h.sendToSubscribers(event)
	case EventShareChanged, EventNotification:
		h.sendToUser(event.UserID, event)
	}
}

func (h *Hub) sendToSubscribers(event Event) {
	for userID, clients := range h.clients {
		for client := range clients {
			if !client.subscribed(event.ListID) {
				continue
			}
			h.deliver(userID, clients, client, event)
		}
	}
}

func (h *Hub) sendToUser(userID int, event Event) {
	clients, ok := h.clients[userID]
	if !ok {
		return
	}
	for client := range clients {
		h.deliver(userID, clients, client, event)
	}
}

// presence tells everyone except the affected user. Caller holds the lock.
func (h *Hub) presence(userID int, eventType string) {
	event := Event{
		Type:   eventType,
		UserID: userID,
		Data:   map[string]interface{}{"user_id": userID},
	}
	for otherID, clients := range h.clients {
		if otherID == userID {
			continue
		}
		for client := range clients {
			h.deliver(otherID, clients, client, event)
		}
	}
}

// deliver drops slow clients instead of blocking the hub.
func (h *Hub) deliver(userID int, clients map[*Client]bool, client *Client, event Event) {
	select {
	case client.send <- event:
	default:
		close(client.send)
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, userID)
		}
	}
}

// OnlineUsers returns the IDs of users with at least one open connection.
func (h *Hub) OnlineUsers() []int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]int, 0, len(h.clients))
	for userID := range h.clients {
		users = append(users, userID)
	}
	return users
}

// The four methods below satisfy the service layer's Broadcaster interface.

func (h *Hub) ListChanged(listID int, payload interface{}) {
	h.events <- Event{Type: EventListChanged, ListID: listID, Data: payload}
}

func (h *Hub) ItemChanged(listID int, payload interface{}) {
	h.events <- Event{Type: EventItemChanged, ListID: listID, Data: payload}
}

func (h *Hub) ShareChanged(userID int, payload interface{}) {
	h.events <- Event{Type: EventShareChanged, UserID: userID, Data: payload}
}

func (h *Hub) NotificationPushed(userID int, payload interface{}) {
	h.events <- Event{Type: EventNotification, UserID: userID, Data: payload}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origins are enforced by the CORS layer in front of the upgrade.
		return true
	},
}

// ServeWS upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeWS(c *gin.Context, userID int) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("WebSocket upgrade failed")
		return
	}

	client := &Client{
		id:     newClientID(),
		userID: userID,
		hub:    h,
		conn:   conn,
		send:   make(chan Event, 256),
		lists:  make(map[int]bool),
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

func newClientID() string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
