package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Clients only ever send pings
	// and resubscribe notes, so this stays small.
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is one frame pushed to subscribers of a session: the transition's
// events plus the resulting state view.
type Message struct {
	SessionID string      `json:"session_id"`
	Events    interface{} `json:"events,omitempty"`
	Game      interface{} `json:"game,omitempty"`
}

// Client is a single websocket subscriber bound to one session.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub fans transition broadcasts out to the subscribers of each session.
type Hub struct {
	sessions   map[string]map[*Client]bool
	broadcast  chan broadcastMsg
	register   chan *Client
	unregister chan *Client
}

type broadcastMsg struct {
	sessionID string
	data      []byte
}

func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		broadcast:  make(chan broadcastMsg, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run owns the subscriber maps. It must run in its own goroutine before the
// first ServeWS call.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			clients, ok := h.sessions[client.sessionID]
			if !ok {
				clients = make(map[*Client]bool)
				h.sessions[client.sessionID] = clients
			}
			clients[client] = true
			log.Printf("[WS] session=%s subscribers=%d", client.sessionID, len(clients))

		case client := <-h.unregister:
			if clients, ok := h.sessions[client.sessionID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.sessions, client.sessionID)
					}
				}
			}

		case msg := <-h.broadcast:
			for client := range h.sessions[msg.sessionID] {
				select {
				case client.send <- msg.data:
				default:
					// Slow consumer; drop it rather than stall the hub.
					delete(h.sessions[msg.sessionID], client)
					close(client.send)
				}
			}
		}
	}
}

// BroadcastToSession pushes a transition to every subscriber of a session.
func (h *Hub) BroadcastToSession(sessionID string, events, game interface{}) {
	data, err := json.Marshal(Message{SessionID: sessionID, Events: events, Game: game})
	if err != nil {
		log.Printf("[WS] marshal broadcast for session %s: %v", sessionID, err)
		return
	}
	h.broadcast <- broadcastMsg{sessionID: sessionID, data: data}
}

// ServeWS upgrades an HTTP request into a session subscription.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed: %v", err)
		return
	}
	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, 16),
		sessionID: sessionID,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection so pings are answered and closure is
// noticed; client payloads are ignored.
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
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] session=%s read: %v", c.sessionID, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
