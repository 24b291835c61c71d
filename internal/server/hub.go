package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/jogardn/shopsim/internal/sim"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Preview tool, not a production surface.
		return true
	},
}

// ProgressMessage wraps one simulated day's stats for websocket clients.
type ProgressMessage struct {
	Type      string       `json:"type"`
	Day       sim.DayStats `json:"day"`
	Timestamp string       `json:"timestamp"`
}

type client struct {
	conn   *websocket.Conn
	send   chan ProgressMessage
	hub    *Hub
	logger *logrus.Logger
}

// Hub fans simulation progress out to connected websocket clients. Slow
// clients are dropped rather than allowed to stall the broadcast.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan ProgressMessage
	register   chan *client
	unregister chan *client
	mutex      sync.RWMutex
	logger     *logrus.Logger
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan ProgressMessage, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mutex.Lock()
			h.clients[c] = true
			h.mutex.Unlock()
			h.logger.WithField("client_count", len(h.clients)).Info("Progress client connected")

		case c := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mutex.Unlock()
			h.logger.WithField("client_count", len(h.clients)).Info("Progress client disconnected")

		case message := <-h.broadcast:
			h.mutex.RLock()
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// BroadcastDay publishes one day's stats to every connected client.
// Non-blocking: if the hub is backed up the day is dropped, the simulation
// never waits on viewers.
func (h *Hub) BroadcastDay(stats sim.DayStats) {
	message := ProgressMessage{
		Type:      "day_simulated",
		Day:       stats,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("Broadcast channel full, dropping progress message")
	}
}

// HandleWebSocket upgrades the connection and registers the client with the
// hub.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to upgrade websocket connection")
		return
	}

	c := &client{
		conn:   conn,
		send:   make(chan ProgressMessage, 64),
		hub:    h,
		logger: h.logger,
	}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

func (c *client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteJSON(message); err != nil {
			c.logger.WithError(err).Debug("Failed to write to websocket client")
			return
		}
	}
}

// readPump drains the connection so pings and close frames are processed,
// then unregisters on disconnect.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
