package www

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 54 * time.Second
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  256,
	WriteBufferSize: 256,
}

// artifactEvent is the only message the server ever pushes: the id of
// a freshly rendered chart artifact, telling open pages to reload.
type artifactEvent struct {
	Artifact string `json:"artifact"`
}

// Client is one connected browser waiting for artifact events.
type Client struct {
	logger *slog.Logger
	hub    *Hub
	conn   *ws.Conn
	events chan []byte
	name   string
}

func NewClient(hub *Hub, w http.ResponseWriter, r *http.Request, name string) (*Client, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		logger: hub.logger.With(slog.String("client", name)),
		hub:    hub,
		conn:   conn,
		events: make(chan []byte, 8),
		name:   name,
	}, nil
}

// WritePump forwards artifact events to the connection and keeps it
// alive with pings. Runs as one goroutine per client and exits on the
// first write failure, unregistering the client on the way out.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.hub.Unregister <- c
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.events:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Warn("web socket set write deadline failed", slog.Any("error", err))
				return
			}

			if !ok {
				// The hub unregistered this client.
				if err := c.conn.WriteMessage(ws.CloseMessage, []byte{}); err != nil {
					c.logger.Warn("web socket close message failed", slog.Any("error", err))
				}
				return
			}

			if err := c.conn.WriteMessage(ws.TextMessage, event); err != nil {
				c.logger.Warn("pushing artifact event failed", slog.Any("error", err))
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Warn("web socket set write deadline failed", slog.Any("error", err))
				return
			}
			if err := c.conn.WriteMessage(ws.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Hub tracks connected clients and fans artifact events out to them.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan artifactEvent
	clients    map[*Client]bool
	mutex      sync.Mutex
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan artifactEvent),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// NotifyArtifact queues an artifact id for delivery to every
// connected client.
func (h *Hub) NotifyArtifact(artifact string) {
	h.broadcast <- artifactEvent{Artifact: artifact}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.logger.Debug("registering client", "clientName", client.name)

			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()

		case client := <-h.Unregister:
			h.logger.Debug("unregistering client", "clientName", client.name)

			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.events)
			}
			h.mutex.Unlock()

		case event := <-h.broadcast:
			msg, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("encoding artifact event", slog.Any("error", err))
				continue
			}

			// Snapshot the client set while holding the lock
			h.mutex.Lock()
			activeClients := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				activeClients = append(activeClients, client)
			}
			h.mutex.Unlock()

			for _, client := range activeClients {
				select {
				case client.events <- msg:
				default:
					// A client that stopped reading doesn't hold up the rest.
					h.logger.Warn("client event buffer full, dropping artifact event", "clientName", client.name)
				}
			}
		}
	}
}
