package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/service"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// WebSocketHub pushes renders and config changes to connected browsers. It
// is registered with the controller as a service.View.
type WebSocketHub struct {
	mu       sync.RWMutex
	clients  map[*WebSocketClient]bool
	snapshot SnapshotReader
}

// SnapshotReader calls fn with the current state. Renders must not
// interleave with fn; service.Controller.ReadSnapshot satisfies this.
type SnapshotReader func(fn func(model.Snapshot))

var _ service.View = (*WebSocketHub)(nil)

// WebSocketClient represents a connected WebSocket client.
type WebSocketClient struct {
	hub  *WebSocketHub
	conn *websocket.Conn
	send chan []byte
}

// WebSocketMessage is the JSON message sent to clients.
type WebSocketMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// SwatchMessage carries a RenderSwatch call.
type SwatchMessage struct {
	Current    model.Color `json:"current"`
	Label      int         `json:"label"`
	LabelColor model.Color `json:"label_color"`
}

// ListMessage carries a RenderList call.
type ListMessage struct {
	List    model.ListKind `json:"list"`
	Entries []model.Entry  `json:"entries"`
}

// VisibilityMessage carries a SetListVisibility call.
type VisibilityMessage struct {
	List    model.ListKind `json:"list"`
	Visible bool           `json:"visible"`
}

// NewWebSocketHub creates a hub. snapshot supplies the full state sent to
// each client on connect; it may be nil.
func NewWebSocketHub(snapshot SnapshotReader) *WebSocketHub {
	return &WebSocketHub{
		clients:  make(map[*WebSocketClient]bool),
		snapshot: snapshot,
	}
}

// RenderSwatch implements service.View.
func (h *WebSocketHub) RenderSwatch(current model.Color, label int, labelColor model.Color) {
	h.publish("swatch", SwatchMessage{Current: current, Label: label, LabelColor: labelColor})
}

// RenderList implements service.View.
func (h *WebSocketHub) RenderList(kind model.ListKind, entries []model.Entry) {
	if entries == nil {
		entries = []model.Entry{}
	}
	h.publish("list", ListMessage{List: kind, Entries: entries})
}

// SetListVisibility implements service.View.
func (h *WebSocketHub) SetListVisibility(kind model.ListKind, visible bool) {
	h.publish("visibility", VisibilityMessage{List: kind, Visible: visible})
}

// OnConfigChange implements ConfigSubscriber.
func (h *WebSocketHub) OnConfigChange(change ConfigChange) {
	h.publish("config_change", change)
}

func (h *WebSocketHub) publish(msgType string, data any) {
	payload, err := json.Marshal(WebSocketMessage{Type: msgType, Data: data})
	if err != nil {
		log.WithError(err).WithField("type", msgType).Warn("Failed to marshal websocket message")
		return
	}
	h.broadcast(payload)
}

// broadcast sends a message to all connected clients.
func (h *WebSocketHub) broadcast(data []byte) {
	h.mu.RLock()
	clients := make([]*WebSocketClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.trySend(client, data)
	}
}

// trySend attempts to send data to a client, handling the case where
// the client's channel was closed between snapshot and send.
func (h *WebSocketHub) trySend(client *WebSocketClient, data []byte) {
	defer func() {
		// Channel was closed by removeClient; client already cleaned up.
		_ = recover()
	}()

	select {
	case client.send <- data:
	default:
		// Slow client; drop it rather than block the controller.
		h.removeClient(client)
	}
}

// addClient registers client. Greetings are queued under the lock so they
// precede any broadcast.
func (h *WebSocketHub) addClient(client *WebSocketClient, greetings ...WebSocketMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, msg := range greetings {
		if data, err := json.Marshal(msg); err == nil {
			client.send <- data
		}
	}
	h.clients[client] = true
}

func (h *WebSocketHub) removeClient(client *WebSocketClient) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
}

// ServeWS handles WebSocket connection requests.
func (h *WebSocketHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := &WebSocketClient{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}

	// Register before reading the state: renders that land first are
	// superseded by it, and later ones queue behind it.
	h.addClient(client, WebSocketMessage{
		Type: "connected",
		Data: map[string]any{"message": "Live updates enabled"},
	})
	h.sendState(client)

	go client.writePump()
	go client.readPump()
}

func (h *WebSocketHub) sendState(client *WebSocketClient) {
	if h.snapshot == nil {
		return
	}
	h.snapshot(func(snap model.Snapshot) {
		data, err := json.Marshal(WebSocketMessage{Type: "state", Data: snap})
		if err != nil {
			log.WithError(err).Warn("Failed to marshal websocket state")
			return
		}
		h.trySend(client, data)
	})
}

// readPump reads messages from the WebSocket connection.
// Clients send nothing, but reading detects disconnects.
func (c *WebSocketClient) readPump() {
	defer func() {
		// Closing send signals writePump, which owns the connection.
		c.hub.removeClient(c)
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).Debug("WebSocket read error")
			}
			break
		}
	}
}

// writePump writes messages to the WebSocket connection.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One frame per message so the frontend always parses whole JSON.
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
			n := len(c.send)
			for i := 0; i < n; i++ {
				queued, ok := <-c.send
				if !ok {
					return
				}
				if err := c.conn.WriteMessage(websocket.TextMessage, queued); err != nil {
					return
				}
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
