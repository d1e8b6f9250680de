// Package ws pushes committed queue changes to connected browsers over websocket.
//
// Clients only listen. Anything they send is read and discarded so that a
// closed connection is noticed and the client unregistered.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fifo/internal/core/domain/model/parcel"
	"fifo/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeTimeout = 5 * time.Second
	sendBuffer   = 16

	MessageTypeQueueUpdated = "queue_updated"
)

var _ ports.QueueObserver = (*Hub)(nil)

type QueueChange struct {
	ParcelID   string `json:"parcelId"`
	TrackingID string `json:"trackingId"`
	State      string `json:"state"`
	Buffer     string `json:"buffer"`
	Lane       string `json:"lane"`
}

type Message struct {
	Type string        `json:"type"`
	Data []QueueChange `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans queue updates out to every client. Each client has its own writer
// goroutine fed by a buffered channel and broadcasting never blocks on it. A
// client whose buffer is full is dropped.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger:  logger.With("component", "ws_hub"),
		clients: make(map[*client]struct{}),
	}
}

// Serve handles GET /ws and blocks until the client goes away.
func (h *Hub) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.WarnContext(c.Request().Context(), "Websocket upgrade failed", "error", err)
		return nil
	}

	cl := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(cl)
	go h.write(cl)
	defer h.unregister(cl)

	for {
		if _, _, err = conn.ReadMessage(); err != nil {
			return nil
		}
	}
}

// QueueChanged queues one queue_updated message for every client.
func (h *Hub) QueueChanged(ctx context.Context, parcels []*parcel.Parcel) {
	msg := Message{Type: MessageTypeQueueUpdated, Data: make([]QueueChange, len(parcels))}
	for i, p := range parcels {
		msg.Data[i] = QueueChange{
			ParcelID:   p.ID().String(),
			TrackingID: p.TrackingID().String(),
			State:      p.State().String(),
			Buffer:     p.Buffer().String(),
			Lane:       p.Lane(),
		}
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to encode queue update", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for cl := range h.clients {
		select {
		case cl.send <- payload:
		default:
			h.logger.WarnContext(ctx, "Websocket client too slow, dropping", "remote", cl.conn.RemoteAddr().String())
			h.drop(cl)
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client. Writers send a going-away frame first.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for cl := range h.clients {
		h.drop(cl)
	}
}

// write owns all writes to the connection. It ends when send is closed or a write fails.
func (h *Hub) write(cl *client) {
	defer func() { _ = cl.conn.Close() }()

	for payload := range cl.send {
		_ = cl.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := cl.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Warn("Websocket write failed", "remote", cl.conn.RemoteAddr().String(), "error", err)
			h.unregister(cl)
			return
		}
	}

	_ = cl.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
		time.Now().Add(writeTimeout),
	)
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()
	h.logger.Info("Client connected", "remote", cl.conn.RemoteAddr().String())
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	_, ok := h.clients[cl]
	if ok {
		h.drop(cl)
	}
	h.mu.Unlock()
	if ok {
		h.logger.Info("Client disconnected", "remote", cl.conn.RemoteAddr().String())
	}
}

// drop removes cl and stops its writer. h.mu must be held.
func (h *Hub) drop(cl *client) {
	delete(h.clients, cl)
	close(cl.send)
}
