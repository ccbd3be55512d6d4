// Package realtime pushes emergency request changes to connected admins.
package realtime

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"campus_hub/internal/models"
)

const (
	EventEmergencyCreated  = "emergency.created"
	EventEmergencyResolved = "emergency.resolved"
	EventEmergencyDeleted  = "emergency.deleted"

	writeWait = 5 * time.Second
)

type Event struct {
	Type      string                  `json:"type"`
	Emergency models.EmergencyRequest `json:"emergency"`
	SentAt    time.Time               `json:"sent_at"`
}

// EmergencyHub fans events out to every registered admin connection. Only
// the run goroutine writes to connections.
type EmergencyHub struct {
	clients   map[*websocket.Conn]bool
	broadcast chan Event
	done      chan struct{}
	mu        sync.Mutex
	closeOnce sync.Once
}

// NewEmergencyHub creates the hub and starts its broadcast loop.
func NewEmergencyHub() *EmergencyHub {
	h := &EmergencyHub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Event, 100),
		done:      make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *EmergencyHub) run() {
	for {
		select {
		case <-h.done:
			return
		case ev := <-h.broadcast:
			for _, conn := range h.snapshot() {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
						logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Admin connection closed during broadcast, unregistering.")
					} else {
						logrus.WithError(err).WithField("conn_ptr", fmt.Sprintf("%p", conn)).Warn("Failed to send emergency event to admin.")
					}
					h.Unregister(conn)
				}
			}
		}
	}
}

func (h *EmergencyHub) snapshot() []*websocket.Conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		out = append(out, c)
	}
	return out
}

func (h *EmergencyHub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Admin registered with EmergencyHub.")
}

// Unregister removes and closes conn. Safe to call more than once.
func (h *EmergencyHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		_ = conn.Close()
		logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Admin unregistered from EmergencyHub.")
	}
}

func (h *EmergencyHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish queues an event. It never blocks the request that triggered it;
// when the buffer is full the event is dropped.
func (h *EmergencyHub) Publish(eventType string, e models.EmergencyRequest) {
	ev := Event{Type: eventType, Emergency: e, SentAt: time.Now().UTC()}
	select {
	case h.broadcast <- ev:
	default:
		logrus.WithField("type", eventType).Warn("Emergency broadcast channel full, dropping event.")
	}
}

// Close stops the loop and drops every connection.
func (h *EmergencyHub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
		for _, c := range h.snapshot() {
			h.Unregister(c)
		}
	})
}
