package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus_hub/internal/models"
)

func serveHub(t *testing.T, h *EmergencyHub) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.Register(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.Unregister(conn)
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestEmergencyHub_Broadcast(t *testing.T) {
	h := NewEmergencyHub()
	defer h.Close()
	url := serveHub(t, h)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.Clients() == 1 }, time.Second, 10*time.Millisecond)

	e := models.EmergencyRequest{Reason: models.ReasonMedical, Location: "Dorm B", Status: models.EmergencyOpen}
	e.ID = uuid.New()
	h.Publish(EventEmergencyCreated, e)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, EventEmergencyCreated, got.Type)
	assert.Equal(t, e.ID, got.Emergency.ID)
	assert.Equal(t, "Dorm B", got.Emergency.Location)
}

func TestEmergencyHub_UnregisterOnDisconnect(t *testing.T) {
	h := NewEmergencyHub()
	defer h.Close()
	url := serveHub(t, h)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return h.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return h.Clients() == 0 }, time.Second, 10*time.Millisecond)
}

func TestEmergencyHub_PublishNeverBlocks(t *testing.T) {
	h := &EmergencyHub{
		clients:   map[*websocket.Conn]bool{},
		broadcast: make(chan Event, 1),
		done:      make(chan struct{}),
	}
	h.Publish(EventEmergencyCreated, models.EmergencyRequest{})
	h.Publish(EventEmergencyCreated, models.EmergencyRequest{})
	assert.Len(t, h.broadcast, 1)
}
