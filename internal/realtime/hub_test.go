package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slicelab/pizza-shop-api/internal/models"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialClient connects a websocket client to the hub, registered under the
// given identity, and returns the client-side connection.
func dialClient(t *testing.T, hub *Hub, userID string) *websocket.Conn {
	t.Helper()

	before := hub.ClientCount()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(conn, userID)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Wait until the server side finished registering.
	require.Eventually(t, func() bool { return hub.ClientCount() > before }, time.Second, 10*time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func assertNoEvent(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "expected no event within the deadline")
}

func TestPresetPizzaBroadcastsToEveryone(t *testing.T) {
	hub := NewHub()
	owner := dialClient(t, hub, "user-1")
	anon := dialClient(t, hub, "")

	hub.PizzaCreated(models.Pizza{ID: "p1", Name: "Margherita", Custom: false})

	msg := readEvent(t, owner)
	assert.Equal(t, EventPizzaCreated, msg.Event)

	msg = readEvent(t, anon)
	assert.Equal(t, EventPizzaCreated, msg.Event)
}

func TestCustomPizzaDeliveredToOwnerOnly(t *testing.T) {
	hub := NewHub()
	owner := dialClient(t, hub, "user-1")
	stranger := dialClient(t, hub, "user-2")
	anon := dialClient(t, hub, "")

	ownerID := "user-1"
	hub.PizzaCreated(models.Pizza{ID: "p2", Name: "My Pizza", Custom: true, OwnerID: &ownerID})

	msg := readEvent(t, owner)
	assert.Equal(t, EventPizzaCreated, msg.Event)

	assertNoEvent(t, stranger)
	assertNoEvent(t, anon)
}

func TestCustomPizzaWithoutOwnerIsDroppedSilently(t *testing.T) {
	hub := NewHub()
	anon := dialClient(t, hub, "")

	hub.PizzaCreated(models.Pizza{ID: "p3", Custom: true, OwnerID: nil})

	assertNoEvent(t, anon)
}

func TestOrderCreatedDeliveredToOrderingUserOnly(t *testing.T) {
	hub := NewHub()
	owner := dialClient(t, hub, "user-1")
	stranger := dialClient(t, hub, "user-2")

	hub.OrderCreated(models.Order{ID: "o1", UserID: "user-1", PizzaID: "p1"})

	msg := readEvent(t, owner)
	assert.Equal(t, EventOrderCreated, msg.Event)

	assertNoEvent(t, stranger)
}

func TestCustomerUpdatedDeliveredToOwningUserOnly(t *testing.T) {
	hub := NewHub()
	owner := dialClient(t, hub, "user-1")
	stranger := dialClient(t, hub, "user-2")

	hub.CustomerUpdated(models.Customer{ID: "c1", UserID: "user-1", Name: "New Name"})

	msg := readEvent(t, owner)
	assert.Equal(t, EventCustomerUpdated, msg.Event)

	assertNoEvent(t, stranger)
}

func TestDeadConnectionIsDroppedWithoutBlockingOthers(t *testing.T) {
	hub := NewHub()
	dialClient(t, hub, "dead-user")
	healthy := dialClient(t, hub, "live-user")

	// Kill the first subscriber's server-side connection out from under the
	// hub, so the next push to it fails.
	hub.mu.Lock()
	for conn, userID := range hub.clients {
		if userID == "dead-user" {
			conn.Close()
		}
	}
	hub.mu.Unlock()

	hub.PizzaCreated(models.Pizza{ID: "p1", Name: "Margherita", Custom: false})

	// The healthy subscriber still receives the event and the dead
	// connection is evicted.
	msg := readEvent(t, healthy)
	assert.Equal(t, EventPizzaCreated, msg.Event)
	assert.Equal(t, 1, hub.ClientCount())
}

func TestUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	dialClient(t, hub, "user-1")
	require.Equal(t, 1, hub.ClientCount())

	hub.mu.Lock()
	var serverConn *websocket.Conn
	for conn := range hub.clients {
		serverConn = conn
	}
	hub.mu.Unlock()

	hub.Unregister(serverConn)
	assert.Equal(t, 0, hub.ClientCount())
}
