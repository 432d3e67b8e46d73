package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/slicelab/pizza-shop-api/internal/models"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// writeWait bounds how long a single push may block on one connection.
const writeWait = 10 * time.Second

// Event types pushed to subscribed clients.
const (
	EventPizzaCreated    = "pizza_created"
	EventOrderCreated    = "order_created"
	EventCustomerUpdated = "customer_updated"
)

// Message is the wire envelope for every pushed event.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans store mutations out to connected clients. Delivery is scoped:
// preset pizza events go to every connection, while custom pizzas, orders
// and customer updates go only to connections owned by the affected user.
// Anonymous connections (empty userID) receive preset pizza events only.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]string // conn -> userID, "" for anonymous
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

// Register adds a connection with the identity it authenticated as.
func (h *Hub) Register(conn *websocket.Conn, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = userID
}

// Unregister removes and closes a connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// ClientCount returns the number of registered connections.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// PizzaCreated pushes a new pizza. Custom pizzas are delivered only to
// their owner's connections; anonymous subscribers never see them.
func (h *Hub) PizzaCreated(pizza models.Pizza) {
	if pizza.Custom {
		owner := ""
		if pizza.OwnerID != nil {
			owner = *pizza.OwnerID
		}
		h.send(Message{Event: EventPizzaCreated, Data: pizza}, func(userID string) bool {
			return userID != "" && userID == owner
		})
		return
	}
	h.send(Message{Event: EventPizzaCreated, Data: pizza}, func(string) bool { return true })
}

// OrderCreated pushes a new order to the ordering user's connections.
func (h *Hub) OrderCreated(order models.Order) {
	h.send(Message{Event: EventOrderCreated, Data: order}, func(userID string) bool {
		return userID != "" && userID == order.UserID
	})
}

// CustomerUpdated pushes a profile change to the owning user's connections.
func (h *Hub) CustomerUpdated(customer models.Customer) {
	h.send(Message{Event: EventCustomerUpdated, Data: customer}, func(userID string) bool {
		return userID != "" && userID == customer.UserID
	})
}

func (h *Hub) send(msg Message, deliver func(userID string) bool) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.WithError(err).Error("Failed to marshal event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, userID := range h.clients {
		if !deliver(userID) {
			continue
		}
		// A stalled or dead connection must not hold up fan-out to the
		// remaining subscribers; it is dropped on the first failed write.
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.WithError(err).Warn("Dropping client after failed push")
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
