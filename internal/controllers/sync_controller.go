package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/slicelab/pizza-shop-api/internal/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the shop's frontend origin; origin
	// enforcement is handled by the deployment's reverse proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SyncController upgrades clients onto the data-sync channel so the
// presentation layer can observe store mutations without direct store
// access.
type SyncController struct {
	hub *realtime.Hub
}

// NewSyncController creates a new instance of SyncController
func NewSyncController(hub *realtime.Hub) *SyncController {
	return &SyncController{hub: hub}
}

// Subscribe godoc
// @Summary Subscribe to store updates
// @Description Upgrade to a WebSocket pushing pizza, order and customer events scoped to the caller
// @Tags sync
// @Param token query string false "Bearer token for an authenticated subscription"
// @Success 101
// @Failure 400 {object} map[string]string
// @Router /ws [get]
func (sc *SyncController) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "websocket_upgrade_failed"})
		return
	}

	// Empty for anonymous subscribers, who only receive preset catalog events.
	userID := c.GetString("userID")
	sc.hub.Register(conn, userID)

	// Reads are drained only to detect disconnection; the channel is push-only.
	go func() {
		defer sc.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
