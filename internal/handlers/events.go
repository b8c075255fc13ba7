package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/inkpress-dev/inkpress/internal/types"
	"github.com/sirupsen/logrus"
)

var (
	eventClients   = make(map[*websocket.Conn]bool)
	eventClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastEvent pushes a mutation notification to every connected
// client. Clients treat events as an invalidation hint and re-fetch.
func BroadcastEvent(event string, payload gin.H) {
	eventClientsMu.RLock()

	if len(eventClients) == 0 {
		eventClientsMu.RUnlock()
		return
	}

	clients := make([]*websocket.Conn, 0, len(eventClients))
	for conn := range eventClients {
		clients = append(clients, conn)
	}
	eventClientsMu.RUnlock()

	message := gin.H{"type": event}
	for k, v := range payload {
		message[k] = v
	}

	for _, conn := range clients {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			logrus.Errorf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		if err := conn.WriteJSON(message); err != nil {
			logrus.Errorf("Failed to broadcast event to client: %v", err)
			eventClientsMu.Lock()
			delete(eventClients, conn)
			eventClientsMu.Unlock()
			conn.Close()
		}
	}
}

// Events upgrades the connection and holds it open for broadcasts. The
// read loop only exists to notice the peer going away.
func Events(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.Errorf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logrus.Errorf("Failed to set initial read deadline: %v", err)
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	eventClientsMu.Lock()
	eventClients[conn] = true
	eventClientsMu.Unlock()

	defer func() {
		eventClientsMu.Lock()
		delete(eventClients, conn)
		eventClientsMu.Unlock()
		conn.Close()
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return
	}

	if err := conn.WriteJSON(gin.H{"type": "connected"}); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		// Keep the connection alive between broadcasts
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			return
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.Debugf("WebSocket read error: %v", err)
			}
			return
		}
	}
}
