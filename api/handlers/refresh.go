package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust CORS as needed, e.g., check r.Header.Get("Origin")
	},
}

// RefreshHub tracks connected moderation console clients so queue changes can
// be pushed instead of polled
type RefreshHub struct {
	clients map[*websocket.Conn]bool
	mutex   sync.Mutex
}

var refreshHub = &RefreshHub{
	clients: make(map[*websocket.Conn]bool),
	mutex:   sync.Mutex{},
}

// HandleModerationWebSocket upgrades the connection and keeps it registered
// until the client goes away
func HandleModerationWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	refreshHub.mutex.Lock()
	refreshHub.clients[conn] = true
	refreshHub.mutex.Unlock()
	log.Printf("Client connected to /ws/moderation (%d total)", refreshHub.count())

	conn.SetCloseHandler(func(code int, text string) error {
		refreshHub.mutex.Lock()
		delete(refreshHub.clients, conn)
		refreshHub.mutex.Unlock()
		log.Printf("Client disconnected from /ws/moderation")
		return nil
	})

	// Keep connection alive
	for {
		if _, _, err := conn.NextReader(); err != nil {
			refreshHub.mutex.Lock()
			delete(refreshHub.clients, conn)
			refreshHub.mutex.Unlock()
			conn.Close()
			break
		}
	}
}

func (h *RefreshHub) count() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// broadcastRefresh tells every connected console that a resource changed and
// its list views should be refetched
func broadcastRefresh(resource string) {
	refreshHub.mutex.Lock()
	defer refreshHub.mutex.Unlock()

	if len(refreshHub.clients) == 0 {
		return
	}

	for conn := range refreshHub.clients {
		err := conn.WriteJSON(map[string]interface{}{
			"event": "refresh",
			"data": map[string]interface{}{
				"resource":  resource,
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			},
		})
		if err != nil {
			log.Printf("Error broadcasting refresh event: %v", err)
			delete(refreshHub.clients, conn)
			conn.Close()
		}
	}
}
