package session

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// writeWait bounds a single write to a slow client.
const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RegisterRoutes mounts the public WebSocket endpoint.
func (h *Hub) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

// RegisterAdminRoutes mounts the live session listing. Session ids are not
// for visitors, so r should carry the admin guard.
func (h *Hub) RegisterAdminRoutes(r chi.Router) {
	r.Get("/api/sessions", h.handleList)
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("session: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	// gorilla connections allow one concurrent writer.
	var wmu sync.Mutex
	sink := func(m Message) error {
		wmu.Lock()
		defer wmu.Unlock()
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(m)
	}

	sess, err := h.Open(sink)
	if err != nil {
		sink(Message{Type: MsgError, Error: err.Error()})
		return
	}
	defer h.Release(sess.ID)
	sess.Hello()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("session: websocket read: %v", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			sess.SendError("invalid message format")
			continue
		}
		if err := sess.Handle(msg); err != nil {
			sess.SendError(err.Error())
		}
	}
}

func (h *Hub) handleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Snapshots())
}
