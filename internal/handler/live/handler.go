// Package live streams session progress events over a websocket, so a client
// can update its UI the moment an answer finishes analyzing.
package live

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	sessionService "github.com/mockview/mockview/backend/internal/service/session"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// Handler upgrades clients and relays hub events for one session.
type Handler struct {
	sessions *sessionService.Service
	upgrader websocket.Upgrader
}

// New creates the live-events handler.
func New(sessions *sessionService.Service) *Handler {
	return &Handler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket endpoint on the API router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/live/{sessionID}", h.handleLive)
}

func (h *Handler) handleLive(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if _, err := h.sessions.Get(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[live] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	events, cancel := h.sessions.Hub().Subscribe(sessionID)
	defer cancel()

	log.Printf("[live] client attached to session=%s", sessionID)

	// Drain client frames so close messages and pongs are processed.
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-clientGone:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("[live] write failed for session=%s: %v", sessionID, err)
				return
			}
			if ev.Type == sessionService.EventFeedbackReady {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
