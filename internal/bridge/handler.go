package bridge

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/appengine-ltd/wildlands/internal/platform/logger"
)

type HandlerConfig struct {
	Logger *logger.Logger
}

// Handler upgrades renderer connections and attaches them to the hub.
type Handler struct {
	hub      *Hub
	logger   *logger.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, cfg HandlerConfig) *Handler {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return &Handler{
		hub:      hub,
		logger:   cfg.Logger,
		upgrader: upgrader,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnf("upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}

	client := NewClient(h.hub, conn)
	if !client.Register() {
		message := websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down")
		conn.WriteMessage(websocket.CloseMessage, message)
		conn.Close()
		return
	}
	go client.WritePump()
	client.ReadPump(r.Context())
}

// Mux serves the bridge at /ws.
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /ws", h)
	return mux
}
