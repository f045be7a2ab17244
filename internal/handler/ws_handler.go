package handler

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"forum-backend/internal/domain"
	"forum-backend/internal/realtime"
)

// WSHandler owns the live-connection endpoint. Each connection gets a write
// pump for pushed events and a read loop for room commands; closing the
// socket, however it happens, always runs the registry cleanup.
type WSHandler struct {
	registry *realtime.Registry
}

func NewWSHandler(registry *realtime.Registry) *WSHandler {
	return &WSHandler{registry: registry}
}

// UpgradeRequired gates the ws route so plain HTTP requests get a clean 426.
func (h *WSHandler) UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(h.serve)
}

type clientMessage struct {
	Event string `json:"event"`
	Data  struct {
		TopicID string `json:"topic_id"`
	} `json:"data"`
}

func (h *WSHandler) serve(ws *websocket.Conn) {
	conn := realtime.NewSocketConn(ws)
	go conn.WritePump()

	defer func() {
		h.registry.Disconnect(conn)
		_ = conn.Close()
	}()

	for {
		var msg clientMessage
		if err := ws.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Event {
		case domain.EventJoinTopic:
			if msg.Data.TopicID != "" {
				h.registry.Join(conn, msg.Data.TopicID)
			}
		case domain.EventLeaveTopic:
			h.registry.Leave(conn, msg.Data.TopicID)
		}
		// Unknown events are ignored; the event set is closed server-side.
	}
}
