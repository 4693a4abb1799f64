package realtime

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Upgrade rejects non-websocket requests before the upgrade handler runs.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// ChatSocket streams chat events for one post to the connected client.
func ChatSocket(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		postID, err := uuid.Parse(conn.Params("id"))
		if err != nil {
			_ = conn.Close()
			return
		}
		serve(hub, conn, ChatTopic(postID))
	})
}

// NotificationSocket streams the authenticated user's notification events.
// The route must run behind the JWT middleware, which stores the user id
// in locals before the upgrade.
func NotificationSocket(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals("user_id").(uuid.UUID)
		if !ok {
			_ = conn.Close()
			return
		}
		serve(hub, conn, UserTopic(userID))
	})
}

func serve(hub *Hub, conn *websocket.Conn, topics ...string) {
	sub := hub.Subscribe(topics...)
	defer hub.Unsubscribe(sub)

	// Reader goroutine: drain control frames and detect disconnect.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-sub.C():
			if !ok {
				_ = conn.Close()
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				slog.Debug("websocket write failed", "error", err)
				return
			}
		case <-closed:
			return
		}
	}
}
