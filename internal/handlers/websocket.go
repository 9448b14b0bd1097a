package handlers

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imaaryan1108/consist/internal/middleware"
	"github.com/imaaryan1108/consist/internal/services"
)

// connection wraps a websocket connection with its user ID. Writes are
// serialized because broadcasts run concurrently.
type connection struct {
	conn   *websocket.Conn
	userID uuid.UUID
	mu     sync.Mutex
}

func (c *connection) write(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

// Hub manages WebSocket connections per circle and implements
// services.Publisher.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*connection]bool // circleID -> set of connections
	log   *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		rooms: make(map[uuid.UUID]map[*connection]bool),
		log:   log,
	}
}

func (h *Hub) register(circleID uuid.UUID, conn *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[circleID] == nil {
		h.rooms[circleID] = make(map[*connection]bool)
	}
	h.rooms[circleID][conn] = true
	h.log.Debug("ws register",
		zap.String("user_id", conn.userID.String()),
		zap.String("circle_id", circleID.String()),
		zap.Int("total", len(h.rooms[circleID])),
	)
}

func (h *Hub) unregister(circleID uuid.UUID, conn *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.rooms[circleID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.rooms, circleID)
		}
	}
}

// Subscribers returns the number of live connections in a circle.
func (h *Hub) Subscribers(circleID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[circleID])
}

// Publish fans the event out in the background, skipping the user who
// triggered it.
func (h *Hub) Publish(circleID, excludeUserID uuid.UUID, event services.Event) {
	h.mu.RLock()
	targets := make([]*connection, 0, len(h.rooms[circleID]))
	for c := range h.rooms[circleID] {
		if c.userID != excludeUserID {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()
	if len(targets) == 0 {
		return
	}

	msg, err := json.Marshal(event)
	if err != nil {
		h.log.Warn("ws marshal", zap.String("type", event.Type), zap.Error(err))
		return
	}
	go func() {
		for _, c := range targets {
			if err := c.write(msg); err != nil {
				h.log.Debug("ws write", zap.String("user_id", c.userID.String()), zap.Error(err))
			}
		}
	}()
}

// WebSocketUpgrade checks the upgrade request and validates the JWT, taken
// from ?token= for browsers or the Authorization header otherwise.
func WebSocketUpgrade(auth *middleware.JWT) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		tokenString := c.Query("token")
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				tokenString = ""
			}
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authentication token",
			})
		}

		claims, err := auth.Parse(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("userId", claims.UserID)
		return c.Next()
	}
}

// HandleWebSocket subscribes a circle member to the circle's live feed.
func (h *Handler) HandleWebSocket(hub *Hub) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		circleID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return
		}
		userID, ok := c.Locals("userId").(uuid.UUID)
		if !ok {
			return
		}
		member, err := h.svc.Circles.IsMember(context.Background(), userID, circleID)
		if err != nil || !member {
			return
		}

		conn := &connection{conn: c, userID: userID}
		hub.register(circleID, conn)
		defer hub.unregister(circleID, conn)

		// Clients only send keepalives; block until the socket closes.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}
}
