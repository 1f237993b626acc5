package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/unifylabs/unify-backend/internal/config"
	"github.com/unifylabs/unify-backend/internal/middleware"
	"github.com/unifylabs/unify-backend/internal/service"
	ws "github.com/unifylabs/unify-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live notifications over WebSocket.
type WSHandler struct {
	rdb           *redis.Client
	notifications *service.NotificationService
	log           zerolog.Logger
	upgrader      websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, notifications *service.NotificationService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:           rdb,
		notifications: notifications,
		log:           log.With().Str("component", "ws_handler").Logger(),
		upgrader:      buildUpgrader(allowedOrigins),
	}
}

// NotificationStream godoc
// WS /ws/v1/notifications/stream?token=...
// Subscribes the client to its pub/sub channel and forwards stored
// notifications as they arrive. The client can ping and ack reads over
// the same connection.
func (h *WSHandler) NotificationStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	raw, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	conn := ws.NewConn(raw)
	defer conn.Close()

	userID := claims.UserID
	wsLog := h.log.With().Int("user_id", userID).Logger()
	wsLog.Info().Msg("Client connected")

	// Subscription lives for the connection; canceling the context
	// stops the forwarder goroutine.
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub := h.rdb.Subscribe(ctx, config.CacheKey.UserNotifyChannel(userID))
	defer sub.Close()

	go h.forward(ctx, conn, sub, wsLog)

	h.sendUnreadCount(ctx, conn, userID)

	for {
		var msg ws.AckReadRequest
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		switch msg.Action {
		case ws.ActionPing:
			conn.WriteTyped(ws.PongResponse{Event: ws.EventPong})

		case ws.ActionAckRead:
			if err := h.notifications.MarkRead(ctx, userID, msg.NotificationID); err != nil {
				conn.WriteError("notification not found")
				continue
			}
			h.sendUnreadCount(ctx, conn, userID)

		default:
			conn.WriteError("unknown action")
		}
	}
}

// forward relays pub/sub payloads to the client until the context ends.
// Payloads are already serialized NotificationEvent JSON.
func (h *WSHandler) forward(ctx context.Context, conn *ws.Conn, sub *redis.PubSub, log zerolog.Logger) {
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteRaw([]byte(msg.Payload)); err != nil {
				log.Debug().Err(err).Msg("forward write failed")
				return
			}
		}
	}
}

func (h *WSHandler) sendUnreadCount(ctx context.Context, conn *ws.Conn, userID int) {
	unread, err := h.notifications.UnreadCount(ctx, userID)
	if err != nil {
		return
	}
	conn.WriteTyped(ws.UnreadCountEvent{Event: ws.EventUnreadCount, Unread: unread})
}
