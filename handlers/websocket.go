package handlers

import (
	"net/http"
	"strings"

	userRepo "panditseva/database/repository/user"
	"panditseva/services/realtime"
	"panditseva/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebSocketHandler upgrades connections and registers them for live
// notification delivery. The socket is push-only: inbound frames are drained
// and discarded so pings and closes get processed.
type WebSocketHandler struct {
	Registry *realtime.Registry
	Users    userRepo.UserRepository
	Logger   *zap.Logger
}

// Connect authenticates the caller, upgrades to WebSocket and parks the
// connection in the registry until it drops. Identity comes from the token
// query parameter or the Authorization header; browsers cannot set headers on
// WebSocket dials, hence the query fallback.
func (h *WebSocketHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	userID, err := utils.ExtractIDFromToken(token)
	if err != nil {
		h.closeWith(conn, realtime.CloseInvalidIdentity, "invalid token")
		return
	}

	rec, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.closeWith(conn, realtime.CloseSetupFailure, "user lookup failed")
		return
	}
	if rec == nil {
		h.closeWith(conn, realtime.CloseInvalidIdentity, "unknown user")
		return
	}

	h.Registry.Register(userID, conn)
	h.Logger.Info("websocket connected", zap.String("userId", userID))

	// Drain inbound frames until the peer disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.Registry.Unregister(userID, conn)
	conn.Close()
	h.Logger.Info("websocket disconnected", zap.String("userId", userID))
}

func (h *WebSocketHandler) closeWith(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	if err := conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
		h.Logger.Debug("failed to write close frame", zap.Error(err))
	}
	conn.Close()
}
