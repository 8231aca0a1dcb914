package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartlist/internal/auth"
	"smartlist/internal/websocket"
)

type WebSocketHandler struct {
	hub *websocket.Hub
	jwt *auth.JWTManager
}

func NewWebSocketHandler(hub *websocket.Hub, jwt *auth.JWTManager) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, jwt: jwt}
}

// Connect authenticates via the token query parameter, since browsers cannot
// set headers on WebSocket upgrades, then hands the connection to the hub.
func (h *WebSocketHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	h.hub.ServeWS(c, claims.UserID)
}

// OnlineUsers reports which users currently hold an open connection.
func (h *WebSocketHandler) OnlineUsers(c *gin.Context) {
	_, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	users := h.hub.OnlineUsers()
	if users == nil {
		users = []int{}
	}
	c.JSON(http.StatusOK, gin.H{"online_users": users})
}
