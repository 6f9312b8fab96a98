package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/internal/infrastructure/auth"
	"github.com/taskboard/backend/internal/infrastructure/realtime"
	"github.com/taskboard/backend/internal/interfaces/http/middleware"
)

// RealtimeHandler upgrades websocket connections for live board updates.
// The route sits outside the JWT middleware: browsers cannot set an
// Authorization header on a websocket upgrade, so the token arrives as a
// query parameter instead.
type RealtimeHandler struct {
	BaseHandler
	jwtService *auth.JWTService
	hub        *realtime.Hub
}

// NewRealtimeHandler creates a new realtime handler
func NewRealtimeHandler(jwtService *auth.JWTService, hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{jwtService: jwtService, hub: hub}
}

// RegisterRoutes registers the websocket route on the given router group
func (h *RealtimeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws", h.Connect)
}

// Connect authenticates and upgrades the connection to a websocket
func (h *RealtimeHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader(middleware.AuthHeaderKey), middleware.BearerPrefix)
	}
	if token == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}

	claims, err := h.jwtService.ValidateAccessToken(token)
	if err != nil {
		h.Unauthorized(c, "Invalid token")
		return
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		h.Unauthorized(c, "Invalid token claims")
		return
	}

	if err := h.hub.ServeWS(c.Writer, c.Request, userID, claims.Name); err != nil {
		// The upgrader already wrote an HTTP error response
		return
	}
}
