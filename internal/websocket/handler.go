package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/wfunc/feast-game/internal/middleware"
	"go.uber.org/zap"
)

// Handler WebSocket升级处理器
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHandler 创建WebSocket处理器
func NewHandler(hub *Hub, logger *zap.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// 客户端为内嵌WebView，不做同源校验
				return true
			},
		},
		logger: logger,
	}
}

// ServeWS 处理WebSocket连接请求
func (h *Handler) ServeWS(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}
	deviceID, _ := middleware.GetDeviceID(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket升级失败",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return
	}

	client := NewClient(h.hub, conn, sessionID, deviceID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
