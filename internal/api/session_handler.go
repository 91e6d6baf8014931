package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/wfunc/feast-game/internal/errors"
	"github.com/wfunc/feast-game/internal/game"
	"github.com/wfunc/feast-game/internal/utils"
	"go.uber.org/zap"
)

// SessionHandler 游客会话处理器
type SessionHandler struct {
	gameService *game.GameService
	jwtManager  *utils.JWTManager
	logger      *zap.Logger
}

// NewSessionHandler 创建会话处理器
func NewSessionHandler(gameService *game.GameService, jwtManager *utils.JWTManager, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		gameService: gameService,
		jwtManager:  jwtManager,
		logger:      logger,
	}
}

// CreateSessionRequest 创建会话请求
type CreateSessionRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
}

// CreateSessionResponse 创建会话响应
type CreateSessionResponse struct {
	SessionID    string            `json:"session_id"`
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	Session      *game.SessionInfo `json:"session"`
}

// RefreshRequest 刷新令牌请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Create 创建游客会话并签发令牌
func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.ErrInvalidParam))
		return
	}

	info, err := h.gameService.CreateSession(c.Request.Context(), req.DeviceID)
	if err != nil {
		h.logger.Error("创建会话失败",
			zap.String("device_id", req.DeviceID),
			zap.Error(err))
		respondError(c, apperrors.Wrap(err, apperrors.ErrGameNotStarted))
		return
	}

	accessToken, err := h.jwtManager.GenerateAccessToken(info.SessionID, req.DeviceID)
	if err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.ErrTokenInvalid))
		return
	}
	refreshToken, err := h.jwtManager.GenerateRefreshToken(info.SessionID, req.DeviceID)
	if err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.ErrTokenInvalid))
		return
	}

	h.logger.Info("游客会话已创建",
		zap.String("session_id", info.SessionID),
		zap.String("device_id", req.DeviceID))

	c.JSON(http.StatusOK, CreateSessionResponse{
		SessionID:    info.SessionID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Session:      info,
	})
}

// Refresh 刷新访问令牌
func (h *SessionHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.ErrInvalidParam))
		return
	}

	accessToken, err := h.jwtManager.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.ErrTokenInvalid))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
	})
}
