package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/wfunc/feast-game/internal/errors"
	"github.com/wfunc/feast-game/internal/game"
	"github.com/wfunc/feast-game/internal/game/slot"
	"github.com/wfunc/feast-game/internal/middleware"
	"go.uber.org/zap"
)

// GameHandler 游戏处理器
type GameHandler struct {
	gameService *game.GameService
	logger      *zap.Logger
}

// NewGameHandler 创建游戏处理器
func NewGameHandler(gameService *game.GameService, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		logger:      logger,
	}
}

// BetRequest 设置下注请求
type BetRequest struct {
	Bet int64 `json:"bet" binding:"required,min=1"`
}

// AnteRequest 设置加注模式请求
type AnteRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// BuyRequest 购买免费旋转请求
type BuyRequest struct {
	Package string `json:"package" binding:"required"`
}

// Spin 执行一次旋转
func (h *GameHandler) Spin(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		respondError(c, apperrors.New(apperrors.ErrAuthentication))
		return
	}

	resp, err := h.gameService.Spin(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.Error("旋转失败",
			zap.String("session_id", sessionID),
			zap.Error(err))
		respondError(c, mapGameError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetState 获取当前游戏状态
func (h *GameHandler) GetState(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		respondError(c, apperrors.New(apperrors.ErrAuthentication))
		return
	}

	state, err := h.gameService.GetState(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, mapGameError(err))
		return
	}

	c.JSON(http.StatusOK, state)
}

// SetBet 设置下注金额
func (h *GameHandler) SetBet(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		respondError(c, apperrors.New(apperrors.ErrAuthentication))
		return
	}

	var req BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.ErrInvalidParam))
		return
	}

	state, err := h.gameService.SetBet(c.Request.Context(), sessionID, req.Bet)
	if err != nil {
		respondError(c, mapGameError(err))
		return
	}

	c.JSON(http.StatusOK, state)
}

// SetAnteMode 设置加注模式
func (h *GameHandler) SetAnteMode(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		respondError(c, apperrors.New(apperrors.ErrAuthentication))
		return
	}

	var req AnteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.ErrInvalidParam))
		return
	}

	state, err := h.gameService.SetAnteMode(c.Request.Context(), sessionID, slot.AnteMode(req.Mode))
	if err != nil {
		respondError(c, mapGameError(err))
		return
	}

	c.JSON(http.StatusOK, state)
}

// BuyFreeSpins 购买免费旋转
func (h *GameHandler) BuyFreeSpins(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		respondError(c, apperrors.New(apperrors.ErrAuthentication))
		return
	}

	var req BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.ErrInvalidParam))
		return
	}

	resp, err := h.gameService.BuyFreeSpins(c.Request.Context(), sessionID, slot.PackageType(req.Package))
	if err != nil {
		respondError(c, mapGameError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetHistory 获取旋转历史
func (h *GameHandler) GetHistory(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		respondError(c, apperrors.New(apperrors.ErrAuthentication))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	records, pagination, err := h.gameService.GetHistory(c.Request.Context(), sessionID, page, pageSize)
	if err != nil {
		respondError(c, mapGameError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records":   records,
		"total":     pagination.Total,
		"page":      pagination.Page,
		"page_size": pagination.PageSize,
	})
}

// GetSessionInfo 获取会话信息
func (h *GameHandler) GetSessionInfo(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		respondError(c, apperrors.New(apperrors.ErrAuthentication))
		return
	}

	info, err := h.gameService.GetSessionInfo(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, mapGameError(err))
		return
	}

	c.JSON(http.StatusOK, info)
}

// GetStatistics 获取引擎统计
func (h *GameHandler) GetStatistics(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		respondError(c, apperrors.New(apperrors.ErrAuthentication))
		return
	}

	stats, err := h.gameService.GetStatistics(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, mapGameError(err))
		return
	}

	c.JSON(http.StatusOK, stats)
}

// EndSession 结束会话
func (h *GameHandler) EndSession(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		respondError(c, apperrors.New(apperrors.ErrAuthentication))
		return
	}

	if err := h.gameService.EndSession(c.Request.Context(), sessionID); err != nil {
		respondError(c, mapGameError(err))
		return
	}

	h.logger.Info("会话已结束", zap.String("session_id", sessionID))
	c.JSON(http.StatusOK, gin.H{"message": "会话已结束"})
}

// mapGameError 把服务层错误映射为带错误码的AppError
func mapGameError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		return apperrors.Wrap(err, apperrors.ErrNotFound)
	case errors.Is(err, slot.ErrInsufficientBalance):
		return apperrors.Wrap(err, apperrors.ErrInsufficientCoins)
	case errors.Is(err, slot.ErrSpinInProgress):
		return apperrors.Wrap(err, apperrors.ErrSpinInProgress)
	case errors.Is(err, slot.ErrInvalidAnteMode):
		return apperrors.Wrap(err, apperrors.ErrInvalidAnteMode)
	case errors.Is(err, slot.ErrUnknownPackage):
		return apperrors.Wrap(err, apperrors.ErrUnknownPackage)
	case errors.Is(err, slot.ErrAlreadyInFreeSpins):
		return apperrors.Wrap(err, apperrors.ErrFreeSpinsActive)
	case errors.Is(err, slot.ErrCascadeOverflow):
		return apperrors.Wrap(err, apperrors.ErrCascadeOverflow)
	default:
		return apperrors.Wrap(err, apperrors.ErrGameStateError)
	}
}

// respondError 统一错误响应
func respondError(c *gin.Context, appErr *apperrors.AppError) {
	requestID := c.GetHeader("X-Request-ID")
	c.JSON(appErr.HTTPStatus(), apperrors.NewErrorResponse(appErr, requestID))
}
