package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/wfunc/feast-game/internal/game"
	"github.com/wfunc/feast-game/internal/game/slot"
	"go.uber.org/zap"
)

// GameMessageHandler 游戏指令处理器，把WebSocket消息分发到游戏服务
type GameMessageHandler struct {
	gameService *game.GameService
	logger      *zap.Logger
}

// NewGameMessageHandler 创建游戏指令处理器
func NewGameMessageHandler(gameService *game.GameService, logger *zap.Logger) *GameMessageHandler {
	return &GameMessageHandler{
		gameService: gameService,
		logger:      logger,
	}
}

// betPayload 下注指令参数
type betPayload struct {
	Bet int64 `json:"bet"`
}

// antePayload 加注指令参数
type antePayload struct {
	Mode string `json:"mode"`
}

// buyPayload 购买指令参数
type buyPayload struct {
	Package string `json:"package"`
}

// HandleClientMessage 处理客户端消息
func (h *GameMessageHandler) HandleClientMessage(client *Client, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		h.logger.Error("解析游戏消息失败",
			zap.String("client_id", client.ID),
			zap.Error(err))
		client.SendError("消息格式错误")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch msg.Type {
	case MessageTypePong:
		// 心跳响应，无需处理

	case MessageTypeSpin:
		h.handleSpin(ctx, client)

	case MessageTypeSetBet:
		h.handleSetBet(ctx, client, msg.Data)

	case MessageTypeSetAnte:
		h.handleSetAnte(ctx, client, msg.Data)

	case MessageTypeBuy:
		h.handleBuy(ctx, client, msg.Data)

	case MessageTypeGetState:
		h.handleGetState(ctx, client)

	default:
		h.logger.Warn("收到不支持的游戏消息",
			zap.String("client_id", client.ID),
			zap.String("type", msg.Type))
		client.SendError("不支持的消息类型: " + msg.Type)
	}
}

func (h *GameMessageHandler) handleSpin(ctx context.Context, client *Client) {
	resp, err := h.gameService.Spin(ctx, client.SessionID)
	if err != nil {
		h.logger.Error("WebSocket旋转失败",
			zap.String("session_id", client.SessionID),
			zap.Error(err))
		client.SendError(err.Error())
		return
	}

	if err := client.SendMessage(MessageTypeSpinResult, resp); err != nil {
		h.logger.Warn("推送旋转结果失败",
			zap.String("client_id", client.ID),
			zap.Error(err))
	}
}

func (h *GameMessageHandler) handleSetBet(ctx context.Context, client *Client, data json.RawMessage) {
	var payload betPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		client.SendError("下注参数错误")
		return
	}

	state, err := h.gameService.SetBet(ctx, client.SessionID, payload.Bet)
	if err != nil {
		client.SendError(err.Error())
		return
	}

	client.SendMessage(MessageTypeGameState, state)
}

func (h *GameMessageHandler) handleSetAnte(ctx context.Context, client *Client, data json.RawMessage) {
	var payload antePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		client.SendError("加注参数错误")
		return
	}

	state, err := h.gameService.SetAnteMode(ctx, client.SessionID, slot.AnteMode(payload.Mode))
	if err != nil {
		client.SendError(err.Error())
		return
	}

	client.SendMessage(MessageTypeGameState, state)
}

func (h *GameMessageHandler) handleBuy(ctx context.Context, client *Client, data json.RawMessage) {
	var payload buyPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		client.SendError("购买参数错误")
		return
	}

	resp, err := h.gameService.BuyFreeSpins(ctx, client.SessionID, slot.PackageType(payload.Package))
	if err != nil {
		client.SendError(err.Error())
		return
	}

	client.SendMessage(MessageTypeBuyResult, resp)
}

func (h *GameMessageHandler) handleGetState(ctx context.Context, client *Client) {
	state, err := h.gameService.GetState(ctx, client.SessionID)
	if err != nil {
		client.SendError(err.Error())
		return
	}

	client.SendMessage(MessageTypeGameState, state)
}
