package game

import (
	"time"

	"github.com/wfunc/feast-game/internal/game/slot"
)

// SpinResponse 转动响应
type SpinResponse struct {
	SessionID string           `json:"session_id"`
	Result    *slot.SpinResult `json:"result"`
	TotalBet  int64            `json:"total_bet"`
	TotalWin  int64            `json:"total_win"`
	SpinCount int              `json:"spin_count"`
}

// SessionInfo 会话信息
type SessionInfo struct {
	SessionID  string           `json:"session_id"`
	DeviceID   string           `json:"device_id"`
	StartTime  time.Time        `json:"start_time"`
	Duration   float64          `json:"duration"`
	SpinCount  int              `json:"spin_count"`
	TotalBet   int64            `json:"total_bet"`
	TotalWin   int64            `json:"total_win"`
	RTP        float64          `json:"rtp"`
	State      *slot.GameState  `json:"state"`
	LastResult *slot.SpinResult `json:"last_result,omitempty"`
}

// BuyResponse 购买免费旋转响应
type BuyResponse struct {
	SessionID string          `json:"session_id"`
	Package   string          `json:"package"`
	Cost      int64           `json:"cost"`
	FreeSpins int             `json:"free_spins"`
	State     *slot.GameState `json:"state"`
}
