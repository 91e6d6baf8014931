package models

import (
	"time"
)

// GameSession 游戏会话表
type GameSession struct {
	BaseModel
	SessionID    string     `gorm:"uniqueIndex;size:64;not null" json:"session_id"`
	DeviceID     string     `gorm:"size:100;index" json:"device_id"`
	Status       string     `gorm:"size:20;default:'playing'" json:"status"` // playing, ended
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	TotalSpins   int        `gorm:"default:0" json:"total_spins"`
	TotalBet     int64      `gorm:"default:0" json:"total_bet"`
	TotalWin     int64      `gorm:"default:0" json:"total_win"`
	PeakWin      int64      `gorm:"default:0" json:"peak_win"`
	FinalBalance int64      `gorm:"default:0" json:"final_balance"`
}

// TableName 指定表名
func (GameSession) TableName() string {
	return "game_sessions"
}

// SpinRecord 旋转记录表，记录每轮旋转的完整结果
type SpinRecord struct {
	BaseModel
	SpinID             string  `gorm:"uniqueIndex;size:64;not null" json:"spin_id"`
	SessionID          string  `gorm:"size:64;index;not null" json:"session_id"`
	Bet                int64   `gorm:"not null" json:"bet"`
	AnteMode           string  `gorm:"size:20;default:'none'" json:"ante_mode"`
	TotalWin           int64   `gorm:"default:0" json:"total_win"`
	CascadeWin         int64   `gorm:"default:0" json:"cascade_win"`
	TipWin             int64   `gorm:"default:0" json:"tip_win"`
	SuperBonusWin      int64   `gorm:"default:0" json:"super_bonus_win"`
	CascadeCount       int     `gorm:"default:0" json:"cascade_count"`
	ScatterCount       int     `gorm:"default:0" json:"scatter_count"`
	IsFreeSpin         bool    `gorm:"default:false" json:"is_free_spin"`
	FreeSpinsTriggered bool    `gorm:"default:false" json:"free_spins_triggered"`
	BalanceAfter       int64   `gorm:"default:0" json:"balance_after"`
	Result             JSONMap `gorm:"type:json" json:"result"`
	PlayedAt           time.Time `json:"played_at"`
}

// TableName 指定表名
func (SpinRecord) TableName() string {
	return "spin_records"
}

// NetWin 本轮净输赢
func (s *SpinRecord) NetWin() int64 {
	return s.TotalWin - s.Bet
}

// PurchaseRecord 免费旋转购买记录表
type PurchaseRecord struct {
	BaseModel
	SessionID   string    `gorm:"size:64;index;not null" json:"session_id"`
	PackageType string    `gorm:"size:20;not null" json:"package_type"` // cheap, standard
	Cost        int64     `gorm:"not null" json:"cost"`
	FreeSpins   int       `gorm:"not null" json:"free_spins"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// TableName 指定表名
func (PurchaseRecord) TableName() string {
	return "purchase_records"
}
