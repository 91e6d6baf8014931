package repository

import (
	"context"
	"time"

	"github.com/wfunc/feast-game/internal/models"
	"gorm.io/gorm"
)

// GameSessionRepository 游戏会话仓储接口
type GameSessionRepository interface {
	Create(ctx context.Context, session *models.GameSession) error
	FindBySessionID(ctx context.Context, sessionID string) (*models.GameSession, error)
	AccumulateSpin(ctx context.Context, sessionID string, bet, win int64) error
	End(ctx context.Context, sessionID string, finalBalance int64) error
	ListRecent(ctx context.Context, limit int) ([]*models.GameSession, error)
	ListActive(ctx context.Context) ([]*models.GameSession, error)
}

// gameSessionRepo 游戏会话仓储实现
type gameSessionRepo struct {
	*BaseRepo
}

// NewGameSessionRepository 创建游戏会话仓储
func NewGameSessionRepository(db *gorm.DB) GameSessionRepository {
	return &gameSessionRepo{
		BaseRepo: NewBaseRepo(db),
	}
}

// Create 创建游戏会话
func (r *gameSessionRepo) Create(ctx context.Context, session *models.GameSession) error {
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(session).Error
}

// FindBySessionID 根据会话ID查找
func (r *gameSessionRepo) FindBySessionID(ctx context.Context, sessionID string) (*models.GameSession, error) {
	var session models.GameSession
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// AccumulateSpin 累计一次旋转的投注与赢取
func (r *gameSessionRepo) AccumulateSpin(ctx context.Context, sessionID string, bet, win int64) error {
	updates := map[string]interface{}{
		"total_spins": gorm.Expr("total_spins + 1"),
		"total_bet":   gorm.Expr("total_bet + ?", bet),
		"total_win":   gorm.Expr("total_win + ?", win),
	}
	err := r.db.WithContext(ctx).
		Model(&models.GameSession{}).
		Where("session_id = ?", sessionID).
		Updates(updates).Error
	if err != nil {
		return err
	}

	// 峰值单独更新，只在超过时写入
	return r.db.WithContext(ctx).
		Model(&models.GameSession{}).
		Where("session_id = ? AND peak_win < ?", sessionID, win).
		Update("peak_win", win).Error
}

// End 结束游戏会话
func (r *gameSessionRepo) End(ctx context.Context, sessionID string, finalBalance int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.GameSession{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"status":        "ended",
			"ended_at":      &now,
			"final_balance": finalBalance,
		}).Error
}

// ListRecent 按开始时间倒序列出最近会话
func (r *gameSessionRepo) ListRecent(ctx context.Context, limit int) ([]*models.GameSession, error) {
	var sessions []*models.GameSession
	err := r.db.WithContext(ctx).
		Order("started_at desc").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

// ListActive 列出进行中的会话
func (r *gameSessionRepo) ListActive(ctx context.Context) ([]*models.GameSession, error) {
	var sessions []*models.GameSession
	err := r.db.WithContext(ctx).
		Where("status = ?", "playing").
		Find(&sessions).Error
	return sessions, err
}
