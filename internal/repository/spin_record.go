package repository

import (
	"context"
	"time"

	"github.com/wfunc/feast-game/internal/models"
	"gorm.io/gorm"
)

// SpinRecordRepository 旋转记录仓储接口
type SpinRecordRepository interface {
	Create(ctx context.Context, record *models.SpinRecord) error
	BatchCreate(ctx context.Context, records []*models.SpinRecord) error
	FindByID(ctx context.Context, id uint) (*models.SpinRecord, error)
	FindBySpinID(ctx context.Context, spinID string) (*models.SpinRecord, error)
	FindBySessionID(ctx context.Context, sessionID string, p *Pagination) ([]*models.SpinRecord, error)
	GetSessionStatistics(ctx context.Context, sessionID string) (*SpinStatistics, error)
	GetBigWins(ctx context.Context, minAmount int64, limit int) ([]*models.SpinRecord, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// SpinStatistics 旋转统计
type SpinStatistics struct {
	TotalSpins       int64   `json:"total_spins"`
	TotalBet         int64   `json:"total_bet"`
	TotalWin         int64   `json:"total_win"`
	RTP              float64 `json:"rtp"`
	MaxWin           int64   `json:"max_win"`
	FreeSpinTriggers int64   `json:"free_spin_triggers"`
	FreeSpins        int64   `json:"free_spins"`
}

// spinRecordRepo 旋转记录仓储实现
type spinRecordRepo struct {
	*BaseRepo
}

// NewSpinRecordRepository 创建旋转记录仓储
func NewSpinRecordRepository(db *gorm.DB) SpinRecordRepository {
	return &spinRecordRepo{
		BaseRepo: NewBaseRepo(db),
	}
}

// Create 创建旋转记录
func (r *spinRecordRepo) Create(ctx context.Context, record *models.SpinRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// BatchCreate 批量创建旋转记录
func (r *spinRecordRepo) BatchCreate(ctx context.Context, records []*models.SpinRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(records, 100).Error
}

// FindByID 根据ID查找
func (r *spinRecordRepo) FindByID(ctx context.Context, id uint) (*models.SpinRecord, error) {
	var record models.SpinRecord
	err := r.db.WithContext(ctx).First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindBySpinID 根据旋转ID查找
func (r *spinRecordRepo) FindBySpinID(ctx context.Context, spinID string) (*models.SpinRecord, error) {
	var record models.SpinRecord
	err := r.db.WithContext(ctx).
		Where("spin_id = ?", spinID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindBySessionID 根据会话ID查找，按时间倒序
func (r *spinRecordRepo) FindBySessionID(ctx context.Context, sessionID string, p *Pagination) ([]*models.SpinRecord, error) {
	var records []*models.SpinRecord

	r.db.WithContext(ctx).
		Model(&models.SpinRecord{}).
		Where("session_id = ?", sessionID).
		Count(&p.Total)

	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("played_at desc").
		Scopes(Paginate(p)).
		Find(&records).Error

	return records, err
}

// GetSessionStatistics 获取会话旋转统计
func (r *spinRecordRepo) GetSessionStatistics(ctx context.Context, sessionID string) (*SpinStatistics, error) {
	stats := &SpinStatistics{}

	err := r.db.WithContext(ctx).
		Model(&models.SpinRecord{}).
		Select(`COUNT(*) as total_spins,
			COALESCE(SUM(bet), 0) as total_bet,
			COALESCE(SUM(total_win), 0) as total_win,
			COALESCE(MAX(total_win), 0) as max_win,
			COALESCE(SUM(CASE WHEN free_spins_triggered THEN 1 ELSE 0 END), 0) as free_spin_triggers,
			COALESCE(SUM(CASE WHEN is_free_spin THEN 1 ELSE 0 END), 0) as free_spins`).
		Where("session_id = ?", sessionID).
		Scan(stats).Error
	if err != nil {
		return nil, err
	}

	if stats.TotalBet > 0 {
		stats.RTP = float64(stats.TotalWin) / float64(stats.TotalBet)
	}
	return stats, nil
}

// GetBigWins 获取大奖记录
func (r *spinRecordRepo) GetBigWins(ctx context.Context, minAmount int64, limit int) ([]*models.SpinRecord, error) {
	var records []*models.SpinRecord
	err := r.db.WithContext(ctx).
		Where("total_win >= ?", minAmount).
		Order("total_win desc").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// CountSince 统计某时间之后的旋转次数
func (r *spinRecordRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SpinRecord{}).
		Where("played_at >= ?", since).
		Count(&count).Error
	return count, err
}
