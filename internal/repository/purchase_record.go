package repository

import (
	"context"
	"time"

	"github.com/wfunc/feast-game/internal/models"
	"gorm.io/gorm"
)

// PurchaseRecordRepository 购买记录仓储接口
type PurchaseRecordRepository interface {
	Create(ctx context.Context, record *models.PurchaseRecord) error
	FindBySessionID(ctx context.Context, sessionID string) ([]*models.PurchaseRecord, error)
	TotalCostSince(ctx context.Context, since time.Time) (int64, error)
}

// purchaseRecordRepo 购买记录仓储实现
type purchaseRecordRepo struct {
	*BaseRepo
}

// NewPurchaseRecordRepository 创建购买记录仓储
func NewPurchaseRecordRepository(db *gorm.DB) PurchaseRecordRepository {
	return &purchaseRecordRepo{
		BaseRepo: NewBaseRepo(db),
	}
}

// Create 创建购买记录
func (r *purchaseRecordRepo) Create(ctx context.Context, record *models.PurchaseRecord) error {
	if record.PurchasedAt.IsZero() {
		record.PurchasedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// FindBySessionID 查询会话的购买记录
func (r *purchaseRecordRepo) FindBySessionID(ctx context.Context, sessionID string) ([]*models.PurchaseRecord, error) {
	var records []*models.PurchaseRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("purchased_at asc").
		Find(&records).Error
	return records, err
}

// TotalCostSince 统计某时间之后的购买总花费
func (r *purchaseRecordRepo) TotalCostSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.PurchaseRecord{}).
		Where("purchased_at >= ?", since).
		Select("COALESCE(SUM(cost), 0)").
		Scan(&total).Error
	return total, err
}
