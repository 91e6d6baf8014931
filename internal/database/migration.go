package database

import (
	"fmt"

	"github.com/wfunc/feast-game/internal/logger"
	"github.com/wfunc/feast-game/internal/models"
	"go.uber.org/zap"
)

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate() error {
	if DB == nil {
		return fmt.Errorf("数据库未初始化")
	}

	migrationModels := []interface{}{
		&models.GameSession{},
		&models.SpinRecord{},
		&models.PurchaseRecord{},
	}

	logger.Info("开始数据库迁移...")

	// SQLite重建表时外键约束会导致锁定
	if DB.Dialector.Name() == "sqlite" {
		DB.Exec("PRAGMA foreign_keys = OFF")
		defer DB.Exec("PRAGMA foreign_keys = ON")
	}

	for _, model := range migrationModels {
		if err := DB.AutoMigrate(model); err != nil {
			logger.Error("迁移失败",
				zap.String("model", fmt.Sprintf("%T", model)),
				zap.Error(err),
			)
			return err
		}
		logger.Debug("迁移成功", zap.String("model", fmt.Sprintf("%T", model)))
	}

	if err := createIndexes(); err != nil {
		return err
	}

	logger.Info("数据库迁移完成")
	return nil
}

// createIndexes 创建数据库索引
func createIndexes() error {
	indexes := []struct {
		name string
		sql  string
	}{
		{"idx_spin_records_session_played", "CREATE INDEX IF NOT EXISTS idx_spin_records_session_played ON spin_records(session_id, played_at)"},
		{"idx_spin_records_total_win", "CREATE INDEX IF NOT EXISTS idx_spin_records_total_win ON spin_records(total_win)"},
		{"idx_game_sessions_status", "CREATE INDEX IF NOT EXISTS idx_game_sessions_status ON game_sessions(status)"},
		{"idx_purchase_records_session", "CREATE INDEX IF NOT EXISTS idx_purchase_records_session ON purchase_records(session_id)"},
	}

	for _, idx := range indexes {
		if err := DB.Exec(idx.sql).Error; err != nil {
			logger.Warn("创建索引失败", zap.String("index", idx.name), zap.Error(err))
		}
	}

	logger.Info("数据库索引创建完成")
	return nil
}

// DropAllTables 删除所有表（仅用于测试环境）
func DropAllTables() error {
	if DB == nil {
		return fmt.Errorf("数据库未初始化")
	}

	tables := []interface{}{
		&models.PurchaseRecord{},
		&models.SpinRecord{},
		&models.GameSession{},
	}

	for _, table := range tables {
		if err := DB.Migrator().DropTable(table); err != nil {
			logger.Error("删除表失败", zap.Error(err))
			return err
		}
	}

	logger.Info("所有表已删除")
	return nil
}
