package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/wfunc/feast-game/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB 为测试设置内存数据库
func SetupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	err = db.AutoMigrate(
		&models.GameSession{},
		&models.SpinRecord{},
		&models.PurchaseRecord{},
	)
	if err != nil {
		panic(err)
	}

	return db
}

// CleanupTestDB 清理测试数据库
func CleanupTestDB(db *gorm.DB) {
	sqlDB, _ := db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

// CreateTestSession 创建测试会话
func CreateTestSession() *models.GameSession {
	return &models.GameSession{
		SessionID: uuid.NewString(),
		DeviceID:  "test-device",
		Status:    "playing",
		StartedAt: time.Now(),
	}
}

// CreateTestSpinRecord 创建测试旋转记录
func CreateTestSpinRecord(sessionID string, bet, win int64) *models.SpinRecord {
	return &models.SpinRecord{
		SpinID:    uuid.NewString(),
		SessionID: sessionID,
		Bet:       bet,
		AnteMode:  "none",
		TotalWin:  win,
		PlayedAt:  time.Now(),
		Result: models.JSONMap{
			"cascade_count": 1,
		},
	}
}
