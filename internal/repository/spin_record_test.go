package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wfunc/feast-game/internal/models"
)

func TestSpinRecordRepository_Create(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewSpinRecordRepository(db)
	ctx := context.Background()

	record := CreateTestSpinRecord("session-1", 1000, 2500)
	err := repo.Create(ctx, record)
	require.NoError(t, err)
	assert.NotZero(t, record.ID)

	found, err := repo.FindBySpinID(ctx, record.SpinID)
	require.NoError(t, err)
	assert.Equal(t, record.SessionID, found.SessionID)
	assert.Equal(t, int64(1000), found.Bet)
	assert.Equal(t, int64(2500), found.TotalWin)
	assert.Equal(t, int64(1500), found.NetWin())
}

func TestSpinRecordRepository_BatchCreate(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewSpinRecordRepository(db)
	ctx := context.Background()

	records := make([]*models.SpinRecord, 5)
	for i := 0; i < 5; i++ {
		records[i] = CreateTestSpinRecord("session-1", 1000, int64(i*500))
	}

	err := repo.BatchCreate(ctx, records)
	require.NoError(t, err)

	for _, record := range records {
		found, err := repo.FindBySpinID(ctx, record.SpinID)
		require.NoError(t, err)
		assert.NotNil(t, found)
	}
}

func TestSpinRecordRepository_FindBySessionID(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewSpinRecordRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		record := CreateTestSpinRecord("session-a", 1000, int64(i*100))
		record.PlayedAt = time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Create(ctx, record))
	}
	// 其他会话的记录不应出现在结果中
	require.NoError(t, repo.Create(ctx, CreateTestSpinRecord("session-b", 1000, 0)))

	pagination := NewPagination(1, 10)
	records, err := repo.FindBySessionID(ctx, "session-a", pagination)
	require.NoError(t, err)
	assert.Len(t, records, 5)
	assert.Equal(t, int64(5), pagination.Total)

	// 按时间倒序
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].PlayedAt.After(records[i-1].PlayedAt))
	}
}

func TestSpinRecordRepository_Pagination(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewSpinRecordRepository(db)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		require.NoError(t, repo.Create(ctx, CreateTestSpinRecord("session-a", 1000, 0)))
	}

	pagination := NewPagination(2, 10)
	records, err := repo.FindBySessionID(ctx, "session-a", pagination)
	require.NoError(t, err)
	assert.Len(t, records, 5)
	assert.Equal(t, int64(15), pagination.Total)
}

func TestSpinRecordRepository_GetSessionStatistics(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewSpinRecordRepository(db)
	ctx := context.Background()

	bets := []int64{1000, 1000, 2000}
	wins := []int64{500, 0, 6000}
	for i := range bets {
		record := CreateTestSpinRecord("session-a", bets[i], wins[i])
		if i == 2 {
			record.FreeSpinsTriggered = true
		}
		require.NoError(t, repo.Create(ctx, record))
	}
	// 免费旋转不投注
	free := CreateTestSpinRecord("session-a", 0, 300)
	free.IsFreeSpin = true
	require.NoError(t, repo.Create(ctx, free))

	stats, err := repo.GetSessionStatistics(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalSpins)
	assert.Equal(t, int64(4000), stats.TotalBet)
	assert.Equal(t, int64(6800), stats.TotalWin)
	assert.Equal(t, int64(6000), stats.MaxWin)
	assert.Equal(t, int64(1), stats.FreeSpinTriggers)
	assert.Equal(t, int64(1), stats.FreeSpins)
	assert.InDelta(t, 1.7, stats.RTP, 0.0001)
}

func TestSpinRecordRepository_GetBigWins(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewSpinRecordRepository(db)
	ctx := context.Background()

	wins := []int64{100, 50000, 200000, 80000}
	for _, w := range wins {
		require.NoError(t, repo.Create(ctx, CreateTestSpinRecord("session-a", 1000, w)))
	}

	records, err := repo.GetBigWins(ctx, 50000, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, int64(200000), records[0].TotalWin)
	assert.Equal(t, int64(80000), records[1].TotalWin)
	assert.Equal(t, int64(50000), records[2].TotalWin)
}

func TestSpinRecordRepository_CountSince(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewSpinRecordRepository(db)
	ctx := context.Background()

	old := CreateTestSpinRecord("session-a", 1000, 0)
	old.PlayedAt = time.Now().Add(-2 * time.Hour)
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, CreateTestSpinRecord("session-a", 1000, 0)))

	count, err := repo.CountSince(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
