package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wfunc/feast-game/internal/game/slot"
	"github.com/wfunc/feast-game/internal/models"
	"github.com/wfunc/feast-game/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GameService 游戏服务（业务逻辑层）
type GameService struct {
	sessionManager *SessionManager
	spinRecordRepo repository.SpinRecordRepository
	sessionRepo    repository.GameSessionRepository
	purchaseRepo   repository.PurchaseRecordRepository
	logger         *zap.Logger
	db             *gorm.DB
}

// GameServiceConfig 游戏服务配置
type GameServiceConfig struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	EngineConfig   *slot.EngineConfig
	SessionTimeout time.Duration
	MaxSessions    int
}

// NewGameService 创建游戏服务
func NewGameService(config *GameServiceConfig) *GameService {
	sessionConfig := &SessionConfig{
		Logger:         config.Logger,
		DB:             config.DB,
		EngineConfig:   config.EngineConfig,
		SessionTimeout: config.SessionTimeout,
		MaxSessions:    config.MaxSessions,
	}

	return &GameService{
		sessionManager: NewSessionManager(sessionConfig),
		spinRecordRepo: repository.NewSpinRecordRepository(config.DB),
		sessionRepo:    repository.NewGameSessionRepository(config.DB),
		purchaseRepo:   repository.NewPurchaseRecordRepository(config.DB),
		logger:         config.Logger,
		db:             config.DB,
	}
}

// CreateSession 创建游客会话
func (s *GameService) CreateSession(ctx context.Context, deviceID string) (*SessionInfo, error) {
	sessionID := uuid.NewString()

	session, err := s.sessionManager.CreateSession(ctx, sessionID, deviceID)
	if err != nil {
		return nil, err
	}

	return s.buildSessionInfo(session), nil
}

// Spin 执行转动
func (s *GameService) Spin(ctx context.Context, sessionID string) (*SpinResponse, error) {
	session, err := s.sessionManager.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	result, spinErr := session.Spin()
	if result == nil {
		return nil, fmt.Errorf("转动失败: %w", spinErr)
	}
	if spinErr != nil {
		// 消除轮数溢出：结果已结算，只记录告警
		s.logger.Warn("旋转异常结束",
			zap.String("session_id", sessionID),
			zap.String("spin_id", result.ID),
			zap.Error(spinErr))
	}

	state := session.Engine.GetState()

	// 保存旋转记录
	if err := s.saveSpinRecord(ctx, sessionID, state, result); err != nil {
		s.logger.Error("保存旋转记录失败",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	// 累计会话统计
	if err := s.sessionRepo.AccumulateSpin(ctx, sessionID, result.Bet, result.TotalWin); err != nil {
		s.logger.Error("累计会话统计失败",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	spins, totalBet, totalWin := session.Stats()
	return &SpinResponse{
		SessionID: sessionID,
		Result:    result,
		TotalBet:  totalBet,
		TotalWin:  totalWin,
		SpinCount: spins,
	}, nil
}

// SetBet 设置下注金额
func (s *GameService) SetBet(ctx context.Context, sessionID string, bet int64) (*slot.GameState, error) {
	session, err := s.sessionManager.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.Engine.SetBet(bet)
	return session.Engine.GetState(), nil
}

// SetAnteMode 设置加注模式
func (s *GameService) SetAnteMode(ctx context.Context, sessionID string, mode slot.AnteMode) (*slot.GameState, error) {
	session, err := s.sessionManager.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.Engine.SetAnteMode(mode); err != nil {
		return nil, err
	}
	return session.Engine.GetState(), nil
}

// BuyFreeSpins 购买免费旋转
func (s *GameService) BuyFreeSpins(ctx context.Context, sessionID string, pt slot.PackageType) (*BuyResponse, error) {
	session, err := s.sessionManager.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	pkg, ok := session.Engine.GetConfig().BuyPackages[pt]
	if !ok {
		return nil, slot.ErrUnknownPackage
	}
	cost := int64(pkg.CostMultiplier * float64(session.Engine.GetState().CurrentBet))

	state, err := session.Engine.BuyFreeSpins(pt)
	if err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Create(ctx, &models.PurchaseRecord{
		SessionID:   sessionID,
		PackageType: string(pt),
		Cost:        cost,
		FreeSpins:   pkg.FreeSpins,
		PurchasedAt: time.Now(),
	}); err != nil {
		s.logger.Error("保存购买记录失败",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	s.logger.Info("购买免费旋转",
		zap.String("session_id", sessionID),
		zap.String("package", string(pt)),
		zap.Int64("cost", cost),
		zap.Int("free_spins", pkg.FreeSpins))

	return &BuyResponse{
		SessionID: sessionID,
		Package:   string(pt),
		Cost:      cost,
		FreeSpins: pkg.FreeSpins,
		State:     state,
	}, nil
}

// GetState 获取会话游戏状态
func (s *GameService) GetState(ctx context.Context, sessionID string) (*slot.GameState, error) {
	session, err := s.sessionManager.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	return session.Engine.GetState(), nil
}

// GetSessionInfo 获取会话信息
func (s *GameService) GetSessionInfo(ctx context.Context, sessionID string) (*SessionInfo, error) {
	session, err := s.sessionManager.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildSessionInfo(session), nil
}

// GetHistory 获取会话旋转历史
func (s *GameService) GetHistory(ctx context.Context, sessionID string, page, pageSize int) ([]*models.SpinRecord, *repository.Pagination, error) {
	pagination := repository.NewPagination(page, pageSize)
	records, err := s.spinRecordRepo.FindBySessionID(ctx, sessionID, pagination)
	if err != nil {
		return nil, nil, err
	}
	return records, pagination, nil
}

// GetStatistics 获取会话引擎统计
func (s *GameService) GetStatistics(ctx context.Context, sessionID string) (*slot.Statistics, error) {
	session, err := s.sessionManager.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	stats := session.Engine.GetStatistics()
	return &stats, nil
}

// EndSession 结束会话
func (s *GameService) EndSession(ctx context.Context, sessionID string) error {
	return s.sessionManager.RemoveSession(ctx, sessionID)
}

// Start 启动游戏服务
func (s *GameService) Start(ctx context.Context) {
	s.sessionManager.StartCleanupTask(ctx, 5*time.Minute)
	s.logger.Info("游戏服务已启动")
}

// Stop 停止游戏服务，结束所有活跃会话
func (s *GameService) Stop(ctx context.Context) {
	s.sessionManager.mu.Lock()
	sessionIDs := make([]string, 0, len(s.sessionManager.sessions))
	for sessionID := range s.sessionManager.sessions {
		sessionIDs = append(sessionIDs, sessionID)
	}
	s.sessionManager.mu.Unlock()

	for _, sessionID := range sessionIDs {
		if err := s.sessionManager.RemoveSession(ctx, sessionID); err != nil {
			s.logger.Error("结束会话失败",
				zap.String("session_id", sessionID),
				zap.Error(err))
		}
	}

	s.logger.Info("游戏服务已停止")
}

func (s *GameService) buildSessionInfo(session *PlayerSession) *SessionInfo {
	spins, totalBet, totalWin := session.Stats()

	info := &SessionInfo{
		SessionID:  session.SessionID,
		DeviceID:   session.DeviceID,
		StartTime:  session.StartTime,
		Duration:   time.Since(session.StartTime).Seconds(),
		SpinCount:  spins,
		TotalBet:   totalBet,
		TotalWin:   totalWin,
		State:      session.Engine.GetState(),
		LastResult: session.GetLastResult(),
	}
	if totalBet > 0 {
		info.RTP = float64(totalWin) / float64(totalBet) * 100
	}
	return info
}

func (s *GameService) saveSpinRecord(ctx context.Context, sessionID string, state *slot.GameState, result *slot.SpinResult) error {
	record := &models.SpinRecord{
		SpinID:             result.ID,
		SessionID:          sessionID,
		Bet:                result.Bet,
		AnteMode:           string(state.AnteMode),
		TotalWin:           result.TotalWin,
		CascadeWin:         result.CascadeWin,
		TipWin:             result.TipWin,
		SuperBonusWin:      result.SuperBonusWin,
		CascadeCount:       len(result.Cascades),
		ScatterCount:       result.ScatterCount,
		IsFreeSpin:         result.IsFreeSpin,
		FreeSpinsTriggered: result.FreeSpinsTriggered,
		BalanceAfter:       result.Balance,
		Result: models.JSONMap{
			"wins":                 len(result.Wins),
			"cascades":             len(result.Cascades),
			"free_spins_awarded":   result.FreeSpinsAwarded,
			"free_spins_remaining": result.FreeSpinsRemaining,
			"free_spins_ended":     result.FreeSpinsEnded,
			"orders":               len(result.Orders),
		},
		PlayedAt: result.Timestamp,
	}
	return s.spinRecordRepo.Create(ctx, record)
}
