package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wfunc/feast-game/internal/game/slot"
	"github.com/wfunc/feast-game/internal/models"
	"github.com/wfunc/feast-game/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrSessionNotFound 会话不存在
var ErrSessionNotFound = errors.New("会话不存在")

// SessionManager 游戏会话管理器，每个会话持有独立的引擎实例
type SessionManager struct {
	mu             sync.RWMutex
	sessions       map[string]*PlayerSession
	logger         *zap.Logger
	engineConfig   *slot.EngineConfig
	sessionRepo    repository.GameSessionRepository
	sessionTimeout time.Duration
	maxSessions    int
}

// PlayerSession 玩家会话
type PlayerSession struct {
	SessionID    string
	DeviceID     string
	Engine       *slot.CascadeSlotEngine
	StartTime    time.Time
	LastActivity time.Time
	LastResult   *slot.SpinResult
	TotalBet     int64
	TotalWin     int64
	SpinCount    int
	mu           sync.RWMutex
}

// SessionConfig 会话管理器配置
type SessionConfig struct {
	Logger         *zap.Logger
	DB             *gorm.DB
	EngineConfig   *slot.EngineConfig
	SessionTimeout time.Duration
	MaxSessions    int
}

// NewSessionManager 创建会话管理器
func NewSessionManager(config *SessionConfig) *SessionManager {
	engineConfig := config.EngineConfig
	if engineConfig == nil {
		engineConfig = slot.GetDefaultEngineConfig()
	}

	return &SessionManager{
		sessions:       make(map[string]*PlayerSession),
		logger:         config.Logger,
		engineConfig:   engineConfig,
		sessionRepo:    repository.NewGameSessionRepository(config.DB),
		sessionTimeout: config.SessionTimeout,
		maxSessions:    config.MaxSessions,
	}
}

// CreateSession 创建新会话
func (sm *SessionManager) CreateSession(ctx context.Context, sessionID, deviceID string) (*PlayerSession, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= sm.maxSessions {
		return nil, errors.New("会话数量已达上限")
	}

	if _, exists := sm.sessions[sessionID]; exists {
		return nil, fmt.Errorf("会话已存在: %s", sessionID)
	}

	engine, err := slot.NewCascadeSlotEngine(sm.engineConfig)
	if err != nil {
		return nil, fmt.Errorf("创建引擎失败: %w", err)
	}
	engine.SetLogger(sm.logger)

	session := &PlayerSession{
		SessionID:    sessionID,
		DeviceID:     deviceID,
		Engine:       engine,
		StartTime:    time.Now(),
		LastActivity: time.Now(),
	}

	sm.sessions[sessionID] = session

	if err := sm.sessionRepo.Create(ctx, &models.GameSession{
		SessionID: sessionID,
		DeviceID:  deviceID,
		Status:    "playing",
		StartedAt: session.StartTime,
	}); err != nil {
		delete(sm.sessions, sessionID)
		return nil, fmt.Errorf("持久化会话失败: %w", err)
	}

	sm.logger.Info("创建游戏会话",
		zap.String("session_id", sessionID),
		zap.String("device_id", deviceID))

	return session, nil
}

// GetSession 获取会话
func (sm *SessionManager) GetSession(sessionID string) (*PlayerSession, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[sessionID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	session.UpdateActivity()

	return session, nil
}

// RemoveSession 移除会话并记录终态
func (sm *SessionManager) RemoveSession(ctx context.Context, sessionID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.sessions[sessionID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	state := session.Engine.GetState()
	if err := sm.sessionRepo.End(ctx, sessionID, state.Balance); err != nil {
		sm.logger.Error("记录会话结束失败",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	delete(sm.sessions, sessionID)

	sm.logger.Info("移除游戏会话",
		zap.String("session_id", sessionID),
		zap.Int("total_spins", session.SpinCount),
		zap.Int64("total_bet", session.TotalBet),
		zap.Int64("total_win", session.TotalWin))

	return nil
}

// CleanupInactiveSessions 清理不活跃的会话
func (sm *SessionManager) CleanupInactiveSessions(ctx context.Context) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := time.Now()
	var toRemove []string

	for sessionID, session := range sm.sessions {
		if now.Sub(session.lastActivity()) > sm.sessionTimeout {
			toRemove = append(toRemove, sessionID)
		}
	}

	for _, sessionID := range toRemove {
		session := sm.sessions[sessionID]

		state := session.Engine.GetState()
		if err := sm.sessionRepo.End(ctx, sessionID, state.Balance); err != nil {
			sm.logger.Error("记录超时会话结束失败",
				zap.String("session_id", sessionID),
				zap.Error(err))
		}

		delete(sm.sessions, sessionID)

		sm.logger.Info("清理超时会话",
			zap.String("session_id", sessionID),
			zap.Duration("inactive", now.Sub(session.lastActivity())))
	}
}

// StartCleanupTask 启动清理任务
func (sm *SessionManager) StartCleanupTask(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				sm.logger.Info("停止会话清理任务")
				return
			case <-ticker.C:
				sm.CleanupInactiveSessions(ctx)
			}
		}
	}()
}

// GetActiveSessions 获取活跃会话数
func (sm *SessionManager) GetActiveSessions() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// UpdateActivity 更新活动时间
func (ps *PlayerSession) UpdateActivity() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.LastActivity = time.Now()
}

func (ps *PlayerSession) lastActivity() time.Time {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.LastActivity
}

// Spin 执行一次旋转并更新会话统计
func (ps *PlayerSession) Spin() (*slot.SpinResult, error) {
	result, err := ps.Engine.Spin()
	if result == nil {
		return nil, err
	}

	ps.mu.Lock()
	ps.LastResult = result
	ps.SpinCount++
	ps.TotalBet += result.Bet
	ps.TotalWin += result.TotalWin
	ps.LastActivity = time.Now()
	ps.mu.Unlock()

	// 消除轮数溢出时结果仍然有效，错误向上传递
	return result, err
}

// GetLastResult 获取最后的转动结果
func (ps *PlayerSession) GetLastResult() *slot.SpinResult {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.LastResult
}

// Stats 获取会话统计快照
func (ps *PlayerSession) Stats() (spins int, totalBet, totalWin int64) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.SpinCount, ps.TotalBet, ps.TotalWin
}
