package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wfunc/feast-game/internal/config"
	"github.com/wfunc/feast-game/internal/game"
	"github.com/wfunc/feast-game/internal/game/slot"
	"github.com/wfunc/feast-game/internal/middleware"
	"github.com/wfunc/feast-game/internal/utils"
	ws "github.com/wfunc/feast-game/internal/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Router API路由器
type Router struct {
	engine         *gin.Engine
	db             *gorm.DB
	gameService    *game.GameService
	hub            *ws.Hub
	sessionHandler *SessionHandler
	gameHandler    *GameHandler
	wsHandler      *ws.Handler
	authMiddleware *middleware.AuthMiddleware
	log            *zap.Logger
}

// NewRouter 创建路由器
func NewRouter(db *gorm.DB, cfg *config.Config, log *zap.Logger) *Router {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	engine := gin.New()

	// 全局中间件
	engine.Use(gin.Recovery())
	engine.Use(gin.Logger())

	// 引擎配置来自应用配置，其余使用默认档位
	engineConfig := slot.GetDefaultEngineConfig()
	if cfg.Game.MinBet > 0 {
		engineConfig.MinBet = cfg.Game.MinBet
	}
	if cfg.Game.MaxBet > 0 {
		engineConfig.MaxBet = cfg.Game.MaxBet
	}
	if cfg.Game.DefaultBet > 0 {
		engineConfig.DefaultBet = cfg.Game.DefaultBet
	}
	if cfg.Game.InitialBalance > 0 {
		engineConfig.InitialBalance = cfg.Game.InitialBalance
	}
	if cfg.Game.MaxCascades > 0 {
		engineConfig.MaxCascades = cfg.Game.MaxCascades
	}

	gameService := game.NewGameService(&game.GameServiceConfig{
		DB:             db,
		Logger:         log,
		EngineConfig:   engineConfig,
		SessionTimeout: 30 * time.Minute,
		MaxSessions:    1000,
	})

	jwtManager := utils.NewJWTManager(
		cfg.Security.JWT.Secret,
		time.Duration(cfg.Security.JWT.ExpireHours)*time.Hour,
		time.Duration(cfg.Security.JWT.RefreshHours)*time.Hour,
	)

	hub := ws.NewHub(log)
	hub.SetMessageHandler(ws.NewGameMessageHandler(gameService, log))

	router := &Router{
		engine:         engine,
		db:             db,
		gameService:    gameService,
		hub:            hub,
		sessionHandler: NewSessionHandler(gameService, jwtManager, log),
		gameHandler:    NewGameHandler(gameService, log),
		wsHandler:      ws.NewHandler(hub, log),
		authMiddleware: middleware.NewAuthMiddleware(jwtManager),
		log:            log,
	}

	router.setupRoutes(cfg)

	return router
}

// setupRoutes 设置路由
func (r *Router) setupRoutes(cfg *config.Config) {
	// 健康检查
	r.engine.GET("/health", r.healthCheck)

	// API v1路由组
	v1 := r.engine.Group("/api/v1")
	{
		// 会话相关路由（不需要认证）
		session := v1.Group("/session")
		{
			session.POST("", r.sessionHandler.Create)
			session.POST("/refresh", r.sessionHandler.Refresh)
		}

		// 游戏相关路由（需要认证）
		gameGroup := v1.Group("/game")
		gameGroup.Use(r.authMiddleware.RequireAuth())
		{
			gameGroup.POST("/spin", r.gameHandler.Spin)
			gameGroup.GET("/state", r.gameHandler.GetState)
			gameGroup.PUT("/bet", r.gameHandler.SetBet)
			gameGroup.PUT("/ante", r.gameHandler.SetAnteMode)
			gameGroup.POST("/buy", r.gameHandler.BuyFreeSpins)
			gameGroup.GET("/history", r.gameHandler.GetHistory)
			gameGroup.GET("/session", r.gameHandler.GetSessionInfo)
			gameGroup.GET("/statistics", r.gameHandler.GetStatistics)
			gameGroup.DELETE("/session", r.gameHandler.EndSession)
		}
	}

	// WebSocket路由
	wsPath := cfg.WebSocket.Path
	if wsPath == "" {
		wsPath = "/ws"
	}
	wsGroup := r.engine.Group(wsPath)
	wsGroup.Use(r.authMiddleware.RequireAuth())
	{
		wsGroup.GET("", r.wsHandler.ServeWS)
	}

	// 404处理
	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"code":    "NOT_FOUND",
			"message": "接口不存在",
		})
	})
}

// healthCheck 健康检查
func (r *Router) healthCheck(c *gin.Context) {
	sqlDB, err := r.db.DB()
	if err != nil {
		c.JSON(500, gin.H{
			"status":  "unhealthy",
			"message": "数据库连接失败",
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(500, gin.H{
			"status":  "unhealthy",
			"message": "数据库ping失败",
		})
		return
	}

	c.JSON(200, gin.H{
		"status":  "healthy",
		"message": "服务运行正常",
		"online":  r.hub.GetOnlineCount(),
	})
}

// Start 启动Hub与会话清理等后台任务
func (r *Router) Start(ctx context.Context) {
	go r.hub.Run()
	r.gameService.Start(ctx)
}

// Stop 停止后台任务并结束所有会话
func (r *Router) Stop(ctx context.Context) {
	r.gameService.Stop(ctx)
}

// Run 运行服务器
func (r *Router) Run(addr string) error {
	r.log.Info("Starting API server", zap.String("address", addr))
	return r.engine.Run(addr)
}

// GetEngine 获取Gin引擎（用于测试）
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// GetHub 获取WebSocket Hub
func (r *Router) GetHub() *ws.Hub {
	return r.hub
}

// GetGameService 获取游戏服务
func (r *Router) GetGameService() *game.GameService {
	return r.gameService
}
