package slot

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSpinInProgress      = errors.New("旋转正在进行中")
	ErrInsufficientBalance = errors.New("余额不足")
	ErrInvalidAnteMode     = errors.New("未知的底注档位")
	ErrUnknownPackage      = errors.New("未知的购买套餐")
	ErrAlreadyInFreeSpins  = errors.New("免费旋转进行中不允许该操作")
)

// SpinResult 单次旋转的完整结果
type SpinResult struct {
	ID                 string        `json:"id"`
	Bet                int64         `json:"bet"`       // 本次实际扣款（免费旋转为0）
	TotalWin           int64         `json:"total_win"` // 消除赢分+小费+终局大奖
	CascadeWin         int64         `json:"cascade_win"`
	TipWin             int64         `json:"tip_win"`
	SuperBonusWin      int64         `json:"super_bonus_win"`
	Wins               []WinInfo     `json:"wins"`
	Cascades           []CascadeStep `json:"cascades"`
	InitialGrid        *Grid         `json:"initial_grid"`
	FinalGrid          *Grid         `json:"final_grid"`
	ScatterCount       int           `json:"scatter_count"` // 初始网格的Scatter数
	FreeSpinsTriggered bool          `json:"free_spins_triggered"`
	FreeSpinsAwarded   int           `json:"free_spins_awarded"`
	IsFreeSpin         bool          `json:"is_free_spin"` // 本次是否为免费旋转
	FreeSpinsRemaining int           `json:"free_spins_remaining"`
	FreeSpinsEnded     bool          `json:"free_spins_ended"` // 本次是否结束了免费旋转
	Orders             []Order       `json:"orders"`
	Balance            int64         `json:"balance"` // 结算后余额
	Timestamp          time.Time     `json:"timestamp"`
}

// CascadeSlotEngine 集群消除老虎机引擎，持有单个玩家的游戏状态。
// 所有对外方法都持锁串行执行，状态快照只通过深拷贝暴露。
type CascadeSlotEngine struct {
	mu       sync.Mutex
	config   *EngineConfig
	catalog  *Catalog
	rng      RandomGenerator
	sampler  *Sampler
	detector *WinDetector
	resolver *CascadeResolver
	orders   *OrderTracker
	bonus    *BonusController
	state    *GameState
	stats    *Statistics
	logger   *zap.Logger
}

// NewCascadeSlotEngine 创建引擎，使用加密随机数生成器
func NewCascadeSlotEngine(config *EngineConfig) (*CascadeSlotEngine, error) {
	return NewCascadeSlotEngineWithRNG(config, NewCryptoRandomGenerator())
}

// NewCascadeSlotEngineWithRNG 创建引擎并注入随机数生成器，测试与模拟使用
func NewCascadeSlotEngineWithRNG(config *EngineConfig, rng RandomGenerator) (*CascadeSlotEngine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	catalog := GetDefaultCatalog()
	sampler := NewSampler(catalog, rng)
	detector := NewWinDetector(config.MinClusterSize)

	engine := &CascadeSlotEngine{
		config:   config,
		catalog:  catalog,
		rng:      rng,
		sampler:  sampler,
		detector: detector,
		resolver: NewCascadeResolver(detector, sampler, config.MaxCascades),
		orders:   NewOrderTracker(catalog, rng, config),
		bonus:    NewBonusController(config),
		state: &GameState{
			Grid:       NewGrid(config.Rows, config.Cols),
			Balance:    config.InitialBalance,
			CurrentBet: config.DefaultBet,
			AnteMode:   AnteModeNone,
			Orders:     []Order{},
		},
		stats: &Statistics{
			CascadeDistribution: make(map[int]int),
			LastUpdate:          time.Now(),
		},
		logger: zap.NewNop(),
	}
	return engine, nil
}

// SetLogger 注入日志器
func (e *CascadeSlotEngine) SetLogger(logger *zap.Logger) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if logger != nil {
		e.logger = logger
	}
}

// Spin 执行一次完整旋转：扣款→订单→初始网格→消除循环→触发判定→
// 派彩→订单结算→免费旋转计数。
// 消除轮数超限时返回已结算轮次的结果和ErrCascadeOverflow。
func (e *CascadeSlotEngine) Spin() (*SpinResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// 重入时返回零值结果，不排队等待也不报错
	if e.state.IsSpinning {
		return &SpinResult{}, nil
	}

	bet := e.state.CurrentBet
	ante := e.bonus.AnteSetting(e.state.AnteMode)
	isFree := e.state.IsFreeSpins && e.state.FreeSpinsRemaining > 0

	// 先校验后扣款，余额不足时状态零变更
	var cost int64
	if !isFree {
		cost = e.bonus.SpinCost(bet, e.state.AnteMode)
		if e.state.Balance < cost {
			return nil, ErrInsufficientBalance
		}
	}

	e.state.IsSpinning = true
	defer func() { e.state.IsSpinning = false }()

	// 上一次旋转的赢分与消除历史在新旋转开始时清零
	e.state.TotalWin = 0
	e.state.CascadeSteps = nil

	e.state.Balance -= cost

	// 普通旋转每次重新生成订单，免费旋转订单跨旋转保留
	if !isFree {
		e.state.Orders = e.orders.GenerateSpinOrders(ante.OrderChance)
	}

	// 初始网格是唯一允许出现Scatter的生成时机
	grid := NewGrid(e.config.Rows, e.config.Cols)
	grid.Generate(e.sampler, true)
	initialGrid := grid.Clone()
	scatterCount := grid.ScatterCount()

	outcome, cascadeErr := e.resolver.Resolve(grid, bet)
	if cascadeErr != nil && !errors.Is(cascadeErr, ErrCascadeOverflow) {
		return nil, cascadeErr
	}

	result := &SpinResult{
		ID:           uuid.NewString(),
		Bet:          cost,
		CascadeWin:   outcome.TotalWin,
		Wins:         outcome.Wins,
		Cascades:     outcome.Cascades,
		InitialGrid:  initialGrid,
		FinalGrid:    grid.Clone(),
		ScatterCount: scatterCount,
		IsFreeSpin:   isFree,
		Timestamp:    time.Now(),
	}

	// 订单进度用本次所有轮次的消除数量累计
	var tips int64
	e.state.Orders, tips = e.orders.ApplyWins(e.state.Orders, outcome.Wins, bet)
	result.TipWin = tips

	// 触发判定只看消除开始前的初始网格，免费旋转期间不重复触发
	if !e.state.IsFreeSpins && e.bonus.ShouldTrigger(scatterCount, e.state.AnteMode) {
		e.state.IsFreeSpins = true
		e.state.FreeSpinsRemaining = e.config.FreeSpinsAwarded
		e.state.Orders = e.orders.GenerateFreeSpinOrders(nil)
		result.FreeSpinsTriggered = true
		result.FreeSpinsAwarded = e.config.FreeSpinsAwarded
		e.stats.FreeSpinTriggers++
		e.logger.Info("触发免费旋转",
			zap.Int("scatter_count", scatterCount),
			zap.String("ante_mode", string(e.state.AnteMode)),
			zap.Int("free_spins", e.config.FreeSpinsAwarded))
	}

	result.TotalWin = outcome.TotalWin + tips
	e.state.Balance += outcome.TotalWin + tips

	// 免费旋转倒数。触发当次不消耗次数，保证完整享受全部次数
	if isFree {
		e.state.FreeSpinsRemaining--
		if e.state.FreeSpinsRemaining <= 0 {
			if e.orders.AllCompleted(e.state.Orders) {
				bonus := e.orders.SuperBonus(bet)
				result.SuperBonusWin = bonus
				result.TotalWin += bonus
				e.state.Balance += bonus
				e.logger.Info("免费旋转终局大奖",
					zap.Int64("super_bonus", bonus),
					zap.Int("orders", len(e.state.Orders)))
			}
			e.state.IsFreeSpins = false
			e.state.FreeSpinsRemaining = 0
			e.state.Orders = []Order{}
			result.FreeSpinsEnded = true
		}
	}

	e.state.TotalWin = result.TotalWin
	e.state.CascadeSteps = copySteps(result.Cascades)
	e.state.Grid = grid

	result.FreeSpinsRemaining = e.state.FreeSpinsRemaining
	result.Orders = copyOrders(e.state.Orders)
	result.Balance = e.state.Balance

	// 普通模式下旋转结束未有新完成的订单时清空订单列表，
	// 未达成的进度不跨旋转保留。本次结果仍保留订单视图
	if !isFree && !result.FreeSpinsTriggered && !e.orders.AnyCompleted(e.state.Orders) {
		e.state.Orders = []Order{}
	}

	e.updateStatistics(cost, result.TotalWin, len(result.Cascades))

	e.logger.Debug("旋转结算完成",
		zap.String("spin_id", result.ID),
		zap.Int64("bet", cost),
		zap.Int64("total_win", result.TotalWin),
		zap.Int("cascades", len(result.Cascades)),
		zap.Bool("is_free_spin", isFree))

	if cascadeErr != nil {
		return result, cascadeErr
	}
	return result, nil
}

// SetBet 设置下注金额，超出上下限的值静默忽略
func (e *CascadeSlotEngine) SetBet(bet int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if bet < e.config.MinBet || bet > e.config.MaxBet {
		return
	}
	e.state.CurrentBet = bet
}

// SetAnteMode 设置底注档位
func (e *CascadeSlotEngine) SetAnteMode(mode AnteMode) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.config.AnteSettings[mode]; !ok {
		return ErrInvalidAnteMode
	}
	e.state.AnteMode = mode
	return nil
}

// BuyFreeSpins 购买免费旋转套餐。免费旋转进行中不允许购买，
// 余额不足时状态零变更。
func (e *CascadeSlotEngine) BuyFreeSpins(pt PackageType) (*GameState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.IsSpinning {
		return nil, ErrSpinInProgress
	}
	if e.state.IsFreeSpins {
		return nil, ErrAlreadyInFreeSpins
	}
	pkg, ok := e.bonus.Package(pt)
	if !ok {
		return nil, ErrUnknownPackage
	}

	cost := e.bonus.PackageCost(pkg, e.state.CurrentBet)
	if e.state.Balance < cost {
		return nil, ErrInsufficientBalance
	}

	e.state.Balance -= cost
	e.state.IsFreeSpins = true
	e.state.FreeSpinsRemaining = pkg.FreeSpins
	e.state.Orders = e.orders.GenerateFreeSpinOrders(pkg.OrderTips)

	e.logger.Info("购买免费旋转",
		zap.String("package", string(pt)),
		zap.Int64("cost", cost),
		zap.Int("free_spins", pkg.FreeSpins))

	return e.state.Copy(), nil
}

// GetState 返回游戏状态的独立深拷贝
func (e *CascadeSlotEngine) GetState() *GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Copy()
}

// GetConfig 返回引擎配置
func (e *CascadeSlotEngine) GetConfig() *EngineConfig {
	return e.config
}
