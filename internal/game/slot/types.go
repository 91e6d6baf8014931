package slot

// PayTier 赔付档位（按簇大小分桶）
type PayTier string

const (
	Tier8To9   PayTier = "8-9"   // 8-9个
	Tier10To11 PayTier = "10-11" // 10-11个
	Tier12Plus PayTier = "12+"   // 12个及以上
)

// TierForCount 根据簇大小返回赔付档位，不足最小中奖数量返回空
func TierForCount(count int) PayTier {
	switch {
	case count >= 12:
		return Tier12Plus
	case count >= 10:
		return Tier10To11
	case count >= 8:
		return Tier8To9
	default:
		return ""
	}
}

// Symbol 符号定义
type Symbol struct {
	ID        string              `json:"id"`         // 符号唯一标识
	Name      string              `json:"name"`       // 显示名称
	Weight    float64             `json:"weight"`     // 抽样权重
	Payouts   map[PayTier]float64 `json:"payouts"`    // 分档赔率表（缺失档位视为0）
	IsScatter bool                `json:"is_scatter"` // 是否为Scatter符号
}

// Copy 返回符号的独立副本（赔率表深拷贝）
func (s Symbol) Copy() Symbol {
	c := s
	if s.Payouts != nil {
		c.Payouts = make(map[PayTier]float64, len(s.Payouts))
		for tier, mult := range s.Payouts {
			c.Payouts[tier] = mult
		}
	}
	return c
}

// PayoutMultiplier 根据簇大小查赔率，缺失档位返回0
func (s Symbol) PayoutMultiplier(count int) float64 {
	tier := TierForCount(count)
	if tier == "" || s.Payouts == nil {
		return 0
	}
	return s.Payouts[tier]
}

// Cell 网格单元格
type Cell struct {
	ID     string `json:"id"`     // 单元格标识（掉落/补充过程中保持身份）
	Symbol Symbol `json:"symbol"` // 持有的符号（独立副本）
	Row    int    `json:"row"`    // 行索引 (0-based)
	Col    int    `json:"col"`    // 列索引 (0-based)
}

// Copy 返回单元格的独立副本
func (c Cell) Copy() Cell {
	n := c
	n.Symbol = c.Symbol.Copy()
	return n
}

// WinInfo 单个中奖簇
type WinInfo struct {
	Symbol Symbol `json:"symbol"` // 中奖符号
	Cells  []Cell `json:"cells"`  // 成员单元格（副本，与后续网格变化解耦）
	Count  int    `json:"count"`  // 簇大小
	Payout int64  `json:"payout"` // 赔付金额（分）
}

// CascadeStep 单次消除步骤：查找→消除→下落→补充
type CascadeStep struct {
	StepNumber      int       `json:"step_number"`       // 步骤编号（从1开始）
	Wins            []WinInfo `json:"wins"`              // 本步中奖簇
	StepWin         int64     `json:"step_win"`          // 本步赢取（分）
	GridBefore      *Grid     `json:"grid_before"`       // 消除前快照
	GridAfterRemove *Grid     `json:"grid_after_remove"` // 消除后快照（有空位）
	GridAfterDrop   *Grid     `json:"grid_after_drop"`   // 下落后快照
	GridAfterRefill *Grid     `json:"grid_after_refill"` // 补充后快照
}

// Copy 返回步骤的独立副本
func (s CascadeStep) Copy() CascadeStep {
	n := s
	n.Wins = copyWins(s.Wins)
	n.GridBefore = s.GridBefore.Clone()
	n.GridAfterRemove = s.GridAfterRemove.Clone()
	n.GridAfterDrop = s.GridAfterDrop.Clone()
	n.GridAfterRefill = s.GridAfterRefill.Clone()
	return n
}

func copyWins(wins []WinInfo) []WinInfo {
	if wins == nil {
		return nil
	}
	out := make([]WinInfo, len(wins))
	for i, w := range wins {
		out[i] = w
		out[i].Symbol = w.Symbol.Copy()
		out[i].Cells = make([]Cell, len(w.Cells))
		for j, c := range w.Cells {
			out[i].Cells[j] = c.Copy()
		}
	}
	return out
}

// Order 收集订单（小费目标）
type Order struct {
	ID            string  `json:"id"`             // 订单标识
	SymbolID      string  `json:"symbol_id"`      // 目标符号
	SymbolName    string  `json:"symbol_name"`    // 目标符号名称
	Quantity      int     `json:"quantity"`       // 需要收集数量
	Collected     int     `json:"collected"`      // 已收集数量（不超过Quantity）
	TipMultiplier float64 `json:"tip_multiplier"` // 小费倍率（创建时固定）
	Completed     bool    `json:"completed"`      // 是否已完成（单向）
}

// AnteMode 加注模式
type AnteMode string

const (
	AnteModeNone AnteMode = "none" // 不加注
	AnteModeLow  AnteMode = "low"  // 低加注
	AnteModeHigh AnteMode = "high" // 高加注（订单必出）
)

// PackageType 购买免费旋转的套餐类型
type PackageType string

const (
	PackageCheap    PackageType = "cheap"    // 低价套餐
	PackageStandard PackageType = "standard" // 标准套餐
)

// GameState 对外可见的游戏状态快照
type GameState struct {
	Grid               *Grid         `json:"grid"`                 // 当前网格
	Balance            int64         `json:"balance"`              // 余额（分）
	CurrentBet         int64         `json:"current_bet"`          // 当前下注（分）
	TotalWin           int64         `json:"total_win"`            // 最近一次旋转赢取（分）
	IsSpinning         bool          `json:"is_spinning"`          // 是否正在旋转（重入保护）
	IsFreeSpins        bool          `json:"is_free_spins"`        // 是否处于免费旋转
	FreeSpinsRemaining int           `json:"free_spins_remaining"` // 剩余免费旋转次数
	Orders             []Order       `json:"orders"`               // 当前订单列表
	AnteMode           AnteMode      `json:"ante_mode"`            // 当前加注模式
	CascadeSteps       []CascadeStep `json:"cascade_steps"`        // 最近一次旋转的消除历史
}

// Copy 返回状态的完全独立副本，与引擎内部状态无共享
func (g *GameState) Copy() *GameState {
	n := &GameState{
		Balance:            g.Balance,
		CurrentBet:         g.CurrentBet,
		TotalWin:           g.TotalWin,
		IsSpinning:         g.IsSpinning,
		IsFreeSpins:        g.IsFreeSpins,
		FreeSpinsRemaining: g.FreeSpinsRemaining,
		AnteMode:           g.AnteMode,
	}
	if g.Grid != nil {
		n.Grid = g.Grid.Clone()
	}
	if g.Orders != nil {
		n.Orders = make([]Order, len(g.Orders))
		copy(n.Orders, g.Orders)
	}
	if g.CascadeSteps != nil {
		n.CascadeSteps = make([]CascadeStep, len(g.CascadeSteps))
		for i, step := range g.CascadeSteps {
			n.CascadeSteps[i] = step.Copy()
		}
	}
	return n
}

// SpinOutcome 消除循环的汇总结果
type SpinOutcome struct {
	Wins     []WinInfo     `json:"wins"`      // 所有轮次的中奖簇
	Cascades []CascadeStep `json:"cascades"`  // 逐轮快照
	TotalWin int64         `json:"total_win"` // 消除赢分合计（分）
}

func copyOrders(orders []Order) []Order {
	if orders == nil {
		return nil
	}
	out := make([]Order, len(orders))
	copy(out, orders)
	return out
}

func copySteps(steps []CascadeStep) []CascadeStep {
	if steps == nil {
		return nil
	}
	out := make([]CascadeStep, len(steps))
	for i, s := range steps {
		out[i] = s.Copy()
	}
	return out
}
