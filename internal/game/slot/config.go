package slot

import (
	"errors"
	"fmt"
)

// AnteSetting 底注档位参数
type AnteSetting struct {
	BetMultiplier    float64 `json:"bet_multiplier"`    // 实际扣款 = bet × 该倍率
	OrderChance      float64 `json:"order_chance"`      // 普通旋转生成订单的概率
	ThresholdDivisor float64 `json:"threshold_divisor"` // Scatter触发阈值除数
}

// BuyPackage 免费旋转购买套餐
type BuyPackage struct {
	CostMultiplier float64   `json:"cost_multiplier"` // 花费 = bet × 该倍率
	FreeSpins      int       `json:"free_spins"`      // 赠送的免费旋转次数
	OrderTips      []float64 `json:"order_tips"`      // 每档倍率对应一张订单
}

// EngineConfig 引擎参数，启动时加载后只读
type EngineConfig struct {
	Rows           int `json:"rows"`
	Cols           int `json:"cols"`
	MinClusterSize int `json:"min_cluster_size"`
	MaxCascades    int `json:"max_cascades"`

	MinBet         int64 `json:"min_bet"`     // 分
	MaxBet         int64 `json:"max_bet"`     // 分
	DefaultBet     int64 `json:"default_bet"` // 分
	InitialBalance int64 `json:"initial_balance"`

	ScatterThreshold int `json:"scatter_threshold"` // 基础档触发免费旋转所需Scatter数
	FreeSpinsAwarded int `json:"free_spins_awarded"`

	AnteSettings map[AnteMode]AnteSetting   `json:"ante_settings"`
	BuyPackages  map[PackageType]BuyPackage `json:"buy_packages"`

	OrderQuantityMin     int       `json:"order_quantity_min"`
	OrderQuantityMax     int       `json:"order_quantity_max"`
	TipMultipliers       []float64 `json:"tip_multipliers"`
	FreeSpinOrderMin     int       `json:"free_spin_order_min"`
	FreeSpinOrderMax     int       `json:"free_spin_order_max"`
	SuperBonusMultiplier float64   `json:"super_bonus_multiplier"`
}

// GetDefaultEngineConfig 返回默认引擎配置
func GetDefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		Rows:           5,
		Cols:           6,
		MinClusterSize: 8,
		MaxCascades:    20,

		MinBet:         100,
		MaxBet:         10000,
		DefaultBet:     1000,
		InitialBalance: 100000,

		ScatterThreshold: 3,
		FreeSpinsAwarded: 10,

		AnteSettings: map[AnteMode]AnteSetting{
			AnteModeNone: {BetMultiplier: 1.0, OrderChance: 0.3, ThresholdDivisor: 1.0},
			AnteModeLow:  {BetMultiplier: 1.5, OrderChance: 0.6, ThresholdDivisor: 1.5},
			AnteModeHigh: {BetMultiplier: 3.0, OrderChance: 1.0, ThresholdDivisor: 3.0},
		},
		BuyPackages: map[PackageType]BuyPackage{
			PackageCheap:    {CostMultiplier: 50, FreeSpins: 8, OrderTips: []float64{3, 5}},
			PackageStandard: {CostMultiplier: 100, FreeSpins: 10, OrderTips: []float64{5, 8, 10}},
		},

		OrderQuantityMin:     8,
		OrderQuantityMax:     15,
		TipMultipliers:       []float64{3, 5, 8, 10},
		FreeSpinOrderMin:     2,
		FreeSpinOrderMax:     4,
		SuperBonusMultiplier: 20,
	}
}

// Validate 校验配置合法性
func (c *EngineConfig) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return errors.New("网格行列数必须为正")
	}
	if c.MinClusterSize <= 0 {
		return errors.New("最小集群数必须为正")
	}
	if c.MinClusterSize > c.Rows*c.Cols {
		return fmt.Errorf("最小集群数%d超过网格容量%d", c.MinClusterSize, c.Rows*c.Cols)
	}
	if c.MaxCascades <= 0 {
		return errors.New("最大消除轮数必须为正")
	}
	if c.MinBet <= 0 || c.MaxBet < c.MinBet {
		return errors.New("下注上下限配置非法")
	}
	if c.DefaultBet < c.MinBet || c.DefaultBet > c.MaxBet {
		return errors.New("默认下注额不在上下限之间")
	}
	if c.ScatterThreshold <= 0 {
		return errors.New("Scatter触发阈值必须为正")
	}
	if c.FreeSpinsAwarded <= 0 {
		return errors.New("免费旋转次数必须为正")
	}
	for _, mode := range []AnteMode{AnteModeNone, AnteModeLow, AnteModeHigh} {
		s, ok := c.AnteSettings[mode]
		if !ok {
			return fmt.Errorf("缺少底注档位配置: %s", mode)
		}
		if s.BetMultiplier <= 0 || s.ThresholdDivisor <= 0 {
			return fmt.Errorf("底注档位%s参数非法", mode)
		}
		if s.OrderChance < 0 || s.OrderChance > 1 {
			return fmt.Errorf("底注档位%s订单概率超出[0,1]", mode)
		}
	}
	for _, pt := range []PackageType{PackageCheap, PackageStandard} {
		p, ok := c.BuyPackages[pt]
		if !ok {
			return fmt.Errorf("缺少购买套餐配置: %s", pt)
		}
		if p.CostMultiplier <= 0 || p.FreeSpins <= 0 || len(p.OrderTips) == 0 {
			return fmt.Errorf("购买套餐%s参数非法", pt)
		}
	}
	if c.OrderQuantityMin <= 0 || c.OrderQuantityMax < c.OrderQuantityMin {
		return errors.New("订单数量范围配置非法")
	}
	if len(c.TipMultipliers) == 0 {
		return errors.New("小费倍率集合不能为空")
	}
	if c.FreeSpinOrderMin <= 0 || c.FreeSpinOrderMax < c.FreeSpinOrderMin {
		return errors.New("免费旋转订单数量范围配置非法")
	}
	if c.SuperBonusMultiplier <= 0 {
		return errors.New("终局大奖倍率必须为正")
	}
	return nil
}
