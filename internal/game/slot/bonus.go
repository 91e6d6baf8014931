package slot

import "math"

// BonusController 奖励系统：底注档位参数、免费旋转触发判定与购买套餐
type BonusController struct {
	cfg *EngineConfig
}

// NewBonusController 创建奖励系统
func NewBonusController(cfg *EngineConfig) *BonusController {
	return &BonusController{cfg: cfg}
}

// AnteSetting 返回指定底注档位参数，未知档位回落到基础档
func (bc *BonusController) AnteSetting(mode AnteMode) AnteSetting {
	if s, ok := bc.cfg.AnteSettings[mode]; ok {
		return s
	}
	return bc.cfg.AnteSettings[AnteModeNone]
}

// SpinCost 单次普通旋转的实际扣款
func (bc *BonusController) SpinCost(bet int64, mode AnteMode) int64 {
	return int64(bc.AnteSetting(mode).BetMultiplier * float64(bet))
}

// EffectiveThreshold 底注档位调整后的Scatter触发阈值，下限为1
func (bc *BonusController) EffectiveThreshold(mode AnteMode) int {
	threshold := int(math.Floor(float64(bc.cfg.ScatterThreshold) / bc.AnteSetting(mode).ThresholdDivisor))
	if threshold < 1 {
		threshold = 1
	}
	return threshold
}

// ShouldTrigger 判定初始网格的Scatter数量是否触发免费旋转。
// 只看消除开始前的初始网格，消除补充出的Scatter不参与触发。
func (bc *BonusController) ShouldTrigger(initialScatterCount int, mode AnteMode) bool {
	return initialScatterCount >= bc.EffectiveThreshold(mode)
}

// Package 返回购买套餐定义
func (bc *BonusController) Package(pt PackageType) (BuyPackage, bool) {
	p, ok := bc.cfg.BuyPackages[pt]
	return p, ok
}

// PackageCost 购买套餐的花费
func (bc *BonusController) PackageCost(p BuyPackage, bet int64) int64 {
	return int64(p.CostMultiplier * float64(bet))
}
