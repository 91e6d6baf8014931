package slot

import (
	"errors"
	"fmt"
)

// ErrCascadeOverflow 单次旋转消除轮数超过上限
var ErrCascadeOverflow = errors.New("消除轮数超过上限")

// CascadeResolver 消除循环执行器：检测→赔付→移除→下落→补充，
// 循环到不再产生新中奖为止。每轮保留四份网格快照供前端逐帧回放。
type CascadeResolver struct {
	detector    *WinDetector
	sampler     *Sampler
	maxCascades int
}

// NewCascadeResolver 创建消除执行器
func NewCascadeResolver(detector *WinDetector, sampler *Sampler, maxCascades int) *CascadeResolver {
	return &CascadeResolver{
		detector:    detector,
		sampler:     sampler,
		maxCascades: maxCascades,
	}
}

// Resolve 在给定网格上执行完整消除循环，直接修改grid。
// 返回所有轮次的中奖、逐轮快照与累计赢分。
// 超过maxCascades轮仍有中奖时返回ErrCascadeOverflow，
// 已结算的轮次结果仍然有效。
func (cr *CascadeResolver) Resolve(grid *Grid, bet int64) (*SpinOutcome, error) {
	outcome := &SpinOutcome{
		Wins:     make([]WinInfo, 0),
		Cascades: make([]CascadeStep, 0),
	}

	for step := 1; ; step++ {
		if step > cr.maxCascades {
			return outcome, fmt.Errorf("%w: 已达%d轮", ErrCascadeOverflow, cr.maxCascades)
		}

		wins := cr.detector.DetectWins(grid, bet)
		if len(wins) == 0 {
			break
		}

		cs := CascadeStep{
			StepNumber: step,
			Wins:       copyWins(wins),
			GridBefore: grid.Clone(),
		}

		var stepWin int64
		removed := make([]Cell, 0)
		for _, win := range wins {
			stepWin += win.Payout
			removed = append(removed, win.Cells...)
		}
		cs.StepWin = stepWin

		grid.Remove(removed)
		cs.GridAfterRemove = grid.Clone()

		grid.Compact()
		cs.GridAfterDrop = grid.Clone()

		grid.Refill(cr.sampler)
		cs.GridAfterRefill = grid.Clone()

		outcome.Wins = append(outcome.Wins, copyWins(wins)...)
		outcome.Cascades = append(outcome.Cascades, cs)
		outcome.TotalWin += stepWin
	}

	return outcome, nil
}
