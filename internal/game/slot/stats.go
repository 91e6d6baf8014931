package slot

import (
	"errors"
	"time"
)

// Statistics 引擎运行统计
type Statistics struct {
	TotalSpins          int         `json:"total_spins"`
	TotalBet            int64       `json:"total_bet"`
	TotalWin            int64       `json:"total_win"`
	CurrentRTP          float64     `json:"current_rtp"`
	FreeSpinTriggers    int         `json:"free_spin_triggers"`
	CascadeDistribution map[int]int `json:"cascade_distribution"` // 消除轮数 → 旋转次数
	MaxCascades         int         `json:"max_cascades"`         // 单次旋转最多消除轮数
	BigWins             int         `json:"big_wins"`             // 赢取超过20倍下注
	LastUpdate          time.Time   `json:"last_update"`
}

// updateStatistics 每次旋转后更新统计，调用方持锁
func (e *CascadeSlotEngine) updateStatistics(bet, win int64, cascades int) {
	e.stats.TotalSpins++
	e.stats.TotalBet += bet
	e.stats.TotalWin += win
	e.stats.CascadeDistribution[cascades]++
	if cascades > e.stats.MaxCascades {
		e.stats.MaxCascades = cascades
	}
	if bet > 0 && win > bet*20 {
		e.stats.BigWins++
	}
	if e.stats.TotalBet > 0 {
		e.stats.CurrentRTP = float64(e.stats.TotalWin) / float64(e.stats.TotalBet)
	}
	e.stats.LastUpdate = time.Now()
}

// GetStatistics 返回统计数据的独立副本
func (e *CascadeSlotEngine) GetStatistics() Statistics {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats := *e.stats
	stats.CascadeDistribution = make(map[int]int, len(e.stats.CascadeDistribution))
	for k, v := range e.stats.CascadeDistribution {
		stats.CascadeDistribution[k] = v
	}
	return stats
}

// SimulationResult 批量模拟结果
type SimulationResult struct {
	TotalSpins       int     `json:"total_spins"`
	TotalBet         int64   `json:"total_bet"`
	TotalWin         int64   `json:"total_win"`
	RTP              float64 `json:"rtp"`
	FreeSpinTriggers int     `json:"free_spin_triggers"`
	BigWins          int     `json:"big_wins"`
	MaxCascades      int     `json:"max_cascades"`
}

// SimulateBatch 批量模拟旋转，用于离线验证RTP与消除分布。
// 余额不足时自动补充，消除轮数超限的旋转照常计入。
func (e *CascadeSlotEngine) SimulateBatch(spins int) *SimulationResult {
	sim := &SimulationResult{TotalSpins: spins}

	for i := 0; i < spins; i++ {
		// 模拟关注长期统计，余额不构成约束
		e.mu.Lock()
		if e.state.Balance < e.config.MaxBet*10 {
			e.state.Balance += e.config.InitialBalance
		}
		e.mu.Unlock()

		result, err := e.Spin()
		if err != nil && !errors.Is(err, ErrCascadeOverflow) {
			continue
		}

		sim.TotalBet += result.Bet
		sim.TotalWin += result.TotalWin
		if result.FreeSpinsTriggered {
			sim.FreeSpinTriggers++
		}
		if result.Bet > 0 && result.TotalWin > result.Bet*20 {
			sim.BigWins++
		}
		if len(result.Cascades) > sim.MaxCascades {
			sim.MaxCascades = len(result.Cascades)
		}
	}

	if sim.TotalBet > 0 {
		sim.RTP = float64(sim.TotalWin) / float64(sim.TotalBet)
	}
	return sim
}
