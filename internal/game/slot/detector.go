package slot

// WinDetector 消除中奖检测器。同种食物符号在全盘累计数量达到
// 最小集群数即中奖，不要求相邻。Scatter不参与集群统计。
type WinDetector struct {
	minClusterSize int
}

// NewWinDetector 创建检测器
func NewWinDetector(minClusterSize int) *WinDetector {
	return &WinDetector{minClusterSize: minClusterSize}
}

// DetectWins 扫描网格返回全部中奖集群。结果按符号在网格中
// 首次出现（行优先扫描）的顺序排列，保证同一网格结果稳定。
// payout = 档位倍率 × bet
func (d *WinDetector) DetectWins(grid *Grid, bet int64) []WinInfo {
	groups := make(map[string][]Cell)
	order := make([]string, 0)

	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			cell := grid.Cells[r][c]
			if cell == nil || cell.Symbol.IsScatter {
				continue
			}
			id := cell.Symbol.ID
			if _, ok := groups[id]; !ok {
				order = append(order, id)
			}
			groups[id] = append(groups[id], cell.Copy())
		}
	}

	wins := make([]WinInfo, 0)
	for _, id := range order {
		cells := groups[id]
		if len(cells) < d.minClusterSize {
			continue
		}
		sym := cells[0].Symbol
		multiplier := sym.PayoutMultiplier(len(cells))
		wins = append(wins, WinInfo{
			Symbol: sym.Copy(),
			Cells:  cells,
			Count:  len(cells),
			Payout: int64(multiplier * float64(bet)),
		})
	}
	return wins
}
