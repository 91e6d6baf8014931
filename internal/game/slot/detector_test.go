package slot

import (
	"testing"
)

// fillGrid 用指定符号ID逐格填充网格（行优先），ids长度必须为30
func fillGrid(t *testing.T, grid *Grid, ids []string) {
	t.Helper()
	if len(ids) != grid.Rows*grid.Cols {
		t.Fatalf("布局长度 = %d, want %d", len(ids), grid.Rows*grid.Cols)
	}
	catalog := GetDefaultCatalog()
	i := 0
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			sym, ok := catalog.Get(ids[i])
			if !ok {
				t.Fatalf("未知符号: %s", ids[i])
			}
			grid.SetCell(r, c, sym)
			i++
		}
	}
}

// layoutWith 先放置cluster中的符号，剩余格子轮流使用其他食物符号
// 填充，保证填充符号每种不超过5个、不会意外成簇
func layoutWith(cluster []string) []string {
	used := make(map[string]bool)
	for _, id := range cluster {
		used[id] = true
	}
	fillers := make([]string, 0, 8)
	for _, id := range []string{SymbolSoda, SymbolDonut, SymbolFries, SymbolHotdog, SymbolTaco, SymbolSushi, SymbolPizza, SymbolBurger} {
		if !used[id] {
			fillers = append(fillers, id)
		}
	}

	out := make([]string, 0, 30)
	out = append(out, cluster...)
	for i := 0; len(out) < 30; i++ {
		out = append(out, fillers[i%len(fillers)])
	}
	return out
}

func repeat(id string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = id
	}
	return out
}

func TestWinDetector_DetectWins(t *testing.T) {
	bet := int64(1000)

	tests := []struct {
		name       string
		cluster    []string
		wantWins   int
		wantSymbol string
		wantCount  int
		wantPayout int64
	}{
		{
			name:       "8个汉堡达到最小簇",
			cluster:    repeat(SymbolBurger, 8),
			wantWins:   1,
			wantSymbol: SymbolBurger,
			wantCount:  8,
			wantPayout: 10000, // 10倍 × 1000分
		},
		{
			name:     "7个汉堡不足最小簇",
			cluster:  repeat(SymbolBurger, 7),
			wantWins: 0,
		},
		{
			name:       "10个披萨进入10-11档",
			cluster:    repeat(SymbolPizza, 10),
			wantWins:   1,
			wantSymbol: SymbolPizza,
			wantCount:  10,
			wantPayout: 12000, // 12倍
		},
		{
			name:       "12个寿司进入12+档",
			cluster:    repeat(SymbolSushi, 12),
			wantWins:   1,
			wantSymbol: SymbolSushi,
			wantCount:  12,
			wantPayout: 15000, // 15倍
		},
		{
			name:       "9个汉堡仍在8-9档",
			cluster:    repeat(SymbolBurger, 9),
			wantWins:   1,
			wantSymbol: SymbolBurger,
			wantCount:  9,
			wantPayout: 10000,
		},
	}

	detector := NewWinDetector(8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := NewGrid(5, 6)
			fillGrid(t, grid, layoutWith(tt.cluster))

			wins := detector.DetectWins(grid, bet)
			if len(wins) != tt.wantWins {
				t.Fatalf("DetectWins() 中奖簇数 = %d, want %d", len(wins), tt.wantWins)
			}
			if tt.wantWins == 0 {
				return
			}
			win := wins[0]
			if win.Symbol.ID != tt.wantSymbol {
				t.Errorf("中奖符号 = %s, want %s", win.Symbol.ID, tt.wantSymbol)
			}
			if win.Count != tt.wantCount {
				t.Errorf("簇大小 = %d, want %d", win.Count, tt.wantCount)
			}
			if win.Payout != tt.wantPayout {
				t.Errorf("赔付 = %d, want %d", win.Payout, tt.wantPayout)
			}
			if len(win.Cells) != tt.wantCount {
				t.Errorf("成员单元格数 = %d, want %d", len(win.Cells), tt.wantCount)
			}
		})
	}
}

func TestWinDetector_NonAdjacentCluster(t *testing.T) {
	// 集群按符号全盘计数，不要求相邻：8个汉堡分散在四角也中奖
	// 基底布局排除汉堡，首格的汉堡随后会被覆盖位置重写
	grid := NewGrid(5, 6)
	fillGrid(t, grid, layoutWith([]string{SymbolBurger}))

	catalog := GetDefaultCatalog()
	burger, _ := catalog.Get(SymbolBurger)
	positions := [][2]int{{0, 0}, {0, 5}, {4, 0}, {4, 5}, {2, 2}, {2, 3}, {1, 1}, {3, 4}}
	for _, p := range positions {
		grid.SetCell(p[0], p[1], burger)
	}

	wins := NewWinDetector(8).DetectWins(grid, 1000)

	var burgerWin *WinInfo
	for i := range wins {
		if wins[i].Symbol.ID == SymbolBurger {
			burgerWin = &wins[i]
		}
	}
	if burgerWin == nil {
		t.Fatal("分散的8个汉堡未被检出")
	}
	if burgerWin.Count != 8 {
		t.Errorf("簇大小 = %d, want 8", burgerWin.Count)
	}
}

func TestWinDetector_ScatterExcluded(t *testing.T) {
	// 8个Scatter不构成中奖簇
	grid := NewGrid(5, 6)
	fillGrid(t, grid, layoutWith(repeat(SymbolScatter, 8)))

	wins := NewWinDetector(8).DetectWins(grid, 1000)
	for _, win := range wins {
		if win.Symbol.IsScatter {
			t.Error("Scatter被计入中奖簇")
		}
	}
	if len(wins) != 0 {
		t.Errorf("中奖簇数 = %d, want 0", len(wins))
	}
}

func TestWinDetector_MultipleClusters(t *testing.T) {
	// 两种符号同时各自成簇，结果按首次出现顺序排列
	grid := NewGrid(5, 6)
	fillGrid(t, grid, append(repeat(SymbolBurger, 10), repeat(SymbolPizza, 20)...))

	wins := NewWinDetector(8).DetectWins(grid, 1000)
	if len(wins) != 2 {
		t.Fatalf("中奖簇数 = %d, want 2", len(wins))
	}
	if wins[0].Symbol.ID != SymbolBurger || wins[1].Symbol.ID != SymbolPizza {
		t.Errorf("中奖簇顺序错误: %s, %s", wins[0].Symbol.ID, wins[1].Symbol.ID)
	}
	if wins[1].Count != 20 {
		t.Errorf("披萨簇大小 = %d, want 20", wins[1].Count)
	}
	// 20个进入12+档
	if wins[1].Payout != 25000 {
		t.Errorf("披萨赔付 = %d, want 25000", wins[1].Payout)
	}
}

func TestWinDetector_IgnoresEmptyCells(t *testing.T) {
	grid := NewGrid(5, 6)
	fillGrid(t, grid, repeat(SymbolBurger, 30))
	for c := 0; c < 6; c++ {
		grid.Cells[0][c] = nil
	}

	wins := NewWinDetector(8).DetectWins(grid, 1000)
	if len(wins) != 1 {
		t.Fatalf("中奖簇数 = %d, want 1", len(wins))
	}
	if wins[0].Count != 24 {
		t.Errorf("簇大小 = %d, want 24", wins[0].Count)
	}
}
