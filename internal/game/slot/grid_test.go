package slot

import (
	"testing"
)

func testSampler(seed int64) *Sampler {
	return NewSampler(GetDefaultCatalog(), NewSeededRandomGenerator(seed))
}

func TestGrid_Generate(t *testing.T) {
	grid := NewGrid(5, 6)
	grid.Generate(testSampler(1), true)

	if grid.EmptyCount() != 0 {
		t.Errorf("生成后仍有%d个空位", grid.EmptyCount())
	}

	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			cell := grid.Cells[r][c]
			if cell.ID == "" {
				t.Errorf("单元格(%d,%d)缺少标识", r, c)
			}
			if cell.Row != r || cell.Col != c {
				t.Errorf("单元格(%d,%d)行列索引错误: (%d,%d)", r, c, cell.Row, cell.Col)
			}
		}
	}
}

func TestGrid_Generate_ExcludeScatter(t *testing.T) {
	// 排除Scatter的生成在任何种子下都不应出现Scatter
	for seed := int64(0); seed < 20; seed++ {
		grid := NewGrid(5, 6)
		grid.Generate(testSampler(seed), false)
		if n := grid.ScatterCount(); n != 0 {
			t.Errorf("seed=%d: 排除Scatter生成出现%d个Scatter", seed, n)
		}
	}
}

func TestGrid_Remove(t *testing.T) {
	grid := NewGrid(5, 6)
	grid.Generate(testSampler(2), true)

	targets := []Cell{
		{Row: 0, Col: 0},
		{Row: 4, Col: 5},
		{Row: 2, Col: 3},
	}
	grid.Remove(targets)

	if grid.EmptyCount() != 3 {
		t.Errorf("消除后空位数 = %d, want 3", grid.EmptyCount())
	}
	for _, tgt := range targets {
		if grid.At(tgt.Row, tgt.Col) != nil {
			t.Errorf("位置(%d,%d)未被消除", tgt.Row, tgt.Col)
		}
	}
}

func TestGrid_Compact(t *testing.T) {
	// 第0列自顶向下: A B C D E，消除中间的C后应保持A B D E顺序落底
	grid := NewGrid(5, 6)
	grid.Generate(testSampler(3), false)

	catalog := GetDefaultCatalog()
	burger, _ := catalog.Get(SymbolBurger)
	pizza, _ := catalog.Get(SymbolPizza)
	sushi, _ := catalog.Get(SymbolSushi)
	taco, _ := catalog.Get(SymbolTaco)
	hotdog, _ := catalog.Get(SymbolHotdog)

	col0 := []Symbol{burger, pizza, sushi, taco, hotdog}
	for r, sym := range col0 {
		grid.SetCell(r, 0, sym)
	}
	survivorIDs := []string{
		grid.At(0, 0).ID,
		grid.At(1, 0).ID,
		grid.At(3, 0).ID,
		grid.At(4, 0).ID,
	}

	grid.Remove([]Cell{{Row: 2, Col: 0}})
	grid.Compact()

	// 空位只能出现在列顶
	if grid.At(0, 0) != nil {
		t.Error("下落后顶部应为空位")
	}
	got := []string{
		grid.At(1, 0).ID,
		grid.At(2, 0).ID,
		grid.At(3, 0).ID,
		grid.At(4, 0).ID,
	}
	for i, id := range survivorIDs {
		if got[i] != id {
			t.Errorf("下落后第%d个存活单元格错位: got %s, want %s", i, got[i], id)
		}
	}

	// 存活单元格的行列索引与实际位置同步
	for r := 1; r < 5; r++ {
		cell := grid.At(r, 0)
		if cell.Row != r || cell.Col != 0 {
			t.Errorf("单元格索引未同步: 实际(%d,0) 记录(%d,%d)", r, cell.Row, cell.Col)
		}
	}
}

func TestGrid_Compact_ColumnsIndependent(t *testing.T) {
	grid := NewGrid(5, 6)
	grid.Generate(testSampler(4), false)

	col3Before := make([]string, 5)
	for r := 0; r < 5; r++ {
		col3Before[r] = grid.At(r, 3).ID
	}

	// 只消除第0列，第3列应完全不动
	grid.Remove([]Cell{{Row: 1, Col: 0}, {Row: 2, Col: 0}})
	grid.Compact()

	for r := 0; r < 5; r++ {
		if grid.At(r, 3).ID != col3Before[r] {
			t.Errorf("未消除的列发生移动: 行%d", r)
		}
	}
}

func TestGrid_Refill(t *testing.T) {
	grid := NewGrid(5, 6)
	grid.Generate(testSampler(5), false)
	before := grid.ScatterCount()

	grid.Remove([]Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}})
	grid.Compact()
	grid.Refill(testSampler(6))

	if grid.EmptyCount() != 0 {
		t.Errorf("补充后仍有%d个空位", grid.EmptyCount())
	}
	// 补充永远不产生Scatter
	if grid.ScatterCount() != before {
		t.Errorf("补充引入了Scatter: before=%d after=%d", before, grid.ScatterCount())
	}
}

func TestGrid_Clone(t *testing.T) {
	grid := NewGrid(5, 6)
	grid.Generate(testSampler(7), true)

	clone := grid.Clone()

	// 单元格身份保留
	for r := 0; r < 5; r++ {
		for c := 0; c < 6; c++ {
			if clone.At(r, c).ID != grid.At(r, c).ID {
				t.Fatalf("克隆未保留单元格身份(%d,%d)", r, c)
			}
		}
	}

	// 修改克隆不影响原网格
	origID := grid.At(0, 0).ID
	clone.Cells[0][0] = nil
	clone.At(1, 1).Symbol.Payouts[Tier8To9] = 999

	if grid.At(0, 0) == nil || grid.At(0, 0).ID != origID {
		t.Error("修改克隆影响了原网格单元格")
	}
	if grid.At(1, 1).Symbol.Payouts[Tier8To9] == 999 {
		t.Error("克隆与原网格共享赔率表")
	}
}

func TestGrid_ScatterCount(t *testing.T) {
	grid := NewGrid(5, 6)
	grid.Generate(testSampler(8), false)

	catalog := GetDefaultCatalog()
	scatter, _ := catalog.Get(SymbolScatter)
	grid.SetCell(0, 0, scatter)
	grid.SetCell(2, 3, scatter)
	grid.SetCell(4, 5, scatter)

	if n := grid.ScatterCount(); n != 3 {
		t.Errorf("ScatterCount() = %d, want 3", n)
	}
}
