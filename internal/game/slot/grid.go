package slot

import (
	"github.com/google/uuid"
)

// Grid 行×列的符号网格。nil单元格表示消除→补充过渡期间的空位，
// 每个完整消除步骤结束后网格内不允许存在空位。
type Grid struct {
	Rows  int       `json:"rows"`  // 行数
	Cols  int       `json:"cols"`  // 列数
	Cells [][]*Cell `json:"cells"` // Cells[row][col]，nil表示空位
}

// NewGrid 创建空网格
func NewGrid(rows, cols int) *Grid {
	cells := make([][]*Cell, rows)
	for r := range cells {
		cells[r] = make([]*Cell, cols)
	}
	return &Grid{
		Rows:  rows,
		Cols:  cols,
		Cells: cells,
	}
}

// newCell 创建带新标识的单元格
func newCell(sym Symbol, row, col int) *Cell {
	return &Cell{
		ID:     uuid.NewString(),
		Symbol: sym,
		Row:    row,
		Col:    col,
	}
}

// Generate 填满整个网格。includeScatter为true时按含Scatter的全集抽样，
// 只有旋转的初始网格这样生成，免费旋转触发检测依赖它。
func (g *Grid) Generate(sampler *Sampler, includeScatter bool) {
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			g.Cells[r][c] = newCell(sampler.Sample(!includeScatter), r, c)
		}
	}
}

// Remove 将中奖单元格对应位置标记为空
func (g *Grid) Remove(cells []Cell) {
	for _, cell := range cells {
		if cell.Row >= 0 && cell.Row < g.Rows && cell.Col >= 0 && cell.Col < g.Cols {
			g.Cells[cell.Row][cell.Col] = nil
		}
	}
}

// Compact 每列独立下落：自底向上收集非空单元格，按原有顺序
// 从底行重新排布，剩余顶部位置留空。列之间不发生移动。
func (g *Grid) Compact() {
	for c := 0; c < g.Cols; c++ {
		survivors := make([]*Cell, 0, g.Rows)
		for r := g.Rows - 1; r >= 0; r-- {
			if g.Cells[r][c] != nil {
				survivors = append(survivors, g.Cells[r][c])
			}
		}

		for r := 0; r < g.Rows; r++ {
			g.Cells[r][c] = nil
		}

		for i, cell := range survivors {
			row := g.Rows - 1 - i
			cell.Row = row
			cell.Col = c
			g.Cells[row][c] = cell
		}
	}
}

// Refill 为所有空位补充新抽取的非Scatter符号
func (g *Grid) Refill(sampler *Sampler) {
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.Cells[r][c] == nil {
				g.Cells[r][c] = newCell(sampler.Sample(true), r, c)
			}
		}
	}
}

// Clone 返回完全独立的深拷贝（符号也是新副本，不共享引用）
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	n := NewGrid(g.Rows, g.Cols)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.Cells[r][c] != nil {
				cell := g.Cells[r][c].Copy()
				n.Cells[r][c] = &cell
			}
		}
	}
	return n
}

// ScatterCount 统计网格中Scatter符号数量
func (g *Grid) ScatterCount() int {
	count := 0
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.Cells[r][c] != nil && g.Cells[r][c].Symbol.IsScatter {
				count++
			}
		}
	}
	return count
}

// EmptyCount 统计空位数量
func (g *Grid) EmptyCount() int {
	count := 0
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.Cells[r][c] == nil {
				count++
			}
		}
	}
	return count
}

// At 返回指定位置的单元格，空位返回nil
func (g *Grid) At(row, col int) *Cell {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return nil
	}
	return g.Cells[row][col]
}

// SetCell 放置单元格并同步其行列索引，测试构造网格时使用
func (g *Grid) SetCell(row, col int, sym Symbol) {
	g.Cells[row][col] = newCell(sym, row, col)
}
