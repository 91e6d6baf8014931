package slot

// 符号ID定义
const (
	SymbolBurger  = "burger"  // 汉堡
	SymbolPizza   = "pizza"   // 披萨
	SymbolSushi   = "sushi"   // 寿司
	SymbolTaco    = "taco"    // 塔可
	SymbolHotdog  = "hotdog"  // 热狗
	SymbolFries   = "fries"   // 薯条
	SymbolDonut   = "donut"   // 甜甜圈
	SymbolSoda    = "soda"    // 汽水
	SymbolScatter = "bell"    // 餐铃Scatter
)

// Catalog 符号目录，加载后只读
type Catalog struct {
	symbols []Symbol
	index   map[string]int
}

// NewCatalog 创建符号目录
func NewCatalog(symbols []Symbol) *Catalog {
	c := &Catalog{
		symbols: make([]Symbol, len(symbols)),
		index:   make(map[string]int, len(symbols)),
	}
	for i, s := range symbols {
		c.symbols[i] = s.Copy()
		c.index[s.ID] = i
	}
	return c
}

// All 返回全部符号（副本）
func (c *Catalog) All() []Symbol {
	out := make([]Symbol, len(c.symbols))
	for i, s := range c.symbols {
		out[i] = s.Copy()
	}
	return out
}

// Foods 返回全部非Scatter符号（副本）
func (c *Catalog) Foods() []Symbol {
	out := make([]Symbol, 0, len(c.symbols))
	for _, s := range c.symbols {
		if !s.IsScatter {
			out = append(out, s.Copy())
		}
	}
	return out
}

// Get 根据ID查找符号，不存在时返回false
func (c *Catalog) Get(id string) (Symbol, bool) {
	i, ok := c.index[id]
	if !ok {
		return Symbol{}, false
	}
	return c.symbols[i].Copy(), true
}

// Len 符号总数
func (c *Catalog) Len() int {
	return len(c.symbols)
}

// GetDefaultCatalog 获取默认符号目录（美食主题）
func GetDefaultCatalog() *Catalog {
	return NewCatalog([]Symbol{
		{
			ID: SymbolBurger, Name: "汉堡", Weight: 6,
			Payouts: map[PayTier]float64{Tier8To9: 10, Tier10To11: 25, Tier12Plus: 50},
		},
		{
			ID: SymbolPizza, Name: "披萨", Weight: 8,
			Payouts: map[PayTier]float64{Tier8To9: 5, Tier10To11: 12, Tier12Plus: 25},
		},
		{
			ID: SymbolSushi, Name: "寿司", Weight: 10,
			Payouts: map[PayTier]float64{Tier8To9: 3, Tier10To11: 8, Tier12Plus: 15},
		},
		{
			ID: SymbolTaco, Name: "塔可", Weight: 12,
			Payouts: map[PayTier]float64{Tier8To9: 2, Tier10To11: 5, Tier12Plus: 10},
		},
		{
			ID: SymbolHotdog, Name: "热狗", Weight: 14,
			Payouts: map[PayTier]float64{Tier8To9: 1.5, Tier10To11: 4, Tier12Plus: 8},
		},
		{
			ID: SymbolFries, Name: "薯条", Weight: 16,
			Payouts: map[PayTier]float64{Tier8To9: 1, Tier10To11: 2.5, Tier12Plus: 5},
		},
		{
			ID: SymbolDonut, Name: "甜甜圈", Weight: 18,
			Payouts: map[PayTier]float64{Tier8To9: 0.8, Tier10To11: 2, Tier12Plus: 4},
		},
		{
			ID: SymbolSoda, Name: "汽水", Weight: 20,
			Payouts: map[PayTier]float64{Tier8To9: 0.5, Tier10To11: 1.5, Tier12Plus: 3},
		},
		{
			// Scatter不参与簇中奖，只用于触发免费旋转
			ID: SymbolScatter, Name: "餐铃", Weight: 2, IsScatter: true,
		},
	})
}
