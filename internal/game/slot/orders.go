package slot

import (
	"github.com/google/uuid"
)

// OrderTracker 订单系统：每次旋转按概率生成收集订单，
// 消除的符号计入订单进度，完成订单发放小费奖励。
type OrderTracker struct {
	catalog *Catalog
	rng     RandomGenerator

	quantityMin    int
	quantityMax    int
	tipMultipliers []float64

	freeSpinOrderMin int
	freeSpinOrderMax int

	superBonusMultiplier float64
}

// NewOrderTracker 创建订单系统
func NewOrderTracker(catalog *Catalog, rng RandomGenerator, cfg *EngineConfig) *OrderTracker {
	return &OrderTracker{
		catalog:              catalog,
		rng:                  rng,
		quantityMin:          cfg.OrderQuantityMin,
		quantityMax:          cfg.OrderQuantityMax,
		tipMultipliers:       cfg.TipMultipliers,
		freeSpinOrderMin:     cfg.FreeSpinOrderMin,
		freeSpinOrderMax:     cfg.FreeSpinOrderMax,
		superBonusMultiplier: cfg.SuperBonusMultiplier,
	}
}

// newOrder 生成一张指定小费倍率的随机订单
func (ot *OrderTracker) newOrder(tipMultiplier float64) Order {
	foods := ot.catalog.Foods()
	sym := foods[ot.rng.NextInt(0, len(foods))]
	return Order{
		ID:            uuid.NewString(),
		SymbolID:      sym.ID,
		SymbolName:    sym.Name,
		Quantity:      ot.rng.NextInt(ot.quantityMin, ot.quantityMax+1),
		Collected:     0,
		TipMultiplier: tipMultiplier,
		Completed:     false,
	}
}

// randomTip 从小费倍率集合中随机取一档
func (ot *OrderTracker) randomTip() float64 {
	return ot.tipMultipliers[ot.rng.NextInt(0, len(ot.tipMultipliers))]
}

// GenerateSpinOrders 普通旋转开始时按概率生成订单，
// 未命中概率时返回空切片。chance由底注档位决定，高底注必出订单。
func (ot *OrderTracker) GenerateSpinOrders(chance float64) []Order {
	if ot.rng.Next() >= chance {
		return []Order{}
	}
	return []Order{ot.newOrder(ot.randomTip())}
}

// GenerateFreeSpinOrders 免费旋转开始时生成整批订单，
// tips非空时每档倍率对应一张订单（购买套餐），否则随机数量随机倍率（自然触发）。
func (ot *OrderTracker) GenerateFreeSpinOrders(tips []float64) []Order {
	if len(tips) > 0 {
		orders := make([]Order, 0, len(tips))
		for _, tip := range tips {
			orders = append(orders, ot.newOrder(tip))
		}
		return orders
	}
	count := ot.rng.NextInt(ot.freeSpinOrderMin, ot.freeSpinOrderMax+1)
	orders := make([]Order, 0, count)
	for i := 0; i < count; i++ {
		orders = append(orders, ot.newOrder(ot.randomTip()))
	}
	return orders
}

// ApplyWins 把本次旋转消除的符号数量计入订单进度。
// 进度只增不减且封顶于Quantity，完成状态单向不可逆。
// 返回本次新完成订单的小费总额（bet × 小费倍率）。
func (ot *OrderTracker) ApplyWins(orders []Order, wins []WinInfo, bet int64) ([]Order, int64) {
	collected := make(map[string]int)
	for _, win := range wins {
		collected[win.Symbol.ID] += win.Count
	}

	var tips int64
	for i := range orders {
		if orders[i].Completed {
			continue
		}
		n, ok := collected[orders[i].SymbolID]
		if !ok {
			continue
		}
		orders[i].Collected += n
		if orders[i].Collected >= orders[i].Quantity {
			orders[i].Collected = orders[i].Quantity
			orders[i].Completed = true
			tips += int64(orders[i].TipMultiplier * float64(bet))
		}
	}
	return orders, tips
}

// AnyCompleted 判断是否存在已完成的订单
func (ot *OrderTracker) AnyCompleted(orders []Order) bool {
	for _, o := range orders {
		if o.Completed {
			return true
		}
	}
	return false
}

// AllCompleted 判断订单是否全部完成，空订单列表视为未完成
func (ot *OrderTracker) AllCompleted(orders []Order) bool {
	if len(orders) == 0 {
		return false
	}
	for _, o := range orders {
		if !o.Completed {
			return false
		}
	}
	return true
}

// SuperBonus 免费旋转全部订单完成时的终局大奖
func (ot *OrderTracker) SuperBonus(bet int64) int64 {
	return int64(ot.superBonusMultiplier * float64(bet))
}
