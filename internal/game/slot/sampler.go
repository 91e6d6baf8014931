package slot

// Sampler 按权重抽取符号
type Sampler struct {
	catalog *Catalog
	rng     RandomGenerator
}

// NewSampler 创建符号抽样器
func NewSampler(catalog *Catalog, rng RandomGenerator) *Sampler {
	return &Sampler{
		catalog: catalog,
		rng:     rng,
	}
}

// Sample 按权重抽取一个符号并返回独立副本。
// excludeScatter为true时候选集不含Scatter：消除补充永远排除Scatter，
// Scatter只会出现在旋转的初始网格上。
func (s *Sampler) Sample(excludeScatter bool) Symbol {
	var candidates []Symbol
	if excludeScatter {
		candidates = s.catalog.Foods()
	} else {
		candidates = s.catalog.All()
	}

	totalWeight := 0.0
	for _, sym := range candidates {
		totalWeight += sym.Weight
	}

	draw := s.rng.Next() * totalWeight

	cumulative := 0.0
	for _, sym := range candidates {
		cumulative += sym.Weight
		if draw < cumulative {
			return sym
		}
	}

	// 浮点舍入可能让累加和略小于totalWeight，兜底返回最后一个候选
	return candidates[len(candidates)-1]
}
