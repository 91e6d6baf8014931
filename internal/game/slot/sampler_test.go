package slot

import (
	"testing"
)

func TestSampler_ExcludeScatter(t *testing.T) {
	sampler := NewSampler(GetDefaultCatalog(), NewSeededRandomGenerator(1))
	for i := 0; i < 2000; i++ {
		if sym := sampler.Sample(true); sym.IsScatter {
			t.Fatal("排除Scatter的抽样返回了Scatter")
		}
	}
}

func TestSampler_WeightDistribution(t *testing.T) {
	// 汽水权重20是汉堡权重6的3倍多，大样本下出现次数应显著更多
	sampler := NewSampler(GetDefaultCatalog(), NewSeededRandomGenerator(2))
	counts := make(map[string]int)
	n := 10000
	for i := 0; i < n; i++ {
		counts[sampler.Sample(false).ID]++
	}

	if counts[SymbolSoda] <= counts[SymbolBurger] {
		t.Errorf("权重失效: soda=%d burger=%d", counts[SymbolSoda], counts[SymbolBurger])
	}
	// 所有符号都应出现过，包括低权重的Scatter
	for _, id := range []string{SymbolBurger, SymbolPizza, SymbolSushi, SymbolTaco,
		SymbolHotdog, SymbolFries, SymbolDonut, SymbolSoda, SymbolScatter} {
		if counts[id] == 0 {
			t.Errorf("符号%s在%d次抽样中从未出现", id, n)
		}
	}
}

func TestSampler_CumulativeWalk(t *testing.T) {
	// 固定随机数为0时落在第一个候选
	sampler := NewSampler(GetDefaultCatalog(), &stubRNG{next: 0})
	if sym := sampler.Sample(true); sym.ID != SymbolBurger {
		t.Errorf("draw=0抽中 = %s, want burger", sym.ID)
	}
}

func TestSampler_LastCandidateFallback(t *testing.T) {
	// 构造draw等于权重总和的极端情况，兜底返回最后一个候选
	sampler := NewSampler(GetDefaultCatalog(), &stubRNG{next: 1.0})

	sym := sampler.Sample(true)
	if sym.ID != SymbolSoda {
		t.Errorf("兜底抽中 = %s, want soda（最后一个食物）", sym.ID)
	}

	sym = sampler.Sample(false)
	if sym.ID != SymbolScatter {
		t.Errorf("兜底抽中 = %s, want bell（目录末位）", sym.ID)
	}
}

func TestSampler_ReturnsCopy(t *testing.T) {
	catalog := GetDefaultCatalog()
	sampler := NewSampler(catalog, &stubRNG{next: 0})

	sym := sampler.Sample(true)
	sym.Payouts[Tier8To9] = 12345

	again := sampler.Sample(true)
	if again.Payouts[Tier8To9] == 12345 {
		t.Error("抽样结果与目录共享赔率表")
	}
}
