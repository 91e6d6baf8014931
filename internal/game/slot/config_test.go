package slot

import (
	"testing"
)

func TestEngineConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *EngineConfig)
		wantErr bool
	}{
		{name: "默认配置有效", mutate: func(c *EngineConfig) {}, wantErr: false},
		{name: "行数为0", mutate: func(c *EngineConfig) { c.Rows = 0 }, wantErr: true},
		{name: "最小簇超过网格容量", mutate: func(c *EngineConfig) { c.MinClusterSize = 31 }, wantErr: true},
		{name: "最大消除轮数为0", mutate: func(c *EngineConfig) { c.MaxCascades = 0 }, wantErr: true},
		{name: "下注上限低于下限", mutate: func(c *EngineConfig) { c.MaxBet = 50 }, wantErr: true},
		{name: "默认下注越界", mutate: func(c *EngineConfig) { c.DefaultBet = 99999 }, wantErr: true},
		{name: "缺少底注档位", mutate: func(c *EngineConfig) { delete(c.AnteSettings, AnteModeLow) }, wantErr: true},
		{
			name: "订单概率超出范围",
			mutate: func(c *EngineConfig) {
				c.AnteSettings[AnteModeNone] = AnteSetting{BetMultiplier: 1, OrderChance: 1.5, ThresholdDivisor: 1}
			},
			wantErr: true,
		},
		{name: "缺少购买套餐", mutate: func(c *EngineConfig) { delete(c.BuyPackages, PackageCheap) }, wantErr: true},
		{
			name: "套餐无订单小费",
			mutate: func(c *EngineConfig) {
				c.BuyPackages[PackageCheap] = BuyPackage{CostMultiplier: 50, FreeSpins: 8}
			},
			wantErr: true,
		},
		{name: "订单数量范围颠倒", mutate: func(c *EngineConfig) { c.OrderQuantityMax = 3 }, wantErr: true},
		{name: "小费倍率集合为空", mutate: func(c *EngineConfig) { c.TipMultipliers = nil }, wantErr: true},
		{name: "免费旋转次数为0", mutate: func(c *EngineConfig) { c.FreeSpinsAwarded = 0 }, wantErr: true},
		{name: "终局大奖倍率为0", mutate: func(c *EngineConfig) { c.SuperBonusMultiplier = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultEngineConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetDefaultEngineConfig(t *testing.T) {
	cfg := GetDefaultEngineConfig()

	if cfg.Rows != 5 || cfg.Cols != 6 {
		t.Errorf("网格 = %dx%d, want 5x6", cfg.Rows, cfg.Cols)
	}
	if cfg.MinClusterSize != 8 {
		t.Errorf("最小簇 = %d, want 8", cfg.MinClusterSize)
	}
	if cfg.MinBet != 100 || cfg.MaxBet != 10000 || cfg.DefaultBet != 1000 {
		t.Errorf("下注配置 = %d/%d/%d", cfg.MinBet, cfg.MaxBet, cfg.DefaultBet)
	}
	if cfg.InitialBalance != 100000 {
		t.Errorf("初始余额 = %d, want 100000", cfg.InitialBalance)
	}
	if cfg.ScatterThreshold != 3 || cfg.FreeSpinsAwarded != 10 {
		t.Errorf("触发配置 = %d/%d", cfg.ScatterThreshold, cfg.FreeSpinsAwarded)
	}
}

func TestTierForCount(t *testing.T) {
	tests := []struct {
		count int
		want  PayTier
	}{
		{count: 7, want: ""},
		{count: 8, want: Tier8To9},
		{count: 9, want: Tier8To9},
		{count: 10, want: Tier10To11},
		{count: 11, want: Tier10To11},
		{count: 12, want: Tier12Plus},
		{count: 30, want: Tier12Plus},
	}
	for _, tt := range tests {
		if got := TierForCount(tt.count); got != tt.want {
			t.Errorf("TierForCount(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}
