package slot

import (
	"testing"
)

func TestBonusController_SpinCost(t *testing.T) {
	bc := NewBonusController(GetDefaultEngineConfig())

	tests := []struct {
		name string
		mode AnteMode
		bet  int64
		want int64
	}{
		{name: "不加注原价", mode: AnteModeNone, bet: 1000, want: 1000},
		{name: "低加注1.5倍", mode: AnteModeLow, bet: 1000, want: 1500},
		{name: "高加注3倍", mode: AnteModeHigh, bet: 1000, want: 3000},
		{name: "未知档位回落到基础档", mode: AnteMode("weird"), bet: 1000, want: 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bc.SpinCost(tt.bet, tt.mode); got != tt.want {
				t.Errorf("SpinCost() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBonusController_EffectiveThreshold(t *testing.T) {
	bc := NewBonusController(GetDefaultEngineConfig())

	tests := []struct {
		name string
		mode AnteMode
		want int
	}{
		{name: "不加注需要3个", mode: AnteModeNone, want: 3},
		{name: "低加注降为2个", mode: AnteModeLow, want: 2},
		{name: "高加注降为1个", mode: AnteModeHigh, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bc.EffectiveThreshold(tt.mode); got != tt.want {
				t.Errorf("EffectiveThreshold(%s) = %d, want %d", tt.mode, got, tt.want)
			}
		})
	}
}

func TestBonusController_ThresholdFloor(t *testing.T) {
	// 除数大到阈值归零时仍然下限为1
	cfg := GetDefaultEngineConfig()
	cfg.AnteSettings[AnteModeHigh] = AnteSetting{
		BetMultiplier: 3, OrderChance: 1, ThresholdDivisor: 100,
	}
	bc := NewBonusController(cfg)
	if got := bc.EffectiveThreshold(AnteModeHigh); got != 1 {
		t.Errorf("EffectiveThreshold() = %d, want 1（下限）", got)
	}
}

func TestBonusController_ShouldTrigger(t *testing.T) {
	bc := NewBonusController(GetDefaultEngineConfig())

	tests := []struct {
		name     string
		scatters int
		mode     AnteMode
		want     bool
	}{
		{name: "不加注2个不触发", scatters: 2, mode: AnteModeNone, want: false},
		{name: "不加注3个触发", scatters: 3, mode: AnteModeNone, want: true},
		{name: "不加注4个触发", scatters: 4, mode: AnteModeNone, want: true},
		{name: "低加注2个触发", scatters: 2, mode: AnteModeLow, want: true},
		{name: "低加注1个不触发", scatters: 1, mode: AnteModeLow, want: false},
		{name: "高加注1个触发", scatters: 1, mode: AnteModeHigh, want: true},
		{name: "高加注0个不触发", scatters: 0, mode: AnteModeHigh, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bc.ShouldTrigger(tt.scatters, tt.mode); got != tt.want {
				t.Errorf("ShouldTrigger(%d, %s) = %v, want %v", tt.scatters, tt.mode, got, tt.want)
			}
		})
	}
}

func TestBonusController_Packages(t *testing.T) {
	bc := NewBonusController(GetDefaultEngineConfig())

	cheap, ok := bc.Package(PackageCheap)
	if !ok {
		t.Fatal("缺少低价套餐")
	}
	if cheap.FreeSpins != 8 || len(cheap.OrderTips) != 2 {
		t.Errorf("低价套餐 = %+v", cheap)
	}
	if got := bc.PackageCost(cheap, 1000); got != 50000 {
		t.Errorf("低价套餐花费 = %d, want 50000", got)
	}

	standard, ok := bc.Package(PackageStandard)
	if !ok {
		t.Fatal("缺少标准套餐")
	}
	if standard.FreeSpins != 10 || len(standard.OrderTips) != 3 {
		t.Errorf("标准套餐 = %+v", standard)
	}
	if got := bc.PackageCost(standard, 1000); got != 100000 {
		t.Errorf("标准套餐花费 = %d, want 100000", got)
	}

	if _, ok := bc.Package(PackageType("vip")); ok {
		t.Error("未知套餐不应存在")
	}
}
