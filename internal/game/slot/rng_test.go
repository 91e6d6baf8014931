package slot

import (
	"testing"
)

// stubRNG 返回固定值的随机数生成器，用于构造确定性场景
type stubRNG struct {
	next float64
}

func (s *stubRNG) Next() float64             { return s.next }
func (s *stubRNG) NextInt(min, max int) int  { return min }
func (s *stubRNG) Seed(seed int64)           {}

func TestCryptoRandomGenerator(t *testing.T) {
	rng := NewCryptoRandomGenerator()

	for i := 0; i < 100; i++ {
		val := rng.Next()
		if val < 0 || val >= 1 {
			t.Errorf("Next() returned %v, expected [0, 1)", val)
		}
	}

	min, max := 10, 20
	for i := 0; i < 100; i++ {
		val := rng.NextInt(min, max)
		if val < min || val >= max {
			t.Errorf("NextInt(%d, %d) returned %v", min, max, val)
		}
	}

	// 边界条件
	if val := rng.NextInt(5, 5); val != 5 {
		t.Errorf("NextInt(5, 5) returned %v, expected 5", val)
	}
}

func TestSeededRandomGenerator(t *testing.T) {
	// 相同种子产生相同序列
	a := NewSeededRandomGenerator(42)
	b := NewSeededRandomGenerator(42)
	for i := 0; i < 50; i++ {
		if a.Next() != b.Next() {
			t.Fatal("相同种子产生了不同序列")
		}
	}

	// 重设种子后序列重放
	a.Seed(7)
	first := a.Next()
	a.Seed(7)
	if a.Next() != first {
		t.Error("重设种子后序列未重放")
	}

	for i := 0; i < 100; i++ {
		val := a.Next()
		if val < 0 || val >= 1 {
			t.Errorf("Next() returned %v, expected [0, 1)", val)
		}
	}
	for i := 0; i < 100; i++ {
		val := a.NextInt(3, 9)
		if val < 3 || val >= 9 {
			t.Errorf("NextInt(3, 9) returned %v", val)
		}
	}
}
