package tensor

import (
	"math"
	"math/rand"
	"testing"
)

func TestZerosAndFull(t *testing.T) {
	z := Zeros(3, 4)
	for _, v := range z.Data() {
		if v != 0 {
			t.Fatalf("Zeros produced %v", v)
		}
	}

	f := Full(2.5, 2, 2)
	for _, v := range f.Data() {
		if v != 2.5 {
			t.Fatalf("Full produced %v, want 2.5", v)
		}
	}

	if !ZerosLike(f).SameShape(f) {
		t.Error("ZerosLike should keep the shape")
	}
}

func TestZeros_PanicsOnBadShape(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Zeros(0) should panic")
		}
	}()
	Zeros(0)
}

func TestRandn(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	x := Randn(rng, 100, 50)

	data := x.Data()
	var sum, sumSq float64
	for _, v := range data {
		sum += v
		sumSq += v * v
	}
	mean := sum / float64(len(data))
	std := math.Sqrt(sumSq/float64(len(data)) - mean*mean)

	if math.Abs(mean) > 0.05 {
		t.Errorf("Randn mean = %v, expected close to 0", mean)
	}
	if math.Abs(std-1) > 0.05 {
		t.Errorf("Randn std = %v, expected close to 1", std)
	}

	// Same seed, same draw.
	y := Randn(rand.New(rand.NewSource(1)), 100, 50)
	if y.At(42, 7) != x.At(42, 7) {
		t.Error("Randn should be reproducible for a fixed seed")
	}
}
