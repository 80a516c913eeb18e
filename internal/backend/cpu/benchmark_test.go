package cpu_test

import (
	"math/rand"
	"testing"

	"github.com/backprop-go/backprop/internal/backend/cpu"
	"github.com/backprop-go/backprop/internal/tensor"
)

func BenchmarkMatMul(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	x := tensor.Randn(rng, 100, 784)
	w := tensor.Randn(rng, 784, 100)
	dout := tensor.Randn(rng, 100, 100)

	b.Run("Forward", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = cpu.MatMul(x, w)
		}
	})

	b.Run("TransA", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = cpu.MatMulTransA(x, dout)
		}
	})

	b.Run("TransB", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = cpu.MatMulTransB(dout, w)
		}
	})
}

func BenchmarkUnfold(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	x := tensor.Randn(rng, 8, 3, 28, 28)
	win := cpu.Window{H: 5, W: 5, Stride: 1, Pad: 2}
	col, err := cpu.Im2Col(x, win)
	if err != nil {
		b.Fatal(err)
	}

	b.Run("Im2Col", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = cpu.Im2Col(x, win)
		}
	})

	b.Run("Col2Im", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = cpu.Col2Im(col, x.Shape(), win)
		}
	})
}

func BenchmarkSoftmaxRows(b *testing.B) {
	x := tensor.Randn(rand.New(rand.NewSource(1)), 100, 10)
	for i := 0; i < b.N; i++ {
		_, _ = cpu.SoftmaxRows(x)
	}
}
