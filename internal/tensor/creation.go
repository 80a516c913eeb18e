package tensor

import (
	"fmt"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
// Panics if any dimension is not positive.
//
// Example:
//
//	w := tensor.Zeros(784, 100)
func Zeros(dims ...int) *Dense {
	t, err := New(Shape(dims))
	if err != nil {
		panic(fmt.Sprintf("Zeros: %v", err))
	}
	return t
}

// ZerosLike creates a zero-filled tensor with the same shape as t.
func ZerosLike(t *Dense) *Dense {
	return Zeros(t.shape...)
}

// Full creates a tensor filled with a specific value.
func Full(value float64, dims ...int) *Dense {
	t := Zeros(dims...)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// Randn creates a tensor with values drawn from the standard normal
// distribution N(0, 1) using rng.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	w := tensor.Randn(rng, 784, 100)
func Randn(rng *rand.Rand, dims ...int) *Dense {
	t := Zeros(dims...)
	for i := range t.data {
		t.data[i] = rng.NormFloat64()
	}
	return t
}

// Must unwraps a (tensor, error) pair, panicking on error.
// Intended for literals in tests and examples.
func Must(t *Dense, err error) *Dense {
	if err != nil {
		panic(err)
	}
	return t
}
