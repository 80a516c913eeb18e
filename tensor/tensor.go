// Copyright 2025 The Backprop Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/backprop-go/backprop/internal/tensor"
)

// Dense is a row-major n-dimensional array of float64 values.
type Dense = tensor.Dense

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// Errors.
var (
	// ErrShapeMismatch reports operands whose shapes are incompatible.
	ErrShapeMismatch = tensor.ErrShapeMismatch

	// ErrInvalidShape reports a shape with a non-positive dimension or an
	// element count that does not match the data.
	ErrInvalidShape = tensor.ErrInvalidShape
)

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) (*Dense, error) {
	return tensor.New(shape)
}

// FromSlice creates a tensor from a copy of data.
func FromSlice(data []float64, shape Shape) (*Dense, error) {
	return tensor.FromSlice(data, shape)
}

// FromMatrix copies a gonum matrix into a new 2-D tensor.
func FromMatrix(m mat.Matrix) *Dense {
	return tensor.FromMatrix(m)
}

// Zeros creates a tensor filled with zeros. Panics on a non-positive dimension.
func Zeros(dims ...int) *Dense {
	return tensor.Zeros(dims...)
}

// ZerosLike creates a zero-filled tensor with the shape of t.
func ZerosLike(t *Dense) *Dense {
	return tensor.ZerosLike(t)
}

// Full creates a tensor filled with value.
func Full(value float64, dims ...int) *Dense {
	return tensor.Full(value, dims...)
}

// Randn creates a tensor with values drawn from N(0, 1).
func Randn(rng *rand.Rand, dims ...int) *Dense {
	return tensor.Randn(rng, dims...)
}

// Must unwraps a (tensor, error) pair, panicking on error.
func Must(t *Dense, err error) *Dense {
	return tensor.Must(t, err)
}
