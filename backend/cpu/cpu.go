// Copyright 2025 The Backprop Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	"github.com/backprop-go/backprop/internal/backend/cpu"
	"github.com/backprop-go/backprop/internal/tensor"
)

// Window describes a sliding window: its height and width, the stride
// between positions and the zero padding on each spatial edge.
type Window = cpu.Window

// ConvOutputSize returns (in + 2*pad - filter)/stride + 1, or an error if
// the division is not exact.
func ConvOutputSize(in, filter, stride, pad int) (int, error) {
	return cpu.ConvOutputSize(in, filter, stride, pad)
}

// Im2Col unfolds an [N, C, H, W] tensor into an
// [N*outH*outW, C*win.H*win.W] matrix, one receptive field per row.
func Im2Col(input *tensor.Dense, win Window) (*tensor.Dense, error) {
	return cpu.Im2Col(input, win)
}

// Col2Im folds a column matrix back into a tensor of the given shape,
// summing overlapping contributions.
func Col2Im(col *tensor.Dense, shape tensor.Shape, win Window) (*tensor.Dense, error) {
	return cpu.Col2Im(col, shape, win)
}

// MatMul returns a @ b.
func MatMul(a, b *tensor.Dense) (*tensor.Dense, error) {
	return cpu.MatMul(a, b)
}

// SoftmaxRows applies a numerically stable softmax to each row of x.
func SoftmaxRows(x *tensor.Dense) (*tensor.Dense, error) {
	return cpu.SoftmaxRows(x)
}

// Sigmoid applies 1/(1+exp(-x)) element-wise.
func Sigmoid(x *tensor.Dense) *tensor.Dense {
	return cpu.Sigmoid(x)
}

// ArgmaxRows returns the column index of the largest value in each row.
func ArgmaxRows(x *tensor.Dense) ([]int, error) {
	return cpu.ArgmaxRows(x)
}
