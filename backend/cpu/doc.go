// Copyright 2025 The Backprop Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the public API for the CPU kernels used by the
// layers: matrix products, activations, row-wise softmax and the
// im2col/col2im window transforms.
//
// Example:
//
//	col, err := cpu.Im2Col(x, cpu.Window{H: 2, W: 2, Stride: 1})
//	img, err := cpu.Col2Im(col, x.Shape(), cpu.Window{H: 2, W: 2, Stride: 1})
package cpu
