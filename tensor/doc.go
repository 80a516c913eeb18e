// Copyright 2025 The Backprop Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the float64 tensors that flow
// between layers.
//
// A Dense tensor has a fixed shape; Reshape returns a view that shares
// storage. Two layouts are used throughout:
//   - 2-D (batch, features) for dense layers
//   - 4-D (batch, channels, height, width) for windowed transforms
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	w := tensor.Zeros(3, 4)
package tensor
