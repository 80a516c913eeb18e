// Copyright 2025 The Backprop Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for building and differentiating
// fully connected classifiers.
//
// # Overview
//
// This package contains:
//   - Layer: the closed set of chainable operators (Affine, ReLU, Sigmoid)
//   - SoftmaxWithLoss: the terminal softmax + cross-entropy layer
//   - MultiLayerNet: an arbitrary-depth classifier with L2 weight decay
//   - TensorMap: ordered name → tensor map used for parameters and gradients
//
// # Basic Usage
//
//	net, err := nn.NewMultiLayerNet(nn.Config{
//	    InputSize:   784,
//	    HiddenSizes: []int{50},
//	    OutputSize:  10,
//	})
//	if err != nil {
//	    return err
//	}
//
//	grads, err := net.Gradient(x, nn.ClassIndices(labels...))
//	if err != nil {
//	    return err
//	}
//	err = optimizer.Update(net.Params(), grads)
//
// Networks and layers hold per-call caches and are not safe for concurrent
// use. Train independent networks in separate goroutines instead.
package nn
