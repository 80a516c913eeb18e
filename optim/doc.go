// Copyright 2025 The Backprop Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training neural networks.
//
// # Overview
//
// This package contains:
//   - SGD, Momentum, Nesterov: gradient and velocity based descent
//   - AdaGrad, RMSprop: per-parameter adaptive step sizes
//   - Adam: adaptive moment estimation with bias correction
//   - New: construct an optimizer by name
//
// # Basic Usage
//
//	optimizer := optim.NewAdam(optim.AdamConfig{LR: 0.001})
//
//	for step := range steps {
//	    grads, err := net.Gradient(x, t)
//	    if err != nil {
//	        return err
//	    }
//	    if err := optimizer.Update(net.Params(), grads); err != nil {
//	        return err
//	    }
//	}
//
// Accumulator state is keyed by parameter name and allocated on the first
// Update that sees each name.
package optim
