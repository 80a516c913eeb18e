// Copyright 2025 The Backprop Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/backprop-go/backprop/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Config represents the base configuration for optimizers.
type Config = optim.Config

// ErrUnknownOptimizer reports a name that New does not recognize.
var ErrUnknownOptimizer = optim.ErrUnknownOptimizer

// New creates an optimizer by name with default hyperparameters. An lr of
// 0 keeps the optimizer's default learning rate.
func New(name string, lr float64) (Optimizer, error) {
	return optim.New(name, lr)
}

// Names returns the names accepted by New.
func Names() []string {
	return optim.Names()
}

// SGD (Stochastic Gradient Descent)

// SGD represents plain gradient descent.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}

// Momentum and Nesterov

// Momentum represents SGD with classical momentum.
type Momentum = optim.Momentum

// Nesterov represents Nesterov's accelerated gradient.
type Nesterov = optim.Nesterov

// MomentumConfig contains configuration for Momentum and Nesterov.
type MomentumConfig = optim.MomentumConfig

// NewMomentum creates a new Momentum optimizer.
func NewMomentum(config MomentumConfig) *Momentum {
	return optim.NewMomentum(config)
}

// NewNesterov creates a new Nesterov optimizer.
func NewNesterov(config MomentumConfig) *Nesterov {
	return optim.NewNesterov(config)
}

// AdaGrad and RMSprop

// AdaGrad represents the AdaGrad optimizer.
type AdaGrad = optim.AdaGrad

// AdaGradConfig contains configuration for AdaGrad.
type AdaGradConfig = optim.AdaGradConfig

// NewAdaGrad creates a new AdaGrad optimizer.
func NewAdaGrad(config AdaGradConfig) *AdaGrad {
	return optim.NewAdaGrad(config)
}

// RMSprop represents the RMSprop optimizer.
type RMSprop = optim.RMSprop

// RMSpropConfig contains configuration for RMSprop.
type RMSpropConfig = optim.RMSpropConfig

// NewRMSprop creates a new RMSprop optimizer.
func NewRMSprop(config RMSpropConfig) *RMSprop {
	return optim.NewRMSprop(config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
//
// Example:
//
//	optimizer := optim.NewAdam(optim.AdamConfig{
//	    LR:    0.001,
//	    Beta1: 0.9,
//	    Beta2: 0.999,
//	})
func NewAdam(config AdamConfig) *Adam {
	return optim.NewAdam(config)
}
