// Copyright 2025 The Backprop Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/backprop-go/backprop/internal/nn"
	"github.com/backprop-go/backprop/internal/tensor"
)

// Layer is a stateful operator in the forward/backward chain.
type Layer = nn.Layer

// Kind tags the layer variants.
type Kind = nn.Kind

// Layer variants.
const (
	KindAffine          = nn.KindAffine
	KindReLU            = nn.KindReLU
	KindSigmoid         = nn.KindSigmoid
	KindSoftmaxWithLoss = nn.KindSoftmaxWithLoss
)

// Errors.
var (
	// ErrInvalidState reports a backward pass before any forward pass.
	ErrInvalidState = nn.ErrInvalidState

	// ErrInvalidConfig reports an unusable network configuration.
	ErrInvalidConfig = nn.ErrInvalidConfig
)

// Layers

// Affine is a fully connected layer y = x @ W + b.
type Affine = nn.Affine

// NewAffine creates an Affine layer that owns weight [in, out] and bias [out].
func NewAffine(weight, bias *tensor.Dense) (*Affine, error) {
	return nn.NewAffine(weight, bias)
}

// ReLU is the max(0, x) activation layer.
type ReLU = nn.ReLU

// NewReLU creates a ReLU layer.
func NewReLU() *ReLU {
	return nn.NewReLU()
}

// Sigmoid is the logistic activation layer.
type Sigmoid = nn.Sigmoid

// NewSigmoid creates a Sigmoid layer.
func NewSigmoid() *Sigmoid {
	return nn.NewSigmoid()
}

// SoftmaxWithLoss is the terminal softmax + cross-entropy layer.
type SoftmaxWithLoss = nn.SoftmaxWithLoss

// NewSoftmaxWithLoss creates the terminal loss layer.
func NewSoftmaxWithLoss() *SoftmaxWithLoss {
	return nn.NewSoftmaxWithLoss()
}

// Sequential chains layers and runs backward in reverse order.
type Sequential = nn.Sequential

// NewSequential creates a chain of layers.
func NewSequential(layers ...Layer) *Sequential {
	return nn.NewSequential(layers...)
}

// Targets

// Target holds supervision labels as class indices or one-hot rows.
type Target = nn.Target

// ClassIndices creates a target from one class index per sample.
func ClassIndices(indices ...int) Target {
	return nn.ClassIndices(indices...)
}

// OneHot creates a target from an [N, K] one-hot matrix.
func OneHot(t *tensor.Dense) Target {
	return nn.OneHot(t)
}

// Networks

// Activation selects the hidden-layer nonlinearity.
type Activation = nn.Activation

// Supported activations.
const (
	ActivationReLU    = nn.ActivationReLU
	ActivationSigmoid = nn.ActivationSigmoid
)

// ParseActivation maps "relu" or "sigmoid" to an Activation.
func ParseActivation(s string) (Activation, error) {
	return nn.ParseActivation(s)
}

// NewActivation creates a fresh activation layer.
func NewActivation(a Activation) (Layer, error) {
	return nn.NewActivation(a)
}

// WeightInit picks the standard deviation of initial weights.
type WeightInit = nn.WeightInit

// He scales initial weights by sqrt(2 / fan_in).
func He() WeightInit { return nn.He() }

// Xavier scales initial weights by sqrt(1 / fan_in).
func Xavier() WeightInit { return nn.Xavier() }

// StdDev uses a fixed standard deviation.
func StdDev(s float64) WeightInit { return nn.StdDev(s) }

// ParseWeightInit maps relu/he, sigmoid/xavier or a number to a WeightInit.
func ParseWeightInit(token string) (WeightInit, error) {
	return nn.ParseWeightInit(token)
}

// Config describes a MultiLayerNet.
type Config = nn.Config

// MultiLayerNet is a fully connected classifier with L2 weight decay.
type MultiLayerNet = nn.MultiLayerNet

// NewMultiLayerNet builds and initializes a network.
//
// Example:
//
//	net, err := nn.NewMultiLayerNet(nn.Config{
//	    InputSize:   2,
//	    HiddenSizes: []int{10, 10},
//	    OutputSize:  3,
//	    Activation:  nn.ActivationSigmoid,
//	    WeightInit:  nn.Xavier(),
//	    WeightDecay: 0.1,
//	})
func NewMultiLayerNet(cfg Config) (*MultiLayerNet, error) {
	return nn.NewMultiLayerNet(cfg)
}

// TensorMap maps parameter names to tensors in insertion order.
type TensorMap = nn.TensorMap

// NewTensorMap creates an empty TensorMap.
func NewTensorMap() TensorMap {
	return nn.NewTensorMap()
}

// CheckCompatible verifies that grads matches params key for key and
// shape for shape.
func CheckCompatible(params, grads TensorMap) error {
	return nn.CheckCompatible(params, grads)
}
