// Package nn implements the layered computation engine.
//
// This package provides:
//   - Layer interface: forward/backward operators with a per-instance cache
//   - Affine: fully connected layer y = xW + b
//   - Activations: ReLU, Sigmoid
//   - SoftmaxWithLoss: terminal softmax + cross-entropy layer
//   - Sequential: ordered chain that runs backward in exact reverse order
//   - MultiLayerNet: arbitrary-depth classifier with L2 weight decay
//
// Layers are stateful and not safe for concurrent use. Use one network per
// goroutine.
package nn

import (
	"github.com/pkg/errors"

	"github.com/backprop-go/backprop/internal/tensor"
)

// Kind tags the closed set of layer variants.
type Kind int

// Layer variants.
const (
	KindAffine Kind = iota
	KindReLU
	KindSigmoid
	KindSoftmaxWithLoss
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindAffine:
		return "Affine"
	case KindReLU:
		return "ReLU"
	case KindSigmoid:
		return "Sigmoid"
	case KindSoftmaxWithLoss:
		return "SoftmaxWithLoss"
	default:
		return "Unknown"
	}
}

// Layer is a stateful operator in the forward/backward chain.
//
// Forward caches whatever Backward needs and overwrites any previous
// cache. Backward must follow a Forward on the same instance and returns
// a gradient with exactly the shape of that Forward's input. Calling
// Backward first returns ErrInvalidState.
//
// The set of implementations is closed: *Affine, *ReLU and *Sigmoid.
type Layer interface {
	// Kind reports which variant this layer is.
	Kind() Kind

	// Forward computes the layer output from x.
	Forward(x *tensor.Dense) (*tensor.Dense, error)

	// Backward maps the gradient w.r.t. the output to the gradient w.r.t.
	// the input of the most recent Forward.
	Backward(dout *tensor.Dense) (*tensor.Dense, error)

	sealed()
}

const noForward = "backward called before forward"

// cache holds the values a layer saved during its last Forward.
// The zero value is the not-yet-populated state.
type cache[T any] struct {
	value T
	ok    bool
}

func (c *cache[T]) set(v T) {
	c.value = v
	c.ok = true
}

// get returns the cached value, or ErrInvalidState naming the layer and
// the call that required it.
func (c *cache[T]) get(layer Kind, missing string) (T, error) {
	if !c.ok {
		var zero T
		return zero, errors.Wrapf(ErrInvalidState, "%s: %s", layer, missing)
	}
	return c.value, nil
}
