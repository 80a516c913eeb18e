package nn

import (
	"github.com/pkg/errors"

	"github.com/backprop-go/backprop/internal/tensor"
)

// Sequential is a container that chains layers together.
//
// Each layer's output becomes the next layer's input. Backward visits the
// layers in exactly the reverse order, feeding each layer's input gradient
// to its predecessor.
//
// Example:
//
//	chain := nn.NewSequential(affine1, nn.NewReLU(), affine2)
//
//	out, err := chain.Forward(x)
//	...
//	dx, err := chain.Backward(dout)
type Sequential struct {
	layers []Layer
}

// NewSequential creates a new Sequential container.
func NewSequential(layers ...Layer) *Sequential {
	return &Sequential{layers: layers}
}

// Forward applies all layers in sequence.
func (s *Sequential) Forward(x *tensor.Dense) (*tensor.Dense, error) {
	out := x
	for i, l := range s.layers {
		var err error
		if out, err = l.Forward(out); err != nil {
			return nil, errors.Wrapf(err, "layer %d (%s)", i, l.Kind())
		}
	}
	return out, nil
}

// Backward propagates dout from the last layer to the first and returns
// the gradient w.r.t. the chain's input.
func (s *Sequential) Backward(dout *tensor.Dense) (*tensor.Dense, error) {
	grad := dout
	for i := len(s.layers) - 1; i >= 0; i-- {
		l := s.layers[i]
		var err error
		if grad, err = l.Backward(grad); err != nil {
			return nil, errors.Wrapf(err, "layer %d (%s)", i, l.Kind())
		}
	}
	return grad, nil
}

// Add appends a layer to the chain.
func (s *Sequential) Add(l Layer) {
	s.layers = append(s.layers, l)
}

// Len returns the number of layers in the chain.
func (s *Sequential) Len() int {
	return len(s.layers)
}

// Layer returns the layer at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential) Layer(index int) Layer {
	if index < 0 || index >= len(s.layers) {
		panic("Sequential.Layer: index out of bounds")
	}
	return s.layers[index]
}

// Affines returns the Affine layers of the chain in forward order.
func (s *Sequential) Affines() []*Affine {
	var out []*Affine
	for _, l := range s.layers {
		if a, ok := l.(*Affine); ok {
			out = append(out, a)
		}
	}
	return out
}
