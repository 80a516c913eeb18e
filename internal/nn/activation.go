package nn

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/backprop-go/backprop/internal/backend/cpu"
	"github.com/backprop-go/backprop/internal/tensor"
)

// Activation selects the hidden-layer nonlinearity of a MultiLayerNet.
type Activation int

// Supported activations. The zero value is ReLU.
const (
	ActivationReLU Activation = iota
	ActivationSigmoid
)

// String returns the lowercase activation name.
func (a Activation) String() string {
	switch a {
	case ActivationReLU:
		return "relu"
	case ActivationSigmoid:
		return "sigmoid"
	default:
		return "unknown"
	}
}

// ParseActivation maps "relu" or "sigmoid" (any case) to an Activation.
func ParseActivation(s string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "relu":
		return ActivationReLU, nil
	case "sigmoid":
		return ActivationSigmoid, nil
	default:
		return 0, errors.Wrapf(ErrInvalidConfig, "unknown activation %q", s)
	}
}

// NewActivation instantiates a fresh layer for a.
func NewActivation(a Activation) (Layer, error) {
	switch a {
	case ActivationReLU:
		return NewReLU(), nil
	case ActivationSigmoid:
		return NewSigmoid(), nil
	default:
		return nil, errors.Wrapf(ErrInvalidConfig, "unknown activation %d", int(a))
	}
}

// ReLU is a Rectified Linear Unit activation layer.
//
// Applies the element-wise function: f(x) = max(0, x)
//
// The gradient at exactly zero is 0. NaN inputs are not masked.
type ReLU struct {
	mask cache[reluMask]
}

type reluMask struct {
	mask  []bool
	shape tensor.Shape
}

// NewReLU creates a new ReLU activation layer.
func NewReLU() *ReLU {
	return &ReLU{}
}

// Kind implements Layer.
func (r *ReLU) Kind() Kind { return KindReLU }

func (r *ReLU) sealed() {}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU) Forward(x *tensor.Dense) (*tensor.Dense, error) {
	out, mask := cpu.ReLU(x)
	r.mask.set(reluMask{mask: mask, shape: x.Shape().Clone()})
	return out, nil
}

// Backward passes dout through where the forward input was positive.
func (r *ReLU) Backward(dout *tensor.Dense) (*tensor.Dense, error) {
	m, err := r.mask.get(KindReLU, noForward)
	if err != nil {
		return nil, err
	}
	if !dout.Shape().Equal(m.shape) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "relu backward: gradient %v, want %v", dout.Shape(), m.shape)
	}
	return cpu.ReLUBackward(dout, m.mask)
}

// Sigmoid is a sigmoid activation layer.
//
// Applies the element-wise function: σ(x) = 1 / (1 + exp(-x))
//
// The forward output y is cached; the backward pass is dout * y * (1 - y).
type Sigmoid struct {
	out cache[*tensor.Dense]
}

// NewSigmoid creates a new Sigmoid activation layer.
func NewSigmoid() *Sigmoid {
	return &Sigmoid{}
}

// Kind implements Layer.
func (s *Sigmoid) Kind() Kind { return KindSigmoid }

func (s *Sigmoid) sealed() {}

// Forward applies Sigmoid activation.
func (s *Sigmoid) Forward(x *tensor.Dense) (*tensor.Dense, error) {
	y := cpu.Sigmoid(x)
	s.out.set(y)
	return y, nil
}

// Backward computes dout * y * (1 - y).
func (s *Sigmoid) Backward(dout *tensor.Dense) (*tensor.Dense, error) {
	y, err := s.out.get(KindSigmoid, noForward)
	if err != nil {
		return nil, err
	}
	return cpu.SigmoidBackward(dout, y)
}
