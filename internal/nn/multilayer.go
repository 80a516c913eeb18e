package nn

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/backprop-go/backprop/internal/backend/cpu"
	"github.com/backprop-go/backprop/internal/numgrad"
	"github.com/backprop-go/backprop/internal/tensor"
)

// Config describes a fully connected classifier.
//
// Zero values for Activation, WeightInit and WeightDecay select ReLU, He
// initialization and no decay.
type Config struct {
	InputSize   int   // features per sample
	HiddenSizes []int // widths of the hidden layers, may be empty
	OutputSize  int   // number of classes

	Activation  Activation
	WeightInit  WeightInit
	WeightDecay float64 // L2 coefficient λ, must be >= 0

	// Rand supplies the weight draws. Nil seeds a new source from the clock.
	Rand *rand.Rand
}

func (c Config) validate() error {
	if c.InputSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "input size must be positive, got %d", c.InputSize)
	}
	if c.OutputSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "output size must be positive, got %d", c.OutputSize)
	}
	for i, h := range c.HiddenSizes {
		if h <= 0 {
			return errors.Wrapf(ErrInvalidConfig, "hidden layer %d: width must be positive, got %d", i+1, h)
		}
	}
	if !(c.WeightDecay >= 0) || math.IsInf(c.WeightDecay, 0) {
		return errors.Wrapf(ErrInvalidConfig, "weight decay must be finite and >= 0, got %g", c.WeightDecay)
	}
	return nil
}

// MultiLayerNet is a fully connected classifier of arbitrary depth:
//
//	Affine1 → Act1 → … → ActL-1 → AffineL → SoftmaxWithLoss
//
// Each Affine owns its weight and bias. Params returns a view that indexes
// them under the names W1, b1, …, WL, bL, and Gradient returns freshly
// allocated tensors under the same names.
//
// A MultiLayerNet is not safe for concurrent use.
type MultiLayerNet struct {
	chain       *Sequential
	affines     []*Affine
	lossLayer   *SoftmaxWithLoss
	weightDecay float64
	activation  Activation
}

// NewMultiLayerNet builds and initializes a network from cfg.
func NewMultiLayerNet(cfg Config) (*MultiLayerNet, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // weight init is not security-critical
	}

	sizes := make([]int, 0, len(cfg.HiddenSizes)+2)
	sizes = append(sizes, cfg.InputSize)
	sizes = append(sizes, cfg.HiddenSizes...)
	sizes = append(sizes, cfg.OutputSize)

	net := &MultiLayerNet{
		chain:       NewSequential(),
		lossLayer:   NewSoftmaxWithLoss(),
		weightDecay: cfg.WeightDecay,
		activation:  cfg.Activation,
	}
	for i := 1; i < len(sizes); i++ {
		w := cfg.WeightInit.initWeight(rng, sizes[i-1], sizes[i])
		affine, err := NewAffine(w, tensor.Zeros(sizes[i]))
		if err != nil {
			return nil, err
		}
		net.chain.Add(affine)
		net.affines = append(net.affines, affine)

		if i == len(sizes)-1 {
			break
		}
		act, err := NewActivation(cfg.Activation)
		if err != nil {
			return nil, err
		}
		net.chain.Add(act)
	}
	return net, nil
}

func weightKey(i int) string { return fmt.Sprintf("W%d", i+1) }
func biasKey(i int) string   { return fmt.Sprintf("b%d", i+1) }

// Params returns the parameter set W1, b1, …, WL, bL.
//
// The tensors are the layers' own storage: updating them in place changes
// the network. The map itself is rebuilt on every call.
func (n *MultiLayerNet) Params() TensorMap {
	params := NewTensorMap()
	for i, a := range n.affines {
		params.Set(weightKey(i), a.Weight())
		params.Set(biasKey(i), a.Bias())
	}
	return params
}

// Layers returns the hidden chain in forward order. The terminal loss layer
// is not included.
func (n *MultiLayerNet) Layers() []Layer {
	out := make([]Layer, n.chain.Len())
	for i := range out {
		out[i] = n.chain.Layer(i)
	}
	return out
}

// LossLayer returns the terminal SoftmaxWithLoss.
func (n *MultiLayerNet) LossLayer() *SoftmaxWithLoss {
	return n.lossLayer
}

// Depth returns the number of Affine layers.
func (n *MultiLayerNet) Depth() int {
	return len(n.affines)
}

// Activation returns the hidden-layer activation.
func (n *MultiLayerNet) Activation() Activation {
	return n.activation
}

// WeightDecay returns the L2 coefficient λ.
func (n *MultiLayerNet) WeightDecay() float64 {
	return n.weightDecay
}

// Predict returns the raw logits [N, OutputSize] for x.
func (n *MultiLayerNet) Predict(x *tensor.Dense) (*tensor.Dense, error) {
	return n.chain.Forward(x)
}

// Loss returns the mean cross-entropy of x against t plus the weight-decay
// penalty 0.5·λ·Σ‖Wᵢ‖². Biases are not decayed.
func (n *MultiLayerNet) Loss(x *tensor.Dense, t Target) (float64, error) {
	logits, err := n.Predict(x)
	if err != nil {
		return 0, err
	}
	loss, err := n.lossLayer.Forward(logits, t)
	if err != nil {
		return 0, err
	}

	if n.weightDecay != 0 {
		var penalty float64
		for _, a := range n.affines {
			penalty += cpu.SumSquares(a.Weight())
		}
		loss += 0.5 * n.weightDecay * penalty
	}
	return loss, nil
}

// Accuracy returns the fraction of rows of x whose largest logit is the
// target class.
func (n *MultiLayerNet) Accuracy(x *tensor.Dense, t Target) (float64, error) {
	logits, err := n.Predict(x)
	if err != nil {
		return 0, err
	}
	pred, err := cpu.ArgmaxRows(logits)
	if err != nil {
		return 0, err
	}
	labels, err := t.Resolve(logits.Dim(0), logits.Dim(1))
	if err != nil {
		return 0, errors.Wrap(err, "accuracy")
	}

	correct := 0
	for i := range pred {
		if pred[i] == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(pred)), nil
}

// NumericalGradient estimates the gradient of Loss by centered differences
// with step numgrad.DefaultStep. It costs two loss evaluations per parameter
// scalar and is intended for checking Gradient on small networks.
func (n *MultiLayerNet) NumericalGradient(x *tensor.Dense, t Target) (TensorMap, error) {
	loss := func() (float64, error) { return n.Loss(x, t) }

	grads := NewTensorMap()
	var err error
	n.Params().Each(func(name string, p *tensor.Dense) {
		if err != nil {
			return
		}
		var g *tensor.Dense
		if g, err = numgrad.Gradient(loss, p, numgrad.DefaultStep); err != nil {
			err = errors.Wrapf(err, "numerical gradient %s", name)
			return
		}
		grads.Set(name, g)
	})
	if err != nil {
		return TensorMap{}, err
	}
	return grads, nil
}

// Gradient computes the gradient of Loss by backpropagation.
//
// It runs the loss forward pass itself, seeds the loss layer with dout = 1
// and walks the chain in reverse. Weight gradients include λ·Wᵢ. The result
// never aliases the parameters or the layers' cached gradients.
func (n *MultiLayerNet) Gradient(x *tensor.Dense, t Target) (TensorMap, error) {
	if _, err := n.Loss(x, t); err != nil {
		return TensorMap{}, err
	}
	dout, err := n.lossLayer.Backward(1)
	if err != nil {
		return TensorMap{}, err
	}
	if _, err := n.chain.Backward(dout); err != nil {
		return TensorMap{}, err
	}

	grads := NewTensorMap()
	for i, a := range n.affines {
		dW, db, err := a.Grads()
		if err != nil {
			return TensorMap{}, err
		}
		gW := dW.Clone()
		if n.weightDecay != 0 {
			floats.AddScaled(gW.Data(), n.weightDecay, a.Weight().Data())
		}
		grads.Set(weightKey(i), gW)
		grads.Set(biasKey(i), db.Clone())
	}
	return grads, nil
}
