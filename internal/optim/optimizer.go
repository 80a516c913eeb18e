// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: in-place parameter updates from a gradient set
//   - SGD: plain stochastic gradient descent
//   - Momentum, Nesterov: velocity-based descent
//   - AdaGrad, RMSprop: per-parameter adaptive step sizes
//   - Adam: adaptive moment estimation with bias correction
//
// Every optimizer keys its accumulator state by parameter name, so the
// same optimizer must always be given the same parameter set.
//
// Example usage:
//
//	optimizer := optim.NewAdam(optim.AdamConfig{LR: 0.001})
//
//	for step := range steps {
//	    grads, err := net.Gradient(xBatch, tBatch)
//	    if err != nil {
//	        return err
//	    }
//	    if err := optimizer.Update(net.Params(), grads); err != nil {
//	        return err
//	    }
//	}
package optim

import (
	"github.com/pkg/errors"

	"github.com/backprop-go/backprop/internal/nn"
	"github.com/backprop-go/backprop/internal/tensor"
)

// eps guards every division by an accumulated magnitude.
const eps = 1e-7

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Update applies one step to params in place using grads.
	//
	// params and grads must have identical key sets and per-key shapes,
	// otherwise tensor.ErrShapeMismatch is returned and nothing is modified.
	Update(params, grads nn.TensorMap) error

	// GetLR returns the current learning rate.
	GetLR() float64

	// SetLR replaces the learning rate used by subsequent updates.
	SetLR(lr float64)
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}

// slots holds one accumulator tensor per parameter name.
type slots map[string]*tensor.Dense

// prepare validates params against grads and against any accumulators
// already allocated, then allocates missing accumulators as zeros. It
// returns before anything is modified if validation fails.
func prepare(params, grads nn.TensorMap, accs ...slots) error {
	if err := nn.CheckCompatible(params, grads); err != nil {
		return errors.Wrap(err, "optimizer update")
	}

	var err error
	params.Each(func(name string, p *tensor.Dense) {
		for _, acc := range accs {
			if s, ok := acc[name]; ok && !s.SameShape(p) && err == nil {
				err = errors.Wrapf(tensor.ErrShapeMismatch, "optimizer update: parameter %q has shape %v, state has %v",
					name, p.Shape(), s.Shape())
			}
		}
	})
	if err != nil {
		return err
	}

	params.Each(func(name string, p *tensor.Dense) {
		for _, acc := range accs {
			if _, ok := acc[name]; !ok {
				acc[name] = tensor.ZerosLike(p)
			}
		}
	})
	return nil
}

// each calls fn with the raw storage of every parameter and its gradient,
// in parameter order. Callers must have run prepare.
func each(params, grads nn.TensorMap, fn func(name string, p, g []float64)) {
	params.Each(func(name string, p *tensor.Dense) {
		g, _ := grads.Get(name)
		fn(name, p.Data(), g.Data())
	})
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
