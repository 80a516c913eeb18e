package optim

import (
	"math"

	"github.com/backprop-go/backprop/internal/nn"
)

// AdaGrad scales each parameter's step by the inverse root of its summed
// squared gradients.
//
// Update rule:
//
//	h     = h + gradient²
//	param = param - lr * gradient / (sqrt(h) + 1e-7)
type AdaGrad struct {
	lr float64
	h  slots
}

// AdaGradConfig holds configuration for AdaGrad optimizer.
type AdaGradConfig struct {
	LR float64 // Learning rate (default: 0.01)
}

// NewAdaGrad creates a new AdaGrad optimizer.
func NewAdaGrad(config AdaGradConfig) *AdaGrad {
	return &AdaGrad{
		lr: orDefault(config.LR, 0.01),
		h:  make(slots),
	}
}

// Update performs a single optimization step.
func (a *AdaGrad) Update(params, grads nn.TensorMap) error {
	if err := prepare(params, grads, a.h); err != nil {
		return err
	}
	each(params, grads, func(name string, p, g []float64) {
		h := a.h[name].Data()
		for i := range p {
			h[i] += g[i] * g[i]
			p[i] -= a.lr * g[i] / (math.Sqrt(h[i]) + eps)
		}
	})
	return nil
}

// GetLR returns the current learning rate.
func (a *AdaGrad) GetLR() float64 {
	return a.lr
}

// SetLR sets the learning rate.
func (a *AdaGrad) SetLR(lr float64) {
	a.lr = lr
}
