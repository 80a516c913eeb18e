package optim

import (
	"math"

	"github.com/backprop-go/backprop/internal/nn"
)

// RMSprop is AdaGrad with an exponentially decaying sum of squares, so old
// gradients stop shrinking the step.
//
// Update rule:
//
//	h     = decay * h + (1 - decay) * gradient²
//	param = param - lr * gradient / (sqrt(h) + 1e-7)
type RMSprop struct {
	lr    float64
	decay float64
	h     slots
}

// RMSpropConfig holds configuration for RMSprop optimizer.
type RMSpropConfig struct {
	LR    float64 // Learning rate (default: 0.01)
	Decay float64 // Decay rate of the squared-gradient average (default: 0.99)
}

// NewRMSprop creates a new RMSprop optimizer.
func NewRMSprop(config RMSpropConfig) *RMSprop {
	return &RMSprop{
		lr:    orDefault(config.LR, 0.01),
		decay: orDefault(config.Decay, 0.99),
		h:     make(slots),
	}
}

// Update performs a single optimization step.
func (r *RMSprop) Update(params, grads nn.TensorMap) error {
	if err := prepare(params, grads, r.h); err != nil {
		return err
	}
	each(params, grads, func(name string, p, g []float64) {
		h := r.h[name].Data()
		for i := range p {
			h[i] = r.decay*h[i] + (1-r.decay)*g[i]*g[i]
			p[i] -= r.lr * g[i] / (math.Sqrt(h[i]) + eps)
		}
	})
	return nil
}

// GetLR returns the current learning rate.
func (r *RMSprop) GetLR() float64 {
	return r.lr
}

// SetLR sets the learning rate.
func (r *RMSprop) SetLR(lr float64) {
	r.lr = lr
}
