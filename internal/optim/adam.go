package optim

import (
	"math"

	"github.com/backprop-go/backprop/internal/nn"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Adam combines ideas from RMSprop and momentum:
//   - Maintains exponential moving averages of gradients (first moment)
//   - Maintains exponential moving averages of squared gradients (second moment)
//   - Folds both bias corrections into a per-step learning rate
//
// Update rule:
//
//	t     = t + 1
//	lr_t  = lr * sqrt(1 - beta2^t) / (1 - beta1^t)
//	m     = m + (1 - beta1) * (gradient - m)
//	v     = v + (1 - beta2) * (gradient² - v)
//	param = param - lr_t * m / (sqrt(v) + 1e-7)
//
// The step counter t is shared by all parameters and advances once per
// Update call.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
//
// Example:
//
//	optimizer := optim.NewAdam(optim.AdamConfig{
//	    LR:    0.001,
//	    Beta1: 0.9,
//	    Beta2: 0.999,
//	})
//
//	for step := range steps {
//	    grads, _ := net.Gradient(x, t)
//	    _ = optimizer.Update(net.Params(), grads)
//	}
type Adam struct {
	lr    float64
	beta1 float64
	beta2 float64
	t     int   // Timestep for bias correction
	m     slots // First moment estimates
	v     slots // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64 // Learning rate (default: 0.001)
	Beta1 float64 // Decay of the first moment (default: 0.9)
	Beta2 float64 // Decay of the second moment (default: 0.999)
}

// NewAdam creates a new Adam optimizer.
//
// Default hyperparameters:
//   - LR: 0.001
//   - Beta1: 0.9
//   - Beta2: 0.999
func NewAdam(config AdamConfig) *Adam {
	return &Adam{
		lr:    orDefault(config.LR, 0.001),
		beta1: orDefault(config.Beta1, 0.9),
		beta2: orDefault(config.Beta2, 0.999),
		m:     make(slots),
		v:     make(slots),
	}
}

// Update performs a single optimization step using Adam algorithm.
func (a *Adam) Update(params, grads nn.TensorMap) error {
	if err := prepare(params, grads, a.m, a.v); err != nil {
		return err
	}

	a.t++
	lrT := a.BiasCorrectedLR(a.t)

	each(params, grads, func(name string, p, g []float64) {
		m := a.m[name].Data()
		v := a.v[name].Data()
		for i := range p {
			m[i] += (1 - a.beta1) * (g[i] - m[i])
			v[i] += (1 - a.beta2) * (g[i]*g[i] - v[i])
			p[i] -= lrT * m[i] / (math.Sqrt(v[i]) + eps)
		}
	})
	return nil
}

// BiasCorrectedLR returns lr_t = lr * sqrt(1 - beta2^t) / (1 - beta1^t),
// the effective step size of update number t (counting from 1).
func (a *Adam) BiasCorrectedLR(t int) float64 {
	ft := float64(t)
	return a.lr * math.Sqrt(1-math.Pow(a.beta2, ft)) / (1 - math.Pow(a.beta1, ft))
}

// Timestep returns the number of updates applied so far.
func (a *Adam) Timestep() int {
	return a.t
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}

// SetLR sets the learning rate.
func (a *Adam) SetLR(lr float64) {
	a.lr = lr
}
