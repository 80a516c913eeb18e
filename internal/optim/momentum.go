package optim

import (
	"gonum.org/v1/gonum/floats"

	"github.com/backprop-go/backprop/internal/nn"
)

// Momentum implements SGD with classical momentum.
//
// Update rule:
//
//	velocity = momentum * velocity - lr * gradient
//	param    = param + velocity
type Momentum struct {
	lr       float64
	momentum float64
	velocity slots
}

// MomentumConfig holds configuration for the Momentum and Nesterov
// optimizers.
type MomentumConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.9)
}

func (c MomentumConfig) withDefaults() MomentumConfig {
	c.LR = orDefault(c.LR, 0.01)
	c.Momentum = orDefault(c.Momentum, 0.9)
	return c
}

// NewMomentum creates a new Momentum optimizer.
func NewMomentum(config MomentumConfig) *Momentum {
	config = config.withDefaults()
	return &Momentum{
		lr:       config.LR,
		momentum: config.Momentum,
		velocity: make(slots),
	}
}

// Update performs a single optimization step.
func (m *Momentum) Update(params, grads nn.TensorMap) error {
	if err := prepare(params, grads, m.velocity); err != nil {
		return err
	}
	each(params, grads, func(name string, p, g []float64) {
		v := m.velocity[name].Data()
		floats.Scale(m.momentum, v)
		floats.AddScaled(v, -m.lr, g)
		floats.Add(p, v)
	})
	return nil
}

// GetLR returns the current learning rate.
func (m *Momentum) GetLR() float64 {
	return m.lr
}

// SetLR sets the learning rate.
func (m *Momentum) SetLR(lr float64) {
	m.lr = lr
}
