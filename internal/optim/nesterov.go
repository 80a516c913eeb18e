package optim

import (
	"gonum.org/v1/gonum/floats"

	"github.com/backprop-go/backprop/internal/nn"
)

// Nesterov implements Nesterov's accelerated gradient in the
// reparameterized form that only needs the gradient at the current point.
//
// Update rule:
//
//	velocity = momentum * velocity - lr * gradient
//	param    = param + momentum² * velocity - (1 + momentum) * lr * gradient
type Nesterov struct {
	lr       float64
	momentum float64
	velocity slots
}

// NewNesterov creates a new Nesterov optimizer.
func NewNesterov(config MomentumConfig) *Nesterov {
	config = config.withDefaults()
	return &Nesterov{
		lr:       config.LR,
		momentum: config.Momentum,
		velocity: make(slots),
	}
}

// Update performs a single optimization step.
func (n *Nesterov) Update(params, grads nn.TensorMap) error {
	if err := prepare(params, grads, n.velocity); err != nil {
		return err
	}
	mu := n.momentum
	each(params, grads, func(name string, p, g []float64) {
		v := n.velocity[name].Data()
		floats.Scale(mu, v)
		floats.AddScaled(v, -n.lr, g)
		floats.AddScaled(p, mu*mu, v)
		floats.AddScaled(p, -(1+mu)*n.lr, g)
	})
	return nil
}

// GetLR returns the current learning rate.
func (n *Nesterov) GetLR() float64 {
	return n.lr
}

// SetLR sets the learning rate.
func (n *Nesterov) SetLR(lr float64) {
	n.lr = lr
}
