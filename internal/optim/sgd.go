package optim

import (
	"gonum.org/v1/gonum/floats"

	"github.com/backprop-go/backprop/internal/nn"
)

// SGD implements plain Stochastic Gradient Descent.
//
// Update rule:
//
//	param = param - lr * gradient
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.1})
//	err := optimizer.Update(net.Params(), grads)
type SGD struct {
	lr float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR float64 // Learning rate (default: 0.01)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	return &SGD{lr: orDefault(config.LR, 0.01)}
}

// Update performs a single optimization step.
func (s *SGD) Update(params, grads nn.TensorMap) error {
	if err := prepare(params, grads); err != nil {
		return err
	}
	each(params, grads, func(_ string, p, g []float64) {
		floats.AddScaled(p, -s.lr, g)
	})
	return nil
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR sets the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}
