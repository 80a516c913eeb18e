package optim

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownOptimizer reports a name that New does not recognize.
var ErrUnknownOptimizer = errors.New("unknown optimizer")

var constructors = map[string]func(lr float64) Optimizer{
	"sgd":      func(lr float64) Optimizer { return NewSGD(SGDConfig{LR: lr}) },
	"momentum": func(lr float64) Optimizer { return NewMomentum(MomentumConfig{LR: lr}) },
	"nesterov": func(lr float64) Optimizer { return NewNesterov(MomentumConfig{LR: lr}) },
	"adagrad":  func(lr float64) Optimizer { return NewAdaGrad(AdaGradConfig{LR: lr}) },
	"rmsprop":  func(lr float64) Optimizer { return NewRMSprop(RMSpropConfig{LR: lr}) },
	"adam":     func(lr float64) Optimizer { return NewAdam(AdamConfig{LR: lr}) },
}

// New creates the optimizer registered under name (case-insensitive) with
// its default hyperparameters. An lr of 0 keeps the optimizer's default
// learning rate.
func New(name string, lr float64) (Optimizer, error) {
	ctor, ok := constructors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownOptimizer, "%q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	return ctor(lr), nil
}

// Names returns the registered optimizer names in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
