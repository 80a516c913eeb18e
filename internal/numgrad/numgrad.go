// Package numgrad estimates gradients by centered finite differences.
//
// It is the reference against which the analytic backward pass is checked,
// so it deliberately shares nothing with the layer code: it only perturbs
// tensor entries and re-evaluates a scalar function.
package numgrad

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/backprop-go/backprop/internal/tensor"
)

// DefaultStep is the perturbation h used by the network's numerical gradient.
const DefaultStep = 1e-4

// Gradient returns ∂f/∂x estimated as (f(x+h) - f(x-h)) / 2h, one scalar
// of x at a time.
//
// f must read x (directly or through the structure that owns it). Each entry
// is overwritten in place while f runs and restored to its exact original
// value afterwards, including when f fails.
func Gradient(f func() (float64, error), x *tensor.Dense, h float64) (*tensor.Dense, error) {
	if !(h > 0) {
		return nil, errors.Errorf("numgrad: step must be positive, got %g", h)
	}

	grad := tensor.ZerosLike(x)
	data := x.Data()
	out := grad.Data()
	settings := &fd.Settings{Formula: fd.Central, Step: h}

	var evalErr error
	for i := range data {
		orig := data[i]
		out[i] = fd.Derivative(func(v float64) float64 {
			data[i] = v
			loss, err := f()
			if err != nil && evalErr == nil {
				evalErr = err
			}
			return loss
		}, orig, settings)
		data[i] = orig

		if evalErr != nil {
			return nil, errors.Wrapf(evalErr, "numgrad: entry %d", i)
		}
	}
	return grad, nil
}

// MeanAbsDiff returns the mean absolute element-wise difference of a and b.
func MeanAbsDiff(a, b *tensor.Dense) (float64, error) {
	if !a.SameShape(b) {
		return 0, errors.Wrapf(tensor.ErrShapeMismatch, "numgrad: compare %v with %v", a.Shape(), b.Shape())
	}
	ad, bd := a.Data(), b.Data()
	var sum float64
	for i := range ad {
		sum += math.Abs(ad[i] - bd[i])
	}
	return sum / float64(len(ad)), nil
}

// RelativeError returns max|a-b| / (max|a| + max|b|), a scale-free
// measure of disagreement. Identical zero tensors compare as 0.
func RelativeError(a, b *tensor.Dense) (float64, error) {
	if !a.SameShape(b) {
		return 0, errors.Wrapf(tensor.ErrShapeMismatch, "numgrad: compare %v with %v", a.Shape(), b.Shape())
	}
	ad, bd := a.Data(), b.Data()
	var diff, maxA, maxB float64
	for i := range ad {
		diff = math.Max(diff, math.Abs(ad[i]-bd[i]))
		maxA = math.Max(maxA, math.Abs(ad[i]))
		maxB = math.Max(maxB, math.Abs(bd[i]))
	}
	denom := maxA + maxB
	if denom == 0 {
		return 0, nil
	}
	return diff / denom, nil
}
