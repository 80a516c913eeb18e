package cpu

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/backprop-go/backprop/internal/tensor"
)

// ReLU applies max(0, x) element-wise.
//
// The returned mask records x > 0 for every element. The comparison is
// strict, so an input of exactly zero is masked out. NaN is not compared
// away: it passes through, as does its gradient.
func ReLU(x *tensor.Dense) (*tensor.Dense, []bool) {
	out := tensor.ZerosLike(x)
	mask := make([]bool, x.NumElements())

	dst := out.Data()
	for i, v := range x.Data() {
		if !(v <= 0) {
			dst[i] = v
			mask[i] = true
		}
	}
	return out, mask
}

// ReLUBackward passes dout through where mask is set and zeroes it elsewhere.
func ReLUBackward(dout *tensor.Dense, mask []bool) (*tensor.Dense, error) {
	if dout.NumElements() != len(mask) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "relu backward: gradient %v for %d cached elements",
			dout.Shape(), len(mask))
	}

	dx := tensor.ZerosLike(dout)
	dst := dx.Data()
	for i, g := range dout.Data() {
		if mask[i] {
			dst[i] = g
		}
	}
	return dx, nil
}

// Sigmoid applies 1 / (1 + exp(-x)) element-wise.
func Sigmoid(x *tensor.Dense) *tensor.Dense {
	out := tensor.ZerosLike(x)
	dst := out.Data()
	for i, v := range x.Data() {
		dst[i] = 1 / (1 + math.Exp(-v))
	}
	return out
}

// SigmoidBackward computes dout * y * (1 - y) from the cached output y.
func SigmoidBackward(dout, y *tensor.Dense) (*tensor.Dense, error) {
	if err := requireSameShape("sigmoid backward", dout, y); err != nil {
		return nil, err
	}

	dx := tensor.ZerosLike(dout)
	dst := dx.Data()
	out := y.Data()
	for i, g := range dout.Data() {
		dst[i] = g * out[i] * (1 - out[i])
	}
	return dx, nil
}

// SoftmaxRows computes a numerically stable softmax over every row of a
// 2-D tensor: the row maximum is subtracted before exponentiating.
//
// Non-finite inputs are not intercepted; a NaN or Inf anywhere in a row
// yields NaN probabilities for that row.
func SoftmaxRows(x *tensor.Dense) (*tensor.Dense, error) {
	if x.Dims() != 2 {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "softmax: expected 2-D input, got %v", x.Shape())
	}

	out := x.Clone()
	for i := 0; i < out.Dim(0); i++ {
		row := out.Row(i)
		maxVal := rowMax(row)
		for j, v := range row {
			row[j] = math.Exp(v - maxVal)
		}
		floats.Scale(1/floats.Sum(row), row)
	}
	return out, nil
}

// rowMax is floats.Max that lets NaN win, so NaN logits poison the row
// instead of being skipped by the comparison.
func rowMax(row []float64) float64 {
	m := row[0]
	for _, v := range row {
		if math.IsNaN(v) {
			return v
		}
		if v > m {
			m = v
		}
	}
	return m
}
