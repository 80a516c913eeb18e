package cpu

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/backprop-go/backprop/internal/tensor"
)

// SumColumns reduces a 2-D tensor [N, K] over its rows, returning the
// per-column sums as a 1-D tensor [K].
func SumColumns(x *tensor.Dense) (*tensor.Dense, error) {
	if x.Dims() != 2 {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "sum columns: expected 2-D input, got %v", x.Shape())
	}

	out := tensor.Zeros(x.Dim(1))
	dst := out.Data()
	for i := 0; i < x.Dim(0); i++ {
		floats.Add(dst, x.Row(i))
	}
	return out, nil
}

// ArgmaxRows returns the index of the largest element of every row of a
// 2-D tensor. Ties resolve to the lowest index.
func ArgmaxRows(x *tensor.Dense) ([]int, error) {
	if x.Dims() != 2 {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "argmax: expected 2-D input, got %v", x.Shape())
	}

	out := make([]int, x.Dim(0))
	for i := range out {
		out[i] = floats.MaxIdx(x.Row(i))
	}
	return out, nil
}

// SumSquares returns Σ x² over every element of x.
func SumSquares(x *tensor.Dense) float64 {
	data := x.Data()
	return floats.Dot(data, data)
}
