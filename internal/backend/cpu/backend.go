// Package cpu implements the bulk numeric kernels used by the layers:
// BLAS-backed matrix products, row and column reductions, element-wise
// activations, row softmax, and the im2col/col2im unfolding transform.
//
// Every kernel is a pure function over tensor.Dense values. Kernels
// allocate their results and never write into their inputs.
package cpu

import (
	"github.com/pkg/errors"

	"github.com/backprop-go/backprop/internal/tensor"
)

// AddRowVector returns x + b where b is broadcast across every row of x.
//
// x must be 2-D [N, K] and b must hold exactly K elements.
func AddRowVector(x, b *tensor.Dense) (*tensor.Dense, error) {
	if x.Dims() != 2 {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "add row vector: expected 2-D input, got %v", x.Shape())
	}
	cols := x.Dim(1)
	if b.NumElements() != cols {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "add row vector: %v + %v", x.Shape(), b.Shape())
	}

	out := x.Clone()
	bias := b.Data()
	for i := 0; i < x.Dim(0); i++ {
		row := out.Row(i)
		for j := range row {
			row[j] += bias[j]
		}
	}
	return out, nil
}

// requireSameShape reports a shape mismatch between two operands of an
// element-wise kernel.
func requireSameShape(op string, a, b *tensor.Dense) error {
	if !a.SameShape(b) {
		return errors.Wrapf(tensor.ErrShapeMismatch, "%s: %v vs %v", op, a.Shape(), b.Shape())
	}
	return nil
}
